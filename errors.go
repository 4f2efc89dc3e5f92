// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package puffin

import "fmt"

// CompileError is a fatal parse/scan error. The message format is
// part of the external interface (spec.md §6): "Error: <msg>\nUnexpected
// token: <tok>".
type CompileError struct {
	Msg   string
	Token fmt.Stringer
}

func (e *CompileError) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("Error: %s", e.Msg)
	}
	return fmt.Sprintf("Error: %s\nUnexpected token: %s", e.Msg, e.Token.String())
}

// AttributeInBeginOrEndError is returned when an Attr expression is
// evaluated with no FileState in scope (inside BEGIN or END).
type AttributeInBeginOrEndError struct{}

func (e *AttributeInBeginOrEndError) Error() string {
	return "attempt to query a file attribute in a BEGIN or END block"
}

// RuntimeError covers type errors (special-value misuse), division by
// zero, and unresolved-variable bugs (spec.md §7 category 4).
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime error: %s", e.Msg)
}

// IsRuntimeError reports whether err is a RuntimeError (as opposed to
// an absorbed per-file I/O error or an AttributeInBeginOrEndError),
// the distinction the error-policy in spec.md §7 hinges on: only
// RuntimeErrors propagate out of the parallel walker.
func IsRuntimeError(err error) bool {
	_, ok := err.(*RuntimeError)
	return ok
}

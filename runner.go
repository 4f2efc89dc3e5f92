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

// Runner evaluates a Program's routines against each file the walker
// visits. It owns no state of its own beyond the Program and Interp it
// was built with, so a single Runner is shared read-only by every
// worker goroutine in the parallel walker (spec.md §4.8).
type Runner struct {
	prog   *Program
	interp *Interp
}

// NewRunner pairs a parsed and analyzed Program with the interpreter
// that executes its statements.
func NewRunner(prog *Program, interp *Interp) *Runner {
	return &Runner{prog: prog, interp: interp}
}

// RunBegin runs the BEGIN action, if any, with no file in scope.
func (r *Runner) RunBegin() error {
	if r.prog.Begin == nil {
		return nil
	}
	return r.interp.Run(nil, r.prog.Begin)
}

// RunEnd runs the END action, if any, with no file in scope.
func (r *Runner) RunEnd() error {
	if r.prog.End == nil {
		return nil
	}
	return r.interp.Run(nil, r.prog.End)
}

// RunFile evaluates every routine's condition against f, running its
// action when the condition is absent or true, stopping at the first
// routine that errors (spec.md §4.4, §7). The caller decides how to
// react to the returned error: the single-threaded walker logs it and
// keeps walking, the parallel walker halts on a RuntimeError and
// otherwise logs and continues (see walk_single.go, walk_parallel.go).
func (r *Runner) RunFile(f *FileState) error {
	view := r.interp.vars.Locked()
	for i := range r.prog.Routines {
		routine := &r.prog.Routines[i]
		if routine.Condition != nil {
			v, err := evalExpr(view, f, routine.Condition)
			if err != nil {
				return err
			}
			ok, err := v.IsTruthy()
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		if err := r.interp.Run(f, &routine.Action); err != nil {
			return err
		}
	}
	return nil
}

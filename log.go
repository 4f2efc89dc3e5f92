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

import "github.com/golang/glog"

// logReadDirError reports a directory that couldn't be listed. The
// walk absorbs the error and keeps going (spec.md §7 category 3).
func logReadDirError(path string, err error) {
	glog.Errorf("readdir %s: %v", path, err)
}

// logRoutineError reports a routine's error against a specific file.
// The single-threaded walker calls this for every error, runtime or
// not, since it absorbs both; the parallel walker calls this only for
// non-runtime errors, since a RuntimeError there propagates to halt
// the walk instead (see walk_single.go and walk_parallel.go).
func logRoutineError(path string, err error) {
	glog.Errorf("%s: %v", path, err)
}

// logStatSkipped records, at verbose level, that an attribute access
// avoided a redundant stat syscall by reusing a cached FileState.
func logStatSkipped(path string) {
	if glog.V(2) {
		glog.Infof("%s: reused cached stat", path)
	}
}

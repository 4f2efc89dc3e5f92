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

import (
	"os"
	"path/filepath"
)

// WalkSingleThreaded visits root and every file and directory beneath
// it depth-first, running r against each, using an explicit stack
// rather than recursion (so arbitrarily deep trees don't grow the Go
// call stack). Grounded on pathutil.go's fsCacheT.readdir, which reads
// one directory's entries at a time and lets the caller drive the
// recursion; here the caller (this function) is the single walker
// instead of a glob matcher.
//
// Every error encountered -- a routine's RuntimeError, a failed stat, a
// failed readdir -- is logged and absorbed; the walk always continues
// to the next entry (spec.md §7: single-threaded mode absorbs every
// per-file error, unlike the parallel walker, which halts on the first
// RuntimeError). The error return exists to keep this function's
// signature interchangeable with WalkParallel's.
func WalkSingleThreaded(root string, r *Runner, stats *Stats) error {
	stack := []string{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		dir := stack[n]
		stack = stack[:n]

		if err := visit(dir, r, stats); err != nil {
			logRoutineError(dir, err)
			stats.absorbedError()
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			logReadDirError(dir, err)
			stats.absorbedError()
			continue
		}
		stats.visitedDir()
		for _, e := range entries {
			if e.Name() == "." || e.Name() == ".." {
				continue
			}
			child := filepath.Join(dir, e.Name())
			if e.IsDir() {
				stack = append(stack, child)
				continue
			}
			if err := visit(child, r, stats); err != nil {
				logRoutineError(child, err)
				stats.absorbedError()
			}
		}
	}
	return nil
}

// visit runs r's routines against a single path. info is never
// preseeded here: the directory-entry type bits used to drive
// recursion above (DirEntry.IsDir) come from the raw readdir buffer,
// not a stat call, so the first real stat syscall against path happens
// lazily inside FileState, only if some routine's condition or action
// actually reads a metadata attribute (spec.md §8 "Lazy stat").
func visit(path string, r *Runner, stats *Stats) error {
	f := NewFileState(path, nil)
	stats.visitedPath()
	return r.RunFile(f)
}

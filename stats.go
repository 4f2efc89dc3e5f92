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
	"fmt"
	"io"
	"sync/atomic"
)

// Stats accumulates run diagnostics behind the -stats flag. Grounded
// on statsT's trace-event counters; generalized from "rule evaluation
// events" to "paths visited, directories read, and errors absorbed",
// the counters meaningful to this program's walk (spec.md §9). paths
// counts every file AND directory a routine ran against (the walkers
// run routines against both); dirs counts only the subset that were
// also read via readdir to find their children.
type Stats struct {
	enabled bool

	paths    int64
	dirs     int64
	absorbed int64
}

// NewStats builds a Stats collector. When enabled is false, every
// method is still safe to call but the counters are not reported.
func NewStats(enabled bool) *Stats {
	return &Stats{enabled: enabled}
}

func (s *Stats) visitedPath() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.paths, 1)
}

func (s *Stats) visitedDir() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.dirs, 1)
}

func (s *Stats) absorbedError() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.absorbed, 1)
}

// Report writes a one-line summary to w if stats were enabled.
func (s *Stats) Report(w io.Writer) {
	if s == nil || !s.enabled {
		return
	}
	fmt.Fprintf(w, "paths=%d dirs_read=%d absorbed_errors=%d\n",
		atomic.LoadInt64(&s.paths), atomic.LoadInt64(&s.dirs), atomic.LoadInt64(&s.absorbed))
}

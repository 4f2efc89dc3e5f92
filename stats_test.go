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
	"bytes"
	"strings"
	"testing"
)

func TestStatsReportWhenEnabled(t *testing.T) {
	s := NewStats(true)
	s.visitedPath()
	s.visitedPath()
	s.visitedDir()
	s.absorbedError()

	var buf bytes.Buffer
	s.Report(&buf)
	out := buf.String()
	for _, want := range []string{"paths=2", "dirs_read=1", "absorbed_errors=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("report %q missing %q", out, want)
		}
	}
}

func TestStatsSilentWhenDisabled(t *testing.T) {
	s := NewStats(false)
	s.visitedPath()
	var buf bytes.Buffer
	s.Report(&buf)
	if buf.Len() != 0 {
		t.Errorf("disabled stats reported %q, want nothing", buf.String())
	}
}

func TestStatsNilReceiverIsSafe(t *testing.T) {
	var s *Stats
	s.visitedPath()
	s.visitedDir()
	s.absorbedError()
	s.Report(&bytes.Buffer{})
}

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
	"bufio"
	"io"
	"sync"
)

// Sink serializes concurrent print statements from many walker
// goroutines into a single underlying writer, one line per call.
// Grounded on ioutil.go's ssvWriter, which serializes the
// space-separated fields of a single write onto an io.Writer; here the
// separator discipline is generalized from "within one write" to
// "across concurrent writes", since the parallel walker (spec.md §4.8)
// has many goroutines producing print output at once.
type Sink struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewSink wraps w in a bufio.Writer; output reaches w when the buffer
// fills or Flush is called, not at the end of each line.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

// Print writes vals space-separated with a trailing newline, as one
// atomic operation with respect to other Print calls.
func (s *Sink) Print(vals []Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range vals {
		if i > 0 {
			if err := writeByte(s.w, ' '); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(s.w, v.String()); err != nil {
			return err
		}
	}
	return writeByte(s.w, '\n')
}

// Flush flushes any buffered output. Call once after the walk (and
// END block) complete.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

func writeByte(w io.ByteWriter, b byte) error {
	return w.WriteByte(b)
}

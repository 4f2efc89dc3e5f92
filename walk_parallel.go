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
	"sync"
	"sync/atomic"
	"time"
)

// deque is a double-ended queue of directory paths, mutex-backed
// rather than lock-free. spec.md §4.8 explicitly allows this: "a
// mutex-backed steal operation is an acceptable implementation." No
// lock-free deque exists anywhere in the retrieval corpus (see
// DESIGN.md), so this is the standard-library-only piece of the
// parallel walker.
//
// The owning worker pushes and pops from the bottom (LIFO, for cache
// locality on its own recent work); peers steal from the top (FIFO,
// so a thief takes the oldest, usually largest, subtree).
type deque struct {
	mu    sync.Mutex
	items []string
}

func (d *deque) pushBottom(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, path)
}

func (d *deque) popBottom() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.items)
	if n == 0 {
		return "", false
	}
	v := d.items[n-1]
	d.items = d.items[:n-1]
	return v, true
}

func (d *deque) steal() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return "", false
	}
	v := d.items[0]
	d.items = d.items[1:]
	return v, true
}

// WalkParallel visits root with n worker goroutines, each owning a
// deque and able to steal from its peers when its own runs dry.
// Grounded on worker.go's workerManager for the overall
// spawn-join-with-sync.WaitGroup pool lifecycle; the work distribution
// itself (per-worker deque plus peer stealing, rather than
// worker.go's shared priority-queue jobQueue) follows
// treewalk.rs's treewalk_multi_threaded, since the spec requires
// work-stealing specifically, not a shared queue.
//
// Termination detection is an idle barrier rather than the reference
// implementation's immediate exit: a worker that finds no local work and
// steals nothing from any peer marks itself idle; once every worker is
// simultaneously idle the walk is considered done. This is a
// heuristic, not a proof: spec.md §4.8 leaves exact termination
// semantics as an open question, and a worker that goes idle a moment
// before a peer pushes new work will simply wake on its next retry.
//
// The first RuntimeError encountered halts the walk (spec.md §7): a
// shared sentinel is set once and every worker checks it before
// starting its next task. Absorbed (I/O) errors are logged and do not
// halt anything, matching the single-threaded walker's policy.
func WalkParallel(root string, n int, r *Runner, stats *Stats) error {
	deques := make([]*deque, n)
	for i := range deques {
		deques[i] = &deque{}
	}
	deques[0].pushBottom(root)

	var (
		wg       sync.WaitGroup
		idleCount int64
		idleFlags = make([]int32, n)
		firstErr  atomic.Value // stores error
		halted    int32
	)

	markIdle := func(id int) bool {
		if atomic.CompareAndSwapInt32(&idleFlags[id], 0, 1) {
			return atomic.AddInt64(&idleCount, 1) >= int64(n)
		}
		return atomic.LoadInt64(&idleCount) >= int64(n)
	}
	markBusy := func(id int) {
		if atomic.CompareAndSwapInt32(&idleFlags[id], 1, 0) {
			atomic.AddInt64(&idleCount, -1)
		}
	}

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				if atomic.LoadInt32(&halted) != 0 {
					return
				}
				path, ok := deques[id].popBottom()
				if !ok {
					path, ok = findTask(deques, id)
				}
				if !ok {
					if markIdle(id) {
						return
					}
					time.Sleep(time.Millisecond)
					continue
				}
				markBusy(id)
				// processDirectory only ever returns a RuntimeError: every
				// I/O error is absorbed internally so one bad entry never
				// stops the rest of the directory from being visited.
				if err := processDirectory(path, deques[id], r, stats); err != nil {
					firstErr.CompareAndSwap(nil, err)
					atomic.StoreInt32(&halted, 1)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if v := firstErr.Load(); v != nil {
		return v.(error)
	}
	return nil
}

// findTask steals from the first peer (other than id) with work
// available.
func findTask(deques []*deque, id int) (string, bool) {
	for i := range deques {
		if i == id {
			continue
		}
		if path, ok := deques[i].steal(); ok {
			return path, true
		}
	}
	return "", false
}

// processDirectory reads one directory, runs r against it and every
// file entry found inside, and pushes subdirectories onto own for
// later processing (by this worker or a thief). Non-runtime errors
// (a failed stat, a failed readdir) are absorbed here so one bad entry
// never stops the rest of the directory from being visited; only a
// RuntimeError returns early, and it is the caller's job to turn that
// into a halt of the whole walk.
func processDirectory(path string, own *deque, r *Runner, stats *Stats) error {
	if err := visit(path, r, stats); err != nil {
		if IsRuntimeError(err) {
			return err
		}
		logRoutineError(path, err)
		stats.absorbedError()
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		logReadDirError(path, err)
		stats.absorbedError()
		return nil
	}
	stats.visitedDir()

	for _, e := range entries {
		if e.Name() == "." || e.Name() == ".." {
			continue
		}
		child := filepath.Join(path, e.Name())
		if e.IsDir() {
			own.pushBottom(child)
			continue
		}
		if err := visit(child, r, stats); err != nil {
			if IsRuntimeError(err) {
				return err
			}
			logRoutineError(child, err)
			stats.absorbedError()
		}
	}
	return nil
}

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
	"sort"
	"strings"
	"sync"
)

// VarStore holds the program's scalar and associative-array variables
// and exposes them through two views (spec.md §4.3):
//
//   - Locked: the default, no lock held by the caller. Every read is
//     its own short critical section.
//   - Unlocked: held exclusively by the statement performing an
//     assignment, for the duration of right-hand-side evaluation. It
//     lets an assignment's RHS read other variables (including nested
//     array subscripts) without re-entering the mutex.
//
// A single mutex guards both the scalar slice and the array-of-maps
// slice, deliberately: an assignment always needs both (the
// subscript expression on either side of `=` may read anything), so
// one lock removes any lock-ordering question. Grounded on
// pathutil.go's fsCacheT, whose single mutex guards both its `ids` and
// `dirents` maps for the same reason.
type VarStore struct {
	mu      sync.Mutex
	scalars []int64
	arrays  []map[Value]int64
}

// NewVarStore allocates a store sized for numScalars contiguous scalar
// slots and numArrays contiguous array ids (spec.md §3 invariants).
func NewVarStore(numScalars, numArrays int) *VarStore {
	arrays := make([]map[Value]int64, numArrays)
	for i := range arrays {
		arrays[i] = make(map[Value]int64)
	}
	return &VarStore{
		scalars: make([]int64, numScalars),
		arrays:  arrays,
	}
}

// varView is implemented by both the locked and unlocked presentations
// of the store, so the evaluator (eval.go) doesn't need to know which
// mode it's running in.
type varView interface {
	getScalar(slot int) int64
	getArray(arrayID int, subscript Value) int64
	getArrayString(arrayID int) string
}

// lockedView takes a short critical section per read.
type lockedView struct {
	store *VarStore
}

func (v lockedView) getScalar(slot int) int64 {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.scalars[slot]
}

func (v lockedView) getArray(arrayID int, subscript Value) int64 {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.arrays[arrayID][subscript]
}

func (v lockedView) getArrayString(arrayID int) string {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return serializeArray(v.store.arrays[arrayID])
}

// unlockedView wraps direct references to the underlying vectors, kept
// alive only while VarStore.mu is already held by the in-progress
// assignment. It is never constructed re-entrantly: the language has
// no nested statements, so there is exactly one unlockedView alive per
// assignment.
type unlockedView struct {
	scalars []int64
	arrays  []map[Value]int64
}

func (v unlockedView) getScalar(slot int) int64 {
	return v.scalars[slot]
}

func (v unlockedView) getArray(arrayID int, subscript Value) int64 {
	return v.arrays[arrayID][subscript]
}

func (v unlockedView) getArrayString(arrayID int) string {
	return serializeArray(v.arrays[arrayID])
}

func serializeArray(m map[Value]int64) string {
	keys := make([]Value, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %d\n", k.String(), m[k])
	}
	return b.String()
}

// Locked returns the default, no-lock-held view for use by conditions
// and print statements (spec.md §4.3 rule 2).
func (s *VarStore) Locked() varView {
	return lockedView{store: s}
}

// GetScalar reads scalar slot via a fresh Locked view.
func (s *VarStore) GetScalar(slot int) int64 {
	return s.Locked().getScalar(slot)
}

// GetArray reads array element via a fresh Locked view; missing keys
// read as 0 with no insertion (spec.md §4.3 rule 5).
func (s *VarStore) GetArray(arrayID int, subscript Value) int64 {
	return s.Locked().getArray(arrayID, subscript)
}

// AssignScalar acquires the store exclusively, evaluates rhs against
// the Unlocked view, writes the result to slot, and releases
// (spec.md §4.3 rule 1). eval is called with the Unlocked view so its
// own variable reads -- including nested array subscripts -- never
// re-enter the mutex.
func (s *VarStore) AssignScalar(slot int, eval func(varView) (Value, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := unlockedView{scalars: s.scalars, arrays: s.arrays}
	val, err := eval(view)
	if err != nil {
		return err
	}
	n, err := val.ToInteger()
	if err != nil {
		return err
	}
	s.scalars[slot] = n
	return nil
}

// AssignArraySub acquires the store exclusively, evaluates rhs and then
// subscript against the Unlocked view, and writes the result into the
// array entry. rhs is evaluated before subscript, matching the
// original reference's set_variable_expression.
func (s *VarStore) AssignArraySub(arrayID int, subscript *Expression, eval func(varView) (Value, error), evalExpr func(varView, *Expression) (Value, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := unlockedView{scalars: s.scalars, arrays: s.arrays}

	val, err := eval(view)
	if err != nil {
		return err
	}
	key, err := evalExpr(view, subscript)
	if err != nil {
		return err
	}
	n, err := val.ToInteger()
	if err != nil {
		return err
	}
	s.arrays[arrayID][key] = n
	return nil
}

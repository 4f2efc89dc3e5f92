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

import "testing"

func mustAnalyze(t *testing.T, src string) *Program {
	t.Helper()
	prog := mustParse(t, src)
	if err := Analyze(prog); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return prog
}

func TestAnalyzeScalarSlotsInOccurrenceOrder(t *testing.T) {
	prog := mustAnalyze(t, `BEGIN { b = 1 } { a = 1 } END { c = 1 }`)
	if prog.NumScalars != 3 {
		t.Fatalf("NumScalars = %d, want 3", prog.NumScalars)
	}
	if got := prog.Begin.Statements[0].LHS.Slot; got != 0 {
		t.Errorf("b's slot = %d, want 0 (first occurrence, in BEGIN)", got)
	}
	if got := prog.Routines[0].Action.Statements[0].LHS.Slot; got != 1 {
		t.Errorf("a's slot = %d, want 1", got)
	}
	if got := prog.End.Statements[0].LHS.Slot; got != 2 {
		t.Errorf("c's slot = %d, want 2", got)
	}
}

func TestAnalyzeArrayNameIsArrayEverywhere(t *testing.T) {
	prog := mustAnalyze(t, `{ a[0] = 1 } { print a }`)
	sub := prog.Routines[0].Action.Statements[0].LHS
	if sub.Kind != VarArraySub {
		t.Fatalf("a[0] resolved to %v, want VarArraySub", sub.Kind)
	}
	bare := prog.Routines[1].Action.Statements[0].Args[0].Var
	if bare.Kind != VarArray {
		t.Fatalf("bare a resolved to %v, want VarArray", bare.Kind)
	}
	if bare.ArrayID != sub.ArrayID {
		t.Errorf("a[0] and bare a resolved to different array ids: %d vs %d", sub.ArrayID, bare.ArrayID)
	}
	if prog.NumArrays != 1 {
		t.Errorf("NumArrays = %d, want 1", prog.NumArrays)
	}
}

func TestAnalyzeScalarAndArrayNamesAreIndependent(t *testing.T) {
	prog := mustAnalyze(t, `{ x = 1 } { a[0] = 1 }`)
	if prog.NumScalars != 1 || prog.NumArrays != 1 {
		t.Fatalf("NumScalars=%d NumArrays=%d, want 1 and 1", prog.NumScalars, prog.NumArrays)
	}
}

func TestAnalyzeNestedSubscriptResolves(t *testing.T) {
	prog := mustAnalyze(t, `{ a[0] = 1 } { b[a[0]] = 2 }`)
	outer := prog.Routines[1].Action.Statements[0].LHS
	if outer.Kind != VarArraySub {
		t.Fatalf("b[...] resolved to %v", outer.Kind)
	}
	inner := outer.Subscript.Var
	if inner.Kind != VarArraySub {
		t.Fatalf("nested a[0] resolved to %v, want VarArraySub", inner.Kind)
	}
}

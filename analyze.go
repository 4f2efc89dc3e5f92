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

// Analyze resolves every VarUnresolved name in prog into a VarScalar,
// VarArray, or VarArraySub, and sets prog.NumScalars/NumArrays so the
// caller can size a VarStore. Grounded on ast/analysis.rs's analyze():
// a name that is ever seen with a `[...]` subscript anywhere in the
// program is an array everywhere else it occurs too; everything else
// is a scalar. Scalar slots are handed out in first-occurrence order
// walking BEGIN, then the routines in source order, then END -- the
// same order ast/analysis.rs uses for its VarsMap scalar ids.
//
// Array ids are handed out in first-occurrence order over the same
// walk, counting both bare and subscripted occurrences of an array
// name: this is a deliberate simplification of compiler.rs's
// add_array, which assigns an id at the first `[`-bracketed
// occurrence specifically, seen at parse time rather than after a
// second, whole-program pass. The two orderings only differ when a
// name's very first appearance in the source is bare and a later one
// is subscripted, which does not change anything observable (array
// ids are never exposed to the program text, only used as an internal
// VarStore index) -- see DESIGN.md.
func Analyze(prog *Program) error {
	isArray := map[string]bool{}
	markArray := func(v *Variable) {
		if v.Subscript != nil {
			isArray[v.Name] = true
		}
	}
	walkProgram(prog, markArray)

	scalarSlot := map[string]int{}
	arrayID := map[string]int{}
	resolve := func(v *Variable) {
		if isArray[v.Name] {
			id, ok := arrayID[v.Name]
			if !ok {
				id = len(arrayID)
				arrayID[v.Name] = id
			}
			v.ArrayID = id
			if v.Subscript != nil {
				v.Kind = VarArraySub
			} else {
				v.Kind = VarArray
			}
			return
		}
		slot, ok := scalarSlot[v.Name]
		if !ok {
			slot = len(scalarSlot)
			scalarSlot[v.Name] = slot
		}
		v.Slot = slot
		v.Kind = VarScalar
	}
	walkProgram(prog, resolve)

	prog.NumScalars = len(scalarSlot)
	prog.NumArrays = len(arrayID)
	return nil
}

func walkProgram(prog *Program, visit func(*Variable)) {
	walkAction(prog.Begin, visit)
	for i := range prog.Routines {
		walkRoutine(&prog.Routines[i], visit)
	}
	walkAction(prog.End, visit)
}

func walkRoutine(r *Routine, visit func(*Variable)) {
	walkExpr(r.Condition, visit)
	walkAction(&r.Action, visit)
}

func walkAction(a *Action, visit func(*Variable)) {
	if a == nil {
		return
	}
	for i := range a.Statements {
		walkStatement(&a.Statements[i], visit)
	}
}

func walkStatement(s *Statement, visit func(*Variable)) {
	switch s.Kind {
	case StmtAssign:
		visit(&s.LHS)
		walkExpr(s.LHS.Subscript, visit)
		walkExpr(&s.RHS, visit)
	case StmtPrint:
		for i := range s.Args {
			walkExpr(&s.Args[i], visit)
		}
	}
}

func walkExpr(e *Expression, visit func(*Variable)) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ExprVar:
		visit(&e.Var)
		walkExpr(e.Var.Subscript, visit)
	case ExprBin:
		walkExpr(e.Left, visit)
		walkExpr(e.Right, visit)
	}
}

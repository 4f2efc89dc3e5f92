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

// Interp runs the statements of a resolved Action against a given
// VarStore and Sink. f is nil while running the BEGIN or END action,
// non-nil while running a routine's action against a visited file.
type Interp struct {
	vars *VarStore
	sink *Sink
}

// NewInterp builds an interpreter sharing vars and sink across every
// BEGIN/routine/END invocation in the run.
func NewInterp(vars *VarStore, sink *Sink) *Interp {
	return &Interp{vars: vars, sink: sink}
}

// Run executes every statement of a in order, stopping at the first
// error (spec.md §4.4: a statement's failure aborts the remainder of
// its action).
func (in *Interp) Run(f *FileState, a *Action) error {
	if a.IsDefault() {
		return in.runDefault(f)
	}
	for _, stmt := range a.Statements {
		if err := in.runStatement(f, &stmt); err != nil {
			return err
		}
	}
	return nil
}

// runDefault implements the absent-action default of spec.md §3: print
// the visited file's path. It is only valid outside BEGIN/END.
func (in *Interp) runDefault(f *FileState) error {
	v, err := AttrPath.Evaluate(f)
	if err != nil {
		return err
	}
	return in.sink.Print([]Value{v})
}

func (in *Interp) runStatement(f *FileState, stmt *Statement) error {
	switch stmt.Kind {
	case StmtAssign:
		return in.runAssign(f, stmt)
	case StmtPrint:
		return in.runPrint(f, stmt)
	}
	return &RuntimeError{Msg: "unreachable statement kind"}
}

// runAssign evaluates the right-hand side under the store's Unlocked
// view (spec.md §4.3 rule 1): the whole statement -- subscript
// expression on the left, if any, and every read the RHS performs --
// runs inside one critical section, so a statement like `a[a[0]] =
// a[0] + 1` sees a single consistent snapshot throughout.
func (in *Interp) runAssign(f *FileState, stmt *Statement) error {
	rhs := &stmt.RHS
	evalRHS := func(view varView) (Value, error) {
		return evalExpr(view, f, rhs)
	}
	switch stmt.LHS.Kind {
	case VarScalar:
		return in.vars.AssignScalar(stmt.LHS.Slot, evalRHS)
	case VarArraySub:
		evalSub := func(view varView, e *Expression) (Value, error) {
			return evalExpr(view, f, e)
		}
		return in.vars.AssignArraySub(stmt.LHS.ArrayID, stmt.LHS.Subscript, evalRHS, evalSub)
	case VarArray:
		return &RuntimeError{Msg: "cannot assign to an array name directly, index it with []"}
	}
	return &RuntimeError{Msg: "assignment to an unresolved variable"}
}

// runPrint evaluates every argument under the store's Locked view
// (spec.md §4.3 rule 2: print is a sequence of independent reads, not
// a single critical section) and writes them space-separated.
func (in *Interp) runPrint(f *FileState, stmt *Statement) error {
	view := in.vars.Locked()
	vals := make([]Value, len(stmt.Args))
	for i := range stmt.Args {
		v, err := evalExpr(view, f, &stmt.Args[i])
		if err != nil {
			return err
		}
		vals[i] = v
	}
	return in.sink.Print(vals)
}

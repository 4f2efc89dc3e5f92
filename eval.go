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

// evalExpr walks an Expression tree against view (the store's Locked
// or Unlocked presentation, see vars.go) and f (nil inside BEGIN/END).
// Both operands of a binary operator are always evaluated, in left to
// right order, before Apply is invoked -- spec.md §4.1's non-short-
// circuit rule for `and`/`or` falls out of not special-casing those
// operators here.
func evalExpr(view varView, f *FileState, e *Expression) (Value, error) {
	switch e.Kind {
	case ExprAtom:
		return e.Atom, nil
	case ExprAttr:
		return e.Attr.Evaluate(f)
	case ExprVar:
		return evalVarRead(view, f, e.Var)
	case ExprBin:
		l, err := evalExpr(view, f, e.Left)
		if err != nil {
			return Value{}, err
		}
		r, err := evalExpr(view, f, e.Right)
		if err != nil {
			return Value{}, err
		}
		return Apply(e.Op, l, r)
	}
	return Value{}, &RuntimeError{Msg: "unreachable expression kind"}
}

// evalVarRead resolves a variable read, spec.md §4.3 rules 4 and 5:
// a scalar reads its slot; an array subscript reads the keyed entry
// (missing keys read as 0, no insertion); a bare array name reads its
// full "k: v\n"-per-line serialization.
func evalVarRead(view varView, f *FileState, v Variable) (Value, error) {
	switch v.Kind {
	case VarScalar:
		return IntValue(view.getScalar(v.Slot)), nil
	case VarArray:
		return StringValue(view.getArrayString(v.ArrayID)), nil
	case VarArraySub:
		key, err := evalExpr(view, f, v.Subscript)
		if err != nil {
			return Value{}, err
		}
		return IntValue(view.getArray(v.ArrayID, key)), nil
	}
	return Value{}, &RuntimeError{Msg: "read of an unresolved variable"}
}

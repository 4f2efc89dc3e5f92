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

// Parser turns a token stream into an unresolved Program: variable
// reads and writes are left as VarUnresolved, to be settled by a later
// analysis pass (analyze.go) that knows every name's full set of uses.
//
// Grounded on pathutil.go's findCommandParser: a one-token-lookahead
// recursive descent parser built from parseExpr/parseTerm/parseFact.
// The precedence climbing in parseExpr here follows compiler.rs's
// expression(min_precedence)/factor() shape instead of
// findCommandParser's shell-operator grammar, since this language's
// expressions are arithmetic/boolean, not shell command lines.
type Parser struct {
	scan *Scanner
}

// NewParser builds a Parser over src.
func NewParser(src []byte) *Parser {
	return &Parser{scan: NewScanner(src)}
}

func (p *Parser) peek() (Token, error) {
	t, err := p.scan.Next()
	if err != nil {
		return Token{}, err
	}
	p.scan.Unget(t)
	return t, nil
}

func (p *Parser) next() (Token, error) {
	return p.scan.Next()
}

func (p *Parser) expect(k TokKind) (Token, error) {
	t, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if t.Kind != k {
		return Token{}, &CompileError{Msg: "unexpected token", Token: t}
	}
	return t, nil
}

// Parse consumes the whole token stream and returns the program's
// top-level structure: at most one BEGIN, at most one END, and any
// number of (condition, action) routines in between.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokEOF {
			break
		}
		if tok.Kind == TokKeyword && tok.Text == "BEGIN" {
			if prog.Begin != nil {
				return nil, &CompileError{Msg: "multiple BEGIN blocks", Token: tok}
			}
			p.next()
			action, err := p.parseAction()
			if err != nil {
				return nil, err
			}
			prog.Begin = &action
			continue
		}
		if tok.Kind == TokKeyword && tok.Text == "END" {
			if prog.End != nil {
				return nil, &CompileError{Msg: "multiple END blocks", Token: tok}
			}
			p.next()
			action, err := p.parseAction()
			if err != nil {
				return nil, err
			}
			prog.End = &action
			continue
		}

		routine, err := p.parseRoutine()
		if err != nil {
			return nil, err
		}
		prog.Routines = append(prog.Routines, routine)
	}
	if len(prog.Routines) == 0 {
		// spec.md §6: "empty routine list implies one default routine" --
		// an always-true condition running the default (print-the-path)
		// action.
		prog.Routines = []Routine{{Action: Action{Statements: nil}}}
	}
	return prog, nil
}

func (p *Parser) parseRoutine() (Routine, error) {
	var routine Routine

	tok, err := p.peek()
	if err != nil {
		return routine, err
	}
	if tok.Kind != TokLBrace {
		cond, err := p.parseExpr(1)
		if err != nil {
			return routine, err
		}
		routine.Condition = cond
	}

	tok, err = p.peek()
	if err != nil {
		return routine, err
	}
	if tok.Kind == TokLBrace {
		action, err := p.parseAction()
		if err != nil {
			return routine, err
		}
		routine.Action = action
	} else {
		routine.Action = Action{Statements: nil}
	}
	return routine, nil
}

// parseAction parses a `{ stmt; stmt; ... }` block. An empty block
// `{}` is a real, explicit no-op action, distinct from the absent
// block (spec.md §3 default-action rule): Action.Statements is a
// non-nil empty slice in the former case, nil in the latter.
func (p *Parser) parseAction() (Action, error) {
	if _, err := p.expect(TokLBrace); err != nil {
		return Action{}, err
	}
	stmts := []Statement{}
	for {
		tok, err := p.peek()
		if err != nil {
			return Action{}, err
		}
		if tok.Kind == TokSemi {
			p.next()
			continue
		}
		if tok.Kind == TokRBrace {
			p.next()
			return Action{Statements: stmts}, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return Action{}, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseStatement() (Statement, error) {
	tok, err := p.peek()
	if err != nil {
		return Statement{}, err
	}
	if tok.Kind == TokKeyword && tok.Text == "print" {
		p.next()
		return p.parsePrint()
	}
	return p.parseAssign()
}

func (p *Parser) parsePrint() (Statement, error) {
	var args []Expression
	for {
		e, err := p.parseExpr(1)
		if err != nil {
			return Statement{}, err
		}
		args = append(args, *e)
		tok, err := p.peek()
		if err != nil {
			return Statement{}, err
		}
		if tok.Kind != TokComma {
			break
		}
		p.next()
	}
	return Statement{Kind: StmtPrint, Args: args}, nil
}

func (p *Parser) parseAssign() (Statement, error) {
	lhs, err := p.parseVariable()
	if err != nil {
		return Statement{}, err
	}
	op, err := p.next()
	if err != nil {
		return Statement{}, err
	}

	var compound BinOp
	hasCompound := true
	switch op.Kind {
	case TokAssign:
		hasCompound = false
	case TokPlusEq:
		compound = OpAdd
	case TokMinusEq:
		compound = OpSub
	case TokStarEq:
		compound = OpMul
	case TokSlashEq:
		compound = OpDiv
	default:
		return Statement{}, &CompileError{Msg: "expected an assignment operator", Token: op}
	}

	rhs, err := p.parseExpr(1)
	if err != nil {
		return Statement{}, err
	}
	if hasCompound {
		rhs = &Expression{
			Kind:  ExprBin,
			Op:    compound,
			Left:  &Expression{Kind: ExprVar, Var: lhs},
			Right: rhs,
		}
	}
	return Statement{Kind: StmtAssign, LHS: lhs, RHS: *rhs}, nil
}

// parseVariable parses `name` or `name[expr]`. The bracket's presence
// or absence is the only signal the parser has about whether name is
// a scalar or an array -- analyze.go collects every occurrence across
// the whole program to settle it, since a name's first occurrence
// doesn't always disambiguate (e.g. `a[0] = 1` seen later than a bare
// use of `a`).
func (p *Parser) parseVariable() (Variable, error) {
	tok, err := p.expect(TokIdent)
	if err != nil {
		return Variable{}, err
	}
	v := Variable{Kind: VarUnresolved, Name: tok.Text}

	peeked, err := p.peek()
	if err != nil {
		return Variable{}, err
	}
	if peeked.Kind == TokLBracket {
		p.next()
		sub, err := p.parseExpr(1)
		if err != nil {
			return Variable{}, err
		}
		if _, err := p.expect(TokRBracket); err != nil {
			return Variable{}, err
		}
		v.Subscript = sub
	}
	return v, nil
}

// binOpInfo reports the BinOp and precedence level a token introduces
// as an infix operator, following compiler.rs's op_precedence table:
// */ bind tightest (3), +- next (2), and comparisons/equality/and/or
// bind loosest (1).
func binOpInfo(t Token) (BinOp, int, bool) {
	switch t.Kind {
	case TokStar:
		return OpMul, 3, true
	case TokSlash:
		return OpDiv, 3, true
	case TokPlus:
		return OpAdd, 2, true
	case TokMinus:
		return OpSub, 2, true
	case TokEq:
		return OpEq, 1, true
	case TokGt:
		return OpGt, 1, true
	case TokGe:
		return OpGe, 1, true
	case TokLt:
		return OpLt, 1, true
	case TokLe:
		return OpLe, 1, true
	}
	if t.Kind == TokKeyword {
		switch t.Text {
		case "and":
			return OpAnd, 1, true
		case "or":
			return OpOr, 1, true
		}
	}
	return 0, 0, false
}

// parseExpr implements precedence climbing: it parses a unary operand
// then repeatedly absorbs infix operators whose precedence is at
// least minPrec, recursing with the operator's own precedence plus one
// on the right-hand side so same-precedence operators associate left
// to right.
func (p *Parser) parseExpr(minPrec int) (*Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		op, prec, ok := binOpInfo(tok)
		if !ok || prec < minPrec {
			return left, nil
		}
		p.next()
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &Expression{Kind: ExprBin, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (*Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokMinus {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Expression{
			Kind:  ExprBin,
			Op:    OpSub,
			Left:  &Expression{Kind: ExprAtom, Atom: IntValue(0)},
			Right: operand,
		}, nil
	}
	return p.parseFactor()
}

func (p *Parser) parseFactor() (*Expression, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokNumber:
		return &Expression{Kind: ExprAtom, Atom: IntValue(tok.Num)}, nil
	case TokString:
		return &Expression{Kind: ExprAtom, Atom: StringValue(tok.Text)}, nil
	case TokAttr:
		attr, _ := LookupAttribute(tok.Text)
		return &Expression{Kind: ExprAttr, Attr: attr}, nil
	case TokKeyword:
		switch tok.Text {
		case "true":
			return &Expression{Kind: ExprAtom, Atom: BoolValue(true)}, nil
		case "false":
			return &Expression{Kind: ExprAtom, Atom: BoolValue(false)}, nil
		}
		return nil, &CompileError{Msg: "unexpected keyword in expression", Token: tok}
	case TokIdent:
		p.scan.Unget(tok)
		v, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		return &Expression{Kind: ExprVar, Var: v}, nil
	case TokLParen:
		e, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, &CompileError{Msg: "unexpected token in expression", Token: tok}
}

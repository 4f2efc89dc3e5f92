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

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	s := NewScanner([]byte(src))
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestScannerNumbers(t *testing.T) {
	toks := scanAll(t, "0 42 1000")
	want := []int64{0, 42, 1000}
	var got []int64
	for _, tok := range toks {
		if tok.Kind == TokNumber {
			got = append(got, tok.Num)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d numbers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("number %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestScannerBinaryOperators(t *testing.T) {
	kinds := map[string]TokKind{
		"+": TokPlus, "-": TokMinus, "*": TokStar, "/": TokSlash,
		"==": TokEq, ">": TokGt, ">=": TokGe, "<": TokLt, "<=": TokLe,
	}
	for text, kind := range kinds {
		toks := scanAll(t, text)
		if len(toks) < 1 || toks[0].Kind != kind {
			t.Errorf("scanning %q: got kind %v, want %v", text, toks[0].Kind, kind)
		}
	}
}

func TestScannerCompoundAssignment(t *testing.T) {
	kinds := map[string]TokKind{
		"=": TokAssign, "+=": TokPlusEq, "-=": TokMinusEq, "*=": TokStarEq, "/=": TokSlashEq,
	}
	for text, kind := range kinds {
		toks := scanAll(t, text)
		if toks[0].Kind != kind {
			t.Errorf("scanning %q: got kind %v, want %v", text, toks[0].Kind, kind)
		}
	}
}

func TestScannerKeywords(t *testing.T) {
	for _, kw := range []string{"BEGIN", "END", "and", "or", "print", "true", "false"} {
		toks := scanAll(t, kw)
		if toks[0].Kind != TokKeyword || toks[0].Text != kw {
			t.Errorf("scanning %q: got %+v, want keyword %q", kw, toks[0], kw)
		}
	}
}

func TestScannerAttributes(t *testing.T) {
	toks := scanAll(t, ".size .name .owner")
	for _, tok := range toks {
		if tok.Kind == TokEOF {
			continue
		}
		if tok.Kind != TokAttr {
			t.Errorf("got kind %v for %q, want TokAttr", tok.Kind, tok.Text)
		}
	}
}

func TestScannerUnknownAttributeErrors(t *testing.T) {
	s := NewScanner([]byte(".bogus"))
	if _, err := s.Next(); err == nil {
		t.Fatal("expected an error for an unknown attribute")
	}
}

func TestScannerIdentifiers(t *testing.T) {
	toks := scanAll(t, "foo bar_baz x1")
	want := []string{"foo", "bar_baz", "x1"}
	for i, w := range want {
		if toks[i].Kind != TokIdent || toks[i].Text != w {
			t.Errorf("token %d = %+v, want ident %q", i, toks[i], w)
		}
	}
}

// No escapes are defined (spec.md §6): a backslash is an ordinary
// character inside a string literal, and `"` is recognized only as the
// delimiter.
func TestScannerStrings(t *testing.T) {
	toks := scanAll(t, `"hello" "a\nb"`)
	want := []string{"hello", "a\\nb"}
	for i, w := range want {
		if toks[i].Kind != TokString || toks[i].Text != w {
			t.Errorf("token %d = %+v, want string %q", i, toks[i], w)
		}
	}
}

func TestScannerOtherTokens(t *testing.T) {
	toks := scanAll(t, "(){}[],;")
	want := []TokKind{TokLParen, TokRParen, TokLBrace, TokRBrace, TokLBracket, TokRBracket, TokComma, TokSemi}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestScannerUngetReplaysToken(t *testing.T) {
	s := NewScanner([]byte("foo bar"))
	first, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	s.Unget(first)
	replay, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if replay != first {
		t.Errorf("replay = %+v, want %+v", replay, first)
	}
	second, _ := s.Next()
	if second.Text != "bar" {
		t.Errorf("second token = %+v, want bar", second)
	}
}

func TestScannerSkipsComments(t *testing.T) {
	toks := scanAll(t, "foo # a comment\nbar")
	if toks[0].Text != "foo" || toks[1].Text != "bar" {
		t.Errorf("got tokens %+v, want [foo bar]", toks[:2])
	}
}

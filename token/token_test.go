// Copyright 2026 The Packet Pipeline Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token_test

import (
	"testing"

	"github.com/packetlang/p4front/token"
)

func TestPrecedence(t *testing.T) {
	cases := []struct {
		c    token.Class
		want int
	}{
		{token.LAND, 1},
		{token.LOR, 1},
		{token.EQ, 2},
		{token.LT, 2},
		{token.ADD, 3},
		{token.SHL, 3},
		{token.MUL, 4},
		{token.MASK, 5},
		{token.SEMICOLON, token.LowestPrec},
		{token.IDENT, token.LowestPrec},
	}
	for _, c := range cases {
		if got := c.c.Precedence(); got != c.want {
			t.Errorf("%s.Precedence() = %d, want %d", c.c, got, c.want)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	if !token.KwAction.IsKeyword() {
		t.Errorf("KwAction.IsKeyword() = false, want true")
	}
	if !token.KwVoid.IsKeyword() {
		t.Errorf("KwVoid.IsKeyword() = false, want true")
	}
	for _, c := range []token.Class{token.IDENT, token.INT_LIT, token.SEMICOLON, token.EOF} {
		if c.IsKeyword() {
			t.Errorf("%s.IsKeyword() = true, want false", c)
		}
	}
}

func TestKeywordsMapMatchesClassRange(t *testing.T) {
	if len(token.Keywords) == 0 {
		t.Fatalf("Keywords map is empty")
	}
	for lexeme, class := range token.Keywords {
		if !class.IsKeyword() {
			t.Errorf("Keywords[%q] = %s, which IsKeyword() reports false", lexeme, class)
		}
		if class.String() != lexeme {
			t.Errorf("Keywords[%q].String() = %q, want %q", lexeme, class.String(), lexeme)
		}
	}
}

func TestClassStringUnknown(t *testing.T) {
	var bogus token.Class = 9999
	if got := bogus.String(); got != "token(?)" {
		t.Errorf("unknown Class.String() = %q, want %q", got, "token(?)")
	}
}

func TestTokenPos(t *testing.T) {
	f := token.NewFile("test.p4")
	tok := token.Token{Class: token.IDENT, Lexeme: "x", Line: 3, Column: 7}
	pos := tok.Pos(f)
	if pos.File != f || pos.Line != 3 || pos.Column != 7 {
		t.Errorf("Token.Pos() = %+v, want {File: f, Line: 3, Column: 7}", pos)
	}
}

func TestPositionString(t *testing.T) {
	cases := []struct {
		p    token.Position
		want string
	}{
		{token.Position{}, "-"},
		{token.Position{Line: 2, Column: 5}, "2:5"},
		{token.Position{Filename: "a.p4", Line: 2, Column: 5}, "a.p4:2:5"},
		{token.Position{Filename: "a.p4"}, "a.p4"},
	}
	for _, c := range cases {
		if got := c.p.String(); got != c.want {
			t.Errorf("Position%+v.String() = %q, want %q", c.p, got, c.want)
		}
	}
}

func TestPosCompare(t *testing.T) {
	f := token.NewFile("a.p4")
	p1 := token.Pos{File: f, Line: 1, Column: 1}
	p2 := token.Pos{File: f, Line: 1, Column: 2}
	p3 := token.Pos{File: f, Line: 2, Column: 1}

	if p1.Compare(p2) != -1 {
		t.Errorf("p1.Compare(p2) = %d, want -1", p1.Compare(p2))
	}
	if p2.Compare(p1) != 1 {
		t.Errorf("p2.Compare(p1) = %d, want 1", p2.Compare(p1))
	}
	if p1.Compare(p3) != -1 {
		t.Errorf("p1.Compare(p3) = %d, want -1", p1.Compare(p3))
	}
	if p1.Compare(p1) != 0 {
		t.Errorf("p1.Compare(p1) = %d, want 0", p1.Compare(p1))
	}
	if p1.Compare(token.NoPos) != -1 {
		t.Errorf("p1.Compare(NoPos) = %d, want -1 (NoPos sorts after any valid position)", p1.Compare(token.NoPos))
	}
	if token.NoPos.Compare(p1) != 1 {
		t.Errorf("NoPos.Compare(p1) = %d, want 1", token.NoPos.Compare(p1))
	}
}

func TestWindowAtPastEndSynthesizesEOF(t *testing.T) {
	w := token.NewWindow([]token.Token{{Class: token.KwAction}})
	if got := w.At(5).Class; got != token.EOF {
		t.Errorf("At(5).Class = %s, want EOF", got)
	}
	if got := w.At(-1).Class; got != token.EOF {
		t.Errorf("At(-1).Class = %s, want EOF", got)
	}
}

func TestWindowNextAdvancesAndStopsAtEOF(t *testing.T) {
	toks := []token.Token{
		{Class: token.KwAction},
		{Class: token.IDENT, Lexeme: "a"},
	}
	w := token.NewWindow(toks)

	if got := w.Peek().Class; got != token.KwAction {
		t.Fatalf("Peek() = %s, want KwAction", got)
	}
	if got := w.Next().Class; got != token.KwAction {
		t.Fatalf("first Next() = %s, want KwAction", got)
	}
	if got := w.Next().Class; got != token.IDENT {
		t.Fatalf("second Next() = %s, want IDENT", got)
	}
	// Past the end, Next() keeps returning synthetic EOF without panicking.
	if got := w.Next().Class; got != token.EOF {
		t.Errorf("Next() past end = %s, want EOF", got)
	}
	if got := w.Next().Class; got != token.EOF {
		t.Errorf("repeated Next() past end = %s, want EOF", got)
	}
}

func TestWindowLen(t *testing.T) {
	w := token.NewWindow([]token.Token{{}, {}, {}})
	if got := w.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

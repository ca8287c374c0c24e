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

// Package parser implements P1, the recursive-descent front end that
// turns a token sequence into an *ast.Program while declaring every
// TYPE-introducing production into the root scope as it goes (C2+C3+C4
// combined). It keeps a look-ahead token, expect/errorExpected helpers,
// and a mode/Option pattern for configuring a parse, with precedence
// climbing for binary expressions — there is no comment plumbing and no
// error list, since every error is fatal per spec §7, and no scope
// stack, since scope.Build (P2) is the pass responsible for every
// non-TYPE declaration and every non-root scope push (see
// scope/build.go).
package parser

import (
	"github.com/packetlang/p4front/arena"
	"github.com/packetlang/p4front/ast"
	"github.com/packetlang/p4front/errors"
	"github.com/packetlang/p4front/scope"
	"github.com/packetlang/p4front/token"
)

// Option configures a parse via the functional-options pattern.
type Option func(p *parser)

// Trace sets the parser's trace flag. No production reads the flag, so a
// parse with Trace set prints nothing and behaves like one without it.
var Trace Option = func(p *parser) { p.trace = true }

// parser holds all per-parse mutable state. There is no scope stack:
// per scope/build.go's contract, this package only ever calls
// root.Declare(scope.Type, ...) at the point a type-introducing
// production names itself; every other declaration and every non-root
// scope belongs to P2 (scope.Build).
type parser struct {
	a    *arena.Arena
	ids  *ast.IDAllocator
	file *token.File
	root *scope.Scope

	w   *token.Window
	cur token.Token // current look-ahead token, already classified

	trace  bool
	indent int
}

// Parse runs P1 over toks, returning the resulting *ast.Program. toks
// need not be EOF-terminated; token.Window synthesizes EOF past the end.
// root must already be built via scope.NewRoot — the Type namespace it
// ends up holding, once Parse returns, contains every atomic plus every
// type this compilation unit declared at the top level (the parser
// declares no type names anywhere else).
//
// Parse panics with a fatal *errors.Error (via errors.Fatal) on the
// first syntax error; compile.Compile is the only caller expected to
// recover it.
func Parse(a *arena.Arena, ids *ast.IDAllocator, file *token.File, root *scope.Scope, toks []token.Token, opts ...Option) *ast.Program {
	p := &parser{a: a, ids: ids, file: file, root: root, w: token.NewWindow(toks)}
	for _, o := range opts {
		o(p)
	}
	p.advance()
	return p.parseProgram()
}

// curPos returns the source position of the current look-ahead token.
func (p *parser) curPos() token.Pos {
	return token.Pos{File: p.file, Line: p.cur.Line, Column: p.cur.Column}
}

// nextID allocates the next monotonic AST node id (spec §5).
func (p *parser) nextID() int { return p.ids.Next() }

// classify rewrites an IDENT token's Class to TYPE_IDENT or a keyword
// class by consulting the root scope, per spec §4.1's token-class
// feedback rule. It is pure (scope reads only), so it is equally safe to
// apply to the real look-ahead token and to a token fetched only for
// speculative lookahead.
func (p *parser) classify(tok token.Token) token.Token {
	if tok.Class != token.IDENT {
		return tok
	}
	if decls := scope.LookupNS(p.root, scope.Keyword, tok.Lexeme); len(decls) > 0 {
		tok.Class = decls[0].TokenClass
		return tok
	}
	if decls := scope.LookupNS(p.root, scope.Type, tok.Lexeme); len(decls) > 0 {
		tok.Class = token.TYPE_IDENT
		return tok
	}
	return tok
}

// advance consumes the current look-ahead token and classifies the new
// one, skipping COMMENT tokens (spec §6: "COMMENT... quietly skipped").
func (p *parser) advance() {
	for {
		p.cur = p.classify(p.w.Next())
		if p.cur.Class != token.COMMENT {
			return
		}
	}
}

// peekClassified returns the classified token.Class of the single token
// after the current one, without consuming anything (spec §4.1's
// type-argument disambiguation rule needs exactly this one token of
// lookahead).
func (p *parser) peekClassified() token.Class {
	return p.classify(p.w.Peek()).Class
}

func (p *parser) errorExpected(pos token.Pos, want string) {
	errors.Fatalf(errors.Syntax, pos, "expected %s, found %q", want, p.cur.Lexeme)
}

// expect consumes the current token if it has class c, else raises a
// fatal syntax error. Returns the consumed token's position. When c is GT
// and the current token is a `>>` (SHR), only its first `>` is consumed
// and the current token becomes the second `>`, so two nested
// angle-bracket lists can close on one `>>`.
func (p *parser) expect(c token.Class) token.Pos {
	pos := p.curPos()
	if c == token.GT && p.cur.Class == token.SHR {
		p.cur.Class, p.cur.Lexeme = token.GT, ">"
		p.cur.Column++
		return pos
	}
	if p.cur.Class != c {
		p.errorExpected(pos, "'"+c.String()+"'")
	}
	p.advance()
	return pos
}

// declareType installs name into the root scope's TYPE namespace at the
// point a type-introducing production names itself (scope/build.go:
// "TYPE-declared inline by the parser; no VAR content to install").
func (p *parser) declareType(name *ast.Ident, node ast.Node) {
	decl := arena.Alloc[scope.NameDecl](p.a)
	decl.Name, decl.Pos, decl.Node = name.Name, name.Pos(), node
	p.root.Declare(scope.Type, decl)
}

// parseName accepts either an IDENT or a TYPE_IDENT, mirroring
// original_source/parser.cpp's parse_name.
func (p *parser) parseName() *ast.Ident {
	if p.cur.Class != token.IDENT && p.cur.Class != token.TYPE_IDENT {
		p.errorExpected(p.curPos(), "a name")
	}
	id := &ast.Ident{Name: p.cur.Lexeme}
	id.SetBase(p.nextID(), p.curPos())
	p.advance()
	return id
}

// parseNonTypeName accepts only an IDENT, mirroring
// original_source/parser.cpp's parse_nonTypeName (used wherever a name
// must not shadow an already-declared type, e.g. lvalues, action names,
// action references).
func (p *parser) parseNonTypeName() *ast.Ident {
	if p.cur.Class != token.IDENT {
		p.errorExpected(p.curPos(), "a non-type name")
	}
	id := &ast.Ident{Name: p.cur.Lexeme}
	id.SetBase(p.nextID(), p.curPos())
	p.advance()
	return id
}

// parseProgram parses the whole compilation unit (spec §4.1 top level).
func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	prog.SetBase(p.nextID(), p.curPos())
	for p.cur.Class != token.EOF {
		prog.Decls = append(prog.Decls, p.parseTopDecl())
	}
	return prog
}

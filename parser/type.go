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

package parser

import (
	"github.com/packetlang/p4front/ast"
	"github.com/packetlang/p4front/token"
)

// startsTypeRef reports whether the current token can begin a typeRef
// production (spec §4.1), grounded on original_source's
// token_is_typeRef/token_is_baseType predicates.
func (p *parser) startsTypeRef() bool {
	switch p.cur.Class {
	case token.TYPE_IDENT, token.KwBool, token.KwInt, token.KwBit,
		token.KwVarbit, token.KwString, token.KwVoid, token.KwError, token.KwTuple:
		return true
	}
	return false
}

// parseTypeRef parses one syntactic type expression (spec §4.1).
func (p *parser) parseTypeRef() ast.TypeExpr {
	switch p.cur.Class {
	case token.KwBool, token.KwInt, token.KwBit, token.KwVarbit, token.KwString, token.KwVoid, token.KwError:
		return p.parseBaseType()
	case token.TYPE_IDENT:
		return p.parseNamedType()
	case token.KwTuple:
		return p.parseTupleType()
	}
	p.errorExpected(p.curPos(), "a type")
	panic("unreachable")
}

// parseBaseType parses one of the six atomic/sized-atomic base types.
func (p *parser) parseBaseType() ast.TypeExpr {
	pos := p.curPos()
	switch p.cur.Class {
	case token.KwInt, token.KwBit, token.KwVarbit:
		signed := p.cur.Class == token.KwInt
		isVarbit := p.cur.Class == token.KwVarbit
		p.advance()
		var size ast.Expr
		if p.cur.Class == token.LT {
			p.advance()
			size = p.parseIntegerTypeSize()
			p.expect(token.GT)
		} else if isVarbit {
			p.errorExpected(p.curPos(), "'<'")
		}
		bt := &ast.BitTypeExpr{Signed: signed, IsVarbit: isVarbit, Size: size}
		bt.SetBase(p.nextID(), pos)
		return bt
	default:
		name := &ast.Ident{Name: p.cur.Lexeme}
		name.SetBase(p.nextID(), pos)
		p.advance()
		bt := &ast.BaseTypeExpr{Name: name}
		bt.SetBase(p.nextID(), pos)
		return bt
	}
}

// parseIntegerTypeSize parses the literal width inside `bit<N>`/`int<N>`/
// `varbit<N>` (original_source restricts this to a bare integer literal).
func (p *parser) parseIntegerTypeSize() ast.Expr {
	if p.cur.Class != token.INT_LIT {
		p.errorExpected(p.curPos(), "an integer")
	}
	return p.parseInteger()
}

// parseNamedType parses a declared type-name reference, with the
// optional `<typeArgs>` specialization spec §4.1 requires disambiguating
// from a less-than comparison (exactly one token of lookahead past the
// already-consumed `<`), and the optional trailing `[size]` header-stack
// suffix.
func (p *parser) parseNamedType() ast.TypeExpr {
	pos := p.curPos()
	name := p.parseName()
	nt := &ast.NamedTypeExpr{Name: name}
	nt.SetBase(p.nextID(), pos)

	if p.cur.Class == token.LT && p.startsRealTypeArg(p.peekClassified()) {
		p.advance()
		nt.Args = p.parseTypeArgumentList()
		p.expect(token.GT)
	}

	var typ ast.TypeExpr = nt
	if p.cur.Class == token.LBRACK {
		typ = p.parseHeaderStackType(nt)
	}
	return typ
}

// startsRealTypeArg reports whether a classified token class can begin a
// realTypeArg (spec §4.1's disambiguation set): a declared type name, a
// base-type keyword, `tuple`, or `_`.
func (p *parser) startsRealTypeArg(c token.Class) bool {
	switch c {
	case token.TYPE_IDENT, token.KwBool, token.KwInt, token.KwBit,
		token.KwVarbit, token.KwString, token.KwVoid, token.KwError,
		token.KwTuple, token.DONTCARE:
		return true
	}
	return false
}

// parseHeaderStackType parses the `[size]` suffix of a header-stack field
// type, wrapping elem (already parsed).
func (p *parser) parseHeaderStackType(elem ast.TypeExpr) ast.TypeExpr {
	pos := p.expect(token.LBRACK)
	size := p.parseExpr(1)
	p.expect(token.RBRACK)
	hs := &ast.HeaderStackTypeExpr{Elem: elem, Size: size}
	hs.SetBase(p.nextID(), pos)
	return hs
}

// parseTupleType parses `tuple<T1, T2, ...>`.
func (p *parser) parseTupleType() ast.TypeExpr {
	pos := p.expect(token.KwTuple)
	p.expect(token.LT)
	elems := p.parseTypeArgumentList()
	p.expect(token.GT)
	tt := &ast.TupleTypeExpr{Elems: elems}
	tt.SetBase(p.nextID(), pos)
	return tt
}

// parseTypeArgumentList parses a comma-separated list of type arguments.
// One argument may be `_` (DontCareTypeExpr); a bare non-type-name value
// argument (original_source's typeArg "value parameter" form, used by
// value-parameterized generics this front end does not otherwise model)
// is represented as a NamedTypeExpr wrapping that identifier.
func (p *parser) parseTypeArgumentList() []ast.TypeExpr {
	var out []ast.TypeExpr
	if !p.startsTypeArg() {
		return out
	}
	out = append(out, p.parseTypeArg())
	for p.cur.Class == token.COMMA {
		p.advance()
		out = append(out, p.parseTypeArg())
	}
	return out
}

func (p *parser) startsTypeArg() bool {
	return p.cur.Class == token.DONTCARE || p.startsTypeRef() || p.cur.Class == token.IDENT
}

func (p *parser) parseTypeArg() ast.TypeExpr {
	pos := p.curPos()
	if p.cur.Class == token.DONTCARE {
		p.advance()
		dc := &ast.DontCareTypeExpr{}
		dc.SetBase(p.nextID(), pos)
		return dc
	}
	if p.startsTypeRef() {
		return p.parseTypeRef()
	}
	name := p.parseNonTypeName()
	nt := &ast.NamedTypeExpr{Name: name}
	nt.SetBase(p.nextID(), pos)
	return nt
}

// parseTypeOrVoid parses a function/method return type: either a full
// typeRef, or a bare `void`, or (for a function declared by a name the
// parser hasn't yet seen as a type) a raw name wrapped in a
// NamedTypeExpr — original_source's parse_typeOrVoid allows a
// not-yet-declared return-type identifier this way. The parser does not
// declare that name as a TYPE; it resolves only if a type of that name
// is declared elsewhere in the unit.
func (p *parser) parseTypeOrVoid() ast.TypeExpr {
	if p.cur.Class == token.KwVoid {
		pos := p.curPos()
		name := &ast.Ident{Name: p.cur.Lexeme}
		name.SetBase(p.nextID(), pos)
		p.advance()
		bt := &ast.BaseTypeExpr{Name: name}
		bt.SetBase(p.nextID(), pos)
		return bt
	}
	if p.startsTypeRef() {
		return p.parseTypeRef()
	}
	pos := p.curPos()
	name := p.parseNonTypeName()
	nt := &ast.NamedTypeExpr{Name: name}
	nt.SetBase(p.nextID(), pos)
	return nt
}

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

// parseExpression parses a full expression, the entry point every
// non-recursive call site in the grammar uses (original_source's
// parse_expression(1): priority 1 is the lowest real operator
// precedence, i.e. "parse as much expression as there is").
func (p *parser) parseExpression() ast.Expr { return p.parseExpr(1) }

// parseExpr parses an expression, only continuing to fold in a binary
// operator while its precedence is >= prec1 (spec §4.1's 5-level
// precedence table). Postfix forms (member-select, index, call) bind
// tighter than every binary operator and so are folded into the primary
// before any precedence comparison happens, mirroring
// original_source/parser.cpp's single flattened parse_expression loop
// (DOT/BRACKET_OPEN/PARENTH_OPEN/binaryOperator all handled in one loop)
// adapted into Go's separate Expr/Stmt node hierarchy — assignment,
// which that same C loop also handles via an EQUAL case, is deliberately
// NOT handled here: this front end only reaches an assignment at
// statement level (see parseAssignmentOrCallStmt), where the
// result is an ast.Stmt, not an ast.Expr.
func (p *parser) parseExpr(prec1 int) ast.Expr {
	x := p.parsePrimaryExpr()
	for {
		switch p.cur.Class {
		case token.PERIOD:
			pos := p.curPos()
			p.advance()
			sel := p.parseNonTypeName()
			se := &ast.SelectorExpr{X: x, Sel: sel}
			se.SetBase(p.nextID(), pos)
			x = se
			continue
		case token.LBRACK:
			pos := p.curPos()
			p.advance()
			idx := p.parseIndexExpr()
			p.expect(token.RBRACK)
			ie := &ast.IndexExpr{X: x, Index: idx}
			ie.SetBase(p.nextID(), pos)
			x = ie
			continue
		case token.LPAREN:
			pos := p.curPos()
			p.advance()
			args := p.parseArgumentList()
			p.expect(token.RPAREN)
			ce := &ast.CallExpr{Fun: x, Args: args}
			ce.SetBase(p.nextID(), pos)
			x = ce
			continue
		}
		prec := p.cur.Class.Precedence()
		if prec == token.LowestPrec || prec < prec1 {
			return x
		}
		op := p.cur.Class
		pos := p.curPos()
		p.advance()
		y := p.parseExpr(prec + 1)
		be := &ast.BinaryExpr{Op: op, X: x, Y: y}
		be.SetBase(p.nextID(), pos)
		x = be
	}
}

// parsePrimaryExpr parses one primary expression: a literal, a name, a
// parenthesized/cast/list form, a unary operator application, or the
// `error` keyword used as a value.
func (p *parser) parsePrimaryExpr() ast.Expr {
	pos := p.curPos()
	switch p.cur.Class {
	case token.INT_LIT:
		return p.parseInteger()
	case token.KwTrue, token.KwFalse:
		return p.parseBoolean()
	case token.STRING_LIT:
		return p.parseString()
	case token.PERIOD:
		p.advance()
		id := &ast.Ident{Name: p.cur.Lexeme}
		id.SetBase(p.nextID(), p.curPos())
		if p.cur.Class != token.IDENT && p.cur.Class != token.TYPE_IDENT {
			p.errorExpected(p.curPos(), "a name")
		}
		p.advance()
		return id
	case token.IDENT:
		return p.parseNonTypeName()
	case token.LBRACE:
		p.advance()
		elems := p.parseExpressionList()
		p.expect(token.RBRACE)
		le := &ast.ListExpr{Elems: elems}
		le.SetBase(p.nextID(), pos)
		return le
	case token.LPAREN:
		p.advance()
		if p.cur.Class == token.TYPE_IDENT && p.peekClassified() == token.PERIOD {
			x := p.parseExpr(1)
			p.expect(token.RPAREN)
			return x
		}
		if p.startsTypeRef() {
			typ := p.parseTypeRef()
			p.expect(token.RPAREN)
			x := p.parseExpr(10)
			ce := &ast.CastExpr{Type: typ, X: x}
			ce.SetBase(p.nextID(), pos)
			return ce
		}
		x := p.parseExpr(1)
		p.expect(token.RPAREN)
		return x
	case token.NOT, token.BITNOT, token.UNARY_MINUS:
		op := p.cur.Class
		p.advance()
		x := p.parseExpr(1)
		ue := &ast.UnaryExpr{Op: op, X: x}
		ue.SetBase(p.nextID(), pos)
		return ue
	case token.TYPE_IDENT:
		return p.parseName()
	case token.KwError:
		p.advance()
		ee := &ast.ErrorExpr{}
		ee.SetBase(p.nextID(), pos)
		return ee
	}
	p.errorExpected(pos, "an expression")
	panic("unreachable")
}

// parseIndexExpr parses the content of a `[...]` postfix: a single index
// expression, or a `hi:lo` bit-slice range encoded as a BinaryExpr whose
// Op is COLON (there being no dedicated slice-range node; COLON is not
// otherwise a valid BinaryExpr operator, so this encoding is unambiguous
// to any later pass).
func (p *parser) parseIndexExpr() ast.Expr {
	pos := p.curPos()
	start := p.parseExpr(1)
	if p.cur.Class != token.COLON {
		return start
	}
	p.advance()
	end := p.parseExpr(1)
	be := &ast.BinaryExpr{Op: token.COLON, X: start, Y: end}
	be.SetBase(p.nextID(), pos)
	return be
}

// parseArgumentList parses a comma-separated call/instantiation argument
// list; `_` stands for an omitted (don't-care) argument, represented as
// a bare DontCareTypeExpr-less Ident named "_" since argument position is
// an Expr slot, not a TypeExpr slot (spec's don't-care token doubles as
// a placeholder in both syntactic categories).
func (p *parser) parseArgumentList() []ast.Expr {
	var out []ast.Expr
	if !p.startsArgument() {
		return out
	}
	out = append(out, p.parseArgument())
	for p.cur.Class == token.COMMA {
		p.advance()
		out = append(out, p.parseArgument())
	}
	return out
}

func (p *parser) startsArgument() bool {
	return p.cur.Class == token.DONTCARE || p.startsExpr()
}

func (p *parser) parseArgument() ast.Expr {
	if p.cur.Class == token.DONTCARE {
		pos := p.curPos()
		p.advance()
		id := &ast.Ident{Name: "_"}
		id.SetBase(p.nextID(), pos)
		return id
	}
	return p.parseExpr(1)
}

// startsExpr reports whether the current token can begin a primary
// expression.
func (p *parser) startsExpr() bool {
	switch p.cur.Class {
	case token.INT_LIT, token.KwTrue, token.KwFalse, token.STRING_LIT,
		token.PERIOD, token.IDENT, token.LBRACE, token.LPAREN,
		token.NOT, token.BITNOT, token.UNARY_MINUS, token.TYPE_IDENT, token.KwError:
		return true
	}
	return false
}

// parseExpressionList parses a comma-separated expression list (the
// brace-delimited list-literal's interior).
func (p *parser) parseExpressionList() []ast.Expr {
	var out []ast.Expr
	if !p.startsExpr() {
		return out
	}
	out = append(out, p.parseExpr(1))
	for p.cur.Class == token.COMMA {
		p.advance()
		out = append(out, p.parseExpr(1))
	}
	return out
}

// parseLValue parses an assignment target: a non-type name followed by
// any number of `.field` / `[index]` postfixes. The member after `.` may
// also be the `apply` keyword, as in a `t.apply();` call statement.
func (p *parser) parseLValue() ast.Expr {
	var x ast.Expr = p.parseNonTypeName()
	for {
		switch p.cur.Class {
		case token.PERIOD:
			pos := p.curPos()
			p.advance()
			var sel *ast.Ident
			if p.cur.Class == token.KwApply {
				sel = &ast.Ident{Name: p.cur.Lexeme}
				sel.SetBase(p.nextID(), p.curPos())
				p.advance()
			} else {
				sel = p.parseName()
			}
			se := &ast.SelectorExpr{X: x, Sel: sel}
			se.SetBase(p.nextID(), pos)
			x = se
		case token.LBRACK:
			pos := p.curPos()
			p.advance()
			idx := p.parseIndexExpr()
			p.expect(token.RBRACK)
			ie := &ast.IndexExpr{X: x, Index: idx}
			ie.SetBase(p.nextID(), pos)
			x = ie
		default:
			return x
		}
	}
}

func (p *parser) parseInteger() ast.Expr {
	if p.cur.Class != token.INT_LIT {
		p.errorExpected(p.curPos(), "an integer")
	}
	lit := &ast.IntLit{Value: p.cur.Int}
	lit.SetBase(p.nextID(), p.curPos())
	p.advance()
	return lit
}

func (p *parser) parseBoolean() ast.Expr {
	val := p.cur.Class == token.KwTrue
	lit := &ast.BoolLit{Value: val}
	lit.SetBase(p.nextID(), p.curPos())
	p.advance()
	return lit
}

func (p *parser) parseString() ast.Expr {
	lit := &ast.StringLit{Value: p.cur.Str}
	lit.SetBase(p.nextID(), p.curPos())
	p.advance()
	return lit
}

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

// startsStmt reports whether the current token can begin a statement
// inside an action/function/apply body (spec §4.1's statementOrDecl
// set, minus the declaration-only leading keywords handled separately
// by parseBlockStmt).
func (p *parser) startsStmt() bool {
	switch p.cur.Class {
	case token.IDENT, token.TYPE_IDENT, token.LBRACE, token.KwIf, token.SEMICOLON,
		token.KwExit, token.KwReturn, token.KwSwitch:
		return true
	}
	return p.startsTypeRef()
}

func (p *parser) parseBlockStmt() *ast.BlockStmt {
	pos := p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for p.startsStmt() || p.cur.Class == token.KwConst {
		stmts = append(stmts, p.parseStmtOrDecl())
	}
	p.expect(token.RBRACE)
	b := &ast.BlockStmt{Stmts: stmts}
	b.SetBase(p.nextID(), pos)
	return b
}

// parseStmtOrDecl parses one block-local statement-or-declaration,
// grounded on original_source's parse_statementOrDeclaration: a leading
// typeRef may turn out to be an instantiation or a local variable decl
// rather than a statement, disambiguated the same way the top-level
// declaration dispatch does.
func (p *parser) parseStmtOrDecl() ast.Stmt {
	if p.cur.Class == token.KwConst {
		return p.parseConstOrVarDecl(nil).(ast.Stmt)
	}
	if p.startsTypeRef() {
		typ := p.parseTypeRef()
		switch {
		case p.cur.Class == token.LPAREN:
			return p.parseInstantiation(typ).(ast.Stmt)
		case p.cur.Class == token.IDENT:
			return p.parseConstOrVarDecl(typ).(ast.Stmt)
		default:
			return p.parseStmtWithTypeName(typ)
		}
	}
	return p.parseStmt()
}

// parseStmt parses one statement that does not begin with a typeRef
// already consumed by the caller.
func (p *parser) parseStmt() ast.Stmt {
	switch p.cur.Class {
	case token.TYPE_IDENT:
		typ := p.parseTypeRef()
		return p.parseStmtWithTypeName(typ)
	case token.IDENT:
		return p.parseAssignmentOrCallStmt()
	case token.LBRACE:
		return p.parseBlockStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwExit:
		return p.parseExitStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwSwitch:
		return p.parseSwitchStmt()
	case token.SEMICOLON:
		pos := p.curPos()
		p.advance()
		b := &ast.BlockStmt{}
		b.SetBase(p.nextID(), pos)
		return b
	}
	p.errorExpected(p.curPos(), "a statement")
	panic("unreachable")
}

// parseStmtWithTypeName continues a statement whose leading typeRef has
// already been consumed. Only the direct application form
// (`T.apply(args);`) is accepted; any other continuation is a syntax
// error.
func (p *parser) parseStmtWithTypeName(typ ast.TypeExpr) ast.Stmt {
	if p.cur.Class == token.PERIOD {
		return p.parseDirectApplication(typ)
	}
	p.errorExpected(p.curPos(), "'.'")
	panic("unreachable")
}

// parseDirectApplication desugars `T.apply(args);` into an ExprStmt
// wrapping a CallExpr on a SelectorExpr; no dedicated AST node exists
// for this form.
func (p *parser) parseDirectApplication(typ ast.TypeExpr) ast.Stmt {
	pos := p.curPos()
	nt, ok := typ.(*ast.NamedTypeExpr)
	if !ok {
		p.errorExpected(pos, "a type name")
	}
	var recv ast.Expr = nt.Name
	p.expect(token.PERIOD)
	p.expect(token.KwApply)
	p.expect(token.LPAREN)
	args := p.parseArgumentList()
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	sel := &ast.SelectorExpr{X: recv, Sel: &ast.Ident{Name: "apply"}}
	sel.Sel.SetBase(p.nextID(), pos)
	sel.SetBase(p.nextID(), pos)
	call := &ast.CallExpr{Fun: sel, Args: args}
	call.SetBase(p.nextID(), pos)
	es := &ast.ExprStmt{X: call}
	es.SetBase(p.nextID(), pos)
	return es
}

// parseAssignmentOrCallStmt parses `lvalue = expr;` or `lvalue(args);`,
// the statement-level-only home for assignment (see parser/expr.go's
// doc comment on parseExpr for why this never happens inside the
// expression-precedence loop itself).
func (p *parser) parseAssignmentOrCallStmt() ast.Stmt {
	pos := p.curPos()
	lv := p.parseLValue()
	switch p.cur.Class {
	case token.LPAREN:
		p.advance()
		args := p.parseArgumentList()
		p.expect(token.RPAREN)
		p.expect(token.SEMICOLON)
		call := &ast.CallExpr{Fun: lv, Args: args}
		call.SetBase(p.nextID(), pos)
		es := &ast.ExprStmt{X: call}
		es.SetBase(p.nextID(), pos)
		return es
	case token.ASSIGN:
		p.advance()
		rhs := p.parseExpression()
		p.expect(token.SEMICOLON)
		as := &ast.AssignStmt{LHS: lv, RHS: rhs}
		as.SetBase(p.nextID(), pos)
		return as
	}
	p.errorExpected(p.curPos(), "'=' or '('")
	panic("unreachable")
}

func (p *parser) parseIfStmt() ast.Stmt {
	pos := p.expect(token.KwIf)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStmt()
	var els ast.Stmt
	if p.cur.Class == token.KwElse {
		p.advance()
		els = p.parseStmt()
	}
	is := &ast.IfStmt{Cond: cond, Then: then, Else: els}
	is.SetBase(p.nextID(), pos)
	return is
}

func (p *parser) parseExitStmt() ast.Stmt {
	pos := p.expect(token.KwExit)
	p.expect(token.SEMICOLON)
	es := &ast.ExitStmt{}
	es.SetBase(p.nextID(), pos)
	return es
}

func (p *parser) parseReturnStmt() ast.Stmt {
	pos := p.expect(token.KwReturn)
	var val ast.Expr
	if p.startsExpr() {
		val = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	rs := &ast.ReturnStmt{Value: val}
	rs.SetBase(p.nextID(), pos)
	return rs
}

func (p *parser) parseSwitchStmt() ast.Stmt {
	pos := p.expect(token.KwSwitch)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	var cases []*ast.SwitchCase
	for p.startsSwitchLabel() {
		cases = append(cases, p.parseSwitchCase())
	}
	p.expect(token.RBRACE)
	ss := &ast.SwitchStmt{Cond: cond, Cases: cases}
	ss.SetBase(p.nextID(), pos)
	return ss
}

func (p *parser) startsSwitchLabel() bool {
	return p.cur.Class == token.IDENT || p.cur.Class == token.TYPE_IDENT || p.cur.Class == token.KwDefault
}

func (p *parser) parseSwitchCase() *ast.SwitchCase {
	pos := p.curPos()
	var label ast.Expr
	if p.cur.Class == token.KwDefault {
		p.advance()
	} else {
		label = p.parseName()
	}
	p.expect(token.COLON)
	var body *ast.BlockStmt
	if p.cur.Class == token.LBRACE {
		body = p.parseBlockStmt()
	}
	sc := &ast.SwitchCase{Label: label, Body: body}
	sc.SetBase(p.nextID(), pos)
	return sc
}

// Parser-state statements (spec §4.1's parserStatement set: a subset of
// the full statement grammar that also allows a bare local variable
// declaration and a direct application, matching original_source's
// parse_parserStatement).

func (p *parser) startsParserStatement() bool {
	return p.startsTypeRef() || p.cur.Class == token.IDENT || p.cur.Class == token.LBRACE ||
		p.cur.Class == token.KwConst || p.cur.Class == token.SEMICOLON
}

func (p *parser) parseParserStatement() ast.Stmt {
	switch {
	case p.cur.Class == token.KwConst:
		return p.parseConstOrVarDecl(nil).(ast.Stmt)
	case p.startsTypeRef():
		typ := p.parseTypeRef()
		if p.cur.Class == token.IDENT {
			return p.parseConstOrVarDecl(typ).(ast.Stmt)
		}
		return p.parseDirectApplication(typ)
	case p.cur.Class == token.IDENT:
		return p.parseAssignmentOrCallStmt()
	case p.cur.Class == token.LBRACE:
		return p.parseBlockStmt()
	case p.cur.Class == token.SEMICOLON:
		pos := p.curPos()
		p.advance()
		b := &ast.BlockStmt{}
		b.SetBase(p.nextID(), pos)
		return b
	}
	p.errorExpected(p.curPos(), "a parser statement")
	panic("unreachable")
}

func (p *parser) parseTransitionStmt() *ast.TransitionStmt {
	pos := p.expect(token.KwTransition)
	if p.cur.Class == token.KwSelect {
		sel := p.parseSelectExpr()
		ts := &ast.TransitionStmt{Select: sel}
		ts.SetBase(p.nextID(), pos)
		return ts
	}
	target := p.parseName()
	p.expect(token.SEMICOLON)
	ts := &ast.TransitionStmt{Target: target}
	ts.SetBase(p.nextID(), pos)
	return ts
}

func (p *parser) parseSelectExpr() *ast.SelectExpr {
	pos := p.expect(token.KwSelect)
	p.expect(token.LPAREN)
	exprs := p.parseExpressionList()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	var cases []*ast.SelectCase
	for p.startsKeysetExpr() {
		cases = append(cases, p.parseSelectCase())
	}
	p.expect(token.RBRACE)
	se := &ast.SelectExpr{Exprs: exprs, Cases: cases}
	se.SetBase(p.nextID(), pos)
	return se
}

func (p *parser) parseSelectCase() *ast.SelectCase {
	pos := p.curPos()
	ks := p.parseKeysetExpr()
	p.expect(token.COLON)
	target := p.parseName()
	p.expect(token.SEMICOLON)
	sc := &ast.SelectCase{Keyset: ks, Target: target}
	sc.SetBase(p.nextID(), pos)
	return sc
}

func (p *parser) startsKeysetExpr() bool {
	return p.cur.Class == token.LPAREN || p.startsSimpleKeysetExpr()
}

func (p *parser) startsSimpleKeysetExpr() bool {
	return p.startsExpr() || p.cur.Class == token.KwDefault || p.cur.Class == token.DONTCARE
}

func (p *parser) parseKeysetExpr() ast.Keyset {
	if p.cur.Class == token.LPAREN {
		return p.parseTupleKeysetExpr()
	}
	return p.parseSimpleKeysetExpr()
}

func (p *parser) parseTupleKeysetExpr() ast.Keyset {
	pos := p.expect(token.LPAREN)
	var elems []ast.Keyset
	elems = append(elems, p.parseSimpleKeysetExpr())
	for p.cur.Class == token.COMMA {
		p.advance()
		elems = append(elems, p.parseSimpleKeysetExpr())
	}
	p.expect(token.RPAREN)
	tk := &ast.TupleKeyset{Elems: elems}
	tk.SetBase(p.nextID(), pos)
	return tk
}

func (p *parser) parseSimpleKeysetExpr() ast.Keyset {
	pos := p.curPos()
	switch p.cur.Class {
	case token.KwDefault:
		p.advance()
		dk := &ast.DefaultKeyset{}
		dk.SetBase(p.nextID(), pos)
		return dk
	case token.DONTCARE:
		p.advance()
		dc := &ast.DontCareKeyset{}
		dc.SetBase(p.nextID(), pos)
		return dc
	}
	x := p.parseExpression()
	ek := &ast.ExprKeyset{X: x}
	ek.SetBase(p.nextID(), pos)
	return ek
}

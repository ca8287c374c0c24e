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

// parseTopDecl dispatches one top-level declaration, grounded on
// original_source/parser.cpp's parse_declaration. Every branch that
// introduces a TYPE name calls declareType at the point the production
// names itself (spec §4.1's "declare as you parse" rule), matching
// original_source's inline current_scope->bind_name calls.
func (p *parser) parseTopDecl() ast.Decl {
	switch {
	case p.cur.Class == token.KwConst:
		return p.parseConstOrVarDecl(nil)
	case p.cur.Class == token.KwExtern:
		return p.parseExternDecl()
	case p.cur.Class == token.KwAction:
		return p.parseActionDecl()
	case p.cur.Class == token.KwParser:
		proto := p.parseParserTypeDecl()
		if p.cur.Class == token.SEMICOLON {
			p.advance()
			return proto
		}
		return p.parseParserDecl(proto)
	case p.cur.Class == token.KwControl:
		proto := p.parseControlTypeDecl()
		if p.cur.Class == token.SEMICOLON {
			p.advance()
			return proto
		}
		return p.parseControlDecl(proto)
	case p.cur.Class == token.KwHeader, p.cur.Class == token.KwHeaderUnion,
		p.cur.Class == token.KwStruct, p.cur.Class == token.KwEnum:
		return p.parseDerivedTypeDecl()
	case p.cur.Class == token.KwTypedef, p.cur.Class == token.KwType:
		return p.parseTypedefDecl()
	case p.cur.Class == token.KwPackage:
		return p.parsePackageTypeDecl()
	case p.cur.Class == token.KwError:
		return p.parseErrorDecl()
	case p.cur.Class == token.KwMatchKind:
		return p.parseMatchKindDecl()
	case p.startsTypeRef():
		typ := p.parseTypeRef()
		if p.cur.Class == token.LPAREN {
			return p.parseInstantiation(typ)
		}
		return p.parseFunctionDecl(typ)
	case p.cur.Class == token.KwVoid:
		return p.parseFunctionDecl(p.parseTypeOrVoid())
	}
	p.errorExpected(p.curPos(), "a top-level declaration")
	panic("unreachable")
}

// parseParameterList parses a comma-separated `(params)` interior.
func (p *parser) parseParameterList() []*ast.Parameter {
	var out []*ast.Parameter
	if p.startsParameter() {
		out = append(out, p.parseParameter())
		for p.cur.Class == token.COMMA {
			p.advance()
			out = append(out, p.parseParameter())
		}
	}
	return out
}

func (p *parser) startsParameter() bool {
	return p.cur.Class == token.KwIn || p.cur.Class == token.KwOut ||
		p.cur.Class == token.KwInout || p.startsTypeRef()
}

// parseParameter parses one `[dir] type name [= default]` parameter. The
// optional default-value expression is parsed (to keep the grammar
// total) but discarded: ast.Parameter has no slot for it, since default
// parameter values play no role in name resolution or type construction
// (see DESIGN.md).
func (p *parser) parseParameter() *ast.Parameter {
	pos := p.curPos()
	dir := p.parseDirection()
	typ := p.parseTypeRef()
	name := p.parseName()
	if p.cur.Class == token.ASSIGN {
		p.advance()
		p.parseExpression()
	}
	param := &ast.Parameter{Direction: dir, Name: name, Type: typ}
	param.SetBase(p.nextID(), pos)
	return param
}

func (p *parser) parseDirection() ast.Direction {
	switch p.cur.Class {
	case token.KwIn:
		p.advance()
		return ast.DirIn
	case token.KwOut:
		p.advance()
		return ast.DirOut
	case token.KwInout:
		p.advance()
		return ast.DirInOut
	}
	return ast.DirNone
}

// parseConstructorParameters parses the optional `(params)` following a
// parser or control implementation's type reference; it returns nil when
// the body's `{` follows directly.
func (p *parser) parseConstructorParameters() []*ast.Parameter {
	if p.cur.Class != token.LPAREN {
		return nil
	}
	p.expect(token.LPAREN)
	params := p.parseParameterList()
	p.expect(token.RPAREN)
	return params
}

func (p *parser) parsePackageTypeDecl() ast.Decl {
	pos := p.expect(token.KwPackage)
	name := p.parseName()
	pd := &ast.PackageDecl{Name: name}
	p.declareType(name, pd)
	pd.TypeParams = p.parseOptionalTypeParams()
	p.expect(token.LPAREN)
	pd.Params = p.parseParameterList()
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	pd.SetBase(p.nextID(), pos)
	return pd
}

// parseOptionalTypeParams parses an optional `<T, U>` type-parameter
// list. original_source's packageTypeDeclaration/parserTypeDeclaration/
// controlTypeDeclaration grammars have no such clause; this front end
// generalizes all three to accept one uniformly (see DESIGN.md), since
// P4's real generic packages/parsers/controls do carry one and nothing
// about C2-C4's scope/name-resolution model depends on disallowing it.
func (p *parser) parseOptionalTypeParams() []*ast.Ident {
	if p.cur.Class != token.LT {
		return nil
	}
	p.advance()
	var out []*ast.Ident
	out = append(out, p.parseNonTypeName())
	for p.cur.Class == token.COMMA {
		p.advance()
		out = append(out, p.parseNonTypeName())
	}
	p.expect(token.GT)
	return out
}

func (p *parser) parseInstantiation(typ ast.TypeExpr) ast.Decl {
	pos := p.curPos()
	p.expect(token.LPAREN)
	args := p.parseArgumentList()
	p.expect(token.RPAREN)
	name := p.parseName()
	p.expect(token.SEMICOLON)
	id := &ast.InstantiationDecl{Type: typ, Args: args, Name: name}
	id.SetBase(p.nextID(), pos)
	return id
}

func (p *parser) parseParserTypeDecl() *ast.ParserDecl {
	pos := p.expect(token.KwParser)
	name := p.parseName()
	typeParams := p.parseOptionalTypeParams()
	p.expect(token.LPAREN)
	params := p.parseParameterList()
	p.expect(token.RPAREN)
	pd := &ast.ParserDecl{Name: name, TypeParams: typeParams, Params: params}
	pd.SetBase(p.nextID(), pos)
	p.declareType(name, pd)
	return pd
}

// parseParserDecl parses the body following a parser type reference.
// The optional constructor parameter list (spec's
// `parser P(...)(ctorParams) {}` form, distinct from the type's own
// apply-time parameters) is parsed and discarded: name resolution and
// type construction only need the proto's Params, not a separate
// constructor arity.
func (p *parser) parseParserDecl(proto *ast.ParserDecl) ast.Decl {
	p.parseConstructorParameters()
	p.expect(token.LBRACE)
	for p.startsParserLocalElement() {
		proto.Locals = append(proto.Locals, p.parseParserLocalElement())
	}
	for p.cur.Class == token.KwState {
		proto.States = append(proto.States, p.parseParserState())
	}
	if len(proto.States) == 0 {
		p.errorExpected(p.curPos(), "'state'")
	}
	p.expect(token.RBRACE)
	return proto
}

func (p *parser) startsParserLocalElement() bool {
	return p.cur.Class == token.KwConst || p.startsTypeRef()
}

func (p *parser) parseParserLocalElement() ast.Decl {
	if p.cur.Class == token.KwConst {
		return p.parseConstOrVarDecl(nil)
	}
	typ := p.parseTypeRef()
	if p.cur.Class == token.LPAREN {
		return p.parseInstantiation(typ)
	}
	return p.parseConstOrVarDecl(typ)
}

func (p *parser) parseParserState() *ast.StateDecl {
	pos := p.expect(token.KwState)
	name := p.parseNonTypeName()
	p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for p.startsParserStatement() {
		stmts = append(stmts, p.parseParserStatement())
	}
	transition := p.parseTransitionStmt()
	p.expect(token.RBRACE)
	body := &ast.BlockStmt{Stmts: stmts}
	body.SetBase(p.nextID(), pos)
	sd := &ast.StateDecl{Name: name, Body: body, Transition: transition}
	sd.SetBase(p.nextID(), pos)
	return sd
}

func (p *parser) parseControlTypeDecl() *ast.ControlDecl {
	pos := p.expect(token.KwControl)
	name := p.parseName()
	typeParams := p.parseOptionalTypeParams()
	p.expect(token.LPAREN)
	params := p.parseParameterList()
	p.expect(token.RPAREN)
	cd := &ast.ControlDecl{Name: name, TypeParams: typeParams, Params: params}
	cd.SetBase(p.nextID(), pos)
	p.declareType(name, cd)
	return cd
}

func (p *parser) parseControlDecl(proto *ast.ControlDecl) ast.Decl {
	p.parseConstructorParameters()
	p.expect(token.LBRACE)
	for p.startsControlLocalDecl() {
		proto.Locals = append(proto.Locals, p.parseControlLocalDecl())
	}
	p.expect(token.KwApply)
	proto.Apply = p.parseBlockStmt()
	p.expect(token.RBRACE)
	return proto
}

func (p *parser) startsControlLocalDecl() bool {
	return p.cur.Class == token.KwConst || p.cur.Class == token.KwAction ||
		p.cur.Class == token.KwTable || p.startsTypeRef()
}

func (p *parser) parseControlLocalDecl() ast.Decl {
	switch p.cur.Class {
	case token.KwConst:
		return p.parseConstOrVarDecl(nil)
	case token.KwAction:
		return p.parseActionDecl()
	case token.KwTable:
		return p.parseTableDecl()
	}
	typ := p.parseTypeRef()
	if p.cur.Class == token.LPAREN {
		return p.parseInstantiation(typ)
	}
	return p.parseConstOrVarDecl(typ)
}

func (p *parser) parseExternDecl() ast.Decl {
	pos := p.expect(token.KwExtern)
	isFunctionType := false
	switch {
	case p.cur.Class == token.IDENT:
		// A bare name could be the extern type's own name, or a
		// not-yet-declared return type ahead of a function name
		// (parse_typeOrVoid's fallback). One token of lookahead
		// resolves it: a second name means return-type-then-name.
		isFunctionType = p.peekClassified() == token.IDENT || p.peekClassified() == token.TYPE_IDENT
	case p.startsTypeOrVoid():
		isFunctionType = true
	default:
		p.errorExpected(pos, "an extern declaration")
	}

	if isFunctionType {
		proto := p.parseFunctionProto(nil)
		p.expect(token.SEMICOLON)
		ed := &ast.ExternDecl{IsFunction: true, Proto: proto}
		ed.SetBase(p.nextID(), pos)
		return ed
	}

	name := p.parseNonTypeName()
	ed := &ast.ExternDecl{Name: name}
	p.declareType(name, ed)
	ed.TypeParams = p.parseOptionalTypeParams()
	p.expect(token.LBRACE)
	for p.startsMethodPrototype() {
		ed.Methods = append(ed.Methods, p.parseMethodPrototype(name))
	}
	p.expect(token.RBRACE)
	ed.SetBase(p.nextID(), pos)
	return ed
}

func (p *parser) startsTypeOrVoid() bool {
	return p.cur.Class == token.KwVoid || p.startsTypeRef()
}

func (p *parser) startsMethodPrototype() bool {
	return p.cur.Class == token.TYPE_IDENT || p.startsTypeOrVoid()
}

// parseFunctionProto parses a bare (non-member) function prototype.
// retType, if non-nil, was already consumed by the caller (spec's
// externDeclaration passes its already-parsed typeOrVoid through).
func (p *parser) parseFunctionProto(retType ast.TypeExpr) *ast.FunctionProto {
	pos := p.curPos()
	if retType == nil {
		retType = p.parseTypeOrVoid()
	}
	name := p.parseName()
	p.expect(token.LPAREN)
	params := p.parseParameterList()
	p.expect(token.RPAREN)
	fp := &ast.FunctionProto{Name: name, Params: params, ReturnType: retType}
	fp.SetBase(p.nextID(), pos)
	return fp
}

// parseMethodPrototype parses one extern-body method or constructor
// prototype; externName is the enclosing extern type's name, used to
// recognize the constructor form (a prototype named after its type,
// with no return type).
func (p *parser) parseMethodPrototype(externName *ast.Ident) *ast.FunctionProto {
	pos := p.curPos()
	if p.cur.Class == token.TYPE_IDENT && p.cur.Lexeme == externName.Name && p.peekClassified() == token.LPAREN {
		name := p.parseName()
		p.expect(token.LPAREN)
		params := p.parseParameterList()
		p.expect(token.RPAREN)
		p.expect(token.SEMICOLON)
		fp := &ast.FunctionProto{Name: name, Params: params}
		fp.SetBase(p.nextID(), pos)
		return fp
	}
	fp := p.parseFunctionProto(nil)
	p.expect(token.SEMICOLON)
	return fp
}

func (p *parser) parseDerivedTypeDecl() ast.Decl {
	switch p.cur.Class {
	case token.KwHeader:
		return p.parseHeaderTypeDecl()
	case token.KwHeaderUnion:
		return p.parseHeaderUnionTypeDecl()
	case token.KwStruct:
		return p.parseStructTypeDecl()
	case token.KwEnum:
		return p.parseEnumTypeDecl()
	}
	p.errorExpected(p.curPos(), "a structured type declaration")
	panic("unreachable")
}

func (p *parser) parseHeaderTypeDecl() ast.Decl {
	pos := p.expect(token.KwHeader)
	name := p.parseName()
	hd := &ast.HeaderTypeDecl{Name: name}
	p.declareType(name, hd)
	p.expect(token.LBRACE)
	hd.Fields = p.parseStructFieldList()
	p.expect(token.RBRACE)
	hd.SetBase(p.nextID(), pos)
	return hd
}

func (p *parser) parseHeaderUnionTypeDecl() ast.Decl {
	pos := p.expect(token.KwHeaderUnion)
	name := p.parseName()
	hd := &ast.HeaderUnionTypeDecl{Name: name}
	p.declareType(name, hd)
	p.expect(token.LBRACE)
	hd.Fields = p.parseStructFieldList()
	p.expect(token.RBRACE)
	hd.SetBase(p.nextID(), pos)
	return hd
}

func (p *parser) parseStructTypeDecl() ast.Decl {
	pos := p.expect(token.KwStruct)
	name := p.parseName()
	sd := &ast.StructTypeDecl{Name: name}
	p.declareType(name, sd)
	p.expect(token.LBRACE)
	sd.Fields = p.parseStructFieldList()
	p.expect(token.RBRACE)
	sd.SetBase(p.nextID(), pos)
	return sd
}

func (p *parser) parseStructFieldList() []*ast.StructField {
	var out []*ast.StructField
	for p.startsTypeRef() {
		pos := p.curPos()
		typ := p.parseTypeRef()
		name := p.parseName()
		p.expect(token.SEMICOLON)
		f := &ast.StructField{Name: name, Type: typ}
		f.SetBase(p.nextID(), pos)
		out = append(out, f)
	}
	return out
}

func (p *parser) parseEnumTypeDecl() ast.Decl {
	pos := p.expect(token.KwEnum)
	var size *ast.IntLit
	if p.cur.Class == token.KwBit {
		p.advance()
		p.expect(token.LT)
		size = p.parseIntLit()
		p.expect(token.GT)
	}
	name := p.parseName()
	ed := &ast.EnumTypeDecl{Name: name, UnderlyingSize: size}
	p.declareType(name, ed)
	p.expect(token.LBRACE)
	ed.Members = p.parseSpecifiedIdentifierList()
	p.expect(token.RBRACE)
	ed.SetBase(p.nextID(), pos)
	return ed
}

func (p *parser) parseIntLit() *ast.IntLit {
	if p.cur.Class != token.INT_LIT {
		p.errorExpected(p.curPos(), "an integer")
	}
	lit := &ast.IntLit{Value: p.cur.Int}
	lit.SetBase(p.nextID(), p.curPos())
	p.advance()
	return lit
}

func (p *parser) parseSpecifiedIdentifierList() []*ast.EnumMember {
	var out []*ast.EnumMember
	out = append(out, p.parseSpecifiedIdentifier())
	for p.cur.Class == token.COMMA {
		p.advance()
		out = append(out, p.parseSpecifiedIdentifier())
	}
	return out
}

func (p *parser) parseSpecifiedIdentifier() *ast.EnumMember {
	pos := p.curPos()
	name := p.parseName()
	var val ast.Expr
	if p.cur.Class == token.ASSIGN {
		p.advance()
		val = p.parseExpression()
	}
	m := &ast.EnumMember{Name: name, Value: val}
	m.SetBase(p.nextID(), pos)
	return m
}

func (p *parser) parseErrorDecl() ast.Decl {
	pos := p.expect(token.KwError)
	p.expect(token.LBRACE)
	members := p.parseIdentifierListAsMembers()
	p.expect(token.RBRACE)
	ed := &ast.ErrorDecl{Members: members}
	ed.SetBase(p.nextID(), pos)
	return ed
}

func (p *parser) parseMatchKindDecl() ast.Decl {
	pos := p.expect(token.KwMatchKind)
	p.expect(token.LBRACE)
	members := p.parseIdentifierListAsMembers()
	p.expect(token.RBRACE)
	md := &ast.MatchKindDecl{Members: members}
	md.SetBase(p.nextID(), pos)
	return md
}

// parseIdentifierListAsMembers parses a comma-separated bare name list
// (spec's `error { A, B, C }` / `match_kind { M1, M2 }`), represented as
// EnumMembers with no Value, reusing the enum-member node rather than a
// separate bare-identifier-list node.
func (p *parser) parseIdentifierListAsMembers() []*ast.EnumMember {
	var out []*ast.EnumMember
	out = append(out, p.nameAsMember())
	for p.cur.Class == token.COMMA {
		p.advance()
		out = append(out, p.nameAsMember())
	}
	return out
}

func (p *parser) nameAsMember() *ast.EnumMember {
	pos := p.curPos()
	name := p.parseName()
	m := &ast.EnumMember{Name: name}
	m.SetBase(p.nextID(), pos)
	return m
}

func (p *parser) parseTypedefDecl() ast.Decl {
	pos := p.curPos()
	isTypedef := p.cur.Class == token.KwTypedef
	p.advance()
	typ := p.parseTypeRef()
	name := p.parseName()
	td := &ast.TypedefDecl{Name: name, Type: typ, IsTypedef: isTypedef}
	p.declareType(name, td)
	p.expect(token.SEMICOLON)
	td.SetBase(p.nextID(), pos)
	return td
}

// parseConstOrVarDecl parses `[const] type name [= init];`, dispatching
// to ConstDecl (init required) when `const` is present and to VarDecl
// (init optional) otherwise — original_source folds both into one
// variableDeclaration production keyed by an is_const flag; this front
// end already has two distinct AST nodes for the two cases; typ may
// already have been consumed by the caller (nil otherwise).
func (p *parser) parseConstOrVarDecl(typ ast.TypeExpr) ast.Decl {
	pos := p.curPos()
	isConst := false
	if p.cur.Class == token.KwConst {
		isConst = true
		p.advance()
	}
	if typ == nil {
		typ = p.parseTypeRef()
	}
	name := p.parseName()
	if isConst {
		p.expect(token.ASSIGN)
		val := p.parseExpression()
		p.expect(token.SEMICOLON)
		cd := &ast.ConstDecl{Name: name, Type: typ, Value: val}
		cd.SetBase(p.nextID(), pos)
		return cd
	}
	var init ast.Expr
	if p.cur.Class == token.ASSIGN {
		p.advance()
		init = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	vd := &ast.VarDecl{Name: name, Type: typ, Init: init}
	vd.SetBase(p.nextID(), pos)
	return vd
}

func (p *parser) parseActionDecl() ast.Decl {
	pos := p.expect(token.KwAction)
	name := p.parseNonTypeName()
	p.expect(token.LPAREN)
	params := p.parseParameterList()
	p.expect(token.RPAREN)
	body := p.parseBlockStmt()
	ad := &ast.ActionDecl{Name: name, Params: params, Body: body}
	ad.SetBase(p.nextID(), pos)
	return ad
}

// parseFunctionDecl parses a standalone top-level function
// (`T foo(params) { ... }`), the one grammar production left
// unrepresented by FunctionProto alone (see ast.FunctionDecl).
func (p *parser) parseFunctionDecl(retType ast.TypeExpr) ast.Decl {
	pos := p.curPos()
	proto := p.parseFunctionProto(retType)
	body := p.parseBlockStmt()
	fd := &ast.FunctionDecl{Proto: proto, Body: body}
	fd.SetBase(p.nextID(), pos)
	return fd
}

func (p *parser) parseTableDecl() *ast.TableDecl {
	pos := p.expect(token.KwTable)
	name := p.parseName()
	p.expect(token.LBRACE)
	var props []ast.TableProperty
	for p.startsTableProperty() {
		props = append(props, p.parseTableProperty())
	}
	if len(props) == 0 {
		p.errorExpected(p.curPos(), "a table property")
	}
	p.expect(token.RBRACE)
	td := &ast.TableDecl{Name: name, Properties: props}
	td.SetBase(p.nextID(), pos)
	return td
}

func (p *parser) startsTableProperty() bool {
	return p.cur.Class == token.KwKey || p.cur.Class == token.KwActions ||
		p.cur.Class == token.KwEntries || p.cur.Class == token.IDENT
}

func (p *parser) parseTableProperty() ast.TableProperty {
	pos := p.curPos()
	switch p.cur.Class {
	case token.KwKey:
		p.advance()
		p.expect(token.ASSIGN)
		p.expect(token.LBRACE)
		elems := p.parseKeyElementList()
		p.expect(token.RBRACE)
		kp := &ast.KeyProperty{Elements: elems}
		kp.SetBase(p.nextID(), pos)
		return kp
	case token.KwActions:
		p.advance()
		p.expect(token.ASSIGN)
		p.expect(token.LBRACE)
		refs := p.parseActionList()
		p.expect(token.RBRACE)
		ap := &ast.ActionsProperty{Refs: refs}
		ap.SetBase(p.nextID(), pos)
		return ap
	case token.KwEntries:
		p.advance()
		p.expect(token.ASSIGN)
		p.expect(token.LBRACE)
		entries := p.parseEntriesList()
		p.expect(token.RBRACE)
		ep := &ast.EntriesProperty{Entries: entries}
		ep.SetBase(p.nextID(), pos)
		return ep
	default:
		name := p.parseNonTypeName()
		p.expect(token.ASSIGN)
		val := p.parseExpression()
		p.expect(token.SEMICOLON)
		sp := &ast.SimpleProperty{Name: name, Value: val}
		sp.SetBase(p.nextID(), pos)
		return sp
	}
}

func (p *parser) parseKeyElementList() []*ast.KeyElement {
	var out []*ast.KeyElement
	for p.startsExpr() {
		pos := p.curPos()
		expr := p.parseExpression()
		p.expect(token.COLON)
		kind := p.parseNonTypeName()
		p.expect(token.SEMICOLON)
		ke := &ast.KeyElement{MatchExpr: expr, MatchKind: kind}
		ke.SetBase(p.nextID(), pos)
		out = append(out, ke)
	}
	return out
}

func (p *parser) parseActionList() []*ast.ActionRef {
	var out []*ast.ActionRef
	for p.cur.Class == token.IDENT {
		out = append(out, p.parseActionRef())
		p.expect(token.SEMICOLON)
	}
	return out
}

func (p *parser) parseActionRef() *ast.ActionRef {
	pos := p.curPos()
	name := p.parseNonTypeName()
	var args []ast.Expr
	if p.cur.Class == token.LPAREN {
		p.advance()
		args = p.parseArgumentList()
		p.expect(token.RPAREN)
	}
	ar := &ast.ActionRef{Name: name, Args: args}
	ar.SetBase(p.nextID(), pos)
	return ar
}

// parseEntriesList parses the `entries = { ... }` table property's
// content. Table entries are ordinary P4 and nothing about P1-P4's
// scope/name-resolution/type model is blocked on parsing them (see
// DESIGN.md).
func (p *parser) parseEntriesList() []*ast.EntryDecl {
	var out []*ast.EntryDecl
	for p.startsKeysetExpr() {
		pos := p.curPos()
		ks := p.parseKeysetExpr()
		p.expect(token.COLON)
		ref := p.parseActionRef()
		p.expect(token.SEMICOLON)
		ed := &ast.EntryDecl{Keyset: ks, ActionRef: ref}
		ed.SetBase(p.nextID(), pos)
		out = append(out, ed)
	}
	return out
}

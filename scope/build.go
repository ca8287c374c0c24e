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

package scope

import (
	"github.com/packetlang/p4front/arena"
	"github.com/packetlang/p4front/ast"
)

// NodeScopes maps a scope-introducing node's id to the Scope Build
// pushed for it, so the nameresolve package (P3) can walk the same tree
// a second time and know, at each node, which scope it resolves names
// against without having to reconstruct the structural decision of
// where a scope boundary falls.
type NodeScopes map[int]*Scope

// Build runs P2: a post-parse walk that finishes populating the scope
// tree for everything the parser did not install while it was still
// recognizing tokens (spec §4.2) — parameters, type parameters, block-
// and body-local declarations, enum members, and error/match_kind
// extension members. The parser (P1) only ever declares TYPE names,
// always into root, at the point each type-introducing production names
// itself; every other declaration, and every scope below root, is
// installed here. Grounded on the structural recursion of
// original_source/build_symtable.c's visit_* family, split off from its
// name-reference responsibilities (moved to the nameresolve package).
func Build(a *arena.Arena, root *Scope, prog *ast.Program) NodeScopes {
	b := &builder{a: a, scopes: NodeScopes{}}
	for _, d := range prog.Decls {
		b.topDecl(root, d)
	}
	return b.scopes
}

type builder struct {
	a                          *arena.Arena
	scopes                     NodeScopes
	errorScope, matchKindScope *Scope
}

// push creates a child scope of s and records it under owner's id.
func (b *builder) push(s *Scope, owner ast.Node) *Scope {
	child := s.Push(b.a)
	b.scopes[owner.ID()] = child
	return child
}

func (b *builder) declareVar(s *Scope, name *ast.Ident, node ast.Node) {
	decl := arena.Alloc[NameDecl](b.a)
	decl.Name, decl.Pos, decl.Node = name.Name, name.Pos(), node
	s.Declare(Var, decl)
}

func (b *builder) declareTypeParam(s *Scope, id *ast.Ident) {
	decl := arena.Alloc[NameDecl](b.a)
	decl.Name, decl.Pos, decl.Node = id.Name, id.Pos(), id
	s.Declare(Type, decl)
}

func (b *builder) declareParams(s *Scope, params []*ast.Parameter) {
	for _, p := range params {
		decl := arena.Alloc[NameDecl](b.a)
		decl.Name, decl.Pos, decl.Node = p.Name.Name, p.Name.Pos(), p
		s.Declare(Var, decl)
	}
}

// topDecl handles a declaration at program scope or inside a type's own
// scope (parser/control locals, table declarations encountered top-level
// inside a control, etc.)
func (b *builder) topDecl(s *Scope, d ast.Decl) {
	switch n := d.(type) {
	case *ast.EnumTypeDecl:
		es := b.push(s, n)
		for _, m := range n.Members {
			b.declareVar(es, m.Name, m)
		}

	case *ast.ErrorDecl:
		if b.errorScope == nil {
			b.errorScope = s.Push(b.a)
		}
		b.scopes[n.ID()] = b.errorScope
		for _, m := range n.Members {
			b.declareVar(b.errorScope, m.Name, m)
		}

	case *ast.MatchKindDecl:
		if b.matchKindScope == nil {
			b.matchKindScope = s.Push(b.a)
		}
		b.scopes[n.ID()] = b.matchKindScope
		for _, m := range n.Members {
			b.declareVar(b.matchKindScope, m.Name, m)
		}

	case *ast.ExternDecl:
		es := b.push(s, n)
		for _, tp := range n.TypeParams {
			b.declareTypeParam(es, tp)
		}
		if n.Proto != nil {
			b.protoScope(es, n.Proto)
		}
		for _, m := range n.Methods {
			b.protoScope(es, m)
		}

	case *ast.PackageDecl:
		ps := b.push(s, n)
		for _, tp := range n.TypeParams {
			b.declareTypeParam(ps, tp)
		}
		b.declareParams(ps, n.Params)

	case *ast.ParserDecl:
		ps := b.push(s, n)
		for _, tp := range n.TypeParams {
			b.declareTypeParam(ps, tp)
		}
		b.declareParams(ps, n.Params)
		for _, l := range n.Locals {
			b.topDecl(ps, l)
		}
		for _, st := range n.States {
			b.state(ps, st)
		}

	case *ast.ControlDecl:
		cs := b.push(s, n)
		for _, tp := range n.TypeParams {
			b.declareTypeParam(cs, tp)
		}
		b.declareParams(cs, n.Params)
		for _, l := range n.Locals {
			b.topDecl(cs, l)
		}
		if n.Apply != nil {
			b.stmtList(cs, n.Apply.Stmts)
		}

	case *ast.ActionDecl:
		b.declareVar(s, n.Name, n)
		as := b.push(s, n)
		b.declareParams(as, n.Params)
		if n.Body != nil {
			b.stmtList(as, n.Body.Stmts)
		}

	case *ast.FunctionDecl:
		if n.Proto != nil && n.Proto.Name != nil {
			b.declareVar(s, n.Proto.Name, n)
		}
		fs := b.push(s, n)
		if n.Proto != nil {
			for _, tp := range n.Proto.TypeParams {
				b.declareTypeParam(fs, tp)
			}
			b.declareParams(fs, n.Proto.Params)
		}
		if n.Body != nil {
			b.stmtList(fs, n.Body.Stmts)
		}

	case *ast.ConstDecl:
		b.declareVar(s, n.Name, n)

	case *ast.VarDecl:
		b.declareVar(s, n.Name, n)

	case *ast.InstantiationDecl:
		if n.Name != nil {
			b.declareVar(s, n.Name, n)
		}

	case *ast.TableDecl:
		b.declareVar(s, n.Name, n)
		// Table properties never introduce new declarations of their own;
		// the pushed scope exists only so table-body positions have a
		// defining scope to record in the name-ref map during P3 (spec
		// §4.2 "table scopes").
		b.push(s, n)

	case *ast.TypedefDecl, *ast.HeaderTypeDecl, *ast.HeaderUnionTypeDecl, *ast.StructTypeDecl:
		// TYPE-declared inline by the parser; no VAR content to install.
	}
}

func (b *builder) protoScope(s *Scope, p *ast.FunctionProto) {
	ps := b.push(s, p)
	for _, tp := range p.TypeParams {
		b.declareTypeParam(ps, tp)
	}
	b.declareParams(ps, p.Params)
}

func (b *builder) state(s *Scope, st *ast.StateDecl) {
	ss := b.push(s, st)
	if st.Body != nil {
		b.stmtList(ss, st.Body.Stmts)
	}
}

func (b *builder) stmtList(s *Scope, stmts []ast.Stmt) {
	for _, st := range stmts {
		b.stmt(s, st)
	}
}

func (b *builder) stmt(s *Scope, st ast.Stmt) {
	switch n := st.(type) {
	case *ast.BlockStmt:
		bs := b.push(s, n)
		b.stmtList(bs, n.Stmts)

	case *ast.IfStmt:
		b.stmt(s, n.Then)
		if n.Else != nil {
			b.stmt(s, n.Else)
		}

	case *ast.SwitchStmt:
		for _, c := range n.Cases {
			cs := b.push(s, c)
			if c.Body != nil {
				b.stmtList(cs, c.Body.Stmts)
			}
		}

	case *ast.ConstDecl:
		b.declareVar(s, n.Name, n)

	case *ast.VarDecl:
		b.declareVar(s, n.Name, n)

	case *ast.InstantiationDecl:
		if n.Name != nil {
			b.declareVar(s, n.Name, n)
		}

	case *ast.ReturnStmt, *ast.ExitStmt, *ast.AssignStmt, *ast.ExprStmt:
		// Leaf statements: no declarations, no nested scope.
	}
}

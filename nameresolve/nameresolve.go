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

// Package nameresolve implements P3: a single top-down walk that, for
// every AST name use-site, records a NameRef keyed by the node's id and
// verifies the name resolves to a declaration (spec §4.3). It carries
// the current defining scope down through the walk and resolves each
// use-site against the TYPE and VAR namespaces, mirroring the
// traversal shape of original_source/build_symtable.c's
// visit_expression/visit_type_ref (there combined with scope-building;
// here scope-building already happened in the scope package's P2 pass).
package nameresolve

import (
	"github.com/packetlang/p4front/arena"
	"github.com/packetlang/p4front/ast"
	"github.com/packetlang/p4front/errors"
	"github.com/packetlang/p4front/scope"
	"github.com/packetlang/p4front/token"
)

// NameRef is the resolution record for one AST name use-site (spec §3).
type NameRef struct {
	Name          string
	Pos           token.Pos
	DefiningScope *scope.Scope
}

// Map is id -> NameRef, populated for every Ident used as a name
// reference (spec §6 "Name-ref map: id -> NameRef").
type Map map[int]*NameRef

// Resolve runs P3 over prog, starting in root and switching into the
// scopes Build (scope package, P2) pushed whenever the walk re-enters a
// node that owns one. a is used only to acquire NameRef records, keeping
// them attributable to the same arena as everything else (spec §3 "the
// arena owns every ... NameRef").
func Resolve(a *arena.Arena, root *scope.Scope, scopes scope.NodeScopes, prog *ast.Program) Map {
	r := &resolver{a: a, scopes: scopes, refs: Map{}}
	for _, d := range prog.Decls {
		r.decl(root, d)
	}
	return r.refs
}

type resolver struct {
	a      *arena.Arena
	scopes scope.NodeScopes
	refs   Map
}

func (r *resolver) scopeFor(owner ast.Node, outer *scope.Scope) *scope.Scope {
	if s, ok := r.scopes[owner.ID()]; ok {
		return s
	}
	return outer
}

// name records a NameRef for a use-site identifier, preferring ns but
// falling back to fallback when ns has no declaration (spec §4.3
// "in expression positions: prefer VAR; fall back to TYPE").
func (r *resolver) name(s *scope.Scope, id *ast.Ident, ns scope.Namespace, fallback scope.Namespace, hasFallback bool) {
	ref := arena.Alloc[NameRef](r.a)
	ref.Name, ref.Pos, ref.DefiningScope = id.Name, id.Pos(), s
	r.refs[id.ID()] = ref

	if decls := scope.LookupNS(s, ns, id.Name); len(decls) > 0 {
		return
	}
	if hasFallback {
		if decls := scope.LookupNS(s, fallback, id.Name); len(decls) > 0 {
			return
		}
	}
	errors.Fatalf(errors.UnresolvedName, id.Pos(), "unresolved name %q", id.Name)
}

// varName resolves an expression-position identifier: VAR first, TYPE as
// fallback (spec §4.3).
func (r *resolver) varName(s *scope.Scope, id *ast.Ident) {
	r.name(s, id, scope.Var, scope.Type, true)
}

// typeName resolves a type-position identifier: TYPE required, no
// fallback (spec §4.3 "in type positions ... require TYPE populated").
func (r *resolver) typeName(s *scope.Scope, id *ast.Ident) {
	r.name(s, id, scope.Type, scope.Type, false)
}

func (r *resolver) decl(s *scope.Scope, d ast.Decl) {
	switch n := d.(type) {
	case *ast.TypedefDecl:
		r.typeExpr(s, n.Type)

	case *ast.HeaderTypeDecl:
		for _, f := range n.Fields {
			r.typeExpr(s, f.Type)
		}

	case *ast.HeaderUnionTypeDecl:
		for _, f := range n.Fields {
			r.typeExpr(s, f.Type)
		}

	case *ast.StructTypeDecl:
		for _, f := range n.Fields {
			r.typeExpr(s, f.Type)
		}

	case *ast.EnumTypeDecl:
		es := r.scopeFor(n, s)
		for _, m := range n.Members {
			if m.Value != nil {
				r.expr(es, m.Value)
			}
		}

	case *ast.ErrorDecl:
		es := r.scopeFor(n, s)
		for _, m := range n.Members {
			if m.Value != nil {
				r.expr(es, m.Value)
			}
		}

	case *ast.MatchKindDecl:
		es := r.scopeFor(n, s)
		for _, m := range n.Members {
			if m.Value != nil {
				r.expr(es, m.Value)
			}
		}

	case *ast.ExternDecl:
		es := r.scopeFor(n, s)
		if n.Proto != nil {
			r.proto(es, n.Proto)
		}
		for _, m := range n.Methods {
			r.proto(es, m)
		}

	case *ast.PackageDecl:
		ps := r.scopeFor(n, s)
		for _, p := range n.Params {
			r.typeExpr(ps, p.Type)
		}

	case *ast.ParserDecl:
		ps := r.scopeFor(n, s)
		for _, p := range n.Params {
			r.typeExpr(ps, p.Type)
		}
		for _, l := range n.Locals {
			r.decl(ps, l)
		}
		for _, st := range n.States {
			r.state(ps, st)
		}

	case *ast.ControlDecl:
		cs := r.scopeFor(n, s)
		for _, p := range n.Params {
			r.typeExpr(cs, p.Type)
		}
		for _, l := range n.Locals {
			r.decl(cs, l)
		}
		if n.Apply != nil {
			r.stmtList(cs, n.Apply.Stmts)
		}

	case *ast.ActionDecl:
		as := r.scopeFor(n, s)
		for _, p := range n.Params {
			r.typeExpr(as, p.Type)
		}
		if n.Body != nil {
			r.stmtList(as, n.Body.Stmts)
		}

	case *ast.ConstDecl:
		r.typeExpr(s, n.Type)
		if n.Value != nil {
			r.expr(s, n.Value)
		}

	case *ast.VarDecl:
		r.typeExpr(s, n.Type)
		if n.Init != nil {
			r.expr(s, n.Init)
		}

	case *ast.InstantiationDecl:
		r.typeExpr(s, n.Type)
		for _, a := range n.Args {
			r.expr(s, a)
		}

	case *ast.TableDecl:
		ts := r.scopeFor(n, s)
		for _, p := range n.Properties {
			r.tableProperty(ts, p)
		}

	case *ast.FunctionDecl:
		fs := r.scopeFor(n, s)
		if n.Proto != nil {
			r.proto(fs, n.Proto)
		}
		if n.Body != nil {
			r.stmtList(fs, n.Body.Stmts)
		}
	}
}

func (r *resolver) proto(s *scope.Scope, p *ast.FunctionProto) {
	ps := r.scopeFor(p, s)
	for _, prm := range p.Params {
		r.typeExpr(ps, prm.Type)
	}
	if p.ReturnType != nil {
		r.typeExpr(ps, p.ReturnType)
	}
}

func (r *resolver) state(s *scope.Scope, st *ast.StateDecl) {
	ss := r.scopeFor(st, s)
	if st.Body != nil {
		r.stmtList(ss, st.Body.Stmts)
	}
	if st.Transition != nil {
		r.transition(ss, st.Transition)
	}
}

func (r *resolver) transition(s *scope.Scope, t *ast.TransitionStmt) {
	if t.Target != nil {
		r.varName(s, t.Target)
	}
	if t.Select != nil {
		for _, e := range t.Select.Exprs {
			r.expr(s, e)
		}
		for _, c := range t.Select.Cases {
			r.keyset(s, c.Keyset)
			if c.Target != nil {
				r.varName(s, c.Target)
			}
		}
	}
}

func (r *resolver) keyset(s *scope.Scope, k ast.Keyset) {
	switch n := k.(type) {
	case *ast.ExprKeyset:
		r.expr(s, n.X)
	case *ast.TupleKeyset:
		for _, e := range n.Elems {
			r.keyset(s, e)
		}
	}
}

func (r *resolver) tableProperty(s *scope.Scope, p ast.TableProperty) {
	switch n := p.(type) {
	case *ast.KeyProperty:
		for _, e := range n.Elements {
			r.expr(s, e.MatchExpr)
			r.varName(s, e.MatchKind)
		}
	case *ast.ActionsProperty:
		for _, ref := range n.Refs {
			r.varName(s, ref.Name)
			for _, a := range ref.Args {
				r.expr(s, a)
			}
		}
	case *ast.EntriesProperty:
		for _, e := range n.Entries {
			r.keyset(s, e.Keyset)
			r.varName(s, e.ActionRef.Name)
			for _, a := range e.ActionRef.Args {
				r.expr(s, a)
			}
		}
	case *ast.SimpleProperty:
		if n.Value != nil {
			r.expr(s, n.Value)
		}
	}
}

func (r *resolver) stmtList(s *scope.Scope, stmts []ast.Stmt) {
	for _, st := range stmts {
		r.stmt(s, st)
	}
}

func (r *resolver) stmt(s *scope.Scope, st ast.Stmt) {
	switch n := st.(type) {
	case *ast.BlockStmt:
		bs := r.scopeFor(n, s)
		r.stmtList(bs, n.Stmts)

	case *ast.IfStmt:
		r.expr(s, n.Cond)
		r.stmt(s, n.Then)
		if n.Else != nil {
			r.stmt(s, n.Else)
		}

	case *ast.SwitchStmt:
		r.expr(s, n.Cond)
		for _, c := range n.Cases {
			cs := r.scopeFor(c, s)
			if c.Label != nil {
				r.expr(s, c.Label)
			}
			if c.Body != nil {
				r.stmtList(cs, c.Body.Stmts)
			}
		}

	case *ast.ReturnStmt:
		if n.Value != nil {
			r.expr(s, n.Value)
		}

	case *ast.AssignStmt:
		r.expr(s, n.LHS)
		r.expr(s, n.RHS)

	case *ast.ExprStmt:
		r.expr(s, n.X)

	case *ast.ConstDecl:
		r.decl(s, n)

	case *ast.VarDecl:
		r.decl(s, n)

	case *ast.InstantiationDecl:
		r.decl(s, n)

	case *ast.ExitStmt:
		// no names
	}
}

// expr resolves every name use-site reachable from x. Per spec §4.3, a
// SelectorExpr only resolves its X; Sel is deliberately left unresolved.
func (r *resolver) expr(s *scope.Scope, x ast.Expr) {
	switch n := x.(type) {
	case *ast.Ident:
		r.varName(s, n)
	case *ast.IntLit, *ast.BoolLit, *ast.StringLit, *ast.ErrorExpr:
		// literals: nothing to resolve
	case *ast.ParenExpr:
		r.expr(s, n.X)
	case *ast.CastExpr:
		r.typeExpr(s, n.Type)
		r.expr(s, n.X)
	case *ast.UnaryExpr:
		r.expr(s, n.X)
	case *ast.BinaryExpr:
		r.expr(s, n.X)
		r.expr(s, n.Y)
	case *ast.SelectorExpr:
		r.expr(s, n.X)
	case *ast.IndexExpr:
		r.expr(s, n.X)
		r.expr(s, n.Index)
	case *ast.CallExpr:
		r.expr(s, n.Fun)
		for _, a := range n.Args {
			r.expr(s, a)
		}
	case *ast.ListExpr:
		for _, e := range n.Elems {
			r.expr(s, e)
		}
	}
}

// typeExpr resolves every name use-site reachable from a syntactic type
// expression.
func (r *resolver) typeExpr(s *scope.Scope, t ast.TypeExpr) {
	switch n := t.(type) {
	case *ast.BaseTypeExpr:
		r.typeName(s, n.Name)
	case *ast.BitTypeExpr:
		r.expr(s, n.Size)
	case *ast.NamedTypeExpr:
		r.typeName(s, n.Name)
		for _, a := range n.Args {
			r.typeExpr(s, a)
		}
	case *ast.TupleTypeExpr:
		for _, e := range n.Elems {
			r.typeExpr(s, e)
		}
	case *ast.HeaderStackTypeExpr:
		r.typeExpr(s, n.Elem)
		r.expr(s, n.Size)
	case *ast.DontCareTypeExpr:
		// nothing to resolve
	}
}

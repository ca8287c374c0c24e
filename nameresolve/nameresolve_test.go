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

package nameresolve_test

import (
	"testing"

	"github.com/packetlang/p4front/arena"
	"github.com/packetlang/p4front/ast"
	"github.com/packetlang/p4front/errors"
	"github.com/packetlang/p4front/internal/testlex"
	"github.com/packetlang/p4front/nameresolve"
	"github.com/packetlang/p4front/parser"
	"github.com/packetlang/p4front/scope"
	"github.com/packetlang/p4front/token"
)

// compileUpToP3 runs P1-P3 over src without panicking, returning the
// program, the scope tree P2 built, and the name-ref map P3 produced.
func compileUpToP3(t *testing.T, src string) (*ast.Program, *scope.Scope, scope.NodeScopes, nameresolve.Map) {
	t.Helper()
	a := arena.New()
	ids := &ast.IDAllocator{}
	file := token.NewFile("test.p4")
	root, _ := scope.NewRoot(a, ids)
	prog := parser.Parse(a, ids, file, root, testlex.Lex(src))
	scopes := scope.Build(a, root, prog)
	refs := nameresolve.Resolve(a, root, scopes, prog)
	return prog, root, scopes, refs
}

func TestResolveVarUseInExpressionPosition(t *testing.T) {
	prog, _, _, refs := compileUpToP3(t, `action a(in bit<8> x) { x = x + 1; }`)
	ad := prog.Decls[0].(*ast.ActionDecl)
	assign := ad.Body.Stmts[0].(*ast.AssignStmt)
	lhs := assign.LHS.(*ast.Ident)
	add := assign.RHS.(*ast.BinaryExpr)
	rhs := add.X.(*ast.Ident)

	for _, id := range []*ast.Ident{lhs, rhs} {
		ref, ok := refs[id.ID()]
		if !ok {
			t.Fatalf("no NameRef recorded for %q (id %d)", id.Name, id.ID())
		}
		if ref.Name != "x" {
			t.Errorf("NameRef.Name = %q, want %q", ref.Name, "x")
		}
	}
}

func TestResolveTypePositionRequiresTypeNamespace(t *testing.T) {
	prog, root, _, refs := compileUpToP3(t, `typedef bit<8> T; action a() { T x; }`)
	ad := prog.Decls[1].(*ast.ActionDecl)
	vd := ad.Body.Stmts[0].(*ast.VarDecl)
	nt := vd.Type.(*ast.NamedTypeExpr)

	ref, ok := refs[nt.Name.ID()]
	if !ok {
		t.Fatalf("no NameRef recorded for the type use of %q", nt.Name.Name)
	}
	// T is declared into root's TYPE namespace: the ref resolves against
	// what scope.LookupNS from the use-site scope actually finds there.
	if decls := scope.LookupNS(root, scope.Type, "T"); len(decls) != 1 {
		t.Fatalf("T not uniquely declared in root's TYPE namespace")
	}
	if ref.Name != "T" {
		t.Errorf("NameRef.Name = %q, want %q", ref.Name, "T")
	}
}

func TestResolveVarNameFallsBackToType(t *testing.T) {
	// A type name (here the enum E) used where the VAR namespace doesn't have it falls
	// back to TYPE per varName's hasFallback=true (e.g. E.A member access,
	// where the selector's X is the type name E itself used in value
	// position — spec §4.3 "expression positions: prefer VAR; fall back
	// to TYPE").
	prog, _, _, refs := compileUpToP3(t, `enum E { A } action a() { E x = E.A; }`)
	ad := prog.Decls[1].(*ast.ActionDecl)
	vd := ad.Body.Stmts[0].(*ast.VarDecl)
	sel := vd.Init.(*ast.SelectorExpr)
	xIdent := sel.X.(*ast.Ident)

	ref, ok := refs[xIdent.ID()]
	if !ok {
		t.Fatalf("no NameRef recorded for %q in E.A's selector base", xIdent.Name)
	}
	if ref.Name != "E" {
		t.Errorf("NameRef.Name = %q, want %q", ref.Name, "E")
	}
}

func TestResolveSelectorSelIsNeverRecorded(t *testing.T) {
	prog, _, _, refs := compileUpToP3(t, `enum E { A } action a() { E x = E.A; }`)
	ad := prog.Decls[1].(*ast.ActionDecl)
	vd := ad.Body.Stmts[0].(*ast.VarDecl)
	sel := vd.Init.(*ast.SelectorExpr)

	if _, ok := refs[sel.Sel.ID()]; ok {
		t.Errorf("a NameRef was recorded for the selector's Sel (%q); spec says Sel is deliberately left unresolved", sel.Sel.Name)
	}
}

func TestResolveUnknownNameIsFatal(t *testing.T) {
	var err error
	func() {
		defer errors.Recover(&err)
		compileUpToP3(t, `action a() { x = 1; }`)
	}()
	if err == nil {
		t.Fatalf("resolving an undeclared name did not raise a fatal error")
	}
	fe, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("error = %T, want *errors.Error", err)
	}
	if fe.Kind != errors.UnresolvedName {
		t.Errorf("error kind = %v, want UnresolvedName", fe.Kind)
	}
}

func TestResolveTransitionTargetResolvesAgainstBuiltinVar(t *testing.T) {
	prog, root, _, refs := compileUpToP3(t, `parser P() { state start { transition accept; } }`)
	pd := prog.Decls[0].(*ast.ParserDecl)
	st := pd.States[0]
	target := st.Transition.Target

	ref, ok := refs[target.ID()]
	if !ok {
		t.Fatalf("no NameRef recorded for the transition target %q", target.Name)
	}
	if decls := scope.LookupNS(root, scope.Var, "accept"); len(decls) != 1 {
		t.Fatalf("accept is not the unique root VAR builtin it should be")
	}
	if ref.Name != "accept" {
		t.Errorf("NameRef.Name = %q, want %q", ref.Name, "accept")
	}
}

func TestResolveIsDeterministicAcrossRuns(t *testing.T) {
	src := `header H { bit<16> f; } action a(in bit<8> x) { x = x + 1; }`
	_, _, _, refs1 := compileUpToP3(t, src)
	_, _, _, refs2 := compileUpToP3(t, src)
	if len(refs1) != len(refs2) {
		t.Fatalf("ref map sizes differ across identical runs: %d vs %d", len(refs1), len(refs2))
	}
	for id, r1 := range refs1 {
		r2, ok := refs2[id]
		if !ok {
			t.Fatalf("node %d present in the first run's ref map but not the second", id)
		}
		if r1.Name != r2.Name {
			t.Errorf("node %d's resolved name differs across runs: %q vs %q", id, r1.Name, r2.Name)
		}
	}
}

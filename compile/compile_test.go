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

package compile_test

import (
	"testing"

	"github.com/packetlang/p4front/ast"
	"github.com/packetlang/p4front/compile"
	"github.com/packetlang/p4front/internal/testlex"
	"github.com/packetlang/p4front/scope"
	"github.com/packetlang/p4front/types"
)

func mustCompile(t *testing.T, src string) *compile.CompilationContext {
	t.Helper()
	cc, err := compile.Compile(testlex.Lex(src), "test.p4")
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return cc
}

// reachesRoot walks s's parent chain and reports whether it terminates at
// root (spec I2: "the name-ref map has an entry whose defining_scope chain
// eventually reaches the root scope").
func reachesRoot(s, root *scope.Scope) bool {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// S1: typedef followed by a use-site resolves the variable's type through
// the TypeRef, and the use-site's defining-scope chain reaches back to
// where the typedef was declared.
func TestEndToEndTypedefUse(t *testing.T) {
	cc := mustCompile(t, `typedef bit<9> PortId_t; action a() { PortId_t p; }`)
	if len(cc.Program.Decls) != 2 {
		t.Fatalf("got %d top-level decls, want 2", len(cc.Program.Decls))
	}
	td, ok := cc.Program.Decls[0].(*ast.TypedefDecl)
	if !ok {
		t.Fatalf("decl[0] = %T, want *ast.TypedefDecl", cc.Program.Decls[0])
	}
	if !td.IsTypedef || td.Name.Name != "PortId_t" {
		t.Fatalf("typedef decl = %+v, want IsTypedef=true Name=PortId_t", td)
	}
	bt, ok := td.Type.(*ast.BitTypeExpr)
	if !ok {
		t.Fatalf("typedef underlying type = %T, want *ast.BitTypeExpr", td.Type)
	}
	if lit, ok := bt.Size.(*ast.IntLit); !ok || lit.Value.Value.Int64() != 9 {
		t.Fatalf("typedef underlying size = %v, want 9", bt.Size)
	}

	ad, ok := cc.Program.Decls[1].(*ast.ActionDecl)
	if !ok {
		t.Fatalf("decl[1] = %T, want *ast.ActionDecl", cc.Program.Decls[1])
	}
	vd, ok := ad.Body.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("action body[0] = %T, want *ast.VarDecl", ad.Body.Stmts[0])
	}
	if vd.Name.Name != "p" {
		t.Fatalf("var name = %q, want p", vd.Name.Name)
	}
	nt, ok := vd.Type.(*ast.NamedTypeExpr)
	if !ok {
		t.Fatalf("var type = %T, want *ast.NamedTypeExpr", vd.Type)
	}
	if nt.Name.Name != "PortId_t" {
		t.Fatalf("var type name = %q, want PortId_t", nt.Name.Name)
	}
	ref, ok := cc.Refs[nt.Name.ID()]
	if !ok {
		t.Fatalf("no NameRef for use-site %q", nt.Name.Name)
	}
	if !reachesRoot(ref.DefiningScope, cc.Root) {
		t.Fatalf("PortId_t's defining-scope chain never reaches the root scope")
	}
}

// S2: a single-field struct's type degenerates to its element, and the
// instance variable's type is a NamedTypeExpr naming the struct.
func TestEndToEndSingleFieldStructDegenerates(t *testing.T) {
	cc := mustCompile(t, `header H { bit<16> f; } struct S { H h; } control C() { apply { S s; } }`)
	if len(cc.Program.Decls) != 3 {
		t.Fatalf("got %d top-level decls, want 3", len(cc.Program.Decls))
	}
	hd := cc.Program.Decls[0].(*ast.HeaderTypeDecl)
	sd := cc.Program.Decls[1].(*ast.StructTypeDecl)
	cd := cc.Program.Decls[2].(*ast.ControlDecl)

	sTs := cc.Types[sd.ID()]
	if sTs == nil || sTs.Primary() == nil {
		t.Fatalf("no typeset recorded for struct S")
	}
	hTs := cc.Types[hd.ID()]
	if hTs == nil || hTs.Primary() == nil {
		t.Fatalf("no typeset recorded for header H")
	}
	if !sTs.Primary().Equal(hTs.Primary()) {
		t.Fatalf("single-field struct S = %+v, want it to degenerate to H's type %+v",
			sTs.Primary(), hTs.Primary())
	}

	if cd.Apply == nil || len(cd.Apply.Stmts) != 1 {
		t.Fatalf("apply body = %+v, want one statement", cd.Apply)
	}
	vd, ok := cd.Apply.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("apply[0] = %T, want *ast.VarDecl", cd.Apply.Stmts[0])
	}
	nt, ok := vd.Type.(*ast.NamedTypeExpr)
	if !ok || nt.Name.Name != "S" {
		t.Fatalf("var s's type = %+v, want NamedTypeExpr(S)", vd.Type)
	}
}

// S3: the scope tree nests root -> parser -> state, and `accept`'s
// defining-scope chain reaches the root scope where it was seeded.
func TestEndToEndParserStateScopes(t *testing.T) {
	cc := mustCompile(t, `parser P(inout bit<8> h) { state start { transition accept; } }`)
	pd := cc.Program.Decls[0].(*ast.ParserDecl)
	if len(pd.States) != 1 {
		t.Fatalf("got %d states, want 1", len(pd.States))
	}
	st := pd.States[0]
	if st.Name.Name != "start" {
		t.Fatalf("state name = %q, want start", st.Name.Name)
	}

	parserScope, ok := cc.Scopes[pd.ID()]
	if !ok {
		t.Fatalf("no scope pushed for parser P")
	}
	if parserScope.Parent != cc.Root {
		t.Fatalf("parser scope's parent is not the root scope")
	}
	stateScope, ok := cc.Scopes[st.ID()]
	if !ok {
		t.Fatalf("no scope pushed for state start")
	}
	if stateScope.Parent != parserScope {
		t.Fatalf("state scope's parent is not the parser scope")
	}

	trans := st.Transition
	if trans == nil || trans.Target == nil || trans.Target.Name != "accept" {
		t.Fatalf("state start's transition = %+v, want target accept", trans)
	}
	ref, ok := cc.Refs[trans.Target.ID()]
	if !ok {
		t.Fatalf("no NameRef for `accept`")
	}
	if !reachesRoot(ref.DefiningScope, cc.Root) {
		t.Fatalf("accept's defining-scope chain never reaches the root scope")
	}
}

// S4: an action's parameter is declared into the action's own scope, every
// use of it resolves, and the arithmetic/assignment nodes are typed as
// FunctionCall products.
func TestEndToEndActionBodyTyping(t *testing.T) {
	cc := mustCompile(t, `action a(in bit<8> x) { x = x + 1; }`)
	ad := cc.Program.Decls[0].(*ast.ActionDecl)
	if ad.Name.Name != "a" || len(ad.Params) != 1 || ad.Params[0].Name.Name != "x" {
		t.Fatalf("action decl = %+v, want a(x)", ad)
	}

	actionScope, ok := cc.Scopes[ad.ID()]
	if !ok {
		t.Fatalf("no scope pushed for action a")
	}
	if entry := actionScope.LookupLocal("x"); entry == nil || len(entry.Var) == 0 {
		t.Fatalf("x not declared in action a's own scope")
	}

	assign, ok := ad.Body.Stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("action body[0] = %T, want *ast.AssignStmt", ad.Body.Stmts[0])
	}
	add, ok := assign.RHS.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("assignment RHS = %T, want *ast.BinaryExpr (x + 1)", assign.RHS)
	}
	xUse, ok := add.X.(*ast.Ident)
	if !ok || xUse.Name != "x" {
		t.Fatalf("addition LHS = %+v, want ident x", add.X)
	}
	if _, ok := cc.Refs[xUse.ID()]; !ok {
		t.Fatalf("no NameRef for x inside x + 1")
	}
	lhsIdent, ok := assign.LHS.(*ast.Ident)
	if !ok || lhsIdent.Name != "x" {
		t.Fatalf("assignment LHS = %+v, want ident x", assign.LHS)
	}
	if _, ok := cc.Refs[lhsIdent.ID()]; !ok {
		t.Fatalf("no NameRef for the assigned-to x")
	}

	addTs := cc.Types[add.ID()]
	if addTs == nil || addTs.Primary() == nil || addTs.Primary().Kind != types.FunctionCallKind {
		t.Fatalf("x + 1 typeset = %+v, want a FunctionCallKind", addTs)
	}
	assignTs := cc.Types[assign.ID()]
	if assignTs == nil || assignTs.Primary() == nil || assignTs.Primary().Kind != types.FunctionCallKind {
		t.Fatalf("x = x + 1 typeset = %+v, want a FunctionCallKind", assignTs)
	}
}

// S5: nested empty if/else block scopes under a control's apply block.
func TestEndToEndControlApplyIfElse(t *testing.T) {
	cc := mustCompile(t, `control C() { apply { if (true) { } else { } } }`)
	cd := cc.Program.Decls[0].(*ast.ControlDecl)
	if cd.Apply == nil || len(cd.Apply.Stmts) != 1 {
		t.Fatalf("apply body = %+v, want one statement", cd.Apply)
	}
	ifStmt, ok := cd.Apply.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("apply[0] = %T, want *ast.IfStmt", cd.Apply.Stmts[0])
	}
	thenBlock, ok := ifStmt.Then.(*ast.BlockStmt)
	if !ok || len(thenBlock.Stmts) != 0 {
		t.Fatalf("if-then = %+v, want an empty block", ifStmt.Then)
	}
	elseBlock, ok := ifStmt.Else.(*ast.BlockStmt)
	if !ok || len(elseBlock.Stmts) != 0 {
		t.Fatalf("if-else = %+v, want an empty block", ifStmt.Else)
	}
	if _, ok := cc.Scopes[thenBlock.ID()]; !ok {
		t.Fatalf("no scope pushed for the if-then block")
	}
	if _, ok := cc.Scopes[elseBlock.ID()]; !ok {
		t.Fatalf("no scope pushed for the if-else block")
	}

	// Boolean and integer literals share the canonical Int typeset from
	// the root scope (construct.go's exprType case for *ast.BoolLit).
	condTs := cc.Types[ifStmt.Cond.ID()]
	if condTs == nil || condTs.Primary() == nil || condTs.Primary().Kind != types.AtomicInt {
		t.Fatalf("if condition typeset = %+v, want AtomicInt", condTs)
	}
}

// S6: an enum's members live in its own scope (VAR), the enum name lives in
// TYPE, and a member-select expression gets a fresh TypeVar.
func TestEndToEndEnumMemberSelect(t *testing.T) {
	cc := mustCompile(t, `enum E { A, B = 2 } action a() { E e = E.A; }`)
	ed := cc.Program.Decls[0].(*ast.EnumTypeDecl)
	ad := cc.Program.Decls[1].(*ast.ActionDecl)

	if len(ed.Members) != 2 || ed.Members[0].Name.Name != "A" || ed.Members[1].Name.Name != "B" {
		t.Fatalf("enum members = %+v, want A, B", ed.Members)
	}
	if ed.Members[0].Value != nil {
		t.Fatalf("member A has an explicit value %+v, want none", ed.Members[0].Value)
	}
	bVal, ok := ed.Members[1].Value.(*ast.IntLit)
	if !ok || bVal.Value.Value.Int64() != 2 {
		t.Fatalf("member B's value = %+v, want int literal 2", ed.Members[1].Value)
	}

	if decls := scope.LookupNS(cc.Root, scope.Type, "E"); len(decls) == 0 {
		t.Fatalf("E not declared in the root scope's TYPE namespace")
	}
	enumScope, ok := cc.Scopes[ed.ID()]
	if !ok {
		t.Fatalf("no scope pushed for enum E")
	}
	if decls := scope.LookupNS(enumScope, scope.Var, "A"); len(decls) == 0 {
		t.Fatalf("A not declared in E's own scope's VAR namespace")
	}

	vd, ok := ad.Body.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("action body[0] = %T, want *ast.VarDecl", ad.Body.Stmts[0])
	}
	nt, ok := vd.Type.(*ast.NamedTypeExpr)
	if !ok || nt.Name.Name != "E" {
		t.Fatalf("var e's type = %+v, want NamedTypeExpr(E)", vd.Type)
	}

	sel, ok := vd.Init.(*ast.SelectorExpr)
	if !ok {
		t.Fatalf("e's initializer = %T, want *ast.SelectorExpr (E.A)", vd.Init)
	}
	if sel.Sel == nil || sel.Sel.Name != "A" {
		t.Fatalf("selector's member = %+v, want A", sel.Sel)
	}
	selTs := cc.Types[sel.ID()]
	if selTs == nil || selTs.Primary() == nil || selTs.Primary().Kind != types.TypeVarKind {
		t.Fatalf("E.A's typeset = %+v, want a fresh TypeVarKind", selTs)
	}
}

// I5: redeclaring a name in the same scope and namespace is a fatal error.
func TestRedeclarationIsFatal(t *testing.T) {
	_, err := compile.Compile(testlex.Lex(`action a() { } action a() { }`), "test.p4")
	if err == nil {
		t.Fatalf("Compile of a duplicate top-level action name succeeded, want a redeclaration error")
	}
}

// S4: a table's `actions = { a; }` property names a real action, and a
// later `t.apply()` names the table itself; both must resolve against
// VAR declarations P2 installed in the control's own scope, not just
// parse without error.
func TestEndToEndTableActionsAndApplyResolve(t *testing.T) {
	cc := mustCompile(t, `
control C() {
	action a() { }
	table t { actions = { a; } }
	apply { t.apply(); }
}`)
	cd := cc.Program.Decls[0].(*ast.ControlDecl)
	ad := cd.Locals[0].(*ast.ActionDecl)
	td := cd.Locals[1].(*ast.TableDecl)
	ap := td.Properties[0].(*ast.ActionsProperty)

	ref := ap.Refs[0].Name
	nr, ok := cc.Refs[ref.ID()]
	if !ok {
		t.Fatalf("action ref %q has no NameRef entry", ref.Name)
	}
	if nr.Name != "a" {
		t.Errorf("action ref resolved Name = %q, want %q", nr.Name, "a")
	}

	es := cd.Apply.Stmts[0].(*ast.ExprStmt)
	call := es.X.(*ast.CallExpr)
	sel := call.Fun.(*ast.SelectorExpr)
	recv := sel.X.(*ast.Ident)
	if _, ok := cc.Refs[recv.ID()]; !ok {
		t.Fatalf("t.apply()'s receiver %q has no NameRef entry", recv.Name)
	}

	actionTs := cc.Types[ad.ID()]
	if actionTs == nil || actionTs.Primary() == nil || actionTs.Primary().Kind != types.FunctionKind {
		t.Fatalf("action a's typeset = %+v, want FunctionKind", actionTs)
	}
	refTs := cc.Types[ap.Refs[0].ID()]
	if refTs == nil || refTs.Primary() == nil {
		t.Fatalf("no typeset for the actions = { a; } reference")
	}
}

// I3: after P4 every reachable declaration and body statement has a
// type-map entry.
func TestEveryDeclAndBodyStmtHasATypesetEntry(t *testing.T) {
	cc := mustCompile(t, `const bit<8> x = 1; action a() { bit<8> y; }`)
	cdecl := cc.Program.Decls[0]
	if _, ok := cc.Types[cdecl.ID()]; !ok {
		t.Errorf("no typeset entry for %T (id %d)", cdecl, cdecl.ID())
	}
	ad := cc.Program.Decls[1].(*ast.ActionDecl)
	if _, ok := cc.Types[ad.ID()]; !ok {
		t.Errorf("no typeset entry for action a (id %d)", ad.ID())
	}
	local := ad.Body.Stmts[0]
	if _, ok := cc.Types[local.ID()]; !ok {
		t.Errorf("no typeset entry for local var y (id %d)", local.ID())
	}
}

// R1/R2: re-running P3/P4 on the same source is deterministic.
func TestResolveAndConstructAreDeterministic(t *testing.T) {
	src := `header H { bit<16> f; } struct S { H h; } control C() { apply { S s; } } action a(in bit<8> x) { x = x + 1; }`
	cc1 := mustCompile(t, src)
	cc2 := mustCompile(t, src)

	if len(cc1.Refs) != len(cc2.Refs) {
		t.Fatalf("name-ref map sizes differ: %d vs %d", len(cc1.Refs), len(cc2.Refs))
	}
	if len(cc1.Types) != len(cc2.Types) {
		t.Fatalf("type map sizes differ: %d vs %d", len(cc1.Types), len(cc2.Types))
	}
	for id, ts1 := range cc1.Types {
		ts2, ok := cc2.Types[id]
		if !ok {
			t.Fatalf("node %d present in first run's type map but not the second", id)
		}
		if ts1.Primary() == nil || ts2.Primary() == nil {
			continue
		}
		if !ts1.Primary().Equal(ts2.Primary()) {
			t.Errorf("node %d's type differs across runs: %+v vs %+v", id, ts1.Primary(), ts2.Primary())
		}
	}
}

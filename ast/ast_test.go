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

package ast_test

import (
	"testing"

	"github.com/packetlang/p4front/ast"
	"github.com/packetlang/p4front/token"
)

func TestIDAllocatorStartsAtOneAndIsMonotonic(t *testing.T) {
	ids := &ast.IDAllocator{}
	first := ids.Next()
	if first != 1 {
		t.Fatalf("first Next() = %d, want 1", first)
	}
	second := ids.Next()
	if second != 2 {
		t.Errorf("second Next() = %d, want 2", second)
	}
	if got := ids.Last(); got != second {
		t.Errorf("Last() = %d, want %d", got, second)
	}
}

func TestSetBaseAssignsIDAndPos(t *testing.T) {
	id := &ast.Ident{Name: "x"}
	pos := token.Pos{Line: 3, Column: 4}
	id.SetBase(7, pos)
	if id.ID() != 7 {
		t.Errorf("ID() = %d, want 7", id.ID())
	}
	if id.Pos() != pos {
		t.Errorf("Pos() = %+v, want %+v", id.Pos(), pos)
	}
}

func TestNewBuiltinDeclHasNoPos(t *testing.T) {
	b := ast.NewBuiltinDecl(5, "bit")
	if b.ID() != 5 {
		t.Errorf("ID() = %d, want 5", b.ID())
	}
	if b.Name != "bit" {
		t.Errorf("Name = %q, want %q", b.Name, "bit")
	}
	if b.Pos() != token.NoPos {
		t.Errorf("Pos() = %+v, want NoPos", b.Pos())
	}
	if b.Children() != nil {
		t.Errorf("Children() = %+v, want nil (a builtin has no children)", b.Children())
	}
}

// collectKinds walks the tree and records each visited node's Kind in
// depth-first, left-to-right order, to assert on both reachability and
// ordering (spec §5: "sibling iteration ... left-to-right / insertion
// order").
func collectKinds(root ast.Node) []ast.Kind {
	var out []ast.Kind
	ast.Inspect(root, func(n ast.Node) bool {
		out = append(out, n.Kind())
		return true
	})
	return out
}

func mkIdent(id int, name string) *ast.Ident {
	n := &ast.Ident{Name: name}
	n.SetBase(id, token.NoPos)
	return n
}

func TestWalkVisitsBinaryExprChildrenLeftToRight(t *testing.T) {
	x := mkIdent(1, "a")
	y := mkIdent(2, "b")
	bin := &ast.BinaryExpr{X: x, Y: y}
	bin.SetBase(3, token.NoPos)

	kinds := collectKinds(bin)
	want := []ast.Kind{ast.KBinaryExpr, ast.KIdent, ast.KIdent}
	if len(kinds) != len(want) {
		t.Fatalf("collectKinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestWalkSkipsChildrenWhenBeforeReturnsFalse(t *testing.T) {
	x := mkIdent(1, "a")
	y := mkIdent(2, "b")
	bin := &ast.BinaryExpr{X: x, Y: y}
	bin.SetBase(3, token.NoPos)

	var visited []ast.Kind
	ast.Inspect(bin, func(n ast.Node) bool {
		visited = append(visited, n.Kind())
		return n.Kind() != ast.KBinaryExpr // stop descending at the root
	})
	if len(visited) != 1 || visited[0] != ast.KBinaryExpr {
		t.Fatalf("visited = %v, want only the root (children skipped)", visited)
	}
}

func TestWalkNilNodeIsANoOp(t *testing.T) {
	count := 0
	ast.Inspect(nil, func(ast.Node) bool { count++; return true })
	if count != 0 {
		t.Errorf("Inspect(nil, ...) invoked fn %d times, want 0", count)
	}
}

// TestWalkTransitionStmtNilFieldDoesNotPanic exercises the typed-nil
// fix in Children(): a transition with Select set (Target left as a nil
// *ast.Ident) must not surface that nil Target as a walkable child.
func TestWalkTransitionStmtNilFieldDoesNotPanic(t *testing.T) {
	sel := &ast.SelectExpr{}
	sel.SetBase(2, token.NoPos)
	ts := &ast.TransitionStmt{Select: sel} // Target deliberately left nil
	ts.SetBase(1, token.NoPos)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("walking a TransitionStmt with a nil Target panicked: %v", r)
		}
	}()
	kinds := collectKinds(ts)
	want := []ast.Kind{ast.KTransitionStmt, ast.KSelectExpr}
	if len(kinds) != len(want) {
		t.Fatalf("collectKinds = %v, want %v (nil Target must be filtered)", kinds, want)
	}
}

// TestWalkSwitchCaseNilBodyDoesNotPanic exercises the same fix for a
// braceless (fallthrough) switch case, whose Body is a nil *BlockStmt.
func TestWalkSwitchCaseNilBodyDoesNotPanic(t *testing.T) {
	label := mkIdent(1, "x")
	sc := &ast.SwitchCase{Label: label} // Body deliberately left nil
	sc.SetBase(2, token.NoPos)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("walking a SwitchCase with a nil Body panicked: %v", r)
		}
	}()
	kinds := collectKinds(sc)
	want := []ast.Kind{ast.KSwitchCase, ast.KIdent}
	if len(kinds) != len(want) {
		t.Fatalf("collectKinds = %v, want %v (nil Body must be filtered)", kinds, want)
	}
}

func TestDirectionBitwiseCombination(t *testing.T) {
	if ast.DirInOut != ast.DirIn|ast.DirOut {
		t.Errorf("DirInOut = %v, want DirIn|DirOut", ast.DirInOut)
	}
	if ast.DirNone&ast.DirIn != 0 {
		t.Errorf("DirNone has DirIn set")
	}
}

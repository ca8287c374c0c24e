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

package types_test

import (
	"testing"

	"github.com/packetlang/p4front/types"
)

func TestTypeEqualAtomicsIgnoreOrigin(t *testing.T) {
	a := &types.Type{Kind: types.AtomicBit, Origin: nil}
	b := &types.Type{Kind: types.AtomicBit, Origin: nil}
	if !a.Equal(b) {
		t.Errorf("two AtomicBit Types with no origin set are not Equal")
	}
	c := &types.Type{Kind: types.AtomicInt}
	if a.Equal(c) {
		t.Errorf("AtomicBit.Equal(AtomicInt) = true, want false")
	}
}

func TestTypeEqualNilHandling(t *testing.T) {
	var a, b *types.Type
	if !a.Equal(b) {
		t.Errorf("two nil Types are not Equal")
	}
	c := &types.Type{Kind: types.AtomicVoid}
	if a.Equal(c) || c.Equal(a) {
		t.Errorf("nil Type compared Equal to a non-nil Type")
	}
}

func TestTypeEqualTypeNameComparesName(t *testing.T) {
	a := &types.Type{Kind: types.TypeNameKind, Name: "Foo"}
	b := &types.Type{Kind: types.TypeNameKind, Name: "Foo"}
	c := &types.Type{Kind: types.TypeNameKind, Name: "Bar"}
	if !a.Equal(b) {
		t.Errorf("two TypeNameKind Types with the same Name are not Equal")
	}
	if a.Equal(c) {
		t.Errorf("TypeNameKind Types with different Names compared Equal")
	}
}

func TestTypeEqualProductIsStructural(t *testing.T) {
	bit := &types.Type{Kind: types.AtomicBit}
	str := &types.Type{Kind: types.AtomicString}
	p1 := &types.Type{Kind: types.ProductKind, LHS: bit, RHS: str}
	p2 := &types.Type{Kind: types.ProductKind, LHS: &types.Type{Kind: types.AtomicBit}, RHS: &types.Type{Kind: types.AtomicString}}
	if !p1.Equal(p2) {
		t.Errorf("structurally identical Products (distinct pointers) compared unequal")
	}
	p3 := &types.Type{Kind: types.ProductKind, LHS: str, RHS: bit}
	if p1.Equal(p3) {
		t.Errorf("Products with swapped LHS/RHS compared equal")
	}
}

func TestTypeEqualFunctionComparesParamsAndReturn(t *testing.T) {
	f1 := &types.Type{Kind: types.FunctionKind,
		Params: &types.Type{Kind: types.AtomicVoid}, Return: &types.Type{Kind: types.AtomicBool}}
	f2 := &types.Type{Kind: types.FunctionKind,
		Params: &types.Type{Kind: types.AtomicVoid}, Return: &types.Type{Kind: types.AtomicBool}}
	if !f1.Equal(f2) {
		t.Errorf("structurally identical Functions compared unequal")
	}
	f3 := &types.Type{Kind: types.FunctionKind,
		Params: &types.Type{Kind: types.AtomicVoid}, Return: &types.Type{Kind: types.AtomicInt}}
	if f1.Equal(f3) {
		t.Errorf("Functions with different Return types compared equal")
	}
}

func TestTypeEqualHeaderStackComparesElemAndSize(t *testing.T) {
	hs1 := &types.Type{Kind: types.HeaderStackKind, Elem: &types.Type{Kind: types.AtomicBit}, Size: nil}
	hs2 := &types.Type{Kind: types.HeaderStackKind, Elem: &types.Type{Kind: types.AtomicBit}, Size: nil}
	if !hs1.Equal(hs2) {
		t.Errorf("structurally identical HeaderStacks compared unequal")
	}
}

func TestSingleWrapsOneType(t *testing.T) {
	ty := &types.Type{Kind: types.AtomicVoid}
	ts := types.Single(ty)
	if len(ts.Types) != 1 || ts.Types[0] != ty {
		t.Fatalf("Single(ty).Types = %+v, want [ty]", ts.Types)
	}
	if ts.Primary() != ty {
		t.Errorf("Primary() = %v, want ty", ts.Primary())
	}
}

func TestTypesetAddTypePreservesOrder(t *testing.T) {
	ts := types.Single(&types.Type{Kind: types.AtomicBool})
	second := &types.Type{Kind: types.AtomicInt}
	ts.AddType(second)
	if len(ts.Types) != 2 {
		t.Fatalf("len(ts.Types) = %d, want 2", len(ts.Types))
	}
	if ts.Types[1] != second {
		t.Errorf("AddType did not append in order")
	}
	if ts.Primary().Kind != types.AtomicBool {
		t.Errorf("Primary() after AddType = %v, want the original first member", ts.Primary().Kind)
	}
}

func TestTypesetAddSetAppendsAllMembers(t *testing.T) {
	ts := types.Single(&types.Type{Kind: types.AtomicBool})
	other := types.Single(&types.Type{Kind: types.AtomicInt})
	other.AddType(&types.Type{Kind: types.AtomicString})
	ts.AddSet(other)
	if len(ts.Types) != 3 {
		t.Fatalf("len(ts.Types) after AddSet = %d, want 3", len(ts.Types))
	}
}

func TestTypesetAddSetNilIsANoOp(t *testing.T) {
	ts := types.Single(&types.Type{Kind: types.AtomicBool})
	ts.AddSet(nil)
	if len(ts.Types) != 1 {
		t.Errorf("AddSet(nil) changed the set's length to %d, want 1", len(ts.Types))
	}
}

func TestTypesetPrimaryOnEmptyOrNilSet(t *testing.T) {
	var nilTs *types.Typeset
	if nilTs.Primary() != nil {
		t.Errorf("nil Typeset.Primary() != nil")
	}
	empty := &types.Typeset{}
	if empty.Primary() != nil {
		t.Errorf("empty Typeset.Primary() != nil")
	}
}

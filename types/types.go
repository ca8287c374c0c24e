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

// Package types implements C7 (the type pool) and P4 (type construction):
// a tagged Type variant and the per-node Typeset map that later semantic
// passes consume. Grounded on original_source/build_type.c's ctor set,
// translated from an untagged C union into a native Go sum type per spec
// §9 DESIGN NOTES ("implement with native sum types").
package types

import (
	"github.com/packetlang/p4front/ast"
)

// Kind discriminates a Type's variant (spec §3 "Type: tagged variant").
type Kind int

const (
	AtomicVoid Kind = iota
	AtomicBool
	AtomicInt
	AtomicBit
	AtomicVarbit
	AtomicString
	AtomicError
	AtomicMatchKind

	TypeParamKind
	TypeNameKind
	TypeRefKind
	ProductKind
	FunctionKind
	FunctionCallKind
	HeaderStackKind
	TypeVarKind

	// EmptyProductKind represents a zero-field struct/header/union. Spec
	// §4.4 phrases this as "zero-field aggregates receive an empty
	// typeset"; this package instead gives the aggregate a singleton
	// typeset whose one Type is this sentinel, so every Typeset in the
	// map is non-empty and callers never special-case a bare nil Type.
	// See DESIGN.md for this divergence.
	EmptyProductKind
)

// Type is one node of the type graph (spec §3). Only the fields relevant
// to Kind are meaningful; Origin back-links to the AST node whose typing
// produced this value (spec §4.4 "every produced Type carries a
// back-link to the AST node that gave rise to it").
type Type struct {
	Kind Kind

	Name string // TypeParamKind, TypeNameKind

	Ref *Type // TypeRefKind

	LHS, RHS *Type // ProductKind

	Params, Return *Type // FunctionKind

	Args *Type // FunctionCallKind

	Elem *Type    // HeaderStackKind
	Size ast.Expr // HeaderStackKind

	Origin ast.Node
}

// Equal reports whether two Types have the same shape, ignoring Origin
// (spec R2: "each entry equal under structural comparison of Type
// ctors"; Origin is diagnostic metadata, not part of a Type's identity).
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TypeParamKind, TypeNameKind:
		return t.Name == other.Name
	case TypeRefKind:
		return t.Ref.Equal(other.Ref)
	case ProductKind:
		return t.LHS.Equal(other.LHS) && t.RHS.Equal(other.RHS)
	case FunctionKind:
		return t.Params.Equal(other.Params) && t.Return.Equal(other.Return)
	case FunctionCallKind:
		return t.Args.Equal(other.Args)
	case HeaderStackKind:
		return t.Elem.Equal(other.Elem) && t.Size == other.Size
	default:
		return true // atomics, TypeVar, EmptyProduct: Kind alone identifies them
	}
}

// Typeset is a Type plus any additional member Types sharing the same
// AST-node key (spec §3 "used where multiple declarations (overloads)
// share a name"). Declare's fatal-on-redeclare policy (scope package)
// means more than one member never actually occurs in this front end;
// the slice shape is kept because spec §9 calls for it and because nodes
// do need to support it structurally.
type Typeset struct {
	Types []*Type
}

// Single wraps one Type in a new Typeset.
func Single(t *Type) *Typeset { return &Typeset{Types: []*Type{t}} }

// AddType appends t to the set, preserving insertion order (spec §9
// "preserve insertion order for deterministic test output").
func (ts *Typeset) AddType(t *Type) { ts.Types = append(ts.Types, t) }

// AddSet appends every member of other to ts.
func (ts *Typeset) AddSet(other *Typeset) {
	if other == nil {
		return
	}
	ts.Types = append(ts.Types, other.Types...)
}

// Primary returns the first (and, in practice, only) Type in the set, or
// nil if the set is empty.
func (ts *Typeset) Primary() *Type {
	if ts == nil || len(ts.Types) == 0 {
		return nil
	}
	return ts.Types[0]
}

// Map is id -> Typeset, the type pool keyed by AST node id (spec §6
// "Type map: id -> Typeset").
type Map map[int]*Typeset

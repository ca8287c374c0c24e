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
	"github.com/packetlang/p4front/token"
)

// Builtins names the synthetic declaring nodes the root scope is seeded
// with. The types package (P4) keys its canonical atomic Type values off
// these nodes' ids (spec §4.4 "Seeding").
type Builtins struct {
	Void, Bool, Int, Bit, Varbit, String, Error, MatchKind *ast.BuiltinDecl
	Accept, Reject, ErrorValue                             *ast.BuiltinDecl
}

// atomicTypeNames is the exact TYPE pre-population list, spec §4.2.
var atomicTypeNames = []string{"void", "bool", "int", "bit", "varbit", "string", "error", "match_kind"}

// NewRoot builds the root scope (level 0, no parent) and pre-populates
// it exactly as spec §4.2 requires: every reserved word in KEYWORD,
// the eight atomic base types in TYPE, and accept/reject/error in VAR.
// ids hands out the node id each synthetic BuiltinDecl receives; it is
// the same allocator the parser uses for every other AST node, so ids
// stay unique and monotonic across the whole compilation unit (spec §5
// "AST-id assignment is sequential and monotonic").
func NewRoot(a *arena.Arena, ids *ast.IDAllocator) (*Scope, *Builtins) {
	root := arena.Alloc[Scope](a)
	root.Level = 0
	root.decls = map[string]*NameEntry{}

	for lexeme, class := range token.Keywords {
		decl := arena.Alloc[NameDecl](a)
		decl.Name, decl.TokenClass = lexeme, class
		root.Declare(Keyword, decl)
	}

	atomics := make(map[string]*ast.BuiltinDecl, len(atomicTypeNames))
	for _, name := range atomicTypeNames {
		node := ast.NewBuiltinDecl(ids.Next(), name)
		atomics[name] = node
		decl := arena.Alloc[NameDecl](a)
		decl.Name, decl.Node = name, node
		root.Declare(Type, decl)
	}

	mkVar := func(name string) *ast.BuiltinDecl {
		node := ast.NewBuiltinDecl(ids.Next(), name)
		decl := arena.Alloc[NameDecl](a)
		decl.Name, decl.Node = name, node
		root.Declare(Var, decl)
		return node
	}
	accept := mkVar("accept")
	reject := mkVar("reject")
	errVal := mkVar("error")

	b := &Builtins{
		Void:       atomics["void"],
		Bool:       atomics["bool"],
		Int:        atomics["int"],
		Bit:        atomics["bit"],
		Varbit:     atomics["varbit"],
		String:     atomics["string"],
		Error:      atomics["error"],
		MatchKind:  atomics["match_kind"],
		Accept:     accept,
		Reject:     reject,
		ErrorValue: errVal,
	}
	return root, b
}

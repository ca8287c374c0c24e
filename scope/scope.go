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

// Package scope implements C4: the scope tree and its three-namespace
// name declarations, plus the P2 pass that finishes populating scopes the
// parser (P1) could not install while it was still descending into
// nested bodies.
package scope

import (
	"github.com/packetlang/p4front/arena"
	"github.com/packetlang/p4front/ast"
	"github.com/packetlang/p4front/errors"
	"github.com/packetlang/p4front/token"
)

// Namespace selects one of the three separated name classes a Scope
// tracks (spec §3 "NameEntry").
type Namespace int

const (
	Keyword Namespace = iota
	Type
	Var
)

func (n Namespace) String() string {
	switch n {
	case Keyword:
		return "keyword"
	case Type:
		return "type"
	case Var:
		return "var"
	}
	return "namespace"
}

// NameDecl is one declaration of a name in one namespace (spec §3).
// TokenClass is only meaningful for Keyword declarations; Node is only
// set for Type/Var declarations (nil for Keyword).
type NameDecl struct {
	Name       string
	Pos        token.Pos
	Namespace  Namespace
	TokenClass token.Class
	Node       ast.Node
}

// NameEntry bundles the (at most one, per Declare's redeclaration rule)
// declaration each namespace holds for one name at one scope. Modeled as
// slices rather than the original's linked NameDecl.next_in_scope (spec
// §9 DESIGN NOTES: "model as a small vector per namespace slot"), which
// also leaves room for namespaces that do tolerate multiple entries.
type NameEntry struct {
	Keyword []*NameDecl
	Type    []*NameDecl
	Var     []*NameDecl
}

func (e *NameEntry) slot(ns Namespace) *[]*NameDecl {
	switch ns {
	case Keyword:
		return &e.Keyword
	case Type:
		return &e.Type
	default:
		return &e.Var
	}
}

// Scope is one node of the scope tree (spec §3). The root scope has
// Level 0 and a nil Parent; every push increases Level by one.
type Scope struct {
	Level  int
	Parent *Scope
	decls  map[string]*NameEntry
}

// Push creates and returns a new child scope of s, acquired from a (every
// scope is arena-owned per spec §3 "a scope owns its NameEntries").
func (s *Scope) Push(a *arena.Arena) *Scope {
	child := arena.Alloc[Scope](a)
	child.Level = s.Level + 1
	child.Parent = s
	child.decls = map[string]*NameEntry{}
	return child
}

// Pop returns to the parent scope. Popping the root scope (whose Parent
// is nil) yields nil, matching spec §4.2 "popping the root yields none".
func (s *Scope) Pop() *Scope { return s.Parent }

// Declare inserts decl into the scope's given namespace slot. A second
// declaration of the same name in the same scope and namespace is fatal
// (spec §4.2: VAR duplicates are a redeclaration error; TYPE "permits
// only one live declaration per name per scope"; KEYWORD is populated
// exactly once at root creation, so encountering this path twice for a
// keyword is itself an internal bug).
func (s *Scope) Declare(ns Namespace, decl *NameDecl) {
	decl.Namespace = ns
	entry, ok := s.decls[decl.Name]
	if !ok {
		entry = &NameEntry{}
		s.decls[decl.Name] = entry
	}
	slot := entry.slot(ns)
	if len(*slot) > 0 {
		prev := (*slot)[0]
		if ns == Keyword {
			errors.Fatalf(errors.Internal, decl.Pos,
				"keyword %q declared twice in root scope", decl.Name)
		}
		errors.Fatalf(errors.Redeclaration, decl.Pos,
			"%q redeclared in this scope (previous declaration at %s)",
			decl.Name, prev.Pos)
	}
	*slot = append(*slot, decl)
}

// LookupNS walks from s up the parent chain, returning the declarations
// held in namespace ns for name at the first (innermost) scope where
// that namespace slot is populated. Each namespace's search is
// independent of the others, so a name may be TYPE-declared in an outer
// scope while VAR-declared in an inner one without either shadowing the
// other (spec §4.2 "lookup... returns a sentinel empty entry when
// nothing is found"; the nil/empty slice here plays that role).
func LookupNS(s *Scope, ns Namespace, name string) []*NameDecl {
	for cur := s; cur != nil; cur = cur.Parent {
		entry, ok := cur.decls[name]
		if !ok {
			continue
		}
		if decls := *entry.slot(ns); len(decls) > 0 {
			return decls
		}
	}
	return nil
}

// LookupLocal returns the NameEntry declared directly in s (not walking
// to parents), or nil if name has no declaration at this exact scope.
func (s *Scope) LookupLocal(name string) *NameEntry {
	return s.decls[name]
}

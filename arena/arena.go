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

// Package arena models C1: scoped acquisition of memory for everything a
// compilation unit allocates (AST nodes, scopes, name entries, types,
// name-refs). Spec §1 treats the real arena as an external collaborator
// ("only its contract matters"); this package is a thin allocation-count
// façade over new/append rather than a hand-rolled region allocator,
// since Go's garbage collector already gives the "one region per
// compilation unit, released as a whole" lifetime for free. See
// DESIGN.md for why this is the one place a manual allocator would have
// bought nothing but unsafe.Pointer risk.
package arena

// Arena tracks allocation counts for one compilation unit. P1-P3 (the
// parser, scope.Build, nameresolve.Resolve) thread the same *Arena, so the whole
// compilation unit's liveness is visibly grouped under one value (per
// DESIGN NOTES: bundle ownership, no globals).
type Arena struct {
	allocs int
}

// New returns a fresh Arena for one compilation unit.
func New() *Arena {
	return &Arena{}
}

// Allocs reports how many values have been acquired from a, for
// diagnostics and tests.
func (a *Arena) Allocs() int { return a.allocs }

// Alloc acquires a zero-valued *T from a. Scopes, name declarations and
// name-refs are allocated this way, so they are attributable to one Arena
// even though the Go runtime, not a., ultimately manages the memory. AST
// nodes and types are ordinary Go allocations that a does not count.
func Alloc[T any](a *Arena) *T {
	a.allocs++
	return new(T)
}

// Release marks the region as done. It is a no-op: per compilation unit
// the values acquired from a become unreachable together once the
// CompilationContext that owns a is dropped, and the GC reclaims them as
// a batch without any action from this method. The method exists only to
// preserve the "acquire/release a region" shape of the contract.
func (a *Arena) Release() {}

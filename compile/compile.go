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

// Package compile is the front door: it bundles the arena, root scope,
// and every pass's output into one CompilationContext, and runs P1
// (parser.Parse) through P4 (types.Construct) in sequence over a token
// sequence already produced by an external lexer (spec §6), with a
// single deferred recover() at the one place a fatal error
// (errors.Fatal) is allowed to surface as a returned error instead of an
// unwinding panic.
package compile

import (
	"github.com/packetlang/p4front/arena"
	"github.com/packetlang/p4front/ast"
	"github.com/packetlang/p4front/errors"
	"github.com/packetlang/p4front/nameresolve"
	"github.com/packetlang/p4front/parser"
	"github.com/packetlang/p4front/scope"
	"github.com/packetlang/p4front/token"
	"github.com/packetlang/p4front/types"
)

// CompilationContext bundles everything one compilation unit produces
// across P1-P4 (spec §3's "what the arena owns"): the arena itself, the
// id allocator and root scope it was seeded from, the AST, and each
// pass's output map, so a caller (or a test) can inspect any
// intermediate result without re-running earlier passes.
type CompilationContext struct {
	Arena    *arena.Arena
	IDs      *ast.IDAllocator
	File     *token.File
	Root     *scope.Scope
	Builtins *scope.Builtins

	Program *ast.Program
	Scopes  scope.NodeScopes
	Refs    nameresolve.Map
	Types   types.Map
}

// Option configures a Compile call. Options compose by running in the
// order given, matching parser.Option's functional-options shape.
type Option func(*options)

type options struct {
	parserOpts []parser.Option
}

// Trace forwards parser.Trace to the parse, without this package needing
// its own copy of that flag. The parser does not read the flag, so no
// trace is printed.
func Trace() Option {
	return func(o *options) { o.parserOpts = append(o.parserOpts, parser.Trace) }
}

// Compile runs P1 through P4 over toks, the token sequence an external
// lexer produced for filename (spec §6). It returns a fully populated
// CompilationContext, or a non-nil error if any pass raised a fatal
// error (errors.Fatal) — the first one encountered, since spec §7 rules
// out batching or continuing past an error.
func Compile(toks []token.Token, filename string, opts ...Option) (cc *CompilationContext, err error) {
	defer errors.Recover(&err)

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := arena.New()
	ids := &ast.IDAllocator{}
	file := token.NewFile(filename)
	root, builtins := scope.NewRoot(a, ids)

	prog := parser.Parse(a, ids, file, root, toks, o.parserOpts...)
	scopes := scope.Build(a, root, prog)
	refs := nameresolve.Resolve(a, root, scopes, prog)
	typeMap := types.Construct(builtins, refs, prog)

	cc = &CompilationContext{
		Arena:    a,
		IDs:      ids,
		File:     file,
		Root:     root,
		Builtins: builtins,
		Program:  prog,
		Scopes:   scopes,
		Refs:     refs,
		Types:    typeMap,
	}
	return cc, nil
}

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

package types

import (
	"github.com/packetlang/p4front/ast"
	"github.com/packetlang/p4front/errors"
	"github.com/packetlang/p4front/nameresolve"
	"github.com/packetlang/p4front/scope"
)

// Construct runs P4: a bottom-up walk that attaches a Typeset to every AST
// node reachable from prog, consuming the name-ref map P3 built (spec
// §4.4). Declaration types are computed lazily and memoized the first
// time something refers to them, so forward references (a field whose
// type names an aggregate declared later in the unit) resolve without a
// second program-order pass; self-referential chains fall back to a
// TypeRef placeholder rather than recursing forever.
func Construct(builtins *scope.Builtins, refs nameresolve.Map, prog *ast.Program) Map {
	b := &builder{
		types:      Map{},
		builtins:   builtins,
		refs:       refs,
		inProgress: map[int]bool{},
	}
	b.seedBuiltins()
	for _, d := range prog.Decls {
		b.decl(d)
	}
	b.set(prog.ID(), Single(b.atom(AtomicVoid, prog)))
	return b.types
}

type builder struct {
	types      Map
	builtins   *scope.Builtins
	refs       nameresolve.Map
	inProgress map[int]bool
}

func (b *builder) atom(k Kind, origin ast.Node) *Type { return &Type{Kind: k, Origin: origin} }

func (b *builder) set(id int, ts *Typeset) *Typeset {
	b.types[id] = ts
	return ts
}

// seedBuiltins installs the canonical atomic Type for each of the root
// scope's eight base-type BuiltinDecl nodes, keyed by that node's id, plus
// a Void placeholder for accept/reject and the Error type for the error
// value (spec §4.4 "Seeding": "the types package seeds canonical Atomic
// Types keyed by each Builtins field's BuiltinDecl id").
func (b *builder) seedBuiltins() {
	bi := b.builtins
	b.set(bi.Void.ID(), Single(b.atom(AtomicVoid, bi.Void)))
	b.set(bi.Bool.ID(), Single(b.atom(AtomicBool, bi.Bool)))
	b.set(bi.Int.ID(), Single(b.atom(AtomicInt, bi.Int)))
	b.set(bi.Bit.ID(), Single(b.atom(AtomicBit, bi.Bit)))
	b.set(bi.Varbit.ID(), Single(b.atom(AtomicVarbit, bi.Varbit)))
	b.set(bi.String.ID(), Single(b.atom(AtomicString, bi.String)))
	b.set(bi.Error.ID(), Single(b.atom(AtomicError, bi.Error)))
	b.set(bi.MatchKind.ID(), Single(b.atom(AtomicMatchKind, bi.MatchKind)))
	b.set(bi.Accept.ID(), Single(b.atom(AtomicVoid, bi.Accept)))
	b.set(bi.Reject.ID(), Single(b.atom(AtomicVoid, bi.Reject)))
	b.set(bi.ErrorValue.ID(), Single(b.atom(AtomicError, bi.ErrorValue)))
}

// typesetOf is the memoized entry point used whenever a name use-site (or
// a type reference) needs the Typeset already attached to, or owed to,
// some other node (typically a declaration). A node mid-computation when
// re-entered (a type that refers to itself, directly or through a cycle
// of typedefs) gets a fresh TypeRef placeholder instead of recursing.
func (b *builder) typesetOf(n ast.Node) *Typeset {
	if ts, ok := b.types[n.ID()]; ok {
		return ts
	}
	if b.inProgress[n.ID()] {
		return Single(&Type{Kind: TypeRefKind, Ref: &Type{Kind: TypeVarKind}, Origin: n})
	}
	b.inProgress[n.ID()] = true
	ts := b.computeTypeset(n)
	delete(b.inProgress, n.ID())
	return b.set(n.ID(), ts)
}

func (b *builder) typeOf(n ast.Node) *Type {
	ts := b.typesetOf(n)
	if t := ts.Primary(); t != nil {
		return t
	}
	return b.atom(EmptyProductKind, n)
}

// computeTypeset dispatches on the concrete node kind for every node that
// can be the Node of a scope.NameDecl, i.e. every node a NamedTypeExpr or
// use-site Ident can resolve to.
func (b *builder) computeTypeset(n ast.Node) *Typeset {
	switch d := n.(type) {
	case *ast.BuiltinDecl:
		// Seeded up front; reaching this path means a builtin slipped
		// through seeding, which is an internal bug.
		errors.Fatalf(errors.Internal, d.Pos(), "unseeded builtin %q", d.Name)

	case *ast.TypedefDecl:
		return Single(b.typeExprType(d.Type))

	case *ast.HeaderTypeDecl:
		return b.productOf(d.Fields, d)
	case *ast.HeaderUnionTypeDecl:
		return b.productOf(d.Fields, d)
	case *ast.StructTypeDecl:
		return b.productOf(d.Fields, d)

	case *ast.EnumTypeDecl:
		return Single(&Type{Kind: TypeNameKind, Name: d.Name.Name, Origin: d})
	case *ast.ExternDecl:
		if d.IsFunction {
			// A bare extern function has no Name of its own; it takes its
			// prototype's Function type.
			return Single(b.typeOf(d.Proto))
		}
		return Single(&Type{Kind: TypeNameKind, Name: d.Name.Name, Origin: d})
	case *ast.PackageDecl:
		return Single(&Type{Kind: TypeNameKind, Name: d.Name.Name, Origin: d})
	case *ast.TableDecl:
		return Single(&Type{Kind: TypeNameKind, Name: d.Name.Name, Origin: d})

	case *ast.ParserDecl:
		proto := b.protoLikeType(d.TypeParams, d.Params, nil, d)
		return Single(&Type{Kind: TypeRefKind, Ref: proto, Origin: d})
	case *ast.ControlDecl:
		proto := b.protoLikeType(d.TypeParams, d.Params, nil, d)
		return Single(&Type{Kind: TypeRefKind, Ref: proto, Origin: d})

	case *ast.FunctionProto:
		return Single(b.protoLikeType(d.TypeParams, d.Params, d.ReturnType, d))

	case *ast.ActionDecl:
		params := b.paramsProduct(d.Params)
		return Single(&Type{Kind: FunctionKind, Params: params, Return: b.atom(AtomicVoid, d), Origin: d})

	case *ast.FunctionDecl:
		var proto *ast.FunctionProto
		if d.Proto != nil {
			proto = d.Proto
			b.set(proto.ID(), Single(b.protoLikeType(proto.TypeParams, proto.Params, proto.ReturnType, proto)))
			return Single(b.typeOf(proto))
		}
		return Single(&Type{Kind: TypeVarKind, Origin: d})

	case *ast.ConstDecl:
		return Single(&Type{Kind: TypeRefKind, Ref: b.typeExprType(d.Type), Origin: d})
	case *ast.VarDecl:
		return Single(&Type{Kind: TypeRefKind, Ref: b.typeExprType(d.Type), Origin: d})

	case *ast.InstantiationDecl:
		// Matches spec §4.4 literally: the instantiation's own node type
		// is FunctionCall(args_ty), the same entry a later use-site of its
		// Name would pick up — not a TypeRef to the instantiated type.
		return Single(b.instantiationCallType(d))

	case *ast.Parameter:
		return Single(b.typeExprType(d.Type))
	case *ast.StructField:
		return Single(b.typeExprType(d.Type))
	case *ast.Ident:
		// A type-parameter's own declaring Ident (declared into TYPE by
		// scope.Build): spec §4.4 "type parameters... left as
		// TypeParam(strname)" absent a more specific prior resolution.
		return Single(&Type{Kind: TypeParamKind, Name: d.Name, Origin: d})

	case *ast.EnumMember:
		return Single(&Type{Kind: TypeVarKind, Origin: d})
	}
	return Single(&Type{Kind: TypeVarKind, Origin: n})
}

// productOf builds the right-leaning Product of a field list and installs
// each field's own Typeset too (spec §4.4 "Struct / Header / Union:
// each field's type-ref is resolved; the declaration's type is the
// right-leaning Product of field types (in declaration order); a
// single-field aggregate degenerates to its element").
func (b *builder) productOf(fields []*ast.StructField, owner ast.Node) *Typeset {
	if len(fields) == 0 {
		return Single(b.atom(EmptyProductKind, owner))
	}
	types := make([]*Type, len(fields))
	for i, f := range fields {
		t := b.typeExprType(f.Type)
		b.set(f.ID(), Single(t))
		types[i] = t
	}
	return Single(rightLeaningProduct(types, owner))
}

func rightLeaningProduct(types []*Type, owner ast.Node) *Type {
	acc := types[len(types)-1]
	for i := len(types) - 2; i >= 0; i-- {
		acc = &Type{Kind: ProductKind, LHS: types[i], RHS: acc, Origin: owner}
	}
	return acc
}

// paramsProduct types each parameter and installs its own entry, then
// folds the results into a Function's Params slot (Void if there are
// none, matching the "Void if no args" rule applied throughout §4.4).
func (b *builder) paramsProduct(params []*ast.Parameter) *Type {
	if len(params) == 0 {
		return b.atom(AtomicVoid, nil)
	}
	types := make([]*Type, len(params))
	for i, p := range params {
		t := b.typeExprType(p.Type)
		b.set(p.ID(), Single(t))
		types[i] = t
	}
	return rightLeaningProduct(types, params[0])
}

// protoLikeType synthesizes the Function a FunctionProto, ParserDecl, or
// ControlDecl's parameter/return shape reduces to (spec §4.4
// "FunctionProto: params-type = right-leaning Product of parameter types
// (Void if none); return-type = the declared return type, or Void if
// absent; node type = Function(params_ty, return_ty)"). Type parameters
// are typed in place as TypeParam(strname) so a later reference to one by
// name resolves through the ordinary name-ref/typesetOf path.
func (b *builder) protoLikeType(typeParams []*ast.Ident, params []*ast.Parameter, ret ast.TypeExpr, origin ast.Node) *Type {
	for _, tp := range typeParams {
		b.set(tp.ID(), Single(&Type{Kind: TypeParamKind, Name: tp.Name, Origin: tp}))
	}
	paramsTy := b.paramsProduct(params)
	var retTy *Type
	if ret != nil {
		retTy = b.typeExprType(ret)
	} else {
		retTy = b.atom(AtomicVoid, origin)
	}
	return &Type{Kind: FunctionKind, Params: paramsTy, Return: retTy, Origin: origin}
}

func (b *builder) instantiationCallType(d *ast.InstantiationDecl) *Type {
	// Typing the target type-ref and each argument still happens, for
	// their own nodes' entries, even though neither feeds this node's
	// FunctionCall type directly.
	b.typeExprType(d.Type)
	argTypes := make([]*Type, 0, len(d.Args))
	for _, a := range d.Args {
		argTypes = append(argTypes, b.exprType(a))
	}
	var argsTy *Type
	if len(argTypes) == 0 {
		argsTy = b.atom(AtomicVoid, d)
	} else {
		argsTy = rightLeaningProduct(argTypes, d)
	}
	if d.Name != nil {
		b.set(d.Name.ID(), Single(&Type{Kind: TypeParamKind, Name: d.Name.Name, Origin: d.Name}))
	}
	return &Type{Kind: FunctionCallKind, Args: argsTy, Origin: d}
}

// typeExprType types a syntactic type expression node, installs its own
// entry, and returns the resulting Type.
func (b *builder) typeExprType(t ast.TypeExpr) *Type {
	var ty *Type
	switch n := t.(type) {
	case *ast.BaseTypeExpr:
		ty = b.namedAtomic(n.Name.Name, n)
	case *ast.BitTypeExpr:
		b.exprType(n.Size)
		if n.IsVarbit {
			ty = b.atom(AtomicVarbit, n)
		} else {
			ty = b.atom(AtomicBit, n)
		}
	case *ast.NamedTypeExpr:
		ty = b.namedRef(n)
	case *ast.TupleTypeExpr:
		elems := make([]*Type, 0, len(n.Elems))
		for _, e := range n.Elems {
			elems = append(elems, b.typeExprType(e))
		}
		if len(elems) == 0 {
			ty = b.atom(EmptyProductKind, n)
		} else {
			ty = rightLeaningProduct(elems, n)
		}
	case *ast.HeaderStackTypeExpr:
		elemTy := b.typeExprType(n.Elem)
		b.exprType(n.Size)
		ty = &Type{Kind: HeaderStackKind, Elem: elemTy, Size: n.Size, Origin: n}
	case *ast.DontCareTypeExpr:
		ty = b.atom(TypeVarKind, n)
	default:
		ty = b.atom(TypeVarKind, t)
	}
	b.set(t.ID(), Single(ty))
	return ty
}

// namedAtomic looks an atomic base-type name up through its BuiltinDecl
// and returns its canonical seeded Type (so `void` used twice shares one
// Type value, matching the rest of the atomic-name handling).
func (b *builder) namedAtomic(name string, origin ast.Node) *Type {
	bi := b.builtins
	var decl *ast.BuiltinDecl
	switch name {
	case "void":
		decl = bi.Void
	case "bool":
		decl = bi.Bool
	case "int":
		decl = bi.Int
	case "string":
		decl = bi.String
	case "error":
		decl = bi.Error
	case "match_kind":
		decl = bi.MatchKind
	default:
		errors.Fatalf(errors.Internal, origin.Pos(), "unrecognized base type name %q", name)
	}
	return b.typeOf(decl)
}

// namedRef resolves a NamedTypeExpr via the NameRef P3 already recorded
// for its Name identifier, then propagates the referenced declaration's
// Type without rewrapping it (spec §4.4: a type-ref's type is the type of
// the declaration it names). Type arguments are still typed, for their
// own nodes, but the returned Type is not specialized by them.
func (b *builder) namedRef(n *ast.NamedTypeExpr) *Type {
	declNode := b.resolveTypeName(n.Name)
	t := b.typeOf(declNode)
	for _, a := range n.Args {
		b.typeExprType(a)
	}
	return t
}

// resolveTypeName re-derives, from the NameRef P3 recorded, which
// declaration a type-position identifier named. Type positions resolve
// TYPE only (spec §4.3), so the lookup here mirrors nameresolve's
// typeName exactly.
func (b *builder) resolveTypeName(id *ast.Ident) ast.Node {
	ref, ok := b.refs[id.ID()]
	if !ok {
		errors.Fatalf(errors.Internal, id.Pos(), "no name-ref recorded for %q", id.Name)
	}
	decls := scope.LookupNS(ref.DefiningScope, scope.Type, ref.Name)
	if len(decls) == 0 {
		errors.Fatalf(errors.Internal, id.Pos(), "no TYPE declaration for resolved name %q", ref.Name)
	}
	return decls[0].Node
}

// resolveVarName mirrors nameresolve's varName: VAR first, TYPE fallback.
func (b *builder) resolveVarName(id *ast.Ident) ast.Node {
	ref, ok := b.refs[id.ID()]
	if !ok {
		errors.Fatalf(errors.Internal, id.Pos(), "no name-ref recorded for %q", id.Name)
	}
	if decls := scope.LookupNS(ref.DefiningScope, scope.Var, ref.Name); len(decls) > 0 {
		return decls[0].Node
	}
	if decls := scope.LookupNS(ref.DefiningScope, scope.Type, ref.Name); len(decls) > 0 {
		return decls[0].Node
	}
	errors.Fatalf(errors.Internal, id.Pos(), "no VAR or TYPE declaration for resolved name %q", ref.Name)
	return nil
}

// decl walks one top-level or type-body declaration, typing every
// reachable field, parameter, type-ref and expression, and installing the
// declaration's own Typeset via typesetOf's memoized path (so a decl
// visited here after already being forced by an earlier forward
// reference is simply a cache hit).
func (b *builder) decl(d ast.Decl) {
	b.typesetOf(d.(ast.Node))

	switch n := d.(type) {
	case *ast.EnumTypeDecl:
		for _, m := range n.Members {
			if m.Value != nil {
				b.set(m.ID(), Single(b.exprType(m.Value)))
			} else {
				b.set(m.ID(), Single(&Type{Kind: TypeNameKind, Name: n.Name.Name, Origin: m}))
			}
		}

	case *ast.ErrorDecl:
		for _, m := range n.Members {
			if m.Value != nil {
				b.exprType(m.Value)
			}
			b.set(m.ID(), Single(b.typeOf(b.builtins.Error)))
		}

	case *ast.MatchKindDecl:
		for _, m := range n.Members {
			if m.Value != nil {
				b.exprType(m.Value)
			}
			b.set(m.ID(), Single(b.typeOf(b.builtins.MatchKind)))
		}

	case *ast.ExternDecl:
		if n.Proto != nil {
			b.typesetOf(n.Proto)
		}
		for _, m := range n.Methods {
			b.typesetOf(m)
		}

	case *ast.PackageDecl:
		// The decl's own typeset is a TypeName; its Params/TypeParams get
		// their entries here via protoLikeType.
		b.protoLikeType(n.TypeParams, n.Params, nil, n)

	case *ast.ParserDecl:
		for _, l := range n.Locals {
			b.decl(l)
		}
		for _, st := range n.States {
			b.state(st)
		}

	case *ast.ControlDecl:
		for _, l := range n.Locals {
			b.decl(l)
		}
		if n.Apply != nil {
			b.stmtList(n.Apply.Stmts)
			b.set(n.Apply.ID(), Single(b.atom(AtomicVoid, n.Apply)))
		}

	case *ast.ActionDecl:
		if n.Body != nil {
			b.stmtList(n.Body.Stmts)
			b.set(n.Body.ID(), Single(b.atom(AtomicVoid, n.Body)))
		}

	case *ast.FunctionDecl:
		if n.Body != nil {
			b.stmtList(n.Body.Stmts)
			b.set(n.Body.ID(), Single(b.atom(AtomicVoid, n.Body)))
		}

	case *ast.TableDecl:
		for _, p := range n.Properties {
			b.tableProperty(p)
		}

	case *ast.ConstDecl:
		if n.Value != nil {
			b.exprType(n.Value)
		}
	case *ast.VarDecl:
		if n.Init != nil {
			b.exprType(n.Init)
		}

	case *ast.TypedefDecl, *ast.HeaderTypeDecl, *ast.HeaderUnionTypeDecl, *ast.StructTypeDecl,
		*ast.InstantiationDecl:
		// Already fully typed by the typesetOf call above.
	}
}

func (b *builder) state(st *ast.StateDecl) {
	b.set(st.ID(), Single(b.atom(TypeVarKind, st)))
	if st.Body != nil {
		b.stmtList(st.Body.Stmts)
		b.set(st.Body.ID(), Single(b.atom(AtomicVoid, st.Body)))
	}
	if st.Transition != nil {
		b.transition(st.Transition)
	}
}

func (b *builder) transition(t *ast.TransitionStmt) {
	b.set(t.ID(), Single(b.atom(TypeVarKind, t)))
	if t.Target != nil {
		b.set(t.Target.ID(), Single(b.typeOf(b.resolveVarName(t.Target))))
	}
	if t.Select != nil {
		b.selectExpr(t.Select)
	}
}

func (b *builder) selectExpr(sel *ast.SelectExpr) {
	for _, e := range sel.Exprs {
		b.exprType(e)
	}
	for _, c := range sel.Cases {
		b.keyset(c.Keyset)
		if c.Target != nil {
			b.set(c.Target.ID(), Single(b.typeOf(b.resolveVarName(c.Target))))
		}
		b.set(c.ID(), Single(b.atom(TypeVarKind, c)))
	}
	b.set(sel.ID(), Single(b.atom(TypeVarKind, sel)))
}

func (b *builder) keyset(k ast.Keyset) {
	switch n := k.(type) {
	case *ast.DefaultKeyset:
		b.set(n.ID(), Single(b.atom(TypeVarKind, n)))
	case *ast.DontCareKeyset:
		b.set(n.ID(), Single(b.atom(TypeVarKind, n)))
	case *ast.ExprKeyset:
		t := b.exprType(n.X)
		b.set(n.ID(), Single(t))
	case *ast.TupleKeyset:
		for _, e := range n.Elems {
			b.keyset(e)
		}
		b.set(n.ID(), Single(b.atom(TypeVarKind, n)))
	}
}

func (b *builder) tableProperty(p ast.TableProperty) {
	switch n := p.(type) {
	case *ast.KeyProperty:
		for _, e := range n.Elements {
			mt := b.exprType(e.MatchExpr)
			b.set(e.MatchKind.ID(), Single(b.typeOf(b.resolveVarName(e.MatchKind))))
			b.set(e.ID(), Single(mt))
		}
		b.set(n.ID(), Single(b.atom(TypeVarKind, n)))

	case *ast.ActionsProperty:
		for _, ref := range n.Refs {
			b.actionRef(ref)
		}
		b.set(n.ID(), Single(b.atom(TypeVarKind, n)))

	case *ast.EntriesProperty:
		for _, e := range n.Entries {
			b.keyset(e.Keyset)
			b.actionRef(e.ActionRef)
			b.set(e.ID(), Single(b.atom(TypeVarKind, e)))
		}
		b.set(n.ID(), Single(b.atom(TypeVarKind, n)))

	case *ast.SimpleProperty:
		if n.Value != nil {
			b.set(n.ID(), Single(b.exprType(n.Value)))
		} else {
			b.set(n.ID(), Single(b.atom(TypeVarKind, n)))
		}
	}
}

func (b *builder) actionRef(ref *ast.ActionRef) {
	declNode := b.resolveVarName(ref.Name)
	b.set(ref.Name.ID(), Single(b.typeOf(declNode)))
	argTypes := make([]*Type, 0, len(ref.Args))
	for _, a := range ref.Args {
		argTypes = append(argTypes, b.exprType(a))
	}
	var argsTy *Type
	if len(argTypes) == 0 {
		argsTy = b.atom(AtomicVoid, ref)
	} else {
		argsTy = rightLeaningProduct(argTypes, ref)
	}
	b.set(ref.ID(), Single(&Type{Kind: FunctionCallKind, Args: argsTy, Origin: ref}))
}

func (b *builder) stmtList(stmts []ast.Stmt) {
	for _, st := range stmts {
		b.stmt(st)
	}
}

func (b *builder) stmt(st ast.Stmt) {
	switch n := st.(type) {
	case *ast.BlockStmt:
		b.stmtList(n.Stmts)
		b.set(n.ID(), Single(b.atom(AtomicVoid, n)))

	case *ast.IfStmt:
		b.exprType(n.Cond)
		b.stmt(n.Then)
		if n.Else != nil {
			b.stmt(n.Else)
		}
		b.set(n.ID(), Single(b.atom(AtomicVoid, n)))

	case *ast.SwitchStmt:
		b.exprType(n.Cond)
		for _, c := range n.Cases {
			if c.Label != nil {
				b.exprType(c.Label)
			}
			if c.Body != nil {
				b.stmtList(c.Body.Stmts)
				b.set(c.Body.ID(), Single(b.atom(AtomicVoid, c.Body)))
			}
			b.set(c.ID(), Single(b.atom(AtomicVoid, c)))
		}
		b.set(n.ID(), Single(b.atom(AtomicVoid, n)))

	case *ast.ReturnStmt:
		var t *Type
		if n.Value != nil {
			t = b.exprType(n.Value)
		} else {
			t = b.atom(AtomicVoid, n)
		}
		b.set(n.ID(), Single(t))

	case *ast.AssignStmt:
		lhs := b.exprType(n.LHS)
		rhs := b.exprType(n.RHS)
		args := &Type{Kind: ProductKind, LHS: lhs, RHS: rhs, Origin: n}
		b.set(n.ID(), Single(&Type{Kind: FunctionCallKind, Args: args, Origin: n}))

	case *ast.ExprStmt:
		t := b.exprType(n.X)
		b.set(n.ID(), Single(t))

	case *ast.ConstDecl:
		b.decl(n)
	case *ast.VarDecl:
		b.decl(n)
	case *ast.InstantiationDecl:
		b.decl(n)

	case *ast.ExitStmt:
		b.set(n.ID(), Single(b.atom(AtomicVoid, n)))
	}
}

// exprType types one expression node bottom-up, installs its own entry,
// and returns the resulting Type (spec §4.4's per-construct rules).
func (b *builder) exprType(x ast.Expr) *Type {
	var t *Type
	switch n := x.(type) {
	case *ast.IntLit:
		t = b.typeOf(b.builtins.Int)
	case *ast.BoolLit:
		// spec §4.4: "Integer/Boolean literal: type = the canonical Int
		// typeset from the root scope" — both literal forms share Int.
		t = b.typeOf(b.builtins.Int)
	case *ast.StringLit:
		t = b.typeOf(b.builtins.String)
	case *ast.ErrorExpr:
		t = b.typeOf(b.builtins.Error)
	case *ast.Ident:
		t = b.typeOf(b.resolveVarName(n))
	case *ast.ParenExpr:
		t = b.exprType(n.X)
	case *ast.CastExpr:
		b.exprType(n.X)
		t = b.typeExprType(n.Type)
	case *ast.UnaryExpr:
		xt := b.exprType(n.X)
		t = &Type{Kind: FunctionCallKind, Args: xt, Origin: n}
	case *ast.BinaryExpr:
		xt := b.exprType(n.X)
		yt := b.exprType(n.Y)
		args := &Type{Kind: ProductKind, LHS: xt, RHS: yt, Origin: n}
		t = &Type{Kind: FunctionCallKind, Args: args, Origin: n}
	case *ast.SelectorExpr:
		b.exprType(n.X)
		b.set(n.Sel.ID(), Single(b.atom(TypeVarKind, n.Sel)))
		t = b.atom(TypeVarKind, n)
	case *ast.IndexExpr:
		xt := b.exprType(n.X)
		it := b.exprType(n.Index)
		args := &Type{Kind: ProductKind, LHS: xt, RHS: it, Origin: n}
		t = &Type{Kind: FunctionCallKind, Args: args, Origin: n}
	case *ast.CallExpr:
		b.exprType(n.Fun)
		argTypes := make([]*Type, 0, len(n.Args))
		for _, a := range n.Args {
			argTypes = append(argTypes, b.exprType(a))
		}
		var argsTy *Type
		if len(argTypes) == 0 {
			argsTy = b.atom(AtomicVoid, n)
		} else {
			argsTy = rightLeaningProduct(argTypes, n)
		}
		t = &Type{Kind: FunctionCallKind, Args: argsTy, Origin: n}
	case *ast.ListExpr:
		// A list literal's element types are individually typed (each
		// feeds its own node entry) but the list as a whole is left a
		// TypeVar, same as member-select: §4.4 gives list literals no
		// narrower rule than "deferred, not yet meaningful".
		for _, e := range n.Elems {
			b.exprType(e)
		}
		t = b.atom(TypeVarKind, n)
	default:
		t = b.atom(TypeVarKind, x)
	}
	b.set(x.ID(), Single(t))
	return t
}

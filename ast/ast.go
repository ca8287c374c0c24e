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

// Package ast declares the types used to represent the abstract syntax
// tree of a packet-pipeline source file (C3).
//
// Node names follow the grammar productions they correspond to. Trees
// are built from typed child-slices rather than parent/first-child/
// sibling pointers: child-vectors keep sibling iteration ergonomic and
// avoid upward parent pointers, threading context through the walker
// instead. Every node kind is a distinct tagged type implementing Node,
// traversed uniformly via the Visitor in walk.go.
package ast

import (
	"reflect"

	"github.com/packetlang/p4front/token"
)

// Kind is the closed enumeration every node's concrete type corresponds
// to one-for-one (spec §3: "kind is drawn from a closed enumeration").
type Kind int

const (
	KBuiltinDecl Kind = iota

	KProgram

	// Expressions.
	KIdent
	KIntLit
	KBoolLit
	KStringLit
	KErrorExpr
	KParenExpr
	KCastExpr
	KUnaryExpr
	KBinaryExpr
	KSelectorExpr
	KIndexExpr
	KCallExpr
	KListExpr

	// Syntactic type expressions.
	KBaseTypeExpr
	KBitTypeExpr
	KNamedTypeExpr
	KTupleTypeExpr
	KHeaderStackTypeExpr
	KDontCareTypeExpr

	// Shared fragments.
	KStructField
	KEnumMember
	KParameter
	KFunctionProto

	// Declarations.
	KTypedefDecl
	KHeaderTypeDecl
	KHeaderUnionTypeDecl
	KStructTypeDecl
	KEnumTypeDecl
	KErrorDecl
	KMatchKindDecl
	KExternDecl
	KPackageDecl
	KParserDecl
	KControlDecl
	KStateDecl
	KActionDecl
	KFunctionDecl
	KConstDecl
	KVarDecl
	KInstantiationDecl
	KTableDecl

	// Table properties.
	KKeyProperty
	KKeyElement
	KActionsProperty
	KActionRef
	KEntriesProperty
	KEntryDecl
	KSimpleProperty

	// Statements.
	KBlockStmt
	KIfStmt
	KSwitchStmt
	KSwitchCase
	KReturnStmt
	KExitStmt
	KAssignStmt
	KExprStmt
	KTransitionStmt

	// Parser-state select.
	KSelectExpr
	KSelectCase

	// Keysets.
	KDefaultKeyset
	KDontCareKeyset
	KExprKeyset
	KTupleKeyset
)

// Node is any node in the abstract syntax tree.
type Node interface {
	ID() int
	Kind() Kind
	Pos() token.Pos
	Children() []Node
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Decl is implemented by all declaration nodes, including the three
// (ConstDecl, VarDecl, InstantiationDecl) that also implement Stmt since
// the grammar allows them both at top level and as block-local
// declarations.
type Decl interface {
	Node
	declNode()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is implemented by all syntactic type-reference nodes. These
// are distinct from the semantic Type values the types package (P4)
// attaches to nodes: a TypeExpr is what the programmer wrote; a Type is
// what it denotes.
type TypeExpr interface {
	Node
	typeExprNode()
}

// TableProperty is implemented by the four recognized table property
// forms (spec §4.1).
type TableProperty interface {
	Node
	tablePropertyNode()
}

// Keyset is implemented by the four keyset expression forms accepted in
// select cases and entries keys (spec §4.1 "Keysets").
type Keyset interface {
	Node
	keysetNode()
}

// IDAllocator hands out the monotonically increasing node ids spec §3
// requires ("id is a monotonically increasing integer unique within the
// compilation unit"). One instance is shared by builtin seeding and the
// parser via the CompilationContext (compile package), never a package
// global (DESIGN NOTES: "no globals").
type IDAllocator struct{ next int }

// Next returns the next id, starting at 1.
func (a *IDAllocator) Next() int {
	a.next++
	return a.next
}

// Last reports the most recently issued id (spec §6: "Last node id (N)
// for later passes that need fresh ids").
func (a *IDAllocator) Last() int { return a.next }

// base embeds the id/position every node shares, so each concrete node
// type only has to declare its own fields and embed base for identity.
type base struct {
	id  int
	pos token.Pos
}

func (b *base) ID() int        { return b.id }
func (b *base) Pos() token.Pos { return b.pos }

// SetBase assigns a node's identity once, at construction. Exported (and
// promoted onto every concrete node type through the embedded base) so
// the parser package — which builds nodes as ordinary exported-field
// struct literals, since base's own fields are unexported — can finish
// constructing a node without this package needing one constructor
// function per node kind.
func (b *base) SetBase(id int, pos token.Pos) { b.id, b.pos = id, pos }

// newBase is used by every concrete-node constructor in this package.
func newBase(id int, pos token.Pos) base { return base{id: id, pos: pos} }

// nodes filters out nil Nodes from a Children() literal so callers can
// write optional children unconditionally. A field typed as a concrete
// pointer (e.g. *BlockStmt, *TransitionStmt) that is nil still arrives
// here as a non-nil Node interface value wrapping a nil pointer, so a
// plain `x == nil` check would let it through; isNilNode catches that
// case too.
func nodes(xs ...Node) []Node {
	out := make([]Node, 0, len(xs))
	for _, x := range xs {
		if isNilNode(x) {
			continue
		}
		out = append(out, x)
	}
	return out
}

func isNilNode(x Node) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func exprNodes(xs []Expr) []Node {
	out := make([]Node, 0, len(xs))
	for _, x := range xs {
		out = append(out, x)
	}
	return out
}

// ----------------------------------------------------------------------
// Builtin seed node

// BuiltinDecl is a synthetic declaring node for the names the root scope
// is pre-populated with (the 8 atomic types, accept/reject, and the
// error value) — see scope.NewRoot. Type construction (P4) seeds a
// canonical Type keyed by each BuiltinDecl's id (spec §4.4 "Seeding").
type BuiltinDecl struct {
	base
	Name string
}

func NewBuiltinDecl(id int, name string) *BuiltinDecl {
	return &BuiltinDecl{base: newBase(id, token.NoPos), Name: name}
}
func (n *BuiltinDecl) Kind() Kind         { return KBuiltinDecl }
func (n *BuiltinDecl) Children() []Node   { return nil }

// ----------------------------------------------------------------------
// Program

// Program is the root of the tree: the sequence of top-level
// declarations in a compilation unit.
type Program struct {
	base
	Decls []Decl
}

func (n *Program) Kind() Kind { return KProgram }
func (n *Program) Children() []Node {
	out := make([]Node, 0, len(n.Decls))
	for _, d := range n.Decls {
		out = append(out, d)
	}
	return out
}

// ----------------------------------------------------------------------
// Expressions

type Ident struct {
	base
	Name string
}

func (n *Ident) Kind() Kind       { return KIdent }
func (n *Ident) Children() []Node { return nil }
func (*Ident) exprNode()          {}

type IntLit struct {
	base
	Value *token.IntValue
}

func (n *IntLit) Kind() Kind       { return KIntLit }
func (n *IntLit) Children() []Node { return nil }
func (*IntLit) exprNode()          {}

type BoolLit struct {
	base
	Value bool
}

func (n *BoolLit) Kind() Kind       { return KBoolLit }
func (n *BoolLit) Children() []Node { return nil }
func (*BoolLit) exprNode()          {}

type StringLit struct {
	base
	Value string
}

func (n *StringLit) Kind() Kind       { return KStringLit }
func (n *StringLit) Children() []Node { return nil }
func (*StringLit) exprNode()          {}

// ErrorExpr is the reserved `error` primary (spec §4.1): using the
// keyword `error` itself as an expression operand.
type ErrorExpr struct{ base }

func (n *ErrorExpr) Kind() Kind       { return KErrorExpr }
func (n *ErrorExpr) Children() []Node { return nil }
func (*ErrorExpr) exprNode()          {}

type ParenExpr struct {
	base
	X Expr
}

func (n *ParenExpr) Kind() Kind       { return KParenExpr }
func (n *ParenExpr) Children() []Node { return nodes(n.X) }
func (*ParenExpr) exprNode()          {}

// CastExpr is an explicit cast, `(type) expr`.
type CastExpr struct {
	base
	Type TypeExpr
	X    Expr
}

func (n *CastExpr) Kind() Kind       { return KCastExpr }
func (n *CastExpr) Children() []Node { return nodes(n.Type, n.X) }
func (*CastExpr) exprNode()          {}

type UnaryExpr struct {
	base
	Op token.Class
	X  Expr
}

func (n *UnaryExpr) Kind() Kind       { return KUnaryExpr }
func (n *UnaryExpr) Children() []Node { return nodes(n.X) }
func (*UnaryExpr) exprNode()          {}

type BinaryExpr struct {
	base
	Op   token.Class
	X, Y Expr
}

func (n *BinaryExpr) Kind() Kind       { return KBinaryExpr }
func (n *BinaryExpr) Children() []Node { return nodes(n.X, n.Y) }
func (*BinaryExpr) exprNode()          {}

// SelectorExpr is a member select, `x.sel`. Per spec §4.3, name
// resolution only resolves X here; Sel is deliberately left unresolved
// (P4 attaches it a fresh TypeVar).
type SelectorExpr struct {
	base
	X   Expr
	Sel *Ident
}

func (n *SelectorExpr) Kind() Kind       { return KSelectorExpr }
func (n *SelectorExpr) Children() []Node { return nodes(n.X, n.Sel) }
func (*SelectorExpr) exprNode()          {}

type IndexExpr struct {
	base
	X     Expr
	Index Expr
}

func (n *IndexExpr) Kind() Kind       { return KIndexExpr }
func (n *IndexExpr) Children() []Node { return nodes(n.X, n.Index) }
func (*IndexExpr) exprNode()          {}

type CallExpr struct {
	base
	Fun  Expr
	Args []Expr
}

func (n *CallExpr) Kind() Kind { return KCallExpr }
func (n *CallExpr) Children() []Node {
	out := []Node{n.Fun}
	return append(out, exprNodes(n.Args)...)
}
func (*CallExpr) exprNode() {}

// ListExpr is a brace-delimited expression list used as a value, e.g. a
// header-stack or tuple initializer `{1, 2, 3}`.
type ListExpr struct {
	base
	Elems []Expr
}

func (n *ListExpr) Kind() Kind       { return KListExpr }
func (n *ListExpr) Children() []Node { return exprNodes(n.Elems) }
func (*ListExpr) exprNode()          {}

// ----------------------------------------------------------------------
// Syntactic type expressions

// BaseTypeExpr names one of the unsized atomic types void, bool, string
// or error by identifier. A bare `int` or `bit` is parsed as a
// BitTypeExpr with no Size, and match_kind is not accepted as a type.
type BaseTypeExpr struct {
	base
	Name *Ident
}

func (n *BaseTypeExpr) Kind() Kind       { return KBaseTypeExpr }
func (n *BaseTypeExpr) Children() []Node { return nodes(n.Name) }
func (*BaseTypeExpr) typeExprNode()      {}

// BitTypeExpr covers bit<N>, int<N> (signed, sized), and varbit<N>, and
// a bare `bit` or `int` with a nil Size.
type BitTypeExpr struct {
	base
	Signed   bool
	IsVarbit bool
	Size     Expr
}

func (n *BitTypeExpr) Kind() Kind       { return KBitTypeExpr }
func (n *BitTypeExpr) Children() []Node { return nodes(n.Size) }
func (*BitTypeExpr) typeExprNode()      {}

// NamedTypeExpr references a declared aggregate (header/struct/union/
// enum/extern/package/parser/control/typedef) by name, optionally
// specialized with type arguments.
type NamedTypeExpr struct {
	base
	Name *Ident
	Args []TypeExpr
}

func (n *NamedTypeExpr) Kind() Kind { return KNamedTypeExpr }
func (n *NamedTypeExpr) Children() []Node {
	out := []Node{n.Name}
	for _, a := range n.Args {
		out = append(out, a)
	}
	return out
}
func (*NamedTypeExpr) typeExprNode() {}

type TupleTypeExpr struct {
	base
	Elems []TypeExpr
}

func (n *TupleTypeExpr) Kind() Kind { return KTupleTypeExpr }
func (n *TupleTypeExpr) Children() []Node {
	out := make([]Node, 0, len(n.Elems))
	for _, e := range n.Elems {
		out = append(out, e)
	}
	return out
}
func (*TupleTypeExpr) typeExprNode() {}

// HeaderStackTypeExpr is a field type of the form `H[size]`.
type HeaderStackTypeExpr struct {
	base
	Elem TypeExpr
	Size Expr
}

func (n *HeaderStackTypeExpr) Kind() Kind       { return KHeaderStackTypeExpr }
func (n *HeaderStackTypeExpr) Children() []Node { return nodes(n.Elem, n.Size) }
func (*HeaderStackTypeExpr) typeExprNode()      {}

// DontCareTypeExpr is `_` used as a type argument.
type DontCareTypeExpr struct{ base }

func (n *DontCareTypeExpr) Kind() Kind       { return KDontCareTypeExpr }
func (n *DontCareTypeExpr) Children() []Node { return nil }
func (*DontCareTypeExpr) typeExprNode()      {}

// ----------------------------------------------------------------------
// Shared fragments

type StructField struct {
	base
	Name *Ident
	Type TypeExpr
}

func (n *StructField) Kind() Kind       { return KStructField }
func (n *StructField) Children() []Node { return nodes(n.Name, n.Type) }

// EnumMember is one `Name` or `Name = value` entry in an enum, error, or
// match_kind member list.
type EnumMember struct {
	base
	Name  *Ident
	Value Expr // nil if unspecified
}

func (n *EnumMember) Kind() Kind       { return KEnumMember }
func (n *EnumMember) Children() []Node { return nodes(n.Name, n.Value) }

// Direction is the two-bit flag set a parameter's direction reduces to
// (spec §4.1 "State machine inside parameter").
type Direction int

const (
	DirNone  Direction = 0
	DirIn    Direction = 1 << 0
	DirOut   Direction = 1 << 1
	DirInOut           = DirIn | DirOut
)

type Parameter struct {
	base
	Direction Direction
	Name      *Ident
	Type      TypeExpr
}

func (n *Parameter) Kind() Kind       { return KParameter }
func (n *Parameter) Children() []Node { return nodes(n.Name, n.Type) }

// FunctionProto is the params/return shape shared by extern methods and
// by parser/control type declarations (spec §4.4 "FunctionProto").
type FunctionProto struct {
	base
	Name       *Ident // also holds a bare extern function's name; that ExternDecl's own Name is nil
	TypeParams []*Ident
	Params     []*Parameter
	ReturnType TypeExpr // nil means Void (and, for an extern method, marks it a constructor)
}

func (n *FunctionProto) Kind() Kind { return KFunctionProto }
func (n *FunctionProto) Children() []Node {
	out := make([]Node, 0, len(n.TypeParams)+len(n.Params)+2)
	if n.Name != nil {
		out = append(out, n.Name)
	}
	for _, tp := range n.TypeParams {
		out = append(out, tp)
	}
	for _, p := range n.Params {
		out = append(out, p)
	}
	if n.ReturnType != nil {
		out = append(out, n.ReturnType)
	}
	return out
}

// ----------------------------------------------------------------------
// Declarations

// TypedefDecl covers both `typedef` and `type` (newtype) forms;
// IsTypedef distinguishes them syntactically, though P3/P4 currently
// treat both identically (spec §9 Open Question, left open).
type TypedefDecl struct {
	base
	Name      *Ident
	Type      TypeExpr
	IsTypedef bool
}

func (n *TypedefDecl) Kind() Kind       { return KTypedefDecl }
func (n *TypedefDecl) Children() []Node { return nodes(n.Name, n.Type) }
func (*TypedefDecl) declNode()          {}

type HeaderTypeDecl struct {
	base
	Name   *Ident
	Fields []*StructField
}

func (n *HeaderTypeDecl) Kind() Kind { return KHeaderTypeDecl }
func (n *HeaderTypeDecl) Children() []Node {
	out := []Node{n.Name}
	for _, f := range n.Fields {
		out = append(out, f)
	}
	return out
}
func (*HeaderTypeDecl) declNode() {}

type HeaderUnionTypeDecl struct {
	base
	Name   *Ident
	Fields []*StructField
}

func (n *HeaderUnionTypeDecl) Kind() Kind { return KHeaderUnionTypeDecl }
func (n *HeaderUnionTypeDecl) Children() []Node {
	out := []Node{n.Name}
	for _, f := range n.Fields {
		out = append(out, f)
	}
	return out
}
func (*HeaderUnionTypeDecl) declNode() {}

type StructTypeDecl struct {
	base
	Name   *Ident
	Fields []*StructField
}

func (n *StructTypeDecl) Kind() Kind { return KStructTypeDecl }
func (n *StructTypeDecl) Children() []Node {
	out := []Node{n.Name}
	for _, f := range n.Fields {
		out = append(out, f)
	}
	return out
}
func (*StructTypeDecl) declNode() {}

type EnumTypeDecl struct {
	base
	Name *Ident
	// UnderlyingSize is the literal width in `enum bit<N> Name { ... }`;
	// nil for a plain `enum Name { ... }` with no underlying representation.
	UnderlyingSize *IntLit
	Members        []*EnumMember
}

func (n *EnumTypeDecl) Kind() Kind { return KEnumTypeDecl }
func (n *EnumTypeDecl) Children() []Node {
	out := []Node{n.Name}
	if n.UnderlyingSize != nil {
		out = append(out, n.UnderlyingSize)
	}
	for _, m := range n.Members {
		out = append(out, m)
	}
	return out
}
func (*EnumTypeDecl) declNode() {}

// ErrorDecl extends the single built-in `error` type with more members,
// e.g. `error { BadHeader, Overflow }`.
type ErrorDecl struct {
	base
	Members []*EnumMember
}

func (n *ErrorDecl) Kind() Kind { return KErrorDecl }
func (n *ErrorDecl) Children() []Node {
	out := make([]Node, 0, len(n.Members))
	for _, m := range n.Members {
		out = append(out, m)
	}
	return out
}
func (*ErrorDecl) declNode() {}

// MatchKindDecl extends the built-in match_kind type with more members.
type MatchKindDecl struct {
	base
	Members []*EnumMember
}

func (n *MatchKindDecl) Kind() Kind { return KMatchKindDecl }
func (n *MatchKindDecl) Children() []Node {
	out := make([]Node, 0, len(n.Members))
	for _, m := range n.Members {
		out = append(out, m)
	}
	return out
}
func (*MatchKindDecl) declNode() {}

// ExternDecl covers both a bare extern function (IsFunction, Proto set)
// and an extern object (Methods set, one per declared method/ctor).
type ExternDecl struct {
	base
	Name       *Ident
	TypeParams []*Ident
	IsFunction bool
	Proto      *FunctionProto
	Methods    []*FunctionProto
}

func (n *ExternDecl) Kind() Kind { return KExternDecl }
func (n *ExternDecl) Children() []Node {
	out := nodes(n.Name)
	for _, tp := range n.TypeParams {
		out = append(out, tp)
	}
	if n.Proto != nil {
		out = append(out, n.Proto)
	}
	for _, m := range n.Methods {
		out = append(out, m)
	}
	return out
}
func (*ExternDecl) declNode() {}

type PackageDecl struct {
	base
	Name       *Ident
	TypeParams []*Ident
	Params     []*Parameter
}

func (n *PackageDecl) Kind() Kind { return KPackageDecl }
func (n *PackageDecl) Children() []Node {
	out := []Node{n.Name}
	for _, tp := range n.TypeParams {
		out = append(out, tp)
	}
	for _, p := range n.Params {
		out = append(out, p)
	}
	return out
}
func (*PackageDecl) declNode() {}

// ParserDecl is the `parser P(...) { states... }` declaration. States is
// nil for a prototype-only declaration (e.g. a parser-typed package
// parameter), non-nil for a definition with a body.
type ParserDecl struct {
	base
	Name       *Ident
	TypeParams []*Ident
	Params     []*Parameter
	Locals     []Decl
	States     []*StateDecl
}

func (n *ParserDecl) Kind() Kind { return KParserDecl }
func (n *ParserDecl) Children() []Node {
	out := []Node{n.Name}
	for _, tp := range n.TypeParams {
		out = append(out, tp)
	}
	for _, p := range n.Params {
		out = append(out, p)
	}
	for _, l := range n.Locals {
		out = append(out, l)
	}
	for _, s := range n.States {
		out = append(out, s)
	}
	return out
}
func (*ParserDecl) declNode() {}

// ControlDecl is the `control C(...) { ... apply { ... } }` declaration.
// Apply is nil for a prototype-only declaration.
type ControlDecl struct {
	base
	Name       *Ident
	TypeParams []*Ident
	Params     []*Parameter
	Locals     []Decl
	Apply      *BlockStmt
}

func (n *ControlDecl) Kind() Kind { return KControlDecl }
func (n *ControlDecl) Children() []Node {
	out := []Node{n.Name}
	for _, tp := range n.TypeParams {
		out = append(out, tp)
	}
	for _, p := range n.Params {
		out = append(out, p)
	}
	for _, l := range n.Locals {
		out = append(out, l)
	}
	if n.Apply != nil {
		out = append(out, n.Apply)
	}
	return out
}
func (*ControlDecl) declNode() {}

type StateDecl struct {
	base
	Name       *Ident
	Body       *BlockStmt
	Transition *TransitionStmt
}

func (n *StateDecl) Kind() Kind       { return KStateDecl }
func (n *StateDecl) Children() []Node { return nodes(n.Name, n.Body, n.Transition) }

type ActionDecl struct {
	base
	Name   *Ident
	Params []*Parameter
	Body   *BlockStmt
}

func (n *ActionDecl) Kind() Kind { return KActionDecl }
func (n *ActionDecl) Children() []Node {
	out := []Node{n.Name}
	for _, p := range n.Params {
		out = append(out, p)
	}
	out = append(out, n.Body)
	return out
}
func (*ActionDecl) declNode() {}

// FunctionDecl is a standalone top-level function declaration
// (`T foo(params) { body }`), distinct from an extern method or
// constructor prototype (FunctionProto) in that it carries its own body.
type FunctionDecl struct {
	base
	Proto *FunctionProto
	Body  *BlockStmt
}

func (n *FunctionDecl) Kind() Kind       { return KFunctionDecl }
func (n *FunctionDecl) Children() []Node { return nodes(n.Proto, n.Body) }
func (*FunctionDecl) declNode()          {}

type ConstDecl struct {
	base
	Name  *Ident
	Type  TypeExpr
	Value Expr
}

func (n *ConstDecl) Kind() Kind       { return KConstDecl }
func (n *ConstDecl) Children() []Node { return nodes(n.Name, n.Type, n.Value) }
func (*ConstDecl) declNode()          {}
func (*ConstDecl) stmtNode()          {}

type VarDecl struct {
	base
	Name *Ident
	Type TypeExpr
	Init Expr // nil if uninitialized
}

func (n *VarDecl) Kind() Kind       { return KVarDecl }
func (n *VarDecl) Children() []Node { return nodes(n.Name, n.Type, n.Init) }
func (*VarDecl) declNode()          {}
func (*VarDecl) stmtNode()          {}

// InstantiationDecl instantiates a package/control/parser/extern,
// `Type(args) name;`.
type InstantiationDecl struct {
	base
	Type TypeExpr
	Args []Expr
	Name *Ident
}

func (n *InstantiationDecl) Kind() Kind { return KInstantiationDecl }
func (n *InstantiationDecl) Children() []Node {
	out := []Node{n.Type}
	out = append(out, exprNodes(n.Args)...)
	out = append(out, n.Name)
	return out
}
func (*InstantiationDecl) declNode() {}
func (*InstantiationDecl) stmtNode() {}

type TableDecl struct {
	base
	Name       *Ident
	Properties []TableProperty
}

func (n *TableDecl) Kind() Kind { return KTableDecl }
func (n *TableDecl) Children() []Node {
	out := []Node{n.Name}
	for _, p := range n.Properties {
		out = append(out, p)
	}
	return out
}
func (*TableDecl) declNode() {}

// ----------------------------------------------------------------------
// Table properties

type KeyElement struct {
	base
	MatchExpr Expr
	MatchKind *Ident
}

func (n *KeyElement) Kind() Kind       { return KKeyElement }
func (n *KeyElement) Children() []Node { return nodes(n.MatchExpr, n.MatchKind) }

type KeyProperty struct {
	base
	Elements []*KeyElement
}

func (n *KeyProperty) Kind() Kind { return KKeyProperty }
func (n *KeyProperty) Children() []Node {
	out := make([]Node, 0, len(n.Elements))
	for _, e := range n.Elements {
		out = append(out, e)
	}
	return out
}
func (*KeyProperty) tablePropertyNode() {}

type ActionRef struct {
	base
	Name *Ident
	Args []Expr
}

func (n *ActionRef) Kind() Kind { return KActionRef }
func (n *ActionRef) Children() []Node {
	out := []Node{n.Name}
	return append(out, exprNodes(n.Args)...)
}

type ActionsProperty struct {
	base
	Refs []*ActionRef
}

func (n *ActionsProperty) Kind() Kind { return KActionsProperty }
func (n *ActionsProperty) Children() []Node {
	out := make([]Node, 0, len(n.Refs))
	for _, r := range n.Refs {
		out = append(out, r)
	}
	return out
}
func (*ActionsProperty) tablePropertyNode() {}

// EntryDecl is one row of a gated-off `entries = { ... }` property
// (spec §4.1, §9 Open Question — resolved "surfaced", see DESIGN.md).
type EntryDecl struct {
	base
	Keyset    Keyset
	ActionRef *ActionRef
}

func (n *EntryDecl) Kind() Kind       { return KEntryDecl }
func (n *EntryDecl) Children() []Node { return nodes(n.Keyset, n.ActionRef) }

type EntriesProperty struct {
	base
	Entries []*EntryDecl
}

func (n *EntriesProperty) Kind() Kind { return KEntriesProperty }
func (n *EntriesProperty) Children() []Node {
	out := make([]Node, 0, len(n.Entries))
	for _, e := range n.Entries {
		out = append(out, e)
	}
	return out
}
func (*EntriesProperty) tablePropertyNode() {}

// SimpleProperty is a named simple table property, `name = expr;`.
type SimpleProperty struct {
	base
	Name  *Ident
	Value Expr
}

func (n *SimpleProperty) Kind() Kind       { return KSimpleProperty }
func (n *SimpleProperty) Children() []Node { return nodes(n.Name, n.Value) }
func (*SimpleProperty) tablePropertyNode() {}

// ----------------------------------------------------------------------
// Statements

type BlockStmt struct {
	base
	Stmts []Stmt
}

func (n *BlockStmt) Kind() Kind { return KBlockStmt }
func (n *BlockStmt) Children() []Node {
	out := make([]Node, 0, len(n.Stmts))
	for _, s := range n.Stmts {
		out = append(out, s)
	}
	return out
}
func (*BlockStmt) stmtNode() {}

type IfStmt struct {
	base
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else branch
}

func (n *IfStmt) Kind() Kind       { return KIfStmt }
func (n *IfStmt) Children() []Node { return nodes(n.Cond, n.Then, n.Else) }
func (*IfStmt) stmtNode()          {}

type SwitchCase struct {
	base
	Label Expr // nil means `default`
	Body  *BlockStmt
}

func (n *SwitchCase) Kind() Kind       { return KSwitchCase }
func (n *SwitchCase) Children() []Node { return nodes(n.Label, n.Body) }

type SwitchStmt struct {
	base
	Cond  Expr
	Cases []*SwitchCase
}

func (n *SwitchStmt) Kind() Kind { return KSwitchStmt }
func (n *SwitchStmt) Children() []Node {
	out := []Node{n.Cond}
	for _, c := range n.Cases {
		out = append(out, c)
	}
	return out
}
func (*SwitchStmt) stmtNode() {}

type ReturnStmt struct {
	base
	Value Expr // nil for a bare `return;`
}

func (n *ReturnStmt) Kind() Kind       { return KReturnStmt }
func (n *ReturnStmt) Children() []Node { return nodes(n.Value) }
func (*ReturnStmt) stmtNode()          {}

type ExitStmt struct{ base }

func (n *ExitStmt) Kind() Kind       { return KExitStmt }
func (n *ExitStmt) Children() []Node { return nil }
func (*ExitStmt) stmtNode()          {}

type AssignStmt struct {
	base
	LHS Expr
	RHS Expr
}

func (n *AssignStmt) Kind() Kind       { return KAssignStmt }
func (n *AssignStmt) Children() []Node { return nodes(n.LHS, n.RHS) }
func (*AssignStmt) stmtNode()          {}

// ExprStmt is a bare expression used as a statement, e.g. `t.apply();`.
type ExprStmt struct {
	base
	X Expr
}

func (n *ExprStmt) Kind() Kind       { return KExprStmt }
func (n *ExprStmt) Children() []Node { return nodes(n.X) }
func (*ExprStmt) stmtNode()          {}

// TransitionStmt is a parser state's terminal `transition ...;`. Either
// Target (direct transition to a named state) or Select is set, never
// both.
type TransitionStmt struct {
	base
	Target *Ident
	Select *SelectExpr
}

func (n *TransitionStmt) Kind() Kind       { return KTransitionStmt }
func (n *TransitionStmt) Children() []Node { return nodes(n.Target, n.Select) }
func (*TransitionStmt) stmtNode()          {}

type SelectCase struct {
	base
	Keyset Keyset
	Target *Ident
}

func (n *SelectCase) Kind() Kind       { return KSelectCase }
func (n *SelectCase) Children() []Node { return nodes(n.Keyset, n.Target) }

type SelectExpr struct {
	base
	Exprs []Expr
	Cases []*SelectCase
}

func (n *SelectExpr) Kind() Kind { return KSelectExpr }
func (n *SelectExpr) Children() []Node {
	out := exprNodes(n.Exprs)
	for _, c := range n.Cases {
		out = append(out, c)
	}
	return out
}

// ----------------------------------------------------------------------
// Keysets

type DefaultKeyset struct{ base }

func (n *DefaultKeyset) Kind() Kind       { return KDefaultKeyset }
func (n *DefaultKeyset) Children() []Node { return nil }
func (*DefaultKeyset) keysetNode()        {}

type DontCareKeyset struct{ base }

func (n *DontCareKeyset) Kind() Kind       { return KDontCareKeyset }
func (n *DontCareKeyset) Children() []Node { return nil }
func (*DontCareKeyset) keysetNode()        {}

type ExprKeyset struct {
	base
	X Expr
}

func (n *ExprKeyset) Kind() Kind       { return KExprKeyset }
func (n *ExprKeyset) Children() []Node { return nodes(n.X) }
func (*ExprKeyset) keysetNode()        {}

type TupleKeyset struct {
	base
	Elems []Keyset
}

func (n *TupleKeyset) Kind() Kind { return KTupleKeyset }
func (n *TupleKeyset) Children() []Node {
	out := make([]Node, 0, len(n.Elems))
	for _, e := range n.Elems {
		out = append(out, e)
	}
	return out
}
func (*TupleKeyset) keysetNode() {}

// Package types implements the EFU type universe of spec.md §3/§4.3: a
// closed set of type kinds built through staged builders, a lexically
// scoped Context with a parent chain, and the equivalence/numeric-
// classification rules the checker relies on.
package types

import (
	"fmt"

	"github.com/efulang/efu/internal/token"
)

// Kind discriminates the Type variants.
type Kind int

const (
	KindAny Kind = iota
	KindVoid
	KindPrimitive
	KindArray
	KindStruct
	KindFunc
	KindEnum
	KindTaggedUnion
)

// PrimitiveBase enumerates spec.md §3's primitive bases.
type PrimitiveBase string

const (
	Si8    PrimitiveBase = "si8"
	Ui8    PrimitiveBase = "ui8"
	Si32   PrimitiveBase = "si32"
	Ui32   PrimitiveBase = "ui32"
	Sisz   PrimitiveBase = "sisz"
	Uisz   PrimitiveBase = "uisz"
	Ptr    PrimitiveBase = "ptr"
	Flt32  PrimitiveBase = "flt32"
	Flt64  PrimitiveBase = "flt64"
	StringBase PrimitiveBase = "string"
	BoolBase   PrimitiveBase = "bool"
	NullBase   PrimitiveBase = "null"
)

var integerBases = map[PrimitiveBase]bool{
	Si8: true, Ui8: true, Si32: true, Ui32: true, Sisz: true, Uisz: true,
}

var floatBases = map[PrimitiveBase]bool{
	Flt32: true, Flt64: true,
}

var validPrimitiveBases = map[PrimitiveBase]bool{
	Si8: true, Ui8: true, Si32: true, Ui32: true, Sisz: true, Uisz: true,
	Ptr: true, Flt32: true, Flt64: true, StringBase: true, BoolBase: true, NullBase: true,
}

// Field is a named struct field, in declared order.
type Field struct {
	Name string
	Type *Type
}

// FuncArg is a named function argument, in declared order.
type FuncArg struct {
	Name string
	Type *Type
}

// Variadic is a function's optional variadic tail (spec.md GLOSSARY).
// A nil Type defaults to `any`, per spec.md's "element type, default any".
type Variadic struct {
	Name string
	Type *Type
}

// EnumValue is one named, valued member of an enum, in declared order.
type EnumValue struct {
	Name  string
	Value int
}

// UnionCase is one named, payload-typed case of a tagged union, in
// declared order.
type UnionCase struct {
	Name    string
	Payload *Type
}

// Type is the EFU language-type value. Every type additionally carries an
// optional origin position and method/property tables (spec.md §3).
type Type struct {
	kind Kind

	primitiveBase PrimitiveBase

	elem      *Type
	arraySize *int // nil means unsized

	name     string
	fields   []Field
	args     []FuncArg
	variadic *Variadic
	ret      *Type
	values   []EnumValue
	cases    []UnionCase

	origin     *token.Position
	methods    map[string]*Type
	properties map[string]*Type
}

func (t *Type) Kind() Kind { return t.kind }

func (t *Type) PrimitiveBase() PrimitiveBase { return t.primitiveBase }

func (t *Type) Elem() *Type { return t.elem }

// ArraySize returns the fixed size and whether the array is sized.
func (t *Type) ArraySize() (int, bool) {
	if t.arraySize == nil {
		return 0, false
	}
	return *t.arraySize, true
}

func (t *Type) Name() string { return t.name }

func (t *Type) Fields() []Field { return t.fields }

func (t *Type) Args() []FuncArg { return t.args }

func (t *Type) Variadic() *Variadic { return t.variadic }

func (t *Type) Return() *Type { return t.ret }

func (t *Type) Values() []EnumValue { return t.values }

func (t *Type) Cases() []UnionCase { return t.cases }

func (t *Type) Origin() *token.Position { return t.origin }

func (t *Type) WithOrigin(pos token.Position) *Type {
	cp := *t
	cp.origin = &pos
	return &cp
}

func (t *Type) Method(name string) (*Type, bool) {
	m, ok := t.methods[name]
	return m, ok
}

func (t *Type) AddMethod(name string, fn *Type) {
	if t.methods == nil {
		t.methods = map[string]*Type{}
	}
	t.methods[name] = fn
}

func (t *Type) Property(name string) (*Type, bool) {
	p, ok := t.properties[name]
	return p, ok
}

func (t *Type) AddProperty(name string, sub *Type) {
	if t.properties == nil {
		t.properties = map[string]*Type{}
	}
	t.properties[name] = sub
}

// Any and Void are the two singleton non-compound kinds.
var Any = &Type{kind: KindAny}
var Void = &Type{kind: KindVoid}

func (t *Type) String() string {
	switch t.kind {
	case KindAny:
		return "any"
	case KindVoid:
		return "void"
	case KindPrimitive:
		return string(t.primitiveBase)
	case KindArray:
		if n, ok := t.ArraySize(); ok {
			return fmt.Sprintf("%s[%d]", t.elem, n)
		}
		return fmt.Sprintf("%s[]", t.elem)
	case KindStruct:
		return t.name
	case KindFunc:
		return fmt.Sprintf("fn %s", t.name)
	case KindEnum:
		return t.name
	case KindTaggedUnion:
		return t.name
	default:
		return "?"
	}
}

// --- Builders -------------------------------------------------------------
//
// One staged builder per compound kind, per spec.md §4.3: a builder's
// Build() fails if a required field was never set. Builders for the
// non-compound Any/Void kinds aren't needed since those are singletons.

// PrimitiveBuilder builds a primitive Type.
type PrimitiveBuilder struct {
	base    *PrimitiveBase
	hasBase bool
}

func NewPrimitiveBuilder() *PrimitiveBuilder { return &PrimitiveBuilder{} }

func (b *PrimitiveBuilder) Base(base PrimitiveBase) *PrimitiveBuilder {
	b.base = &base
	b.hasBase = true
	return b
}

func (b *PrimitiveBuilder) Build() (*Type, error) {
	if !b.hasBase {
		return nil, fmt.Errorf("primitive builder: base not set")
	}
	if !validPrimitiveBases[*b.base] {
		return nil, fmt.Errorf("primitive builder: unknown base %q", *b.base)
	}
	return &Type{kind: KindPrimitive, primitiveBase: *b.base}, nil
}

// NewPrimitive is a convenience static factory over PrimitiveBuilder, for
// the common case of building a known-good base.
func NewPrimitive(base PrimitiveBase) *Type {
	t, err := NewPrimitiveBuilder().Base(base).Build()
	if err != nil {
		panic(err)
	}
	return t
}

// ArrayBuilder builds an array Type.
type ArrayBuilder struct {
	elem *Type
	size *int
}

func NewArrayBuilder() *ArrayBuilder { return &ArrayBuilder{} }

func (b *ArrayBuilder) Elem(elem *Type) *ArrayBuilder { b.elem = elem; return b }

func (b *ArrayBuilder) Size(n int) *ArrayBuilder { b.size = &n; return b }

func (b *ArrayBuilder) Build() (*Type, error) {
	if b.elem == nil {
		return nil, fmt.Errorf("array builder: element type not set")
	}
	return &Type{kind: KindArray, elem: b.elem, arraySize: b.size}, nil
}

func NewArray(elem *Type, size *int) *Type {
	return &Type{kind: KindArray, elem: elem, arraySize: size}
}

// StructBuilder builds a struct Type.
type StructBuilder struct {
	name      string
	hasName   bool
	fields    []Field
}

func NewStructBuilder() *StructBuilder { return &StructBuilder{} }

func (b *StructBuilder) Name(name string) *StructBuilder { b.name = name; b.hasName = true; return b }

func (b *StructBuilder) Field(name string, t *Type) *StructBuilder {
	b.fields = append(b.fields, Field{Name: name, Type: t})
	return b
}

func (b *StructBuilder) Build() (*Type, error) {
	if !b.hasName {
		return nil, fmt.Errorf("struct builder: name not set")
	}
	return &Type{kind: KindStruct, name: b.name, fields: b.fields}, nil
}

// FuncBuilder builds a func Type.
type FuncBuilder struct {
	name     string
	args     []FuncArg
	variadic *Variadic
	ret      *Type
	hasRet   bool
}

func NewFuncBuilder() *FuncBuilder { return &FuncBuilder{} }

func (b *FuncBuilder) Name(name string) *FuncBuilder { b.name = name; return b }

func (b *FuncBuilder) Arg(name string, t *Type) *FuncBuilder {
	b.args = append(b.args, FuncArg{Name: name, Type: t})
	return b
}

func (b *FuncBuilder) VariadicTail(name string, elem *Type) *FuncBuilder {
	b.variadic = &Variadic{Name: name, Type: elem}
	return b
}

func (b *FuncBuilder) Returns(t *Type) *FuncBuilder { b.ret = t; b.hasRet = true; return b }

func (b *FuncBuilder) Build() (*Type, error) {
	if !b.hasRet {
		return nil, fmt.Errorf("func builder: return type not set")
	}
	return &Type{kind: KindFunc, name: b.name, args: b.args, variadic: b.variadic, ret: b.ret}, nil
}

// EnumBuilder builds an enum Type.
type EnumBuilder struct {
	name    string
	hasName bool
	values  []EnumValue
}

func NewEnumBuilder() *EnumBuilder { return &EnumBuilder{} }

func (b *EnumBuilder) Name(name string) *EnumBuilder { b.name = name; b.hasName = true; return b }

func (b *EnumBuilder) Value(name string, v int) *EnumBuilder {
	b.values = append(b.values, EnumValue{Name: name, Value: v})
	return b
}

func (b *EnumBuilder) Build() (*Type, error) {
	if !b.hasName {
		return nil, fmt.Errorf("enum builder: name not set")
	}
	return &Type{kind: KindEnum, name: b.name, values: b.values}, nil
}

// UnionBuilder builds a tagged-union Type.
type UnionBuilder struct {
	name    string
	hasName bool
	cases   []UnionCase
}

func NewUnionBuilder() *UnionBuilder { return &UnionBuilder{} }

func (b *UnionBuilder) Name(name string) *UnionBuilder { b.name = name; b.hasName = true; return b }

func (b *UnionBuilder) Case(name string, payload *Type) *UnionBuilder {
	b.cases = append(b.cases, UnionCase{Name: name, Payload: payload})
	return b
}

func (b *UnionBuilder) Build() (*Type, error) {
	if !b.hasName {
		return nil, fmt.Errorf("union builder: name not set")
	}
	return &Type{kind: KindTaggedUnion, name: b.name, cases: b.cases}, nil
}

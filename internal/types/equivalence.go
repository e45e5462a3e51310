package types

// Equivalent implements spec.md §4.3's types_are_equivalent: reflexive,
// `any` equivalent to everything on either side, different kinds never
// equivalent, and the per-kind rules below.
func Equivalent(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind == KindAny || b.kind == KindAny {
		return true
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindVoid:
		return true
	case KindPrimitive:
		return primitivesEquivalent(a.primitiveBase, b.primitiveBase)
	case KindArray:
		an, aok := a.ArraySize()
		bn, bok := b.ArraySize()
		if aok != bok {
			return false
		}
		if aok && an != bn {
			return false
		}
		return Equivalent(a.elem, b.elem)
	case KindStruct:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Name != b.fields[i].Name {
				return false
			}
			if !Equivalent(a.fields[i].Type, b.fields[i].Type) {
				return false
			}
		}
		return true
	case KindFunc:
		if len(a.args) != len(b.args) {
			return false
		}
		for i := range a.args {
			if !Equivalent(a.args[i].Type, b.args[i].Type) {
				return false
			}
		}
		if !Equivalent(a.ret, b.ret) {
			return false
		}
		if (a.variadic == nil) != (b.variadic == nil) {
			return false
		}
		if a.variadic != nil {
			return Equivalent(variadicElem(a.variadic), variadicElem(b.variadic))
		}
		return true
	case KindEnum:
		if a.name != b.name || len(a.values) != len(b.values) {
			return false
		}
		for i := range a.values {
			if a.values[i] != b.values[i] {
				return false
			}
		}
		return true
	case KindTaggedUnion:
		if a.name != b.name || len(a.cases) != len(b.cases) {
			return false
		}
		for i := range a.cases {
			if a.cases[i].Name != b.cases[i].Name {
				return false
			}
			if !Equivalent(a.cases[i].Payload, b.cases[i].Payload) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func variadicElem(v *Variadic) *Type {
	if v.Type == nil {
		return Any
	}
	return v.Type
}

func primitivesEquivalent(a, b PrimitiveBase) bool {
	if a == b {
		return true
	}
	if integerBases[a] && integerBases[b] {
		return true
	}
	if floatBases[a] && floatBases[b] {
		return true
	}
	return false
}

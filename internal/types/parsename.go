package types

import (
	"fmt"

	"github.com/efulang/efu/internal/lexer"
	"github.com/efulang/efu/internal/token"
)

var primitiveByName = map[string]PrimitiveBase{
	"si8": Si8, "ui8": Ui8, "si32": Si32, "ui32": Ui32,
	"sisz": Sisz, "uisz": Uisz, "ptr": Ptr,
	"flt32": Flt32, "flt64": Flt64,
	"string": StringBase, "bool": BoolBase, "null": NullBase,

	// Short written-source aliases (spec.md §4.5's rename-table
	// vocabulary, also used directly in written signatures like
	// `n: isz`): these resolve to the same canonical bases as their
	// long forms above. `i64`/`u64` have no dedicated 64-bit base in
	// this type system, so they alias the size-typed bases, the widest
	// native integers available.
	"i8": Si8, "u8": Ui8, "i32": Si32, "u32": Ui32,
	"isz": Sisz, "usz": Uisz,
	"i64": Sisz, "u64": Uisz,
}

// ParseTypeName parses a written type-name string like "Base", "Base[]",
// "Base[N]", "Base[][M]" into a Type, per spec.md §4.3: tokenize through
// the lexer, expect one identifier for the base, then zero or more
// `[ INT? ]` groups, each wrapping the running type into array(element,
// size?). The base resolves first to Void for "void", then against the
// builtin primitives, then against ctx's struct/func/enum/union table.
func ParseTypeName(name string, ctx *Context) (*Type, error) {
	lx := lexer.New(name, "")
	baseTok := lx.Next()
	if baseTok.Kind != token.Identifier {
		return nil, fmt.Errorf("malformed type name %q: expected an identifier", name)
	}

	var base *Type
	if baseTok.Text == "void" {
		base = Void
	} else if pb, ok := primitiveByName[baseTok.Text]; ok {
		base = NewPrimitive(pb)
	} else if t, ok := ctx.GetType(baseTok.Text); ok {
		base = t
	} else {
		return nil, fmt.Errorf("unknown type name %q", baseTok.Text)
	}

	result := base
	for {
		tok := lx.Peek()
		if !(tok.Kind == token.Symbol && tok.Text == "[") {
			break
		}
		lx.Next() // consume '['
		var size *int
		next := lx.Peek()
		if next.Kind == token.Integer {
			lx.Next()
			n := int(next.Int)
			size = &n
		}
		closeTok := lx.Next()
		if !(closeTok.Kind == token.Symbol && closeTok.Text == "]") {
			return nil, fmt.Errorf("malformed array bracket in type name %q", name)
		}
		result = NewArray(result, size)
	}

	if lx.Peek().Kind != token.EOF {
		return nil, fmt.Errorf("malformed type name %q: unexpected trailing text", name)
	}
	return result, nil
}

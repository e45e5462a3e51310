package golike

import (
	"strconv"

	"github.com/efulang/efu/internal/types"
)

// primitiveRename is spec.md §4.5's "Primitive renaming" table
// (`u8→uint8`, `i8→int8`, ...), keyed on the canonical resolved base
// spelling rather than the short written-source alias: `u8`/`i8` are
// written-source names for the bases `ui8`/`si8` (types.ParseTypeName
// resolves both spellings to the same base), so the table must key on
// `ui8`/`si8` to ever match what typeName() looks up. `i64`/`u64` have
// no dedicated 64-bit base in this type system; `sisz`/`uisz` (the
// size-typed bases, the widest native integers here) take their slot
// in the rename table instead of going unrenamed.
var primitiveRename = map[string]string{
	"ui8":  "uint8",
	"si8":  "int8",
	"ui32": "uint32",
	"si32": "int32",
	"uisz": "uint",
	"sisz": "int",

	// Short written-source aliases, for the fallback path that renames
	// directly off an unresolved FuncDeclArg's written text instead of
	// a resolved *types.Type.
	"u8": "uint8", "i8": "int8",
	"u32": "uint32", "i32": "int32",
	"usz": "uint", "isz": "int",
	"u64": "uint", "i64": "int",
}

func renamePrimitive(base string) string {
	if renamed, ok := primitiveRename[base]; ok {
		return renamed
	}
	return base
}

// typeName renders t the way the static backend writes it in a signature
// or declaration, applying the primitive-renaming table.
func typeName(t *types.Type) string {
	if t == nil {
		return ""
	}
	switch t.Kind() {
	case types.KindVoid:
		return ""
	case types.KindAny:
		return "any"
	case types.KindPrimitive:
		return renamePrimitive(string(t.PrimitiveBase()))
	case types.KindArray:
		elem := typeName(t.Elem())
		if n, ok := t.ArraySize(); ok {
			return elem + "[" + strconv.Itoa(n) + "]"
		}
		return elem + "[]"
	default:
		return t.Name()
	}
}

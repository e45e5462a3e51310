package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/efulang/efu/internal/types"
)

// TestEquivalenceReflexiveAndSymmetric covers spec.md §8's law 2: type
// equivalence is reflexive and symmetric.
func TestEquivalenceReflexiveAndSymmetric(t *testing.T) {
	cases := []*types.Type{
		types.NewPrimitive(types.Si32),
		types.NewPrimitive(types.StringBase),
		types.Any,
		types.Void,
		types.NewArray(types.NewPrimitive(types.Si8), nil),
	}
	for _, a := range cases {
		assert.True(t, types.Equivalent(a, a), "reflexive: %s", a)
	}

	si32 := types.NewPrimitive(types.Si32)
	ui8 := types.NewPrimitive(types.Ui8)
	assert.Equal(t, types.Equivalent(si32, ui8), types.Equivalent(ui8, si32))
}

// TestEquivalenceAnyMatchesAll covers the second half of law 2: `any` is
// equivalent to every type.
func TestEquivalenceAnyMatchesAll(t *testing.T) {
	others := []*types.Type{
		types.NewPrimitive(types.Si32),
		types.Void,
		types.NewArray(types.NewPrimitive(types.Flt64), nil),
	}
	for _, o := range others {
		assert.True(t, types.Equivalent(types.Any, o))
		assert.True(t, types.Equivalent(o, types.Any))
	}
}

// TestEquivalenceIntegerInterchangeability covers law 2's integer clause:
// any integer type is equivalent to any other integer type.
func TestEquivalenceIntegerInterchangeability(t *testing.T) {
	bases := []types.PrimitiveBase{types.Si8, types.Ui8, types.Si32, types.Ui32, types.Sisz, types.Uisz}
	for _, a := range bases {
		for _, b := range bases {
			assert.True(t, types.Equivalent(types.NewPrimitive(a), types.NewPrimitive(b)), "%s vs %s", a, b)
		}
	}
}

func TestEquivalenceFloatsDistinctFromIntegers(t *testing.T) {
	assert.False(t, types.Equivalent(types.NewPrimitive(types.Flt32), types.NewPrimitive(types.Si32)))
	assert.True(t, types.Equivalent(types.NewPrimitive(types.Flt32), types.NewPrimitive(types.Flt64)))
}

func TestEquivalenceArrays(t *testing.T) {
	elemA := types.NewPrimitive(types.Si32)
	elemB := types.NewPrimitive(types.Ui32)
	sized3 := types.NewArray(elemA, intp(3))
	sized3Other := types.NewArray(elemB, intp(3))
	sized5 := types.NewArray(elemA, intp(5))
	unsized := types.NewArray(elemA, nil)

	assert.True(t, types.Equivalent(sized3, sized3Other))
	assert.False(t, types.Equivalent(sized3, sized5))
	assert.False(t, types.Equivalent(sized3, unsized))
}

func TestEquivalenceStructs(t *testing.T) {
	a, err := types.NewStructBuilder().Name("Point").Field("x", types.NewPrimitive(types.Si32)).Field("y", types.NewPrimitive(types.Si32)).Build()
	assert.NoError(t, err)
	b, err := types.NewStructBuilder().Name("Point").Field("x", types.NewPrimitive(types.Ui32)).Field("y", types.NewPrimitive(types.Si32)).Build()
	assert.NoError(t, err)
	c, err := types.NewStructBuilder().Name("Point3").Field("x", types.NewPrimitive(types.Si32)).Field("y", types.NewPrimitive(types.Si32)).Field("z", types.NewPrimitive(types.Si32)).Build()
	assert.NoError(t, err)

	assert.True(t, types.Equivalent(a, b))
	assert.False(t, types.Equivalent(a, c))
}

func TestEquivalenceFuncsWithVariadic(t *testing.T) {
	f1, err := types.NewFuncBuilder().Name("printf").
		Arg("format", types.NewPrimitive(types.StringBase)).
		VariadicTail("args", nil).
		Returns(types.Void).Build()
	assert.NoError(t, err)
	f2, err := types.NewFuncBuilder().Name("printf").
		Arg("format", types.NewPrimitive(types.StringBase)).
		VariadicTail("rest", nil).
		Returns(types.Void).Build()
	assert.NoError(t, err)
	f3, err := types.NewFuncBuilder().Name("printf").
		Arg("format", types.NewPrimitive(types.StringBase)).
		Returns(types.Void).Build()
	assert.NoError(t, err)

	assert.True(t, types.Equivalent(f1, f2))
	assert.False(t, types.Equivalent(f1, f3))
}

func intp(n int) *int { return &n }

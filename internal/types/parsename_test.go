package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efulang/efu/internal/types"
)

func TestParseTypeNamePrimitive(t *testing.T) {
	ctx := types.NewGlobalContext()
	got, err := types.ParseTypeName("si32", ctx)
	require.NoError(t, err)
	assert.Equal(t, types.KindPrimitive, got.Kind())
	assert.Equal(t, types.Si32, got.PrimitiveBase())
}

func TestParseTypeNameUnsizedArray(t *testing.T) {
	ctx := types.NewGlobalContext()
	got, err := types.ParseTypeName("si32[]", ctx)
	require.NoError(t, err)
	assert.Equal(t, types.KindArray, got.Kind())
	_, sized := got.ArraySize()
	assert.False(t, sized)
}

func TestParseTypeNameSizedArray(t *testing.T) {
	ctx := types.NewGlobalContext()
	got, err := types.ParseTypeName("si8[4]", ctx)
	require.NoError(t, err)
	n, sized := got.ArraySize()
	assert.True(t, sized)
	assert.Equal(t, 4, n)
}

func TestParseTypeNameNestedArray(t *testing.T) {
	ctx := types.NewGlobalContext()
	got, err := types.ParseTypeName("si8[2][3]", ctx)
	require.NoError(t, err)
	assert.Equal(t, types.KindArray, got.Kind())
	outerN, ok := got.ArraySize()
	require.True(t, ok)
	assert.Equal(t, 3, outerN)
	assert.Equal(t, types.KindArray, got.Elem().Kind())
}

func TestParseTypeNameUserStruct(t *testing.T) {
	ctx := types.NewGlobalContext()
	st, err := types.NewStructBuilder().Name("Point").Field("x", types.NewPrimitive(types.Si32)).Build()
	require.NoError(t, err)
	ctx.AddType("Point", st)

	got, err := types.ParseTypeName("Point", ctx)
	require.NoError(t, err)
	assert.Equal(t, "Point", got.Name())
}

func TestParseTypeNameUnknownBase(t *testing.T) {
	ctx := types.NewGlobalContext()
	_, err := types.ParseTypeName("NotAType", ctx)
	assert.Error(t, err)
}

func TestParseTypeNameMalformedBracket(t *testing.T) {
	ctx := types.NewGlobalContext()
	_, err := types.ParseTypeName("si32[", ctx)
	assert.Error(t, err)
}

func TestParseTypeNameTrailingGarbage(t *testing.T) {
	ctx := types.NewGlobalContext()
	_, err := types.ParseTypeName("si32 extra", ctx)
	assert.Error(t, err)
}

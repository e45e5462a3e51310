package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/efulang/efu/internal/types"
)

func TestIsAnyInteger(t *testing.T) {
	assert.True(t, types.IsAnyInteger(types.NewPrimitive(types.Si8)))
	assert.True(t, types.IsAnyInteger(types.NewPrimitive(types.Uisz)))
	assert.False(t, types.IsAnyInteger(types.NewPrimitive(types.Flt32)))
	assert.False(t, types.IsAnyInteger(types.NewPrimitive(types.StringBase)))
}

func TestIsFloat(t *testing.T) {
	assert.True(t, types.IsFloat(types.NewPrimitive(types.Flt64)))
	assert.False(t, types.IsFloat(types.NewPrimitive(types.Si32)))
}

func TestIsNumber(t *testing.T) {
	assert.True(t, types.IsNumber(types.NewPrimitive(types.Si32)))
	assert.True(t, types.IsNumber(types.NewPrimitive(types.Flt64)))
	assert.False(t, types.IsNumber(types.NewPrimitive(types.BoolBase)))
	assert.False(t, types.IsNumber(types.Void))
}

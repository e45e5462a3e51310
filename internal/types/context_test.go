package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efulang/efu/internal/token"
	"github.com/efulang/efu/internal/types"
)

// TestNewGlobalContextSeedsExactlyThreeBuiltins covers spec.md §3's
// invariant: the global scope contains exactly printf, printnf, fmt.
func TestNewGlobalContextSeedsExactlyThreeBuiltins(t *testing.T) {
	ctx := types.NewGlobalContext()
	for _, name := range []string{"printf", "printnf", "fmt"} {
		vr, ok := ctx.GetVar(name)
		require.True(t, ok, "expected builtin %q", name)
		assert.Equal(t, types.KindFunc, vr.Type.Kind())
	}
	_, ok := ctx.GetVar("anything_else")
	assert.False(t, ok)
}

func TestChildContextSeesParentVars(t *testing.T) {
	parent := types.NewGlobalContext()
	child := types.NewChild(parent)
	_, ok := child.GetVar("printf")
	assert.True(t, ok)
}

func TestAddVarRedeclarationRules(t *testing.T) {
	ctx := types.NewChild(types.NewGlobalContext())
	pos1 := token.Position{File: "a.efu", Line: 1, Column: 1}
	pos2 := token.Position{File: "a.efu", Line: 2, Column: 1}

	require.NoError(t, ctx.AddVar("x", pos1, nil, types.NewPrimitive(types.Si32)))
	// identical position: idempotent no-op
	assert.NoError(t, ctx.AddVar("x", pos1, nil, types.NewPrimitive(types.Si32)))
	// different position: rejected
	assert.Error(t, ctx.AddVar("x", pos2, nil, types.NewPrimitive(types.Si32)))
}

func TestAddVarIsScopedToItsContext(t *testing.T) {
	parent := types.NewChild(types.NewGlobalContext())
	pos := token.Position{File: "a.efu", Line: 1, Column: 1}
	require.NoError(t, parent.AddVar("x", pos, nil, types.NewPrimitive(types.Si32)))

	child := types.NewChild(parent)
	_, ok := child.GetVar("x")
	assert.True(t, ok, "child should see parent's var")

	// adding in the child must not leak into the parent
	require.NoError(t, child.AddVar("y", pos, nil, types.NewPrimitive(types.Si32)))
	_, ok = parent.GetVar("y")
	assert.False(t, ok)
}

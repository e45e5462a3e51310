package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efulang/efu/internal/compiler"
	"github.com/efulang/efu/internal/config"
)

func TestResolveOutputPathDefaultsToInputBasenameWithTargetExtension(t *testing.T) {
	got := config.ResolveOutputPath("", "/tmp/program.efu", compiler.TargetGo)
	assert.Equal(t, "program.go", got)

	got = config.ResolveOutputPath("", "/tmp/program.efu", compiler.TargetJS)
	assert.Equal(t, "program.js", got)
}

func TestResolveOutputPathExplicitFile(t *testing.T) {
	got := config.ResolveOutputPath("out/custom.go", "/tmp/program.efu", compiler.TargetGo)
	assert.Equal(t, "out/custom.go", got)
}

func TestResolveOutputPathTrailingSlashIsADirectory(t *testing.T) {
	got := config.ResolveOutputPath("build/", "/tmp/program.efu", compiler.TargetJS)
	assert.Equal(t, "build/program.js", got)
}

func TestParseRuntimeFlag(t *testing.T) {
	rt, err := config.ParseRuntimeFlag("")
	require.NoError(t, err)
	assert.Equal(t, config.RuntimeNode, rt)

	rt, err = config.ParseRuntimeFlag("bun")
	require.NoError(t, err)
	assert.Equal(t, config.RuntimeBun, rt)

	rt, err = config.ParseRuntimeFlag("deno")
	require.NoError(t, err)
	assert.Equal(t, config.RuntimeDeno, rt)

	_, err = config.ParseRuntimeFlag("unknown-runtime")
	assert.Error(t, err)
}

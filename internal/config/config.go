// Package config holds the CLI's flag surface as a plain struct. EFU's
// command-line surface is explicitly out of core scope (spec.md §1); this
// package exists only to carry validated flag values from cmd/efuc into
// internal/compiler, so it stays a plain struct rather than reaching for
// a config-file library none of this spec's I/O calls for.
package config

import (
	"path/filepath"
	"strings"

	"github.com/efulang/efu/internal/compiler"
)

// Runtime selects which dynamic-target host `-run` would spawn under.
// Accepted and validated per spec.md §6, but never spawned: process
// spawning of downstream toolchains is explicitly out of core scope.
type Runtime int

const (
	RuntimeNode Runtime = iota
	RuntimeBun
	RuntimeDeno
)

func ParseRuntimeFlag(s string) (Runtime, error) {
	switch s {
	case "node", "":
		return RuntimeNode, nil
	case "bun":
		return RuntimeBun, nil
	case "deno":
		return RuntimeDeno, nil
	default:
		return RuntimeNode, errUnknownRuntime(s)
	}
}

func errUnknownRuntime(s string) error {
	return &unknownRuntimeError{s}
}

type unknownRuntimeError struct{ value string }

func (e *unknownRuntimeError) Error() string {
	return "unknown runtime \"" + e.value + "\": expected \"node\", \"bun\", or \"deno\""
}

// Flags carries the validated command-line surface for one invocation.
type Flags struct {
	InputFile string
	Target    compiler.Target
	OutPath   string
	Run       bool
	Runtime   Runtime
	DebugIR   bool
}

// ResolveOutputPath implements spec.md §6's `-out` rule: a path ending
// in a path separator is a directory, so the basename is derived from
// the input file with the target's extension appended; any other path
// is used verbatim.
func ResolveOutputPath(outFlag, inputFile string, target compiler.Target) string {
	if outFlag == "" {
		base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
		return base + target.Extension()
	}
	if strings.HasSuffix(outFlag, "/") {
		base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
		return filepath.Join(outFlag, base+target.Extension())
	}
	return outFlag
}

// Package compiler orchestrates the EFU pipeline: lex, parse, check,
// emit, in strict sequential order (spec.md §5 — no stage overlaps, no
// suspension points beyond reading the source and writing the target).
// Grounded on xsharp's main(), the only place in the teacher that
// sequences lex/parse/codegen together; split into its own package
// because cmd/efuc also routes -debug-ir and the out-of-scope -run flag.
package compiler

import (
	"fmt"
	"io"

	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/check"
	"github.com/efulang/efu/internal/codegen/golike"
	"github.com/efulang/efu/internal/codegen/jslike"
	"github.com/efulang/efu/internal/diag"
	"github.com/efulang/efu/internal/lexer"
	"github.com/efulang/efu/internal/parser"
	"github.com/sirupsen/logrus"
)

// Target selects a backend.
type Target int

const (
	TargetGo Target = iota
	TargetJS
)

// Extension returns the conventional output file extension for t.
func (t Target) Extension() string {
	switch t {
	case TargetJS:
		return ".js"
	default:
		return ".go"
	}
}

// Result is a completed compile: either the emitted target text or the
// failure diagnostics that stopped the run.
type Result struct {
	Output      string
	Diagnostics []diag.Diagnostic
	OK          bool
}

// Parse runs the lex+parse stages only, returning the top-level nodes
// and the diagnostics the parser accumulated. Used by `-debug-ir`, which
// skips checking and emission entirely (spec.md §6).
func Parse(src, file string, log *logrus.Entry) ([]ast.Node, *diag.Bag) {
	log = ensureLog(log)
	diags := diag.NewBag()

	log.WithField("file", file).Debug("compiler: lexing")
	lx := lexer.New(src, file)

	log.Debug("compiler: parsing")
	p := parser.New(lx, diags)
	nodes := p.Parse()

	return nodes, diags
}

// Run executes the full pipeline: lex, parse, check, then emit using
// target. It halts at the first stage that produces errors, per spec.md
// §4.4/§7's "first failed top-level declaration halts the run".
func Run(src, file string, target Target, log *logrus.Entry) Result {
	log = ensureLog(log)

	nodes, diags := Parse(src, file, log)
	if diags.HasErrors() {
		return Result{Diagnostics: diags.Diagnostics(), OK: false}
	}

	log.Debug("compiler: checking")
	_, ok := check.Check(nodes, diags)
	if !ok {
		return Result{Diagnostics: diags.Diagnostics(), OK: false}
	}

	log.WithField("target", target).Debug("compiler: emitting")
	var out string
	switch target {
	case TargetJS:
		out = jslike.Generate(nodes, log)
	default:
		out = golike.Generate(nodes, log)
	}

	return Result{Output: out, Diagnostics: diags.Diagnostics(), OK: true}
}

// WriteDiagnostics flushes r's diagnostics to w, colorized if w is a
// terminal (internal/diag.WriteTo).
func WriteDiagnostics(w io.Writer, r Result) {
	diag.WriteTo(w, r.Diagnostics)
}

func ensureLog(log *logrus.Entry) *logrus.Entry {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

// ParseTargetFlag maps the CLI's `-target`/`-t` value to a Target.
func ParseTargetFlag(s string) (Target, error) {
	switch s {
	case "go", "":
		return TargetGo, nil
	case "js":
		return TargetJS, nil
	default:
		return TargetGo, fmt.Errorf("unknown target %q: expected \"go\" or \"js\"", s)
	}
}

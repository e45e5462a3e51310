// Package golike implements EFU's static backend (spec.md §4.5): a
// C-family, Go-like target where every declared type is emitted
// explicitly, printf/printnf rewrite onto fmt, and control flow lowers
// straight across. Grounded on xsharp's CodeGenerator: a strings.Builder
// paired with an indent level, walked by one emit* method per node kind.
package golike

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/types"
	"github.com/sirupsen/logrus"
)

// Generator accumulates the emitted program text.
type Generator struct {
	out    strings.Builder
	indent int
	log    *logrus.Entry
}

// New constructs a Generator. log may be nil, in which case a disabled
// logger is used (stage tracing is diagnostic-only, never required for
// correct output).
func New(log *logrus.Entry) *Generator {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &Generator{log: log}
}

// Generate renders nodes (spec-ordered top-level declarations) as a
// complete static-target source file.
func Generate(nodes []ast.Node, log *logrus.Entry) string {
	g := New(log)
	return g.generate(nodes)
}

func (g *Generator) generate(nodes []ast.Node) string {
	g.log.Debug("golike: rewriting print calls")
	usesFmt := RewritePrintCalls(nodes)

	g.writeln("package main")
	g.writeln("")
	if usesFmt {
		g.writeln("import \"fmt\"")
		g.writeln("")
	}

	g.log.Debug("golike: emitting declarations")
	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.VarDecl:
			g.emitTopVarDecl(v)
			g.writeln("")
		case *ast.FuncDecl:
			g.emitFuncDecl(v)
			g.writeln("")
		}
	}
	return g.out.String()
}

func (g *Generator) writeln(s string) {
	if s != "" {
		g.out.WriteString(g.tabs())
		g.out.WriteString(s)
	}
	g.out.WriteByte('\n')
}

func (g *Generator) tabs() string { return strings.Repeat("\t", g.indent) }

func (g *Generator) resolvedType(n ast.Node) *types.Type {
	var raw interface{}
	switch v := n.(type) {
	case *ast.VarDecl:
		raw = v.ResolvedType
	case *ast.Ident:
		raw = v.ResolvedType
	case *ast.Literal:
		raw = v.ResolvedType
	case *ast.FuncDecl:
		raw = v.ResolvedType
	}
	t, _ := raw.(*types.Type)
	return t
}

// emitTopVarDecl emits `var NAME TYPE = INIT` (or without `= INIT` for a
// bare declaration); top-level bindings always carry an explicit type
// since Go has no top-level `:=`.
func (g *Generator) emitTopVarDecl(v *ast.VarDecl) {
	tn := typeName(g.resolvedType(v))
	if v.Init == nil {
		g.writeln(fmt.Sprintf("var %s %s", v.Name, tn))
		return
	}
	g.writeln(fmt.Sprintf("var %s %s = %s", v.Name, tn, g.emitExpr(v.Init)))
}

// emitLocalVarDecl emits a function-body `let`: a short declaration when
// the written type was omitted and inferred from Init, an explicit `var`
// form otherwise, per spec.md §4.5.
func (g *Generator) emitLocalVarDecl(v *ast.VarDecl) {
	if v.Type.InferredFromInit {
		g.writeln(fmt.Sprintf("%s := %s", v.Name, g.emitExpr(v.Init)))
		return
	}
	tn := typeName(g.resolvedType(v))
	if v.Init == nil {
		g.writeln(fmt.Sprintf("var %s %s", v.Name, tn))
		return
	}
	g.writeln(fmt.Sprintf("var %s %s = %s", v.Name, tn, g.emitExpr(v.Init)))
}

func (g *Generator) emitFuncDecl(fn *ast.FuncDecl) {
	ft := g.resolvedType(fn)
	args := make([]string, 0, len(fn.Args)+1)
	for i, a := range fn.Args {
		if ft != nil && i < len(ft.Args()) {
			args = append(args, fmt.Sprintf("%s %s", a.Name, typeName(ft.Args()[i].Type)))
		} else {
			args = append(args, fmt.Sprintf("%s %s", a.Name, renamePrimitive(stripVariadicDots(a.TypeName))))
		}
	}
	if ft != nil && ft.Variadic() != nil {
		vd := ft.Variadic()
		elemName := "any"
		if vd.Type != nil {
			elemName = typeName(vd.Type)
		}
		args = append(args, fmt.Sprintf("%s ...%s", vd.Name, elemName))
	}
	ret := ""
	if ft != nil {
		if r := typeName(ft.Return()); r != "" {
			ret = " " + r
		}
	}
	g.writeln(fmt.Sprintf("func %s(%s)%s {", fn.Name, strings.Join(args, ", "), ret))
	g.indent++
	for _, s := range fn.Body {
		g.emitStmt(s)
	}
	g.indent--
	g.writeln("}")
}

func stripVariadicDots(typeName string) string {
	return strings.TrimPrefix(typeName, "...")
}

func (g *Generator) emitStmt(n ast.Node) {
	switch v := n.(type) {
	case *ast.VarDecl:
		g.emitLocalVarDecl(v)
	case *ast.KeywordStmt:
		if v.Expr == nil {
			g.writeln("return")
		} else {
			g.writeln(fmt.Sprintf("return %s", g.emitExpr(v.Expr)))
		}
	case *ast.IfElse:
		g.emitIfElse(v)
	case *ast.FuncDecl:
		g.emitFuncDecl(v)
	case *ast.EOFNode:
		// nothing to emit
	default:
		g.writeln(g.emitExpr(n))
	}
}

func (g *Generator) emitIfElse(v *ast.IfElse) {
	g.writeln(fmt.Sprintf("if %s {", g.emitExpr(v.Cond)))
	g.indent++
	for _, s := range v.Body {
		g.emitStmt(s)
	}
	g.indent--
	if v.Else == nil {
		g.writeln("}")
		return
	}
	g.writeln("} else {")
	g.indent++
	for _, s := range v.Else {
		g.emitStmt(s)
	}
	g.indent--
	g.writeln("}")
}

// emitExpr renders n inline; binops never parenthesize their operands.
func (g *Generator) emitExpr(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Literal:
		return g.emitLiteral(v)
	case *ast.Ident:
		return v.Name
	case *ast.FuncCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = g.emitExpr(a)
		}
		return fmt.Sprintf("%s(%s)", v.Name, strings.Join(args, ", "))
	case *ast.Binop:
		return fmt.Sprintf("%s %s %s", g.emitExpr(v.Lhs), v.Op, g.emitExpr(v.Rhs))
	case *ast.Expr:
		if v.Item == nil {
			return "()"
		}
		return fmt.Sprintf("(%s)", g.emitExpr(v.Item))
	case *ast.PipeOp:
		desugared, err := ast.DesugarPipe(v)
		if err != nil {
			g.log.WithError(err).Panic("golike: invalid pipe chain reached codegen")
		}
		return g.emitExpr(desugared)
	default:
		g.log.Panicf("golike: cannot emit expression node %T", n)
		return ""
	}
}

func (g *Generator) emitLiteral(l *ast.Literal) string {
	if l.LitKind == ast.LitString {
		return strconv.Quote(l.Str)
	}
	return strconv.FormatInt(l.Int, 10)
}

// Package jslike implements EFU's dynamic backend (spec.md §4.6): every
// user function becomes a generator, every call is driven through
// `yield*`, and a self-tail-call in a function's last statement is
// rewritten into an iterative `while (true)` loop. Grounded on the same
// builder+indent emitter idiom as golike, diverging only in the
// per-node-kind emit methods and the attached runtime prelude.
package jslike

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/efulang/efu/internal/ast"
	"github.com/sirupsen/logrus"
)

const prelude = `const __efuBuffer = { text: "" };

function __efuFlush() {
  const idx = __efuBuffer.text.lastIndexOf("\n");
  if (idx === -1) {
    return;
  }
  process.stdout.write(__efuBuffer.text.slice(0, idx + 1));
  __efuBuffer.text = __efuBuffer.text.slice(idx + 1);
}

function __efuFormat(format, args) {
  let i = 0;
  return format.replace(/%v/g, () => String(args[i++]));
}

function* printf(format, ...args) {
  __efuBuffer.text += __efuFormat(format, args);
  __efuFlush();
}

function* printnf(format, ...args) {
  yield* printf(format + "\n", ...args);
}

function exec(fn) {
  const gen = fn();
  let sent;
  (function step() {
    const { value, done } = gen.next(sent);
    if (done) {
      return;
    }
    if (value && typeof value.then === "function") {
      value.then((resolved) => {
        sent = resolved;
        step();
      });
    } else {
      sent = value;
      step();
    }
  })();
}
`

// Generator accumulates the emitted program text.
type Generator struct {
	out       strings.Builder
	indent    int
	log       *logrus.Entry
	userFuncs map[string]bool
}

// New constructs a Generator. log may be nil, in which case a disabled
// logger is used.
func New(log *logrus.Entry) *Generator {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &Generator{log: log, userFuncs: map[string]bool{"printf": true, "printnf": true}}
}

// Generate renders nodes as a complete dynamic-target source file.
func Generate(nodes []ast.Node, log *logrus.Entry) string {
	g := New(log)
	return g.generate(nodes)
}

func (g *Generator) generate(nodes []ast.Node) string {
	g.collectFuncNames(nodes)

	g.out.WriteString(prelude)
	g.out.WriteByte('\n')

	g.log.Debug("jslike: emitting declarations")
	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.VarDecl:
			g.emitVarDecl(v)
			g.writeln("")
		case *ast.FuncDecl:
			g.emitFuncDecl(v)
			g.writeln("")
		}
	}
	g.writeln("exec(main);")
	return g.out.String()
}

func (g *Generator) collectFuncNames(nodes []ast.Node) {
	for _, n := range nodes {
		if fn, ok := n.(*ast.FuncDecl); ok {
			g.userFuncs[fn.Name] = true
			g.collectFuncNames(fn.Body)
		}
	}
}

func (g *Generator) writeln(s string) {
	if s != "" {
		g.out.WriteString(g.tabs())
		g.out.WriteString(s)
	}
	g.out.WriteByte('\n')
}

func (g *Generator) tabs() string { return strings.Repeat("  ", g.indent) }

func (g *Generator) emitVarDecl(v *ast.VarDecl) {
	if v.Init == nil {
		g.writeln(fmt.Sprintf("let %s;", v.Name))
		return
	}
	g.writeln(fmt.Sprintf("let %s = %s;", v.Name, g.emitExpr(v.Init)))
}

func (g *Generator) emitFuncDecl(fn *ast.FuncDecl) {
	argNames := make([]string, len(fn.Args))
	for i, a := range fn.Args {
		argNames[i] = a.Name
	}
	sig := fmt.Sprintf("function* %s(%s) {", fn.Name, strings.Join(argNames, ", "))

	if call := selfTailCall(fn); call != nil && len(call.Args) == len(fn.Args) {
		g.writeln(sig)
		g.indent++
		g.writeln("while (true) {")
		g.indent++
		for _, s := range fn.Body[:len(fn.Body)-1] {
			g.emitStmt(s)
		}
		for i, a := range fn.Args {
			g.writeln(fmt.Sprintf("%s = %s;", a.Name, g.emitExpr(call.Args[i])))
		}
		g.indent--
		g.writeln("}")
		g.indent--
		g.writeln("}")
		return
	}

	g.writeln(sig)
	g.indent++
	for _, s := range fn.Body {
		g.emitStmt(s)
	}
	g.indent--
	g.writeln("}")
}

func (g *Generator) emitStmt(n ast.Node) {
	switch v := n.(type) {
	case *ast.VarDecl:
		g.emitVarDecl(v)
	case *ast.KeywordStmt:
		if v.Expr == nil {
			g.writeln("return;")
		} else {
			g.writeln(fmt.Sprintf("return %s;", g.emitExpr(v.Expr)))
		}
	case *ast.IfElse:
		g.emitIfElse(v)
	case *ast.FuncDecl:
		g.emitFuncDecl(v)
	case *ast.EOFNode:
		// nothing to emit
	default:
		g.writeln(g.emitExpr(n) + ";")
	}
}

func (g *Generator) emitIfElse(v *ast.IfElse) {
	g.writeln(fmt.Sprintf("if (%s) {", g.emitExpr(v.Cond)))
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
		call := fmt.Sprintf("%s(%s)", v.Name, strings.Join(args, ", "))
		if g.userFuncs[v.Name] {
			return fmt.Sprintf("(yield* %s)", call)
		}
		return call
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
			g.log.WithError(err).Panic("jslike: invalid pipe chain reached codegen")
		}
		return g.emitExpr(desugared)
	default:
		g.log.Panicf("jslike: cannot emit expression node %T", n)
		return ""
	}
}

func (g *Generator) emitLiteral(l *ast.Literal) string {
	if l.LitKind == ast.LitString {
		return strconv.Quote(l.Str)
	}
	return strconv.FormatInt(l.Int, 10)
}

package types

import (
	"fmt"

	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/token"
)

// Var is one variable (or function, since functions are func-typed
// variables) bound in a Context.
type Var struct {
	Name     string
	DeclPos  token.Position
	DeclNode ast.Node // optional; nil for builtins
	Type     *Type
}

// Context is a scope: a types table, a vars table, and a non-owning
// pointer to its parent (spec.md §4.3/§9). Closing a scope simply drops
// the Context value; there is nothing to explicitly release.
type Context struct {
	parent *Context
	types  map[string]*Type
	vars   map[string]*Var
}

// NewGlobalContext returns a fresh root context seeded with exactly the
// builtins printf, printnf, fmt (spec.md §3's invariant). Per spec.md §9's
// Design Note, this is created once per compiler run and threaded
// explicitly through the pipeline rather than held in package-level
// mutable state, so parallel test invocations never share it.
//
// All three take a fully variadic `any` tail with no required leading
// positional argument: spec.md §4.5's print rewrite explicitly
// anticipates calling printf/printnf with a non-string first argument
// (the "otherwise wrap into fmt.Sprintf" case), so the first argument
// cannot be required to be a string.
func NewGlobalContext() *Context {
	g := &Context{types: map[string]*Type{}, vars: map[string]*Var{}}

	printfType, _ := NewFuncBuilder().
		Name("printf").
		VariadicTail("args", Any).
		Returns(Void).
		Build()
	printnfType, _ := NewFuncBuilder().
		Name("printnf").
		VariadicTail("args", Any).
		Returns(Void).
		Build()
	fmtType, _ := NewFuncBuilder().
		Name("fmt").
		VariadicTail("args", Any).
		Returns(NewPrimitive(StringBase)).
		Build()

	g.vars["printf"] = &Var{Name: "printf", Type: printfType}
	g.vars["printnf"] = &Var{Name: "printnf", Type: printnfType}
	g.vars["fmt"] = &Var{Name: "fmt", Type: fmtType}
	return g
}

// NewChild returns a new Context scoped beneath parent, for a function
// body or an if/else block (spec.md §4.4's "Context discipline").
func NewChild(parent *Context) *Context {
	return &Context{parent: parent, types: map[string]*Type{}, vars: map[string]*Var{}}
}

// GetType looks up name in this scope, then each ancestor.
func (c *Context) GetType(name string) (*Type, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if t, ok := ctx.types[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// HasType reports existence without returning the value.
func (c *Context) HasType(name string) bool {
	_, ok := c.GetType(name)
	return ok
}

// AddType registers name in this scope. Re-registering the identical
// name is allowed (last write wins) since type names aren't positioned
// the way vars are.
func (c *Context) AddType(name string, t *Type) {
	c.types[name] = t
}

// GetVar looks up name in this scope, then each ancestor (which
// eventually reaches the global scope's builtins).
func (c *Context) GetVar(name string) (*Var, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if v, ok := ctx.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// HasVar reports existence without returning the value.
func (c *Context) HasVar(name string) bool {
	_, ok := c.GetVar(name)
	return ok
}

// AddVar registers a variable in this scope only (not ancestors). Per
// spec.md §3's invariant, redeclaring the same name at the exact same
// source position is a no-op, not an error; redeclaring at a different
// position is rejected.
func (c *Context) AddVar(name string, pos token.Position, node ast.Node, t *Type) error {
	if existing, ok := c.vars[name]; ok {
		if existing.DeclPos == pos {
			return nil
		}
		return fmt.Errorf("%s: %q is already declared at %s", pos, name, existing.DeclPos)
	}
	c.vars[name] = &Var{Name: name, DeclPos: pos, DeclNode: node, Type: t}
	return nil
}

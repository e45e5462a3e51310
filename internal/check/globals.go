package check

import (
	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/diag"
	"github.com/efulang/efu/internal/types"
)

// registerGlobals is Pass 1 of spec.md §4.4: for each top-level node,
// register it in the global context, in source order.
func registerGlobals(ctx *types.Context, nodes []ast.Node, diags *diag.Bag) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.FuncDecl:
			ft, ok := buildFuncType(ctx, v, diags)
			if !ok {
				continue
			}
			v.ResolvedType = ft
			if err := ctx.AddVar(v.Name, v.Pos(), v, ft); err != nil {
				diags.Errorf(v.Pos(), "%s", err)
			}
		case *ast.VarDecl:
			registerGlobalVar(ctx, v, diags)
		}
	}
}

func registerGlobalVar(ctx *types.Context, v *ast.VarDecl, diags *diag.Bag) {
	if v.Type.Name == ast.UnresolvedType && v.Init == nil {
		diags.Errorf(v.Pos(), "variable %q has no declared type and no initializer", v.Name)
		return
	}

	var resolved *types.Type
	switch {
	case v.Type.Name == ast.UnresolvedType:
		t, err := inferExprType(ctx, v.Init)
		if err != nil {
			diags.Errorf(v.Pos(), "%s", err)
			return
		}
		resolved = t
	case v.Type.Name == ast.NumberSentinel:
		t, err := inferExprType(ctx, v.Init)
		if err != nil {
			diags.Errorf(v.Pos(), "%s", err)
			return
		}
		if !types.IsNumber(t) {
			diags.Errorf(v.Pos(), "variable %q: expected a number, received %s", v.Name, t)
			return
		}
		resolved = t
	default:
		t, err := types.ParseTypeName(v.Type.Name, ctx)
		if err != nil {
			diags.Errorf(v.Pos(), "%s", err)
			return
		}
		resolved = t
	}

	v.ResolvedType = resolved
	if err := ctx.AddVar(v.Name, v.Pos(), v, resolved); err != nil {
		diags.Errorf(v.Pos(), "%s", err)
	}
}

// buildFuncType constructs a FuncDecl's func type, inferring its return
// type from the body's return expressions when none was written, per
// spec.md §4.4. Used both by Pass 1 (top-level functions) and by Pass 2
// when it encounters a nested function declaration for the first time.
func buildFuncType(ctx *types.Context, fn *ast.FuncDecl, diags *diag.Bag) (*types.Type, bool) {
	fb := types.NewFuncBuilder().Name(fn.Name)
	ok := true
	for _, a := range fn.Args {
		if a.TypeName == ast.UnresolvedType {
			diags.Errorf(a.Pos(), "argument %q of %q has no type and cannot be inferred", a.Name, fn.Name)
			ok = false
			continue
		}
		t, err := types.ParseTypeName(a.TypeName, ctx)
		if err != nil {
			diags.Errorf(a.Pos(), "%s", err)
			ok = false
			continue
		}
		fb.Arg(a.Name, t)
	}
	if !ok {
		return nil, false
	}

	var ret *types.Type
	if fn.Returns == ast.UnresolvedType {
		inferred, inferOK := inferReturnType(ctx, fn, diags)
		if !inferOK {
			return nil, false
		}
		ret = inferred
	} else {
		t, err := types.ParseTypeName(fn.Returns, ctx)
		if err != nil {
			diags.Errorf(fn.Pos(), "%s", err)
			return nil, false
		}
		ret = t
	}
	fb.Returns(ret)

	ft, err := fb.Build()
	if err != nil {
		diags.Errorf(fn.Pos(), "%s", err)
		return nil, false
	}
	return ft, true
}

func inferReturnType(ctx *types.Context, fn *ast.FuncDecl, diags *diag.Bag) (*types.Type, bool) {
	returns := collectReturns(fn.Body)
	if len(returns) == 0 {
		return types.Void, true
	}
	for _, r := range returns {
		if r.Expr == nil {
			return types.Void, true
		}
		if isSelfRecursiveReturn(r.Expr, fn.Name) {
			continue
		}
		t, err := inferExprType(ctx, r.Expr)
		if err != nil {
			diags.Errorf(r.Pos(), "%s", err)
			return nil, false
		}
		return t, true
	}
	diags.Errorf(fn.Pos(), "cannot infer infinitely recursive return for %q", fn.Name)
	return nil, false
}

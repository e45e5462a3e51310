// Package check implements EFU's two-pass type checker (spec.md §4.4):
// Pass 1 registers every top-level declaration in the global context;
// Pass 2 walks each declaration, resolving identifiers, inferring and
// coercing types, and rejecting mismatches. It is the single source of
// semantic truth the two backends rely on.
package check

import (
	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/diag"
	"github.com/efulang/efu/internal/types"
)

// Check runs both passes over nodes, recording diagnostics into diags. It
// returns the global Context (so a backend can re-resolve type names) and
// whether the program type-checks. Per spec.md §4.4/§7, the first failed
// top-level declaration halts the run.
func Check(nodes []ast.Node, diags *diag.Bag) (*types.Context, bool) {
	ctx := types.NewGlobalContext()
	registerGlobals(ctx, nodes, diags)
	if diags.HasErrors() {
		return ctx, false
	}

	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.FuncDecl:
			if !checkFuncDecl(ctx, v, diags) {
				return ctx, false
			}
		case *ast.VarDecl:
			if !checkVarDecl(ctx, v, diags) {
				return ctx, false
			}
		}
	}
	return ctx, !diags.HasErrors()
}

// checkFuncDecl registers fn in ctx (idempotent if Pass 1 already did, per
// the identical-position redeclaration rule) and checks its body in a
// fresh child scope with each argument bound, per spec.md §4.4's
// "Context discipline".
func checkFuncDecl(ctx *types.Context, fn *ast.FuncDecl, diags *diag.Bag) bool {
	ft, already := fn.ResolvedType.(*types.Type)
	if !already || ft == nil {
		built, ok := buildFuncType(ctx, fn, diags)
		if !ok {
			return false
		}
		ft = built
		fn.ResolvedType = ft
	}
	if err := ctx.AddVar(fn.Name, fn.Pos(), fn, ft); err != nil {
		diags.Errorf(fn.Pos(), "%s", err)
		return false
	}

	child := types.NewChild(ctx)
	declArgs := ft.Args()
	for i, a := range fn.Args {
		if i >= len(declArgs) {
			break
		}
		if err := child.AddVar(a.Name, a.Pos(), a, declArgs[i].Type); err != nil {
			diags.Errorf(a.Pos(), "%s", err)
		}
	}

	ok := true
	for _, stmt := range fn.Body {
		if !checkStmt(child, stmt, ft, diags) {
			ok = false
		}
	}
	return ok
}

// checkVarDecl validates and annotates a `let` binding and registers it in
// ctx, per spec.md §4.4's VarDecl rules. Used for both top-level and
// function-body bindings; AddVar's identical-position idempotency means
// calling this again for a node Pass 1 already registered is a no-op.
func checkVarDecl(ctx *types.Context, v *ast.VarDecl, diags *diag.Bag) bool {
	if v.Type.Name == ast.UnresolvedType && v.Init == nil {
		diags.Errorf(v.Pos(), "variable %q must have a declared type or an initializer", v.Name)
		return false
	}

	var initType *types.Type
	if v.Init != nil {
		t, ok := checkExpr(ctx, v.Init, diags)
		if !ok {
			return false
		}
		initType = t
	}

	var resolved *types.Type
	switch {
	case v.Type.Name == ast.UnresolvedType:
		resolved = initType
	case v.Type.Name == ast.NumberSentinel:
		if !types.IsNumber(initType) {
			diags.Errorf(v.Pos(), "variable %q: expected a number, received %s", v.Name, initType)
			return false
		}
		resolved = initType
	default:
		declared, err := types.ParseTypeName(v.Type.Name, ctx)
		if err != nil {
			diags.Errorf(v.Pos(), "%s", err)
			return false
		}
		if v.Init != nil && !types.Equivalent(declared, initType) {
			diags.Errorf(v.Pos(), "variable %q: expected %s, received %s", v.Name, declared, initType)
			return false
		}
		resolved = declared
	}

	v.ResolvedType = resolved
	if err := ctx.AddVar(v.Name, v.Pos(), v, resolved); err != nil {
		diags.Errorf(v.Pos(), "%s", err)
		return false
	}
	return true
}

// checkStmt validates one body statement in scope ctx, with enclosingFn
// the func type `return` statements must match against.
func checkStmt(ctx *types.Context, n ast.Node, enclosingFn *types.Type, diags *diag.Bag) bool {
	switch v := n.(type) {
	case *ast.VarDecl:
		return checkVarDecl(ctx, v, diags)
	case *ast.KeywordStmt:
		return checkReturn(ctx, v, enclosingFn, diags)
	case *ast.IfElse:
		return checkIfElse(ctx, v, enclosingFn, diags)
	case *ast.FuncDecl:
		return checkFuncDecl(ctx, v, diags)
	case *ast.EOFNode:
		return true
	default:
		_, ok := checkExpr(ctx, n, diags)
		return ok
	}
}

func checkReturn(ctx *types.Context, v *ast.KeywordStmt, enclosingFn *types.Type, diags *diag.Bag) bool {
	if enclosingFn == nil {
		diags.Errorf(v.Pos(), "return statement outside of a function")
		return false
	}
	var actual *types.Type
	if v.Expr != nil {
		t, ok := checkExpr(ctx, v.Expr, diags)
		if !ok {
			return false
		}
		actual = t
	} else {
		actual = types.Void
	}
	if !types.Equivalent(enclosingFn.Return(), actual) {
		diags.Errorf(v.Pos(), "return type mismatch: expected %s, received %s", enclosingFn.Return(), actual)
		return false
	}
	return true
}

func checkIfElse(ctx *types.Context, v *ast.IfElse, enclosingFn *types.Type, diags *diag.Bag) bool {
	condType, ok := checkExpr(ctx, v.Cond, diags)
	if !ok {
		return false
	}
	boolT := types.NewPrimitive(types.BoolBase)
	if !types.Equivalent(condType, boolT) {
		diags.Errorf(v.Cond.Pos(), "if condition must be bool, received %s", condType)
		return false
	}

	result := true
	bodyCtx := types.NewChild(ctx)
	for _, s := range v.Body {
		if !checkStmt(bodyCtx, s, enclosingFn, diags) {
			result = false
		}
	}
	if v.Else != nil {
		elseCtx := types.NewChild(ctx)
		for _, s := range v.Else {
			if !checkStmt(elseCtx, s, enclosingFn, diags) {
				result = false
			}
		}
	}
	return result
}

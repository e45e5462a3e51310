package check

import (
	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/diag"
	"github.com/efulang/efu/internal/types"
)

// checkExpr validates n, annotates its ResolvedType where the AST node
// carries one, and returns its type.
func checkExpr(ctx *types.Context, n ast.Node, diags *diag.Bag) (*types.Type, bool) {
	switch v := n.(type) {
	case *ast.Literal:
		return checkLiteral(v), true
	case *ast.Ident:
		return checkIdent(ctx, v, diags)
	case *ast.FuncCall:
		return checkFuncCall(ctx, v, diags)
	case *ast.Binop:
		return checkBinop(ctx, v, diags)
	case *ast.PipeOp:
		return checkPipe(ctx, v, diags)
	case *ast.Expr:
		if v.Item == nil {
			return types.Void, true
		}
		return checkExpr(ctx, v.Item, diags)
	case *ast.FuncDecl:
		if !checkFuncDecl(ctx, v, diags) {
			return nil, false
		}
		return v.ResolvedType.(*types.Type), true
	default:
		diags.Errorf(n.Pos(), "unsupported expression node")
		return nil, false
	}
}

func checkLiteral(v *ast.Literal) *types.Type {
	var t *types.Type
	if v.LitKind == ast.LitString {
		t = types.NewPrimitive(types.StringBase)
	} else {
		t = types.NewPrimitive(types.PrimitiveBase(v.IntBase))
	}
	v.ResolvedType = t
	return t
}

func checkIdent(ctx *types.Context, v *ast.Ident, diags *diag.Bag) (*types.Type, bool) {
	vr, ok := ctx.GetVar(v.Name)
	if !ok {
		diags.Errorf(v.Pos(), "undeclared identifier %q", v.Name)
		return nil, false
	}
	v.ResolvedType = vr.Type
	return vr.Type, true
}

// checkFuncCall implements spec.md §4.4's FuncCall rule: resolve the
// callee, check arity (exact, or >= arity-1 with a variadic tail),
// pairwise-check argument types, and monomorphise literal-origin integer
// arguments toward the parameter's base (spec.md §9's Open Question:
// restricted to literal-origin arguments only).
func checkFuncCall(ctx *types.Context, v *ast.FuncCall, diags *diag.Bag) (*types.Type, bool) {
	vr, ok := ctx.GetVar(v.Name)
	if !ok {
		diags.Errorf(v.Pos(), "call to undeclared function %q", v.Name)
		return nil, false
	}
	ft := vr.Type
	if ft.Kind() != types.KindFunc {
		diags.Errorf(v.Pos(), "%q is not callable", v.Name)
		return nil, false
	}

	declArgs := ft.Args()
	variadic := ft.Variadic()
	if variadic != nil {
		if len(v.Args) < len(declArgs) {
			diags.Errorf(v.Pos(), "call to %q: expected at least %d arguments, received %d", v.Name, len(declArgs), len(v.Args))
			return nil, false
		}
	} else if len(v.Args) != len(declArgs) {
		diags.Errorf(v.Pos(), "call to %q: expected %d arguments, received %d", v.Name, len(declArgs), len(v.Args))
		return nil, false
	}

	ok = true
	for i, argNode := range v.Args {
		argType, good := checkExpr(ctx, argNode, diags)
		if !good {
			ok = false
			continue
		}
		var paramType *types.Type
		if i < len(declArgs) {
			paramType = declArgs[i].Type
		} else {
			paramType = variadicElemType(variadic)
		}
		if !types.Equivalent(paramType, argType) {
			diags.Errorf(argNode.Pos(), "call to %q: argument %d: expected %s, received %s", v.Name, i+1, paramType, argType)
			ok = false
			continue
		}
		monomorphiseLiteral(argNode, paramType)
	}
	if !ok {
		return nil, false
	}

	if ret := ft.Return(); ret != nil {
		return ret, true
	}
	return types.Void, true
}

func variadicElemType(v *types.Variadic) *types.Type {
	if v == nil {
		return nil
	}
	if v.Type == nil {
		return types.Any
	}
	return v.Type
}

// monomorphiseLiteral rewrites an integer literal's carried base toward
// paramType when argNode is literal-origin (possibly through parens) and
// paramType is a concrete integer primitive. Non-literal arguments (an
// identifier, a computed expression) are never rewritten: the spec's
// Open Question explicitly restricts this to literals.
func monomorphiseLiteral(argNode ast.Node, paramType *types.Type) {
	lit := ast.AsLiteral(argNode)
	if lit == nil || lit.LitKind != ast.LitInt {
		return
	}
	if paramType == nil || paramType.Kind() != types.KindPrimitive {
		return
	}
	if !types.IsAnyInteger(paramType) {
		return
	}
	lit.IntBase = string(paramType.PrimitiveBase())
	lit.ResolvedType = paramType
}

func checkBinop(ctx *types.Context, v *ast.Binop, diags *diag.Bag) (*types.Type, bool) {
	lhsType, lok := checkExpr(ctx, v.Lhs, diags)
	rhsType, rok := checkExpr(ctx, v.Rhs, diags)
	if !lok || !rok {
		return nil, false
	}

	switch v.Op {
	case ast.OpAnd, ast.OpOr:
		boolT := types.NewPrimitive(types.BoolBase)
		if !types.Equivalent(lhsType, boolT) || !types.Equivalent(rhsType, boolT) {
			diags.Errorf(v.Pos(), "operator %s requires bool operands, received %s and %s", v.Op, lhsType, rhsType)
			return nil, false
		}
		return boolT, true
	case ast.OpGt, ast.OpLt, ast.OpEq, ast.OpLe, ast.OpGe, ast.OpNe:
		if !types.Equivalent(lhsType, rhsType) {
			diags.Errorf(v.Pos(), "operator %s: incompatible operand types %s and %s", v.Op, lhsType, rhsType)
			return nil, false
		}
		return types.NewPrimitive(types.BoolBase), true
	default: // + - * / %
		if !types.IsNumber(lhsType) || !types.IsNumber(rhsType) {
			diags.Errorf(v.Pos(), "operator %s requires numeric operands, received %s and %s", v.Op, lhsType, rhsType)
			return nil, false
		}
		if !types.Equivalent(lhsType, rhsType) {
			diags.Errorf(v.Pos(), "operator %s: incompatible operand types %s and %s", v.Op, lhsType, rhsType)
			return nil, false
		}
		return lhsType, true
	}
}

// checkPipe validates a pipe chain by desugaring it into the nested
// FuncCall it denotes (the same shared utility the backends use) and
// checking that call normally: pipe arity/type rules are exactly call
// arity/type rules once desugared, so there is no separate code path to
// keep in sync (spec.md §4.2/§4.4).
func checkPipe(ctx *types.Context, v *ast.PipeOp, diags *diag.Bag) (*types.Type, bool) {
	desugared, err := ast.DesugarPipe(v)
	if err != nil {
		diags.Errorf(v.Pos(), "%s", err)
		return nil, false
	}
	return checkExpr(ctx, desugared, diags)
}

package check

import (
	"fmt"

	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/types"
)

// inferExprType computes an expression's type without recording
// diagnostics or mutating the AST. It backs Pass 1's global/return-type
// inference (spec.md §4.4), which runs before the full validating walk of
// Pass 2 and must not annotate nodes twice.
func inferExprType(ctx *types.Context, n ast.Node) (*types.Type, error) {
	switch v := n.(type) {
	case *ast.Literal:
		if v.LitKind == ast.LitString {
			return types.NewPrimitive(types.StringBase), nil
		}
		return types.NewPrimitive(types.PrimitiveBase(v.IntBase)), nil
	case *ast.Ident:
		vr, ok := ctx.GetVar(v.Name)
		if !ok {
			return nil, fmt.Errorf("%s: undeclared identifier %q", v.Pos(), v.Name)
		}
		return vr.Type, nil
	case *ast.FuncCall:
		vr, ok := ctx.GetVar(v.Name)
		if !ok {
			return nil, fmt.Errorf("%s: call to undeclared function %q", v.Pos(), v.Name)
		}
		if vr.Type.Kind() != types.KindFunc {
			return nil, fmt.Errorf("%s: %q is not callable", v.Pos(), v.Name)
		}
		if ret := vr.Type.Return(); ret != nil {
			return ret, nil
		}
		return types.Void, nil
	case *ast.Binop:
		switch v.Op {
		case ast.OpAnd, ast.OpOr, ast.OpGt, ast.OpLt, ast.OpEq, ast.OpLe, ast.OpGe, ast.OpNe:
			return types.NewPrimitive(types.BoolBase), nil
		default:
			return inferExprType(ctx, v.Lhs)
		}
	case *ast.PipeOp:
		call, err := ast.DesugarPipe(v)
		if err != nil {
			return nil, err
		}
		return inferExprType(ctx, call)
	case *ast.Expr:
		if v.Item == nil {
			return types.Void, nil
		}
		return inferExprType(ctx, v.Item)
	default:
		return nil, fmt.Errorf("%s: expression has no inferable type", n.Pos())
	}
}

// isSelfRecursiveReturn reports whether n is (optionally parenthesized) a
// call to fnName — used to exclude self-recursive returns from return-type
// inference per spec.md §4.4 ("cannot infer infinitely recursive return").
func isSelfRecursiveReturn(n ast.Node, fnName string) bool {
	for {
		switch v := n.(type) {
		case *ast.FuncCall:
			return v.Name == fnName
		case *ast.Expr:
			if v.Item == nil {
				return false
			}
			n = v.Item
		default:
			return false
		}
	}
}

// collectReturns gathers every `return` statement reachable from body
// without crossing into a nested function declaration's own body,
// recursing into if/else branches per spec.md §4.4.
func collectReturns(body []ast.Node) []*ast.KeywordStmt {
	var out []*ast.KeywordStmt
	for _, n := range body {
		switch v := n.(type) {
		case *ast.KeywordStmt:
			out = append(out, v)
		case *ast.IfElse:
			out = append(out, collectReturns(v.Body)...)
			if v.Else != nil {
				out = append(out, collectReturns(v.Else)...)
			}
		}
	}
	return out
}

package jslike

import "github.com/efulang/efu/internal/ast"

// selfTailCall reports whether the last statement of fn's body is a
// `return <self-call>` or a bare self-call in tail position, and returns
// that call. Per spec.md §4.6, the dynamic backend rewrites a detected
// self-tail-call into a `while (true) { ...; arg = next; }` loop instead
// of recursing, and never emits the self-call itself.
func selfTailCall(fn *ast.FuncDecl) *ast.FuncCall {
	if len(fn.Body) == 0 {
		return nil
	}
	last := fn.Body[len(fn.Body)-1]
	var candidate ast.Node
	switch v := last.(type) {
	case *ast.KeywordStmt:
		candidate = v.Expr
	default:
		candidate = last
	}
	call := asCall(candidate)
	if call == nil || call.Name != fn.Name {
		return nil
	}
	return call
}

func asCall(n ast.Node) *ast.FuncCall {
	for {
		switch v := n.(type) {
		case *ast.FuncCall:
			return v
		case *ast.Expr:
			if v.Item == nil {
				return nil
			}
			n = v.Item
		default:
			return nil
		}
	}
}

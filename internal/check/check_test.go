package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/check"
	"github.com/efulang/efu/internal/diag"
	"github.com/efulang/efu/internal/lexer"
	"github.com/efulang/efu/internal/parser"
	"github.com/efulang/efu/internal/types"
)

func checkSource(t *testing.T, src string) ([]ast.Node, *types.Context, *diag.Bag, bool) {
	t.Helper()
	diags := diag.NewBag()
	lx := lexer.New(src, "t.efu")
	p := parser.New(lx, diags)
	nodes := p.Parse()
	require.False(t, diags.HasErrors(), "parse errors: %v", diags.Diagnostics())
	ctx, ok := check.Check(nodes, diags)
	return nodes, ctx, diags, ok
}

func TestCheckSimpleFunctionOK(t *testing.T) {
	_, _, diags, ok := checkSource(t, "fn add(a: si32, b: si32) -> si32 { return a + b; }")
	assert.True(t, ok, "diagnostics: %v", diags.Diagnostics())
}

func TestCheckUndeclaredIdentifier(t *testing.T) {
	_, _, diags, ok := checkSource(t, "fn f() -> si32 { return x; }")
	assert.False(t, ok)
	assert.True(t, diags.HasErrors())
}

func TestCheckArityMismatch(t *testing.T) {
	_, _, _, ok := checkSource(t, "fn add(a: si32, b: si32) -> si32 { return a + b; } fn g() -> si32 { return add(1); }")
	assert.False(t, ok)
}

func TestCheckArgumentTypeMismatch(t *testing.T) {
	_, _, _, ok := checkSource(t, `fn f(a: string) -> void { let x: = a; } fn g() -> void { f(1); }`)
	assert.False(t, ok)
}

func TestCheckReturnTypeMismatch(t *testing.T) {
	_, _, _, ok := checkSource(t, "fn f() -> si32 { return `oops'; }")
	assert.False(t, ok)
}

func TestCheckConditionMustBeBool(t *testing.T) {
	_, _, _, ok := checkSource(t, "fn f() -> void { if 1 { return; } }")
	assert.False(t, ok)
}

func TestCheckRedeclarationAtSamePosIsNoop(t *testing.T) {
	// Pass 1 registers top-level `add`; Pass 2's checkFuncDecl must not
	// reject re-registering the identical node.
	_, ctx, diags, ok := checkSource(t, "fn add(a: si32) -> si32 { return a; }")
	require.True(t, ok, "diagnostics: %v", diags.Diagnostics())
	vr, found := ctx.GetVar("add")
	require.True(t, found)
	assert.Equal(t, types.KindFunc, vr.Type.Kind())
}

func TestCheckInferredReturnType(t *testing.T) {
	nodes, _, diags, ok := checkSource(t, "fn makeTrue() { return 1 > 0; }")
	require.True(t, ok, "diagnostics: %v", diags.Diagnostics())
	fn := nodes[0].(*ast.FuncDecl)
	ft := fn.ResolvedType.(*types.Type)
	assert.True(t, types.Equivalent(ft.Return(), types.NewPrimitive(types.BoolBase)))
}

func TestCheckVariadicCallAcceptsAnyArgsIncludingNoneOrNonString(t *testing.T) {
	// printf/printnf take a fully variadic `any` tail with no required
	// leading positional argument (see internal/types.NewGlobalContext):
	// the print rewrite's "otherwise wrap into fmt.Sprintf" case requires
	// a non-string first argument to type-check too.
	_, _, diags, ok := checkSource(t, "fn f() -> void { printf(`n=%v', 7); }")
	assert.True(t, ok, "diagnostics: %v", diags.Diagnostics())

	_, _, diags2, ok2 := checkSource(t, "fn g() -> void { printf(7); }")
	assert.True(t, ok2, "diagnostics: %v", diags2.Diagnostics())

	_, _, diags3, ok3 := checkSource(t, "fn h() -> void { printnf(); }")
	assert.True(t, ok3, "diagnostics: %v", diags3.Diagnostics())
}

func TestCheckArityMismatchAgainstFixedArityFunction(t *testing.T) {
	_, _, _, ok := checkSource(t, "fn add(a: si32, b: si32) -> si32 { return a + b; } fn g() -> si32 { return add(1, 2, 3); }")
	assert.False(t, ok)
}

func TestCheckLiteralMonomorphisation(t *testing.T) {
	nodes, _, diags, ok := checkSource(t, "fn f(a: ui8) -> void { } fn g() -> void { f(7); }")
	require.True(t, ok, "diagnostics: %v", diags.Diagnostics())
	gFn := nodes[1].(*ast.FuncDecl)
	call := gFn.Body[0].(*ast.FuncCall)
	lit := call.Args[0].(*ast.Literal)
	assert.Equal(t, string(types.Ui8), lit.IntBase)
}

func TestCheckPipeTypeChecksLikeNestedCall(t *testing.T) {
	_, _, diags, ok := checkSource(t, "fn inc(a: si32) -> si32 { return a + 1; } fn g() -> si32 { return 1 |> inc; }")
	assert.True(t, ok, "diagnostics: %v", diags.Diagnostics())
}

// Package ast defines the EFU abstract syntax tree: a tagged union of node
// kinds, all carrying a source Position, created by the parser and mutated
// in place by later passes (the checker annotates inferred types, the
// static backend renames printf/printnf and primitive type names).
package ast

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/efulang/efu/internal/token"
)

// Kind discriminates the Node variants of spec.md §3. Kind exactly
// determines a node's payload shape, per the spec's invariants.
type Kind int

const (
	KindEOF Kind = iota
	KindFuncDecl
	KindFuncDeclArg
	KindFuncCall
	KindVarDecl
	KindBinop
	KindPipeOp
	KindExpr
	KindKeyword
	KindIfElse
	KindIdent
	KindLiteral
)

// Node is the tagged-union interface every AST node implements.
type Node interface {
	Kind() Kind
	Pos() token.Position
}

// UnresolvedType is the sentinel written type-name meaning "not written;
// to be inferred" (spec.md §3).
const UnresolvedType = "()"

// NumberSentinel is the declared-type sentinel used when a VarDecl init
// must merely be numeric (spec.md §4.4).
const NumberSentinel = "number"

// base embeds the common Position every node carries.
type base struct {
	position token.Position
}

func (b base) Pos() token.Position { return b.position }

// EOFNode is the sentinel end-of-top-level node.
type EOFNode struct{ base }

func (*EOFNode) Kind() Kind { return KindEOF }

func NewEOF(pos token.Position) *EOFNode { return &EOFNode{base{pos}} }

// FuncDeclArg is one parameter of a FuncDecl.
type FuncDeclArg struct {
	base
	Name     string
	TypeName string // written type name, possibly UnresolvedType
}

func (*FuncDeclArg) Kind() Kind { return KindFuncDeclArg }

func NewFuncDeclArg(pos token.Position, name, typeName string) *FuncDeclArg {
	return &FuncDeclArg{base{pos}, name, typeName}
}

// FuncDecl is a function declaration (top-level or nested as a primary
// expression, per the grammar's fn-decl alternative in `primary`).
type FuncDecl struct {
	base
	Name    string
	Args    []*FuncDeclArg
	Returns string // written return type name, possibly UnresolvedType
	Body    []Node

	// ResolvedType is set by the checker to a *types.Type once the
	// function's signature has been resolved or inferred. Left as `any`
	// so ast never needs to import types (which itself needs to refer
	// back to declaring ast.Node values).
	ResolvedType interface{}
}

func (*FuncDecl) Kind() Kind { return KindFuncDecl }

func NewFuncDecl(pos token.Position, name string, args []*FuncDeclArg, returns string, body []Node) *FuncDecl {
	return &FuncDecl{base: base{pos}, Name: name, Args: args, Returns: returns, Body: body}
}

// FuncCall is a call expression, or (after pipe desugaring) the
// materialized result of a pipe chain.
type FuncCall struct {
	base
	Name string
	Args []Node // Expr nodes
}

func (*FuncCall) Kind() Kind { return KindFuncCall }

func NewFuncCall(pos token.Position, name string, args []Node) *FuncCall {
	return &FuncCall{base{pos}, name, args}
}

// DeclaredType is a VarDecl's written type annotation: either a concrete
// name, UnresolvedType ("()"), or NumberSentinel ("number").
type DeclaredType struct {
	Name             string
	InferredFromInit bool // true when Name == UnresolvedType and an Init is present
}

// VarDecl is a `let` binding, at top level or inside a function body.
type VarDecl struct {
	base
	Name string
	Type DeclaredType
	Init Node // Expr, or nil

	// ResolvedType is filled in by the checker (declared, or inferred
	// from Init). interface{} for the same reason as FuncDecl.ResolvedType.
	ResolvedType interface{}
}

func (*VarDecl) Kind() Kind { return KindVarDecl }

func NewVarDecl(pos token.Position, name string, declaredType DeclaredType, init Node) *VarDecl {
	return &VarDecl{base: base{pos}, Name: name, Type: declaredType, Init: init}
}

// BinopKind enumerates spec.md §3's three operator classes.
type BinopKind int

const (
	OpAdd BinopKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpGt
	OpLt
	OpEq
	OpLe
	OpGe
	OpNe
	OpAnd
	OpOr
)

var binopText = map[BinopKind]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpGt: ">", OpLt: "<", OpEq: "==", OpLe: "<=", OpGe: ">=", OpNe: "!=",
	OpAnd: "&&", OpOr: "||",
}

func (b BinopKind) String() string { return binopText[b] }

// BinopKindFromText maps operator text to its BinopKind.
func BinopKindFromText(text string) (BinopKind, bool) {
	for k, v := range binopText {
		if v == text {
			return k, true
		}
	}
	return 0, false
}

// Binop is a binary operator expression.
type Binop struct {
	base
	Op  BinopKind
	Lhs Node
	Rhs Node
}

func (*Binop) Kind() Kind { return KindBinop }

func NewBinop(pos token.Position, op BinopKind, lhs, rhs Node) *Binop {
	return &Binop{base{pos}, op, lhs, rhs}
}

// PipeOp is one link of a pipe chain: Value |> Next (a linked list, per
// spec.md §3 — `a |> f |> g(x)` is Pipe(a, Pipe(f, Pipe(g(x), nil))).
type PipeOp struct {
	base
	Value Node
	Next  *PipeOp
}

func (*PipeOp) Kind() Kind { return KindPipeOp }

func NewPipeOp(pos token.Position, value Node, next *PipeOp) *PipeOp {
	return &PipeOp{base{pos}, value, next}
}

// Expr is a parenthesized grouping.
type Expr struct {
	base
	Item Node // nil for an empty `()`
}

func (*Expr) Kind() Kind { return KindExpr }

func NewExpr(pos token.Position, item Node) *Expr {
	return &Expr{base{pos}, item}
}

// KeywordWord enumerates the single keyword statement EFU currently has.
type KeywordWord int

const (
	KwReturn KeywordWord = iota
)

func (KeywordWord) String() string { return "return" }

// KeywordStmt is `return expr?;`.
type KeywordStmt struct {
	base
	Word KeywordWord
	Expr Node // nil for a bare `return;`
}

func (*KeywordStmt) Kind() Kind { return KindKeyword }

func NewKeywordStmt(pos token.Position, word KeywordWord, expr Node) *KeywordStmt {
	return &KeywordStmt{base{pos}, word, expr}
}

// IfElse is `if cond { body } else { elseBody }`, the else branch optional.
type IfElse struct {
	base
	Cond Node
	Body []Node
	Else []Node // nil when no else branch
}

func (*IfElse) Kind() Kind { return KindIfElse }

func NewIfElse(pos token.Position, cond Node, body, elseBody []Node) *IfElse {
	return &IfElse{base{pos}, cond, body, elseBody}
}

// Ident is a bare identifier reference.
type Ident struct {
	base
	Name string

	// ResolvedType is filled in by the checker. interface{} as above.
	ResolvedType interface{}
}

func (*Ident) Kind() Kind { return KindIdent }

func NewIdent(pos token.Position, name string) *Ident {
	return &Ident{base: base{pos}, Name: name}
}

// LiteralKind discriminates Literal's String(text)|Int(value) payload.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitInt
)

// Literal is a string or integer literal. Monomorphisation (spec.md §9's
// Open Question) rewrites IntBase and ResolvedType in place each time the
// literal is checked as an argument to a call with an integer parameter.
type Literal struct {
	base
	LitKind LiteralKind
	Str     string
	Int     int64

	// IntBase names the integer primitive base this literal currently
	// carries (e.g. "sisz" by default, per spec.md §4.4); only meaningful
	// when LitKind == LitInt. The checker may rewrite it toward a call's
	// parameter base (monomorphisation).
	IntBase string

	ResolvedType interface{}
}

func (*Literal) Kind() Kind { return KindLiteral }

func NewStringLiteral(pos token.Position, text string) *Literal {
	return &Literal{base: base{pos}, LitKind: LitString, Str: text}
}

func NewIntLiteral(pos token.Position, value int64) *Literal {
	return &Literal{base: base{pos}, LitKind: LitInt, Int: value, IntBase: "sisz"}
}

// AsLiteral walks through grouping expressions to find the literal a node
// ultimately is, or nil if it is not literal-origin. Used by the checker
// to restrict integer-literal monomorphisation to literal-origin arguments
// only, per spec.md §9.
func AsLiteral(n Node) *Literal {
	for {
		switch v := n.(type) {
		case *Literal:
			return v
		case *Expr:
			if v.Item == nil {
				return nil
			}
			n = v.Item
		default:
			return nil
		}
	}
}

// DebugIR renders the concise, non-parseable pretty-print of spec.md §6.
func DebugIR(n Node) string {
	if n == nil {
		return "()"
	}
	switch v := n.(type) {
	case *EOFNode:
		return "EoF{}"
	case *Literal:
		return fmt.Sprintf("Literal{%s}", literalJSON(v))
	case *KeywordStmt:
		inner := "()"
		if v.Expr != nil {
			inner = DebugIR(v.Expr)
		}
		return fmt.Sprintf("Keyword{%s, (%s)}", v.Word, inner)
	case *Ident:
		return fmt.Sprintf("Ident{%s}", v.Name)
	case *FuncDecl:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = fmt.Sprintf("%s: %s", a.Name, a.TypeName)
		}
		body := make([]string, len(v.Body))
		for i, s := range v.Body {
			body[i] = DebugIR(s)
		}
		return fmt.Sprintf("FnDecl{%s, Args{%s}, Body{%s}}", v.Name, strings.Join(args, ", "), strings.Join(body, ", "))
	case *FuncCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = DebugIR(a)
		}
		return fmt.Sprintf("FnCall{%s, (%s)}", v.Name, strings.Join(args, ", "))
	case *Binop:
		return fmt.Sprintf("BinOp{%s, %s, %s}", DebugIR(v.Lhs), v.Op, DebugIR(v.Rhs))
	case *Expr:
		inner := "()"
		if v.Item != nil {
			inner = DebugIR(v.Item)
		}
		return fmt.Sprintf("Expr{%s}", inner)
	case *PipeOp:
		to := "()"
		if v.Next != nil {
			to = DebugIR(v.Next)
		}
		return fmt.Sprintf("Pipe{%s |> %s}", DebugIR(v.Value), to)
	case *VarDecl:
		init := "()"
		if v.Init != nil {
			init = DebugIR(v.Init)
		}
		return fmt.Sprintf("VarDecl{%s: %s, (%s)}", v.Name, v.Type.Name, init)
	case *IfElse:
		body := make([]string, len(v.Body))
		for i, s := range v.Body {
			body[i] = DebugIR(s)
		}
		elseBody := "()"
		if v.Else != nil {
			parts := make([]string, len(v.Else))
			for i, s := range v.Else {
				parts[i] = DebugIR(s)
			}
			elseBody = strings.Join(parts, ", ")
		}
		return fmt.Sprintf("IfElse{%s, Body{%s}, Else{%s}}", DebugIR(v.Cond), strings.Join(body, ", "), elseBody)
	default:
		return "?{}"
	}
}

func literalJSON(l *Literal) string {
	var b []byte
	if l.LitKind == LitString {
		b, _ = json.Marshal(l.Str)
	} else {
		b, _ = json.Marshal(l.Int)
	}
	return string(b)
}

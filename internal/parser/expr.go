package parser

import (
	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/token"
)

// precedence ranks spec.md §4.2's classes from lowest (0) to highest (4).
// {&&, ||} < % < {> < == <= >= !=} < {+ -} < {* /}.
func precedence(op ast.BinopKind) int {
	switch op {
	case ast.OpAnd, ast.OpOr:
		return 0
	case ast.OpMod:
		return 1
	case ast.OpGt, ast.OpLt, ast.OpEq, ast.OpLe, ast.OpGe, ast.OpNe:
		return 2
	case ast.OpAdd, ast.OpSub:
		return 3
	case ast.OpMul, ast.OpDiv:
		return 4
	default:
		return -1
	}
}

// parseExpr implements expr := primary (binop expr)* (pipe-tail)?.
func (p *Parser) parseExpr() ast.Node {
	value := p.parseBinopChain()
	if !p.peekIsSymbol("|>") {
		return value
	}
	head := ast.NewPipeOp(value.Pos(), value, nil)
	link := head
	for p.peekIsSymbol("|>") {
		p.lx.Next()
		next := p.parseBinopChain()
		nextLink := ast.NewPipeOp(next.Pos(), next, nil)
		link.Next = nextLink
		link = nextLink
	}
	return head
}

// parseBinopChain parses a primary then recursively folds in any binary
// operators, applying spec.md §4.2's post-recursive rotation so the
// result respects operator precedence.
func (p *Parser) parseBinopChain() ast.Node {
	lhs := p.parsePrimary()
	return p.parseBinopRHS(lhs)
}

func (p *Parser) parseBinopRHS(lhs ast.Node) ast.Node {
	tok := p.lx.Peek()
	if tok.Kind != token.Symbol {
		return lhs
	}
	op, ok := ast.BinopKindFromText(tok.Text)
	if !ok {
		return lhs
	}
	p.lx.Next()
	rhs := p.parseBinopChain()
	node := ast.NewBinop(tok.Pos, op, lhs, rhs)
	return rotate(node)
}

// rotate implements spec.md §4.2's rotation rule: when rhs is itself a
// Binop whose operator has strictly lower precedence than node's, the
// outer operator takes rhs's left child and rhs becomes the new root with
// its left child replaced by the newly built inner Binop. Equal
// precedence never rotates, so a same-class chain such as `1 - 2 - 3`
// keeps the right-nested shape the recursion built.
func rotate(node *ast.Binop) ast.Node {
	rhsBinop, ok := node.Rhs.(*ast.Binop)
	if !ok {
		return node
	}
	if precedence(rhsBinop.Op) >= precedence(node.Op) {
		return node
	}
	inner := ast.NewBinop(node.Pos(), node.Op, node.Lhs, rhsBinop.Lhs)
	return ast.NewBinop(rhsBinop.Pos(), rhsBinop.Op, inner, rhsBinop.Rhs)
}

// parsePrimary implements primary := STRING | INT | IDENT call? | '(' expr ')' | fn-decl.
func (p *Parser) parsePrimary() ast.Node {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.String:
		p.lx.Next()
		return ast.NewStringLiteral(tok.Pos, tok.Text)
	case tok.Kind == token.Integer:
		p.lx.Next()
		return ast.NewIntLiteral(tok.Pos, tok.Int)
	case tok.Kind == token.Identifier:
		p.lx.Next()
		if p.peekIsSymbol("(") {
			args := p.parseCallArgs()
			return ast.NewFuncCall(tok.Pos, tok.Text, args)
		}
		return ast.NewIdent(tok.Pos, tok.Text)
	case tok.Kind == token.Symbol && tok.Text == "(":
		p.lx.Next()
		if p.peekIsSymbol(")") {
			p.lx.Next()
			return ast.NewExpr(tok.Pos, nil)
		}
		inner := p.parseExpr()
		p.expectSymbol(")")
		return ast.NewExpr(tok.Pos, inner)
	case tok.Kind == token.KeywordTok && tok.KwVal == token.KwFn:
		return p.parseFuncDecl()
	default:
		p.fail(tok.Pos, "unexpected token in expression: %s", tok)
		return nil
	}
}

// parseCallArgs implements call := '(' (expr (',' expr)*)? ')'.
func (p *Parser) parseCallArgs() []ast.Node {
	p.expectSymbol("(")
	if p.peekIsSymbol(")") {
		p.lx.Next()
		return nil
	}
	var args []ast.Node
	for {
		args = append(args, p.parseExpr())
		if p.peekIsSymbol(",") {
			p.lx.Next()
			continue
		}
		break
	}
	p.expectSymbol(")")
	return args
}

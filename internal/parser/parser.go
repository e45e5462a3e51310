// Package parser implements EFU's recursive-descent, precedence-climbing
// parser (spec.md §4.2). Grounded on xsharp's Parser (current/consume/
// parse* shape, panic-based error signalling caught at the drive loop)
// generalized to EFU's richer grammar.
package parser

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/diag"
	"github.com/efulang/efu/internal/lexer"
	"github.com/efulang/efu/internal/token"
)

// parseAbort is panicked by parser helpers on a mishap and recovered at
// the top-level drive loop, exactly as xsharp's consume()/main() pair
// does it with plain panic/recover.
type parseAbort struct {
	pos token.Position
	err error
}

// Parser consumes tokens from a Lexer and produces the flat, ordered
// top-level node sequence of spec.md §3.
type Parser struct {
	lx    *lexer.Lexer
	diags *diag.Bag
}

// New returns a Parser reading from lx, recording diagnostics into diags.
func New(lx *lexer.Lexer, diags *diag.Bag) *Parser {
	return &Parser{lx: lx, diags: diags}
}

// Parse drives parse_statement() until EOF (spec.md §4.2's Contract),
// returning the flat top-level node sequence including the trailing EOF
// sentinel. On a parser mishap, the offending declaration is dropped and
// the drive aborts, per spec.md §4.2/§7 — any nodes parsed before the
// failure are still returned so partial -debug-ir output remains useful.
func (p *Parser) Parse() []ast.Node {
	var out []ast.Node
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			out = append(out, ast.NewEOF(tok.Pos))
			return out
		}
		node, ok := p.parseTopLevelSafe()
		if !ok {
			return out
		}
		out = append(out, node)
	}
}

func (p *Parser) parseTopLevelSafe() (node ast.Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			abort, isAbort := r.(parseAbort)
			if !isAbort {
				panic(r)
			}
			p.diags.Errorf(abort.pos, "%s", abort.err)
			ok = false
		}
	}()
	return p.parseTopLevel(), true
}

func (p *Parser) fail(pos token.Position, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	panic(parseAbort{pos: pos, err: errors.New(msg)})
}

func (p *Parser) parseTopLevel() ast.Node {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.KeywordTok && tok.KwVal == token.KwLet:
		return p.parseVarDecl()
	case tok.Kind == token.KeywordTok && tok.KwVal == token.KwFn:
		return p.parseFuncDecl()
	default:
		p.fail(tok.Pos, "unexpected %s at top level; expected a variable or function declaration", tok)
		return nil
	}
}

// --- token helpers ---------------------------------------------------------

func (p *Parser) expectSymbol(text string) token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.Symbol || tok.Text != text {
		p.fail(tok.Pos, "expected %q but got %s", text, tok)
	}
	return tok
}

func (p *Parser) peekIsSymbol(text string) bool {
	tok := p.lx.Peek()
	return tok.Kind == token.Symbol && tok.Text == text
}

func (p *Parser) peekIsKeyword(kw token.Keyword) bool {
	tok := p.lx.Peek()
	return tok.Kind == token.KeywordTok && tok.KwVal == kw
}

func (p *Parser) expectIdent() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.Identifier {
		p.fail(tok.Pos, "expected an identifier but got %s", tok)
	}
	return tok
}

// --- declarations -----------------------------------------------------------

// parseVarDecl implements spec.md §4.2's var-decl forms:
//
//	let X;             -- declared type "()" , no init
//	let X: T;          -- declared T, no init
//	let X: = expr;     -- inferred from expr
//	let X: T = expr;   -- declared T, checked against expr
func (p *Parser) parseVarDecl() ast.Node {
	pos := p.lx.Next().Pos // consume 'let'
	name := p.expectIdent().Text

	typeName := ast.UnresolvedType
	var init ast.Node
	hasInit := false

	if p.peekIsSymbol(":") {
		p.lx.Next()
		if p.lx.Peek().Kind == token.Identifier {
			typeName = p.lx.Next().Text
		}
		if p.peekIsSymbol("=") {
			p.lx.Next()
			init = p.parseExpr()
			hasInit = true
		}
	}
	p.expectSymbol(";")

	declared := ast.DeclaredType{
		Name:             typeName,
		InferredFromInit: typeName == ast.UnresolvedType && hasInit,
	}
	return ast.NewVarDecl(pos, name, declared, init)
}

// parseFuncDecl implements fn-decl := 'fn' IDENT '(' args? ')' ('->' IDENT)? block.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	pos := p.lx.Next().Pos // consume 'fn'
	name := p.expectIdent().Text
	p.expectSymbol("(")
	args := p.parseArgs()
	p.expectSymbol(")")

	returns := ast.UnresolvedType
	if p.peekIsSymbol("->") {
		p.lx.Next()
		returns = p.expectIdent().Text
	}
	body := p.parseBlock()
	return ast.NewFuncDecl(pos, name, args, returns, body)
}

// parseArgs implements args := arg (',' arg)*; arg := IDENT (':' IDENT)?.
func (p *Parser) parseArgs() []*ast.FuncDeclArg {
	if p.peekIsSymbol(")") {
		return nil
	}
	var args []*ast.FuncDeclArg
	for {
		tok := p.expectIdent()
		typeName := ast.UnresolvedType
		if p.peekIsSymbol(":") {
			p.lx.Next()
			typeName = p.expectIdent().Text
		}
		args = append(args, ast.NewFuncDeclArg(tok.Pos, tok.Text, typeName))
		if p.peekIsSymbol(",") {
			p.lx.Next()
			continue
		}
		break
	}
	return args
}

// parseBlock implements block := '{' stmt* '}'.
func (p *Parser) parseBlock() []ast.Node {
	p.expectSymbol("{")
	var stmts []ast.Node
	for !p.peekIsSymbol("}") {
		if p.lx.Peek().Kind == token.EOF {
			p.fail(p.lx.Peek().Pos, "unexpected EOF inside a block")
		}
		stmts = append(stmts, p.parseStatement())
	}
	p.expectSymbol("}")
	return stmts
}

// parseBlockOrStmt implements (block | stmt) alternatives used by if-else.
func (p *Parser) parseBlockOrStmt() []ast.Node {
	if p.peekIsSymbol("{") {
		return p.parseBlock()
	}
	return []ast.Node{p.parseStatement()}
}

// parseStatement implements:
//
//	stmt := if-else | var-decl ';' | return ';' | fn-decl | expr ';'
func (p *Parser) parseStatement() ast.Node {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.KeywordTok && tok.KwVal == token.KwIf:
		return p.parseIfElse()
	case tok.Kind == token.KeywordTok && tok.KwVal == token.KwLet:
		return p.parseVarDecl()
	case tok.Kind == token.KeywordTok && tok.KwVal == token.KwReturn:
		return p.parseReturn()
	case tok.Kind == token.KeywordTok && tok.KwVal == token.KwFn:
		return p.parseFuncDecl()
	default:
		expr := p.parseExpr()
		p.expectSymbol(";")
		return expr
	}
}

func (p *Parser) parseReturn() ast.Node {
	pos := p.lx.Next().Pos // consume 'return'
	var expr ast.Node
	if !p.peekIsSymbol(";") {
		expr = p.parseExpr()
	}
	p.expectSymbol(";")
	return ast.NewKeywordStmt(pos, ast.KwReturn, expr)
}

// parseIfElse implements if-else := 'if' expr (block | stmt) ('else' (block | stmt))?.
func (p *Parser) parseIfElse() ast.Node {
	pos := p.lx.Next().Pos // consume 'if'
	cond := p.parseExpr()
	body := p.parseBlockOrStmt()
	var elseBody []ast.Node
	if p.peekIsKeyword(token.KwElse) {
		p.lx.Next()
		elseBody = p.parseBlockOrStmt()
	}
	return ast.NewIfElse(pos, cond, body, elseBody)
}

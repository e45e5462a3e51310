// Package lexer turns EFU source text into a stream of tokens.
//
// It is a single hand-rolled scanner rather than xsharp's regex table: the
// two-character operator set (&&, ||, ==, =>, !=, >>, >=, <<, <=, |>, ->)
// and the backtick/quote string form need lookahead a single alternation
// regex can't express cleanly.
package lexer

import (
	"strings"

	"github.com/efulang/efu/internal/token"
)

// Lexer exposes Next/Peek with a single clonable cursor, per spec.md §4.1.
type Lexer struct {
	src  []rune
	file string

	pos    int
	line   int
	column int

	peeked    *token.Token
	havePeek  bool
}

// New returns a Lexer over src. file is attached to every token's Position.
func New(src, file string) *Lexer {
	return &Lexer{
		src:    []rune(src),
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

var twoCharSymbols = []string{"&&", "||", "==", "=>", "!=", ">>", ">=", "<<", "<=", "|>", "->"}

func (l *Lexer) here() token.Position {
	return token.Position{Line: l.line, Column: l.column, File: l.file}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) ch() rune {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) chAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() rune {
	r := l.ch()
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch l.ch() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.chAt(1) == '/' {
				for !l.atEnd() && l.ch() != '\n' {
					l.advance()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	if !l.havePeek {
		t := l.scan()
		l.peeked = &t
		l.havePeek = true
	}
	return *l.peeked
}

// Next consumes and returns the next token. Past end of input it returns
// EOF indefinitely.
func (l *Lexer) Next() token.Token {
	if l.havePeek {
		l.havePeek = false
		t := *l.peeked
		l.peeked = nil
		return t
	}
	return l.scan()
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (l *Lexer) scan() token.Token {
	l.skipTrivia()
	pos := l.here()
	if l.atEnd() {
		return token.Token{Kind: token.EOF, Pos: pos}
	}

	r := l.ch()

	// A '-' immediately before a digit, no intervening space, is the sign
	// of an integer literal (spec.md §4.1).
	if r == '-' && isDigit(l.chAt(1)) {
		l.advance()
		return l.scanInteger(pos, true)
	}
	if isDigit(r) {
		return l.scanInteger(pos, false)
	}
	if r == '`' {
		return l.scanString(pos)
	}
	if isIdentStart(r) {
		return l.scanIdentOrKeyword(pos)
	}

	for _, sym := range twoCharSymbols {
		if l.matches(sym) {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Symbol, Pos: pos, Text: sym}
		}
	}

	l.advance()
	return token.Token{Kind: token.Symbol, Pos: pos, Text: string(r)}
}

func (l *Lexer) matches(sym string) bool {
	runes := []rune(sym)
	for i, want := range runes {
		if l.chAt(i) != want {
			return false
		}
	}
	return true
}

func (l *Lexer) scanInteger(pos token.Position, negative bool) token.Token {
	start := l.pos
	for !l.atEnd() && isDigit(l.ch()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	var v int64
	for _, c := range text {
		v = v*10 + int64(c-'0')
	}
	if negative {
		v = -v
	}
	return token.Token{Kind: token.Integer, Pos: pos, Int: v}
}

// scanString scans a backtick-opened, single-quote-closed string literal
// with \n \r \t escapes and a \<any> pass-through escape. Unterminated
// strings read to EOF and are tolerated (spec.md §4.1, §7).
func (l *Lexer) scanString(pos token.Position) token.Token {
	l.advance() // opening `
	var b strings.Builder
	for !l.atEnd() && l.ch() != '\'' {
		r := l.advance()
		if r == '\\' {
			if l.atEnd() {
				break
			}
			esc := l.advance()
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 'r':
				b.WriteRune('\r')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
			continue
		}
		b.WriteRune(r)
	}
	if !l.atEnd() {
		l.advance() // closing '
	}
	return token.Token{Kind: token.String, Pos: pos, Text: b.String()}
}

func (l *Lexer) scanIdentOrKeyword(pos token.Position) token.Token {
	start := l.pos
	for !l.atEnd() && isIdentCont(l.ch()) {
		l.advance()
	}
	word := string(l.src[start:l.pos])
	if kw, ok := token.Lookup(word); ok {
		return token.Token{Kind: token.KeywordTok, Pos: pos, KwVal: kw, Text: word}
	}
	return token.Token{Kind: token.Identifier, Pos: pos, Text: word}
}

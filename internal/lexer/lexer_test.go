package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efulang/efu/internal/lexer"
	"github.com/efulang/efu/internal/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	lx := lexer.New(src, "t.efu")
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	toks := scanAll(t, "fn let x")
	require.Len(t, toks, 4)
	assert.Equal(t, token.KeywordTok, toks[0].Kind)
	assert.Equal(t, token.KwFn, toks[0].KwVal)
	assert.Equal(t, token.KeywordTok, toks[1].Kind)
	assert.Equal(t, token.KwLet, toks[1].KwVal)
	assert.Equal(t, token.Identifier, toks[2].Kind)
	assert.Equal(t, "x", toks[2].Text)
}

func TestLexerIntegerLiterals(t *testing.T) {
	toks := scanAll(t, "42 -7")
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, token.Integer, toks[0].Kind)
	assert.EqualValues(t, 42, toks[0].Int)
	assert.Equal(t, token.Integer, toks[1].Kind)
	assert.EqualValues(t, -7, toks[1].Int)
}

func TestLexerNegativeSignRequiresNoSpace(t *testing.T) {
	// "a - 7" is subtraction, not negative 7: the '-' is not fused to the
	// digit because of the intervening space.
	toks := scanAll(t, "a - 7")
	require.Len(t, toks, 4)
	assert.Equal(t, token.Identifier, toks[0].Kind)
	assert.Equal(t, token.Symbol, toks[1].Kind)
	assert.Equal(t, "-", toks[1].Text)
	assert.Equal(t, token.Integer, toks[2].Kind)
	assert.EqualValues(t, 7, toks[2].Int)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := scanAll(t, "`a\\nb\\tc'")
	require.GreaterOrEqual(t, len(toks), 1)
	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, "a\nb\tc", toks[0].Text)
}

func TestLexerUnterminatedStringTolerated(t *testing.T) {
	toks := scanAll(t, "`oops")
	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, "oops", toks[0].Text)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestLexerTwoCharSymbolsGreedy(t *testing.T) {
	toks := scanAll(t, "|> -> => == != <= >=")
	want := []string{"|>", "->", "=>", "==", "!=", "<=", ">="}
	require.GreaterOrEqual(t, len(toks), len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Text)
	}
}

func TestLexerLineCommentSkipped(t *testing.T) {
	toks := scanAll(t, "x // trailing comment\ny")
	require.Len(t, toks, 3)
	assert.Equal(t, "x", toks[0].Text)
	assert.Equal(t, "y", toks[1].Text)
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lx := lexer.New("x y", "t.efu")
	first := lx.Peek()
	second := lx.Peek()
	assert.Equal(t, first, second)
	assert.Equal(t, "x", lx.Next().Text)
	assert.Equal(t, "y", lx.Next().Text)
}

func TestLexerLineColumnTracking(t *testing.T) {
	lx := lexer.New("a\nbb", "t.efu")
	first := lx.Next()
	assert.Equal(t, 1, first.Pos.Line)
	second := lx.Next()
	assert.Equal(t, 2, second.Pos.Line)
	assert.Equal(t, 1, second.Pos.Column)
}

package pilex

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(tokens []lexer.Token) []string {
	var out []string
	for _, tok := range tokens {
		if tok.EOF() {
			break
		}
		out = append(out, tok.Value)
	}
	return out
}

func TestTokenizeCompoundOperators(t *testing.T) {
	tokens, err := Tokenize("", "a == b != c <= d >= e && f || g -> h := i = j < k")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a", "==", "b", "!=", "c", "<=", "d", ">=", "e", "&&", "f", "||", "g",
		"->", "h", ":=", "i", "=", "j", "<", "k",
	}, values(tokens))
	for _, tok := range tokens {
		if len(tok.Value) == 2 {
			assert.Equal(t, Punct, tok.Type, tok.Value)
		}
	}
}

func TestTokenizeClassifiesKeywords(t *testing.T) {
	tokens, err := Tokenize("", `function f forall x true "s" 42`)
	require.NoError(t, err)
	require.Len(t, tokens, 8)

	tests := []struct {
		typ   lexer.TokenType
		value string
	}{
		{Keyword, "function"},
		{Ident, "f"},
		{Keyword, "forall"},
		{Ident, "x"},
		{Keyword, "true"},
		{String, "s"},
		{Int, "42"},
		{EOF, ""},
	}
	for i, tc := range tests {
		assert.Equal(t, tc.typ, tokens[i].Type, "token %d", i)
		assert.Equal(t, tc.value, tokens[i].Value, "token %d", i)
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("x.pi", "var x: int;\n  @pre x > 0")
	require.NoError(t, err)

	at := tokens[5]
	assert.Equal(t, "@", at.Value)
	assert.Equal(t, "x.pi", at.Pos.Filename)
	assert.Equal(t, 2, at.Pos.Line)
	assert.Equal(t, 3, at.Pos.Column)
	assert.True(t, tokens[len(tokens)-1].EOF())
}

func TestTokenizeSkipsComments(t *testing.T) {
	tokens, err := Tokenize("", "a // line\n/* block */ b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values(tokens))
}

func TestTokenizeDotAfterInt(t *testing.T) {
	tokens, err := Tokenize("", "x: int. 1.5")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", ":", "int", ".", "1", ".", "5"}, values(tokens))
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize("", `"abc`)
	require.Error(t, err)
}

func TestDefinitionSymbols(t *testing.T) {
	syms := TextScannerLexer.Symbols()
	assert.Equal(t, Keyword, syms["Keyword"])
	assert.Equal(t, Punct, syms["Punct"])
	assert.Equal(t, EOF, syms["EOF"])
}

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/tokenkind"
)

func scanSource(t *testing.T, source string) ([]Token, []*LexError) {
	t.Helper()
	l := New(source, lexicon.English())
	return l.ScanTokens()
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	return types
}

func TestLexer_SingleCharTokens(t *testing.T) {
	tokens, errs := scanSource(t, "(),.: + - * / = < > !")
	require.Empty(t, errs)

	expected := []TokenType{
		TOKEN_LPAREN, TOKEN_RPAREN, TOKEN_COMMA, TOKEN_DOT, TOKEN_COLON,
		TOKEN_PLUS, TOKEN_MINUS, TOKEN_STAR, TOKEN_SLASH, TOKEN_EQUAL,
		TOKEN_LESS, TOKEN_GREATER, TOKEN_BANG, TOKEN_EOF,
	}
	assert.Equal(t, expected, tokenTypes(tokens))
}

func TestLexer_TwoCharOperators(t *testing.T) {
	tokens, errs := scanSource(t, "<= >= !=")
	require.Empty(t, errs)

	expected := []TokenType{TOKEN_LESS_EQUAL, TOKEN_GREATER_EQUAL, TOKEN_BANG_EQUAL, TOKEN_EOF}
	assert.Equal(t, expected, tokenTypes(tokens))
}

func TestLexer_StringLiteral(t *testing.T) {
	tokens, errs := scanSource(t, `"Hello, world!"`)
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_STRING, tokens[0].Type)
	assert.Equal(t, "Hello, world!", tokens[0].Literal)
}

func TestLexer_StringEscapes(t *testing.T) {
	tokens, errs := scanSource(t, `"line\nbreak\ttabA"`)
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, "line\nbreak\ttabA", tokens[0].Literal)
}

func TestLexer_UnterminatedString(t *testing.T) {
	_, errs := scanSource(t, `"unterminated`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unterminated")
}

func TestLexer_InvalidEscape(t *testing.T) {
	_, errs := scanSource(t, `"bad\qescape"`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "invalid escape")
}

func TestLexer_Numbers(t *testing.T) {
	tokens, errs := scanSource(t, "42 3.14 10L")
	require.Empty(t, errs)
	require.Len(t, tokens, 4)
	assert.Equal(t, TOKEN_INT, tokens[0].Type)
	assert.Equal(t, 42, tokens[0].Literal)
	assert.Equal(t, TOKEN_FLOAT, tokens[1].Type)
	assert.Equal(t, 3.14, tokens[1].Literal)
	assert.Equal(t, TOKEN_LONG, tokens[2].Type)
	assert.Equal(t, int64(10), tokens[2].Literal)
}

func TestLexer_IdentifierCase(t *testing.T) {
	tokens, errs := scanSource(t, "driver Driver")
	require.Empty(t, errs)
	require.Len(t, tokens, 3)
	assert.Equal(t, TOKEN_IDENT, tokens[0].Type)
	assert.Equal(t, TOKEN_TYPE_IDENT, tokens[1].Type)
}

func TestLexer_BoolAndNull(t *testing.T) {
	tokens, errs := scanSource(t, "true false null")
	require.Empty(t, errs)
	require.Len(t, tokens, 4)
	assert.Equal(t, TOKEN_BOOL, tokens[0].Type)
	assert.Equal(t, true, tokens[0].Literal)
	assert.Equal(t, TOKEN_BOOL, tokens[1].Type)
	assert.Equal(t, false, tokens[1].Literal)
	assert.Equal(t, TOKEN_NULL, tokens[2].Type)
}

func TestLexer_SingleWordKeyword(t *testing.T) {
	tokens, errs := scanSource(t, "Module")
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_KEYWORD, tokens[0].Type)
	assert.Equal(t, tokenkind.KindModule, tokens[0].Kind)
}

func TestLexer_MultiWordKeywordLongestMatch(t *testing.T) {
	tokens, errs := scanSource(t, "divided by")
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, TOKEN_KEYWORD, tokens[0].Type)
	assert.Equal(t, tokenkind.KindDividedBy, tokens[0].Kind)
}

func TestLexer_IndentAndDedent(t *testing.T) {
	source := "Rule f produce Int:\n  Return 1.\nRule g produce Int:\n  Return 2.\n"
	tokens, errs := scanSource(t, source)
	require.Empty(t, errs)

	types := tokenTypes(tokens)
	indents, dedents := 0, 0
	for _, typ := range types {
		switch typ {
		case TOKEN_INDENT:
			indents++
		case TOKEN_DEDENT:
			dedents++
		}
	}
	assert.Equal(t, 2, indents)
	assert.Equal(t, 2, dedents)
}

func TestLexer_BlankLineDoesNotChangeIndent(t *testing.T) {
	source := "Rule f produce Int:\n  Return 1.\n\n  Return 2.\n"
	_, errs := scanSource(t, source)
	require.Empty(t, errs)
}

func TestLexer_OddIndentWidthIsError(t *testing.T) {
	source := "Rule f produce Int:\n   Return 1.\n"
	_, errs := scanSource(t, source)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "invalid indentation")
}

func TestLexer_InconsistentDedent(t *testing.T) {
	source := "Rule f produce Int:\n    Return 1.\n  Return 2.\n"
	_, errs := scanSource(t, source)
	require.NotEmpty(t, errs)
}

func TestLexer_EOFFlushesRemainingDedents(t *testing.T) {
	source := "Rule f produce Int:\n  Return 1."
	tokens, errs := scanSource(t, source)
	require.Empty(t, errs)

	last := tokens[len(tokens)-1]
	assert.Equal(t, TOKEN_EOF, last.Type)
	secondLast := tokens[len(tokens)-2]
	assert.Equal(t, TOKEN_DEDENT, secondLast.Type)
}

// Package parser implements the recursive-descent parser that turns a
// token stream into an AST, assuming the grammar's English canonical
// keywords. It uses panic-mode error recovery to keep producing
// diagnostics past the first syntax error.
package parser

import (
	"fmt"
	"strings"

	"github.com/aster-lang/aster/internal/compiler/ast"
	"github.com/aster-lang/aster/internal/compiler/lexer"
)

// ParseError carries everything the diagnostics layer needs to report a
// syntax error: the unexpected token, its span, and the set of token
// kinds that would have been accepted there.
type ParseError struct {
	Message  string
	Span     ast.Span
	Token    lexer.Token
	Expected []lexer.TokenType
}

func (e *ParseError) Error() string {
	var expected string
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, t := range e.Expected {
			names[i] = t.String()
		}
		expected = " (expected one of: " + strings.Join(names, ", ") + ")"
	}
	return fmt.Sprintf("%d:%d: %s near %q%s", e.Span.Start.Line, e.Span.Start.Col, e.Message, e.Token.Lexeme, expected)
}

func newParseError(message string, token lexer.Token, expected ...lexer.TokenType) *ParseError {
	pos := ast.Position{Line: token.Line, Col: token.Column}
	return &ParseError{
		Message:  message,
		Span:     ast.Span{Start: pos, End: pos},
		Token:    token,
		Expected: expected,
	}
}

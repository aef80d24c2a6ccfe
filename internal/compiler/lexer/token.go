package lexer

import (
	"fmt"

	"github.com/aster-lang/aster/internal/compiler/tokenkind"
)

// TokenType represents the type of a token produced by the indentation
// lexer.
type TokenType int

const (
	// TOKEN_EOF marks the end of the token stream.
	TOKEN_EOF TokenType = iota
	// TOKEN_ERROR represents a lexical error encountered during scanning.
	TOKEN_ERROR
	// TOKEN_COMMENT carries trivia: a comment surviving canonicalization
	// (tagged standalone or inline via Token.Trivia).
	TOKEN_COMMENT
	// TOKEN_NEWLINE marks a line break, including blank lines.
	TOKEN_NEWLINE
	// TOKEN_INDENT is synthesized when a line's indentation increases.
	TOKEN_INDENT
	// TOKEN_DEDENT is synthesized when a line's indentation decreases.
	TOKEN_DEDENT

	// TOKEN_KEYWORD is a semantic keyword token; Token.Kind carries which.
	TOKEN_KEYWORD

	// TOKEN_IDENT is a lowercase-initial identifier.
	TOKEN_IDENT
	// TOKEN_TYPE_IDENT is an uppercase-initial identifier.
	TOKEN_TYPE_IDENT

	// Literals.
	TOKEN_INT
	TOKEN_LONG
	TOKEN_FLOAT
	TOKEN_STRING
	TOKEN_BOOL
	TOKEN_NULL

	// Operators.
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_EQUAL
	TOKEN_LESS
	TOKEN_GREATER
	TOKEN_LESS_EQUAL
	TOKEN_GREATER_EQUAL
	TOKEN_BANG_EQUAL
	TOKEN_BANG

	// Grouping.
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACKET
	TOKEN_RBRACKET

	// Structural.
	TOKEN_DOT
	TOKEN_COLON
	TOKEN_COMMA
)

var tokenTypeNames = map[TokenType]string{
	TOKEN_EOF: "EOF", TOKEN_ERROR: "ERROR", TOKEN_COMMENT: "COMMENT", TOKEN_NEWLINE: "NEWLINE",
	TOKEN_INDENT: "INDENT", TOKEN_DEDENT: "DEDENT", TOKEN_KEYWORD: "KEYWORD",
	TOKEN_IDENT: "IDENT", TOKEN_TYPE_IDENT: "TYPE_IDENT",
	TOKEN_INT: "INT", TOKEN_LONG: "LONG", TOKEN_FLOAT: "FLOAT", TOKEN_STRING: "STRING",
	TOKEN_BOOL: "BOOL", TOKEN_NULL: "NULL",
	TOKEN_PLUS: "PLUS", TOKEN_MINUS: "MINUS", TOKEN_STAR: "STAR", TOKEN_SLASH: "SLASH",
	TOKEN_EQUAL: "EQUAL", TOKEN_LESS: "LESS", TOKEN_GREATER: "GREATER",
	TOKEN_LESS_EQUAL: "LESS_EQUAL", TOKEN_GREATER_EQUAL: "GREATER_EQUAL",
	TOKEN_BANG_EQUAL: "BANG_EQUAL", TOKEN_BANG: "BANG",
	TOKEN_LPAREN: "LPAREN", TOKEN_RPAREN: "RPAREN", TOKEN_LBRACKET: "LBRACKET", TOKEN_RBRACKET: "RBRACKET",
	TOKEN_DOT: "DOT", TOKEN_COLON: "COLON", TOKEN_COMMA: "COMMA",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// TriviaKind distinguishes how a comment token relates to the code
// around it.
type TriviaKind int

const (
	TriviaNone TriviaKind = iota
	TriviaStandalone
	TriviaInline
)

// Token is one lexical unit produced by the lexer.
type Token struct {
	Type    TokenType
	Kind    tokenkind.Kind // populated only when Type == TOKEN_KEYWORD
	Lexeme  string
	Literal any
	Trivia  TriviaKind
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Type == TOKEN_KEYWORD {
		return fmt.Sprintf("%s(%s) %q at %d:%d", t.Type, t.Kind, t.Lexeme, t.Line, t.Column)
	}
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError reports a single problem at one source position; lexing records
// it and continues right after the offending text.
type LexError struct {
	Message string
	Line    int
	Column  int
	Lexeme  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s (near %q)", e.Line, e.Column, e.Message, e.Lexeme)
}

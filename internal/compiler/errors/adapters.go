package errors

import (
	"github.com/aster-lang/aster/internal/compiler/ast"
	"github.com/aster-lang/aster/internal/compiler/lexer"
	"github.com/aster-lang/aster/internal/compiler/parser"
	"github.com/aster-lang/aster/internal/compiler/typechecker"
)

// FromLexError converts one lexer error into a CompilerError. The lexer
// only ever reports a line/column, not a full span, so Start and End
// coincide.
func FromLexError(e *lexer.LexError) *CompilerError {
	pos := ast.Position{Line: e.Line, Col: e.Column}
	ce := New("PARSE_ERROR", ast.Span{Start: pos, End: pos}, e.Message)
	ce.Actual = e.Lexeme
	return ce
}

// FromLexErrors converts a whole batch, preserving order.
func FromLexErrors(errs []*lexer.LexError) ErrorList {
	out := make(ErrorList, len(errs))
	for i, e := range errs {
		out[i] = FromLexError(e)
	}
	return out
}

// FromParseError converts one parser syntax error into a CompilerError.
func FromParseError(e *parser.ParseError) *CompilerError {
	ce := New("PARSE_ERROR", e.Span, e.Message)
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, t := range e.Expected {
			names[i] = t.String()
		}
		ce.Expected = joinNames(names)
	}
	ce.Actual = e.Token.Lexeme
	return ce
}

// FromParseErrors converts a whole batch, preserving order.
func FromParseErrors(errs []*parser.ParseError) ErrorList {
	out := make(ErrorList, len(errs))
	for i, e := range errs {
		out[i] = FromParseError(e)
	}
	return out
}

// FromDiagnostic converts one type-checker diagnostic into a
// CompilerError, mapping its Category onto this package's Category.
func FromDiagnostic(d *typechecker.Diagnostic) *CompilerError {
	ce := New(string(d.Code), d.Span, d.Message)
	ce.Category = Category(d.Category)
	if d.Severity != "" {
		ce.Severity = Severity(d.Severity)
	}
	ce.Expected = d.Expected
	ce.Actual = d.Actual
	return ce
}

// FromDiagnostics converts a whole batch, preserving order.
func FromDiagnostics(ds typechecker.Diagnostics) ErrorList {
	out := make(ErrorList, len(ds))
	for i, d := range ds {
		out[i] = FromDiagnostic(d)
	}
	return out
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

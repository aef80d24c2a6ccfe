// Package ast defines the abstract syntax tree produced by the parser:
// modules, declarations, statements, expressions, patterns and type
// annotations, each carrying the source span the parser observed for it.
package ast

import "github.com/aster-lang/aster/internal/compiler/lexer"

// Position is a single point in source text, 1-indexed.
type Position struct {
	Line, Col int
}

// Span is the source range an AST node occupies.
type Span struct {
	File  string
	Start Position
	End   Position
}

// TokenPosition converts a lexer token's line/column into a Position.
func TokenPosition(t lexer.Token) Position {
	return Position{Line: t.Line, Col: t.Column}
}

// Node is the base interface every AST node implements.
type Node interface {
	Span() Span
	node()
}

// Decl is the interface for top-level declarations.
type Decl interface {
	Node
	declNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Pattern is the interface for match-arm patterns.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is the interface for type annotations.
type TypeExpr interface {
	Node
	typeNode()
}

// Module is the root of one compiled source file's AST.
type Module struct {
	Name  string
	Decls []Decl
	Sp    Span
}

func (m *Module) node()      {}
func (m *Module) Span() Span { return m.Sp }

// Param is one formal parameter of a function or lambda.
type Param struct {
	Name string
	Type TypeExpr
	Sp   Span
}

// FieldDef is one field of a Data declaration.
type FieldDef struct {
	Name string
	Type TypeExpr
	Sp   Span
}

// EffectTag is a declared or inferred effect name: pure, cpu, io, async.
type EffectTag string

const (
	EffectPure  EffectTag = "pure"
	EffectCPU   EffectTag = "cpu"
	EffectIO    EffectTag = "io"
	EffectAsync EffectTag = "async"
)

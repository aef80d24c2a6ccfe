package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBlock_SpanMatchesFirstAndLastStatement(t *testing.T) {
	first := &ReturnStmt{Sp: Span{Start: Position{Line: 2, Col: 3}, End: Position{Line: 2, Col: 10}}}
	middle := &ExprStmt{Sp: Span{Start: Position{Line: 3, Col: 1}, End: Position{Line: 3, Col: 5}}}
	last := &ReturnStmt{Sp: Span{Start: Position{Line: 4, Col: 1}, End: Position{Line: 4, Col: 12}}}

	b := NewBlock([]Stmt{first, middle, last}, Span{})

	assert.Equal(t, first.Sp.Start, b.Span().Start)
	assert.Equal(t, last.Sp.End, b.Span().End)
}

func TestNewBlock_EmptyUsesFallback(t *testing.T) {
	fallback := Span{Start: Position{Line: 1, Col: 1}, End: Position{Line: 1, Col: 1}}
	b := NewBlock(nil, fallback)
	assert.Equal(t, fallback, b.Span())
}

func TestNodeInterfaces(t *testing.T) {
	var _ Decl = (*FuncDecl)(nil)
	var _ Decl = (*DataDecl)(nil)
	var _ Decl = (*EnumDecl)(nil)
	var _ Decl = (*ImportDecl)(nil)
	var _ Decl = (*TypeAliasDecl)(nil)

	var _ Stmt = (*LetStmt)(nil)
	var _ Stmt = (*SetStmt)(nil)
	var _ Stmt = (*ReturnStmt)(nil)
	var _ Stmt = (*IfStmt)(nil)
	var _ Stmt = (*MatchStmt)(nil)
	var _ Stmt = (*CaseClause)(nil)
	var _ Stmt = (*Block)(nil)
	var _ Stmt = (*ScopeStmt)(nil)
	var _ Stmt = (*StartStmt)(nil)
	var _ Stmt = (*WaitStmt)(nil)
	var _ Stmt = (*ExprStmt)(nil)
	var _ Stmt = (*WorkflowStmt)(nil)
	var _ Stmt = (*StepStmt)(nil)

	var _ Expr = (*NameExpr)(nil)
	var _ Expr = (*IntExpr)(nil)
	var _ Expr = (*LongExpr)(nil)
	var _ Expr = (*DoubleExpr)(nil)
	var _ Expr = (*BoolExpr)(nil)
	var _ Expr = (*StringExpr)(nil)
	var _ Expr = (*NullExpr)(nil)
	var _ Expr = (*CallExpr)(nil)
	var _ Expr = (*LambdaExpr)(nil)
	var _ Expr = (*ConstructExpr)(nil)
	var _ Expr = (*OkExpr)(nil)
	var _ Expr = (*ErrExpr)(nil)
	var _ Expr = (*SomeExpr)(nil)
	var _ Expr = (*NoneExpr)(nil)
	var _ Expr = (*AwaitExpr)(nil)
	var _ Expr = (*ListLiteralExpr)(nil)
	var _ Expr = (*BinaryExpr)(nil)
	var _ Expr = (*LogicalExpr)(nil)

	var _ Pattern = (*PatInt)(nil)
	var _ Pattern = (*PatName)(nil)
	var _ Pattern = (*PatWildcard)(nil)
	var _ Pattern = (*PatNull)(nil)
	var _ Pattern = (*PatBool)(nil)
	var _ Pattern = (*PatString)(nil)
	var _ Pattern = (*PatConstructor)(nil)

	var _ TypeExpr = (*TypeName)(nil)
	var _ TypeExpr = (*TypeVar)(nil)
	var _ TypeExpr = (*TypeApp)(nil)
	var _ TypeExpr = (*MaybeType)(nil)
	var _ TypeExpr = (*OptionType)(nil)
	var _ TypeExpr = (*ResultType)(nil)
	var _ TypeExpr = (*ListType)(nil)
	var _ TypeExpr = (*MapType)(nil)
	var _ TypeExpr = (*FuncType)(nil)
	var _ TypeExpr = (*PiiType)(nil)
}

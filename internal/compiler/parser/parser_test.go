package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster/internal/compiler/ast"
	"github.com/aster-lang/aster/internal/compiler/lexer"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/parser"
)

func parseSource(t *testing.T, source string) (*ast.Module, []*parser.ParseError) {
	t.Helper()
	toks, lexErrs := lexer.New(source, lexicon.English()).ScanTokens()
	require.Empty(t, lexErrs)
	return parser.New(toks).Parse()
}

func TestParser_ModuleHeader(t *testing.T) {
	mod, errs := parseSource(t, "Module Greeting.\n")
	assert.Empty(t, errs)
	assert.Equal(t, "Greeting", mod.Name)
}

func TestParser_DataDeclaration(t *testing.T) {
	source := "Data Order:\n  id: Text\n  total: Double\n"
	mod, errs := parseSource(t, source)
	require.Empty(t, errs)
	require.Len(t, mod.Decls, 1)

	data, ok := mod.Decls[0].(*ast.DataDecl)
	require.True(t, ok)
	assert.Equal(t, "Order", data.Name)
	require.Len(t, data.Fields, 2)
	assert.Equal(t, "id", data.Fields[0].Name)
	assert.Equal(t, "total", data.Fields[1].Name)
}

func TestParser_RuleWithArithmeticPrecedence(t *testing.T) {
	source := "Rule total given a: Int, b: Int produce Int:\n  Return a plus b times two.\n"
	mod, errs := parseSource(t, source)
	require.Empty(t, errs)
	require.Len(t, mod.Decls, 1)

	fn, ok := mod.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body.Statements, 1)

	ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
	require.True(t, ok)

	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator)

	right, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", right.Operator)
}

func TestParser_MethodStyleReceiverRewrite(t *testing.T) {
	source := "Rule run given r: Text produce Text:\n  Return r.trim().\n"
	mod, errs := parseSource(t, source)
	require.Empty(t, errs)

	fn := mod.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	call, ok := ret.Value.(*ast.CallExpr)
	require.True(t, ok)

	callee, ok := call.Callee.(*ast.NameExpr)
	require.True(t, ok)
	assert.Equal(t, "trim", callee.Name)
	require.Len(t, call.Args, 1)
	assert.IsType(t, &ast.NameExpr{}, call.Args[0])
}

func TestParser_IfOtherwise(t *testing.T) {
	source := "Rule check given n: Int produce Bool:\n  If n greater than zero:\n    Return true.\n  Otherwise:\n    Return false.\n"
	mod, errs := parseSource(t, source)
	require.Empty(t, errs)

	fn := mod.Decls[0].(*ast.FuncDecl)
	ifStmt, ok := fn.Body.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Then)
	require.NotNil(t, ifStmt.Else)
}

func TestParser_ConstructorsAndListLiteral(t *testing.T) {
	source := "Rule wrap given x: Int produce Result<Int, Text>:\n  Let xs be [1, 2, 3].\n  Return Ok(x).\n"
	mod, errs := parseSource(t, source)
	require.Empty(t, errs)

	fn := mod.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Statements, 2)

	letStmt := fn.Body.Statements[0].(*ast.LetStmt)
	list, ok := letStmt.Value.(*ast.ListLiteralExpr)
	require.True(t, ok)
	assert.Len(t, list.Elements, 3)

	retStmt := fn.Body.Statements[1].(*ast.ReturnStmt)
	_, ok = retStmt.Value.(*ast.OkExpr)
	assert.True(t, ok)
}

func TestParser_RecordConstruction(t *testing.T) {
	source := "Rule build produce Order:\n  Return Order with total = 9.\n"
	mod, errs := parseSource(t, source)
	require.Empty(t, errs)

	fn := mod.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	construct, ok := ret.Value.(*ast.ConstructExpr)
	require.True(t, ok)
	assert.Equal(t, "Order", construct.TypeName)
	require.Len(t, construct.Fields, 1)
	assert.Equal(t, "total", construct.Fields[0].Name)
}

func TestParser_StartWaitDiscipline(t *testing.T) {
	source := "Rule run produce Int:\n  Start job with compute().\n  Wait for job.\n  Return 1.\n"
	mod, errs := parseSource(t, source)
	require.Empty(t, errs)

	fn := mod.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Statements, 3)
	start, ok := fn.Body.Statements[0].(*ast.StartStmt)
	require.True(t, ok)
	assert.Equal(t, "job", start.Name)

	wait, ok := fn.Body.Statements[1].(*ast.WaitStmt)
	require.True(t, ok)
	assert.Equal(t, "job", wait.Name)
}

func TestParser_BlockSpanMatchesFirstAndLastStatement(t *testing.T) {
	source := "Rule run produce Int:\n  Let a be 1.\n  Return a.\n"
	mod, errs := parseSource(t, source)
	require.Empty(t, errs)

	fn := mod.Decls[0].(*ast.FuncDecl)
	first := fn.Body.Statements[0]
	last := fn.Body.Statements[len(fn.Body.Statements)-1]
	assert.Equal(t, first.Span().Start, fn.Body.Span().Start)
	assert.Equal(t, last.Span().End, fn.Body.Span().End)
}

func TestParser_IndentationErrorIsRecovered(t *testing.T) {
	source := "Rule run produce Int:\n   Return 1.\n"
	_, lexErrs := lexer.New(source, lexicon.English()).ScanTokens()
	assert.NotEmpty(t, lexErrs)
}

func TestParser_EffectAndCapabilityAnnotations(t *testing.T) {
	source := "Rule fetch given url: Text produce Text performs Http io:\n  Return url.\n"
	mod, errs := parseSource(t, source)
	require.Empty(t, errs)

	fn := mod.Decls[0].(*ast.FuncDecl)
	assert.Equal(t, ast.EffectIO, fn.DeclaredEffect)
	assert.Equal(t, []string{"Http"}, fn.Capabilities)
}

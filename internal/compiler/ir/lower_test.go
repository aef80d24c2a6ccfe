package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster/internal/compiler/ir"
	"github.com/aster-lang/aster/internal/compiler/lexer"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/parser"
)

func lowerSource(t *testing.T, source string) *ir.Module {
	t.Helper()
	toks, lexErrs := lexer.New(source, lexicon.English()).ScanTokens()
	require.Empty(t, lexErrs)
	mod, parseErrs := parser.New(toks).Parse()
	require.Empty(t, parseErrs)
	lowered, lowerErrs := ir.Lower(mod)
	require.Empty(t, lowerErrs)
	return lowered
}

func TestLower_BinaryExprBecomesNamedCall(t *testing.T) {
	source := "Rule total given a: Int, b: Int produce Int:\n  Return a plus b times two.\n"
	mod := lowerSource(t, source)

	fn := mod.Decls[0].(*ir.FuncDecl)
	ret := fn.Body.Statements[0].(*ir.Return)

	call, ok := ret.Value.(*ir.Call)
	require.True(t, ok)
	target, ok := call.Target.(*ir.Name)
	require.True(t, ok)
	assert.Equal(t, "+", target.Ident)

	right, ok := call.Args[1].(*ir.Call)
	require.True(t, ok)
	rightTarget := right.Target.(*ir.Name)
	assert.Equal(t, "*", rightTarget.Ident)
}

func TestLower_LiteralsCarryResolvedTypes(t *testing.T) {
	source := "Rule run produce Int:\n  Let a be 1.\n  Let b be \"hi\".\n  Let c be true.\n  Return a.\n"
	mod := lowerSource(t, source)

	fn := mod.Decls[0].(*ir.FuncDecl)
	a := fn.Body.Statements[0].(*ir.Let)
	b := fn.Body.Statements[1].(*ir.Let)
	c := fn.Body.Statements[2].(*ir.Let)

	assert.True(t, a.Value.Type().Equals(ir.Int))
	assert.True(t, b.Value.Type().Equals(ir.Text))
	assert.True(t, c.Value.Type().Equals(ir.Bool))
}

func TestLower_AnnotatedParamTypeIsKept(t *testing.T) {
	source := "Rule greet given name: Text produce Text:\n  Return name.\n"
	mod := lowerSource(t, source)
	fn := mod.Decls[0].(*ir.FuncDecl)
	require.Len(t, fn.Params, 1)
	assert.True(t, fn.Params[0].Typ.Equals(ir.Text))
}

func TestLower_DataFieldsResolveDeclaredTypes(t *testing.T) {
	source := "Data Order:\n  id: Text\n  total: Double\n"
	mod := lowerSource(t, source)
	data := mod.Decls[0].(*ir.DataDecl)
	require.Len(t, data.Fields, 2)
	assert.True(t, data.Fields[0].Typ.Equals(ir.Text))
	assert.True(t, data.Fields[1].Typ.Equals(ir.Double))
}

func TestLower_GenericResultTypeResolvesOkAndErr(t *testing.T) {
	source := "Rule wrap given x: Int produce Result<Int, Text>:\n  Return Ok(x).\n"
	mod := lowerSource(t, source)
	fn := mod.Decls[0].(*ir.FuncDecl)
	result, ok := fn.Return.(*ir.ResultT)
	require.True(t, ok)
	assert.True(t, result.Ok.Equals(ir.Int))
	assert.True(t, result.Err.Equals(ir.Text))
}

func TestLower_MaybeAndOptionAreCrossEqual(t *testing.T) {
	maybe := &ir.MaybeT{Elem: ir.Int}
	option := &ir.OptionT{Elem: ir.Int}
	assert.True(t, maybe.Equals(option))
	assert.True(t, option.Equals(maybe))
}

func TestLower_PiiLevelRankOrdering(t *testing.T) {
	assert.Less(t, ir.PiiRank("L1"), ir.PiiRank("L2"))
	assert.Less(t, ir.PiiRank("L2"), ir.PiiRank("L3"))
}

func TestLower_StartWaitPreservesNamePairing(t *testing.T) {
	source := "Rule run produce Int:\n  Start job with compute().\n  Wait for job.\n  Return 1.\n"
	mod := lowerSource(t, source)
	fn := mod.Decls[0].(*ir.FuncDecl)

	start := fn.Body.Statements[0].(*ir.Start)
	wait := fn.Body.Statements[1].(*ir.Wait)
	assert.Equal(t, "job", start.Name)
	assert.Equal(t, "job", wait.Name)
}

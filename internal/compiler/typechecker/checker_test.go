package typechecker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster/internal/compiler/ir"
	"github.com/aster-lang/aster/internal/compiler/lexer"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/parser"
	"github.com/aster-lang/aster/internal/compiler/typechecker"
)

func check(t *testing.T, source string, manifest *typechecker.Manifest) typechecker.Diagnostics {
	t.Helper()
	toks, lexErrs := lexer.New(source, lexicon.English()).ScanTokens()
	require.Empty(t, lexErrs)
	mod, parseErrs := parser.New(toks).Parse()
	require.Empty(t, parseErrs)
	lowered, lowerErrs := ir.Lower(mod)
	require.Empty(t, lowerErrs)
	return typechecker.NewChecker(manifest).Check(lowered)
}

func codesOf(diags typechecker.Diagnostics) []typechecker.Code {
	codes := make([]typechecker.Code, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return codes
}

func TestChecker_ReturnTypeMismatch(t *testing.T) {
	source := "Rule run produce Int:\n  Return \"oops\".\n"
	diags := check(t, source, nil)
	assert.Contains(t, codesOf(diags), typechecker.CodeReturnTypeMismatch)
}

func TestChecker_ReturnTypeMatches(t *testing.T) {
	source := "Rule run produce Int:\n  Return 1.\n"
	diags := check(t, source, nil)
	assert.Empty(t, diags)
}

func TestChecker_UndefinedVariable(t *testing.T) {
	source := "Rule run produce Int:\n  Return missing.\n"
	diags := check(t, source, nil)
	assert.Contains(t, codesOf(diags), typechecker.CodeUndefinedVariable)
}

func TestChecker_CapabilityNotDeclared(t *testing.T) {
	source := "Rule fetch given url: Text produce Text io:\n  Return Http.get(url).\n"
	diags := check(t, source, nil)
	assert.Contains(t, codesOf(diags), typechecker.CodeCapabilityNotAllowed)
}

func TestChecker_CapabilityDeclaredAndGranted(t *testing.T) {
	source := "Rule fetch given url: Text produce Text performs Http io:\n  Return Http.get(url).\n"
	manifest := &typechecker.Manifest{Allowed: map[string]bool{"Http": true}}
	diags := check(t, source, manifest)
	assert.NotContains(t, codesOf(diags), typechecker.CodeCapabilityNotAllowed)
}

func TestChecker_EffectDeclaredTooWeak(t *testing.T) {
	source := "Rule fetch given url: Text produce Text performs Http:\n  Return Http.get(url).\n"
	manifest := &typechecker.Manifest{Allowed: map[string]bool{"Http": true}}
	diags := check(t, source, manifest)
	assert.Contains(t, codesOf(diags), typechecker.CodeEffCapMissing)
}

func TestChecker_EffectDeclaredTooStrong(t *testing.T) {
	source := "Rule run produce Int io:\n  Return 1.\n"
	diags := check(t, source, nil)
	assert.Contains(t, codesOf(diags), typechecker.CodeEffCapSuperfluous)
}

func TestChecker_AsyncStartNotWaited(t *testing.T) {
	source := "Rule run produce Int:\n  Start job with compute().\n  Return 1.\n"
	diags := check(t, source, nil)
	assert.Contains(t, codesOf(diags), typechecker.CodeAsyncStartNotWaited)
}

func TestChecker_AsyncWaitNotStarted(t *testing.T) {
	source := "Rule run produce Int:\n  Wait for job.\n  Return 1.\n"
	diags := check(t, source, nil)
	assert.Contains(t, codesOf(diags), typechecker.CodeAsyncWaitNotStarted)
}

func TestChecker_AsyncDuplicateStart(t *testing.T) {
	source := "Rule run produce Int:\n  Start job with compute().\n  Start job with compute().\n  Wait for job.\n  Return 1.\n"
	diags := check(t, source, nil)
	assert.Contains(t, codesOf(diags), typechecker.CodeAsyncDuplicateStart)
}

func TestChecker_AsyncStartThenWaitIsClean(t *testing.T) {
	source := "Rule run produce Int:\n  Start job with compute().\n  Wait for job.\n  Return 1.\n"
	diags := check(t, source, nil)
	assert.NotContains(t, codesOf(diags), typechecker.CodeAsyncStartNotWaited)
	assert.NotContains(t, codesOf(diags), typechecker.CodeAsyncWaitNotStarted)
}

func TestChecker_GenericIdentityUnifies(t *testing.T) {
	source := "Rule identity given x: T produce T:\n  Return x.\n" +
		"Rule main produce Int:\n  Return identity(42).\n"
	diags := check(t, source, nil)
	assert.Empty(t, diags)
}

func TestChecker_TypevarInconsistentBinding(t *testing.T) {
	source := "Rule pick given a: T, b: T produce T:\n  Return a.\n" +
		"Rule main produce Int:\n  Return pick(1, \"two\").\n"
	diags := check(t, source, nil)
	assert.Contains(t, codesOf(diags), typechecker.CodeTypevarInconsistent)
}

func TestChecker_TypeAliasResolvesForReturnCheck(t *testing.T) {
	source := "type UserId = Text.\n" +
		"Rule lookup produce UserId:\n  Return \"u-1\".\n"
	diags := check(t, source, nil)
	assert.Empty(t, diags)
}

func TestChecker_BuiltinStringAliasResolves(t *testing.T) {
	source := "Rule greet produce String:\n  Return \"hi\".\n"
	diags := check(t, source, nil)
	assert.Empty(t, diags)
}

func TestChecker_AliasCycleTerminates(t *testing.T) {
	source := "type Loop = Echo.\ntype Echo = Loop.\n" +
		"Rule run produce Loop:\n  Return 1.\n"
	diags := check(t, source, nil)
	// The cycle must terminate; the mismatch between the unresolvable
	// alias and Int still surfaces as a normal return-type finding.
	assert.Contains(t, codesOf(diags), typechecker.CodeReturnTypeMismatch)
}

func TestChecker_GenericAliasExpands(t *testing.T) {
	source := "type Ids<T> = List<T>.\n" +
		"Rule run produce Ids<Int>:\n  Return [1, 2].\n"
	diags := check(t, source, nil)
	assert.Empty(t, diags)
}

func TestChecker_RedundantCpuAlongsideIoIsInfo(t *testing.T) {
	source := "Rule fetch given url: Text produce Text performs Http cpu, io:\n  Return Http.get(url).\n"
	manifest := &typechecker.Manifest{Allowed: map[string]bool{"Http": true}}
	diags := check(t, source, manifest)

	found := false
	for _, d := range diags {
		if d.Code == typechecker.CodeEffCapSuperfluous && d.Severity == typechecker.SeverityInfo {
			found = true
		}
	}
	assert.True(t, found, "cpu listed alongside io must downgrade to an informational finding")
}

func TestChecker_PatternClassifiedNamespaceInfersIO(t *testing.T) {
	source := "Rule read given path: Text produce Text performs Files io:\n  Return Files.read(path).\n"
	manifest := &typechecker.Manifest{Allowed: map[string]bool{"Files": true}}
	diags := check(t, source, manifest)
	assert.NotContains(t, codesOf(diags), typechecker.CodeEffCapMissing)
	assert.NotContains(t, codesOf(diags), typechecker.CodeCapabilityNotAllowed)
	assert.NotContains(t, codesOf(diags), typechecker.CodeUndefinedVariable)
}

func TestChecker_PiiDisabledByDefault(t *testing.T) {
	source := "Rule leak given value: Text sensitive L2 produce Text io:\n" +
		"  Log.write(value).\n  Return value.\n"
	manifest := &typechecker.Manifest{Allowed: map[string]bool{"Log": true}}
	diags := check(t, source, manifest)
	assert.NotContains(t, codesOf(diags), typechecker.CodePiiSinkUnsanitized)
}

func TestChecker_WorkflowStepCapability(t *testing.T) {
	source := "Rule process given url: Text produce Int performs Http io:\n" +
		"  Workflow:\n" +
		"    Step fetch:\n" +
		"      Http.get(url).\n" +
		"    Step persist:\n" +
		"      Sql.query(url).\n" +
		"  Return 1.\n"
	manifest := &typechecker.Manifest{Allowed: map[string]bool{"Http": true, "Sql": true}}
	diags := check(t, source, manifest)
	assert.Contains(t, codesOf(diags), typechecker.CodeWorkflowUndeclaredCap,
		"the Sql step uses a capability the rule header never declares")
}

package canon_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster/internal/compiler/canon"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
)

// stringLiterals extracts every "..." span in s, in order, for comparing
// string-literal content across a canonicalization pass.
func stringLiterals(s string) []string {
	var out []string
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		if runes[i] != '"' {
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] != '"' {
			j++
		}
		if j < len(runes) {
			out = append(out, string(runes[i:j+1]))
		}
		i = j + 1
	}
	return out
}

func TestCanonicalize_Idempotent(t *testing.T) {
	samples := []struct {
		lex    *lexicon.Lexicon
		source string
	}{
		{lexicon.English(), "Module app.\nRule helloMessage produce Text:\n  Return \"Hello, world!\".\n"},
		{lexicon.English(), "Rule total given a: Int, b: Int produce Int:\n  Return a plus b times two.\n"},
		{lexicon.German(), "Regel begruessung erzeugt Text:\n  Rueckgabe \"Hallo\".\n"},
		{lexicon.ChineseSimplified(), "如果 年龄 大于 18，返回 真。\n"},
	}

	for _, s := range samples {
		c := canon.New(s.lex, nil)
		once, err := c.Canonicalize(s.source)
		require.NoError(t, err)
		twice, err := c.Canonicalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "canonicalizing an already-canonical form must be a no-op for %s", s.lex.ID)
	}
}

func TestCanonicalize_PreservesStringContent(t *testing.T) {
	c := canon.New(lexicon.English(), nil)
	source := `print "driver's license".`
	out, err := c.Canonicalize(source)
	require.NoError(t, err)
	assert.Contains(t, out, `"driver's license"`)
	assert.Equal(t, stringLiterals(source), stringLiterals(out))
}

func TestCanonicalize_PreservesStringContentAcrossLocales(t *testing.T) {
	before := `Return "a, b: c. d's e".`
	c := canon.New(lexicon.English(), nil)
	after, err := c.Canonicalize(before)
	require.NoError(t, err)
	assert.Equal(t, stringLiterals(before), stringLiterals(after))
}

func TestCanonicalize_ChineseWithDomainTranslation(t *testing.T) {
	vocab := &lexicon.DomainVocabulary{
		ID:     "insurance.auto",
		Locale: "zh-CN",
		Structs: []lexicon.IdentifierMapping{
			{Canonical: "Driver", Localized: "驾驶员", Kind: lexicon.KindStruct},
		},
		Fields: []lexicon.IdentifierMapping{
			{Canonical: "age", Localized: "年龄", Kind: lexicon.KindField, Parent: "Driver"},
		},
	}
	index := lexicon.BuildIndex(vocab)

	c := canon.New(lexicon.ChineseSimplified(), index)
	out, err := c.Canonicalize("如果 驾驶员 的 年龄 大于 18，返回 真。\n")
	require.NoError(t, err)

	assert.Contains(t, out, "If")
	assert.Contains(t, out, "Driver.age")
	assert.Contains(t, out, ">")
	assert.Contains(t, out, "18")
	assert.Contains(t, out, "Return")
	assert.Contains(t, out, "true")
	assert.False(t, strings.ContainsRune(out, '。'), "ideographic full stop must fold to ASCII '.'")
	assert.False(t, strings.ContainsRune(out, '，'), "ideographic comma must fold to ASCII ','")
}

func TestCanonicalize_FullWidthDigitsAndPunctuationFold(t *testing.T) {
	c := canon.New(lexicon.ChineseSimplified(), nil)
	out, err := c.Canonicalize("如果 真 大于 １８：\n  返回 真。\n")
	require.NoError(t, err)

	assert.Contains(t, out, "18")
	assert.NotContains(t, out, "１８")
	assert.Contains(t, out, ":")
	assert.NotContains(t, out, "：")
	assert.NotContains(t, out, "。")
}

func TestCanonicalize_FullWidthFoldNotAppliedWhenUnset(t *testing.T) {
	c := canon.New(lexicon.English(), nil)
	out, err := c.Canonicalize("Rule run produce Int:\n  Return １８.\n")
	require.NoError(t, err)
	assert.Contains(t, out, "１８", "English does not set FullWidthToHalf, so full-width runes pass through untouched")
}

func TestCanonicalize_SmartQuotesNormalizedForEnglish(t *testing.T) {
	c := canon.New(lexicon.English(), nil)
	out, err := c.Canonicalize("Return “hi”.\n")
	require.NoError(t, err)
	assert.Contains(t, out, `"hi"`)
}

func TestCanonicalize_ComparisonSynonymsUnified(t *testing.T) {
	c := canon.New(lexicon.English(), nil)
	out, err := c.Canonicalize("Rule run produce Bool:\n  Return age over 18.\n")
	require.NoError(t, err)
	assert.Contains(t, out, ">")
	assert.NotContains(t, out, "over")
}

func TestCanonicalize_UnterminatedStringError(t *testing.T) {
	c := canon.New(lexicon.English(), nil)
	_, err := c.Canonicalize("Return \"unterminated.\n")
	require.Error(t, err)
	var unterminated *canon.UnterminatedStringError
	assert.ErrorAs(t, err, &unterminated)
}

func TestCanonicalize_NewlineAndTabNormalization(t *testing.T) {
	c := canon.New(lexicon.English(), nil)
	out, err := c.Canonicalize("Rule run produce Int:\r\n\tReturn 1.\r\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "\r")
	assert.NotContains(t, out, "\t")
}

func TestCanonicalize_CollapsesInternalWhitespaceButKeepsIndent(t *testing.T) {
	c := canon.New(lexicon.English(), nil)
	out, err := c.Canonicalize("Rule run produce Int:\n    Return   1 .\n")
	require.NoError(t, err)
	assert.Contains(t, out, "    Return 1.")
}

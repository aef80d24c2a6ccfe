package lexicon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/tokenkind"
)

func TestBuiltins_CompleteKeywordCoverage(t *testing.T) {
	for _, lex := range lexicon.Builtins() {
		for _, k := range tokenkind.All() {
			assert.NotEmpty(t, lex.Surface(k), "lexicon %q must map kind %s", lex.ID, k)
		}
		assert.Empty(t, lex.Validate(), "built-in lexicon %q must validate cleanly", lex.ID)
	}
}

func TestBuiltins_StableOrder(t *testing.T) {
	ids := make([]string, 0, 3)
	for _, lex := range lexicon.Builtins() {
		ids = append(ids, lex.ID)
	}
	assert.Equal(t, []string{"en", "de", "zh-cn"}, ids)
}

// englishClone returns a copy of the English lexicon's keyword table that a
// test can mutate without touching the shared built-in.
func englishClone() map[tokenkind.Kind]string {
	src := lexicon.English().Keywords
	out := make(map[tokenkind.Kind]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func englishParts() (lexicon.Punctuation, lexicon.CanonConfig, lexicon.Messages) {
	en := lexicon.English()
	return en.Punctuation, en.Canon, en.Messages
}

func TestNewLexicon_MissingKeywordRejected(t *testing.T) {
	kw := englishClone()
	delete(kw, tokenkind.KindReturn)
	punct, canon, msgs := englishParts()
	_, err := lexicon.NewLexicon("xx", "Test", lexicon.LTR, kw, punct, canon, msgs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RETURN")
}

func TestNewLexicon_DuplicateSurfaceRejected(t *testing.T) {
	kw := englishClone()
	kw[tokenkind.KindIf] = kw[tokenkind.KindMatch] // IF and MATCH share a surface with no allowed group
	punct, canon, msgs := englishParts()
	_, err := lexicon.NewLexicon("xx", "Test", lexicon.LTR, kw, punct, canon, msgs)
	require.Error(t, err)
}

func TestNewLexicon_AllowedDuplicateGroupPermitsSharing(t *testing.T) {
	kw := englishClone()
	kw[tokenkind.KindLessThan] = "under" // collides with UNDER, authorized by the built-in group
	punct, canon, msgs := englishParts()
	lex, err := lexicon.NewLexicon("xx", "Test", lexicon.LTR, kw, punct, canon, msgs)
	require.NoError(t, err)
	assert.Equal(t, "under", lex.Surface(tokenkind.KindLessThan))
}

func TestNewLexicon_UnpairedMarkerRejected(t *testing.T) {
	punct, canon, msgs := englishParts()
	punct.MarkerOpen = "«"
	_, err := lexicon.NewLexicon("xx", "Test", lexicon.LTR, englishClone(), punct, canon, msgs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marker")
}

func TestNewLexicon_MissingStringQuoteRejected(t *testing.T) {
	punct, canon, msgs := englishParts()
	punct.StringQuoteClose = ""
	_, err := lexicon.NewLexicon("xx", "Test", lexicon.LTR, englishClone(), punct, canon, msgs)
	require.Error(t, err)
}

func TestNewLexicon_BadRegexRuleRejected(t *testing.T) {
	punct, canon, msgs := englishParts()
	canon.CustomRules = append(canon.CustomRules, lexicon.RegexRule{Name: "broken", Pattern: "(unclosed"})
	_, err := lexicon.NewLexicon("xx", "Test", lexicon.LTR, englishClone(), punct, canon, msgs)
	require.Error(t, err)
}

func TestNewLexicon_NormalizesID(t *testing.T) {
	punct, canon, msgs := englishParts()
	lex, err := lexicon.NewLexicon("ZH_CN", "Test", lexicon.LTR, englishClone(), punct, canon, msgs)
	require.NoError(t, err)
	assert.Equal(t, "zh-cn", lex.ID)
}

func TestMultiWord_SortedLongestFirst(t *testing.T) {
	en := lexicon.English()
	require.NotEmpty(t, en.MultiWord)
	for i := 1; i < len(en.MultiWord); i++ {
		assert.GreaterOrEqual(t, len(en.MultiWord[i-1]), len(en.MultiWord[i]),
			"multi-word surface forms must be ordered longest first")
	}
	assert.Contains(t, en.MultiWord, "greater than")
}

func sampleVocabulary() *lexicon.DomainVocabulary {
	return &lexicon.DomainVocabulary{
		ID:      "insurance.auto",
		Name:    "Auto Insurance",
		Locale:  "zh-CN",
		Version: "1.0.0",
		Structs: []lexicon.IdentifierMapping{
			{Canonical: "Driver", Localized: "驾驶员", Kind: lexicon.KindStruct, Aliases: []string{"司机"}},
			{Canonical: "Policy", Localized: "保单", Kind: lexicon.KindStruct},
		},
		Fields: []lexicon.IdentifierMapping{
			{Canonical: "age", Localized: "年龄", Kind: lexicon.KindField, Parent: "Driver"},
			{Canonical: "premium", Localized: "保费", Kind: lexicon.KindField, Parent: "Policy"},
		},
		Functions: []lexicon.IdentifierMapping{
			{Canonical: "calculatePremium", Localized: "计算保费", Kind: lexicon.KindFunction},
		},
	}
}

func TestVocabulary_ValidatesCleanly(t *testing.T) {
	assert.Empty(t, sampleVocabulary().Validate())
}

func TestVocabulary_DuplicateStructRejectedCaseInsensitive(t *testing.T) {
	v := sampleVocabulary()
	v.Structs = append(v.Structs, lexicon.IdentifierMapping{Canonical: "driver", Localized: "驾驶者", Kind: lexicon.KindStruct})
	errs := v.Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "driver")
}

func TestVocabulary_FieldRequiresParent(t *testing.T) {
	v := sampleVocabulary()
	v.Fields = append(v.Fields, lexicon.IdentifierMapping{Canonical: "orphan", Localized: "孤儿", Kind: lexicon.KindField})
	assert.NotEmpty(t, v.Validate())
}

func TestBuildIndex_LookupCoversAliases(t *testing.T) {
	idx := lexicon.BuildIndex(sampleVocabulary())

	canonical, ok := idx.Lookup("驾驶员")
	require.True(t, ok)
	assert.Equal(t, "Driver", canonical)

	canonical, ok = idx.Lookup("司机")
	require.True(t, ok)
	assert.Equal(t, "Driver", canonical)

	_, ok = idx.Lookup("missing")
	assert.False(t, ok)
}

func TestBuildIndex_CanonicalLookupIsCaseInsensitive(t *testing.T) {
	idx := lexicon.BuildIndex(sampleVocabulary())
	assert.Equal(t, "驾驶员", idx.CanonicalToLocalized["driver"])
}

func TestBuildIndex_BucketsFieldsByParent(t *testing.T) {
	idx := lexicon.BuildIndex(sampleVocabulary())
	require.Len(t, idx.FieldsByParent["driver"], 1)
	assert.Equal(t, "age", idx.FieldsByParent["driver"][0].Canonical)
	assert.Len(t, idx.ByKind[lexicon.KindStruct], 2)
}

func TestMerge_ConcatenatesInOrderWithoutDedup(t *testing.T) {
	a := sampleVocabulary()
	b := &lexicon.DomainVocabulary{
		ID:     "claims",
		Locale: "zh-CN",
		Structs: []lexicon.IdentifierMapping{
			{Canonical: "Driver", Localized: "理赔驾驶员", Kind: lexicon.KindStruct},
		},
	}

	merged := lexicon.Merge("zh-CN", a, b)
	assert.Equal(t, "insurance.auto+claims", merged.ID)
	assert.Equal(t, "1.0.0", merged.Version)
	require.Len(t, merged.Structs, 3)
	assert.Equal(t, "驾驶员", merged.Structs[0].Localized)
	assert.Equal(t, "理赔驾驶员", merged.Structs[2].Localized, "duplicates are kept, caller curates the domain list")
}

package registry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/registry"
)

func autoVocabulary() *lexicon.DomainVocabulary {
	return &lexicon.DomainVocabulary{
		ID:      "insurance.auto",
		Name:    "Auto Insurance",
		Locale:  "zh-CN",
		Version: "1.0.0",
		Structs: []lexicon.IdentifierMapping{
			{Canonical: "Driver", Localized: "驾驶员", Kind: lexicon.KindStruct},
		},
		Fields: []lexicon.IdentifierMapping{
			{Canonical: "age", Localized: "年龄", Kind: lexicon.KindField, Parent: "Driver"},
		},
	}
}

func claimsVocabulary() *lexicon.DomainVocabulary {
	return &lexicon.DomainVocabulary{
		ID:      "insurance.claims",
		Name:    "Claims",
		Locale:  "zh-CN",
		Version: "1.0.0",
		Functions: []lexicon.IdentifierMapping{
			{Canonical: "fileClaim", Localized: "提交理赔", Kind: lexicon.KindFunction},
		},
	}
}

func TestVocabularyRegistry_RegisterAndGet(t *testing.T) {
	reg := registry.NewVocabularyRegistry(nil)
	require.NoError(t, reg.Register(autoVocabulary()))

	v, ok := reg.Get("", "insurance.auto", "zh-CN")
	require.True(t, ok)
	assert.Equal(t, "Auto Insurance", v.Name)

	v, ok = reg.Get("", "INSURANCE.AUTO", "ZH-CN")
	require.True(t, ok, "lookup keys are case-normalized")
	assert.Equal(t, "Auto Insurance", v.Name)
}

func TestVocabularyRegistry_InvalidRegistrationMutatesNothing(t *testing.T) {
	reg := registry.NewVocabularyRegistry(nil)
	bad := autoVocabulary()
	bad.Fields[0].Parent = ""

	err := reg.Register(bad)
	require.Error(t, err)
	var invalid *registry.InvalidConfiguration
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, reg.Size())
}

func TestVocabularyRegistry_TenantPrecedence(t *testing.T) {
	reg := registry.NewVocabularyRegistry(nil)
	require.NoError(t, reg.Register(autoVocabulary()))

	custom := autoVocabulary()
	custom.Name = "Acme Auto Insurance"
	require.NoError(t, reg.RegisterForTenant("acme", custom))

	v, ok := reg.Get("acme", "insurance.auto", "zh-CN")
	require.True(t, ok)
	assert.Equal(t, "Acme Auto Insurance", v.Name, "tenant entries shadow built-ins")

	v, ok = reg.Get("other", "insurance.auto", "zh-CN")
	require.True(t, ok)
	assert.Equal(t, "Auto Insurance", v.Name, "an unknown tenant falls back to the built-in entry")
}

func TestVocabularyRegistry_IndexLookup(t *testing.T) {
	reg := registry.NewVocabularyRegistry(nil)
	require.NoError(t, reg.Register(autoVocabulary()))

	idx, ok := reg.Index("", "insurance.auto", "zh-CN")
	require.True(t, ok)
	canonical, found := idx.Lookup("驾驶员")
	require.True(t, found)
	assert.Equal(t, "Driver", canonical)
}

func TestVocabularyRegistry_ListIsSortedAndGlobalOnly(t *testing.T) {
	reg := registry.NewVocabularyRegistry(nil)
	require.NoError(t, reg.Register(claimsVocabulary()))
	require.NoError(t, reg.Register(autoVocabulary()))
	require.NoError(t, reg.RegisterForTenant("acme", autoVocabulary()))

	assert.Equal(t, []string{"insurance.auto:zh-cn", "insurance.claims:zh-cn"}, reg.List())
}

func TestVocabularyRegistry_MergeInDomainOrder(t *testing.T) {
	reg := registry.NewVocabularyRegistry(nil)
	require.NoError(t, reg.Register(autoVocabulary()))
	require.NoError(t, reg.Register(claimsVocabulary()))

	merged, err := reg.Merge("", "zh-CN", "insurance.auto", "insurance.claims")
	require.NoError(t, err)
	assert.Equal(t, "insurance.auto+insurance.claims", merged.ID)
	assert.Equal(t, "1.0.0", merged.Version)
	assert.Len(t, merged.Structs, 1)
	assert.Len(t, merged.Functions, 1)
}

func TestVocabularyRegistry_MergeUnknownDomainFails(t *testing.T) {
	reg := registry.NewVocabularyRegistry(nil)
	require.NoError(t, reg.Register(autoVocabulary()))

	_, err := reg.Merge("", "zh-CN", "insurance.auto", "missing.domain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.domain")
}

func TestVocabularyRegistry_ExportImportRoundTrip(t *testing.T) {
	reg := registry.NewVocabularyRegistry(nil)
	require.NoError(t, reg.Register(autoVocabulary()))
	require.NoError(t, reg.Register(claimsVocabulary()))

	doc, err := reg.Export(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, doc.Vocabularies, 2)

	ok, err := doc.VerifyChecksum()
	require.NoError(t, err)
	assert.True(t, ok)

	imported := registry.NewVocabularyRegistry(nil)
	require.NoError(t, imported.Import(doc))
	assert.Equal(t, reg.List(), imported.List())

	v, found := imported.Get("", "insurance.auto", "zh-CN")
	require.True(t, found)
	assert.Equal(t, autoVocabulary().Structs, v.Structs)
	assert.Equal(t, autoVocabulary().Fields, v.Fields)
}

func TestVocabularyRegistry_DocConversionRoundTrip(t *testing.T) {
	original := autoVocabulary()
	restored := registry.FromDoc(registry.ToDoc(original))
	assert.Equal(t, original, restored)
}

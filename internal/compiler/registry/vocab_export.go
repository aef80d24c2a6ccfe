package registry

import (
	"encoding/json"
	"time"

	"github.com/aster-lang/aster/internal/compiler/cache"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
)

type identifierMappingDoc struct {
	Canonical   string   `json:"canonical"`
	Localized   string   `json:"localized"`
	Parent      string   `json:"parent,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description,omitempty"`
}

type vocabMetadataDoc struct {
	Author      string `json:"author,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	Description string `json:"description,omitempty"`
}

// VocabularyDoc mirrors one vocabulary JSON document, used both standalone
// and embedded under an export's "vocabularies" map.
type VocabularyDoc struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Locale     string                 `json:"locale"`
	Version    string                 `json:"version"`
	Metadata   *vocabMetadataDoc      `json:"metadata,omitempty"`
	Structs    []identifierMappingDoc `json:"structs"`
	Fields     []identifierMappingDoc `json:"fields"`
	Functions  []identifierMappingDoc `json:"functions"`
	EnumValues []identifierMappingDoc `json:"enumValues"`
}

func toMappingDocs(ms []lexicon.IdentifierMapping) []identifierMappingDoc {
	if len(ms) == 0 {
		return nil
	}
	out := make([]identifierMappingDoc, 0, len(ms))
	for _, m := range ms {
		out = append(out, identifierMappingDoc{
			Canonical: m.Canonical, Localized: m.Localized, Parent: m.Parent,
			Aliases: m.Aliases, Description: m.Description,
		})
	}
	return out
}

func fromMappingDocs(docs []identifierMappingDoc, kind lexicon.IdentifierKind) []lexicon.IdentifierMapping {
	if len(docs) == 0 {
		return nil
	}
	out := make([]lexicon.IdentifierMapping, 0, len(docs))
	for _, d := range docs {
		out = append(out, lexicon.IdentifierMapping{
			Canonical: d.Canonical, Localized: d.Localized, Kind: kind,
			Parent: d.Parent, Aliases: d.Aliases, Description: d.Description,
		})
	}
	return out
}

// ToDoc converts a DomainVocabulary to its JSON document form.
func ToDoc(v *lexicon.DomainVocabulary) VocabularyDoc {
	doc := VocabularyDoc{
		ID: v.ID, Name: v.Name, Locale: v.Locale, Version: v.Version,
		Structs: toMappingDocs(v.Structs), Fields: toMappingDocs(v.Fields),
		Functions: toMappingDocs(v.Functions), EnumValues: toMappingDocs(v.EnumValues),
	}
	if v.Metadata != nil {
		doc.Metadata = &vocabMetadataDoc{Author: v.Metadata.Author, CreatedAt: v.Metadata.CreatedAt, Description: v.Metadata.Description}
	}
	return doc
}

// FromDoc converts a JSON document back to a DomainVocabulary.
func FromDoc(doc VocabularyDoc) *lexicon.DomainVocabulary {
	v := &lexicon.DomainVocabulary{
		ID: doc.ID, Name: doc.Name, Locale: doc.Locale, Version: doc.Version,
		Structs:    fromMappingDocs(doc.Structs, lexicon.KindStruct),
		Fields:     fromMappingDocs(doc.Fields, lexicon.KindField),
		Functions:  fromMappingDocs(doc.Functions, lexicon.KindFunction),
		EnumValues: fromMappingDocs(doc.EnumValues, lexicon.KindEnumValue),
	}
	if doc.Metadata != nil {
		v.Metadata = &lexicon.VocabMetadata{Author: doc.Metadata.Author, CreatedAt: doc.Metadata.CreatedAt, Description: doc.Metadata.Description}
	}
	return v
}

// VocabularyExport is the full top-level vocabulary JSON document.
type VocabularyExport struct {
	Version       string                   `json:"version"`
	GeneratedAt   string                   `json:"generatedAt"`
	Vocabularies  map[string]VocabularyDoc `json:"vocabularies"`
	Checksum      string                   `json:"checksum"`
}

// Export produces the deterministic vocabulary JSON document for every
// vocabulary in the global (non-tenant) namespace.
func (r *VocabularyRegistry) Export(now time.Time) (*VocabularyExport, error) {
	vocabs := make(map[string]VocabularyDoc)
	r.mu.RLock()
	for k, v := range r.entries {
		if k.tenant == "" {
			vocabs[k.id+":"+k.locale] = ToDoc(v)
		}
	}
	r.mu.RUnlock()

	payload, err := json.Marshal(vocabs)
	if err != nil {
		return nil, err
	}
	checksum := cache.NewChecksum().Sum(payload)

	return &VocabularyExport{
		Version:      "1.0.0",
		GeneratedAt:  now.UTC().Format(time.RFC3339),
		Vocabularies: vocabs,
		Checksum:     checksum,
	}, nil
}

// VerifyChecksum recomputes the checksum of an export's vocabularies
// payload and compares it against the stored value.
func (e *VocabularyExport) VerifyChecksum() (bool, error) {
	bytes, err := json.Marshal(e.Vocabularies)
	if err != nil {
		return false, err
	}
	return cache.NewChecksum().Sum(bytes) == e.Checksum, nil
}

// Import registers every vocabulary in an export document into the global
// namespace.
func (r *VocabularyRegistry) Import(doc *VocabularyExport) error {
	for _, vd := range doc.Vocabularies {
		if err := r.Register(FromDoc(vd)); err != nil {
			return err
		}
	}
	return nil
}

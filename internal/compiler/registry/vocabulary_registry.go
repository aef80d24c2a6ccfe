package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aster-lang/aster/internal/compiler/lexicon"
)

// vocabKey is the (tenant, id, locale) composite key a vocabulary is
// addressed by. Built-in (non-tenant) vocabularies use an empty tenant.
type vocabKey struct {
	tenant string
	id     string
	locale string
}

// VocabularyProvider contributes one or more domain vocabularies during
// plugin discovery.
type VocabularyProvider interface {
	Name() string
	Vocabularies() []*lexicon.DomainVocabulary
}

// VocabularyRegistry is the process-wide store of registered
// DomainVocabularies, keyed by (tenant, id, locale) with tenant precedence
// over built-in entries at lookup time.
type VocabularyRegistry struct {
	mu      sync.RWMutex
	entries map[vocabKey]*lexicon.DomainVocabulary
	indexes map[vocabKey]*lexicon.IdentifierIndex
	logger  *zap.Logger
}

// NewVocabularyRegistry constructs an empty registry.
func NewVocabularyRegistry(logger *zap.Logger) *VocabularyRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VocabularyRegistry{
		entries: map[vocabKey]*lexicon.DomainVocabulary{},
		indexes: map[vocabKey]*lexicon.IdentifierIndex{},
		logger:  logger,
	}
}

// Register validates and inserts a built-in (non-tenant) vocabulary.
func (r *VocabularyRegistry) Register(v *lexicon.DomainVocabulary) error {
	return r.RegisterForTenant("", v)
}

// RegisterForTenant validates and inserts a vocabulary scoped to a tenant
// (empty string for the global/built-in namespace).
func (r *VocabularyRegistry) RegisterForTenant(tenant string, v *lexicon.DomainVocabulary) error {
	if errs := v.Validate(); len(errs) > 0 {
		return &InvalidConfiguration{Errors: errs}
	}
	key := vocabKey{tenant: tenant, id: strings.ToLower(v.ID), locale: strings.ToLower(v.Locale)}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		r.logger.Warn("vocabulary replaced by last writer", zap.String("id", v.ID), zap.String("locale", v.Locale), zap.String("tenant", tenant))
	}
	r.entries[key] = v
	r.indexes[key] = lexicon.BuildIndex(v)
	return nil
}

// Discover runs a set of providers against the global (non-tenant)
// namespace, registering every vocabulary they contribute.
func (r *VocabularyRegistry) Discover(providers ...VocabularyProvider) []error {
	discoveryID := uuid.New().String()
	r.logger.Info("vocabulary plugin discovery",
		zap.String("discovery_id", discoveryID), zap.Int("providers", len(providers)))

	var errs []error
	for _, p := range providers {
		for _, v := range p.Vocabularies() {
			if err := r.Register(v); err != nil {
				errs = append(errs, fmt.Errorf("provider %q: %w", p.Name(), err))
			}
		}
	}
	return errs
}

// Get looks up a vocabulary by (id, locale), preferring a tenant-scoped
// entry over the built-in namespace when tenant is non-empty.
func (r *VocabularyRegistry) Get(tenant, id, locale string) (*lexicon.DomainVocabulary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, locale = strings.ToLower(id), strings.ToLower(locale)
	if tenant != "" {
		if v, ok := r.entries[vocabKey{tenant: tenant, id: id, locale: locale}]; ok {
			return v, true
		}
	}
	v, ok := r.entries[vocabKey{id: id, locale: locale}]
	return v, ok
}

// Index returns the IdentifierIndex for a registered vocabulary.
func (r *VocabularyRegistry) Index(tenant, id, locale string) (*lexicon.IdentifierIndex, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, locale = strings.ToLower(id), strings.ToLower(locale)
	if tenant != "" {
		if idx, ok := r.indexes[vocabKey{tenant: tenant, id: id, locale: locale}]; ok {
			return idx, true
		}
	}
	idx, ok := r.indexes[vocabKey{id: id, locale: locale}]
	return idx, ok
}

// List returns every "id:locale" key in deterministic sorted order, within
// the global namespace only.
func (r *VocabularyRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var keys []string
	for k := range r.entries {
		if k.tenant == "" {
			keys = append(keys, k.id+":"+k.locale)
		}
	}
	sort.Strings(keys)
	return keys
}

// Reset clears the registry. Intended for tests.
func (r *VocabularyRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = map[vocabKey]*lexicon.DomainVocabulary{}
	r.indexes = map[vocabKey]*lexicon.IdentifierIndex{}
}

// Size returns the number of registered vocabularies across all tenants.
func (r *VocabularyRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Merge resolves an ordered list of domain ids against the given locale
// and synthesizes a combined vocabulary via lexicon.Merge.
func (r *VocabularyRegistry) Merge(tenant, locale string, domainIDs ...string) (*lexicon.DomainVocabulary, error) {
	vocabs := make([]*lexicon.DomainVocabulary, 0, len(domainIDs))
	for _, id := range domainIDs {
		v, ok := r.Get(tenant, id, locale)
		if !ok {
			return nil, fmt.Errorf("vocabulary %q not found for locale %q", id, locale)
		}
		vocabs = append(vocabs, v)
	}
	return lexicon.Merge(locale, vocabs...), nil
}

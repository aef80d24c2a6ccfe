// Package registry implements the process-wide Lexicon and Vocabulary
// registries: thread-safe stores with validated registration, plugin
// discovery, deterministic listing, and JSON import/export.
//
// Both registries gate every mutating operation (register, discover,
// reset) behind a single lock so validation and insertion are atomic;
// reads take only the shared read lock, so many concurrent compilations
// can look entries up in parallel.
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

// LexiconProvider contributes one or more lexicons (and, optionally, named
// transformer handlers) during plugin discovery.
type LexiconProvider interface {
	Name() string
	Lexicons() []*lexicon.Lexicon
	Transformers() map[string]func(string) string
}

// LexiconRegistry is the process-wide store of registered Lexicons.
type LexiconRegistry struct {
	mu           sync.RWMutex
	lexicons     map[string]*lexicon.Lexicon // keyed by normalized id
	transformers map[string]func(string) string
	logger       *zap.Logger
}

// NewLexiconRegistry constructs an empty registry.
func NewLexiconRegistry(logger *zap.Logger) *LexiconRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LexiconRegistry{
		lexicons:     map[string]*lexicon.Lexicon{},
		transformers: map[string]func(string) string{},
		logger:       logger,
	}
}

// InvalidConfiguration is returned by Register/Discover when validation
// fails; no state is mutated when this error is returned.
type InvalidConfiguration struct {
	Errors []error
}

func (e *InvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: %d error(s), first: %v", len(e.Errors), e.Errors[0])
}

// Register validates and inserts a lexicon, replacing any existing entry
// at the same id. Registration is atomic: a validation failure never
// mutates state.
func (r *LexiconRegistry) Register(lex *lexicon.Lexicon) error {
	errs := lex.Validate()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, chain := range [][]lexicon.Transformer{lex.Canon.PreTransformers, lex.Canon.PostTransformers} {
		for _, t := range chain {
			if t.Rule != nil {
				continue
			}
			if _, ok := r.transformers[t.Name]; !ok {
				errs = append(errs, fmt.Errorf("lexicon %q: transformer %q is not registered", lex.ID, t.Name))
			}
		}
	}
	if len(errs) > 0 {
		return &InvalidConfiguration{Errors: errs}
	}
	if _, exists := r.lexicons[lex.ID]; exists {
		r.logger.Warn("lexicon replaced by last writer", zap.String("id", lex.ID))
	}
	r.lexicons[lex.ID] = lex
	return nil
}

// Discover runs a set of providers, registering every lexicon they
// contribute. Discovery is additive: a provider whose
// lexicon id collides with an existing entry replaces it (last writer
// wins) and a warning is logged. Duplicate transformer names across
// providers fail discovery for that provider only.
func (r *LexiconRegistry) Discover(providers ...LexiconProvider) []error {
	discoveryID := uuid.New().String()
	r.logger.Info("lexicon plugin discovery",
		zap.String("discovery_id", discoveryID), zap.Int("providers", len(providers)))

	var errs []error
	for _, p := range providers {
		localTransformers := map[string]func(string) string{}
		conflict := false
		for name, fn := range p.Transformers() {
			r.mu.RLock()
			_, taken := r.transformers[name]
			r.mu.RUnlock()
			if taken {
				errs = append(errs, fmt.Errorf("provider %q: transformer name %q already registered", p.Name(), name))
				conflict = true
				continue
			}
			localTransformers[name] = fn
		}
		if conflict {
			continue
		}
		r.mu.Lock()
		for name, fn := range localTransformers {
			r.transformers[name] = fn
		}
		r.mu.Unlock()
		for _, lex := range p.Lexicons() {
			if err := r.Register(lex); err != nil {
				errs = append(errs, fmt.Errorf("provider %q: %w", p.Name(), err))
			}
		}
	}
	return errs
}

// Get looks up a lexicon by id, normalizing it the way NewLexicon does
// (lowercase, '_' to '-'), so callers may pass either form.
func (r *LexiconRegistry) Get(id string) (*lexicon.Lexicon, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lex, ok := r.lexicons[strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), "_", "-")]
	return lex, ok
}

// Transformer looks up a registered named transformer handler.
func (r *LexiconRegistry) Transformer(name string) (func(string) string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.transformers[name]
	return fn, ok
}

// List returns every registered lexicon id in deterministic sorted order.
func (r *LexiconRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.lexicons))
	for id := range r.lexicons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset clears the registry. Intended for tests.
func (r *LexiconRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lexicons = map[string]*lexicon.Lexicon{}
	r.transformers = map[string]func(string) string{}
}

// Size returns the number of registered lexicons.
func (r *LexiconRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lexicons)
}

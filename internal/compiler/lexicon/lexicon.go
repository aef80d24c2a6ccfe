// Package lexicon defines the language-skin data a Lexicon and a
// DomainVocabulary carry, along with the built-in English, Simplified
// Chinese, and German skins. Values in this package are immutable once
// constructed; mutation happens only through the constructors below.
package lexicon

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aster-lang/aster/internal/compiler/tokenkind"
)

// Direction is a lexicon's text direction.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// WhitespaceMode controls how the canonicalizer collapses runs of spaces.
type WhitespaceMode string

const (
	WhitespaceEnglish WhitespaceMode = "ENGLISH"
	WhitespaceChinese WhitespaceMode = "CHINESE"
	WhitespaceMixed   WhitespaceMode = "MIXED"
)

// RegexRule is a named, compiled text-rewrite rule.
type RegexRule struct {
	Name        string
	Pattern     string
	Replacement string
	compiled    *regexp.Regexp
}

// Compiled returns the rule's compiled regexp, compiling it lazily and
// caching the result. Panics are never raised here; compile errors are
// surfaced by Lexicon.Validate at load time.
func (r *RegexRule) Compiled() (*regexp.Regexp, error) {
	if r.compiled != nil {
		return r.compiled, nil
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	r.compiled = re
	return re, nil
}

// CompoundCloserMode controls how a compound keyword pattern's scope ends.
type CompoundCloserMode string

const (
	CloseOnDedent  CompoundCloserMode = "dedent"
	CloseOnNewline CompoundCloserMode = "newline"
)

// CompoundPattern describes a multi-token surface idiom, e.g. an opener
// keyword that introduces a run of contextual keywords closed by dedent or
// newline.
type CompoundPattern struct {
	Name               string
	Opener             tokenkind.Kind
	ContextualKeywords []tokenkind.Kind
	Closer             CompoundCloserMode
}

// Transformer is a named text rewrite, either a registered handler name
// (resolved against the registry's transformer table, see registry
// package) or an inline regex-rule descriptor.
type Transformer struct {
	Name string
	Rule *RegexRule // nil when Name refers to a registered handler
}

// CanonConfig is the canonicalization configuration attached to a lexicon.
type CanonConfig struct {
	FullWidthToHalf  bool
	WhitespaceMode   WhitespaceMode
	RemoveArticles   bool
	Articles         []string
	CustomRules      []RegexRule
	AllowedDuplicates [][]tokenkind.Kind
	CompoundPatterns []CompoundPattern
	PreTransformers  []Transformer
	PostTransformers []Transformer
}

// Validate compiles every custom rule once and reports compile failures.
func (c *CanonConfig) Validate() []error {
	var errs []error
	for i := range c.CustomRules {
		if _, err := c.CustomRules[i].Compiled(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, t := range c.PreTransformers {
		if t.Rule != nil {
			if _, err := t.Rule.Compiled(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, t := range c.PostTransformers {
		if t.Rule != nil {
			if _, err := t.Rule.Compiled(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

// Punctuation carries a lexicon's structural punctuation.
type Punctuation struct {
	StatementEnd     string
	ListSeparator    string
	EnumSeparator    string
	BlockStart       string
	StringQuoteOpen  string
	StringQuoteClose string
	MarkerOpen       string // optional marker, e.g. "?" suffix-open equivalent
	MarkerClose      string
}

// Messages carries a lexicon's localized diagnostic message templates.
type Messages struct {
	UnexpectedToken    string
	ExpectedKeyword    string
	UndefinedVariable  string
	TypeMismatch       string
	UnterminatedString string
	InvalidIndentation string
}

// Lexicon is the complete language-skin data for one locale.
type Lexicon struct {
	ID            string // normalized: lowercase, dashes
	Name          string
	Direction     Direction
	Keywords      map[tokenkind.Kind]string
	MultiWord     []string // multi-word keyword surface forms, longest-first once sorted
	Punctuation   Punctuation
	Canon         CanonConfig
	Messages      Messages
	Overlays      map[string]any
}

// normalizeID lowercases and normalizes a BCP-47-ish locale id.
func normalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.ReplaceAll(id, "_", "-")
}

// NewLexicon constructs and validates a Lexicon, normalizing its id and
// deriving its sorted multi-word keyword list.
func NewLexicon(id, name string, dir Direction, keywords map[tokenkind.Kind]string, punct Punctuation, canon CanonConfig, msgs Messages) (*Lexicon, error) {
	lex := &Lexicon{
		ID:          normalizeID(id),
		Name:        name,
		Direction:   dir,
		Keywords:    keywords,
		Punctuation: punct,
		Canon:       canon,
		Messages:    msgs,
		Overlays:    map[string]any{},
	}
	lex.deriveMultiWord()
	if errs := lex.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid lexicon %q: %v", lex.ID, errs)
	}
	return lex, nil
}

// deriveMultiWord collects every surface form containing whitespace and
// sorts them longest-first, per the canonicalizer's mandatory
// longest-match-first rule.
func (l *Lexicon) deriveMultiWord() {
	var forms []string
	for _, surface := range l.Keywords {
		if strings.ContainsAny(surface, " \t　") {
			forms = append(forms, surface)
		}
	}
	sort.Slice(forms, func(i, j int) bool {
		if len(forms[i]) != len(forms[j]) {
			return len(forms[i]) > len(forms[j])
		}
		return forms[i] < forms[j]
	})
	l.MultiWord = forms
}

// allowedGroupIndex returns the allowed-duplicate group k belongs to: the
// index of a built-in group, an offset negative index for one of the
// lexicon's own groups, or -1 when k is in no group.
func (l *Lexicon) allowedGroupIndex(k tokenkind.Kind) int {
	for i, group := range tokenkind.AllowedDuplicateGroups {
		for _, gk := range group {
			if gk == k {
				return i
			}
		}
	}
	for i, group := range l.Canon.AllowedDuplicates {
		for _, gk := range group {
			if gk == k {
				return -100 - i // offset so it never collides with the built-in index space
			}
		}
	}
	return -1
}

// Validate enforces the lexicon invariants: keyword completeness,
// uniqueness modulo allowed-duplicate groups, punctuation presence and
// pairing, and string-quote presence. It returns every violation found;
// an empty slice means the lexicon is valid.
func (l *Lexicon) Validate() []error {
	var errs []error

	for _, k := range tokenkind.All() {
		surface, ok := l.Keywords[k]
		if !ok || strings.TrimSpace(surface) == "" {
			errs = append(errs, fmt.Errorf("lexicon %q: missing surface form for kind %s", l.ID, k))
		}
	}

	bySurface := map[string][]tokenkind.Kind{}
	for k, surface := range l.Keywords {
		bySurface[surface] = append(bySurface[surface], k)
	}
	for surface, kinds := range bySurface {
		if len(kinds) < 2 {
			continue
		}
		group := l.allowedGroupIndex(kinds[0])
		consistent := group != -1
		for _, k := range kinds[1:] {
			if l.allowedGroupIndex(k) != group {
				consistent = false
			}
		}
		if !consistent {
			errs = append(errs, fmt.Errorf("lexicon %q: surface form %q is shared by %v without an allowed-duplicate group", l.ID, surface, kinds))
		}
	}

	if l.Punctuation.StatementEnd == "" {
		errs = append(errs, fmt.Errorf("lexicon %q: missing statementEnd punctuation", l.ID))
	}
	if l.Punctuation.BlockStart == "" {
		errs = append(errs, fmt.Errorf("lexicon %q: missing blockStart punctuation", l.ID))
	}
	if l.Punctuation.StringQuoteOpen == "" || l.Punctuation.StringQuoteClose == "" {
		errs = append(errs, fmt.Errorf("lexicon %q: string quote open/close must both be defined", l.ID))
	}
	if (l.Punctuation.MarkerOpen == "") != (l.Punctuation.MarkerClose == "") {
		errs = append(errs, fmt.Errorf("lexicon %q: markerOpen/markerClose must be paired", l.ID))
	}
	// enumSeparator may equal listSeparator; only presence is validated.
	if l.Punctuation.ListSeparator == "" {
		errs = append(errs, fmt.Errorf("lexicon %q: missing listSeparator punctuation", l.ID))
	}
	if l.Punctuation.EnumSeparator == "" {
		errs = append(errs, fmt.Errorf("lexicon %q: missing enumSeparator punctuation", l.ID))
	}

	errs = append(errs, l.Canon.Validate()...)
	return errs
}

// CompletenessWarnings reports non-blocking warnings for a lexicon that is
// otherwise valid. The only warning it produces flags a lexicon with no
// custom rules and no pre- or post-translation transformers.
func (l *Lexicon) CompletenessWarnings() []string {
	var warnings []string
	if len(l.Canon.CustomRules) == 0 && len(l.Canon.PreTransformers) == 0 && len(l.Canon.PostTransformers) == 0 {
		warnings = append(warnings, fmt.Sprintf("lexicon %q defines no canonicalization transformers", l.ID))
	}
	return warnings
}

// Surface returns the surface string for a semantic kind.
func (l *Lexicon) Surface(k tokenkind.Kind) string {
	return l.Keywords[k]
}

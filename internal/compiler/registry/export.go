package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aster-lang/aster/internal/compiler/cache"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/tokenkind"
)

// lexiconDoc mirrors one entry of the lexicon JSON schema's "lexicons" map.
type lexiconDoc struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Direction     string         `json:"direction"`
	Keywords      map[string]string `json:"keywords"`
	Punctuation   punctuationDoc `json:"punctuation"`
	Canon         canonDoc       `json:"canonicalization"`
	Messages      messagesDoc    `json:"messages"`
	Overlays      map[string]any `json:"overlays,omitempty"`
}

type punctuationDoc struct {
	StatementEnd     string `json:"statementEnd"`
	ListSeparator    string `json:"listSeparator"`
	EnumSeparator    string `json:"enumSeparator"`
	BlockStart       string `json:"blockStart"`
	StringQuoteOpen  string `json:"stringQuoteOpen"`
	StringQuoteClose string `json:"stringQuoteClose"`
	MarkerOpen       string `json:"markerOpen,omitempty"`
	MarkerClose      string `json:"markerClose,omitempty"`
}

type ruleDoc struct {
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

type transformerDoc struct {
	Name        string `json:"name,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	Replacement string `json:"replacement,omitempty"`
}

type compoundPatternDoc struct {
	Name               string   `json:"name"`
	Opener             string   `json:"opener"`
	ContextualKeywords []string `json:"contextualKeywords"`
	Closer             string   `json:"closer"`
}

type canonDoc struct {
	FullWidthToHalf   bool                 `json:"fullWidthToHalf"`
	WhitespaceMode    string               `json:"whitespaceMode"`
	RemoveArticles    bool                 `json:"removeArticles"`
	Articles          []string             `json:"articles,omitempty"`
	CustomRules       []ruleDoc            `json:"customRules,omitempty"`
	AllowedDuplicates [][]string           `json:"allowedDuplicates,omitempty"`
	CompoundPatterns  []compoundPatternDoc `json:"compoundPatterns,omitempty"`
	PreTransformers   []transformerDoc     `json:"preTranslationTransformers,omitempty"`
	PostTransformers  []transformerDoc     `json:"postTranslationTransformers,omitempty"`
}

type messagesDoc struct {
	UnexpectedToken    string `json:"unexpectedToken"`
	ExpectedKeyword    string `json:"expectedKeyword"`
	UndefinedVariable  string `json:"undefinedVariable"`
	TypeMismatch       string `json:"typeMismatch"`
	UnterminatedString string `json:"unterminatedString"`
	InvalidIndentation string `json:"invalidIndentation"`
}

// LexiconExport is the full top-level lexicon JSON document.
type LexiconExport struct {
	Version     string                `json:"version"`
	GeneratedAt string                `json:"generatedAt"`
	TokenKinds  []string              `json:"tokenKinds"`
	Categories  map[string][]string   `json:"categories"`
	Lexicons    map[string]lexiconDoc `json:"lexicons"`
	Checksum    string                `json:"checksum"`
}

func toLexiconDoc(lex *lexicon.Lexicon) lexiconDoc {
	kw := make(map[string]string, len(lex.Keywords))
	for k, v := range lex.Keywords {
		kw[string(k)] = v
	}
	var customRules []ruleDoc
	for _, r := range lex.Canon.CustomRules {
		customRules = append(customRules, ruleDoc{Name: r.Name, Pattern: r.Pattern, Replacement: r.Replacement})
	}
	var allowed [][]string
	for _, group := range lex.Canon.AllowedDuplicates {
		var g []string
		for _, k := range group {
			g = append(g, string(k))
		}
		allowed = append(allowed, g)
	}
	var compounds []compoundPatternDoc
	for _, cp := range lex.Canon.CompoundPatterns {
		var contextual []string
		for _, k := range cp.ContextualKeywords {
			contextual = append(contextual, string(k))
		}
		compounds = append(compounds, compoundPatternDoc{
			Name: cp.Name, Opener: string(cp.Opener),
			ContextualKeywords: contextual, Closer: string(cp.Closer),
		})
	}
	var pre, post []transformerDoc
	toDoc := func(t lexicon.Transformer) transformerDoc {
		if t.Rule != nil {
			return transformerDoc{Name: t.Rule.Name, Pattern: t.Rule.Pattern, Replacement: t.Rule.Replacement}
		}
		return transformerDoc{Name: t.Name}
	}
	for _, t := range lex.Canon.PreTransformers {
		pre = append(pre, toDoc(t))
	}
	for _, t := range lex.Canon.PostTransformers {
		post = append(post, toDoc(t))
	}
	return lexiconDoc{
		ID: lex.ID, Name: lex.Name, Direction: string(lex.Direction),
		Keywords: kw,
		Punctuation: punctuationDoc{
			StatementEnd: lex.Punctuation.StatementEnd, ListSeparator: lex.Punctuation.ListSeparator,
			EnumSeparator: lex.Punctuation.EnumSeparator, BlockStart: lex.Punctuation.BlockStart,
			StringQuoteOpen: lex.Punctuation.StringQuoteOpen, StringQuoteClose: lex.Punctuation.StringQuoteClose,
			MarkerOpen: lex.Punctuation.MarkerOpen, MarkerClose: lex.Punctuation.MarkerClose,
		},
		Canon: canonDoc{
			FullWidthToHalf: lex.Canon.FullWidthToHalf, WhitespaceMode: string(lex.Canon.WhitespaceMode),
			RemoveArticles: lex.Canon.RemoveArticles, Articles: lex.Canon.Articles,
			CustomRules: customRules, AllowedDuplicates: allowed,
			CompoundPatterns: compounds,
			PreTransformers:  pre, PostTransformers: post,
		},
		Messages: messagesDoc{
			UnexpectedToken: lex.Messages.UnexpectedToken, ExpectedKeyword: lex.Messages.ExpectedKeyword,
			UndefinedVariable: lex.Messages.UndefinedVariable, TypeMismatch: lex.Messages.TypeMismatch,
			UnterminatedString: lex.Messages.UnterminatedString, InvalidIndentation: lex.Messages.InvalidIndentation,
		},
		Overlays: lex.Overlays,
	}
}

// Export produces the deterministic lexicon JSON document: sorted keys,
// a SHA-256 checksum over the canonicalized "lexicons" sub-object.
func (r *LexiconRegistry) Export(now time.Time) (*LexiconExport, error) {
	ids := r.List() // already sorted
	lexicons := make(map[string]lexiconDoc, len(ids))
	for _, id := range ids {
		lex, _ := r.Get(id)
		lexicons[id] = toLexiconDoc(lex)
	}
	lexiconsBytes, err := json.Marshal(lexicons)
	if err != nil {
		return nil, err
	}
	checksum := cache.NewChecksum().Sum(lexiconsBytes)

	categories := map[string][]string{}
	for cat, kinds := range tokenkind.Categories() {
		var names []string
		for _, k := range kinds {
			names = append(names, string(k))
		}
		sort.Strings(names)
		categories[string(cat)] = names
	}
	var allKinds []string
	for _, k := range tokenkind.All() {
		allKinds = append(allKinds, string(k))
	}

	return &LexiconExport{
		Version:     "1.0.0",
		GeneratedAt: now.UTC().Format(time.RFC3339),
		TokenKinds:  allKinds,
		Categories:  categories,
		Lexicons:    lexicons,
		Checksum:    checksum,
	}, nil
}

// VerifyChecksum recomputes the checksum of an export's lexicons payload
// and compares it against the stored value.
func (e *LexiconExport) VerifyChecksum() (bool, error) {
	bytes, err := json.Marshal(e.Lexicons)
	if err != nil {
		return false, err
	}
	return cache.NewChecksum().Sum(bytes) == e.Checksum, nil
}

// Import parses a lexicon export, constructs and validates each Lexicon,
// and registers it. Returns the first validation error encountered,
// leaving previously-registered lexicons from this call in place
// (all-or-nothing applies per entry at the Register level, not across
// the whole import).
func (r *LexiconRegistry) Import(doc *LexiconExport) error {
	for id, ld := range doc.Lexicons {
		kw := make(map[tokenkind.Kind]string, len(ld.Keywords))
		for k, v := range ld.Keywords {
			kw[tokenkind.Kind(k)] = v
		}
		punct := lexicon.Punctuation{
			StatementEnd: ld.Punctuation.StatementEnd, ListSeparator: ld.Punctuation.ListSeparator,
			EnumSeparator: ld.Punctuation.EnumSeparator, BlockStart: ld.Punctuation.BlockStart,
			StringQuoteOpen: ld.Punctuation.StringQuoteOpen, StringQuoteClose: ld.Punctuation.StringQuoteClose,
			MarkerOpen: ld.Punctuation.MarkerOpen, MarkerClose: ld.Punctuation.MarkerClose,
		}
		var customRules []lexicon.RegexRule
		for _, r := range ld.Canon.CustomRules {
			customRules = append(customRules, lexicon.RegexRule{Name: r.Name, Pattern: r.Pattern, Replacement: r.Replacement})
		}
		var allowed [][]tokenkind.Kind
		for _, g := range ld.Canon.AllowedDuplicates {
			var group []tokenkind.Kind
			for _, k := range g {
				group = append(group, tokenkind.Kind(k))
			}
			allowed = append(allowed, group)
		}
		toTransformer := func(t transformerDoc) lexicon.Transformer {
			if t.Pattern != "" {
				return lexicon.Transformer{Name: t.Name, Rule: &lexicon.RegexRule{Name: t.Name, Pattern: t.Pattern, Replacement: t.Replacement}}
			}
			return lexicon.Transformer{Name: t.Name}
		}
		var pre, post []lexicon.Transformer
		for _, t := range ld.Canon.PreTransformers {
			pre = append(pre, toTransformer(t))
		}
		for _, t := range ld.Canon.PostTransformers {
			post = append(post, toTransformer(t))
		}
		var compounds []lexicon.CompoundPattern
		for _, cp := range ld.Canon.CompoundPatterns {
			var contextual []tokenkind.Kind
			for _, k := range cp.ContextualKeywords {
				contextual = append(contextual, tokenkind.Kind(k))
			}
			compounds = append(compounds, lexicon.CompoundPattern{
				Name: cp.Name, Opener: tokenkind.Kind(cp.Opener),
				ContextualKeywords: contextual, Closer: lexicon.CompoundCloserMode(cp.Closer),
			})
		}
		canon := lexicon.CanonConfig{
			FullWidthToHalf: ld.Canon.FullWidthToHalf, WhitespaceMode: lexicon.WhitespaceMode(ld.Canon.WhitespaceMode),
			RemoveArticles: ld.Canon.RemoveArticles, Articles: ld.Canon.Articles,
			CustomRules: customRules, AllowedDuplicates: allowed,
			CompoundPatterns: compounds,
			PreTransformers:  pre, PostTransformers: post,
		}
		msgs := lexicon.Messages{
			UnexpectedToken: ld.Messages.UnexpectedToken, ExpectedKeyword: ld.Messages.ExpectedKeyword,
			UndefinedVariable: ld.Messages.UndefinedVariable, TypeMismatch: ld.Messages.TypeMismatch,
			UnterminatedString: ld.Messages.UnterminatedString, InvalidIndentation: ld.Messages.InvalidIndentation,
		}
		lex, err := lexicon.NewLexicon(id, ld.Name, lexicon.Direction(ld.Direction), kw, punct, canon, msgs)
		if err != nil {
			return fmt.Errorf("import %q: %w", id, err)
		}
		lex.Overlays = ld.Overlays
		if err := r.Register(lex); err != nil {
			return err
		}
	}
	return nil
}

// Package canon implements the Canonicalizer: the multi-pass text rewrite
// that turns arbitrary locale-specific source into the single canonical
// ASCII English-keyword form the lexer and parser accept.
//
// Each pass is a small, named, idempotent rewrite over the non-string
// text; string contents are protected by opaque placeholders before any
// rewrite runs and restored verbatim at the end, so no pass can ever
// corrupt user-authored string literals. Line comments are not protected:
// they are deleted during protection and do not appear in the output.
package canon

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/aster-lang/aster/internal/compiler/lexicon"
)

// UnterminatedStringError reports an unterminated string literal found
// during protection (pass 4).
type UnterminatedStringError struct {
	Line, Col int
}

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("unterminated string literal at line %d, column %d", e.Line, e.Col)
}

// Canonicalizer normalizes source text written in one registered lexicon
// into canonical ASCII English-keyword form, optionally translating
// domain identifiers through an attached vocabulary index.
type Canonicalizer struct {
	lex      *lexicon.Lexicon
	index    *lexicon.IdentifierIndex // optional; nil disables identifier translation
	handlers map[string]func(string) string
}

// New constructs a Canonicalizer bound to a lexicon and an optional
// identifier index.
func New(lex *lexicon.Lexicon, index *lexicon.IdentifierIndex) *Canonicalizer {
	return &Canonicalizer{lex: lex, index: index}
}

// SetHandlers installs the named-transformer table (normally the lexicon
// registry's plugin-contributed handlers) that transformer-chain entries
// without an inline rule resolve against. A name with no handler is a
// no-op; registry validation flags it at load time.
func (c *Canonicalizer) SetHandlers(handlers map[string]func(string) string) {
	c.handlers = handlers
}

var (
	reCRLF        = regexp.MustCompile(`\r\n|\r`)
	reSmartQuotes = strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
	reLessThan    = regexp.MustCompile(`(?i)\b(under|less than)\b`)
	reGreaterThan = regexp.MustCompile(`(?i)\b(over|more than|greater than)\b`)
	reInternalWS  = regexp.MustCompile(`[ \t]{2,}`)
	reSpaceBeforePunct = regexp.MustCompile(`[ \t]+([,.:;])`)
)

// placeholderSentinel delimits a protected string/comment span. It is a
// Unicode private-use-area code point, which unicode.IsLetter/IsDigit both
// report false for, so placeholders are never mistaken for identifier or
// keyword text by any later pass.
const placeholderSentinel = '\ue000'

// Canonicalize runs the full 13-step pipeline over src and returns the
// canonical ASCII form. It is idempotent: Canonicalize(Canonicalize(s)) ==
// Canonicalize(s) for any s accepted by the same lexicon.
func (c *Canonicalizer) Canonicalize(src string) (string, error) {
	// 1. newline unification
	text := reCRLF.ReplaceAllString(src, "\n")

	// 2. tabs -> 2 spaces
	text = strings.ReplaceAll(text, "\t", "  ")

	// 3. strip BOM
	text = strings.TrimPrefix(text, "\ufeff")

	// 4. protect strings & comments
	protected, placeholders, err := c.protect(text)
	if err != nil {
		return "", err
	}

	// 5. pre-translation transformers (locale-specific, e.g. the zh-CN
	// possessive and ideographic-comma folds); these run on the original
	// full-width punctuation, before the general fold below narrows
	// anything it doesn't have a dedicated transformer for.
	protected = c.applyTransformers(protected, c.lex.Canon.PreTransformers)

	// 6. full-width folding (locale-gated)
	if c.lex.Canon.FullWidthToHalf {
		protected = foldFullWidth(protected)
	}

	// 7. article removal
	if c.lex.Canon.RemoveArticles {
		protected = removeArticles(protected, c.lex.Canon.Articles)
	}

	// 8. multi-word keyword normalization (longest match first)
	protected = normalizeKeywords(protected, c.lex)

	// 9. identifier translation
	if c.index != nil {
		protected = c.translateIdentifiers(protected)
	}

	// 10. post-translation transformers
	protected = c.applyTransformers(protected, c.lex.Canon.PostTransformers)

	// 11. comparison-synonym unification
	protected = reLessThan.ReplaceAllString(protected, "<")
	protected = reGreaterThan.ReplaceAllString(protected, ">")

	// 12. whitespace collapse (leading indentation preserved)
	protected = collapseWhitespace(protected)

	// 13. restore placeholders
	return restore(protected, placeholders), nil
}

// applyTransformers rewrites text through an ordered chain of named or
// inline-regex transformers.
func (c *Canonicalizer) applyTransformers(text string, chain []lexicon.Transformer) string {
	for _, t := range chain {
		if t.Rule != nil {
			re, err := t.Rule.Compiled()
			if err != nil {
				continue // corrupt runtime state; caller's Validate should have caught this at load time
			}
			text = re.ReplaceAllString(text, t.Rule.Replacement)
			continue
		}
		if fn, ok := c.handlers[t.Name]; ok {
			text = fn(text)
		}
	}
	return text
}

func removeArticles(text string, articles []string) string {
	for _, a := range articles {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(a) + `\b\s+`)
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// normalizeKeywords rewrites every multi-word (and single-word) surface
// form in lex's keyword table to its English-canonical spelling, longest
// match first.
func normalizeKeywords(text string, lex *lexicon.Lexicon) string {
	english := lexicon.English()
	type pair struct{ from, to string }
	var pairs []pair
	for k, surface := range lex.Keywords {
		canonical := english.Surface(k)
		if surface == "" || surface == canonical {
			continue
		}
		pairs = append(pairs, pair{from: surface, to: canonical})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if len(pairs[i].from) != len(pairs[j].from) {
			return len(pairs[i].from) > len(pairs[j].from)
		}
		return pairs[i].from < pairs[j].from
	})
	for _, p := range pairs {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(p.from))
		text = replaceBounded(text, re, p.to)
	}
	return text
}

// replaceBounded rewrites every match of re with replacement, but only
// when the match is not embedded in a larger identifier run: the rune
// immediately before and after the match must not be identifier
// characters. Go's \b is ASCII-only, so CJK keyword surfaces need this
// manual boundary check to keep compound identifiers intact.
func replaceBounded(text string, re *regexp.Regexp, replacement string) string {
	matches := re.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	prev := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 {
			r, _ := utf8.DecodeLastRuneInString(text[:start])
			if isIdentRune(r) {
				continue
			}
		}
		if end < len(text) {
			r, _ := utf8.DecodeRuneInString(text[end:])
			if isIdentRune(r) {
				continue
			}
		}
		b.WriteString(text[prev:start])
		b.WriteString(replacement)
		prev = end
	}
	b.WriteString(text[prev:])
	return b.String()
}

// isIdentRune reports whether r can appear inside an identifier run: a
// maximal run of Unicode letters, digits, underscore, and mixed-script
// characters. Placeholder sentinels are never identifier runes, so
// protected string/comment spans are untouched.
func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// translateIdentifiers scans text left-to-right for maximal identifier
// runs and rewrites any run found in the attached index to its canonical
// spelling. Keyword surface forms are protected because step 8 already
// rewrote them to their (different, English-cased) canonical spelling
// before this pass runs, so an identifier index collision with a keyword
// surface form cannot occur for a correctly authored vocabulary.
func (c *Canonicalizer) translateIdentifiers(text string) string {
	var b strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if !isIdentRune(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		start := i
		for i < len(runes) && isIdentRune(runes[i]) {
			i++
		}
		run := string(runes[start:i])
		if canonical, ok := c.index.Lookup(run); ok {
			b.WriteString(canonical)
		} else {
			b.WriteString(run)
		}
	}
	return b.String()
}

// collapseWhitespace collapses runs of internal spaces/tabs to a single
// space on each line while preserving leading indentation exactly, and
// trims whitespace immediately before , . : ;
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		indentLen := 0
		for indentLen < len(line) && line[indentLen] == ' ' {
			indentLen++
		}
		indent := line[:indentLen]
		rest := line[indentLen:]
		rest = reInternalWS.ReplaceAllString(rest, " ")
		rest = reSpaceBeforePunct.ReplaceAllString(rest, "$1")
		lines[i] = indent + rest
	}
	return strings.Join(lines, "\n")
}

// foldFullWidth applies NFC normalization and full-width-to-half-width
// folding, used when the lexicon's CanonConfig.FullWidthToHalf is set.
// width.Narrow already folds the fullwidth colon (a canonical
// fullwidth/halfwidth pair), but the ideographic full stop is ordinary
// CJK punctuation with no such pairing, so it is folded explicitly here;
// the colon is folded alongside it for clarity rather than relying on
// width.Narrow's coverage implicitly. Without this, the zh-CN skin's
// statement- and block-terminating punctuation would never reach the
// lexer as the ASCII "." and ":" it expects.
func foldFullWidth(text string) string {
	text = norm.NFC.String(text)
	text = width.Narrow.String(text)
	text = strings.ReplaceAll(text, "。", ".")
	text = strings.ReplaceAll(text, "：", ":")
	return text
}

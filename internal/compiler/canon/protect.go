package canon

import (
	"fmt"
	"strings"
)

// protect replaces every string literal in text with an opaque
// placeholder and deletes every line comment outright, returning the
// rewritten text and the slice of original string spans (indexed by
// placeholder ordinal) needed to restore them once every other pass has
// run. String boundaries are the active lexicon's quote characters; smart
// quotes are pre-normalized to straight quotes for the English skin only.
// Comments are identified here (not in a later pass) so that a "//" or
// "#" occurring inside a string literal is never mistaken for a comment
// marker: strings and comments are recognized in the same left-to-right
// scan, strings winning when both could start at the same position.
func (c *Canonicalizer) protect(text string) (string, []string, error) {
	if c.lex.ID == "en" {
		text = reSmartQuotes.Replace(text)
	}

	open, close := c.lex.Punctuation.StringQuoteOpen, c.lex.Punctuation.StringQuoteClose
	var placeholders []string
	var b strings.Builder

	runes := []rune(text)
	openRunes, closeRunes := []rune(open), []rune(close)
	line, col := 1, 1

	advance := func(r rune) {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	matchesAt := func(i int, target []rune) bool {
		if i+len(target) > len(runes) {
			return false
		}
		for j, r := range target {
			if runes[i+j] != r {
				return false
			}
		}
		return true
	}

	i := 0
	for i < len(runes) {
		// line comment: deleted outright, leaving a blank standalone line
		// or truncating an inline one; never placeholdered or restored.
		isSlashComment := runes[i] == '/' && i+1 < len(runes) && runes[i+1] == '/'
		if isSlashComment || runes[i] == '#' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			continue
		}

		if matchesAt(i, openRunes) {
			startLine, startCol := line, col
			start := i
			for k := range openRunes {
				advance(runes[i+k])
			}
			i += len(openRunes)
			closed := false
			for i < len(runes) {
				if runes[i] == '\\' && i+1 < len(runes) {
					advance(runes[i])
					i++
					advance(runes[i])
					i++
					continue
				}
				if runes[i] == '\n' {
					break // raw newline inside a string: unterminated
				}
				if matchesAt(i, closeRunes) {
					for k := range closeRunes {
						advance(runes[i+k])
					}
					i += len(closeRunes)
					closed = true
					break
				}
				advance(runes[i])
				i++
			}
			if !closed {
				return "", nil, &UnterminatedStringError{Line: startLine, Col: startCol}
			}
			literal := string(runes[start:i])
			placeholders = append(placeholders, literal)
			fmt.Fprintf(&b, "%c%d%c", placeholderSentinel, len(placeholders)-1, placeholderSentinel)
			continue
		}

		advance(runes[i])
		b.WriteRune(runes[i])
		i++
	}

	return b.String(), placeholders, nil
}

// restore substitutes every placeholder in text with its original span.
func restore(text string, placeholders []string) string {
	var b strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if runes[i] != placeholderSentinel {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i + 1
		start := j
		for j < len(runes) && runes[j] != placeholderSentinel {
			j++
		}
		var ordinal int
		fmt.Sscanf(string(runes[start:j]), "%d", &ordinal)
		if ordinal >= 0 && ordinal < len(placeholders) {
			b.WriteString(placeholders[ordinal])
		}
		i = j + 1
	}
	return b.String()
}

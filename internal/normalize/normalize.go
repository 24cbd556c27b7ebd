// Package normalize reduces free-text business descriptions to the token set
// that represents the core business activity. The normalization is pure and
// idempotent: identical input always yields identical output, and normalizing
// an already-normalized text is a no-op.
package normalize

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// boilerplate lists corporate-structure and filler tokens that carry no
// signal about what a company actually does.
var boilerplate = map[string]struct{}{
	"plc": {}, "ltd": {}, "limited": {}, "llp": {}, "inc": {},
	"corp": {}, "corporation": {}, "company": {}, "companies": {},
	"group": {}, "holding": {}, "holdings": {},
	"the": {}, "and": {}, "of": {}, "in": {}, "on": {}, "for": {},
	"with": {}, "to": {}, "at": {}, "by": {}, "or": {}, "an": {}, "as": {},
	"its": {}, "through": {},
	"subsidiaries": {}, "subsidiary": {}, "engaged": {}, "engages": {},
	"business": {}, "businesses": {}, "activities": {}, "operations": {},
	"services": {}, "provision": {}, "other": {},
}

// foldDiacritics strips combining marks after NFD decomposition, so that
// "café" and "cafe" normalize to the same token.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Tokens normalizes text into a sorted, de-duplicated token set. Empty or
// whitespace-only input yields an empty set, never an error.
func Tokens(text string) []string {
	folded, _, err := transform.String(foldDiacritics, text)
	if err != nil {
		// Fold failures only occur on malformed UTF-8; fall back to the raw
		// bytes so scoring still degrades instead of aborting.
		folded = text
	}

	lower := strings.ToLower(folded)

	// Punctuation and digits separate tokens; numeric noise (registration
	// numbers, years) never describes an activity.
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, noise := boilerplate[f]; noise {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}

	sort.Strings(tokens)
	return tokens
}

// Join renders a token set back to a canonical single string, used for
// edit-distance comparison between two normalized texts.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

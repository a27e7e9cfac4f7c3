// Package keyword derives keyword and technology sets from project text.
//
// Keywords come from tags, title tokens, and the technology vocabulary;
// technologies are tokens recognized against a curated vocabulary of
// tool, framework, and language names. All outputs are lower-cased,
// deduplicated, and sorted so extraction is deterministic regardless of
// input iteration order.
package keyword

import (
	"regexp"
	"sort"
	"strings"
)

// MinTokenLength is the minimum length for a token to qualify as a keyword.
const MinTokenLength = 3

// tokenRegex matches alphanumeric sequences.
var tokenRegex = regexp.MustCompile(`[a-zA-Z0-9]+`)

// Tokenize splits text on non-alphanumeric boundaries and lowercases
// every token. No length or stopword filtering is applied here.
func Tokenize(text string) []string {
	words := tokenRegex.FindAllString(text, -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, strings.ToLower(w))
	}
	return tokens
}

// QualifyingTokens returns the lower-cased tokens of text that meet the
// minimum length and are not stopwords.
func QualifyingTokens(text string) []string {
	var tokens []string
	for _, tok := range Tokenize(text) {
		if len(tok) < MinTokenLength {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// sortedSet deduplicates and sorts a token list.
// Returns an empty (non-nil) slice for empty input for consistent API behavior.
func sortedSet(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

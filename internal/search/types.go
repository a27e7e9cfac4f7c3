// Package search ranks project sections against free-text queries.
//
// Scoring is a weighted sum of lexical signals: query-token matches
// against a section's title (highest weight), its content (medium), and
// membership in the section's keyword set or the parent project's
// technology set (lower, additive). There is no inverted index and no
// fuzzy matching; the corpus is small and already resolved in memory.
package search

import (
	"github.com/showfolio/showmcp/internal/document"
)

// Project is the searchable view of one already-indexed project.
// Projects are supplied in caller order, which doubles as the first
// tie-break for equal scores.
type Project struct {
	// ID is the project id.
	ID string

	// Technologies is the project's lower-cased technology set.
	Technologies []string

	// Sections are the project's sections in document order.
	Sections []document.Section
}

// ScoredSection is one ranked search result.
type ScoredSection struct {
	// ProjectID is the owning project.
	ProjectID string `json:"project_id"`

	// SectionIndex is the section's position in document order.
	SectionIndex int `json:"section_index"`

	// Section is the matched section.
	Section document.Section `json:"section"`

	// Score is the relevance score; always > 0 for returned results.
	Score float64 `json:"score"`

	// MatchedTerms are the query tokens that contributed to the score.
	MatchedTerms []string `json:"matched_terms,omitempty"`

	// projectPos is the project's position in the caller-supplied order,
	// kept for the tie-break.
	projectPos int
}

// Weights configures the relative importance of the match signals.
type Weights struct {
	// Title is the weight for a query token matching the section title.
	Title float64

	// Content is the weight for a substring match in the section body.
	Content float64

	// Keyword is the weight for membership in the section's keyword set.
	Keyword float64

	// Technology is the weight for membership in the parent project's
	// technology set.
	Technology float64
}

// DefaultWeights returns the default signal weights.
// Title matches dominate, content matches rank above bare keyword or
// technology hits.
func DefaultWeights() Weights {
	return Weights{
		Title:      10,
		Content:    5,
		Keyword:    3,
		Technology: 2,
	}
}

// Config configures the search engine.
type Config struct {
	// DefaultLimit is the result count used when the caller passes 0.
	DefaultLimit int

	// MaxLimit caps the requested result count.
	MaxLimit int

	// Weights are the signal weights.
	Weights Weights
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 10,
		MaxLimit:     100,
		Weights:      DefaultWeights(),
	}
}

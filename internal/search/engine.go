package search

import (
	"sort"
	"strings"

	"github.com/showfolio/showmcp/internal/document"
)

// Engine ranks sections across a set of already-resolved projects.
// It is stateless and safe for concurrent use.
type Engine struct {
	config Config
}

// NewEngine creates a search engine with the given configuration.
// Zero-valued config fields fall back to defaults.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = def.Weights
	}
	return &Engine{config: cfg}
}

// Rank scores every section of every supplied project against the query
// and returns the top results, sorted by descending score. Sections
// scoring zero are excluded. Ties are broken by the project's position in
// the input order, then by the section's document order.
func (e *Engine) Rank(projects []Project, query string, limit int) []ScoredSection {
	tokens := tokenizeQuery(query)
	if len(tokens) == 0 {
		return nil
	}

	limit = e.clampLimit(limit)

	var results []ScoredSection
	for projectPos, project := range projects {
		techSet := toSet(project.Technologies)
		for sectionIdx, section := range project.Sections {
			score, matched := e.scoreSection(section, techSet, tokens)
			if score <= 0 {
				continue
			}
			results = append(results, ScoredSection{
				ProjectID:    project.ID,
				SectionIndex: sectionIdx,
				Section:      section,
				Score:        score,
				MatchedTerms: matched,
				projectPos:   projectPos,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].projectPos != results[j].projectPos {
			return results[i].projectPos < results[j].projectPos
		}
		return results[i].SectionIndex < results[j].SectionIndex
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// scoreSection computes the weighted additive score of one section.
// A token may score on several signals simultaneously.
func (e *Engine) scoreSection(section document.Section, techSet map[string]struct{}, tokens []string) (float64, []string) {
	title := strings.ToLower(section.Title)
	content := strings.ToLower(section.Content)
	keywords := toSet(section.Keywords)

	var score float64
	var matched []string
	for _, token := range tokens {
		tokenScore := 0.0
		if title != "" && strings.Contains(title, token) {
			tokenScore += e.config.Weights.Title
		}
		if content != "" && strings.Contains(content, token) {
			tokenScore += e.config.Weights.Content
		}
		if _, ok := keywords[token]; ok {
			tokenScore += e.config.Weights.Keyword
		}
		if _, ok := techSet[token]; ok {
			tokenScore += e.config.Weights.Technology
		}
		if tokenScore > 0 {
			score += tokenScore
			matched = append(matched, token)
		}
	}
	return score, matched
}

func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		return e.config.DefaultLimit
	}
	if limit > e.config.MaxLimit {
		return e.config.MaxLimit
	}
	return limit
}

// tokenizeQuery splits a query on whitespace and lowercases each token.
func tokenizeQuery(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

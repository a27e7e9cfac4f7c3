package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showfolio/showmcp/internal/document"
)

func testProject(id string, technologies []string, sections ...document.Section) Project {
	return Project{ID: id, Technologies: technologies, Sections: sections}
}

func TestRank_RelevanceScenario(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	project := testProject("p1", []string{"react", "typescript"},
		document.Section{
			Kind:     document.SectionHeading,
			Level:    2,
			Title:    "React Components",
			Keywords: []string{"components", "react"},
		},
		document.Section{
			Kind:     document.SectionParagraph,
			Content:  "The UI is written in TypeScript end to end.",
			Keywords: []string{"typescript", "written"},
		},
	)

	results := engine.Rank([]Project{project}, "React TypeScript", 5)
	require.NotEmpty(t, results)

	top := results[0]
	hasReact := strings.Contains(strings.ToLower(top.Section.Title), "react") ||
		strings.Contains(strings.ToLower(top.Section.Content), "react")
	for _, kw := range top.Section.Keywords {
		hasReact = hasReact || kw == "react"
	}
	assert.True(t, hasReact, "top result should match react in title, content, or keywords")
}

func TestRank_TitleOutweighsContent(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	project := testProject("p1", nil,
		document.Section{Kind: document.SectionParagraph, Content: "caching strategies for go services"},
		document.Section{Kind: document.SectionHeading, Title: "Caching"},
	)

	results := engine.Rank([]Project{project}, "caching", 10)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].SectionIndex, "title match ranks first")
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRank_SignalsAreAdditive(t *testing.T) {
	w := DefaultWeights()
	engine := NewEngine(DefaultConfig())

	project := testProject("p1", []string{"redis"},
		document.Section{
			Kind:     document.SectionHeading,
			Title:    "Redis Pipeline",
			Keywords: []string{"redis", "pipeline"},
		},
	)

	results := engine.Rank([]Project{project}, "redis", 10)
	require.Len(t, results, 1)
	// Title + keyword + technology all fire for the same token.
	assert.InDelta(t, w.Title+w.Keyword+w.Technology, results[0].Score, 1e-9)
	assert.Equal(t, []string{"redis"}, results[0].MatchedTerms)
}

func TestRank_ZeroScoresExcluded(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	project := testProject("p1", nil,
		document.Section{Kind: document.SectionParagraph, Content: "nothing relevant here"},
	)

	results := engine.Rank([]Project{project}, "quantum", 10)
	assert.Empty(t, results)
}

func TestRank_EmptyQuery(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	project := testProject("p1", nil,
		document.Section{Kind: document.SectionParagraph, Content: "text"},
	)

	assert.Empty(t, engine.Rank([]Project{project}, "", 10))
	assert.Empty(t, engine.Rank([]Project{project}, "   ", 10))
}

func TestRank_TieBreakByProjectOrderThenSectionOrder(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	section := document.Section{Kind: document.SectionParagraph, Content: "go rules"}
	first := testProject("a", nil, section, section)
	second := testProject("b", nil, section)

	results := engine.Rank([]Project{second, first}, "go", 10)
	require.Len(t, results, 3)

	// Input order: b before a; within a, document order.
	assert.Equal(t, "b", results[0].ProjectID)
	assert.Equal(t, "a", results[1].ProjectID)
	assert.Equal(t, 0, results[1].SectionIndex)
	assert.Equal(t, "a", results[2].ProjectID)
	assert.Equal(t, 1, results[2].SectionIndex)
}

func TestRank_LimitTruncatesAfterSorting(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	project := testProject("p1", nil,
		document.Section{Kind: document.SectionParagraph, Content: "go"},
		document.Section{Kind: document.SectionHeading, Title: "Go"},
		document.Section{Kind: document.SectionParagraph, Content: "more go"},
	)

	results := engine.Rank([]Project{project}, "go", 2)
	require.Len(t, results, 2)
	// Highest score survives truncation.
	assert.Equal(t, 1, results[0].SectionIndex)
}

func TestRank_DefaultAndMaxLimit(t *testing.T) {
	engine := NewEngine(Config{DefaultLimit: 2, MaxLimit: 3})

	sections := make([]document.Section, 6)
	for i := range sections {
		sections[i] = document.Section{Kind: document.SectionParagraph, Content: "go"}
	}
	project := testProject("p1", nil, sections...)

	assert.Len(t, engine.Rank([]Project{project}, "go", 0), 2)
	assert.Len(t, engine.Rank([]Project{project}, "go", 50), 3)
}

func TestRank_CaseInsensitive(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	project := testProject("p1", nil,
		document.Section{Kind: document.SectionHeading, Title: "GraphQL Gateway"},
	)

	results := engine.Rank([]Project{project}, "GRAPHQL", 10)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"graphql"}, results[0].MatchedTerms)
}

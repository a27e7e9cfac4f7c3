package keyword

import (
	"strings"

	"github.com/showfolio/showmcp/internal/document"
)

// Input carries the textual inputs of one project.
type Input struct {
	Title         string
	Description   string
	BriefOverview string
	Sections      []document.Section
	Tags          []string
}

// Result holds the extracted keyword and technology sets.
// Both slices are lower-cased, deduplicated, and sorted.
type Result struct {
	Keywords     []string
	Technologies []string
}

// Extract derives keywords and technologies from all textual inputs of a
// project. Output is deterministic for identical inputs regardless of the
// iteration order of tags or sections.
//
// Keywords are the union of tag names (lower-cased verbatim), qualifying
// title tokens, and all detected technologies. Technologies are vocabulary
// matches across title, description, overview, section text, and tags.
func Extract(in Input) Result {
	var text strings.Builder
	text.WriteString(in.Title)
	text.WriteByte('\n')
	text.WriteString(in.Description)
	text.WriteByte('\n')
	text.WriteString(in.BriefOverview)
	text.WriteByte('\n')
	for _, sec := range in.Sections {
		text.WriteString(sec.Title)
		text.WriteByte('\n')
		text.WriteString(sec.Content)
		text.WriteByte('\n')
	}
	for _, tag := range in.Tags {
		text.WriteString(tag)
		text.WriteByte('\n')
	}

	lowerText := strings.ToLower(text.String())
	tokenSet := make(map[string]struct{})
	for _, tok := range Tokenize(lowerText) {
		tokenSet[tok] = struct{}{}
	}

	technologies := matchTechnologies(lowerText, tokenSet)

	keywords := make([]string, 0, len(in.Tags)+len(technologies))
	for _, tag := range in.Tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			keywords = append(keywords, tag)
		}
	}
	keywords = append(keywords, QualifyingTokens(in.Title)...)
	keywords = append(keywords, technologies...)

	return Result{
		Keywords:     sortedSet(keywords),
		Technologies: sortedSet(technologies),
	}
}

// Annotate returns a copy of sections with per-section keywords filled in
// from each section's own title and content.
func Annotate(sections []document.Section) []document.Section {
	if sections == nil {
		return nil
	}
	out := make([]document.Section, len(sections))
	for i, sec := range sections {
		sec.Keywords = sortedSet(QualifyingTokens(sec.Title + " " + sec.Content))
		out[i] = sec
	}
	return out
}

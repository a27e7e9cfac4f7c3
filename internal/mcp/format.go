package mcp

import (
	"fmt"
	"strings"

	"github.com/showfolio/showmcp/internal/index"
	"github.com/showfolio/showmcp/internal/search"
)

// FormatSearchResults formats ranked sections as markdown.
func FormatSearchResults(query string, results []search.ScoredSection) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q", query)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Search Results for %q\n\n", query))
	sb.WriteString(fmt.Sprintf("Found %d result", len(results)))
	if len(results) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")

	for i, r := range results {
		formatResult(&sb, i+1, r)
	}

	return sb.String()
}

func formatResult(sb *strings.Builder, num int, r search.ScoredSection) {
	title := r.Section.Title
	if title == "" {
		title = fmt.Sprintf("Section %d", r.SectionIndex+1)
	}
	sb.WriteString(fmt.Sprintf("### %d. %s (%s)\n\n", num, title, r.ProjectID))
	sb.WriteString(fmt.Sprintf("Score: %.1f", r.Score))
	if len(r.MatchedTerms) > 0 {
		sb.WriteString(fmt.Sprintf(" | Matched: %s", strings.Join(r.MatchedTerms, ", ")))
	}
	sb.WriteString("\n\n")

	if content := strings.TrimSpace(r.Section.Content); content != "" {
		sb.WriteString(truncate(content, 500))
		sb.WriteString("\n\n")
	}
}

// FormatSummary formats a project summary as markdown.
func FormatSummary(sum *index.Summary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", sum.Title))

	if sum.BriefOverview != "" {
		sb.WriteString(sum.BriefOverview)
		sb.WriteString("\n\n")
	}
	if len(sum.Technologies) > 0 {
		sb.WriteString(fmt.Sprintf("**Technologies:** %s\n\n", strings.Join(sum.Technologies, ", ")))
	}
	if len(sum.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("**Tags:** %s\n\n", strings.Join(sum.Tags, ", ")))
	}

	sb.WriteString(fmt.Sprintf("%d section", sum.ContentStructure.TotalSections))
	if sum.ContentStructure.TotalSections != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(fmt.Sprintf(", %d media item", sum.MediaCount))
	if sum.MediaCount != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n")

	if len(sum.ContentStructure.Headings) > 0 {
		sb.WriteString("\n**Contents:**\n")
		for _, h := range sum.ContentStructure.Headings {
			sb.WriteString(fmt.Sprintf("- %s\n", h))
		}
	}

	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

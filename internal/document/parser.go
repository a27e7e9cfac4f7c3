package document

import (
	"strings"
)

// SectionKind classifies a parsed section by its source block kind.
type SectionKind string

const (
	SectionHeading   SectionKind = "heading"
	SectionParagraph SectionKind = "paragraph"
	SectionOther     SectionKind = "other"
)

// Node types with dedicated section handling.
const (
	nodeTypeHeading   = "heading"
	nodeTypeParagraph = "paragraph"
)

// Section is one flattened, searchable unit of text derived from a single
// top-level document block. Immutable after creation.
type Section struct {
	// Kind is the section classification.
	Kind SectionKind

	// Level is the heading level (1-6), 0 for non-headings.
	Level int

	// Title is the flattened heading text, empty for non-headings.
	Title string

	// Content is the flattened body text, empty for headings.
	Content string

	// Keywords are lower-cased, deduplicated tokens derived from the
	// section's own text. Populated by the keyword extractor.
	Keywords []string
}

// Parse walks a rich-document tree and emits one Section per top-level
// block node, in document order. A nil root produces no sections; this is
// not an error. Malformed or empty blocks still produce a section so that
// len(sections) always equals the number of top-level blocks.
func Parse(root *Node) []Section {
	if root == nil {
		return nil
	}

	sections := make([]Section, 0, len(root.Children))
	for _, block := range root.Children {
		if block == nil {
			block = &Node{}
		}
		sections = append(sections, parseBlock(block))
	}
	return sections
}

// parseBlock converts a single top-level block into a Section.
func parseBlock(block *Node) Section {
	switch block.Type {
	case nodeTypeHeading:
		return Section{
			Kind:  SectionHeading,
			Level: block.Level,
			Title: FlattenText(block),
		}
	case nodeTypeParagraph:
		return Section{
			Kind:    SectionParagraph,
			Content: FlattenText(block),
		}
	default:
		return Section{
			Kind:    SectionOther,
			Content: FlattenText(block),
		}
	}
}

// FlattenText concatenates all descendant text-leaf values of a node,
// separated by single spaces and trimmed. Nodes with no extractable text
// yield the empty string.
func FlattenText(n *Node) string {
	if n == nil {
		return ""
	}

	var parts []string
	collectText(n, &parts)
	return strings.Join(parts, " ")
}

func collectText(n *Node, parts *[]string) {
	if n == nil {
		return
	}
	if text := strings.TrimSpace(n.Text); text != "" {
		*parts = append(*parts, text)
	}
	for _, child := range n.Children {
		collectText(child, parts)
	}
}

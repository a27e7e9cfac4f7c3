// Package index builds and caches searchable project indexes.
//
// A ProjectIndex is the unit cached and searched: the parsed sections,
// extracted keyword/technology sets, media context, and a content hash of
// every input that influenced it. Indexes are rebuilt in memory from the
// source record; they are never persisted.
package index

import (
	"time"

	"github.com/showfolio/showmcp/internal/document"
)

// MediaContext describes one media item attached to a project,
// order preserved from the source record.
type MediaContext struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	AltText     string `json:"alt_text,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectIndex is the cached, searchable representation of one project's
// content. It is created whole on a cache miss and always replaced
// wholesale, never partially updated.
type ProjectIndex struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`

	// Keywords and Technologies are lower-cased, deduplicated, sorted sets.
	Keywords     []string `json:"keywords"`
	Technologies []string `json:"technologies"`

	// Sections are in source document order.
	Sections []document.Section `json:"sections"`

	// MediaContext preserves the order of the project's media items.
	MediaContext []MediaContext `json:"media_context"`

	// ContentHash fingerprints every input that influenced this index.
	// Callers compare it after an external re-fetch to detect staleness.
	ContentHash string `json:"content_hash"`

	IndexedAt time.Time `json:"indexed_at"`
}

// ContentStructure summarizes the shape of a project's article content.
type ContentStructure struct {
	// TotalSections equals len(index.Sections).
	TotalSections int `json:"total_sections"`

	// Headings lists the section titles in document order.
	Headings []string `json:"headings,omitempty"`

	// HasArticle is false when the project has no article content.
	HasArticle bool `json:"has_article"`
}

// Summary is the lightweight projection of an indexed project consumed by
// the AI layer.
type Summary struct {
	ProjectID        string           `json:"project_id"`
	Title            string           `json:"title"`
	BriefOverview    string           `json:"brief_overview,omitempty"`
	Description      string           `json:"description,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	Technologies     []string         `json:"technologies,omitempty"`
	MediaCount       int              `json:"media_count"`
	ContentStructure ContentStructure `json:"content_structure"`
}

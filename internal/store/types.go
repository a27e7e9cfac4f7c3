// Package store defines the project record store contract and its
// implementations (SQLite, JSON file directory, in-memory).
//
// The indexer treats the store as an external collaborator: records are
// read-only inputs, fetched by id. Store failures propagate unchanged;
// the indexer adds no retry or backoff.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/showfolio/showmcp/internal/document"
)

// ErrNotFound indicates the requested project id does not exist in the store.
var ErrNotFound = errors.New("project not found")

// MediaItem is one media attachment of a project, order preserved.
type MediaItem struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	AltText     string `json:"alt_text,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectRecord is the raw project record supplied by the store.
// The indexer never mutates it.
type ProjectRecord struct {
	ID            string
	Title         string
	Description   string
	BriefOverview string

	// Content is the rich-document tree, nil when the project has no
	// article content.
	Content *document.Node

	Media     []MediaItem
	Tags      []string
	UpdatedAt time.Time
}

// SummaryProjection is the lightweight projection used to assemble
// project summaries without re-reading the full record.
type SummaryProjection struct {
	Title         string
	BriefOverview string
	Description   string
	Tags          []string
}

// ProjectStore is the contract the indexer consumes from its environment.
type ProjectStore interface {
	// FetchByID returns the full record for id, or ErrNotFound.
	FetchByID(ctx context.Context, id string) (*ProjectRecord, error)

	// FetchSummary returns the summary projection for id, or ErrNotFound.
	FetchSummary(ctx context.Context, id string) (*SummaryProjection, error)

	// Close releases store resources.
	Close() error
}

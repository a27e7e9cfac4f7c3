package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/showfolio/showmcp/internal/document"
)

// FileStore is a ProjectStore backed by a directory of <id>.json records.
// It pairs with the watcher, which evicts cache entries when a record
// file changes on disk.
type FileStore struct {
	dir string
}

var _ ProjectStore = (*FileStore)(nil)

// fileRecord is the on-disk JSON shape of a project record.
// Content is kept as raw JSON so the document package owns its decoding.
type fileRecord struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	BriefOverview string          `json:"brief_overview,omitempty"`
	Content       json.RawMessage `json:"content,omitempty"`
	Media         []MediaItem     `json:"media,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewFileStore opens a directory-backed project store, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the record files.
func (s *FileStore) Dir() string {
	return s.dir
}

// FetchByID implements ProjectStore.
func (s *FileStore) FetchByID(_ context.Context, id string) (*ProjectRecord, error) {
	data, err := os.ReadFile(s.recordPath(id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", id, err)
	}

	var raw fileRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", id, err)
	}

	content, err := document.DecodeTree(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode content for %s: %w", id, err)
	}

	record := &ProjectRecord{
		ID:            raw.ID,
		Title:         raw.Title,
		Description:   raw.Description,
		BriefOverview: raw.BriefOverview,
		Content:       content,
		Media:         raw.Media,
		Tags:          raw.Tags,
		UpdatedAt:     raw.UpdatedAt,
	}
	if record.ID == "" {
		record.ID = id
	}
	return record, nil
}

// FetchSummary implements ProjectStore.
func (s *FileStore) FetchSummary(ctx context.Context, id string) (*SummaryProjection, error) {
	record, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SummaryProjection{
		Title:         record.Title,
		BriefOverview: record.BriefOverview,
		Description:   record.Description,
		Tags:          record.Tags,
	}, nil
}

// SaveProject writes a record file. Used by `showmcp seed` and tests.
func (s *FileStore) SaveProject(record *ProjectRecord) error {
	raw := fileRecord{
		ID:            record.ID,
		Title:         record.Title,
		Description:   record.Description,
		BriefOverview: record.BriefOverview,
		Content:       document.Encode(record.Content),
		Media:         record.Media,
		Tags:          record.Tags,
		UpdatedAt:     record.UpdatedAt,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project %s: %w", record.ID, err)
	}
	if err := os.WriteFile(s.recordPath(record.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write project %s: %w", record.ID, err)
	}
	return nil
}

// IDs returns the project ids present in the directory.
func (s *FileStore) IDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list store directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return ids, nil
}

// ProjectIDFromPath extracts the project id from a record file path.
// Returns empty string for paths that are not record files.
func ProjectIDFromPath(path string) string {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".json") {
		return ""
	}
	return strings.TrimSuffix(base, ".json")
}

// Close implements ProjectStore.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/showfolio/showmcp/internal/document"
)

// SQLiteStore is a ProjectStore backed by a SQLite database.
// WAL mode allows concurrent readers while the CMS side writes.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ ProjectStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	brief_overview TEXT NOT NULL DEFAULT '',
	content_json   TEXT NOT NULL DEFAULT 'null',
	tags_json      TEXT NOT NULL DEFAULT '[]',
	media_json     TEXT NOT NULL DEFAULT '[]',
	updated_at     TEXT NOT NULL DEFAULT ''
);
`

// NewSQLiteStore opens (creating if needed) a SQLite-backed project store.
// If path is empty, an in-memory database is used for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := ":memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		dsn = path
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}

	// WAL must be set via PRAGMA for modernc.org/sqlite; DSN params
	// may be ignored.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// SaveProject inserts or replaces a project record.
// Used by `showmcp seed` and tests; the indexer itself never writes.
func (s *SQLiteStore) SaveProject(ctx context.Context, record *ProjectRecord) error {
	tagsJSON, err := json.Marshal(record.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	mediaJSON, err := json.Marshal(record.Media)
	if err != nil {
		return fmt.Errorf("failed to encode media: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, description, brief_overview, content_json, tags_json, media_json, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			brief_overview = excluded.brief_overview,
			content_json = excluded.content_json,
			tags_json = excluded.tags_json,
			media_json = excluded.media_json,
			updated_at = excluded.updated_at`,
		record.ID,
		record.Title,
		record.Description,
		record.BriefOverview,
		string(document.Encode(record.Content)),
		string(tagsJSON),
		string(mediaJSON),
		record.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save project %s: %w", record.ID, err)
	}
	return nil
}

// FetchByID implements ProjectStore.
func (s *SQLiteStore) FetchByID(ctx context.Context, id string) (*ProjectRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, brief_overview, content_json, tags_json, media_json, updated_at
		FROM projects WHERE id = ?`, id)

	var record ProjectRecord
	var contentJSON, tagsJSON, mediaJSON, updatedAt string
	err := row.Scan(&record.ID, &record.Title, &record.Description,
		&record.BriefOverview, &contentJSON, &tagsJSON, &mediaJSON, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %s: %w", id, err)
	}

	record.Content, err = document.DecodeTree([]byte(contentJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to decode content for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &record.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(mediaJSON), &record.Media); err != nil {
		return nil, fmt.Errorf("failed to decode media for %s: %w", id, err)
	}
	if updatedAt != "" {
		if ts, perr := time.Parse(time.RFC3339Nano, updatedAt); perr == nil {
			record.UpdatedAt = ts
		}
	}

	return &record, nil
}

// FetchSummary implements ProjectStore.
func (s *SQLiteStore) FetchSummary(ctx context.Context, id string) (*SummaryProjection, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT title, brief_overview, description, tags_json
		FROM projects WHERE id = ?`, id)

	var summary SummaryProjection
	var tagsJSON string
	err := row.Scan(&summary.Title, &summary.BriefOverview, &summary.Description, &tagsJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summary %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &summary.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for %s: %w", id, err)
	}

	return &summary, nil
}

// IDs returns all project ids in the store.
func (s *SQLiteStore) IDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close implements ProjectStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

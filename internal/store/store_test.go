package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showfolio/showmcp/internal/document"
)

func sampleRecord(id string) *ProjectRecord {
	return &ProjectRecord{
		ID:            id,
		Title:         "Realtime Dashboard",
		Description:   "Live metrics dashboard",
		BriefOverview: "Streams metrics over WebSocket.",
		Content: &document.Node{
			Children: []*document.Node{
				{Type: "heading", Level: 2, Children: []*document.Node{{Type: "text", Text: "Design"}}},
				{Type: "paragraph", Children: []*document.Node{{Type: "text", Text: "Built with Go."}}},
			},
		},
		Media: []MediaItem{
			{ID: "m1", Type: "image", URL: "https://cdn.example.com/m1.png", AltText: "screenshot"},
		},
		Tags:      []string{"go", "dashboard"},
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestInMemoryStore_FetchByID(t *testing.T) {
	s := NewInMemoryStore()
	s.Put(sampleRecord("p1"))

	record, err := s.FetchByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Realtime Dashboard", record.Title)

	_, err = s.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_FetchSummary(t *testing.T) {
	s := NewInMemoryStore()
	s.Put(sampleRecord("p1"))

	summary, err := s.FetchSummary(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Realtime Dashboard", summary.Title)
	assert.Equal(t, []string{"go", "dashboard"}, summary.Tags)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s, err := NewSQLiteStore("") // in-memory
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SaveProject(ctx, sampleRecord("p1")))

	record, err := s.FetchByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", record.ID)
	assert.Equal(t, "Realtime Dashboard", record.Title)
	assert.Equal(t, []string{"go", "dashboard"}, record.Tags)
	require.Len(t, record.Media, 1)
	assert.Equal(t, "m1", record.Media[0].ID)
	assert.True(t, record.UpdatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))

	sections := document.Parse(record.Content)
	require.Len(t, sections, 2)
	assert.Equal(t, "Design", sections[0].Title)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	s, err := NewSQLiteStore("")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FetchSummary(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	s, err := NewSQLiteStore("")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SaveProject(ctx, sampleRecord("p1")))

	updated := sampleRecord("p1")
	updated.Title = "Renamed"
	require.NoError(t, s.SaveProject(ctx, updated))

	record, err := s.FetchByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", record.Title)

	ids, err := s.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.SaveProject(sampleRecord("p1")))

	record, err := s.FetchByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Realtime Dashboard", record.Title)

	sections := document.Parse(record.Content)
	require.Len(t, sections, 2)
	assert.Equal(t, "Built with Go.", sections[1].Content)

	ids, err := s.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestFileStore_NotFound(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectIDFromPath(t *testing.T) {
	assert.Equal(t, "p1", ProjectIDFromPath("/data/projects/p1.json"))
	assert.Equal(t, "", ProjectIDFromPath("/data/projects/readme.md"))
}

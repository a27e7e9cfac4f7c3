package index

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "github.com/showfolio/showmcp/internal/errors"
	"github.com/showfolio/showmcp/internal/document"
	"github.com/showfolio/showmcp/internal/store"
)

// countingStore wraps records and counts fetches per project id.
type countingStore struct {
	mu      sync.Mutex
	records map[string]*store.ProjectRecord
	fetches map[string]int
	failAll error
}

func newCountingStore(records ...*store.ProjectRecord) *countingStore {
	s := &countingStore{
		records: make(map[string]*store.ProjectRecord),
		fetches: make(map[string]int),
	}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *countingStore) FetchByID(_ context.Context, id string) (*store.ProjectRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches[id]++
	if s.failAll != nil {
		return nil, s.failAll
	}
	r, ok := s.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return r, nil
}

func (s *countingStore) FetchSummary(_ context.Context, id string) (*store.SummaryProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &store.SummaryProjection{
		Title:         r.Title,
		BriefOverview: r.BriefOverview,
		Description:   r.Description,
		Tags:          r.Tags,
	}, nil
}

func (s *countingStore) Close() error { return nil }

func (s *countingStore) fetchCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches[id]
}

func chatRecord() *store.ProjectRecord {
	return &store.ProjectRecord{
		ID:            "chat",
		Title:         "Realtime Chat Platform",
		Description:   "Chat rooms with presence",
		BriefOverview: "A React frontend over a WebSocket backend",
		Content: &document.Node{
			Type: "doc",
			Children: []*document.Node{
				{Type: "heading", Level: 2, Text: "Frontend"},
				{Type: "paragraph", Children: []*document.Node{
					{Type: "text", Text: "Built with React and TypeScript for type safety."},
				}},
				{Type: "heading", Level: 2, Text: "Backend"},
				{Type: "paragraph", Children: []*document.Node{
					{Type: "text", Text: "Go server with Redis pub/sub."},
				}},
			},
		},
		Media: []store.MediaItem{
			{ID: "m1", Type: "image", URL: "https://cdn/m1.png"},
			{ID: "m2", Type: "video", URL: "https://cdn/m2.mp4"},
		},
		Tags:      []string{"Chat", "Realtime"},
		UpdatedAt: time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC),
	}
}

func storeRecord(id, title, text string) *store.ProjectRecord {
	return &store.ProjectRecord{
		ID:    id,
		Title: title,
		Content: &document.Node{
			Type: "doc",
			Children: []*document.Node{
				{Type: "heading", Level: 2, Text: title},
				{Type: "paragraph", Children: []*document.Node{
					{Type: "text", Text: text},
				}},
			},
		},
		UpdatedAt: time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestIndexer_IndexProject(t *testing.T) {
	st := newCountingStore(chatRecord())
	ix := New(st, Options{})

	idx, err := ix.IndexProject(context.Background(), "chat")
	require.NoError(t, err)

	assert.Equal(t, "chat", idx.ProjectID)
	assert.Equal(t, "Realtime Chat Platform", idx.Title)
	assert.Len(t, idx.Sections, 4)
	assert.Contains(t, idx.Technologies, "react")
	assert.Contains(t, idx.Technologies, "typescript")
	assert.Contains(t, idx.Keywords, "chat")
	assert.Len(t, idx.ContentHash, 64)
	require.Len(t, idx.MediaContext, 2)
	assert.Equal(t, "m1", idx.MediaContext[0].ID)
	assert.Equal(t, "m2", idx.MediaContext[1].ID)
	assert.False(t, idx.IndexedAt.IsZero())
}

func TestIndexer_CacheHitSkipsStore(t *testing.T) {
	st := newCountingStore(chatRecord())
	ix := New(st, Options{})

	first, err := ix.IndexProject(context.Background(), "chat")
	require.NoError(t, err)
	second, err := ix.IndexProject(context.Background(), "chat")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, st.fetchCount("chat"))
}

func TestIndexer_Deterministic(t *testing.T) {
	a := New(newCountingStore(chatRecord()), Options{})
	b := New(newCountingStore(chatRecord()), Options{})

	ia, err := a.IndexProject(context.Background(), "chat")
	require.NoError(t, err)
	ib, err := b.IndexProject(context.Background(), "chat")
	require.NoError(t, err)

	assert.Equal(t, ia.Keywords, ib.Keywords)
	assert.Equal(t, ia.Technologies, ib.Technologies)
	assert.Equal(t, ia.ContentHash, ib.ContentHash)
}

func TestIndexer_NotFoundNotCached(t *testing.T) {
	st := newCountingStore()
	ix := New(st, Options{})

	_, err := ix.IndexProject(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, ierrors.ErrCodeProjectNotFound, ierrors.GetCode(err))

	_, err = ix.IndexProject(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, 2, st.fetchCount("ghost"))
	assert.Equal(t, 0, ix.CacheStats().Size)
}

func TestIndexer_StoreFailureNotCached(t *testing.T) {
	st := newCountingStore(chatRecord())
	st.failAll = errors.New("connection refused")
	ix := New(st, Options{})

	_, err := ix.IndexProject(context.Background(), "chat")
	require.Error(t, err)
	assert.Equal(t, ierrors.ErrCodeStoreUnavailable, ierrors.GetCode(err))
	assert.True(t, ierrors.IsRetryable(err))

	st.failAll = nil
	idx, err := ix.IndexProject(context.Background(), "chat")
	require.NoError(t, err)
	assert.Equal(t, "chat", idx.ProjectID)
}

func TestIndexer_EmptyProjectID(t *testing.T) {
	ix := New(newCountingStore(), Options{})

	_, err := ix.IndexProject(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, ierrors.ErrCodeInvalidProjectID, ierrors.GetCode(err))
}

func TestIndexer_ProjectSummary(t *testing.T) {
	st := newCountingStore(chatRecord())
	ix := New(st, Options{})

	sum, err := ix.ProjectSummary(context.Background(), "chat")
	require.NoError(t, err)

	assert.Equal(t, "chat", sum.ProjectID)
	assert.Equal(t, "Realtime Chat Platform", sum.Title)
	assert.Equal(t, "A React frontend over a WebSocket backend", sum.BriefOverview)
	assert.Equal(t, 2, sum.MediaCount)
	assert.Equal(t, 4, sum.ContentStructure.TotalSections)
	assert.Equal(t, []string{"Frontend", "Backend"}, sum.ContentStructure.Headings)
	assert.True(t, sum.ContentStructure.HasArticle)
	assert.Contains(t, sum.Technologies, "react")
}

func TestIndexer_ProjectSummaryNoArticle(t *testing.T) {
	record := chatRecord()
	record.Content = nil
	ix := New(newCountingStore(record), Options{})

	sum, err := ix.ProjectSummary(context.Background(), "chat")
	require.NoError(t, err)

	assert.False(t, sum.ContentStructure.HasArticle)
	assert.Equal(t, 0, sum.ContentStructure.TotalSections)
	assert.Empty(t, sum.ContentStructure.Headings)
}

func TestIndexer_SearchRelevantContent(t *testing.T) {
	st := newCountingStore(
		storeRecord("a", "React Dashboard", "Interactive charts rendered with React."),
		storeRecord("b", "CLI Tool", "A Go command line utility."),
	)
	ix := New(st, Options{})

	results, err := ix.SearchRelevantContent(context.Background(), []string{"a", "b"}, "react", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.Equal(t, "a", r.ProjectID)
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestIndexer_SearchIndexesOnDemandOnce(t *testing.T) {
	st := newCountingStore(
		storeRecord("a", "React Dashboard", "Charts."),
		storeRecord("b", "Vue Widget", "Components."),
	)
	ix := New(st, Options{})

	_, err := ix.SearchRelevantContent(context.Background(), []string{"a", "b"}, "dashboard", 10)
	require.NoError(t, err)
	_, err = ix.SearchRelevantContent(context.Background(), []string{"a", "b"}, "widget", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, st.fetchCount("a"))
	assert.Equal(t, 1, st.fetchCount("b"))
}

func TestIndexer_SearchInputOrderTieBreak(t *testing.T) {
	// Identical content under both ids, so scores tie and input order decides.
	st := newCountingStore(
		storeRecord("x", "Gallery", "A photo gallery."),
		storeRecord("y", "Gallery", "A photo gallery."),
	)
	ix := New(st, Options{})

	results, err := ix.SearchRelevantContent(context.Background(), []string{"y", "x"}, "gallery", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "y", results[0].ProjectID)
}

func TestIndexer_SearchEmptyQuery(t *testing.T) {
	ix := New(newCountingStore(), Options{})

	_, err := ix.SearchRelevantContent(context.Background(), []string{"a"}, "   ", 10)
	require.Error(t, err)
	assert.Equal(t, ierrors.ErrCodeQueryEmpty, ierrors.GetCode(err))
}

func TestIndexer_SearchNoProjects(t *testing.T) {
	ix := New(newCountingStore(), Options{})

	_, err := ix.SearchRelevantContent(context.Background(), nil, "react", 10)
	require.Error(t, err)
	assert.Equal(t, ierrors.ErrCodeInvalidInput, ierrors.GetCode(err))
}

func TestIndexer_SearchFailsWhenProjectMissing(t *testing.T) {
	st := newCountingStore(storeRecord("a", "React Dashboard", "Charts."))
	ix := New(st, Options{})

	_, err := ix.SearchRelevantContent(context.Background(), []string{"a", "ghost"}, "react", 10)
	require.Error(t, err)
	assert.Equal(t, ierrors.ErrCodeProjectNotFound, ierrors.GetCode(err))
}

func TestIndexer_ClearProjectCache(t *testing.T) {
	st := newCountingStore(chatRecord())
	ix := New(st, Options{})

	_, err := ix.IndexProject(context.Background(), "chat")
	require.NoError(t, err)

	ix.ClearProjectCache("chat")

	_, err = ix.IndexProject(context.Background(), "chat")
	require.NoError(t, err)
	assert.Equal(t, 2, st.fetchCount("chat"))
}

func TestIndexer_ClearAllCache(t *testing.T) {
	st := newCountingStore(
		storeRecord("a", "One", "First."),
		storeRecord("b", "Two", "Second."),
	)
	ix := New(st, Options{})

	_, err := ix.IndexProject(context.Background(), "a")
	require.NoError(t, err)
	_, err = ix.IndexProject(context.Background(), "b")
	require.NoError(t, err)
	require.Equal(t, 2, ix.CacheStats().Size)

	ix.ClearAllCache()

	assert.Equal(t, 0, ix.CacheStats().Size)
	_, err = ix.IndexProject(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 2, st.fetchCount("a"))
}

func TestIndexer_CacheStats(t *testing.T) {
	st := newCountingStore(
		storeRecord("beta", "B", "b."),
		storeRecord("alpha", "A", "a."),
	)
	ix := New(st, Options{})

	_, err := ix.IndexProject(context.Background(), "beta")
	require.NoError(t, err)
	_, err = ix.IndexProject(context.Background(), "alpha")
	require.NoError(t, err)

	stats := ix.CacheStats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, []string{"alpha", "beta"}, stats.ProjectIDs)
}

package index

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/showfolio/showmcp/internal/document"
	"github.com/showfolio/showmcp/internal/errors"
	"github.com/showfolio/showmcp/internal/keyword"
	"github.com/showfolio/showmcp/internal/search"
	"github.com/showfolio/showmcp/internal/store"
	"github.com/showfolio/showmcp/internal/telemetry"
)

// Indexer is the facade over parsing, keyword extraction, caching, and
// search. All construction goes through New; callers share one Indexer
// per store.
type Indexer struct {
	store   store.ProjectStore
	cache   *Cache
	engine  *search.Engine
	logger  *slog.Logger
	metrics *telemetry.SearchMetrics
}

// Options configures an Indexer. Zero values fall back to defaults.
type Options struct {
	// Search configures result limits and scoring weights.
	Search search.Config

	// Logger receives structured index and search events.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics, when non-nil, records search telemetry.
	Metrics *telemetry.SearchMetrics
}

// New creates an Indexer backed by the given store.
func New(st store.ProjectStore, opts Options) *Indexer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		store:   st,
		cache:   NewCache(),
		engine:  search.NewEngine(opts.Search),
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// IndexProject returns the index for a project, building and caching it
// on first access. A cache hit performs no store access and no
// recomputation; the entry persists until explicitly evicted.
func (ix *Indexer) IndexProject(ctx context.Context, projectID string) (*ProjectIndex, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, errors.New(errors.ErrCodeInvalidProjectID, "project id is empty", nil)
	}

	if cached := ix.cache.Get(projectID); cached != nil {
		ix.logger.Debug("index cache hit", "project_id", projectID)
		return cached, nil
	}

	start := time.Now()
	idx, err := ix.buildIndex(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ix.cache.Put(projectID, idx)

	ix.logger.Info("project indexed",
		"project_id", projectID,
		"sections", len(idx.Sections),
		"keywords", len(idx.Keywords),
		"technologies", len(idx.Technologies),
		"duration_ms", time.Since(start).Milliseconds())
	return idx, nil
}

// buildIndex fetches the record and derives a complete ProjectIndex.
// Failures are never cached.
func (ix *Indexer) buildIndex(ctx context.Context, projectID string) (*ProjectIndex, error) {
	record, err := ix.store.FetchByID(ctx, projectID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundError(projectID)
		}
		return nil, errors.StoreError("fetching project record", err).
			WithDetail("project_id", projectID)
	}

	sections := keyword.Annotate(document.Parse(record.Content))

	extracted := keyword.Extract(keyword.Input{
		Title:         record.Title,
		Description:   record.Description,
		BriefOverview: record.BriefOverview,
		Sections:      sections,
		Tags:          record.Tags,
	})

	media := make([]MediaContext, 0, len(record.Media))
	for _, m := range record.Media {
		media = append(media, MediaContext{
			ID:          m.ID,
			Type:        m.Type,
			URL:         m.URL,
			AltText:     m.AltText,
			Description: m.Description,
		})
	}

	return &ProjectIndex{
		ProjectID:    record.ID,
		Title:        record.Title,
		Keywords:     extracted.Keywords,
		Technologies: extracted.Technologies,
		Sections:     sections,
		MediaContext: media,
		ContentHash:  Fingerprint(record),
		IndexedAt:    time.Now().UTC(),
	}, nil
}

// ProjectSummary returns the lightweight summary of a project, indexing
// it first if needed.
func (ix *Indexer) ProjectSummary(ctx context.Context, projectID string) (*Summary, error) {
	idx, err := ix.IndexProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	proj, err := ix.store.FetchSummary(ctx, projectID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundError(projectID)
		}
		return nil, errors.StoreError("fetching project summary", err).
			WithDetail("project_id", projectID)
	}

	headings := make([]string, 0, len(idx.Sections))
	for _, s := range idx.Sections {
		if s.Kind == document.SectionHeading && s.Title != "" {
			headings = append(headings, s.Title)
		}
	}

	return &Summary{
		ProjectID:     idx.ProjectID,
		Title:         proj.Title,
		BriefOverview: proj.BriefOverview,
		Description:   proj.Description,
		Tags:          proj.Tags,
		Technologies:  idx.Technologies,
		MediaCount:    len(idx.MediaContext),
		ContentStructure: ContentStructure{
			TotalSections: len(idx.Sections),
			Headings:      headings,
			HasArticle:    len(idx.Sections) > 0,
		},
	}, nil
}

// SearchRelevantContent ranks the sections of the given projects against
// a free-text query. Every requested project is indexed first; a failure
// to index any of them fails the whole search. Projects keep their input
// order, which is the first tie-break for equal scores.
func (ix *Indexer) SearchRelevantContent(ctx context.Context, projectIDs []string, query string, limit int) ([]search.ScoredSection, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New(errors.ErrCodeQueryEmpty, "search query is empty", nil)
	}
	if len(projectIDs) == 0 {
		return nil, errors.ValidationError("no project ids given", nil)
	}

	start := time.Now()

	indexes := make([]*ProjectIndex, len(projectIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range projectIDs {
		g.Go(func() error {
			idx, err := ix.IndexProject(gctx, id)
			if err != nil {
				return err
			}
			indexes[i] = idx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	projects := make([]search.Project, len(indexes))
	for i, idx := range indexes {
		projects[i] = search.Project{
			ID:           idx.ProjectID,
			Technologies: idx.Technologies,
			Sections:     idx.Sections,
		}
	}

	results := ix.engine.Rank(projects, query, limit)
	elapsed := time.Since(start)

	if ix.metrics != nil {
		ix.metrics.Record(telemetry.SearchEvent{
			Query:       query,
			ProjectIDs:  projectIDs,
			ResultCount: len(results),
			Latency:     elapsed,
			Timestamp:   time.Now(),
		})
	}

	ix.logger.Info("search completed",
		"query", query,
		"projects", len(projectIDs),
		"results", len(results),
		"duration_ms", elapsed.Milliseconds())
	return results, nil
}

// ClearProjectCache evicts one project's cached index. The next access
// rebuilds it from the store.
func (ix *Indexer) ClearProjectCache(projectID string) {
	ix.cache.Evict(projectID)
	ix.logger.Debug("cache entry evicted", "project_id", projectID)
}

// ClearAllCache evicts every cached index.
func (ix *Indexer) ClearAllCache() {
	ix.cache.EvictAll()
	ix.logger.Debug("cache cleared")
}

// CacheStats reports the cached project ids and entry count.
func (ix *Indexer) CacheStats() CacheStats {
	return ix.cache.Stats()
}

// Metrics returns the search telemetry collector, or nil when telemetry
// is disabled.
func (ix *Indexer) Metrics() *telemetry.SearchMetrics {
	return ix.metrics
}

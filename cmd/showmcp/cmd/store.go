package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/showfolio/showmcp/internal/config"
	"github.com/showfolio/showmcp/internal/index"
	"github.com/showfolio/showmcp/internal/search"
	"github.com/showfolio/showmcp/internal/store"
	"github.com/showfolio/showmcp/internal/telemetry"
)

// openStore opens the project store selected by the configuration.
func openStore(cfg *config.Config) (store.ProjectStore, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		return store.NewSQLiteStore(cfg.Store.Path)
	case config.DriverFile:
		return store.NewFileStore(cfg.Store.Path)
	case config.DriverMemory:
		return store.NewInMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// buildIndexer assembles the indexer from configuration.
func buildIndexer(cfg *config.Config, st store.ProjectStore, logger *slog.Logger) *index.Indexer {
	opts := index.Options{
		Search: search.Config{
			DefaultLimit: cfg.Search.DefaultLimit,
			MaxLimit:     cfg.Search.MaxLimit,
			Weights: search.Weights{
				Title:      cfg.Search.TitleWeight,
				Content:    cfg.Search.ContentWeight,
				Keyword:    cfg.Search.KeywordWeight,
				Technology: cfg.Search.TechnologyWeight,
			},
		},
		Logger: logger,
	}
	if cfg.Telemetry.Enabled {
		opts.Metrics = telemetry.NewSearchMetricsWithConfig(telemetry.Config{
			TopTermsCapacity:    cfg.Telemetry.TopTermsCapacity,
			ZeroResultsCapacity: cfg.Telemetry.ZeroResultsCapacity,
		})
	}
	return index.New(st, opts)
}

// storedProjectIDs lists every project id in the store, used when a
// command is run without an explicit project list.
func storedProjectIDs(ctx context.Context, st store.ProjectStore) ([]string, error) {
	switch s := st.(type) {
	case *store.SQLiteStore:
		return s.IDs(ctx)
	case *store.FileStore:
		return s.IDs()
	case *store.InMemoryStore:
		return s.IDs(), nil
	default:
		return nil, fmt.Errorf("store does not support listing projects")
	}
}

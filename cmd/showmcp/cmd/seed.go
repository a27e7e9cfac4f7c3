package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/showfolio/showmcp/internal/config"
	"github.com/showfolio/showmcp/internal/document"
	"github.com/showfolio/showmcp/internal/store"
)

func newSeedCmd() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with project records",
		Long: `Write project records into the configured store. Without --file,
a small set of sample projects is written so the server can be tried
out immediately.

The --file format is a JSON array of records:
  [{"id": "...", "title": "...", "content": {...}, "tags": [...], ...}]`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, fromFile)
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "JSON file of project records to import")
	return cmd
}

// seedRecord is the import JSON shape. Content stays raw so the document
// package owns its decoding.
type seedRecord struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	BriefOverview string            `json:"brief_overview,omitempty"`
	Content       json.RawMessage   `json:"content,omitempty"`
	Media         []store.MediaItem `json:"media,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func runSeed(cmd *cobra.Command, fromFile string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if cfg.Store.Driver == config.DriverMemory {
		return fmt.Errorf("the memory store does not persist; configure the sqlite or file driver")
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var records []*store.ProjectRecord
	if fromFile != "" {
		if records, err = loadSeedFile(fromFile); err != nil {
			return err
		}
	} else {
		records = sampleRecords()
	}

	ctx := cmd.Context()
	for _, record := range records {
		if err := saveRecord(ctx, st, record); err != nil {
			return fmt.Errorf("failed to save %s: %w", record.ID, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d project record(s) to %s store at %s\n",
		len(records), cfg.Store.Driver, cfg.Store.Path)
	return nil
}

func loadSeedFile(path string) ([]*store.ProjectRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var raws []seedRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	records := make([]*store.ProjectRecord, 0, len(raws))
	for _, raw := range raws {
		if raw.ID == "" {
			return nil, fmt.Errorf("seed record missing id")
		}
		content, err := document.DecodeTree(raw.Content)
		if err != nil {
			return nil, fmt.Errorf("invalid content for %s: %w", raw.ID, err)
		}
		updatedAt := raw.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}
		records = append(records, &store.ProjectRecord{
			ID:            raw.ID,
			Title:         raw.Title,
			Description:   raw.Description,
			BriefOverview: raw.BriefOverview,
			Content:       content,
			Media:         raw.Media,
			Tags:          raw.Tags,
			UpdatedAt:     updatedAt,
		})
	}
	return records, nil
}

func saveRecord(ctx context.Context, st store.ProjectStore, record *store.ProjectRecord) error {
	switch s := st.(type) {
	case *store.SQLiteStore:
		return s.SaveProject(ctx, record)
	case *store.FileStore:
		return s.SaveProject(record)
	default:
		return fmt.Errorf("store does not support writing records")
	}
}

func sampleRecords() []*store.ProjectRecord {
	now := time.Now().UTC()
	return []*store.ProjectRecord{
		{
			ID:            "chat-platform",
			Title:         "Realtime Chat Platform",
			Description:   "Multi-room chat with presence indicators and message history.",
			BriefOverview: "A React frontend over a Go WebSocket backend.",
			Content: &document.Node{
				Type: "doc",
				Children: []*document.Node{
					{Type: "heading", Level: 2, Text: "Frontend"},
					{Type: "paragraph", Children: []*document.Node{
						{Type: "text", Text: "Built with React and TypeScript. State lives in a small Redux store and updates stream in over a WebSocket connection."},
					}},
					{Type: "heading", Level: 2, Text: "Backend"},
					{Type: "paragraph", Children: []*document.Node{
						{Type: "text", Text: "A Go server fans messages out through Redis pub/sub, with PostgreSQL holding message history."},
					}},
				},
			},
			Media: []store.MediaItem{
				{ID: "chat-hero", Type: "image", URL: "https://example.com/chat-hero.png", AltText: "Chat room screenshot"},
			},
			Tags:      []string{"realtime", "chat"},
			UpdatedAt: now,
		},
		{
			ID:            "analytics-dashboard",
			Title:         "Analytics Dashboard",
			Description:   "Interactive charts over a warehouse of product events.",
			BriefOverview: "Vue dashboard with a GraphQL API.",
			Content: &document.Node{
				Type: "doc",
				Children: []*document.Node{
					{Type: "heading", Level: 2, Text: "Visualization"},
					{Type: "paragraph", Children: []*document.Node{
						{Type: "text", Text: "Vue components render charts with D3, fed by a GraphQL API over PostgreSQL."},
					}},
					{Type: "heading", Level: 2, Text: "Pipeline"},
					{Type: "paragraph", Children: []*document.Node{
						{Type: "text", Text: "Events land in Kafka and a Python worker aggregates them hourly."},
					}},
				},
			},
			Tags:      []string{"analytics", "dashboard"},
			UpdatedAt: now,
		},
		{
			ID:            "cli-deployer",
			Title:         "CLI Deployment Tool",
			Description:   "One-command deploys to Kubernetes with rollback support.",
			BriefOverview: "A Go CLI wrapping Kubernetes and Docker workflows.",
			Content: &document.Node{
				Type: "doc",
				Children: []*document.Node{
					{Type: "heading", Level: 2, Text: "Design"},
					{Type: "paragraph", Children: []*document.Node{
						{Type: "text", Text: "Written in Go with Cobra. Builds Docker images, applies Kubernetes manifests, and records each rollout for rollback."},
					}},
				},
			},
			Tags:      []string{"devops", "cli"},
			UpdatedAt: now,
		},
	}
}

package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/showfolio/showmcp/internal/config"
	"github.com/showfolio/showmcp/internal/index"
	"github.com/showfolio/showmcp/pkg/version"
)

// Server is the MCP server for ShowMCP. It exposes the project indexer
// to AI clients over the Model Context Protocol.
type Server struct {
	mcp     *mcp.Server
	indexer *index.Indexer
	config  *config.Config
	logger  *slog.Logger
}

// NewServer creates a new MCP server over an indexer.
func NewServer(indexer *index.Indexer, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if indexer == nil {
		return nil, errors.New("indexer is required")
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		indexer: indexer,
		config:  cfg,
		logger:  logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "ShowMCP",
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()
	s.registerResources()
	return s, nil
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_projects",
		Description: "Search across a portfolio's project content. Returns the most relevant content sections ranked by lexical relevance so answers can cite specific project material instead of whole projects.",
	}, s.mcpSearchHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_project_summary",
		Description: "Get a lightweight summary of one project: title, overview, tags, detected technologies, media count, and content structure. Cheaper than searching when you only need orientation.",
	}, s.mcpSummaryHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index_project",
		Description: "Build (or return the cached) searchable index for a project. Returns the content fingerprint, which changes whenever any indexed input changes.",
	}, s.mcpIndexHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index_status",
		Description: "Report which projects currently have a live cached index.",
	}, s.mcpStatusHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Evict one project's cached index, or the whole cache when no project id is given. The next access rebuilds from the store.",
	}, s.mcpClearCacheHandler)

	s.logger.Info("MCP tools registered", slog.Int("count", 5))
}

// mcpSearchHandler is the SDK handler for the search_projects tool.
func (s *Server) mcpSearchHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	reqID := newRequestID()
	start := time.Now()

	if input.Query == "" {
		return nil, SearchOutput{}, NewInvalidParamsError("query parameter is required")
	}
	if len(input.ProjectIDs) == 0 {
		return nil, SearchOutput{}, NewInvalidParamsError("project_ids parameter is required")
	}

	results, err := s.indexer.SearchRelevantContent(ctx, input.ProjectIDs, input.Query, input.Limit)
	if err != nil {
		s.logger.Warn("search_projects failed",
			"request_id", reqID, "query", input.Query, "error", err)
		return nil, SearchOutput{}, MapError(err)
	}

	output := SearchOutput{Results: make([]SearchResultOutput, 0, len(results))}
	for _, r := range results {
		output.Results = append(output.Results, SearchResultOutput{
			ProjectID:    r.ProjectID,
			SectionIndex: r.SectionIndex,
			Title:        r.Section.Title,
			Content:      r.Section.Content,
			Score:        r.Score,
			MatchedTerms: r.MatchedTerms,
		})
	}

	s.logger.Info("search_projects",
		"request_id", reqID,
		"query", input.Query,
		"projects", len(input.ProjectIDs),
		"results", len(output.Results),
		"duration_ms", time.Since(start).Milliseconds())

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: FormatSearchResults(input.Query, results)},
		},
	}
	return result, output, nil
}

// mcpSummaryHandler is the SDK handler for the get_project_summary tool.
func (s *Server) mcpSummaryHandler(ctx context.Context, _ *mcp.CallToolRequest, input SummaryInput) (
	*mcp.CallToolResult,
	SummaryOutput,
	error,
) {
	reqID := newRequestID()

	if input.ProjectID == "" {
		return nil, SummaryOutput{}, NewInvalidParamsError("project_id parameter is required")
	}

	sum, err := s.indexer.ProjectSummary(ctx, input.ProjectID)
	if err != nil {
		s.logger.Warn("get_project_summary failed",
			"request_id", reqID, "project_id", input.ProjectID, "error", err)
		return nil, SummaryOutput{}, MapError(err)
	}

	s.logger.Info("get_project_summary", "request_id", reqID, "project_id", input.ProjectID)
	return nil, SummaryOutput{
		ProjectID:     sum.ProjectID,
		Title:         sum.Title,
		BriefOverview: sum.BriefOverview,
		Description:   sum.Description,
		Tags:          sum.Tags,
		Technologies:  sum.Technologies,
		MediaCount:    sum.MediaCount,
		TotalSections: sum.ContentStructure.TotalSections,
		Headings:      sum.ContentStructure.Headings,
		HasArticle:    sum.ContentStructure.HasArticle,
	}, nil
}

// mcpIndexHandler is the SDK handler for the index_project tool.
func (s *Server) mcpIndexHandler(ctx context.Context, _ *mcp.CallToolRequest, input IndexInput) (
	*mcp.CallToolResult,
	IndexOutput,
	error,
) {
	reqID := newRequestID()

	if input.ProjectID == "" {
		return nil, IndexOutput{}, NewInvalidParamsError("project_id parameter is required")
	}

	idx, err := s.indexer.IndexProject(ctx, input.ProjectID)
	if err != nil {
		s.logger.Warn("index_project failed",
			"request_id", reqID, "project_id", input.ProjectID, "error", err)
		return nil, IndexOutput{}, MapError(err)
	}

	s.logger.Info("index_project", "request_id", reqID, "project_id", input.ProjectID)
	return nil, IndexOutput{
		ProjectID:    idx.ProjectID,
		ContentHash:  idx.ContentHash,
		Sections:     len(idx.Sections),
		Keywords:     idx.Keywords,
		Technologies: idx.Technologies,
		IndexedAt:    idx.IndexedAt.Format(time.RFC3339),
	}, nil
}

// mcpStatusHandler is the SDK handler for the index_status tool.
func (s *Server) mcpStatusHandler(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (
	*mcp.CallToolResult,
	StatusOutput,
	error,
) {
	stats := s.indexer.CacheStats()
	return nil, StatusOutput{
		CachedProjects: stats.ProjectIDs,
		CacheSize:      stats.Size,
		ServerVersion:  version.Version,
	}, nil
}

// mcpClearCacheHandler is the SDK handler for the clear_cache tool.
func (s *Server) mcpClearCacheHandler(_ context.Context, _ *mcp.CallToolRequest, input ClearCacheInput) (
	*mcp.CallToolResult,
	ClearCacheOutput,
	error,
) {
	cleared := "all"
	if input.ProjectID != "" {
		s.indexer.ClearProjectCache(input.ProjectID)
		cleared = input.ProjectID
	} else {
		s.indexer.ClearAllCache()
	}

	remaining := s.indexer.CacheStats().Size
	s.logger.Info("clear_cache", "cleared", cleared, "remaining", remaining)
	return nil, ClearCacheOutput{Cleared: cleared, Remaining: remaining}, nil
}

// Serve runs the server until the context is cancelled. Only the stdio
// transport is supported.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("starting MCP server", slog.String("transport", transport))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("MCP server stopped")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

// newRequestID generates a short id for correlating a request's log lines.
func newRequestID() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b[:])
}

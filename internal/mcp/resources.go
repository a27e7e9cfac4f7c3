package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerResources registers read-only resources. The metrics resource
// only exists when the indexer carries a telemetry collector.
func (s *Server) registerResources() {
	if s.indexer.Metrics() == nil {
		return
	}
	s.mcp.AddResource(
		&mcp.Resource{
			Name:        "search_metrics",
			URI:         "showmcp://search_metrics",
			Description: "Local search telemetry: latency buckets, top terms, zero-result queries",
			MIMEType:    "application/json",
		},
		s.searchMetricsHandler,
	)
}

// searchMetricsHandler serves the current telemetry snapshot as JSON.
func (s *Server) searchMetricsHandler(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	m := s.indexer.Metrics()
	if m == nil {
		return nil, NewInvalidParamsError("search metrics not available")
	}

	content, err := json.MarshalIndent(m.Snapshot(), "", "  ")
	if err != nil {
		return nil, MapError(err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "showmcp://search_metrics",
				MIMEType: "application/json",
				Text:     string(content),
			},
		},
	}, nil
}

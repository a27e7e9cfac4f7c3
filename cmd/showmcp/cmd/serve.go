package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/showfolio/showmcp/internal/config"
	"github.com/showfolio/showmcp/internal/logging"
	"github.com/showfolio/showmcp/internal/mcp"
	"github.com/showfolio/showmcp/internal/store"
	"github.com/showfolio/showmcp/internal/watcher"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the MCP server. Uses the stdio transport, so stdout carries
JSON-RPC exclusively and all logging goes to ~/.showmcp/logs/.

Register the server with an MCP client, e.g. for Claude Code:
  claude mcp add showmcp -- showmcp serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	return cmd
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	// Stdio transport: stdout is reserved for JSON-RPC, so logging must
	// go to files only.
	cleanup, err := logging.SetupMCPMode(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer cleanup()
	logger := slog.Default()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	indexer := buildIndexer(cfg, st, logger)

	server, err := mcp.NewServer(indexer, cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if fs, ok := st.(*store.FileStore); ok && cfg.Watch.Enabled {
		debounce, err := time.ParseDuration(cfg.Watch.Debounce)
		if err != nil {
			logger.Warn("invalid watch debounce, using default",
				"debounce", cfg.Watch.Debounce, "error", err)
			debounce = 0
		}
		w, err := watcher.New(indexer, watcher.Options{Debounce: debounce, Logger: logger})
		if err != nil {
			return err
		}
		go func() { _ = w.Start(ctx, fs.Dir()) }()
		defer func() { _ = w.Stop() }()
	}

	return server.Serve(ctx, cfg.Server.Transport)
}

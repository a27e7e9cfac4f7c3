package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/showfolio/showmcp/internal/config"
	"github.com/showfolio/showmcp/internal/mcp"
)

func newSummaryCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "summary <project-id>",
		Short: "Show a project's indexed summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runSummary(cmd *cobra.Command, projectID string, jsonOutput bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	indexer := buildIndexer(cfg, st, nil)
	sum, err := indexer.ProjectSummary(cmd.Context(), projectID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	fmt.Fprint(out, mcp.FormatSummary(sum))
	return nil
}

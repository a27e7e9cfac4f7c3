package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/showfolio/showmcp/internal/config"
	"github.com/showfolio/showmcp/internal/ui"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [project-id...]",
		Short: "Build searchable indexes for projects",
		Long: `Build the searchable index for the given projects, or for every
project in the store when none are named. Prints the content
fingerprint and extraction results per project.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, args)
		},
	}
	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := cmd.Context()
	ids := args
	if len(ids) == 0 {
		if ids, err = storedProjectIDs(ctx, st); err != nil {
			return err
		}
	}
	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects in store. Run 'showmcp seed' to add sample data.")
		return nil
	}

	indexer := buildIndexer(cfg, st, nil)
	out := cmd.OutOrStdout()
	styles := ui.StylesFor(out)

	var failed int
	for _, id := range ids {
		idx, err := indexer.IndexProject(ctx, id)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", styles.Error.Render("✗"), id, err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", styles.Success.Render("✓"), styles.Title.Render(idx.Title))
		fmt.Fprintf(out, "  %s %s\n", styles.Label.Render("fingerprint:"), idx.ContentHash[:16])
		fmt.Fprintf(out, "  %s %d sections, %d keywords, %d media\n",
			styles.Label.Render("indexed:"), len(idx.Sections), len(idx.Keywords), len(idx.MediaContext))
		if len(idx.Technologies) > 0 {
			fmt.Fprintf(out, "  %s %s\n",
				styles.Label.Render("technologies:"), strings.Join(idx.Technologies, ", "))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d projects failed to index", failed, len(ids))
	}
	return nil
}

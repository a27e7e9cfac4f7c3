package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/showfolio/showmcp/internal/config"
	"github.com/showfolio/showmcp/internal/ui"
)

type searchOptions struct {
	limit    int
	projects []string
	format   string // "text" or "json"
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search project content sections",
		Long: `Rank content sections across projects against a free-text query.

Searches every project in the store unless --projects narrows the set.

Examples:
  showmcp search "react typescript"
  showmcp search "deployment pipeline" --projects chat,portfolio -n 5
  showmcp search "websocket" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (0 = default)")
	cmd.Flags().StringSliceVarP(&opts.projects, "projects", "p", nil, "Project ids to search, in preference order")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
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
	ids := opts.projects
	if len(ids) == 0 {
		if ids, err = storedProjectIDs(ctx, st); err != nil {
			return err
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no projects to search")
	}

	indexer := buildIndexer(cfg, st, nil)
	results, err := indexer.SearchRelevantContent(ctx, ids, query, opts.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	styles := ui.StylesFor(out)
	if len(results) == 0 {
		fmt.Fprintf(out, "No results for %q\n", query)
		return nil
	}

	fmt.Fprintf(out, "%s\n\n", styles.Header.Render(fmt.Sprintf("%d results for %q", len(results), query)))
	for i, r := range results {
		title := r.Section.Title
		if title == "" {
			title = fmt.Sprintf("section %d", r.SectionIndex+1)
		}
		fmt.Fprintf(out, "%2d. %s %s %s\n", i+1,
			styles.Title.Render(title),
			styles.Dim.Render("in "+r.ProjectID),
			styles.Score.Render(fmt.Sprintf("(%.1f)", r.Score)))
		if content := strings.TrimSpace(r.Section.Content); content != "" {
			fmt.Fprintf(out, "    %s\n", snippet(content, 120))
		}
		if len(r.MatchedTerms) > 0 {
			fmt.Fprintf(out, "    %s\n", styles.Label.Render("matched: "+strings.Join(r.MatchedTerms, ", ")))
		}
	}
	return nil
}

func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

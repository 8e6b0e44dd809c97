package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"news-agent/internal/search"
	"news-agent/internal/service"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the search and summary tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, components, err := setup()
			if err != nil {
				return err
			}

			catalog := service.NewToolService(service.NewSearchService(components.Searcher)).List()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, t := range catalog.Tools {
				fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Description)
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(newToolsRunCmd())
	return cmd
}

func newToolsRunCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "run <name> [json-params]",
		Short: "Run one tool with JSON parameters",
		Example: `  newsctl tools run google_news_search '{"query":"chip exports","num_results":5}'
  newsctl tools run news_summarize '{"articles":[{"title":"Fab opens","snippet":"New plant","source":"Wire"}]}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, components, err := setup()
			if err != nil {
				return err
			}

			var params json.RawMessage
			if len(args) == 2 {
				params = json.RawMessage(args[1])
			}

			svc := service.NewToolService(service.NewSearchService(components.Searcher))
			result, err := svc.Execute(cmd.Context(), args[0], params)
			r := newRenderer(cmd.OutOrStdout(), raw)
			if err != nil {
				r.markdown(search.FormatError(err))
				return err
			}
			r.markdown(result.Output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal rendering")
	return cmd
}

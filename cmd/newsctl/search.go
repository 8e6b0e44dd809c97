package main

import (
	"strings"

	"github.com/spf13/cobra"

	"news-agent/internal/search"
	"news-agent/internal/service"
)

func newSearchCmd() *cobra.Command {
	var (
		news     bool
		num      int
		location string
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a raw web or news search without AI analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, components, err := setup()
			if err != nil {
				return err
			}

			svc := service.NewSearchService(components.Searcher)
			req := &service.SearchRequest{Query: strings.Join(args, " "), NumResults: num, Location: location}

			var resp *service.SearchResponse
			if news {
				resp, err = svc.SearchNews(cmd.Context(), req)
			} else {
				resp, err = svc.Search(cmd.Context(), req)
			}
			r := newRenderer(cmd.OutOrStdout(), raw)
			if err != nil {
				r.markdown(search.FormatError(err))
				return err
			}
			r.markdown(resp.Markdown)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&news, "news", "n", false, "search news instead of the web")
	cmd.Flags().IntVar(&num, "num", search.DefaultResults, "number of results (1-20)")
	cmd.Flags().StringVar(&location, "location", "", "country code for localized web results, e.g. us")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal rendering")
	return cmd
}

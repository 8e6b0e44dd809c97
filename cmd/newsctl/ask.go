package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"news-agent/internal/agent"
	"news-agent/internal/llm"
)

func newAskCmd() *cobra.Command {
	var (
		modelName string
		stream    bool
		raw       bool
	)

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Search the news and analyze the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, components, err := setup()
			if err != nil {
				return err
			}

			info, err := pickModel(components.Catalog, modelName)
			if err != nil {
				return err
			}

			a := components.NewAgent(cfg, info)
			query := strings.Join(args, " ")
			ctx := cmd.Context()

			var answer *agent.Answer
			if stream {
				// Fragments are printed as they arrive, so markdown is not rendered.
				ch := make(chan string)
				done := make(chan *agent.Answer, 1)
				go func() { done <- a.RunStream(ctx, query, ch) }()
				for fragment := range ch {
					fmt.Fprint(cmd.OutOrStdout(), fragment)
				}
				fmt.Fprintln(cmd.OutOrStdout())
				answer = <-done
			} else {
				answer = a.Run(ctx, query)
				newRenderer(cmd.OutOrStdout(), raw).markdown(answer.Content)
			}

			if usage := formatUsage(answer.Usage); usage != "" {
				fmt.Fprintln(os.Stderr, usage)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelName, "model", "m", "", "model name from the catalog (default from DEFAULT_MODEL)")
	cmd.Flags().BoolVarP(&stream, "stream", "s", false, "print the analysis as it is generated")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal rendering")
	return cmd
}

// pickModel returns the catalog default for an empty name.
func pickModel(catalog *llm.StaticCatalog, name string) (llm.ModelInfo, error) {
	if name == "" {
		return catalog.Default(), nil
	}
	info, ok := catalog.Lookup(name)
	if !ok {
		return llm.ModelInfo{}, fmt.Errorf("unknown model %q, available: %s", name, strings.Join(catalog.Names(), ", "))
	}
	return info, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"news-agent/internal/app"
	"news-agent/internal/config"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "newsctl",
		Short:         "Ask the news agent from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAskCmd(),
		newSearchCmd(),
		newModelsCmd(),
		newStatusCmd(),
		newToolsCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the provider clients. Logs go to
// stderr so stdout only carries answers.
func setup() (*config.Config, *app.Components, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	level := cfg.LogLevel
	if level == "INFO" {
		level = "WARN"
	}
	app.SetupLogger(os.Stderr, level)

	components, err := app.BuildComponents(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, components, nil
}

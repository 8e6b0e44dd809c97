package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"news-agent/internal/service"
)

func newStatusCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Validate the provider setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, components, err := setup()
			if err != nil {
				return err
			}
			st := components.StatusService().Status(cmd.Context(), probe)
			printStatus(cmd.OutOrStdout(), st)
			if !st.Ready {
				return fmt.Errorf("setup incomplete")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", true, "contact each configured provider once")
	return cmd
}

func printStatus(w io.Writer, st *service.Status) {
	fmt.Fprintf(w, "Serper:   %s\n", describe(st.Serper))
	fmt.Fprintf(w, "Clarifai: %s\n", describe(st.Clarifai))
	fmt.Fprintf(w, "Model:    %s\n", st.DefaultModel)
	for _, warning := range st.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
}

func describe(p service.ProviderStatus) string {
	switch {
	case !p.Configured:
		return "🔴 not configured"
	case !p.Checked:
		return "🟡 configured (not tested)"
	case p.Connected:
		return "🟢 connected"
	default:
		return "🔴 connection failed: " + p.Error
	}
}

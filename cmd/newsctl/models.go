package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, components, err := setup()
			if err != nil {
				return err
			}

			def := components.Catalog.Default().Name
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPROVIDER\tSPEED\tCOST\tDESCRIPTION")
			for _, m := range components.Catalog.List() {
				name := m.Name
				if name == def {
					name += " *"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, m.Provider, m.Speed, m.Cost, m.Description)
			}
			return w.Flush()
		},
	}
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tilewave/internal/catalog"
	"tilewave/internal/render"
)

func newCatalogsCmd(c *cli) *cobra.Command {
	var legend bool
	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "List the built-in tile sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "name\ttiles\tcell")
			sets := make([]*catalog.Set, 0)
			for _, name := range catalog.Builtins() {
				set, err := catalog.Builtin(name, c.cfg.Scale)
				if err != nil {
					return err
				}
				sets = append(sets, set)
				fmt.Fprintf(w, "%s\t%d\t%dpx\n", set.Name, len(set.Tiles), set.CellSize)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if legend {
				for _, set := range sets {
					fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n%s", set.Name, render.Legend(set.Tiles))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&legend, "legend", false, "also list every tile with its text symbol")
	return cmd
}

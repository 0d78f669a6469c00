package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tilewave/internal/logger"
	"tilewave/internal/render"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		out    string
		ascii  bool
		legend bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Solve one grid and write it as PNG and/or text",
		Example: `  tilewave generate --catalog coast --width 40 --height 24 --out coast.png
  tilewave generate --dir assets/circuit --seed 7 --ascii`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			defer c.flushMetrics(&err)

			set, err := c.loadSet()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(set, c.cfg.Seed)
			if err != nil {
				return err
			}
			if err := runner.Run(cmd.Context(), c.cfg.MaxResets); err != nil {
				return err
			}
			stats := runner.Stats()
			logger.Info("generated", "set", set.Name, "seed", c.cfg.Seed,
				"steps", stats.Steps, "resets", stats.Resets, "elapsed", stats.Elapsed)

			if out != "" {
				comp := render.NewCompositor(set, c.cfg.Width, c.cfg.Height)
				comp.Redraw(runner.Grid())
				if err := render.WritePNG(out, comp.Image()); err != nil {
					return err
				}
			}
			if ascii || out == "" {
				w := cmd.OutOrStdout()
				if legend {
					fmt.Fprint(w, render.Legend(set.Tiles))
					fmt.Fprintln(w)
				}
				fmt.Fprint(w, render.ASCII(runner.Grid()))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the solved grid as PNG to this path")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "print the grid as text (default when --out is empty)")
	cmd.Flags().BoolVar(&legend, "legend", false, "print the symbol legend before the text grid")
	return cmd
}

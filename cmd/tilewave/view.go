//go:build ebiten

package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"tilewave/internal/app"
	"tilewave/internal/catalog"
	"tilewave/internal/logger"
)

func newViewCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Watch the grid collapse in a window",
		Long: `view opens a window and collapses the grid live.

Keys: R restart with the same seed, S new seed, Space pause, N single step,
1 entropy heat map, Q or Esc quit.`,
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

			opts := app.Options{
				SkipDraw: c.cfg.Viewer.SkipDraw,
				Rate:     c.cfg.Viewer.Rate,
				Zoom:     c.cfg.Viewer.Zoom,
				Observer: c.recorder,
			}
			if c.cfg.Viewer.Watch && c.cfg.Dir != "" {
				changes, err := catalog.Watch(cmd.Context(), c.cfg.Dir)
				if err != nil {
					return err
				}
				opts.Changes = changes
				opts.Reload = c.loadSet
				logger.Info("watching catalog", "dir", c.cfg.Dir)
			}

			game := app.New(set, runner, opts)
			w, h := game.Layout(0, 0)
			ebiten.SetWindowTitle("tilewave - " + set.Name)
			ebiten.SetTPS(c.cfg.Viewer.TPS)
			ebiten.SetWindowSize(w, h)

			if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}
	c.flags.BindViewer(cmd.Flags())
	return cmd
}

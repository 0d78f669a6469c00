//go:build !ebiten

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newViewCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Watch the grid collapse in a window (needs -tags ebiten)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return errors.New("the viewer requires the ebiten build tag; rebuild with `go build -tags ebiten ./cmd/tilewave`")
		},
	}
	c.flags.BindViewer(cmd.Flags())
	return cmd
}

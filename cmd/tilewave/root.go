package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tilewave/internal/catalog"
	"tilewave/internal/config"
	"tilewave/internal/driver"
	"tilewave/internal/logger"
	"tilewave/internal/metrics"
)

// cli carries state shared by every subcommand of one invocation.
type cli struct {
	configPath string
	flags      config.Config // flag targets; only explicitly set flags are applied
	cfg        config.Config
	recorder   *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	c := &cli{flags: config.Default()}

	root := &cobra.Command{
		Use:   "tilewave",
		Short: "Generate tile maps with wave function collapse",
		Long: `tilewave fills a grid with tiles whose edge sockets agree, collapsing the
lowest-entropy cell one step at a time and restarting on contradictions.

Tiles come from a directory holding tiles.yaml (or tiles.yml / tiles.json)
plus images, or from a built-in set (see "tilewave catalogs").`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file")
	c.flags.Bind(root.PersistentFlags())

	root.AddCommand(
		newGenerateCmd(c),
		newSweepCmd(c),
		newCatalogsCmd(c),
		newViewCmd(c),
	)
	return root
}

// setup loads the config file, lays explicit flags over it and starts logging.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Logging); err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.MetricsOut != "" {
		c.recorder = metrics.New()
	}
	logger.Debug("configuration loaded", "config", c.configPath, "command", cmd.Name())
	return nil
}

// loadSet returns the tile set named by the configuration.
func (c *cli) loadSet() (*catalog.Set, error) {
	if c.cfg.Dir != "" {
		return catalog.Load(c.cfg.Dir, c.cfg.Scale)
	}
	return catalog.Builtin(c.cfg.Catalog, c.cfg.Scale)
}

func (c *cli) newRunner(set *catalog.Set, seed int64) (*driver.Runner, error) {
	return driver.New(set.Tiles, c.cfg.Width, c.cfg.Height, seed,
		driver.WithName(set.Name), driver.WithObserver(c.recorder))
}

// flushMetrics writes the metrics file, keeping the first error seen.
func (c *cli) flushMetrics(errp *error) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.WriteTextfile(c.cfg.MetricsOut); err != nil && *errp == nil {
		*errp = fmt.Errorf("write metrics: %w", err)
	}
}

// Package config holds the settings shared by every tilewave command:
// defaults, YAML file loading, flag binding and validation.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"tilewave/internal/logger"
)

// ErrNoSource is returned when neither a catalog directory nor a built-in set is named.
var ErrNoSource = errors.New("config: either dir or catalog must be set")

// Config represents the parameters of a generation run.
type Config struct {
	Dir        string        `yaml:"dir"`
	Catalog    string        `yaml:"catalog"`
	Width      int           `yaml:"width" validate:"gte=1,lte=4096"`
	Height     int           `yaml:"height" validate:"gte=1,lte=4096"`
	Scale      int           `yaml:"scale" validate:"gte=1,lte=32"`
	Seed       int64         `yaml:"seed"`
	MaxResets  int           `yaml:"max_resets" validate:"gte=0"`
	MetricsOut string        `yaml:"metrics_out"`
	Viewer     Viewer        `yaml:"viewer"`
	Sweep      Sweep         `yaml:"sweep"`
	Logging    logger.Config `yaml:"logging"`
}

// Viewer configures the interactive window.
type Viewer struct {
	SkipDraw int  `yaml:"skip_draw" validate:"gte=1"`
	Rate     int  `yaml:"rate" validate:"gte=0"`
	TPS      int  `yaml:"tps" validate:"gte=1,lte=240"`
	Zoom     int  `yaml:"zoom" validate:"gte=1,lte=16"`
	Watch    bool `yaml:"watch"`
}

// Sweep configures batch runs over consecutive seeds.
type Sweep struct {
	Runs    int `yaml:"runs" validate:"gte=1"`
	Workers int `yaml:"workers" validate:"gte=0"`
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		Catalog:   "pipes",
		Width:     20,
		Height:    20,
		Scale:     1,
		Seed:      42,
		MaxResets: 1000,
		Viewer:    Viewer{SkipDraw: 1, TPS: 60, Zoom: 2},
		Sweep:     Sweep{Runs: 16},
		Logging:   logger.DefaultConfig(),
	}
}

// Load returns the defaults overlaid with the YAML file at path (if any) and
// the logging environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	cfg.Logging.ApplyEnv()
	return cfg, nil
}

var validate = validator.New()

// Validate checks ranges and that a tile source is named.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Dir == "" && c.Catalog == "" {
		return ErrNoSource
	}
	return nil
}

// Bind attaches the generation parameters to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Dir, "dir", c.Dir, "directory holding tiles.yaml and tile images")
	fs.StringVar(&c.Catalog, "catalog", c.Catalog, "built-in tile set used when --dir is empty")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "integer tile image scale")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.IntVar(&c.MaxResets, "max-resets", c.MaxResets, "give up after this many contradictions (0 = never)")
	fs.StringVar(&c.MetricsOut, "metrics-out", c.MetricsOut, "write Prometheus text metrics to this file")
	fs.StringVar(&c.Logging.Level, "log-level", c.Logging.Level, "DEBUG, INFO, WARN or ERROR")
}

// BindViewer attaches the window parameters to the provided FlagSet.
func (c *Config) BindViewer(fs *pflag.FlagSet) {
	fs.IntVar(&c.Viewer.SkipDraw, "skip-draw", c.Viewer.SkipDraw, "collapses per frame")
	fs.IntVar(&c.Viewer.Rate, "rate", c.Viewer.Rate, "collapses per second (0 = skip-draw per frame)")
	fs.IntVar(&c.Viewer.TPS, "tps", c.Viewer.TPS, "ticks per second")
	fs.IntVar(&c.Viewer.Zoom, "zoom", c.Viewer.Zoom, "window pixel multiplier")
	fs.BoolVar(&c.Viewer.Watch, "watch", c.Viewer.Watch, "reload the catalog when files in --dir change")
}

// BindSweep attaches the batch parameters to the provided FlagSet.
func (c *Config) BindSweep(fs *pflag.FlagSet) {
	fs.IntVar(&c.Sweep.Runs, "runs", c.Sweep.Runs, "number of seeds to run")
	fs.IntVar(&c.Sweep.Workers, "workers", c.Sweep.Workers, "concurrent runs (0 = GOMAXPROCS)")
}

// ApplyFlags copies every flag explicitly set on fs onto c, so command-line
// values win over the config file.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	target := pflag.NewFlagSet("config", pflag.ContinueOnError)
	c.Bind(target)
	c.BindViewer(target)
	c.BindSweep(target)

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil || target.Lookup(f.Name) == nil {
			return
		}
		if setErr := target.Set(f.Name, f.Value.String()); setErr != nil {
			err = fmt.Errorf("config: --%s: %w", f.Name, setErr)
		}
	})
	return err
}

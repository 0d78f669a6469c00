package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
	assert.Equal(t, 1, cfg.Scale)
	assert.Equal(t, 1, cfg.Viewer.SkipDraw)
	assert.Equal(t, "pipes", cfg.Catalog)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilewave.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dir: assets/coast
width: 48
viewer:
  skip_draw: 8
logging:
  level: DEBUG
  console_format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "assets/coast", cfg.Dir)
	assert.Equal(t, 48, cfg.Width)
	assert.Equal(t, 20, cfg.Height, "unset keys keep their defaults")
	assert.Equal(t, 8, cfg.Viewer.SkipDraw)
	assert.Equal(t, 60, cfg.Viewer.TPS)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.ConsoleFormat)
	assert.True(t, cfg.Logging.ConsoleEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadAppliesLogEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero scale", func(c *Config) { c.Scale = 0 }},
		{"zero skip draw", func(c *Config) { c.Viewer.SkipDraw = 0 }},
		{"zero runs", func(c *Config) { c.Sweep.Runs = 0 }},
		{"bad log format", func(c *Config) { c.Logging.ConsoleFormat = "xml" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "LOUD" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var verrs validator.ValidationErrors
			assert.True(t, errors.As(err, &verrs))
		})
	}

	cfg := Default()
	cfg.Catalog = ""
	assert.ErrorIs(t, cfg.Validate(), ErrNoSource)
}

func TestBindUsesCurrentValues(t *testing.T) {
	cfg := Default()
	cfg.Width = 33
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.Bind(fs)
	cfg.BindViewer(fs)
	cfg.BindSweep(fs)

	assert.Equal(t, "33", fs.Lookup("width").DefValue)
	require.NoError(t, fs.Parse([]string{"--height", "7", "--skip-draw", "4", "--runs", "3", "--log-level", "WARN"}))
	assert.Equal(t, 7, cfg.Height)
	assert.Equal(t, 4, cfg.Viewer.SkipDraw)
	assert.Equal(t, 3, cfg.Sweep.Runs)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}

func TestApplyFlagsOnlyCopiesChangedFlags(t *testing.T) {
	flags := Default()
	fs := pflag.NewFlagSet("cli", pflag.ContinueOnError)
	flags.Bind(fs)
	flags.BindViewer(fs)
	fs.Bool("verbose", false, "not a config flag")
	require.NoError(t, fs.Parse([]string{"--width", "64", "--watch", "--verbose"}))

	fromFile := Default()
	fromFile.Width = 10
	fromFile.Height = 12
	require.NoError(t, fromFile.ApplyFlags(fs))

	assert.Equal(t, 64, fromFile.Width)
	assert.Equal(t, 12, fromFile.Height, "untouched flags keep file values")
	assert.True(t, fromFile.Viewer.Watch)
}

package logger

import (
	"os"
	"strconv"
)

// Config holds logging configuration.
type Config struct {
	Level          string `yaml:"level" validate:"omitempty,oneof=DEBUG INFO WARN WARNING ERROR debug info warn warning error"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format" validate:"omitempty,oneof=text json"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format" validate:"omitempty,oneof=text json"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb" validate:"gte=0"`
	FileMaxBackups int    `yaml:"file_max_backups" validate:"gte=0"`
	FileMaxAgeDays int    `yaml:"file_max_age_days" validate:"gte=0"`
}

// DefaultConfig returns the logging defaults: INFO text output to the console.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FileEnabled:    false,
		FilePath:       "logs/tilewave.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// ApplyEnv overrides fields from LOG_LEVEL, LOG_CONSOLE_FORMAT,
// LOG_FILE_ENABLED and LOG_FILE_PATH when they are set.
func (c *Config) ApplyEnv() {
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Level = logLevel
	}

	if consoleFormat := os.Getenv("LOG_CONSOLE_FORMAT"); consoleFormat != "" {
		c.ConsoleFormat = consoleFormat
	}

	if fileEnabled := os.Getenv("LOG_FILE_ENABLED"); fileEnabled != "" {
		if enabled, err := strconv.ParseBool(fileEnabled); err == nil {
			c.FileEnabled = enabled
		}
	}

	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		c.FilePath = filePath
	}
}

// Package config loads gcode-check settings from YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileFormat is the encoding of a configuration file.
type FileFormat int

const (
	// FileFormatTOML is TOML (default).
	FileFormatTOML FileFormat = iota
	// FileFormatYAML is YAML.
	FileFormatYAML
)

// String returns the format name.
func (f FileFormat) String() string {
	switch f {
	case FileFormatTOML:
		return "toml"
	case FileFormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Report output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the settings of the gcode-check CLI.
type Config struct {
	// Format is the report format: text, json or yaml.
	Format string `yaml:"format" toml:"format"`

	// Verbose raises operational logging to debug level.
	Verbose bool `yaml:"verbose" toml:"verbose"`

	// Suggest adds a closest-match hint to invalid commands.
	Suggest bool `yaml:"suggest" toml:"suggest"`

	// EventLog is a path that receives CBOR validation events. Empty disables it.
	EventLog string `yaml:"event_log" toml:"event_log"`

	// LogLevel is the slog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:   OutputText,
		Suggest:  true,
		LogLevel: "warn",
	}
}

// Load reads the file at path on top of Default and validates the result.
// The format follows the extension: .yaml and .yml are YAML, anything else
// is TOML.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data, DetectFormat(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default. Unknown keys are rejected.
func Parse(data []byte, format FileFormat) (Config, error) {
	cfg := Default()

	switch format {
	case FileFormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// A document without content decodes to io.EOF; keep the defaults.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("YAML parse error: %w", err)
		}
	case FileFormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("TOML parse error: unknown key %q", undecoded[0].String())
		}
	default:
		return Config{}, fmt.Errorf("unsupported format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DetectFormat determines the file format from the extension.
func DetectFormat(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FileFormatYAML
	default:
		return FileFormatTOML
	}
}

// Validate checks the output format and log level.
func (c Config) Validate() error {
	switch c.Format {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid format %q (want text, json or yaml)", c.Format)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level for operational logging. Verbose forces
// debug.
func (c Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

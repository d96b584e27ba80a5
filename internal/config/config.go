// Package config loads vym.yaml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sz10101/vym/pkg/adapters/process"
	"github.com/sz10101/vym/pkg/script"
	"github.com/sz10101/vym/pkg/xmlobj"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no path is given.
const DefaultFile = "vym.yaml"

// Clipboard backends.
const (
	ClipboardMemory = "memory"
	ClipboardRedis  = "redis"
)

var ErrInvalid = errors.New("invalid configuration")

// Config is the content of vym.yaml. The zero value is not valid; use Default.
type Config struct {
	LogLevel  string                   `yaml:"log_level"`
	XML       XML                      `yaml:"xml"`
	Fixes     Fixes                    `yaml:"fixes"`
	Clipboard Clipboard                `yaml:"clipboard"`
	HTTP      HTTP                     `yaml:"http"`
	Metrics   Metrics                  `yaml:"metrics"`
	Exporters []process.ExporterConfig `yaml:"exporters"`
}

type XML struct {
	IndentWidth int `yaml:"indent_width"`
}

// Fixes selects corrected behaviors. All default to the legacy behavior.
type Fixes struct {
	Script script.Fixes `yaml:"script"`
	XML    xmlobj.Fixes `yaml:"xml"`
}

type Clipboard struct {
	Backend   string `yaml:"backend"`
	RedisAddr string `yaml:"redis_addr"`
	Prefix    string `yaml:"prefix"`
}

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Metrics struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		XML:       XML{IndentWidth: 4},
		Clipboard: Clipboard{Backend: ClipboardMemory, RedisAddr: "localhost:6379"},
		HTTP:      HTTP{Addr: ":8080"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults unless
// the path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.XML.IndentWidth < 0 {
		return fmt.Errorf("%w: xml.indent_width must not be negative", ErrInvalid)
	}
	switch c.Clipboard.Backend {
	case ClipboardMemory, ClipboardRedis:
	default:
		return fmt.Errorf("%w: unknown clipboard backend %q", ErrInvalid, c.Clipboard.Backend)
	}
	if _, err := process.Index(c.Exporters); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalid, s)
	}
}

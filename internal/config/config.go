// Package config loads the jterm YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full configuration. Zero-valued keys in the file keep
// their defaults.
type Config struct {
	FPS           int           `yaml:"fps"`
	PollTimeout   time.Duration `yaml:"poll_timeout"`
	EscapeTimeout time.Duration `yaml:"escape_timeout"`
	Scroll        Scroll        `yaml:"scroll"`
	Mouse         bool          `yaml:"mouse"`
	KittyKeyboard bool          `yaml:"kitty_keyboard"`
	Log           Log           `yaml:"log"`
	Console       Console       `yaml:"console"`
	Metrics       Metrics       `yaml:"metrics"`
}

// Scroll holds the wheel coalescing parameters.
type Scroll struct {
	Step      int `yaml:"step"`
	Threshold int `yaml:"threshold"`
}

// Log configures the rotating debug log.
type Log struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Console is the diagnostic console address.
type Console struct {
	Addr string `yaml:"addr"`
}

// Metrics configures the optional Prometheus endpoint. Empty Addr disables it.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FPS:           60,
		PollTimeout:   50 * time.Millisecond,
		EscapeTimeout: 25 * time.Millisecond,
		Scroll:        Scroll{Step: 3, Threshold: 1},
		Mouse:         true,
		KittyKeyboard: true,
		Log:           Log{MaxSizeMB: 10, MaxBackups: 3},
		Console:       Console{Addr: "127.0.0.1:8765"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/jterm/config.yaml, falling back to
// the OS user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	return filepath.Join(dir, "jterm", "config.yaml")
}

// Load reads path over the defaults. An empty path uses DefaultPath; a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects out-of-range values.
func (c Config) Validate() error {
	var errs []error
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps must be in 1..240, got %d", c.FPS))
	}
	if c.PollTimeout <= 0 {
		errs = append(errs, fmt.Errorf("poll_timeout must be positive, got %s", c.PollTimeout))
	}
	if c.EscapeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("escape_timeout must be positive, got %s", c.EscapeTimeout))
	}
	if c.Scroll.Step < 1 {
		errs = append(errs, fmt.Errorf("scroll.step must be at least 1, got %d", c.Scroll.Step))
	}
	if c.Scroll.Threshold < 1 {
		errs = append(errs, fmt.Errorf("scroll.threshold must be at least 1, got %d", c.Scroll.Threshold))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		errs = append(errs, errors.New("log sizes must not be negative"))
	}
	if c.Console.Addr == "" {
		errs = append(errs, errors.New("console.addr must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

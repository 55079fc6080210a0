// Package config provides the typed configuration surface of the
// emokitten CLI: electrode selection, envelope filter tuning, and log
// verbosity, optionally loaded from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Verbosity controls log output.
type Verbosity string

const (
	Quiet Verbosity = "quiet"
	Info  Verbosity = "info"
	Debug Verbosity = "debug"
)

// IsValid reports whether v is a recognised verbosity.
func (v Verbosity) IsValid() bool {
	switch v {
	case Quiet, Info, Debug:
		return true
	}

	return false
}

// SlogLevel maps the verbosity onto a slog level.
func (v Verbosity) SlogLevel() slog.Level {
	switch v {
	case Quiet:
		return slog.LevelWarn
	case Debug:
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

// ErrInvalid wraps all configuration validation failures.
var ErrInvalid = errors.New("config: invalid")

// Config holds the user-tunable pipeline settings.
type Config struct {
	// Electrode names the channel to process.
	Electrode string `yaml:"electrode"`

	// LowpassCutoffHz is the envelope smoother cutoff in Hz.
	LowpassCutoffHz float64 `yaml:"lowpass_cutoff_hz"`

	// LowpassOrder is the envelope smoother filter order.
	LowpassOrder int `yaml:"lowpass_order"`

	// Verbosity selects quiet, info or debug logging.
	Verbosity Verbosity `yaml:"verbosity"`
}

// Default returns the shipped settings: the O1 occipital electrode with a
// 0.5 Hz, order-3 envelope smoother.
func Default() Config {
	return Config{
		Electrode:       "O1",
		LowpassCutoffHz: 0.5,
		LowpassOrder:    3,
		Verbosity:       Info,
	}
}

// Load reads a YAML file over the defaults. Unset fields keep their
// default values; the result is validated before being returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w (from %s)", err, path)
	}

	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.Electrode == "" {
		return fmt.Errorf("%w: electrode must not be empty", ErrInvalid)
	}

	if c.LowpassCutoffHz <= 0 {
		return fmt.Errorf("%w: lowpass cutoff %v Hz, want > 0", ErrInvalid, c.LowpassCutoffHz)
	}

	if c.LowpassOrder < 1 {
		return fmt.Errorf("%w: lowpass order %d, want >= 1", ErrInvalid, c.LowpassOrder)
	}

	if !c.Verbosity.IsValid() {
		return fmt.Errorf("%w: verbosity %q, want quiet, info or debug", ErrInvalid, c.Verbosity)
	}

	return nil
}

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Electrode != "O1" || cfg.LowpassCutoffHz != 0.5 || cfg.LowpassOrder != 3 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emokitten.yaml")

	data := "electrode: O2\nlowpass_cutoff_hz: 1.25\nverbosity: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Electrode != "O2" {
		t.Errorf("Electrode = %q, want O2", cfg.Electrode)
	}

	if cfg.LowpassCutoffHz != 1.25 {
		t.Errorf("LowpassCutoffHz = %v, want 1.25", cfg.LowpassCutoffHz)
	}

	// Unset field keeps its default.
	if cfg.LowpassOrder != 3 {
		t.Errorf("LowpassOrder = %d, want default 3", cfg.LowpassOrder)
	}

	if cfg.Verbosity != Debug {
		t.Errorf("Verbosity = %q, want debug", cfg.Verbosity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty electrode", func(c *Config) { c.Electrode = "" }},
		{"zero cutoff", func(c *Config) { c.LowpassCutoffHz = 0 }},
		{"negative cutoff", func(c *Config) { c.LowpassCutoffHz = -1 }},
		{"zero order", func(c *Config) { c.LowpassOrder = 0 }},
		{"bad verbosity", func(c *Config) { c.Verbosity = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestVerbositySlogLevels(t *testing.T) {
	if Quiet.SlogLevel() != slog.LevelWarn {
		t.Error("quiet should map to warn")
	}

	if Info.SlogLevel() != slog.LevelInfo {
		t.Error("info should map to info")
	}

	if Debug.SlogLevel() != slog.LevelDebug {
		t.Error("debug should map to debug")
	}
}

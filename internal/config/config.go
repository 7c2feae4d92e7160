// Package config loads the runtime configuration from TOML.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Runtime   RuntimeConfig   `toml:"runtime"`
	Selection SelectionConfig `toml:"selection"`
	Logging   LoggingConfig   `toml:"logging"`
}

type RuntimeConfig struct {
	TickRate  time.Duration `toml:"tick_rate"`
	MaxFrames uint64        `toml:"max_frames"` // 0 = run until signal
	Manifest  string        `toml:"manifest"`
}

type SelectionConfig struct {
	MultiSelect     bool `toml:"multi_select"`
	ExclusiveSelect bool `toml:"exclusive_select"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			TickRate: 50 * time.Millisecond,
		},
		Selection: SelectionConfig{
			MultiSelect:     false,
			ExclusiveSelect: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

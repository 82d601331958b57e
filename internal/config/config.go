// Package config loads the optional chipvm TOML configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds host-tunable emulation settings. Zero values fall back to
// the defaults below, so a partial file only overrides what it names.
type Config struct {
	// ClockHz is the nominal CPU rate in instructions per second.
	ClockHz float64 `toml:"clock_hz"`

	Quirks Quirks `toml:"quirks"`
}

// Quirks mirrors the interpreter compatibility toggles. All default to
// false (classic COSMAC VIP behavior).
type Quirks struct {
	ShiftInPlace bool `toml:"shift_in_place"`
	AddICarry    bool `toml:"add_i_carry"`
	KeepIndex    bool `toml:"keep_index"`
	JumpWithVX   bool `toml:"jump_with_vx"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{ClockHz: 600}
}

// Load reads a TOML config file, layering it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.ClockHz <= 0 {
		cfg.ClockHz = 600
	}
	return cfg, nil
}

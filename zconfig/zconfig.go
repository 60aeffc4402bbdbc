// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package zconfig manages the TOML run configuration the CLI's --config
// flag loads (spec.md §6), overridable by CLI flags. Its layout and
// load/save behavior are grounded on bastiangx-wordserve's
// pkg/config/config.go: a DefaultConfig with sensible values, loaded over
// with toml.DecodeFile, and written with toml.NewEncoder by Save. Load never
// writes a file; a missing file just yields the defaults.
package zconfig

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "zconfig: " + string(e) }

// SelectionConfig holds the defaults for the selector/refiner pipeline
// (spec.md §4.E, §4.F, §6).
type SelectionConfig struct {
	N                   int  `toml:"n"`
	Version             int  `toml:"version"`
	ForceR3             bool `toml:"force_r3"`
	ThrowBackLowScorers bool `toml:"throw_back_low_scorers"`
	RefineLevel         int  `toml:"refine_level"`
}

// CustomAlphabetConfig holds the §4.G custom-alphabet toggle and its
// explicit A0/A1/A2 overrides (spec.md §6 "-a0/-a1/-a2").
type CustomAlphabetConfig struct {
	Enabled bool   `toml:"enabled"`
	A0      string `toml:"a0"`
	A1      string `toml:"a1"`
	A2      string `toml:"a2"`
}

// OutputConfig holds the output-dialect defaults (spec.md §6 "-o", "-i").
type OutputConfig struct {
	Dialect      string `toml:"dialect"` // "input", "inform", or "zap"
	ForceInform6 bool   `toml:"force_inform6"`
	OnlyRefactor bool   `toml:"only_refactor"`
}

// Config is the full persisted run configuration.
type Config struct {
	Selection SelectionConfig      `toml:"selection"`
	Alphabet  CustomAlphabetConfig `toml:"alphabet"`
	Output    OutputConfig         `toml:"output"`
}

// DefaultConfig returns a Config with the engine's built-in defaults
// (spec.md §1, §4.E: N=96; §4.F: refine level 2 "Normal").
func DefaultConfig() *Config {
	return &Config{
		Selection: SelectionConfig{
			N:           96,
			Version:     5,
			RefineLevel: 2,
		},
		Output: OutputConfig{
			Dialect: "input",
		},
	}
}

// Load reads a TOML config file, falling back to DefaultConfig on any
// read/parse error rather than aborting the run (spec.md §7 "option errors
// ... warn and fall back to defaults; never fatal").
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); err != nil {
		return config, nil
	}
	if _, err := toml.DecodeFile(path, config); err != nil {
		return DefaultConfig(), err
	}
	return config, nil
}

// Save persists config as TOML to path, creating or truncating the file.
func Save(config *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(config)
}

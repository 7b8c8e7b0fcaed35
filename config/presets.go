// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "time"

// Default returns the configuration a CLI invocation uses when the user
// passes no exploration flags: a generous but finite timeout, no solution
// cap, and resolutions derived from the decision model.
func Default() Config {
	return Config{
		MaxSolutions:     0,
		TotalTimeout:     10 * time.Minute,
		TimeResolution:   0,
		MemoryResolution: 0,
	}
}

// Unbounded returns a configuration with every limit disabled, for
// interactive or test use where the caller manages cancellation itself via
// context.Context instead.
func Unbounded() Config {
	return Config{}
}

// PresetNames returns the configuration preset names GetPreset accepts.
func PresetNames() []string {
	return []string{"default", "unbounded"}
}

// GetPreset looks up a named preset, mirroring the teacher's
// GetParametersByName lookup-by-name idiom (config/presets.go).
func GetPreset(name string) (Config, error) {
	switch name {
	case "default":
		return Default(), nil
	case "unbounded":
		return Unbounded(), nil
	default:
		return Config{}, ErrUnknownPreset
	}
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	// ErrNegativeMaxSolutions is returned by Validate when MaxSolutions is
	// set to a value below zero rather than the documented unbounded
	// sentinel (zero or any other non-positive value).
	ErrNegativeMaxSolutions = errors.New("config: max solutions must not be negative")

	// ErrNegativeTimeout is returned by Validate when TotalTimeout is set
	// to a negative duration rather than the documented unbounded sentinel.
	ErrNegativeTimeout = errors.New("config: total timeout must not be negative")

	// ErrUnknownPreset is returned by GetPreset for a name that isn't one
	// of PresetNames.
	ErrUnknownPreset = errors.New("config: unknown preset name")
)

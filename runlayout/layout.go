// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package runlayout pins the on-disk shape of a run directory (spec.md §6
// last paragraph) and tracks input staleness across runs, grounded on the
// teacher's ringtail.SaveKeyPair/LoadKeyPair directory-management idiom.
package runlayout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Subdirectory names under a run's root.
const (
	DesignDir        = "design"
	PreidentifiedDir = "preidentified"
	ExploredDir      = "explored"
	ReverseDir       = "reverse"

	stampFilename = "input.stamp.json"
)

// ErrNotDirectory is returned when root exists but is not a directory.
var ErrNotDirectory = errors.New("runlayout: root exists and is not a directory")

// Layout pins the four sub-directories a run directory is made of:
// design-model inputs, pre-identified decision models, explored solutions,
// and reverse-identified outputs.
type Layout struct {
	Root string
}

// New returns a Layout rooted at root. It does not touch the filesystem.
func New(root string) *Layout {
	return &Layout{Root: root}
}

func (l *Layout) DesignPath() string        { return filepath.Join(l.Root, DesignDir) }
func (l *Layout) PreidentifiedPath() string { return filepath.Join(l.Root, PreidentifiedDir) }
func (l *Layout) ExploredPath() string      { return filepath.Join(l.Root, ExploredDir) }
func (l *Layout) ReversePath() string       { return filepath.Join(l.Root, ReverseDir) }
func (l *Layout) StampPath() string         { return filepath.Join(l.Root, stampFilename) }

// Ensure creates the four sub-directories (and the root) if they don't
// already exist.
func (l *Layout) Ensure() error {
	if info, err := os.Stat(l.Root); err == nil && !info.IsDir() {
		return ErrNotDirectory
	}
	for _, dir := range []string{l.DesignPath(), l.PreidentifiedPath(), l.ExploredPath(), l.ReversePath()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("runlayout: create %s: %w", dir, err)
		}
	}
	return nil
}

// Stamp records a single input file's path and modification time as they
// stood at the start of a run.
type Stamp struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
}

// StampDesignInputs walks the design directory and returns one Stamp per
// regular file found there, sorted by path.
func (l *Layout) StampDesignInputs() ([]Stamp, error) {
	var stamps []Stamp
	err := filepath.Walk(l.DesignPath(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		stamps = append(stamps, Stamp{Path: path, ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("runlayout: stamp design inputs: %w", err)
	}
	return stamps, nil
}

// LoadStamps reads the previously persisted stamp file, if any. A missing
// file is reported as (nil, nil) rather than an error: a fresh run
// directory has no prior stamps to compare against.
func (l *Layout) LoadStamps() ([]Stamp, error) {
	data, err := os.ReadFile(l.StampPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("runlayout: load stamps: %w", err)
	}
	var stamps []Stamp
	if err := json.Unmarshal(data, &stamps); err != nil {
		return nil, fmt.Errorf("runlayout: decode stamps: %w", err)
	}
	return stamps, nil
}

// SaveStamps persists stamps as the run's new input-stamp file.
func (l *Layout) SaveStamps(stamps []Stamp) error {
	data, err := json.Marshal(stamps)
	if err != nil {
		return fmt.Errorf("runlayout: encode stamps: %w", err)
	}
	if err := os.WriteFile(l.StampPath(), data, 0o644); err != nil {
		return fmt.Errorf("runlayout: save stamps: %w", err)
	}
	return nil
}

// CheckStamps reports whether current disagrees with the stamp file
// already persisted on disk for l. A length mismatch or any differing
// (path, mod time) pair counts as stale. It does not mutate the
// filesystem; callers that want the clear-on-stale behavior call
// ReconcileStamps instead.
func (l *Layout) CheckStamps(current []Stamp) (bool, error) {
	previous, err := l.LoadStamps()
	if err != nil {
		return false, err
	}
	return stampsDiffer(previous, current), nil
}

// stampsDiffer reports whether current disagrees with previous. A length
// mismatch or any differing (path, mod time) pair counts as stale.
func stampsDiffer(previous, current []Stamp) bool {
	if len(previous) != len(current) {
		return true
	}
	byPath := make(map[string]time.Time, len(previous))
	for _, s := range previous {
		byPath[s.Path] = s.ModTime
	}
	for _, s := range current {
		prevModTime, ok := byPath[s.Path]
		if !ok || !prevModTime.Equal(s.ModTime) {
			return true
		}
	}
	return false
}

// ReconcileStamps loads the previous stamp file, stamps the current design
// inputs, and clears explored/ and reverse/ (never design/ or
// preidentified/, which are the orchestrator's own inputs) if they
// disagree. It always persists the freshly computed stamps so the next run
// compares against this one. Returns whether a clear happened.
func (l *Layout) ReconcileStamps() (stale bool, err error) {
	previous, err := l.LoadStamps()
	if err != nil {
		return false, err
	}
	current, err := l.StampDesignInputs()
	if err != nil {
		return false, err
	}
	stale = stampsDiffer(previous, current)
	if stale {
		if err := l.clearDerived(); err != nil {
			return stale, err
		}
	}
	if err := l.SaveStamps(current); err != nil {
		return stale, err
	}
	return stale, nil
}

func (l *Layout) clearDerived() error {
	for _, dir := range []string{l.ExploredPath(), l.ReversePath()} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("runlayout: clear %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("runlayout: recreate %s: %w", dir, err)
		}
	}
	return nil
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command idesyde wires the identification engine and exploration driver
// together over a run directory. It carries no format-specific design
// model readers of its own (see model.DesignModelReader) — those are an
// explicit Non-goal — and it loads nothing from the run directory: the
// engine runs over an empty design-model set and no pre-identified
// decision models.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/idesyde/config"
	"github.com/luxfi/idesyde/identify"
	"github.com/luxfi/idesyde/internal/obslog"
	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/platform"
	"github.com/luxfi/idesyde/runlayout"
	"github.com/luxfi/idesyde/sdfrule"
)

func main() {
	var (
		runDir  = flag.String("run-dir", ".", "run directory (design/, preidentified/, explored/, reverse/)")
		preset  = flag.String("preset", "default", "config preset: "+presetList())
		verbose = flag.Bool("verbose", false, "enable structured logging to stderr")
	)
	flag.Parse()

	if err := run(*runDir, *preset, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "idesyde: %v\n", err)
		os.Exit(1)
	}
}

func presetList() string {
	names := config.PresetNames()
	s := ""
	for i, n := range names {
		if i > 0 {
			s += ","
		}
		s += n
	}
	return s
}

func run(runDir, preset string, verbose bool) error {
	cfg, err := config.GetPreset(preset)
	if err != nil {
		return fmt.Errorf("load preset: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := obslog.NewNoOp()
	if verbose {
		logger = obslog.NewProduction()
	}

	layout := runlayout.New(runDir)
	if err := layout.Ensure(); err != nil {
		return fmt.Errorf("ensure run directory: %w", err)
	}
	stale, err := layout.ReconcileStamps()
	if err != nil {
		return fmt.Errorf("reconcile input stamps: %w", err)
	}
	if stale {
		logger.Info("design inputs changed, cleared explored/ and reverse/")
	}

	metrics, err := identify.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	engine := identify.NewEngine(defaultRules(),
		identify.WithLogger(logger),
		identify.WithMetrics(metrics),
	)

	// Identification runs to its fixed point; cfg.TotalTimeout bounds
	// exploration only.
	ctx := context.Background()

	// No DesignModelReader is wired in (Non-goal, spec.md §1): this run
	// identifies over an empty design-model set.
	var designs []model.DesignModel
	pool, messages, err := engine.Run(ctx, designs, nil)
	if err != nil {
		return fmt.Errorf("run identification engine: %w", err)
	}
	for _, m := range messages {
		logger.Info(m.Text, "source", m.Source, "severity", m.Severity.String())
	}
	logger.Info("identification complete", "pool_size", pool.Len())

	return nil
}

// defaultRules is the identification rule set this binary ships with:
// SDF decomposition, then the two platform composition rules, grounded on
// the dataflow/sdfrule/platform packages this repo builds.
func defaultRules() []identify.Rule {
	return []identify.Rule{
		&sdfrule.Rule{},
		&platform.MemoryMappableRule{},
		&platform.TiledRule{},
	}
}


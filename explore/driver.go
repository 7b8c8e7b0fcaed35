// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package explore implements the exploration-driver contract (spec §4.7):
// a bid/explore protocol multiple competing drivers can implement, with
// dominance-based selection among their bids, plus a registry façade
// (supplemented component L) a CLI uses to pick an exploration driver for
// a given decision model.
package explore

import (
	"context"

	"github.com/luxfi/idesyde/config"
	"github.com/luxfi/idesyde/model"
)

// Bid describes one driver's willingness and competitiveness for exploring
// a particular decision model, per spec §4.7.
type Bid struct {
	DriverID         string
	CanExplore       bool
	IsExact          bool
	Competitiveness  float64
	TargetObjectives []string
	Properties       map[string]float64
}

// Solution is one point an exploration driver has found: a fully or
// partially decided DecisionModel plus the objective values it scores.
type Solution struct {
	Model      model.DecisionModel
	Objectives map[string]float64
}

// Driver is the contract an exploration back-end implements: Bid reports
// whether and how well it can explore a decision model without committing
// to doing so; Explore actually runs the search, streaming solutions as
// they're found.
type Driver interface {
	Bid(ctx context.Context, m model.DecisionModel) (Bid, error)
	Explore(ctx context.Context, m model.DecisionModel, prior []Solution, cfg config.Config) (<-chan Solution, error)
}

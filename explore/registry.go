// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package explore

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxfi/idesyde/model"
)

// Registry lets a CLI register multiple exploration drivers and pick the
// dominant bidder for a given decision model, grounded on
// rust-orchestration/src/exploration.rs's driver-selection loop
// (supplemented component L).
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{drivers: make(map[string]Driver)}
}

// Register adds driver under id, replacing any driver previously
// registered under the same id.
func (r *Registry) Register(id string, driver Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[id] = driver
}

// Select collects a Bid from every registered driver and returns the
// dominant one alongside the driver that produced it. Drivers whose Bid
// call errors are skipped, not fatal to the selection as a whole.
func (r *Registry) Select(ctx context.Context, m model.DecisionModel) (Driver, Bid, error) {
	r.mu.RLock()
	drivers := make(map[string]Driver, len(r.drivers))
	for id, d := range r.drivers {
		drivers[id] = d
	}
	r.mu.RUnlock()

	var bids []Bid
	for id, d := range drivers {
		bid, err := d.Bid(ctx, m)
		if err != nil {
			continue
		}
		bid.DriverID = id
		bids = append(bids, bid)
	}

	winner, ok := Dominant(bids)
	if !ok {
		return nil, Bid{}, fmt.Errorf("explore: no registered driver can explore category %q", m.Category())
	}
	return drivers[winner.DriverID], winner, nil
}

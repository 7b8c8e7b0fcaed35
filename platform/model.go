// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package platform implements the platform-composition identification
// rules (spec §4.6): combining a raw hardware topology with a separate
// runtime/scheduling layer into a composed dataflow-to-platform decision
// model, in both the memory-mappable and tiled multicore variants
// (supplemented component K).
package platform

import (
	"github.com/luxfi/idesyde/dataflow"
	"github.com/luxfi/idesyde/model"
)

// RuntimesAndProcessors is the decision model produced once a design's
// runtime/scheduler assignment has been identified independently of any
// particular hardware topology, grounded on
// rust-common/src/models.rs's RuntimesAndProcessors struct (lines 201–260).
type RuntimesAndProcessors struct {
	*dataflow.Runtimes
}

var _ model.DecisionModel = (*RuntimesAndProcessors)(nil)

func (r *RuntimesAndProcessors) Category() string            { return "RuntimesAndProcessors" }
func (r *RuntimesAndProcessors) BodyText() (string, bool)     { return "", false }
func (r *RuntimesAndProcessors) BodyBinary() ([]byte, bool)   { return nil, false }

// MemoryMappableMultiCore is the raw hardware decision model for a
// partitioned memory-mappable multicore: processing elements, memories, and
// communication elements with pre-computed routing paths between every
// (PE, memory) pair, grounded on rust-common/src/models.rs lines 261–380.
type MemoryMappableMultiCore struct {
	*dataflow.Platform
}

var _ model.DecisionModel = (*MemoryMappableMultiCore)(nil)

func (h *MemoryMappableMultiCore) Category() string          { return "PartitionedMemoryMappableMulticore" }
func (h *MemoryMappableMultiCore) BodyText() (string, bool)   { return "", false }
func (h *MemoryMappableMultiCore) BodyBinary() ([]byte, bool) { return nil, false }

// TiledMultiCore is the raw hardware decision model for a partitioned tiled
// multicore: each Tile bundles exactly one PE with its own local memory and
// network interface, communicating over CommunicationElements, grounded on
// rust-common/src/models.rs lines 381–475 (supplemented component K — the
// distillation only describes the memory-mappable variant explicitly).
type TiledMultiCore struct {
	Tiles                   map[string]struct{}
	CommunicationElements   map[string]struct{}
	MaxChannels             map[string]int
	BitsPerSecondPerChannel map[string]float64
	// RoutingPaths[(tile, tile)] is the ordered list of communication
	// elements a transfer between two tiles traverses.
	RoutingPaths map[dataflow.Pair][]string
}

var _ model.DecisionModel = (*TiledMultiCore)(nil)

// NewTiledMultiCore returns a TiledMultiCore with every map initialized
// empty.
func NewTiledMultiCore() *TiledMultiCore {
	return &TiledMultiCore{
		Tiles:                   make(map[string]struct{}),
		CommunicationElements:   make(map[string]struct{}),
		MaxChannels:             make(map[string]int),
		BitsPerSecondPerChannel: make(map[string]float64),
		RoutingPaths:            make(map[dataflow.Pair][]string),
	}
}

func (h *TiledMultiCore) Category() string { return "PartitionedTiledMulticore" }

func (h *TiledMultiCore) Part() map[string]struct{} {
	out := make(map[string]struct{}, len(h.Tiles)+len(h.CommunicationElements))
	for id := range h.Tiles {
		out[id] = struct{}{}
	}
	for id := range h.CommunicationElements {
		out[id] = struct{}{}
	}
	return out
}

func (h *TiledMultiCore) BodyText() (string, bool)   { return "", false }
func (h *TiledMultiCore) BodyBinary() ([]byte, bool) { return nil, false }

// asPlatform converts a TiledMultiCore into the dataflow.Platform shape the
// composed dataflow.Model expects: each tile acts as both its own
// processing element and its own memory (bundled, per the tiled
// architecture's defining property), with routing paths carried over
// verbatim.
func (h *TiledMultiCore) asPlatform() *dataflow.Platform {
	p := dataflow.NewPlatform()
	for tile := range h.Tiles {
		p.ProcessingElements[tile] = struct{}{}
		p.MemoryElements[tile] = struct{}{}
	}
	for id := range h.CommunicationElements {
		p.CommunicationElements[id] = struct{}{}
	}
	for id, n := range h.MaxChannels {
		p.MaxChannels[id] = n
	}
	for id, bps := range h.BitsPerSecondPerChannel {
		p.BitsPerSecondPerChannel[id] = bps
	}
	for pair, path := range h.RoutingPaths {
		p.RoutingPaths[pair] = path
	}
	return p
}

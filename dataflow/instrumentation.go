// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dataflow

import "github.com/luxfi/idesyde/model"

// Target names a (process, mappable) pair — a processing element or a
// programmable-logic element — that instrumentation data was collected
// for.
type Target struct {
	Process  string
	Mappable string
}

// Instrumentation carries the timing and memory figures a dataflow model's
// cost functions are computed from (spec §3). best/average/worst are
// integer cycles; ScaleFactor converts them to real time via
// real_time = integer / ScaleFactor.
type Instrumentation struct {
	Best    map[Target]uint64
	Average map[Target]uint64
	Worst   map[Target]uint64
	ScaleFactor uint64

	// MemoryRequirements[process][mappable] is in bits.
	MemoryRequirements map[Target]uint64
}

// NewInstrumentation returns an Instrumentation with every map initialized
// empty and a scale factor of 1 (no scaling).
func NewInstrumentation() *Instrumentation {
	return &Instrumentation{
		Best:                make(map[Target]uint64),
		Average:             make(map[Target]uint64),
		Worst:               make(map[Target]uint64),
		ScaleFactor:         1,
		MemoryRequirements:  make(map[Target]uint64),
	}
}

// HasMappableTarget reports whether process has at least one mappable
// target with a finite execution-time entry, the invariant spec §3
// requires before a process can be identified at all: "For every process
// there exists at least one mappable target (PE or PL) with a finite
// execution-time entry; absence forbids identification."
func (i *Instrumentation) HasMappableTarget(process string) bool {
	for t := range i.Average {
		if t.Process == process {
			return true
		}
	}
	return false
}

// AverageSeconds returns the real-time average execution time of process
// on mappable, or (0, false) if no instrumentation entry exists.
func (i *Instrumentation) AverageSeconds(process, mappable string) (float64, bool) {
	cycles, ok := i.Average[Target{Process: process, Mappable: mappable}]
	if !ok || i.ScaleFactor == 0 {
		return 0, false
	}
	return float64(cycles) / float64(i.ScaleFactor), true
}

// InstrumentedComputationTimes is the standalone decision-model form of
// Instrumentation (supplemented component J), used when timing data is
// identified independently of a fully-mapped dataflow-to-platform model —
// grounded on the original's InstrumentedComputationTimes decision model
// (rust-common/src/models.rs).
type InstrumentedComputationTimes struct {
	Instrumentation
	ProcessesCovered  map[string]struct{}
	MappablesCovered  map[string]struct{}
}

var _ model.DecisionModel = (*InstrumentedComputationTimes)(nil)

func (t *InstrumentedComputationTimes) Category() string { return "InstrumentedComputationTimes" }

func (t *InstrumentedComputationTimes) Part() map[string]struct{} {
	out := make(map[string]struct{}, len(t.ProcessesCovered)+len(t.MappablesCovered))
	for p := range t.ProcessesCovered {
		out[p] = struct{}{}
	}
	for m := range t.MappablesCovered {
		out[m] = struct{}{}
	}
	return out
}

func (t *InstrumentedComputationTimes) BodyText() (string, bool)   { return "", false }
func (t *InstrumentedComputationTimes) BodyBinary() ([]byte, bool) { return nil, false }

// InstrumentedMemoryRequirements is the standalone decision-model form of
// memory_requirements (supplemented component J).
type InstrumentedMemoryRequirements struct {
	Requirements     map[Target]uint64
	ProcessesCovered map[string]struct{}
	MappablesCovered map[string]struct{}
}

var _ model.DecisionModel = (*InstrumentedMemoryRequirements)(nil)

func (m *InstrumentedMemoryRequirements) Category() string { return "InstrumentedMemoryRequirements" }

func (m *InstrumentedMemoryRequirements) Part() map[string]struct{} {
	out := make(map[string]struct{}, len(m.ProcessesCovered)+len(m.MappablesCovered))
	for p := range m.ProcessesCovered {
		out[p] = struct{}{}
	}
	for mm := range m.MappablesCovered {
		out[mm] = struct{}{}
	}
	return out
}

func (m *InstrumentedMemoryRequirements) BodyText() (string, bool)   { return "", false }
func (m *InstrumentedMemoryRequirements) BodyBinary() ([]byte, bool) { return nil, false }

// HardwareImplementationArea is the standalone decision-model form of the
// programmable-logic required-area/latency figures (supplemented component
// J), grounded on rust-common/src/models.rs's HardwareImplementationArea.
type HardwareImplementationArea struct {
	RequiredArea       map[string]map[string]float64
	LatencyNumerator   map[string]map[string]uint64
	LatencyDenominator map[string]map[string]uint64
	ProcessesCovered   map[string]struct{}
	PLElementsCovered  map[string]struct{}
}

var _ model.DecisionModel = (*HardwareImplementationArea)(nil)

func (h *HardwareImplementationArea) Category() string { return "HardwareImplementationArea" }

func (h *HardwareImplementationArea) Part() map[string]struct{} {
	out := make(map[string]struct{}, len(h.ProcessesCovered)+len(h.PLElementsCovered))
	for p := range h.ProcessesCovered {
		out[p] = struct{}{}
	}
	for pl := range h.PLElementsCovered {
		out[pl] = struct{}{}
	}
	return out
}

func (h *HardwareImplementationArea) BodyText() (string, bool)   { return "", false }
func (h *HardwareImplementationArea) BodyBinary() ([]byte, bool) { return nil, false }

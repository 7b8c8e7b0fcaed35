// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dataflow implements the dataflow-to-platform decision model: the
// mathematically hardest concrete decision model in this system — an
// aperiodic asynchronous dataflow mapped onto a partitioned
// memory-mappable multicore, optionally with programmable logic (spec
// §3/§4.4). It carries the job-graph construction, transitive closure,
// throughput recomputation, and discretization-scaling machinery used to
// feed solver back-ends.
package dataflow

import (
	"fmt"

	"github.com/luxfi/idesyde/model"
)

// JobID labels one firing instance of a dataflow process.
type JobID struct {
	Process  string
	Instance uint64
}

func (j JobID) String() string { return fmt.Sprintf("%s[%d]", j.Process, j.Instance) }

// JobEdge is one edge of a job graph: a precedence relation between two
// firings, tagged strong (data dependency) or weak (self-successive
// ordering of the same actor), per spec §3.
type JobEdge struct {
	Src, Dst JobID
	Strong   bool
}

// Application is one aperiodic asynchronous dataflow application: a
// weakly-connected collection of processes and buffers with a job graph,
// per spec §3. Multiple Applications compose into one Model.
type Application struct {
	Processes map[string]struct{}
	Buffers   map[string]struct{}

	BufferMaxSizeBits   map[string]uint64
	BufferTokenSizeBits map[string]uint64

	// PutInBufferBits[process][buffer] is the number of bits process writes
	// to buffer per firing.
	PutInBufferBits map[string]map[string]uint64
	// GetFromBufferBits[process][buffer] is the number of bits process
	// reads from buffer per firing.
	GetFromBufferBits map[string]map[string]uint64

	// MaxElements[buffer], when non-nil, bounds the number of tokens the
	// buffer may hold — copied from the original design model's buffer
	// sizing when available. Per spec §9, absence of an original element
	// size means no upper bound is asserted; it stays nil rather than
	// defaulting to anything.
	MaxElements map[string]*uint64

	Jobs  []JobID
	Edges []JobEdge

	ProcessMinThroughput   map[string]float64
	ProcessPathMaxLatency  map[string]map[string]float64
}

// NewApplication returns an Application with every map initialized empty.
func NewApplication() *Application {
	return &Application{
		Processes:             make(map[string]struct{}),
		Buffers:               make(map[string]struct{}),
		BufferMaxSizeBits:      make(map[string]uint64),
		BufferTokenSizeBits:    make(map[string]uint64),
		PutInBufferBits:        make(map[string]map[string]uint64),
		GetFromBufferBits:      make(map[string]map[string]uint64),
		MaxElements:            make(map[string]*uint64),
		ProcessMinThroughput:   make(map[string]float64),
		ProcessPathMaxLatency:  make(map[string]map[string]float64),
	}
}

// part is the union of an Application's processes and buffers.
func (a *Application) part() map[string]struct{} {
	out := make(map[string]struct{}, len(a.Processes)+len(a.Buffers))
	for p := range a.Processes {
		out[p] = struct{}{}
	}
	for b := range a.Buffers {
		out[b] = struct{}{}
	}
	return out
}

// Model is the dataflow-to-platform decision model: a vector of dataflow
// Applications mapped onto a Platform, with Instrumentation supplying
// per-(process, mappable) timing/memory figures, and Decisions (nil until
// an exploration driver fills them) holding the mapping/scheduling
// variables.
type Model struct {
	CategoryName    string
	Applications    []*Application
	Platform        *Platform
	Runtimes        *Runtimes
	Instrumentation *Instrumentation
	Decisions       *Mapping
}

var _ model.DecisionModel = (*Model)(nil)

// NewModel builds a Model in the category named for the memory-mappable
// multicore variant, the one the spec's §4.4 analytical machinery targets.
func NewModel() *Model {
	return &Model{CategoryName: CategoryMemoryMappable}
}

const (
	// CategoryMemoryMappable is the decision-model category for a dataflow
	// mapped onto a partitioned memory-mappable multicore.
	CategoryMemoryMappable = "AperiodicAsynchronousDataflowToPartitionedMemoryMappableMulticore"
	// CategoryTiled is the decision-model category for a dataflow mapped
	// onto a partitioned tiled multicore (supplemented component K).
	CategoryTiled = "AperiodicAsynchronousDataflowToPartitionedTiledMulticore"
)

func (m *Model) Category() string { return m.CategoryName }

func (m *Model) Part() map[string]struct{} {
	out := make(map[string]struct{})
	for _, app := range m.Applications {
		for k := range app.part() {
			out[k] = struct{}{}
		}
	}
	if m.Platform != nil {
		for k := range m.Platform.part() {
			out[k] = struct{}{}
		}
	}
	return out
}

func (m *Model) BodyText() (string, bool) { return "", false }

func (m *Model) BodyBinary() ([]byte, bool) { return nil, false }

// process returns the application that declares the named process, and
// whether any application does.
func (m *Model) process(name string) (*Application, bool) {
	for _, app := range m.Applications {
		if _, ok := app.Processes[name]; ok {
			return app, true
		}
	}
	return nil, false
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dataflow

// Pair is a generic (PE, other-element) key, used both for a Platform's
// pre-computed (PE, memory) routing table and for a Mapping's (PE, CE)
// bandwidth reservations.
type Pair struct {
	PE    string
	Other string
}

// Platform is a partitioned hardware graph of processing elements,
// memories, and communication elements, plus pre-computed routing paths
// between any (PE, memory) pair and, optionally, programmable-logic
// elements (spec §3).
type Platform struct {
	ProcessingElements     map[string]struct{}
	MemoryElements         map[string]struct{}
	CommunicationElements  map[string]struct{}

	MaxChannels             map[string]int     // CE -> channel count
	BitsPerSecondPerChannel map[string]float64 // CE -> bandwidth

	// RoutingPaths[(PE,Memory)] is the ordered list of communication
	// elements a transfer between the pair traverses. Every pair
	// referenced by a mapping decision must have a non-empty path (spec
	// §3 invariants).
	RoutingPaths map[Pair][]string

	// Programmable logic, optional.
	ProgrammableLogicElements map[string]struct{}
	PLAvailableArea           map[string]float64
	// RequiredArea[process][plElement] and Latency{Numerator,Denominator}
	// are only meaningful for processes that can be offloaded to PL.
	RequiredArea       map[string]map[string]float64
	LatencyNumerator   map[string]map[string]uint64
	LatencyDenominator map[string]map[string]uint64
}

// NewPlatform returns a Platform with every map initialized empty.
func NewPlatform() *Platform {
	return &Platform{
		ProcessingElements:        make(map[string]struct{}),
		MemoryElements:            make(map[string]struct{}),
		CommunicationElements:     make(map[string]struct{}),
		MaxChannels:               make(map[string]int),
		BitsPerSecondPerChannel:   make(map[string]float64),
		RoutingPaths:              make(map[Pair][]string),
		ProgrammableLogicElements: make(map[string]struct{}),
		PLAvailableArea:           make(map[string]float64),
		RequiredArea:              make(map[string]map[string]float64),
		LatencyNumerator:          make(map[string]map[string]uint64),
		LatencyDenominator:        make(map[string]map[string]uint64),
	}
}

// Mappables returns every PE and PL element the platform can host a
// process on, per spec's "Mappable" glossary entry.
func (p *Platform) Mappables() []string {
	out := make([]string, 0, len(p.ProcessingElements)+len(p.ProgrammableLogicElements))
	for id := range p.ProcessingElements {
		out = append(out, id)
	}
	for id := range p.ProgrammableLogicElements {
		out = append(out, id)
	}
	return out
}

// Part is the exported form of part, used by other packages (e.g.
// platform) composing a Platform into a decision model of their own.
func (p *Platform) Part() map[string]struct{} { return p.part() }

func (p *Platform) part() map[string]struct{} {
	out := make(map[string]struct{}, len(p.ProcessingElements)+len(p.MemoryElements)+len(p.CommunicationElements))
	for id := range p.ProcessingElements {
		out[id] = struct{}{}
	}
	for id := range p.MemoryElements {
		out[id] = struct{}{}
	}
	for id := range p.CommunicationElements {
		out[id] = struct{}{}
	}
	for id := range p.ProgrammableLogicElements {
		out[id] = struct{}{}
	}
	return out
}

// SchedulerKind distinguishes runtime scheduling policies (spec §3).
type SchedulerKind int

const (
	BareMetal SchedulerKind = iota
	FixedPriority
	EDF
	SuperLoop
)

func (k SchedulerKind) String() string {
	switch k {
	case FixedPriority:
		return "FixedPriority"
	case EDF:
		return "EDF"
	case SuperLoop:
		return "SuperLoop"
	default:
		return "BareMetal"
	}
}

// Runtimes is the separate scheduling layer with affinity to processing
// elements: one runtime per PE (partitioned), and a scheduler kind per
// runtime (spec §3).
type Runtimes struct {
	Runtimes            map[string]struct{}
	Processors          map[string]struct{}
	RuntimeHost         map[string]string // runtime -> PE
	ProcessorAffinities map[string]string // PE -> runtime
	SchedulerKind       map[string]SchedulerKind
}

// NewRuntimes returns a Runtimes with every map initialized empty.
func NewRuntimes() *Runtimes {
	return &Runtimes{
		Runtimes:            make(map[string]struct{}),
		Processors:          make(map[string]struct{}),
		RuntimeHost:         make(map[string]string),
		ProcessorAffinities: make(map[string]string),
		SchedulerKind:       make(map[string]SchedulerKind),
	}
}

// Part is the union of a Runtimes' runtime and processor identifiers.
func (r *Runtimes) Part() map[string]struct{} {
	out := make(map[string]struct{}, len(r.Runtimes)+len(r.Processors))
	for id := range r.Runtimes {
		out[id] = struct{}{}
	}
	for id := range r.Processors {
		out[id] = struct{}{}
	}
	return out
}

// OneSchedulerPerProcessor reports whether every PE is the affinity target
// of exactly the runtime that claims it as host — the bijection
// prerequisite for platform composition (spec §4.6).
func (r *Runtimes) OneSchedulerPerProcessor() bool {
	for pe := range r.Processors {
		rt, ok := r.ProcessorAffinities[pe]
		if !ok || r.RuntimeHost[rt] != pe {
			return false
		}
	}
	return true
}

// OneProcessorPerScheduler is the inverse bijection check.
func (r *Runtimes) OneProcessorPerScheduler() bool {
	for rt := range r.Runtimes {
		pe, ok := r.RuntimeHost[rt]
		if !ok || r.ProcessorAffinities[pe] != rt {
			return false
		}
	}
	return true
}

// Mapping holds the decision variables of a dataflow-to-platform model:
// nil in an identified-but-unsolved model, filled by an exploration driver
// (spec §3).
type Mapping struct {
	ProcessesToRuntimeScheduling      map[string]string // process -> runtime
	ProcessesToMemoryMapping          map[string]string // process -> memory
	ProcessesToLogicProgrammableAreas map[string]string // process -> PL element
	BufferToMemoryMappings            map[string]string // buffer -> memory

	// SuperLoopSchedules[scheduler] is the ordered, cyclic list of process
	// names that scheduler's super-loop executes, only meaningful for
	// schedulers of kind SuperLoop.
	SuperLoopSchedules map[string][]string

	// Reservations[(PE,CE)] is the fraction of CE bandwidth reserved for
	// traffic originating at PE.
	Reservations map[Pair]float64
}

// NewMapping returns a Mapping with every map initialized empty.
func NewMapping() *Mapping {
	return &Mapping{
		ProcessesToRuntimeScheduling:      make(map[string]string),
		ProcessesToMemoryMapping:          make(map[string]string),
		ProcessesToLogicProgrammableAreas: make(map[string]string),
		BufferToMemoryMappings:            make(map[string]string),
		SuperLoopSchedules:                make(map[string][]string),
		Reservations:                      make(map[Pair]float64),
	}
}

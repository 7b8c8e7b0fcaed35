// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dataflow

import "errors"

// Sentinel errors returned by the dataflow package's analytical methods,
// mirrored on the teacher's sentinel-error style (config/errors.go).
var (
	// ErrCyclicJobGraph is returned by JobFollows when the job graph
	// contains a cycle, making topological ordering (and therefore
	// transitive closure) undefined.
	ErrCyclicJobGraph = errors.New("dataflow: job graph contains a cycle")

	// ErrNoMappableTarget is returned when a process has no mappable
	// target (PE or PL element) with a finite execution-time entry.
	ErrNoMappableTarget = errors.New("dataflow: process has no mappable target with finite execution time")

	// ErrOrphanBuffer is returned when a buffer is referenced by no
	// process's put/get maps.
	ErrOrphanBuffer = errors.New("dataflow: buffer is not referenced by any process")

	// ErrMissingRoutingPath is returned when a mapping decision requires
	// a (PE, memory) route the platform has no routing path for.
	ErrMissingRoutingPath = errors.New("dataflow: no routing path for required (PE, memory) pair")
)

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dataflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/idesyde/dataflow"
)

func pipelineApplication() *dataflow.Application {
	app := dataflow.NewApplication()
	app.Processes["A"] = struct{}{}
	app.Processes["B"] = struct{}{}
	a0 := dataflow.JobID{Process: "A", Instance: 0}
	a1 := dataflow.JobID{Process: "A", Instance: 1}
	b0 := dataflow.JobID{Process: "B", Instance: 0}
	app.Jobs = []dataflow.JobID{a0, a1, b0}
	app.Edges = []dataflow.JobEdge{
		{Src: a0, Dst: a1, Strong: false},
		{Src: a0, Dst: b0, Strong: true},
		{Src: a1, Dst: b0, Strong: true},
	}
	return app
}

func TestJobFollows_SingleActorNoEdges(t *testing.T) {
	app := dataflow.NewApplication()
	app.Processes["A"] = struct{}{}
	job := dataflow.JobID{Process: "A", Instance: 0}
	app.Jobs = []dataflow.JobID{job}

	m := dataflow.NewModel()
	m.Applications = []*dataflow.Application{app}

	follows, err := m.JobFollows()
	require.NoError(t, err)
	require.Empty(t, follows[job])
}

func TestJobFollows_TwoActorPipelineTransitiveClosure(t *testing.T) {
	app := pipelineApplication()
	m := dataflow.NewModel()
	m.Applications = []*dataflow.Application{app}

	follows, err := m.JobFollows()
	require.NoError(t, err)

	a0 := dataflow.JobID{Process: "A", Instance: 0}
	a1 := dataflow.JobID{Process: "A", Instance: 1}
	b0 := dataflow.JobID{Process: "B", Instance: 0}

	// a0 leads to both a1 (direct) and b0 (direct, and transitively via a1).
	require.ElementsMatch(t, []dataflow.JobID{a1, b0}, follows[a0])
	require.ElementsMatch(t, []dataflow.JobID{b0}, follows[a1])
	require.ElementsMatch(t, []dataflow.JobID{}, follows[b0])
}

func TestJobFollows_CyclicGraphReturnsError(t *testing.T) {
	app := dataflow.NewApplication()
	app.Processes["A"] = struct{}{}
	a0 := dataflow.JobID{Process: "A", Instance: 0}
	a1 := dataflow.JobID{Process: "A", Instance: 1}
	app.Jobs = []dataflow.JobID{a0, a1}
	app.Edges = []dataflow.JobEdge{
		{Src: a0, Dst: a1},
		{Src: a1, Dst: a0},
	}

	m := dataflow.NewModel()
	m.Applications = []*dataflow.Application{app}

	_, err := m.JobFollows()
	require.ErrorIs(t, err, dataflow.ErrCyclicJobGraph)
}

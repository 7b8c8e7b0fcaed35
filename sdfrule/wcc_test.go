// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sdfrule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/idesyde/dataflow"
	"github.com/luxfi/idesyde/identify"
	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/sdfrule"
)

func TestRule_SingleActorNoChannels(t *testing.T) {
	sdf := sdfrule.NewAnalysedSDFApplication()
	sdf.Actors["A"] = struct{}{}
	sdf.RepetitionVector["A"] = 1

	rule := sdfrule.Rule{}
	result, err := rule.Identify(context.Background(), nil, []model.DecisionModel{sdf})
	require.NoError(t, err)
	require.Len(t, result.Models, 1)

	dm, ok := result.Models[0].(*dataflow.Model)
	require.True(t, ok)
	require.Len(t, dm.Applications, 1)
	require.Len(t, dm.Applications[0].Jobs, 1)
	require.Empty(t, dm.Applications[0].Edges)
}

func TestRule_DisjointSubgraphsProduceOneApplicationEach(t *testing.T) {
	sdf := sdfrule.NewAnalysedSDFApplication()
	for _, a := range []string{"A", "B", "C", "D"} {
		sdf.Actors[a] = struct{}{}
		sdf.RepetitionVector[a] = 1
	}
	sdf.Channels = []sdfrule.Channel{
		{ID: "ab", Src: "A", Dst: "B", Production: 1, Consumption: 1, TokenSizeBits: 8},
		{ID: "cd", Src: "C", Dst: "D", Production: 1, Consumption: 1, TokenSizeBits: 8},
	}

	rule := sdfrule.Rule{}
	result, err := rule.Identify(context.Background(), nil, []model.DecisionModel{sdf})
	require.NoError(t, err)
	require.Len(t, result.Models, 2, "two disjoint WCCs should produce two dataflow models")

	var total int
	for _, m := range result.Models {
		dm := m.(*dataflow.Model)
		require.Len(t, dm.Applications, 1)
		total += len(dm.Applications[0].Processes)
	}
	require.Equal(t, 4, total)
}

func TestRule_NoAnalysedSDFApplicationYieldsInfoMessage(t *testing.T) {
	rule := sdfrule.Rule{}
	result, err := rule.Identify(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Empty(t, result.Models)
	require.Len(t, result.Messages, 1)
	require.Equal(t, identify.Info, result.Messages[0].Severity)
}

func TestRule_EarliestFiringCreatesPrecedenceEdges(t *testing.T) {
	sdf := sdfrule.NewAnalysedSDFApplication()
	sdf.Actors["P"] = struct{}{}
	sdf.Actors["C"] = struct{}{}
	sdf.RepetitionVector["P"] = 2
	sdf.RepetitionVector["C"] = 2
	sdf.Channels = []sdfrule.Channel{
		{ID: "pc", Src: "P", Dst: "C", Production: 1, Consumption: 1, TokenSizeBits: 8},
	}

	rule := sdfrule.Rule{}
	result, err := rule.Identify(context.Background(), nil, []model.DecisionModel{sdf})
	require.NoError(t, err)
	require.Len(t, result.Models, 1)

	dm := result.Models[0].(*dataflow.Model)
	p0 := dataflow.JobID{Process: "P", Instance: 0}
	p1 := dataflow.JobID{Process: "P", Instance: 1}
	c0 := dataflow.JobID{Process: "C", Instance: 0}
	c1 := dataflow.JobID{Process: "C", Instance: 1}

	// One channel edge per target (consumer) firing, plus one weak
	// self-successive edge per actor with repetition > 1.
	require.Len(t, dm.Applications[0].Edges, 4)
	require.Contains(t, dm.Applications[0].Edges, dataflow.JobEdge{Src: p0, Dst: c0, Strong: true})
	require.Contains(t, dm.Applications[0].Edges, dataflow.JobEdge{Src: p1, Dst: c1, Strong: true})
	require.Contains(t, dm.Applications[0].Edges, dataflow.JobEdge{Src: p0, Dst: p1, Strong: false})
	require.Contains(t, dm.Applications[0].Edges, dataflow.JobEdge{Src: c0, Dst: c1, Strong: false})
}

func TestRule_EarliestFiringWithUnequalProductionConsumption(t *testing.T) {
	// P produces 2 tokens/firing, C consumes 1/firing: P fires once for
	// every two C firings. repetitions(P)=1, repetitions(C)=2.
	sdf := sdfrule.NewAnalysedSDFApplication()
	sdf.Actors["P"] = struct{}{}
	sdf.Actors["C"] = struct{}{}
	sdf.RepetitionVector["P"] = 1
	sdf.RepetitionVector["C"] = 2
	sdf.Channels = []sdfrule.Channel{
		{ID: "pc", Src: "P", Dst: "C", Production: 2, Consumption: 1, TokenSizeBits: 8},
	}

	rule := sdfrule.Rule{}
	result, err := rule.Identify(context.Background(), nil, []model.DecisionModel{sdf})
	require.NoError(t, err)
	require.Len(t, result.Models, 1)

	dm := result.Models[0].(*dataflow.Model)
	p0 := dataflow.JobID{Process: "P", Instance: 0}
	c0 := dataflow.JobID{Process: "C", Instance: 0}
	c1 := dataflow.JobID{Process: "C", Instance: 1}

	// q_t=1: q_s = ceil((1*1-0)/2) = 1. q_t=2: q_s = ceil((2*1-0)/2) = 1.
	// Both consumer firings are satisfied by the single producer firing;
	// no duplicated-per-target edge set and no channel edge touching a
	// nonexistent P instance 1.
	require.Len(t, dm.Applications[0].Edges, 3)
	require.Contains(t, dm.Applications[0].Edges, dataflow.JobEdge{Src: p0, Dst: c0, Strong: true})
	require.Contains(t, dm.Applications[0].Edges, dataflow.JobEdge{Src: p0, Dst: c1, Strong: true})
	require.Contains(t, dm.Applications[0].Edges, dataflow.JobEdge{Src: c0, Dst: c1, Strong: false})
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package platform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/idesyde/dataflow"
	"github.com/luxfi/idesyde/identify"
	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/platform"
)

// appOnlyModel builds the partial dataflow.Model sdfrule.wrapApplication
// would hand the pool: applications set, no platform yet.
func appOnlyModel() *dataflow.Model {
	app := dataflow.NewApplication()
	app.Processes["A"] = struct{}{}
	app.Jobs = []dataflow.JobID{{Process: "A", Instance: 0}}
	dm := dataflow.NewModel()
	dm.Applications = []*dataflow.Application{app}
	return dm
}

func TestMemoryMappableRule_ComposesOnBijection(t *testing.T) {
	rp := &platform.RuntimesAndProcessors{Runtimes: dataflow.NewRuntimes()}
	rp.Runtimes.Runtimes["rt0"] = struct{}{}
	rp.Runtimes.Processors["pe0"] = struct{}{}
	rp.Runtimes.RuntimeHost["rt0"] = "pe0"
	rp.Runtimes.ProcessorAffinities["pe0"] = "rt0"

	hw := &platform.MemoryMappableMultiCore{Platform: dataflow.NewPlatform()}
	hw.Platform.ProcessingElements["pe0"] = struct{}{}
	hw.Platform.MemoryElements["mem0"] = struct{}{}

	appModel := appOnlyModel()

	rule := platform.MemoryMappableRule{}
	result, err := rule.Identify(context.Background(), nil, []model.DecisionModel{rp, hw, appModel})
	require.NoError(t, err)
	require.Len(t, result.Models, 1)
	require.Empty(t, result.Messages)

	dm := result.Models[0].(*dataflow.Model)
	require.Equal(t, dataflow.CategoryMemoryMappable, dm.Category())
	require.Len(t, dm.Applications, 1)
	require.NotNil(t, dm.Platform)
}

// TestMemoryMappableRule_RejectsUnequalSchedulerProcessorCount mirrors spec
// §8 scenario 4: two processors, one runtime, rejected with a message
// naming the mismatch.
func TestMemoryMappableRule_RejectsUnequalSchedulerProcessorCount(t *testing.T) {
	rp := &platform.RuntimesAndProcessors{Runtimes: dataflow.NewRuntimes()}
	rp.Runtimes.Runtimes["rt0"] = struct{}{}
	rp.Runtimes.Processors["pe0"] = struct{}{}
	rp.Runtimes.Processors["pe1"] = struct{}{}

	hw := &platform.MemoryMappableMultiCore{Platform: dataflow.NewPlatform()}

	rule := platform.MemoryMappableRule{}
	result, err := rule.Identify(context.Background(), nil, []model.DecisionModel{rp, hw, appOnlyModel()})
	require.NoError(t, err)
	require.Empty(t, result.Models)
	require.Len(t, result.Messages, 1)
	require.Equal(t, identify.Warn, result.Messages[0].Severity)
	require.Contains(t, result.Messages[0].Text, "number of schedulers and processors not equal")
}

// TestMemoryMappableRule_NoApplicationYetProducesInfoMessage covers the case
// the bijection composes but no dataflow has been identified: the rule must
// not emit a platform-only model with no Applications.
func TestMemoryMappableRule_NoApplicationYetProducesInfoMessage(t *testing.T) {
	rp := &platform.RuntimesAndProcessors{Runtimes: dataflow.NewRuntimes()}
	rp.Runtimes.Runtimes["rt0"] = struct{}{}
	rp.Runtimes.Processors["pe0"] = struct{}{}
	rp.Runtimes.RuntimeHost["rt0"] = "pe0"
	rp.Runtimes.ProcessorAffinities["pe0"] = "rt0"

	hw := &platform.MemoryMappableMultiCore{Platform: dataflow.NewPlatform()}

	rule := platform.MemoryMappableRule{}
	result, err := rule.Identify(context.Background(), nil, []model.DecisionModel{rp, hw})
	require.NoError(t, err)
	require.Empty(t, result.Models)
	require.Len(t, result.Messages, 1)
	require.Equal(t, identify.Info, result.Messages[0].Severity)
}

func TestTiledRule_ComposesTilesAsPlatform(t *testing.T) {
	rp := &platform.RuntimesAndProcessors{Runtimes: dataflow.NewRuntimes()}
	rp.Runtimes.Runtimes["rt0"] = struct{}{}
	rp.Runtimes.Processors["tile0"] = struct{}{}
	rp.Runtimes.RuntimeHost["rt0"] = "tile0"
	rp.Runtimes.ProcessorAffinities["tile0"] = "rt0"

	hw := platform.NewTiledMultiCore()
	hw.Tiles["tile0"] = struct{}{}

	rule := platform.TiledRule{}
	result, err := rule.Identify(context.Background(), nil, []model.DecisionModel{rp, hw, appOnlyModel()})
	require.NoError(t, err)
	require.Len(t, result.Models, 1)

	dm := result.Models[0].(*dataflow.Model)
	require.Equal(t, dataflow.CategoryTiled, dm.Category())
	require.Len(t, dm.Applications, 1)
	_, isPE := dm.Platform.ProcessingElements["tile0"]
	_, isMem := dm.Platform.MemoryElements["tile0"]
	require.True(t, isPE)
	require.True(t, isMem)
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package platform

import (
	"context"

	"github.com/luxfi/idesyde/dataflow"
	"github.com/luxfi/idesyde/identify"
	"github.com/luxfi/idesyde/model"
)

const prerequisiteCategory = "RuntimesAndProcessors"

// MemoryMappableRule composes a RuntimesAndProcessors decision model with a
// MemoryMappableMultiCore hardware model into a dataflow.Model carrying
// both, once the bijection prerequisite holds (spec §4.6), grounded on
// rust-common/src/irules.rs's identify_partitioned_mem_mapped_multicore.
type MemoryMappableRule struct{}

var _ identify.Rule = MemoryMappableRule{}

func (MemoryMappableRule) Name() string              { return "compose-memory-mappable-platform" }
func (MemoryMappableRule) Marking() identify.Marking { return identify.SpecificPrerequisite }
func (MemoryMappableRule) Prerequisites() []string   { return []string{prerequisiteCategory} }

func (MemoryMappableRule) Identify(_ context.Context, _ []model.DesignModel, pool []model.DecisionModel) (identify.Result, error) {
	var result identify.Result
	appModels := filterApplicationModels(pool)
	if len(appModels) == 0 {
		result.Messages = append(result.Messages, identify.Message{
			Source:   "compose-memory-mappable-platform",
			Severity: identify.Info,
			Text:     "no dataflow application identified yet",
		})
		return result, nil
	}
	for _, rp := range filterRuntimesAndProcessors(pool) {
		for _, hw := range filterMemoryMappable(pool) {
			dm, msg, ok := composeBijection("compose-memory-mappable-platform", rp, appModels)
			if !ok {
				result.Messages = append(result.Messages, msg)
				continue
			}
			dm.CategoryName = dataflow.CategoryMemoryMappable
			dm.Platform = hw.Platform
			result.Models = append(result.Models, dm)
		}
	}
	return result, nil
}

// TiledRule composes a RuntimesAndProcessors decision model with a
// TiledMultiCore hardware model, grounded on
// rust-common/src/irules.rs's identify_partitioned_tiled_multicore
// (supplemented component K).
type TiledRule struct{}

var _ identify.Rule = TiledRule{}

func (TiledRule) Name() string              { return "compose-tiled-platform" }
func (TiledRule) Marking() identify.Marking { return identify.SpecificPrerequisite }
func (TiledRule) Prerequisites() []string   { return []string{prerequisiteCategory} }

func (TiledRule) Identify(_ context.Context, _ []model.DesignModel, pool []model.DecisionModel) (identify.Result, error) {
	var result identify.Result
	appModels := filterApplicationModels(pool)
	if len(appModels) == 0 {
		result.Messages = append(result.Messages, identify.Message{
			Source:   "compose-tiled-platform",
			Severity: identify.Info,
			Text:     "no dataflow application identified yet",
		})
		return result, nil
	}
	for _, rp := range filterRuntimesAndProcessors(pool) {
		for _, hw := range filterTiled(pool) {
			dm, msg, ok := composeBijection("compose-tiled-platform", rp, appModels)
			if !ok {
				result.Messages = append(result.Messages, msg)
				continue
			}
			dm.CategoryName = dataflow.CategoryTiled
			dm.Platform = hw.asPlatform()
			result.Models = append(result.Models, dm)
		}
	}
	return result, nil
}

// composeBijection checks the scheduler/processor bijection prerequisite
// and, if it holds, returns a partially-built dataflow.Model with Runtimes
// and the identified dataflow applications already merged in (the caller
// fills in Platform and CategoryName). On failure it returns the rejection
// message spec §8 scenario 4 expects.
//
// Without this merge, the application-carrying model sdfrule produces and
// the platform-carrying model built here would stay two permanently
// separate, incomparable pool entries — spec §2's control flow requires one
// combined decision model once both a dataflow and a platform have been
// identified.
func composeBijection(source string, rp *RuntimesAndProcessors, appModels []*dataflow.Model) (*dataflow.Model, identify.Message, bool) {
	if len(rp.Runtimes.Runtimes) != len(rp.Runtimes.Processors) {
		return nil, identify.Message{
			Source:   source,
			Severity: identify.Warn,
			Text:     "number of schedulers and processors not equal",
		}, false
	}
	if !rp.OneSchedulerPerProcessor() || !rp.OneProcessorPerScheduler() {
		return nil, identify.Message{
			Source:   source,
			Severity: identify.Warn,
			Text:     "schedulers and processors are not in a one-to-one affinity bijection",
		}, false
	}
	m := dataflow.NewModel()
	m.Runtimes = rp.Runtimes
	for _, am := range appModels {
		m.Applications = append(m.Applications, am.Applications...)
	}
	return m, identify.Message{}, true
}

func filterRuntimesAndProcessors(pool []model.DecisionModel) []*RuntimesAndProcessors {
	var out []*RuntimesAndProcessors
	for _, m := range pool {
		if rp, ok := m.(*RuntimesAndProcessors); ok {
			out = append(out, rp)
		}
	}
	return out
}

func filterMemoryMappable(pool []model.DecisionModel) []*MemoryMappableMultiCore {
	var out []*MemoryMappableMultiCore
	for _, m := range pool {
		if hw, ok := m.(*MemoryMappableMultiCore); ok {
			out = append(out, hw)
		}
	}
	return out
}

// filterApplicationModels picks out dataflow.Model entries from the pool
// that carry applications but no platform yet — the partial models
// sdfrule.wrapApplication produces before any composition rule has run.
// Models that already have a Platform are the composed output of this
// package's own rules, not input to it, and are excluded so repeated
// engine iterations don't keep re-merging already-composed models into
// themselves.
func filterApplicationModels(pool []model.DecisionModel) []*dataflow.Model {
	var out []*dataflow.Model
	for _, m := range pool {
		dm, ok := m.(*dataflow.Model)
		if !ok {
			continue
		}
		if len(dm.Applications) == 0 || dm.Platform != nil {
			continue
		}
		out = append(out, dm)
	}
	return out
}

func filterTiled(pool []model.DecisionModel) []*TiledMultiCore {
	var out []*TiledMultiCore
	for _, m := range pool {
		if hw, ok := m.(*TiledMultiCore); ok {
			out = append(out, hw)
		}
	}
	return out
}

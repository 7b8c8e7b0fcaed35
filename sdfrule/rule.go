// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sdfrule

import (
	"context"
	"fmt"

	"github.com/luxfi/idesyde/dataflow"
	"github.com/luxfi/idesyde/identify"
	"github.com/luxfi/idesyde/model"
)

// Rule identifies AnalysedSDFApplication decision models already present in
// the pool and decomposes each into one or more dataflow.Model instances,
// one per weakly-connected component. It never reads design models, so its
// Marking is DecisionOnly: it only ever fires once an AnalysedSDFApplication
// has already been produced by some earlier rule or supplied pre-identified.
type Rule struct{}

var _ identify.Rule = Rule{}

func (Rule) Name() string                { return "sdf-to-dataflow" }
func (Rule) Marking() identify.Marking   { return identify.DecisionOnly }
func (Rule) Prerequisites() []string     { return nil }

func (Rule) Identify(_ context.Context, _ []model.DesignModel, pool []model.DecisionModel) (identify.Result, error) {
	var sdfApps []*AnalysedSDFApplication
	for _, m := range pool {
		if app, ok := m.(*AnalysedSDFApplication); ok {
			sdfApps = append(sdfApps, app)
		}
	}
	if len(sdfApps) == 0 {
		return identify.Result{Messages: []identify.Message{{
			Source:   "sdf-to-dataflow",
			Severity: identify.Info,
			Text:     "no AnalyzedSDFApplication detected",
		}}}, nil
	}

	var result identify.Result
	for _, sdf := range sdfApps {
		if err := checkRepetitionVectorComplete(sdf); err != nil {
			result.Messages = append(result.Messages, identify.Message{
				Source:   "sdf-to-dataflow",
				Severity: identify.Error,
				Text:     err.Error(),
			})
			continue
		}
		apps := decompose(sdf)
		for _, app := range apps {
			result.Models = append(result.Models, wrapApplication(app))
		}
	}
	return result, nil
}

// checkRepetitionVectorComplete ensures every actor in sdf.Actors has a
// repetition-vector entry, the prerequisite the earliest-firing
// formula depends on.
func checkRepetitionVectorComplete(sdf *AnalysedSDFApplication) error {
	for actor := range sdf.Actors {
		if _, ok := sdf.RepetitionVector[actor]; !ok {
			return fmt.Errorf("sdfrule: actor %q has no repetition-vector entry", actor)
		}
	}
	return nil
}

// wrapApplication produces a single-application dataflow.Model so it can be
// inserted into the identification pool as its own decision model; later
// platform-composition rules extend it with a Platform/Runtimes before a
// mapping decision can be made.
func wrapApplication(app *dataflow.Application) *dataflow.Model {
	m := dataflow.NewModel()
	m.Applications = []*dataflow.Application{app}
	return m
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reverse implements the reverse-identification pass (supplemented
// component I): projecting an exploration solution's decisions back onto
// the design models they originated from, so a design-space tool can
// annotate its own artifacts with the chosen mapping.
package reverse

import (
	"context"
	"encoding/json"

	"github.com/luxfi/idesyde/dataflow"
	"github.com/luxfi/idesyde/explore"
	"github.com/luxfi/idesyde/model"
)

// ReverseIdentifier projects exploration solutions back onto the design
// models that were identified into them, returning a new slice of design
// models carrying the solutions' decisions as annotations. Design model
// identity (category + elements) is preserved; only the body changes.
type ReverseIdentifier interface {
	ReverseIdentify(ctx context.Context, solutions []explore.Solution, designs []model.DesignModel) ([]model.DesignModel, error)
}

// DataflowReverseIdentifier is the default ReverseIdentifier: it reads
// dataflow.Model solutions' Decisions and annotates every design model
// element that names a mapped process or buffer with its host, grounded on
// rust-orchestration/src/orchestration.rs's reverse pass and spec.md §8
// scenario 6.
type DataflowReverseIdentifier struct{}

var _ ReverseIdentifier = DataflowReverseIdentifier{}

// hostAnnotation is the body shape written onto an annotated design model.
type hostAnnotation struct {
	Host map[string]string `json:"host"`
}

func (DataflowReverseIdentifier) ReverseIdentify(_ context.Context, solutions []explore.Solution, designs []model.DesignModel) ([]model.DesignModel, error) {
	hostOf := make(map[string]string)
	// firingsOrdering is populated from each solution's super-loop
	// schedules for completeness with the original implementation, but per
	// spec.md §9 it is never asserted on by any caller in this repo; the
	// original likewise builds it without consuming it.
	firingsOrdering := make(map[string][]dataflow.JobID)

	for _, sol := range solutions {
		dm, ok := sol.Model.(*dataflow.Model)
		if !ok || dm.Decisions == nil {
			continue
		}
		for process, runtime := range dm.Decisions.ProcessesToRuntimeScheduling {
			hostOf[process] = runtime
		}
		for process, pl := range dm.Decisions.ProcessesToLogicProgrammableAreas {
			if _, exists := hostOf[process]; !exists {
				hostOf[process] = pl
			}
		}
		for buffer, mem := range dm.Decisions.BufferToMemoryMappings {
			if _, exists := hostOf[buffer]; !exists {
				hostOf[buffer] = mem
			}
		}
		for _, order := range dm.Decisions.SuperLoopSchedules {
			for i, process := range order {
				firingsOrdering[process] = append(firingsOrdering[process], dataflow.JobID{Process: process, Instance: uint64(i)})
			}
		}
	}

	out := make([]model.DesignModel, len(designs))
	for i, d := range designs {
		out[i] = annotateHost(d, hostOf)
	}
	return out, nil
}

// annotateHost returns d unchanged if none of its elements were mapped, or
// a new design model of the same category/format/elements with a JSON host
// annotation as its body otherwise.
func annotateHost(d model.DesignModel, hostOf map[string]string) model.DesignModel {
	annotations := make(map[string]string)
	for e := range d.Elements() {
		if host, ok := hostOf[e]; ok {
			annotations[e] = host
		}
	}
	if len(annotations) == 0 {
		return d
	}

	body, err := json.Marshal(hostAnnotation{Host: annotations})
	if err != nil {
		return d
	}
	text := string(body)
	return &model.GenericDesignModel{
		CategoryName: d.Category(),
		FormatName:   d.Format(),
		ElementSet:   d.Elements(),
		Body:         &text,
	}
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sdfrule implements the SDF-to-dataflow identification rule (spec
// §4.5): decomposing a synchronous dataflow graph into its weakly-connected
// components, each becoming its own aperiodic asynchronous dataflow
// application with a job graph derived from the earliest-firing precedence
// formula.
package sdfrule

import "github.com/luxfi/idesyde/model"

// Channel is a directed SDF arc: Src fires, producing Production tokens per
// firing; Dst consumes Consumption tokens per firing; InitialTokens are
// present before the first firing of either actor.
type Channel struct {
	ID            string
	Src, Dst      string
	Production    uint64
	Consumption   uint64
	InitialTokens uint64
	TokenSizeBits uint64
}

// AnalysedSDFApplication is the decision model sdfrule.Rule consumes: an SDF
// graph topology plus its already-computed repetition vector (the number of
// firings each actor must execute in one minimal periodic schedule),
// grounded on the original's AnalysedSDFApplication model
// (rust-common/src/models.rs's SDF analysis output).
type AnalysedSDFApplication struct {
	Actors           map[string]struct{}
	Channels         []Channel
	RepetitionVector map[string]uint64
}

var _ model.DecisionModel = (*AnalysedSDFApplication)(nil)

// NewAnalysedSDFApplication returns an AnalysedSDFApplication with its maps
// initialized empty.
func NewAnalysedSDFApplication() *AnalysedSDFApplication {
	return &AnalysedSDFApplication{
		Actors:           make(map[string]struct{}),
		RepetitionVector: make(map[string]uint64),
	}
}

func (a *AnalysedSDFApplication) Category() string { return "AnalysedSDFApplication" }

func (a *AnalysedSDFApplication) Part() map[string]struct{} {
	out := make(map[string]struct{}, len(a.Actors)+len(a.Channels))
	for actor := range a.Actors {
		out[actor] = struct{}{}
	}
	for _, c := range a.Channels {
		out[c.ID] = struct{}{}
	}
	return out
}

func (a *AnalysedSDFApplication) BodyText() (string, bool)   { return "", false }
func (a *AnalysedSDFApplication) BodyBinary() ([]byte, bool) { return nil, false }

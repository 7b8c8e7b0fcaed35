// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package identify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/idesyde/identify"
	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/opaque"
)

type concreteModel struct {
	category string
	part     map[string]struct{}
}

func (c *concreteModel) Category() string           { return c.category }
func (c *concreteModel) Part() map[string]struct{}  { return c.part }
func (c *concreteModel) BodyText() (string, bool)   { return "", false }
func (c *concreteModel) BodyBinary() ([]byte, bool) { return nil, false }

// fixedRule returns a fixed set of models exactly once, then nothing.
type fixedRule struct {
	name     string
	marking  identify.Marking
	prereqs  []string
	models   []model.DecisionModel
	messages []identify.Message
	fired    bool
	panics   bool
}

func (r *fixedRule) Name() string                  { return r.name }
func (r *fixedRule) Marking() identify.Marking      { return r.marking }
func (r *fixedRule) Prerequisites() []string        { return r.prereqs }
func (r *fixedRule) Identify(_ context.Context, _ []model.DesignModel, _ []model.DecisionModel) (identify.Result, error) {
	if r.panics {
		panic("boom")
	}
	if r.fired {
		return identify.Result{}, nil
	}
	r.fired = true
	return identify.Result{Models: r.models, Messages: r.messages}, nil
}

func TestEngine_OpaqueConcretization(t *testing.T) {
	env := opaque.New("X", model.ElementSet("e1", "e2"))
	concrete := &concreteModel{category: "X", part: model.ElementSet("e1", "e2")}

	rule := &fixedRule{name: "concretize-x", marking: identify.DecisionOnly, models: []model.DecisionModel{concrete}}
	engine := identify.NewEngine([]identify.Rule{rule})

	pool, _, err := engine.Run(context.Background(), nil, []model.DecisionModel{env})
	require.NoError(t, err)
	require.Equal(t, 1, pool.Len())
	require.False(t, model.IsOpaque(pool.Models()[0]))
}

func TestEngine_SpecificPrerequisiteWaitsForCategory(t *testing.T) {
	seed := &concreteModel{category: "Seed", part: model.ElementSet("e1")}
	produced := &concreteModel{category: "Derived", part: model.ElementSet("e1")}

	seedRule := &fixedRule{name: "seed", marking: identify.DesignOnly, models: []model.DecisionModel{seed}}
	derivedRule := &fixedRule{
		name:    "derive",
		marking: identify.SpecificPrerequisite,
		prereqs: []string{"Seed"},
		models:  []model.DecisionModel{produced},
	}

	engine := identify.NewEngine([]identify.Rule{seedRule, derivedRule})
	pool, _, err := engine.Run(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, 2, pool.Len())
}

func TestEngine_PanicIsolatedAsMessage(t *testing.T) {
	panicky := &fixedRule{name: "panicky", marking: identify.Generic, panics: true}
	engine := identify.NewEngine([]identify.Rule{panicky})

	pool, messages, err := engine.Run(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0, pool.Len())
	require.Len(t, messages, 1)
	require.Equal(t, identify.Error, messages[0].Severity)
	require.Contains(t, messages[0].Text, "boom")
}

func TestEngine_Idempotent(t *testing.T) {
	m1 := &concreteModel{category: "X", part: model.ElementSet("e1")}
	engine := identify.NewEngine(nil)

	pool, _, err := engine.Run(context.Background(), nil, []model.DecisionModel{m1})
	require.NoError(t, err)

	again, _, err := identify.NewEngine(nil).Run(context.Background(), nil, pool.Models())
	require.NoError(t, err)
	require.True(t, pool.Equivalent(again))
}

func TestEngine_OrderIndependence(t *testing.T) {
	a := &concreteModel{category: "A", part: model.ElementSet("e1")}
	b := &concreteModel{category: "B", part: model.ElementSet("e2")}
	ruleA := &fixedRule{name: "a", marking: identify.Generic, models: []model.DecisionModel{a}}
	ruleB := &fixedRule{name: "b", marking: identify.Generic, models: []model.DecisionModel{b}}

	e1 := identify.NewEngine([]identify.Rule{ruleA, ruleB})
	p1, _, err := e1.Run(context.Background(), nil, nil)
	require.NoError(t, err)

	// fixedRule fires only once, so the second engine gets fresh instances.
	ruleA2 := &fixedRule{name: "a", marking: identify.Generic, models: []model.DecisionModel{a}}
	ruleB2 := &fixedRule{name: "b", marking: identify.Generic, models: []model.DecisionModel{b}}
	e2 := identify.NewEngine([]identify.Rule{ruleB2, ruleA2})
	p2, _, err := e2.Run(context.Background(), nil, nil)
	require.NoError(t, err)

	require.True(t, p1.Equivalent(p2))
	require.True(t, p1.NoneDominated())
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package identify implements the fixed-point identification engine: the
// monotone computation that repeatedly applies a registered set of
// identification rules to the current pool of design and decision models,
// growing the pool until no rule produces new information (spec §4.3).
package identify

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/idesyde/internal/obslog"
	"github.com/luxfi/idesyde/model"
)

// Marking classifies when a rule is eligible to run within an iteration.
type Marking int

const (
	// DesignOnly rules consume design models only; they run on iteration 0.
	DesignOnly Marking = iota
	// DecisionOnly rules consume decision models only; they run on
	// iterations >= 1.
	DecisionOnly
	// SpecificPrerequisite rules run on iterations >= 1 once the pool
	// contains at least one model of every category named by
	// Prerequisites().
	SpecificPrerequisite
	// Generic rules run every iteration.
	Generic
)

func (m Marking) String() string {
	switch m {
	case DesignOnly:
		return "DesignOnly"
	case DecisionOnly:
		return "DecisionOnly"
	case SpecificPrerequisite:
		return "SpecificPrerequisite"
	case Generic:
		return "Generic"
	default:
		return "Unknown"
	}
}

// Result is what a Rule returns for one iteration: zero or more new
// decision models plus informational/error messages. A rule never aborts
// the engine (spec §4.3 Failure model).
type Result struct {
	Models   []model.DecisionModel
	Messages []Message
}

// Rule is one registered identification rule.
type Rule interface {
	// Name identifies the rule in logs and messages.
	Name() string
	Marking() Marking
	// Prerequisites lists the decision-model categories a
	// SpecificPrerequisite rule needs present in the pool before it runs.
	// Ignored for every other marking.
	Prerequisites() []string
	// Identify is handed immutable snapshots of the design models and the
	// current pool; it must not mutate either.
	Identify(ctx context.Context, designs []model.DesignModel, pool []model.DecisionModel) (Result, error)
}

// Engine runs a fixed set of rules to a fixed point over a pool of
// decision models.
type Engine struct {
	rules   []Rule
	log     obslog.Logger
	metrics *engineMetrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger installs a structured logger. Defaults to a no-op logger.
func WithLogger(l obslog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics installs the collectors built by NewMetrics, which the engine
// updates once per iteration. Defaults to nil (metrics disabled).
func WithMetrics(m *engineMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine builds an Engine over the given rule set.
func NewEngine(rules []Rule, opts ...Option) *Engine {
	e := &Engine{rules: rules, log: obslog.NewNoOp()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the fixed-point loop of spec §4.3's algorithm box: evaluate
// applicable rules in parallel, merge their output serially into the pool,
// repeat until an iteration produces no change. An unchanged iteration 0
// does not end the run while DecisionOnly or SpecificPrerequisite rules are
// registered, since those only become eligible from iteration 1.
func (e *Engine) Run(ctx context.Context, designs []model.DesignModel, preIdentified []model.DecisionModel) (*Pool, []Message, error) {
	pool := NewPool(preIdentified)
	var messages []Message

	for iter := 0; ; iter++ {
		applicable := e.applicableRules(iter, pool)
		result, err := e.runIteration(ctx, applicable, designs, pool.Models())
		if err != nil {
			return pool, messages, err
		}
		messages = append(messages, result.Messages...)

		changed := false
		for _, m := range result.Models {
			if pool.Insert(m) {
				changed = true
			}
		}

		e.log.Debug("identification iteration complete",
			"iteration", iter,
			"rules_applied", len(applicable),
			"pool_size", pool.Len(),
			"changed", changed,
		)
		if e.metrics != nil {
			e.metrics.observeIteration(pool.Len())
		}

		if !changed {
			deferred := false
			if iter == 0 {
				for _, r := range e.rules {
					if mk := r.Marking(); mk == DecisionOnly || mk == SpecificPrerequisite {
						deferred = true
					}
				}
			}
			if !deferred {
				return pool, messages, nil
			}
		}
		if err := ctx.Err(); err != nil {
			return pool, messages, err
		}
	}
}

func (e *Engine) applicableRules(iter int, pool *Pool) []Rule {
	present := make(map[string]bool)
	for _, m := range pool.models {
		present[m.Category()] = true
	}

	var applicable []Rule
	for _, r := range e.rules {
		switch r.Marking() {
		case DesignOnly:
			if iter == 0 {
				applicable = append(applicable, r)
			}
		case DecisionOnly:
			if iter >= 1 {
				applicable = append(applicable, r)
			}
		case SpecificPrerequisite:
			if iter >= 1 && hasAll(present, r.Prerequisites()) {
				applicable = append(applicable, r)
			}
		case Generic:
			applicable = append(applicable, r)
		}
	}
	return applicable
}

func hasAll(present map[string]bool, categories []string) bool {
	for _, c := range categories {
		if !present[c] {
			return false
		}
	}
	return true
}

// runIteration evaluates rules in parallel within one iteration and merges
// their outputs serially — the merge step is the engine's sole
// linearizability boundary (spec §5). A panicking rule is caught and
// reduced to an error message; it never poisons the pool (spec §5 Failure
// isolation).
func (e *Engine) runIteration(ctx context.Context, rules []Rule, designs []model.DesignModel, poolSnapshot []model.DecisionModel) (Result, error) {
	outcomes := make([]Result, len(rules))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range rules {
		i, r := i, r
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					outcomes[i] = Result{Messages: []Message{{
						Source:   r.Name(),
						Severity: Error,
						Text:     fmt.Sprintf("rule panicked: %v", rec),
					}}}
				}
			}()
			res, ruleErr := r.Identify(gctx, designs, poolSnapshot)
			if ruleErr != nil {
				outcomes[i] = Result{Messages: []Message{{
					Source:   r.Name(),
					Severity: Error,
					Text:     ruleErr.Error(),
				}}}
				return nil
			}
			outcomes[i] = res
			return nil
		})
	}
	// g.Wait only ever returns nil: every goroutine swallows its own error
	// into a Message, per the "rules never throw out of the engine"
	// propagation rule (spec §7).
	_ = g.Wait()

	merged := Result{}
	for _, o := range outcomes {
		merged.Models = append(merged.Models, o.Models...)
		merged.Messages = append(merged.Messages, o.Messages...)
	}
	return merged, nil
}

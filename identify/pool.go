// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package identify

import (
	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/opaque"
)

// Pool is the growing set of decision models the identification engine
// maintains. It is mutated only by the serial merge step (spec §5): rules
// never see or touch it directly, only the snapshots they're handed.
type Pool struct {
	models []model.DecisionModel
}

// NewPool seeds a pool with pre-identified decision models.
func NewPool(preIdentified []model.DecisionModel) *Pool {
	p := &Pool{}
	for _, m := range preIdentified {
		p.Insert(m)
	}
	return p
}

// Models returns a snapshot slice of the pool's current contents. Callers
// must not mutate the returned slice's backing array.
func (p *Pool) Models() []model.DecisionModel {
	out := make([]model.DecisionModel, len(p.models))
	copy(out, p.models)
	return out
}

func (p *Pool) Len() int { return len(p.models) }

// Insert applies spec §4.3's merge rule for a single candidate model:
//
//   - if some incumbent is an opaque model that candidate dominates or
//     equals, candidate concretizes it (the opaque is replaced);
//   - else if no incumbent already dominates-or-equals candidate,
//     candidate is genuinely new information and is appended;
//   - else candidate is silently absorbed (dominated or duplicate).
//
// It returns whether the pool changed.
func (p *Pool) Insert(candidate model.DecisionModel) bool {
	for i, incumbent := range p.models {
		if opaque.Replaceable(incumbent, candidate) {
			p.models[i] = candidate
			return true
		}
	}
	for _, incumbent := range p.models {
		switch model.Compare(incumbent, candidate) {
		case model.Greater, model.Equal:
			return false
		}
	}
	p.models = append(p.models, candidate)
	return true
}

// NoneDominated reports whether the pool satisfies spec §8's invariant:
// for every m in P, no other n in P strictly dominates it.
func (p *Pool) NoneDominated() bool {
	for i, m := range p.models {
		for j, n := range p.models {
			if i == j {
				continue
			}
			if model.Dominates(n, m) {
				return false
			}
		}
	}
	return true
}

// Equivalent reports whether two pools are equal under the pool
// equivalence of spec §3/§8: same multiset of (category, part) up to
// model.Equivalent, irrespective of order.
func (p *Pool) Equivalent(other *Pool) bool {
	if len(p.models) != len(other.models) {
		return false
	}
	matched := make([]bool, len(other.models))
	for _, m := range p.models {
		found := false
		for j, n := range other.models {
			if matched[j] {
				continue
			}
			if model.Equivalent(m, n) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

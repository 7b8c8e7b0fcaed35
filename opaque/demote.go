// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package opaque

import "github.com/luxfi/idesyde/model"

// Replaceable reports whether candidate should replace incumbent in a
// pool: incumbent is an opaque envelope, candidate is concrete, and they
// cover the same ground (incumbent <= candidate), per spec §4.3's
// concretization step.
func Replaceable(incumbent, candidate model.DecisionModel) bool {
	if !model.IsOpaque(incumbent) || model.IsOpaque(candidate) {
		return false
	}
	switch model.Compare(incumbent, candidate) {
	case model.Less, model.Equal:
		return true
	default:
		return false
	}
}

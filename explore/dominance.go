// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package explore

import "sort"

// Dominant picks the single best bid among competing drivers (spec §4.7): a
// bid that cannot explore is never selected; among bids that can, exactness
// beats inexactness, then higher competitiveness wins, and ties are broken
// deterministically by DriverID so repeated runs over the same bid set pick
// the same driver.
func Dominant(bids []Bid) (Bid, bool) {
	candidates := make([]Bid, 0, len(bids))
	for _, b := range bids {
		if b.CanExplore {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return Bid{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsExact != b.IsExact {
			return a.IsExact
		}
		if a.Competitiveness != b.Competitiveness {
			return a.Competitiveness > b.Competitiveness
		}
		return a.DriverID < b.DriverID
	})
	return candidates[0], true
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ContentHash canonicalizes a binary body to a content hash, per spec
// §4.1: "equality across processes/threads requires canonicalizing the
// binary body to a content hash; implementations should make equality
// cheap by caching the hash."
func ContentHash(body []byte) uint64 {
	return xxhash.Sum64(body)
}

// HashCache memoizes a ContentHash computation for a decision model whose
// binary body is expensive to re-hash on every comparison. Embed it in a
// decision-model struct and call Hash with the current body.
type HashCache struct {
	mu       sync.Mutex
	computed bool
	value    uint64
}

// Hash returns the cached hash of body, computing it on first use.
func (c *HashCache) Hash(body []byte) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.computed {
		c.value = ContentHash(body)
		c.computed = true
	}
	return c.value
}

// Invalidate clears the cache, forcing the next Hash call to recompute.
// Decision models are immutable once inserted into a pool so this is only
// needed while a model is still under construction.
func (c *HashCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.computed = false
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import "sync"

// Decoder turns a category's serialized body into a concrete decision
// model. Registered decoders let the identification engine (and external
// callers) downcast an opaque envelope into something a rule can pattern
// match on, per spec §4.2/§9 "Polymorphism over an open set of
// decision-model categories".
type Decoder func(part map[string]struct{}, bodyText *string, bodyBinary []byte) (DecisionModel, error)

// Registry maps decision-model category names to decoders. Unknown
// categories are left in their opaque envelope form until a decoder is
// registered for them.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register installs dec as the decoder for category. Re-registering a
// category overwrites its previous decoder.
func (r *Registry) Register(category string, dec Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[category] = dec
}

// Lookup returns the decoder for category, if any.
func (r *Registry) Lookup(category string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dec, ok := r.decoders[category]
	return dec, ok
}

// Decode concretizes a category's body using its registered decoder. It
// returns ErrUnknownCategory if no decoder is registered.
func (r *Registry) Decode(category string, part map[string]struct{}, bodyText *string, bodyBinary []byte) (DecisionModel, error) {
	dec, ok := r.Lookup(category)
	if !ok {
		return nil, &ErrUnknownCategory{Category: category}
	}
	return dec(part, bodyText, bodyBinary)
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package model defines the semantic contracts shared by every design and
// decision model that flows through the identification engine: category,
// coverage, and the three-valued partial order decision models are
// compared under.
package model

import "fmt"

// DesignModel is a human- or tool-authored artifact describing some part of
// an application, a hardware platform, or instrumentation data. Design
// models are produced by readers and are never mutated once constructed.
type DesignModel interface {
	// Category identifies the schema this design model claims to follow.
	Category() string
	// Format names the serialization the model was read from, e.g. "fiodl"
	// or "json". Purely informational; it never participates in equality.
	Format() string
	// Elements is the set of opaque identifiers this model claims to
	// describe.
	Elements() map[string]struct{}
	// BodyText returns the model's textual body, if it has one.
	BodyText() (string, bool)
}

// DecisionModel is an analysis-ready problem instance. Decision models are
// immutable once inserted into an identification pool and are compared by
// coverage containment within the same category.
type DecisionModel interface {
	// Category identifies the decision-model schema.
	Category() string
	// Part is the set of opaque identifiers this model covers.
	Part() map[string]struct{}
	// BodyText returns a textual serialized body, if one exists.
	BodyText() (string, bool)
	// BodyBinary returns a binary serialized body, if one exists.
	BodyBinary() ([]byte, bool)
}

// Opaque is implemented by decision (or design) models that carry an
// unknown local schema and are therefore preferentially replaceable by a
// concrete model of the same category and equal part.
type Opaque interface {
	IsOpaque() bool
}

// IsOpaque reports whether m is an opaque carrier. Models that don't
// implement Opaque are, by definition, concrete.
func IsOpaque(m DecisionModel) bool {
	o, ok := m.(Opaque)
	return ok && o.IsOpaque()
}

// Order is the result of comparing two decision models' coverage.
type Order int

const (
	// Incomparable means the models have different categories, or neither
	// part is a superset of the other.
	Incomparable Order = iota
	Less
	Equal
	Greater
)

func (o Order) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	default:
		return "Incomparable"
	}
}

// Compare implements the coverage-containment partial order of spec §3:
// given m, n of the same category, m >= n iff part(m) ⊇ part(n).
func Compare(m, n DecisionModel) Order {
	if m.Category() != n.Category() {
		return Incomparable
	}
	pm, pn := m.Part(), n.Part()
	mSupersetN := isSuperset(pm, pn)
	nSupersetM := isSuperset(pn, pm)
	switch {
	case mSupersetN && nSupersetM:
		return Equal
	case mSupersetN:
		return Greater
	case nSupersetM:
		return Less
	default:
		return Incomparable
	}
}

// Dominates reports whether m strictly dominates n: same category, m's
// part is a strict superset of n's.
func Dominates(m, n DecisionModel) bool {
	return Compare(m, n) == Greater
}

// Equivalent reports whether two decision models have equal category and
// part, per spec §3 equality.
func Equivalent(m, n DecisionModel) bool {
	return Compare(m, n) == Equal
}

func isSuperset(a, b map[string]struct{}) bool {
	if len(b) > len(a) {
		return false
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			return false
		}
	}
	return true
}

// ElementSet is a small helper for building `map[string]struct{}` sets from
// a slice, the shape Elements()/Part() return.
func ElementSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// DesignModelReader turns some on-disk format into design models. Concrete
// format readers (fiodl, json, ...) live outside this repo's scope; only
// the collaborator interface is pinned here so an identification pipeline
// can be wired against it regardless of which readers exist.
type DesignModelReader interface {
	// Formats lists the format tags (as returned by DesignModel.Format)
	// this reader understands.
	Formats() []string
	Read(path string) (DesignModel, error)
}

// ErrUnknownCategory is returned by a Registry when asked to decode a
// category it has no decoder for.
type ErrUnknownCategory struct {
	Category string
}

func (e *ErrUnknownCategory) Error() string {
	return fmt.Sprintf("model: no decoder registered for category %q", e.Category)
}

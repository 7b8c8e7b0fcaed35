// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

// GenericDesignModel is a ready-to-use DesignModel for readers that have
// nothing more specific to offer: a category, a format tag, the elements
// the model claims to describe, and an optional textual body. Identity is
// (category, elements set), per spec §3.
type GenericDesignModel struct {
	CategoryName string
	FormatName   string
	ElementSet   map[string]struct{}
	Body         *string
}

var _ DesignModel = (*GenericDesignModel)(nil)

func (d *GenericDesignModel) Category() string { return d.CategoryName }

func (d *GenericDesignModel) Format() string { return d.FormatName }

func (d *GenericDesignModel) Elements() map[string]struct{} { return d.ElementSet }

func (d *GenericDesignModel) BodyText() (string, bool) {
	if d.Body == nil {
		return "", false
	}
	return *d.Body, true
}

// SameIdentity reports whether two design models have the same identity,
// i.e. the same category and the same element set.
func SameIdentity(a, b DesignModel) bool {
	if a.Category() != b.Category() {
		return false
	}
	return isSuperset(a.Elements(), b.Elements()) && isSuperset(b.Elements(), a.Elements())
}

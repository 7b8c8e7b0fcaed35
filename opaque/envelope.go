// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package opaque provides the carrier form used when a decision (or
// design) model comes from outside the process and no local schema is
// known. An Envelope satisfies both model.DecisionModel and
// model.DesignModel so it can stand in for either while it's in transit.
package opaque

import (
	"github.com/luxfi/idesyde/model"
)

// Envelope holds a category, a part/elements set, and up to three bodies.
// It is explicitly demotable: the identification engine prefers any
// concrete (non-opaque) same-category model with an equal part (spec
// §4.2/§4.3).
type Envelope struct {
	CategoryName string
	ElementSet   map[string]struct{}
	Text         *string
	CBOR         []byte
	JSON         []byte

	format string
}

var (
	_ model.DecisionModel = (*Envelope)(nil)
	_ model.DesignModel   = (*Envelope)(nil)
	_ model.Opaque        = (*Envelope)(nil)
)

// New builds an envelope for the given category and part/elements set.
func New(category string, elements map[string]struct{}) *Envelope {
	return &Envelope{CategoryName: category, ElementSet: elements}
}

// WithFormat records the wire format the envelope originated from. Used
// only when the envelope stands in for a design model; decision models
// have no format concept.
func (e *Envelope) WithFormat(format string) *Envelope {
	e.format = format
	return e
}

// WithText attaches a textual body and returns the envelope for chaining.
func (e *Envelope) WithText(text string) *Envelope {
	e.Text = &text
	return e
}

// WithCBOR attaches a CBOR-encoded binary body and returns the envelope for
// chaining.
func (e *Envelope) WithCBOR(body []byte) *Envelope {
	e.CBOR = body
	return e
}

func (e *Envelope) Category() string { return e.CategoryName }

func (e *Envelope) Format() string { return e.format }

// Part satisfies model.DecisionModel.
func (e *Envelope) Part() map[string]struct{} { return e.ElementSet }

// Elements satisfies model.DesignModel.
func (e *Envelope) Elements() map[string]struct{} { return e.ElementSet }

func (e *Envelope) BodyText() (string, bool) {
	if e.Text == nil {
		return "", false
	}
	return *e.Text, true
}

func (e *Envelope) BodyBinary() ([]byte, bool) {
	if e.CBOR == nil {
		return nil, false
	}
	return e.CBOR, true
}

// IsOpaque always reports true: an Envelope is, by definition, the opaque
// carrier form.
func (e *Envelope) IsOpaque() bool { return true }

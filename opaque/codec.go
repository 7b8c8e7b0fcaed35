// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package opaque

import (
	"github.com/luxfi/idesyde/model"
)

// wireEnvelope is the shape an Envelope takes on the wire, shared across
// JSON/CBOR/MsgPack per spec §6.
type wireEnvelope struct {
	Category string   `json:"category" cbor:"category" msgpack:"category"`
	Elements []string `json:"elements" cbor:"elements" msgpack:"elements"`
	Format   string   `json:"format,omitempty" cbor:"format,omitempty" msgpack:"format,omitempty"`
	Text     *string  `json:"text,omitempty" cbor:"text,omitempty" msgpack:"text,omitempty"`
	CBOR     []byte   `json:"cbor,omitempty" cbor:"cbor,omitempty" msgpack:"cbor,omitempty"`
	JSON     []byte   `json:"json,omitempty" cbor:"json,omitempty" msgpack:"json,omitempty"`
}

func (e *Envelope) toWire() wireEnvelope {
	elems := make([]string, 0, len(e.ElementSet))
	for id := range e.ElementSet {
		elems = append(elems, id)
	}
	return wireEnvelope{
		Category: e.CategoryName,
		Elements: elems,
		Format:   e.format,
		Text:     e.Text,
		CBOR:     e.CBOR,
		JSON:     e.JSON,
	}
}

func fromWire(w wireEnvelope) *Envelope {
	return &Envelope{
		CategoryName: w.Category,
		ElementSet:   model.ElementSet(w.Elements...),
		format:       w.Format,
		Text:         w.Text,
		CBOR:         w.CBOR,
		JSON:         w.JSON,
	}
}

// Marshal encodes the envelope with the given codec.
func (e *Envelope) Marshal(c model.Codec) ([]byte, error) {
	return c.Marshal(e.toWire())
}

// Unmarshal decodes an envelope previously produced by Marshal with a
// wire-equivalent codec.
func Unmarshal(c model.Codec, data []byte) (*Envelope, error) {
	var w wireEnvelope
	if err := c.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return fromWire(w), nil
}

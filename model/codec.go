// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec marshals and unmarshals decision/design model payloads. Decision
// and design models travel in three wire-equivalent encodings (spec §6):
// JSON, CBOR, and MsgPack. The three codecs below must round-trip the same
// logical value for the same model, mirrored on the teacher's
// `codec.Codec`/`codec.JSONCodec` shape.
type Codec interface {
	Name() string
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// JSON is the human-readable codec.
var JSON Codec = jsonCodec{}

// CBOR is the compact binary codec used for opaque envelope bodies and
// external-module transport frames.
var CBOR Codec = cborCodec{}

// MsgPack is the alternate compact binary codec.
var MsgPack Codec = msgpackCodec{}

// Codecs lists all three in a stable order, used by round-trip tests and by
// callers that want to try every wire format.
var Codecs = []Codec{JSON, CBOR, MsgPack}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

type cborCodec struct{}

func (cborCodec) Name() string { return "cbor" }

func (cborCodec) Marshal(v interface{}) ([]byte, error) { return cbor.Marshal(v) }

func (cborCodec) Unmarshal(data []byte, v interface{}) error { return cbor.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }

func (msgpackCodec) Marshal(v interface{}) ([]byte, error) { return msgpack.Marshal(v) }

func (msgpackCodec) Unmarshal(data []byte, v interface{}) error { return msgpack.Unmarshal(data, v) }

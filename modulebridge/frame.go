// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package modulebridge implements the external-module transport (spec
// §4.8): a length-prefixed, CBOR-framed stream protocol that carries the
// module contract's four operations (Identify, Bid, Explore,
// ReverseIdentify) over any io.ReadWriteCloser, grounded on
// rust-orchestration/src/identification.rs's
// ExternalServerIdentifiticationIterator.
package modulebridge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/luxfi/idesyde/model"
)

// frameKind discriminates the payload a frame carries.
type frameKind uint8

const (
	kindModel frameKind = iota
	kindMessage
	kindRequest
	kindSolution
	kindDesign
	kindDone
)

// frame is the wire envelope every exchange is built from: a correlation
// id stamped on every frame the adapter sends, a kind tag, and a
// CBOR-encoded payload specific to that kind. Received frames are not
// checked against the sender's correlation id.
type frame struct {
	CorrelationID string    `cbor:"id"`
	Kind          frameKind `cbor:"kind"`
	Payload       []byte    `cbor:"payload,omitempty"`
}

// ErrStreamClosed describes the underlying transport closing before a
// "done" frame is read, per spec §7 error kind 3. Identify does not return
// it: it attaches its text as an error message and returns the partial
// results with a nil error, without retrying.
var ErrStreamClosed = errors.New("modulebridge: stream closed before done frame")

// writeFrame length-prefixes and writes a single CBOR-encoded frame.
func writeFrame(w io.Writer, f frame) error {
	data, err := model.CBOR.Marshal(f)
	if err != nil {
		return fmt.Errorf("modulebridge: encode frame: %w", err)
	}
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	if _, err := w.Write(length[:]); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// readFrame reads and decodes a single length-prefixed CBOR frame. Returns
// io.EOF (wrapped as ErrStreamClosed by callers expecting one) when the
// stream closes cleanly between frames.
func readFrame(r io.Reader) (frame, error) {
	var length [4]byte
	if _, err := io.ReadFull(r, length[:]); err != nil {
		return frame{}, err
	}
	n := binary.BigEndian.Uint32(length[:])
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return frame{}, err
	}
	var f frame
	if err := model.CBOR.Unmarshal(data, &f); err != nil {
		return frame{}, fmt.Errorf("modulebridge: decode frame: %w", err)
	}
	return f, nil
}

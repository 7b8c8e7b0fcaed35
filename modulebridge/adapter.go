// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modulebridge

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/luxfi/idesyde/identify"
	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/opaque"
)

// Adapter wraps a transport-agnostic io.ReadWriteCloser (a pipe, a unix
// socket, a subprocess's stdio — the teacher's networking/zmq4 and
// networking/router show the same transport-agnostic framing idiom) and
// speaks the module bridge's four-operation contract against it.
type Adapter struct {
	conn io.ReadWriteCloser
}

// NewAdapter wraps conn. The caller owns conn's lifecycle; Close closes it.
func NewAdapter(conn io.ReadWriteCloser) *Adapter {
	return &Adapter{conn: conn}
}

// Close closes the underlying transport.
func (a *Adapter) Close() error { return a.conn.Close() }

var _ identify.Rule = (*Adapter)(nil)

func (a *Adapter) Name() string                { return "modulebridge" }
func (a *Adapter) Marking() identify.Marking   { return identify.Generic }
func (a *Adapter) Prerequisites() []string     { return nil }

// Identify uploads the current design models and decision-model pool to
// the external module, sends the done sentinel, then drains the module's
// replies — model frames are concretized into opaque envelopes, message
// frames become identify.Messages — until a matching done frame or stream
// closure, grounded directly on
// rust-orchestration/src/identification.rs's
// ExternalServerIdentifiticationIterator control flow. On stream closure
// mid-exchange, Identify returns whatever was received so far plus a
// high-severity message; it never retries (spec §7 error kind 3).
func (a *Adapter) Identify(ctx context.Context, designs []model.DesignModel, pool []model.DecisionModel) (identify.Result, error) {
	corrID := uuid.NewString()

	for _, d := range designs {
		payload, err := marshalDesign(d)
		if err != nil {
			return identify.Result{}, err
		}
		if err := writeFrame(a.conn, frame{CorrelationID: corrID, Kind: kindDesign, Payload: payload}); err != nil {
			return identify.Result{}, err
		}
	}
	for _, m := range pool {
		payload, err := marshalDecision(m)
		if err != nil {
			return identify.Result{}, err
		}
		if err := writeFrame(a.conn, frame{CorrelationID: corrID, Kind: kindModel, Payload: payload}); err != nil {
			return identify.Result{}, err
		}
	}
	if err := writeFrame(a.conn, frame{CorrelationID: corrID, Kind: kindDone}); err != nil {
		return identify.Result{}, err
	}

	var result identify.Result
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f, err := readFrame(a.conn)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				result.Messages = append(result.Messages, identify.Message{
					Source:   "modulebridge",
					Severity: identify.Error,
					Text:     ErrStreamClosed.Error(),
				})
				return result, nil
			}
			return result, err
		}

		switch f.Kind {
		case kindDone:
			return result, nil
		case kindModel:
			env, err := opaque.Unmarshal(model.CBOR, f.Payload)
			if err != nil {
				result.Messages = append(result.Messages, identify.Message{Source: "modulebridge", Severity: identify.Error, Text: err.Error()})
				continue
			}
			result.Models = append(result.Models, env)
		case kindMessage:
			var msg identify.Message
			if err := model.CBOR.Unmarshal(f.Payload, &msg); err != nil {
				continue
			}
			result.Messages = append(result.Messages, msg)
		}
	}
}

func marshalDesign(d model.DesignModel) ([]byte, error) {
	elements := make([]string, 0, len(d.Elements()))
	for e := range d.Elements() {
		elements = append(elements, e)
	}
	env := opaque.New(d.Category(), model.ElementSet(elements...)).WithFormat(d.Format())
	if text, ok := d.BodyText(); ok {
		env = env.WithText(text)
	}
	return env.Marshal(model.CBOR)
}

func marshalDecision(m model.DecisionModel) ([]byte, error) {
	elements := make([]string, 0, len(m.Part()))
	for e := range m.Part() {
		elements = append(elements, e)
	}
	env := opaque.New(m.Category(), model.ElementSet(elements...))
	if text, ok := m.BodyText(); ok {
		env = env.WithText(text)
	}
	if bin, ok := m.BodyBinary(); ok {
		env = env.WithCBOR(bin)
	}
	return env.Marshal(model.CBOR)
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modulebridge

import (
	"context"

	"github.com/google/uuid"

	"github.com/luxfi/idesyde/config"
	"github.com/luxfi/idesyde/explore"
	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/opaque"
)

var _ explore.Driver = (*Adapter)(nil)

// bidWire and solutionWire are the CBOR-compatible wire shapes for the
// explore.Bid/explore.Solution values this package's own wire-equivalent
// codecs round-trip (spec §6).
type bidWire struct {
	DriverID         string             `cbor:"driver_id"`
	CanExplore       bool               `cbor:"can_explore"`
	IsExact          bool               `cbor:"is_exact"`
	Competitiveness  float64            `cbor:"competitiveness"`
	TargetObjectives []string           `cbor:"target_objectives,omitempty"`
	Properties       map[string]float64 `cbor:"properties,omitempty"`
}

type solutionWire struct {
	Model      []byte             `cbor:"model"`
	Objectives map[string]float64 `cbor:"objectives"`
}

// Bid asks the external module for a single bid on m, round-tripping one
// request/response pair over the same framing Identify uses.
func (a *Adapter) Bid(ctx context.Context, m model.DecisionModel) (explore.Bid, error) {
	corrID := uuid.NewString()
	payload, err := marshalDecision(m)
	if err != nil {
		return explore.Bid{}, err
	}
	if err := writeFrame(a.conn, frame{CorrelationID: corrID, Kind: kindRequest, Payload: payload}); err != nil {
		return explore.Bid{}, err
	}

	f, err := readFrame(a.conn)
	if err != nil {
		return explore.Bid{}, err
	}
	var wire bidWire
	if err := model.CBOR.Unmarshal(f.Payload, &wire); err != nil {
		return explore.Bid{}, err
	}
	return explore.Bid{
		DriverID:         wire.DriverID,
		CanExplore:       wire.CanExplore,
		IsExact:          wire.IsExact,
		Competitiveness:  wire.Competitiveness,
		TargetObjectives: wire.TargetObjectives,
		Properties:       wire.Properties,
	}, nil
}

// Explore requests a search over m, returning a channel of solutions
// streamed from the module until it sends a done frame or the stream
// closes. Only m and the prior solutions are sent; cfg is not transmitted,
// so the module applies none of its resolutions or timeouts.
func (a *Adapter) Explore(ctx context.Context, m model.DecisionModel, prior []explore.Solution, cfg config.Config) (<-chan explore.Solution, error) {
	corrID := uuid.NewString()
	payload, err := marshalDecision(m)
	if err != nil {
		return nil, err
	}
	if err := writeFrame(a.conn, frame{CorrelationID: corrID, Kind: kindRequest, Payload: payload}); err != nil {
		return nil, err
	}
	for _, sol := range prior {
		solPayload, err := marshalSolution(sol)
		if err != nil {
			return nil, err
		}
		if err := writeFrame(a.conn, frame{CorrelationID: corrID, Kind: kindSolution, Payload: solPayload}); err != nil {
			return nil, err
		}
	}

	out := make(chan explore.Solution)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			f, err := readFrame(a.conn)
			if err != nil {
				return
			}
			switch f.Kind {
			case kindDone:
				return
			case kindSolution:
				sol, err := unmarshalSolution(f.Payload)
				if err != nil {
					continue
				}
				select {
				case out <- sol:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func marshalSolution(sol explore.Solution) ([]byte, error) {
	modelBytes, err := marshalDecision(sol.Model)
	if err != nil {
		return nil, err
	}
	return model.CBOR.Marshal(solutionWire{Model: modelBytes, Objectives: sol.Objectives})
}

func unmarshalSolution(payload []byte) (explore.Solution, error) {
	var wire solutionWire
	if err := model.CBOR.Unmarshal(payload, &wire); err != nil {
		return explore.Solution{}, err
	}
	env, err := opaque.Unmarshal(model.CBOR, wire.Model)
	if err != nil {
		return explore.Solution{}, err
	}
	return explore.Solution{Model: env, Objectives: wire.Objectives}, nil
}

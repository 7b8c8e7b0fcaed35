// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modulebridge

import (
	"context"

	"github.com/google/uuid"

	"github.com/luxfi/idesyde/explore"
	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/opaque"
	"github.com/luxfi/idesyde/reverse"
)

var _ reverse.ReverseIdentifier = (*Adapter)(nil)

// ReverseIdentify uploads solutions and the current design models, then
// drains annotated design models back from the module until a done frame
// or stream closure — the fourth module-contract operation, framed
// identically to Identify/Bid/Explore.
func (a *Adapter) ReverseIdentify(ctx context.Context, solutions []explore.Solution, designs []model.DesignModel) ([]model.DesignModel, error) {
	corrID := uuid.NewString()

	for _, sol := range solutions {
		payload, err := marshalSolution(sol)
		if err != nil {
			return nil, err
		}
		if err := writeFrame(a.conn, frame{CorrelationID: corrID, Kind: kindSolution, Payload: payload}); err != nil {
			return nil, err
		}
	}
	for _, d := range designs {
		payload, err := marshalDesign(d)
		if err != nil {
			return nil, err
		}
		if err := writeFrame(a.conn, frame{CorrelationID: corrID, Kind: kindDesign, Payload: payload}); err != nil {
			return nil, err
		}
	}
	if err := writeFrame(a.conn, frame{CorrelationID: corrID, Kind: kindDone}); err != nil {
		return nil, err
	}

	var out []model.DesignModel
	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}
		f, err := readFrame(a.conn)
		if err != nil {
			return out, nil
		}
		switch f.Kind {
		case kindDone:
			return out, nil
		case kindDesign:
			env, err := opaque.Unmarshal(model.CBOR, f.Payload)
			if err != nil {
				continue
			}
			out = append(out, env)
		}
	}
}

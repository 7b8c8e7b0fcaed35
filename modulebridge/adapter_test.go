// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modulebridge

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/idesyde/config"
	"github.com/luxfi/idesyde/explore"
	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/opaque"
)

func TestAdapter_Identify_RoundTrip(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewAdapter(clientConn)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- runEchoOneModuleServer(serverConn)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	design := &model.GenericDesignModel{CategoryName: "App", ElementSet: model.ElementSet("p1")}
	result, err := client.Identify(ctx, []model.DesignModel{design}, nil)
	require.NoError(t, err)
	require.Len(t, result.Models, 1)
	require.Equal(t, "AnalysedApp", result.Models[0].Category())

	require.NoError(t, <-serverErr)
}

func TestAdapter_Bid_RoundTrip(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewAdapter(clientConn)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- runBidServer(serverConn)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	bid, err := client.Bid(ctx, &fakeDecisionModel{category: "AnalysedApp"})
	require.NoError(t, err)
	require.True(t, bid.CanExplore)
	require.Equal(t, "remote-driver", bid.DriverID)
	require.NoError(t, <-serverErr)
}

func TestAdapter_Explore_StreamsSolutionsUntilDone(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewAdapter(clientConn)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- runExploreServer(serverConn, 3)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	solutions, err := client.Explore(ctx, &fakeDecisionModel{category: "AnalysedApp"}, nil, config.Default())
	require.NoError(t, err)

	var got []explore.Solution
	for sol := range solutions {
		got = append(got, sol)
	}
	require.Len(t, got, 3)
	require.NoError(t, <-serverErr)
}

func TestAdapter_ReverseIdentify_RoundTrip(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewAdapter(clientConn)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- runReverseIdentifyServer(serverConn)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	design := &model.GenericDesignModel{CategoryName: "App", ElementSet: model.ElementSet("p1")}
	out, err := client.ReverseIdentify(ctx, nil, []model.DesignModel{design})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "App", out[0].Category())
	require.NoError(t, <-serverErr)
}

// --- stub "external module" servers, one per operation under test ---

func runEchoOneModuleServer(conn net.Conn) error {
	if err := drainUntilDone(conn); err != nil {
		return err
	}
	env := opaque.New("AnalysedApp", model.ElementSet("p1"))
	payload, err := env.Marshal(model.CBOR)
	if err != nil {
		return err
	}
	if err := writeFrame(conn, frame{Kind: kindModel, Payload: payload}); err != nil {
		return err
	}
	return writeFrame(conn, frame{Kind: kindDone})
}

func runBidServer(conn net.Conn) error {
	f, err := readFrame(conn)
	if err != nil {
		return err
	}
	if f.Kind != kindRequest {
		return nil
	}
	wire := bidWire{DriverID: "remote-driver", CanExplore: true, IsExact: true, Competitiveness: 1}
	payload, err := model.CBOR.Marshal(wire)
	if err != nil {
		return err
	}
	return writeFrame(conn, frame{Kind: kindMessage, Payload: payload})
}

func runExploreServer(conn net.Conn, n int) error {
	f, err := readFrame(conn)
	if err != nil {
		return err
	}
	if f.Kind != kindRequest {
		return nil
	}
	for i := 0; i < n; i++ {
		sol := explore.Solution{
			Model:      &fakeDecisionModel{category: "AnalysedApp"},
			Objectives: map[string]float64{"throughput": float64(i)},
		}
		payload, err := marshalSolution(sol)
		if err != nil {
			return err
		}
		if err := writeFrame(conn, frame{Kind: kindSolution, Payload: payload}); err != nil {
			return err
		}
	}
	return writeFrame(conn, frame{Kind: kindDone})
}

func runReverseIdentifyServer(conn net.Conn) error {
	if err := drainUntilDone(conn); err != nil {
		return err
	}
	env := opaque.New("App", model.ElementSet("p1"))
	payload, err := env.Marshal(model.CBOR)
	if err != nil {
		return err
	}
	if err := writeFrame(conn, frame{Kind: kindDesign, Payload: payload}); err != nil {
		return err
	}
	return writeFrame(conn, frame{Kind: kindDone})
}

func drainUntilDone(conn net.Conn) error {
	for {
		f, err := readFrame(conn)
		if err != nil {
			return err
		}
		if f.Kind == kindDone {
			return nil
		}
	}
}

// fakeDecisionModel is a minimal model.DecisionModel double for exercising
// the wire marshaling without pulling in a concrete domain package.
type fakeDecisionModel struct {
	category string
}

func (f *fakeDecisionModel) Category() string             { return f.category }
func (f *fakeDecisionModel) Part() map[string]struct{}    { return map[string]struct{}{"p1": {}} }
func (f *fakeDecisionModel) BodyText() (string, bool)     { return "", false }
func (f *fakeDecisionModel) BodyBinary() ([]byte, bool)   { return nil, false }

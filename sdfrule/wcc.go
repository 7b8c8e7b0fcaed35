// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sdfrule

import (
	"math"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/luxfi/idesyde/dataflow"
)

// weaklyConnectedComponents decomposes app's actor/channel topology into
// its weakly-connected components, grounded on
// rust-common/src/irules.rs's weakly_connected_components helper — gonum
// exposes this directly as topo.ConnectedComponents over an undirected
// view of the graph, so no hand-written union-find is needed here.
func weaklyConnectedComponents(app *AnalysedSDFApplication) [][]string {
	g := simple.NewUndirectedGraph()
	idOf := make(map[string]int64, len(app.Actors))
	nameOf := make(map[int64]string, len(app.Actors))
	next := int64(0)
	for actor := range app.Actors {
		idOf[actor] = next
		nameOf[next] = actor
		g.AddNode(simple.Node(next))
		next++
	}
	for _, c := range app.Channels {
		src, ok1 := idOf[c.Src]
		dst, ok2 := idOf[c.Dst]
		if !ok1 || !ok2 {
			continue
		}
		if !g.HasEdgeBetween(src, dst) {
			g.SetEdge(g.NewEdge(simple.Node(src), simple.Node(dst)))
		}
	}

	components := topo.ConnectedComponents(g)
	out := make([][]string, 0, len(components))
	for _, comp := range components {
		names := make([]string, 0, len(comp))
		for _, n := range comp {
			names = append(names, nameOf[n.ID()])
		}
		out = append(out, names)
	}
	return out
}

// decompose builds one dataflow.Application per weakly-connected component
// of app, deriving each application's job graph from the earliest-firing
// precedence formula (spec §4.5 step 3): for each firing q_t (1..
// repetitions(dst)) of a channel's consumer, the earliest producer firing
// that must have happened first is
// q_s = ceil((q_t*consumption - initial_tokens) / production), fixing the
// target firing and solving for the source so at most one edge is emitted
// per target firing (none when initial tokens already cover it, or when q_s
// exceeds the producer's repetition count). Self-successive firings of the same actor
// (a,q)->(a,q+1) are additionally added as weak-precedence edges, since an
// actor's own firings execute in order even when no channel links them.
func decompose(app *AnalysedSDFApplication) []*dataflow.Application {
	components := weaklyConnectedComponents(app)
	applications := make([]*dataflow.Application, 0, len(components))

	for _, actors := range components {
		inComponent := make(map[string]struct{}, len(actors))
		for _, a := range actors {
			inComponent[a] = struct{}{}
		}

		df := dataflow.NewApplication()
		for _, a := range actors {
			df.Processes[a] = struct{}{}
			q := app.RepetitionVector[a]
			for i := uint64(0); i < q; i++ {
				df.Jobs = append(df.Jobs, dataflow.JobID{Process: a, Instance: i})
			}
			for i := uint64(1); i < q; i++ {
				df.Edges = append(df.Edges, dataflow.JobEdge{
					Src:    dataflow.JobID{Process: a, Instance: i - 1},
					Dst:    dataflow.JobID{Process: a, Instance: i},
					Strong: false,
				})
			}
		}

		for _, c := range app.Channels {
			if _, ok := inComponent[c.Src]; !ok {
				continue
			}
			if _, ok := inComponent[c.Dst]; !ok {
				continue
			}
			df.Buffers[c.ID] = struct{}{}
			df.BufferTokenSizeBits[c.ID] = c.TokenSizeBits
			df.BufferMaxSizeBits[c.ID] = (c.InitialTokens + app.RepetitionVector[c.Src]*c.Production) * c.TokenSizeBits

			putMap, ok := df.PutInBufferBits[c.Src]
			if !ok {
				putMap = make(map[string]uint64)
				df.PutInBufferBits[c.Src] = putMap
			}
			putMap[c.ID] = c.Production * c.TokenSizeBits

			getMap, ok := df.GetFromBufferBits[c.Dst]
			if !ok {
				getMap = make(map[string]uint64)
				df.GetFromBufferBits[c.Dst] = getMap
			}
			getMap[c.ID] = c.Consumption * c.TokenSizeBits

			qtMax := app.RepetitionVector[c.Dst]
			qsMax := app.RepetitionVector[c.Src]
			for qt := uint64(1); qt <= qtMax; qt++ {
				qs := earliestProducerFiring(qt, c.Production, c.Consumption, c.InitialTokens)
				if qs < 1 {
					continue
				}
				if qs > qsMax {
					continue
				}
				df.Edges = append(df.Edges, dataflow.JobEdge{
					Src:    dataflow.JobID{Process: c.Src, Instance: qs - 1},
					Dst:    dataflow.JobID{Process: c.Dst, Instance: qt - 1},
					Strong: true,
				})
			}
		}

		applications = append(applications, df)
	}
	return applications
}

// earliestProducerFiring computes q_s = ceil((q_t*consumption - tokens) /
// production), clamped to a non-negative integer: firing counts are never
// negative, and a channel with tokens already in excess of what q_t
// consumer firings need is satisfied before the producer fires at all.
func earliestProducerFiring(qt, production, consumption, initialTokens uint64) uint64 {
	numerator := float64(qt)*float64(consumption) - float64(initialTokens)
	if numerator <= 0 {
		return 0
	}
	return uint64(math.Ceil(numerator / float64(production)))
}

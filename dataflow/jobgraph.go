// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dataflow

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// jobGraph indexes an Application's job nodes/edges into a gonum directed
// graph, keeping the JobID<->int64 mapping needed to translate gonum's
// node-id results back into job identities.
type jobGraph struct {
	g       *simple.DirectedGraph
	idOf    map[JobID]int64
	jobOf   map[int64]JobID
}

func buildJobGraph(app *Application) *jobGraph {
	jg := &jobGraph{
		g:     simple.NewDirectedGraph(),
		idOf:  make(map[JobID]int64, len(app.Jobs)),
		jobOf: make(map[int64]JobID, len(app.Jobs)),
	}
	for i, j := range app.Jobs {
		id := int64(i)
		jg.idOf[j] = id
		jg.jobOf[id] = j
		jg.g.AddNode(simple.Node(id))
	}
	for _, e := range app.Edges {
		src, ok := jg.idOf[e.Src]
		if !ok {
			continue
		}
		dst, ok := jg.idOf[e.Dst]
		if !ok {
			continue
		}
		jg.g.SetEdge(jg.g.NewEdge(simple.Node(src), simple.Node(dst)))
	}
	return jg
}

// JobFollows computes, for every job in every application, the set of jobs
// that must fire after it — the transitive closure of the job graph's
// precedence edges (spec §4.4.2): for an edge src->dst, follows(src)
// includes dst and everything dst's own follows set includes. gonum has no
// direct transitive-closure algorithm (unlike petgraph's
// dag_transitive_reduction_closure in the original), so this hand-rolls it
// as dynamic programming over a reverse topological order: a job's
// successor set is the union of its direct successors and each direct
// successor's own successor set, computed once each node's successors have
// all been resolved — which requires visiting nodes from sinks back to
// sources, the reverse of topo.Sort's order.
//
// Returns ErrCyclicJobGraph if any application's job graph has a cycle.
func (m *Model) JobFollows() (map[JobID][]JobID, error) {
	result := make(map[JobID][]JobID)
	for _, app := range m.Applications {
		jg := buildJobGraph(app)
		order, err := topo.Sort(jg.g)
		if err != nil {
			return nil, ErrCyclicJobGraph
		}
		successors := make(map[int64]map[int64]struct{}, len(order))
		for _, node := range order {
			successors[node.ID()] = make(map[int64]struct{})
		}
		for i := len(order) - 1; i >= 0; i-- {
			n := order[i].ID()
			to := jg.g.From(n) // direct successors of n
			for to.Next() {
				s := to.Node().ID()
				successors[n][s] = struct{}{}
				for desc := range successors[s] {
					successors[n][desc] = struct{}{}
				}
			}
		}
		for n, set := range successors {
			job := jg.jobOf[n]
			list := make([]JobID, 0, len(set))
			for s := range set {
				list = append(list, jg.jobOf[s])
			}
			result[job] = list
		}
	}
	return result, nil
}

// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dataflow

import (
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// throughputNodeKind distinguishes the two node flavors spec §4.4.3 builds
// the self-timed graph from: one per job firing, one per message instance
// created for a consuming firing of a produced buffer.
type throughputNodeKind int

const (
	jobThroughputNode throughputNodeKind = iota
	messageThroughputNode
)

// throughputNodeInfo records which process a job node belongs to, so an
// SCC's cycle mean can be divided by that process's multiplicity within it.
// Message nodes carry no process.
type throughputNodeInfo struct {
	kind    throughputNodeKind
	process string
}

// RecomputeThroughput rebuilds the self-timed weighted job+message graph
// implied by mapping and a model's instrumentation (spec §4.4.3) and
// returns, per process, the inverse-throughput figure mapping decisions are
// scored against: the max of (a) that process's own execution time plus
// the traversal cost of its outgoing buffers, and (b) the maximum cycle
// mean of any strongly connected component it participates in. Every
// process with at least one job gets an entry, even one mapped nowhere
// (weight and traversal cost default to zero in that case).
func (m *Model) RecomputeThroughput(mapping *Mapping) (map[string]float64, error) {
	if mapping == nil {
		mapping = m.Decisions
	}
	result := make(map[string]float64)
	for _, app := range m.Applications {
		rate := m.recomputeApplicationThroughput(app, mapping)
		for proc, v := range rate {
			if cur, ok := result[proc]; !ok || v > cur {
				result[proc] = v
			}
		}
	}
	return result, nil
}

func (m *Model) recomputeApplicationThroughput(app *Application, mapping *Mapping) map[string]float64 {
	g, weights, info := buildThroughputGraph(app, m, mapping)
	rate := make(map[string]float64, len(app.Processes))

	// Case (a): a process's own execution time plus the traversal cost of
	// everything it writes out, regardless of whether it sits in a cycle.
	for _, job := range app.Jobs {
		own := firingWeight(job, m, mapping)
		for bufID := range app.PutInBufferBits[job.Process] {
			own += bufferTraversalCost(job.Process, bufID, app, m, mapping)
		}
		if cur, ok := rate[job.Process]; !ok || own > cur {
			rate[job.Process] = own
		}
	}

	// Case (b): the maximum cycle mean of every non-trivial SCC, divided by
	// the multiplicity of each participating process within it.
	for _, scc := range topo.TarjanSCC(g) {
		if !sccHasCycle(g, scc) {
			continue
		}
		mean := maxCycleMean(g, weights, scc)
		if mean <= 0 {
			continue
		}
		multiplicity := make(map[string]int, len(scc))
		for _, n := range scc {
			if ni, ok := info[n.ID()]; ok && ni.kind == jobThroughputNode {
				multiplicity[ni.process]++
			}
		}
		for proc, count := range multiplicity {
			if count == 0 {
				continue
			}
			v := mean / float64(count)
			if v > rate[proc] {
				rate[proc] = v
			}
		}
	}

	propagateProcessMax(app, mapping, rate)
	return rate
}

// buildThroughputGraph builds the weighted job+message graph of spec
// §4.4.3: one node per job firing (weighted by its own execution time) and
// one node per message instance consumed across a strong job-graph edge
// (weighted by the buffer's traversal cost), plus super-loop schedule and
// backpressure edges derived from mapping's SuperLoopSchedules.
func buildThroughputGraph(app *Application, m *Model, mapping *Mapping) (*simple.WeightedDirectedGraph, map[int64]float64, map[int64]throughputNodeInfo) {
	g := simple.NewWeightedDirectedGraph(0, 0)
	weights := make(map[int64]float64, len(app.Jobs))
	info := make(map[int64]throughputNodeInfo, len(app.Jobs))
	idOf := make(map[JobID]int64, len(app.Jobs))
	var next int64

	addEdge := func(src, dst int64, w float64) {
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(src), simple.Node(dst), w))
	}

	for _, j := range app.Jobs {
		id := next
		next++
		idOf[j] = id
		weights[id] = firingWeight(j, m, mapping)
		info[id] = throughputNodeInfo{kind: jobThroughputNode, process: j.Process}
		g.AddNode(simple.Node(id))
	}

	// outgoingMessages[job] holds the message nodes job's outgoing strong
	// edges created, needed below to wire backpressure edges between
	// consecutive super-loop entries.
	outgoingMessages := make(map[JobID][]int64)

	for _, e := range app.Edges {
		src, ok := idOf[e.Src]
		if !ok {
			continue
		}
		dst, ok := idOf[e.Dst]
		if !ok {
			continue
		}
		if !e.Strong {
			// Self-successive weak-precedence edges carry no buffer: they
			// only order the next firing after the previous one.
			addEdge(src, dst, weights[dst])
			continue
		}
		buffers := sharedBuffers(app, e.Src.Process, e.Dst.Process)
		if len(buffers) == 0 {
			addEdge(src, dst, weights[dst])
			continue
		}
		for _, bufID := range buffers {
			msg := next
			next++
			wBuf := bufferTraversalCost(e.Src.Process, bufID, app, m, mapping)
			weights[msg] = wBuf
			info[msg] = throughputNodeInfo{kind: messageThroughputNode}
			g.AddNode(simple.Node(msg))
			addEdge(src, msg, weights[src])
			addEdge(msg, dst, wBuf)
			outgoingMessages[e.Src] = append(outgoingMessages[e.Src], msg)
		}
	}

	if mapping != nil && m != nil && m.Runtimes != nil {
		for scheduler, schedule := range mapping.SuperLoopSchedules {
			addSuperLoopEdges(g, idOf, weights, outgoingMessages, addEdge, m, mapping, scheduler, schedule)
		}
	}

	return g, weights, info
}

// addSuperLoopEdges wires one super-loop schedule's [f1..fL] edges
// f_i->f_{i+1} (wrapping L back to 1), weighted by f_i's average execution
// time on the scheduler's host PE, plus a same-weight backpressure edge
// between every pair of outgoing message nodes of consecutive entries. The
// schedule names processes, not specific firings; instance 0 of each
// scheduled process stands in for "the firing currently due" in the
// steady-state self-timed loop.
func addSuperLoopEdges(g *simple.WeightedDirectedGraph, idOf map[JobID]int64, weights map[int64]float64, outgoingMessages map[JobID][]int64, addEdge func(int64, int64, float64), m *Model, mapping *Mapping, scheduler string, schedule []string) {
	if len(schedule) == 0 {
		return
	}
	pe, ok := m.Runtimes.RuntimeHost[scheduler]
	if !ok {
		return
	}
	for i, proc := range schedule {
		nextProc := schedule[(i+1)%len(schedule)]
		curJob := JobID{Process: proc, Instance: 0}
		nextJob := JobID{Process: nextProc, Instance: 0}
		curID, ok1 := idOf[curJob]
		nextID, ok2 := idOf[nextJob]
		if !ok1 || !ok2 {
			continue
		}
		w := weights[curID]
		if m.Instrumentation != nil {
			if t, ok := m.Instrumentation.AverageSeconds(proc, pe); ok {
				w = t
			}
		}
		addEdge(curID, nextID, w)

		for _, a := range outgoingMessages[curJob] {
			for _, b := range outgoingMessages[nextJob] {
				addEdge(a, b, weights[b])
			}
		}
	}
}

// sharedBuffers returns the buffers producer writes to that consumer also
// reads from, the correlation needed to attach a message node to a
// job-graph edge (JobEdge itself carries no buffer reference).
func sharedBuffers(app *Application, producer, consumer string) []string {
	produced, ok := app.PutInBufferBits[producer]
	if !ok {
		return nil
	}
	consumed, ok := app.GetFromBufferBits[consumer]
	if !ok {
		return nil
	}
	var out []string
	for buf := range produced {
		if _, ok := consumed[buf]; ok {
			out = append(out, buf)
		}
	}
	return out
}

// bufferTraversalCost computes w_buf = put_bits * max over the buffer's
// routing path of reservations(PE,CE)/bandwidth(CE) (spec §4.4.3), or 0 if
// process, buffer, or platform aren't mapped/known yet.
func bufferTraversalCost(process, bufferID string, app *Application, m *Model, mapping *Mapping) float64 {
	putBits, ok := app.PutInBufferBits[process][bufferID]
	if !ok || mapping == nil || m.Platform == nil {
		return 0
	}
	pe, ok := mapping.ProcessesToRuntimeScheduling[process]
	if !ok {
		pe, ok = mapping.ProcessesToLogicProgrammableAreas[process]
		if !ok {
			return 0
		}
	} else if m.Runtimes != nil {
		if host, hosted := m.Runtimes.RuntimeHost[pe]; hosted {
			pe = host
		}
	}
	memory, ok := mapping.BufferToMemoryMappings[bufferID]
	if !ok {
		return 0
	}
	path, ok := m.Platform.RoutingPaths[Pair{PE: pe, Other: memory}]
	if !ok || len(path) == 0 {
		return 0
	}
	var maxRatio float64
	for _, ce := range path {
		bandwidth := m.Platform.BitsPerSecondPerChannel[ce]
		if bandwidth <= 0 {
			continue
		}
		ratio := mapping.Reservations[Pair{PE: pe, Other: ce}] / bandwidth
		if ratio > maxRatio {
			maxRatio = ratio
		}
	}
	return float64(putBits) * maxRatio
}

// firingWeight returns the self-timed execution-time contribution of job,
// the average instrumentation figure for the process it belongs to mapped
// onto its assigned mappable, or 0 if no mapping/instrumentation is
// available yet. A runtime assignment is resolved to the runtime's host PE
// through m.Runtimes when that runtime has a host entry.
func firingWeight(job JobID, m *Model, mapping *Mapping) float64 {
	if m.Instrumentation == nil || mapping == nil {
		return 0
	}
	mappable, ok := mapping.ProcessesToRuntimeScheduling[job.Process]
	if !ok {
		mappable, ok = mapping.ProcessesToLogicProgrammableAreas[job.Process]
		if !ok {
			return 0
		}
	} else if m.Runtimes != nil {
		if host, hosted := m.Runtimes.RuntimeHost[mappable]; hosted {
			mappable = host
		}
	}
	t, ok := m.Instrumentation.AverageSeconds(job.Process, mappable)
	if !ok {
		return 0
	}
	return t
}

// propagateProcessMax implements spec §4.4.3's single max-propagation
// pass: every (process, process) pair sharing a buffer, and every pair of
// processes scheduled on the same runtime, takes the max of the two
// computed rates once. This models self-timed stall coupling: a process
// can't outrun the slowest process it hands data to or shares a scheduler
// with.
func propagateProcessMax(app *Application, mapping *Mapping, rate map[string]float64) {
	pairs := make(map[[2]string]struct{})
	for bufID := range app.Buffers {
		var producer, consumer string
		for p, bufs := range app.PutInBufferBits {
			if _, ok := bufs[bufID]; ok {
				producer = p
			}
		}
		for p, bufs := range app.GetFromBufferBits {
			if _, ok := bufs[bufID]; ok {
				consumer = p
			}
		}
		if producer != "" && consumer != "" && producer != consumer {
			pairs[[2]string{producer, consumer}] = struct{}{}
		}
	}
	if mapping != nil {
		byScheduler := make(map[string][]string)
		for proc, sched := range mapping.ProcessesToRuntimeScheduling {
			byScheduler[sched] = append(byScheduler[sched], proc)
		}
		for _, procs := range byScheduler {
			for i := 0; i < len(procs); i++ {
				for j := i + 1; j < len(procs); j++ {
					pairs[[2]string{procs[i], procs[j]}] = struct{}{}
				}
			}
		}
	}
	for pair := range pairs {
		a, b := pair[0], pair[1]
		v := math.Max(rate[a], rate[b])
		if v > rate[a] {
			rate[a] = v
		}
		if v > rate[b] {
			rate[b] = v
		}
	}
}

// sccHasCycle reports whether scc is a genuine cycle: any SCC with more
// than one node is, by definition of strong connectivity; a single-node
// SCC only is if that node has a self-loop.
func sccHasCycle(g graph.WeightedDirected, scc []graph.Node) bool {
	if len(scc) > 1 {
		return true
	}
	n := scc[0].ID()
	to := g.From(n)
	for to.Next() {
		if to.Node().ID() == n {
			return true
		}
	}
	return false
}

// maxCycleMean returns the maximum-weight-per-edge cycle mean within scc,
// found by enumerating simple cycles through each node via depth-first
// search — tractable because job-graph SCCs are small relative to the
// whole application (spec §4.4.3 worked examples bound them to single
// super-loop bodies).
func maxCycleMean(g graph.WeightedDirected, weights map[int64]float64, scc []graph.Node) float64 {
	inSCC := make(map[int64]struct{}, len(scc))
	for _, n := range scc {
		inSCC[n.ID()] = struct{}{}
	}
	var best float64
	for _, start := range scc {
		visited := map[int64]bool{start.ID(): true}
		// sum/count track the total node weight and node count accumulated
		// along the path from start to cur, inclusive of both endpoints;
		// closing the cycle back to start must not add start's weight a
		// second time.
		var dfs func(cur int64, sum float64, count int)
		dfs = func(cur int64, sum float64, count int) {
			to := g.From(cur)
			for to.Next() {
				next := to.Node().ID()
				if _, ok := inSCC[next]; !ok {
					continue
				}
				if next == start.ID() {
					mean := sum / float64(count)
					if mean > best {
						best = mean
					}
					continue
				}
				if visited[next] {
					continue
				}
				visited[next] = true
				dfs(next, sum+weights[next], count+1)
				visited[next] = false
			}
		}
		dfs(start.ID(), weights[start.ID()], 1)
	}
	return best
}

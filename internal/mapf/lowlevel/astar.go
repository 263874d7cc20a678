// Package lowlevel implements the single-agent time-expanded A* search
// that the high-level CBS loop invokes for every (re)plan.
package lowlevel

import (
	"container/heap"

	"github.com/elektrokombinacija/mapfcbs/internal/mapf/constraint"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/grid"
)

// Stats reports the node counts one FindPath call contributed, for the
// high-level solver to aggregate into its own counters.
type Stats struct {
	Expanded  int
	Generated int
}

// state is a point in the (cell, timestep) search space.
type state struct {
	cell grid.Cell
	t    int
}

// node is one A* open-list entry. Tie-breaking is f, then h, then
// insertion order (seq), matching the spec's ordering rule.
type node struct {
	s      state
	g      int
	h      int
	seq    int
	parent *node
	index  int
}

func (n *node) f() int { return n.g + n.h }

type openHeap []*node

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	fi, fj := h[i].f(), h[j].f()
	if fi != fj {
		return fi < fj
	}
	if h[i].h != h[j].h {
		return h[i].h < h[j].h
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *openHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// FindPath searches for a minimum-cost path from start to goal for one
// agent, honoring table, using heur as the per-goal true-distance
// heuristic. numAgents feeds the termination-safety bound on the search
// horizon (spec.md §4.3). It returns (path, stats, true) on success, or
// (nil, stats, false) if no such path exists within the horizon.
func FindPath(g *grid.Grid, heur *grid.HeuristicTable, start, goal grid.Cell, table *constraint.Table, numAgents int) (grid.Path, Stats, bool) {
	var stats Stats

	if heur.H(start) == grid.Unreachable {
		return nil, stats, false
	}

	upper := g.FreeCells() * (numAgents + table.MaxT + 1)
	if upper < table.MaxT+1 {
		upper = table.MaxT + 1
	}

	open := &openHeap{}
	heap.Init(open)
	closed := make(map[state]bool)

	seq := 0
	push := func(n *node) {
		n.seq = seq
		seq++
		heap.Push(open, n)
		stats.Generated++
	}

	start0 := &node{s: state{cell: start, t: 0}, g: 0, h: heur.H(start)}
	push(start0)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		stats.Expanded++

		if closed[cur.s] {
			continue
		}
		closed[cur.s] = true

		if cur.s.cell == goal && cur.s.t >= table.MaxT {
			return reconstruct(cur), stats, true
		}

		if cur.s.t >= upper {
			continue
		}

		nextT := cur.s.t + 1

		// The successor set is always {cur}∪neighbors (spec.md §4.3); a
		// positive constraint pinning nextT is a filter over that set, never
		// a replacement — it must not manufacture a non-adjacent "successor"
		// the agent could not physically reach.
		candidates := make([]grid.Cell, 0, 5)
		candidates = append(candidates, cur.s.cell)
		candidates = append(candidates, g.Neighbors(cur.s.cell)...)

		if reqEdge, ok := table.RequiredEdge(nextT); ok {
			if reqEdge.A != cur.s.cell {
				continue // this branch cannot satisfy the required edge
			}
			candidates = keepOnly(candidates, reqEdge.B)
		} else if reqVertex, ok := table.RequiredVertex(nextT); ok {
			candidates = keepOnly(candidates, reqVertex)
		}

		for _, next := range candidates {
			if next != cur.s.cell && !g.Free(next) {
				continue
			}
			if table.VertexForbidden(next, nextT) {
				continue
			}
			if table.EdgeForbidden(cur.s.cell, next, nextT) {
				continue
			}
			ns := state{cell: next, t: nextT}
			if closed[ns] {
				continue
			}
			push(&node{s: ns, g: cur.g + 1, h: heur.H(next), parent: cur})
		}
	}

	return nil, stats, false
}

// keepOnly filters candidates down to required, if required is among
// them, or to nothing otherwise. It never adds a cell that wasn't
// already a legal {cur}∪neighbors successor.
func keepOnly(candidates []grid.Cell, required grid.Cell) []grid.Cell {
	for _, c := range candidates {
		if c == required {
			return []grid.Cell{c}
		}
	}
	return nil
}

func reconstruct(n *node) grid.Path {
	var path grid.Path
	for cur := n; cur != nil; cur = cur.parent {
		path = append(grid.Path{cur.s.cell}, path...)
	}
	return path
}

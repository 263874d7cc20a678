// Package highlevel implements the best-first CBS search over the
// constraint tree, grounded on cbs_basic.py's CBSSolver.find_solution
// and the teacher's CBS.Solve (internal/algo/cbs.go in the reference
// pack), generalized to plain per-agent paths instead of the teacher's
// robot/task/assignment model.
package highlevel

import (
	"container/heap"
	"math/rand"
	"time"

	"github.com/elektrokombinacija/mapfcbs/internal/mapf/conflict"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/constraint"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/grid"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/lowlevel"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/split"
	"github.com/elektrokombinacija/mapfcbs/internal/tracing"
)

// Outcome is the terminal status of a Solve call.
type Outcome int

const (
	Solved Outcome = iota
	Timeout
	Unsolvable
)

// Counters aggregates the node counts the spec requires callers see.
type Counters struct {
	HLExpanded, HLGenerated int
	LLExpanded, LLGenerated int
}

// Result is what Solve returns: the paths (nil unless Solved), their
// summed cost, and the search counters.
type Result struct {
	Paths    []grid.Path
	Cost     int
	Counters Counters
	Outcome  Outcome
}

// node is one constraint-tree node. Nodes are immutable once pushed:
// children copy constraints/paths rather than mutating the parent's.
type node struct {
	constraints []constraint.Constraint
	paths       []grid.Path
	collisions  []conflict.Collision
	cost        int
	gen         int
	index       int
}

type openHeap []*node

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if len(a.collisions) != len(b.collisions) {
		return len(a.collisions) < len(b.collisions)
	}
	return a.gen < b.gen
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

func sumCost(paths []grid.Path) int {
	total := 0
	for _, p := range paths {
		total += p.Cost()
	}
	return total
}

func addConstraint(cs []constraint.Constraint, add constraint.Constraint) []constraint.Constraint {
	for _, existing := range cs {
		if existing == add {
			return cs
		}
	}
	out := make([]constraint.Constraint, len(cs), len(cs)+1)
	copy(out, cs)
	return append(out, add)
}

// replan runs the low-level planner for agent against the given
// constraint set, returning the new path and updating counters. starts
// and goals are the instance's per-agent endpoints and heur is the
// shared per-goal heuristic table cache.
func replan(g *grid.Grid, heur map[grid.Cell]*grid.HeuristicTable, starts, goals []grid.Cell, agent int, cs []constraint.Constraint, counters *Counters) (grid.Path, bool) {
	table, err := constraint.Build(cs, agent)
	if err != nil {
		return nil, false
	}
	h, ok := heur[goals[agent]]
	if !ok {
		h = grid.BuildHeuristic(g, goals[agent])
		heur[goals[agent]] = h
	}
	path, stats, ok := lowlevel.FindPath(g, h, starts[agent], goals[agent], table, len(starts))
	counters.LLExpanded += stats.Expanded
	counters.LLGenerated += stats.Generated
	if !ok {
		return nil, false
	}
	return path, true
}

// violators returns the agents (other than the constraint's own agent)
// whose current path in paths already violates the positive constraint
// c, per spec.md §4.6's rule, ported from cbs_basic.py's
// paths_violate_constraint.
func violators(c constraint.Constraint, paths []grid.Path) []int {
	var out []int
	for i, p := range paths {
		if i == c.Agent {
			continue
		}
		cur := p.At(c.Timestep)
		prev := p.At(c.Timestep - 1)
		if c.Loc.Edge {
			// Required move is c.Loc.A -> c.Loc.B at c.Timestep. Agent i
			// violates it if it's already at A at t-1, already at B at
			// t, or is making the opposite traversal B->A.
			if prev == c.Loc.A || cur == c.Loc.B || (cur == c.Loc.A && prev == c.Loc.B) {
				out = append(out, i)
			}
		} else if c.Loc.A == cur {
			out = append(out, i)
		}
	}
	return out
}

// agentsIn returns the distinct agent indices named by a branch's
// constraints.
func agentsIn(branch []constraint.Constraint) []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range branch {
		if !seen[c.Agent] {
			seen[c.Agent] = true
			out = append(out, c.Agent)
		}
	}
	return out
}

// Solve runs best-first CBS from the given starts/goals using splitter
// to resolve conflicts. A zero timeout means unbounded. seed drives the
// solver-owned RNG used by disjoint and group splitting.
func Solve(g *grid.Grid, starts, goals []grid.Cell, splitter split.Splitter, timeout time.Duration, seed int64) Result {
	n := len(starts)
	rng := rand.New(rand.NewSource(seed))
	heur := make(map[grid.Cell]*grid.HeuristicTable, n)
	var counters Counters

	deadline := time.Time{}
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	timedOut := func() bool {
		return !deadline.IsZero() && time.Now().After(deadline)
	}

	root := &node{constraints: nil, paths: make([]grid.Path, n)}
	for a := 0; a < n; a++ {
		if timedOut() {
			return Result{Outcome: Timeout, Counters: counters}
		}
		p, ok := replan(g, heur, starts, goals, a, nil, &counters)
		if !ok {
			return Result{Outcome: Unsolvable, Counters: counters}
		}
		root.paths[a] = p
	}
	root.cost = sumCost(root.paths)
	root.collisions = conflict.AllFirst(root.paths)

	open := &openHeap{}
	heap.Init(open)
	genCounter := 0
	pushNode := func(nd *node) {
		nd.gen = genCounter
		genCounter++
		heap.Push(open, nd)
		counters.HLGenerated++
	}
	pushNode(root)

	for open.Len() > 0 {
		if timedOut() {
			return Result{Outcome: Timeout, Counters: counters}
		}
		p := heap.Pop(open).(*node)
		counters.HLExpanded++
		tracing.Logf("hl: pop cost=%d collisions=%d gen=%d", p.cost, len(p.collisions), p.gen)

		if len(p.collisions) == 0 {
			return Result{Paths: p.paths, Cost: p.cost, Counters: counters, Outcome: Solved}
		}

		first := p.collisions[0]
		branches := splitter.Split(first, n, rng)

		for _, branch := range branches {
			if timedOut() {
				return Result{Outcome: Timeout, Counters: counters}
			}

			childConstraints := append([]constraint.Constraint(nil), p.constraints...)
			for _, c := range branch {
				childConstraints = addConstraint(childConstraints, c)
			}

			childPaths := append([]grid.Path(nil), p.paths...)

			replanSet := agentsIn(branch)
			ok := true
			for _, a := range replanSet {
				if timedOut() {
					return Result{Outcome: Timeout, Counters: counters}
				}
				path, found := replan(g, heur, starts, goals, a, childConstraints, &counters)
				if !found {
					ok = false
					break
				}
				childPaths[a] = path
			}
			if !ok {
				continue
			}

			if len(branch) == 1 && branch[0].Positive {
				failed := false
				for _, v := range violators(branch[0], childPaths) {
					if timedOut() {
						return Result{Outcome: Timeout, Counters: counters}
					}
					path, found := replan(g, heur, starts, goals, v, childConstraints, &counters)
					if !found {
						failed = true
						break
					}
					childPaths[v] = path
				}
				if failed {
					continue
				}
			}

			child := &node{
				constraints: childConstraints,
				paths:       childPaths,
				collisions:  conflict.AllFirst(childPaths),
				cost:        sumCost(childPaths),
			}
			pushNode(child)
		}
	}

	return Result{Outcome: Unsolvable, Counters: counters}
}

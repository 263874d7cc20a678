// Package mapfcbs solves multi-agent pathfinding on a 4-connected grid
// with Conflict-Based Search: given a grid, a start and goal cell per
// agent, and a conflict-splitting strategy, it returns one path per
// agent minimizing the sum of path lengths such that no two agents
// collide.
package mapfcbs

import (
	"time"

	"github.com/elektrokombinacija/mapfcbs/internal/mapf/grid"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/highlevel"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/split"
)

// Cell addresses a grid location by (row, col), 0-indexed.
type Cell = grid.Cell

// Path is a per-agent sequence of cells, one per timestep.
type Path = grid.Path

// Grid is a rectangular boolean map of blocked cells.
type Grid = grid.Grid

// Splitter selects which conflict-resolution strategy the high-level
// search uses.
type Splitter int

const (
	// SplitStandard branches on both conflicting agents with a negative
	// constraint each.
	SplitStandard Splitter = iota
	// SplitDisjoint branches on one randomly chosen agent with a
	// positive/negative constraint pair.
	SplitDisjoint
	// SplitGroup ("Tuvya splitting") branches on two balanced groups of
	// agents, each attached to one of the conflicting agents.
	SplitGroup
)

func (s Splitter) impl() split.Splitter {
	switch s {
	case SplitDisjoint:
		return split.Disjoint{}
	case SplitGroup:
		return split.Group{}
	default:
		return split.Standard{}
	}
}

// Outcome is the terminal status of a Solve call.
type Outcome int

const (
	// Solved means Result.Paths holds a collision-free, cost-minimal
	// solution.
	Solved Outcome = iota
	// TimedOut means the wall-clock budget elapsed before the search
	// concluded; Result.Paths is nil.
	TimedOut
	// Unsolvable means the open set was exhausted (or some agent has no
	// path ignoring other agents); Result.Paths is nil.
	Unsolvable
)

// Options configures a Solve call.
type Options struct {
	// Splitter chooses the conflict-resolution strategy. The zero value
	// is SplitStandard.
	Splitter Splitter
	// Timeout bounds wall-clock search time; zero means unbounded.
	Timeout time.Duration
	// Seed drives the solver-owned RNG used by SplitDisjoint and
	// SplitGroup. Runs with identical inputs and Seed are deterministic.
	Seed int64
}

// Result is what Solve returns.
type Result struct {
	// Paths holds one path per agent, in input order. Nil unless
	// Outcome == Solved.
	Paths []grid.Path
	// Cost is the sum of path lengths (Σ len(paths[i])-1). Zero unless
	// Outcome == Solved.
	Cost int
	// HLExpanded/HLGenerated count high-level constraint-tree nodes;
	// LLExpanded/LLGenerated count low-level A* node expansions,
	// aggregated across every low-level invocation.
	HLExpanded, HLGenerated int
	LLExpanded, LLGenerated int
	// Outcome reports how the search concluded.
	Outcome Outcome
}

// NewGrid builds a grid from a row-major blocked matrix: blocked[r][c]
// true means the cell is an obstacle. All rows must share the same
// length.
func NewGrid(blocked [][]bool) *grid.Grid {
	return grid.New(blocked)
}

// Solve finds one path per agent from starts[i] to goals[i] on g,
// minimizing the sum of path lengths such that no two agents collide,
// using opts.Splitter to resolve discovered conflicts. starts and goals
// must have the same length (the number of agents); a mismatched length
// or an out-of-grid/blocked start or goal is reported as Unsolvable
// rather than causing a panic.
func Solve(g *grid.Grid, starts, goals []grid.Cell, opts Options) Result {
	if len(starts) != len(goals) {
		return Result{Outcome: Unsolvable}
	}
	for i := range starts {
		if !g.Free(starts[i]) || !g.Free(goals[i]) {
			return Result{Outcome: Unsolvable}
		}
	}

	r := highlevel.Solve(g, starts, goals, opts.Splitter.impl(), opts.Timeout, opts.Seed)

	out := Result{
		Cost:        r.Cost,
		HLExpanded:  r.Counters.HLExpanded,
		HLGenerated: r.Counters.HLGenerated,
		LLExpanded:  r.Counters.LLExpanded,
		LLGenerated: r.Counters.LLGenerated,
	}
	switch r.Outcome {
	case highlevel.Solved:
		out.Outcome = Solved
		out.Paths = r.Paths
	case highlevel.Timeout:
		out.Outcome = TimedOut
	default:
		out.Outcome = Unsolvable
	}
	return out
}

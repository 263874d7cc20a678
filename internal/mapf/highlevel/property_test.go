package highlevel_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/elektrokombinacija/mapfcbs/internal/mapf/conflict"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/grid"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/highlevel"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/split"
	"pgregory.net/rapid"
)

// genInstance draws a small open grid with a handful of agents whose
// starts and goals are distinct free cells, for property-testing the
// solver's invariants (spec.md §8) across many random layouts.
func genInstance(t *rapid.T) (*grid.Grid, []grid.Cell, []grid.Cell) {
	rows := rapid.IntRange(2, 5).Draw(t, "rows")
	cols := rapid.IntRange(2, 5).Draw(t, "cols")
	numAgents := rapid.IntRange(1, 3).Draw(t, "numAgents")

	blocked := make([][]bool, rows)
	for r := range blocked {
		blocked[r] = make([]bool, cols)
	}
	g := grid.New(blocked)

	all := g.FreeCells()
	if all < numAgents*2 {
		numAgents = all / 2
	}
	if numAgents < 1 {
		numAgents = 1
	}

	var free []grid.Cell
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			free = append(free, grid.Cell{Row: r, Col: c})
		}
	}

	perm := rapid.Permutation(free).Draw(t, "perm")
	starts := make([]grid.Cell, numAgents)
	goals := make([]grid.Cell, numAgents)
	for i := 0; i < numAgents; i++ {
		starts[i] = perm[2*i]
		goals[i] = perm[2*i+1]
	}
	return g, starts, goals
}

// TestProperty_DeterministicGivenSeed checks spec.md §8's determinism
// invariant: identical inputs and seed must reproduce identical output,
// including search counters, regardless of splitter.
func TestProperty_DeterministicGivenSeed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, starts, goals := genInstance(t)
		seed := rapid.Int64().Draw(t, "seed")
		splitters := []split.Splitter{split.Standard{}, split.Disjoint{}, split.Group{}}
		s := splitters[rapid.IntRange(0, len(splitters)-1).Draw(t, "splitter")]

		r1 := highlevel.Solve(g, starts, goals, s, 2*time.Second, seed)
		r2 := highlevel.Solve(g, starts, goals, s, 2*time.Second, seed)

		if r1.Outcome != r2.Outcome || r1.Cost != r2.Cost || r1.Counters != r2.Counters || !reflect.DeepEqual(r1.Paths, r2.Paths) {
			t.Fatalf("same seed produced different results: %+v vs %+v", r1, r2)
		}
	})
}

// TestProperty_SolvedPathsAreCollisionFreeAndValid checks the
// collision-freedom and cost-accounting invariants of any Solved
// result: no vertex or edge collision among returned paths, every path
// starts and ends at its declared endpoints, and Cost sums path costs.
func TestProperty_SolvedPathsAreCollisionFreeAndValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, starts, goals := genInstance(t)
		res := highlevel.Solve(g, starts, goals, split.Standard{}, 2*time.Second, 7)
		if res.Outcome != highlevel.Solved {
			return
		}

		sum := 0
		for i, p := range res.Paths {
			if p.At(0) != starts[i] {
				t.Fatalf("agent %d path does not start at its start cell", i)
			}
			if p.At(p.Cost()) != goals[i] {
				t.Fatalf("agent %d path does not end at its goal cell", i)
			}
			sum += p.Cost()
		}
		if sum != res.Cost {
			t.Fatalf("Cost %d does not equal summed path costs %d", res.Cost, sum)
		}

		for i := 0; i < len(res.Paths); i++ {
			for j := i + 1; j < len(res.Paths); j++ {
				if _, _, collides := conflict.First(res.Paths[i], res.Paths[j]); collides {
					t.Fatalf("agents %d and %d collide in a Solved result", i, j)
				}
			}
		}
	})
}

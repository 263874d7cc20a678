// Package conflict detects vertex and edge collisions between agent paths.
package conflict

import (
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/constraint"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/grid"
)

// Collision records the first conflict found between two agents' paths:
// either a vertex collision (both at Loc at Timestep) or an edge collision
// (the two agents swapping positions between Timestep-1 and Timestep).
type Collision struct {
	Agent1, Agent2 int
	Loc            constraint.Loc
	Timestep       int
}

// First scans p1 and p2 from t=0 and returns the first vertex or edge
// conflict, honoring goal-hold semantics past each path's end (spec.md §4.4).
//
// For an edge (swap) conflict the returned Loc holds agent1's pre-move
// cell in A and agent2's pre-move cell in B: agent1's forbidden traversal
// is (A->B), agent2's is (B->A).
func First(p1, p2 grid.Path) (constraint.Loc, int, bool) {
	horizon := len(p1)
	if len(p2) > horizon {
		horizon = len(p2)
	}
	for t := 0; t < horizon; t++ {
		a, b := p1.At(t), p2.At(t)
		na, nb := p1.At(t+1), p2.At(t+1)

		if na == nb {
			return constraint.VertexLoc(na), t + 1, true
		}
		if na == b && nb == a && a != na {
			// agent1 moves a->b, agent2 moves b->a: a swap.
			return constraint.EdgeLoc(a, b), t + 1, true
		}
	}
	return constraint.Loc{}, 0, false
}

// AllFirst returns the first collision for every unordered agent pair
// that collides, in deterministic (i,j) lexicographic order.
func AllFirst(paths []grid.Path) []Collision {
	var out []Collision
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			if loc, t, ok := First(paths[i], paths[j]); ok {
				out = append(out, Collision{Agent1: i, Agent2: j, Loc: loc, Timestep: t})
			}
		}
	}
	return out
}

package conflict_test

import (
	"testing"

	"github.com/elektrokombinacija/mapfcbs/internal/mapf/conflict"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/constraint"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst_NoCollision(t *testing.T) {
	p1 := grid.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	p2 := grid.Path{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}

	_, _, ok := conflict.First(p1, p2)
	assert.False(t, ok)
}

func TestFirst_VertexCollision(t *testing.T) {
	p1 := grid.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	p2 := grid.Path{{Row: 0, Col: 2}, {Row: 0, Col: 1}}

	loc, ts, ok := conflict.First(p1, p2)
	require.True(t, ok)
	assert.Equal(t, 1, ts)
	assert.Equal(t, constraint.VertexLoc(grid.Cell{Row: 0, Col: 1}), loc)
}

func TestFirst_EdgeSwapCollision(t *testing.T) {
	a := grid.Cell{Row: 0, Col: 0}
	b := grid.Cell{Row: 0, Col: 1}
	p1 := grid.Path{a, b}
	p2 := grid.Path{b, a}

	loc, ts, ok := conflict.First(p1, p2)
	require.True(t, ok)
	assert.Equal(t, 1, ts)
	assert.Equal(t, constraint.EdgeLoc(a, b), loc, "Loc.A must be agent1's pre-move cell")
}

func TestFirst_GoalHoldCollision(t *testing.T) {
	// Agent 1 finishes at (0,2) at t=1 and waits there forever; agent 2
	// arrives at (0,2) at t=3. They collide at t=3 under goal-hold.
	p1 := grid.Path{{Row: 0, Col: 0}, {Row: 0, Col: 2}}
	p2 := grid.Path{{Row: 1, Col: 2}, {Row: 1, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: 2}}

	_, ts, ok := conflict.First(p1, p2)
	require.True(t, ok)
	assert.Equal(t, 3, ts)
}

func TestAllFirst_DeterministicPairOrder(t *testing.T) {
	a := grid.Cell{Row: 0, Col: 1}
	paths := []grid.Path{
		{{Row: 0, Col: 0}, a},
		{{Row: 0, Col: 2}, a},
		{{Row: 1, Col: 0}, {Row: 1, Col: 1}},
	}

	collisions := conflict.AllFirst(paths)
	require.Len(t, collisions, 1)
	assert.Equal(t, 0, collisions[0].Agent1)
	assert.Equal(t, 1, collisions[0].Agent2)
}

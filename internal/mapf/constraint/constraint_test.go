package constraint_test

import (
	"testing"

	"github.com/elektrokombinacija/mapfcbs/internal/mapf/constraint"
	"github.com/elektrokombinacija/mapfcbs/internal/mapf/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FiltersByAgentAndTracksMaxT(t *testing.T) {
	a := grid.Cell{Row: 0, Col: 0}
	b := grid.Cell{Row: 0, Col: 1}
	all := []constraint.Constraint{
		{Agent: 0, Loc: constraint.VertexLoc(a), Timestep: 3},
		{Agent: 1, Loc: constraint.VertexLoc(b), Timestep: 9},
	}

	table, err := constraint.Build(all, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, table.MaxT)
	assert.True(t, table.VertexForbidden(a, 3))
	assert.False(t, table.VertexForbidden(b, 9), "agent 1's constraint must not leak into agent 0's table")
}

func TestVertexAndEdgeForbidden(t *testing.T) {
	a := grid.Cell{Row: 0, Col: 0}
	b := grid.Cell{Row: 0, Col: 1}
	all := []constraint.Constraint{
		{Agent: 0, Loc: constraint.VertexLoc(a), Timestep: 1},
		{Agent: 0, Loc: constraint.EdgeLoc(a, b), Timestep: 2},
	}

	table, err := constraint.Build(all, 0)
	require.NoError(t, err)

	assert.True(t, table.VertexForbidden(a, 1))
	assert.False(t, table.VertexForbidden(a, 2))
	assert.True(t, table.EdgeForbidden(a, b, 2))
	assert.False(t, table.EdgeForbidden(b, a, 2))
}

func TestRequiredVertexAndEdge(t *testing.T) {
	a := grid.Cell{Row: 0, Col: 0}
	b := grid.Cell{Row: 0, Col: 1}
	all := []constraint.Constraint{
		{Agent: 0, Loc: constraint.VertexLoc(a), Timestep: 1, Positive: true},
		{Agent: 0, Loc: constraint.EdgeLoc(a, b), Timestep: 2, Positive: true},
	}

	table, err := constraint.Build(all, 0)
	require.NoError(t, err)

	c, ok := table.RequiredVertex(1)
	require.True(t, ok)
	assert.Equal(t, a, c)

	_, ok = table.RequiredVertex(2)
	assert.False(t, ok)

	l, ok := table.RequiredEdge(2)
	require.True(t, ok)
	assert.Equal(t, constraint.EdgeLoc(a, b), l)
}

func TestBuild_ConflictingPositiveConstraints(t *testing.T) {
	a := grid.Cell{Row: 0, Col: 0}
	b := grid.Cell{Row: 0, Col: 1}
	all := []constraint.Constraint{
		{Agent: 0, Loc: constraint.VertexLoc(a), Timestep: 1, Positive: true},
		{Agent: 0, Loc: constraint.VertexLoc(b), Timestep: 1, Positive: true},
	}

	_, err := constraint.Build(all, 0)
	assert.ErrorIs(t, err, constraint.ErrConflictingPositive)
}

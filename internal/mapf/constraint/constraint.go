// Package constraint implements the per-agent constraint record and the
// indexed constraint table the low-level planner consults at every step.
package constraint

import (
	"errors"
	"fmt"

	"github.com/elektrokombinacija/mapfcbs/internal/mapf/grid"
)

// ErrConflictingPositive is returned by Build when two positive
// constraints on the same agent disagree at the same timestep — a
// legality error per the constraint-table contract, not a panic.
var ErrConflictingPositive = errors.New("constraint: conflicting positive constraints at same timestep")

// Loc names either a single cell (vertex constraint, Edge=false) or an
// ordered pair of adjacent cells "from A to B" (edge constraint, Edge=true).
// Loc is comparable and safe to use as a map key or with ==.
type Loc struct {
	A, B Cell
	Edge bool
}

// Cell is a re-export of grid.Cell kept local to this package so Loc's
// field types read naturally; it is identical to grid.Cell.
type Cell = grid.Cell

// VertexLoc builds a vertex constraint location.
func VertexLoc(c Cell) Loc { return Loc{A: c} }

// EdgeLoc builds an edge constraint location meaning "traverse from a to b".
func EdgeLoc(a, b Cell) Loc { return Loc{A: a, B: b, Edge: true} }

func (l Loc) String() string {
	if l.Edge {
		return fmt.Sprintf("%s->%s", l.A, l.B)
	}
	return l.A.String()
}

// Constraint is a single record constraining one agent at one timestep, as
// defined in the spec's data model: a negative constraint forbids the
// stated (agent, loc, timestep); a positive constraint requires it.
type Constraint struct {
	Agent    int
	Loc      Loc
	Timestep int
	Positive bool
}

// Table is the per-agent index over a set of constraints: negative vertex
// and edge prohibitions and positive vertex/edge requirements, each keyed
// by timestep, plus the largest timestep named by any constraint on the
// agent (across positive and negative, vertex and edge).
type Table struct {
	negVertex map[int]map[Cell]bool
	negEdge   map[int]map[Loc]bool
	posVertex map[int]Cell
	posEdge   map[int]Loc
	MaxT      int
}

// Build indexes the constraints addressed to agent into a Table. It
// returns ErrConflictingPositive if two positive constraints on agent
// disagree at the same timestep.
func Build(all []Constraint, agent int) (*Table, error) {
	t := &Table{
		negVertex: make(map[int]map[Cell]bool),
		negEdge:   make(map[int]map[Loc]bool),
		posVertex: make(map[int]Cell),
		posEdge:   make(map[int]Loc),
	}
	for _, c := range all {
		if c.Agent != agent {
			continue
		}
		if c.Timestep > t.MaxT {
			t.MaxT = c.Timestep
		}
		if c.Positive {
			if c.Loc.Edge {
				if existing, ok := t.posEdge[c.Timestep]; ok && existing != c.Loc {
					return nil, fmt.Errorf("%w: agent %d at t=%d", ErrConflictingPositive, agent, c.Timestep)
				}
				t.posEdge[c.Timestep] = c.Loc
			} else {
				if existing, ok := t.posVertex[c.Timestep]; ok && existing != c.Loc.A {
					return nil, fmt.Errorf("%w: agent %d at t=%d", ErrConflictingPositive, agent, c.Timestep)
				}
				t.posVertex[c.Timestep] = c.Loc.A
			}
			continue
		}
		if c.Loc.Edge {
			if t.negEdge[c.Timestep] == nil {
				t.negEdge[c.Timestep] = make(map[Loc]bool)
			}
			t.negEdge[c.Timestep][c.Loc] = true
		} else {
			if t.negVertex[c.Timestep] == nil {
				t.negVertex[c.Timestep] = make(map[Cell]bool)
			}
			t.negVertex[c.Timestep][c.Loc.A] = true
		}
	}
	return t, nil
}

// VertexForbidden reports whether the agent is forbidden from cell c at t.
func (t *Table) VertexForbidden(c Cell, ts int) bool {
	return t.negVertex[ts][c]
}

// EdgeForbidden reports whether moving from->to at time ts is forbidden.
func (t *Table) EdgeForbidden(from, to Cell, ts int) bool {
	return t.negEdge[ts][EdgeLoc(from, to)]
}

// RequiredVertex returns the cell the agent must occupy at t, if any.
func (t *Table) RequiredVertex(ts int) (Cell, bool) {
	c, ok := t.posVertex[ts]
	return c, ok
}

// RequiredEdge returns the move the agent must make to arrive at t, if any.
func (t *Table) RequiredEdge(ts int) (Loc, bool) {
	l, ok := t.posEdge[ts]
	return l, ok
}

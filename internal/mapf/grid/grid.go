// Package grid defines the static map and per-timestep path representation
// shared by every stage of the CBS search.
package grid

import "fmt"

// Cell addresses a grid location by (row, col), 0-indexed.
type Cell struct {
	Row, Col int
}

// String renders a cell as "(row,col)" for diagnostics.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// rowDelta/colDelta enumerate the 4-connected neighbor offsets in a fixed
// order; callers that need deterministic successor ordering (the low-level
// planner's tie-breaking) rely on this order being stable.
var rowDelta = [4]int{-1, 1, 0, 0}
var colDelta = [4]int{0, 0, -1, 1}

// Grid is a rectangular boolean map of blocked cells.
type Grid struct {
	Rows, Cols int
	blocked    [][]bool
}

// New builds a grid from a row-major blocked matrix. blocked must have Rows
// rows each of length Cols; New panics if the shape is inconsistent, since
// that is a caller bug rather than recoverable input.
func New(blocked [][]bool) *Grid {
	rows := len(blocked)
	cols := 0
	if rows > 0 {
		cols = len(blocked[0])
	}
	for _, row := range blocked {
		if len(row) != cols {
			panic("grid: non-rectangular blocked matrix")
		}
	}
	return &Grid{Rows: rows, Cols: cols, blocked: blocked}
}

// InBounds reports whether c lies within the grid's extent.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Blocked reports whether c is an obstacle. c must be in bounds.
func (g *Grid) Blocked(c Cell) bool {
	return g.blocked[c.Row][c.Col]
}

// Free reports whether c is in bounds and not blocked.
func (g *Grid) Free(c Cell) bool {
	return g.InBounds(c) && !g.blocked[c.Row][c.Col]
}

// Neighbors returns the in-grid, unblocked 4-connected neighbors of c, in a
// fixed N/S/W/E order.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for i := 0; i < 4; i++ {
		n := Cell{Row: c.Row + rowDelta[i], Col: c.Col + colDelta[i]}
		if g.Free(n) {
			out = append(out, n)
		}
	}
	return out
}

// FreeCells counts the unblocked cells in the grid.
func (g *Grid) FreeCells() int {
	n := 0
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if !g.blocked[r][c] {
				n++
			}
		}
	}
	return n
}

// Path is a sequence of cells, one per timestep, c[0] the start and
// c[len(c)-1] the goal. Its cost is len(c)-1.
type Path []Cell

// Cost returns the number of transitions in the path.
func (p Path) Cost() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// At returns the agent's location at time t under the canonical
// goal-hold semantics: an agent that has finished its path remains at its
// last cell forever. Calling At on an empty path panics, since every path
// produced by this module always contains at least the start cell.
func (p Path) At(t int) Cell {
	if t < 0 {
		t = 0
	}
	if t >= len(p) {
		return p[len(p)-1]
	}
	return p[t]
}

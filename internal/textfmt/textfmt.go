// Package textfmt reads the plain-text grid+agents instance format
// described in spec.md §6. Instance parsing is explicitly outside the
// solver core; this package exists only so the demonstration binary
// (cmd/mapfcbs) can load a real instance file instead of a hardcoded
// one, following the style of the teacher's tools/gen_instances, which
// also kept instance I/O in a driver package outside the algorithm
// packages.
package textfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/mapfcbs/internal/mapf/grid"
)

// Instance is the parsed form of the §6 text format: a blocked matrix
// plus one (start, goal) pair per agent.
type Instance struct {
	Blocked [][]bool
	Starts  []grid.Cell
	Goals   []grid.Cell
}

// Parse reads the §6 instance format from r:
//
//	<rows> <cols>
//	<row_0>            # rows lines of '.'=free, '@'=blocked
//	...
//	<num_agents>
//	<sx> <sy> <gx> <gy>  # one line per agent, 0-indexed, (row, col)
//	...
func Parse(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line, err := nextLine(sc)
	if err != nil {
		return nil, err
	}
	rows, cols, err := parseTwoInts(line)
	if err != nil {
		return nil, fmt.Errorf("textfmt: header: %w", err)
	}

	blocked := make([][]bool, rows)
	for i := 0; i < rows; i++ {
		row, err := nextLine(sc)
		if err != nil {
			return nil, fmt.Errorf("textfmt: grid row %d: %w", i, err)
		}
		row = strings.TrimRight(row, " \t")
		if len(row) != cols {
			return nil, fmt.Errorf("textfmt: grid row %d has length %d, want %d", i, len(row), cols)
		}
		blocked[i] = make([]bool, cols)
		for c, ch := range row {
			switch ch {
			case '@':
				blocked[i][c] = true
			case '.':
				blocked[i][c] = false
			default:
				return nil, fmt.Errorf("textfmt: grid row %d: unexpected char %q", i, ch)
			}
		}
	}

	line, err = nextLine(sc)
	if err != nil {
		return nil, fmt.Errorf("textfmt: agent count: %w", err)
	}
	numAgents, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("textfmt: agent count: %w", err)
	}

	starts := make([]grid.Cell, numAgents)
	goals := make([]grid.Cell, numAgents)
	for i := 0; i < numAgents; i++ {
		line, err := nextLine(sc)
		if err != nil {
			return nil, fmt.Errorf("textfmt: agent %d: %w", i, err)
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("textfmt: agent %d: expected 4 fields, got %d", i, len(fields))
		}
		nums := make([]int, 4)
		for k, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("textfmt: agent %d: %w", i, err)
			}
			nums[k] = n
		}
		starts[i] = grid.Cell{Row: nums[0], Col: nums[1]}
		goals[i] = grid.Cell{Row: nums[2], Col: nums[3]}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &Instance{Blocked: blocked, Starts: starts, Goals: goals}, nil
}

func nextLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return sc.Text(), nil
}

func parseTwoInts(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

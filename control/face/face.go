// Package face describes the word clock's lamp grid and decides which lamps spell out a given time.
//
// The face is 9 rows of 11 lamps.  Each row is stored as a bitmask where bit i lights column i,
// counting from the left edge of the face.  That is also the order the columns are clocked into
// the shift registers, so a Row is both the logical and the wire representation of one row.
package face

import (
	"math/bits"
	"strings"
)

const (
	Rows = 9
	Cols = 11

	// RowMask covers every column of a row.
	RowMask Row = 1<<Cols - 1
)

// Row is the set of lit lamps in one row of the face.
type Row uint16

// Lit returns whether the lamp in column col is lit.  Columns outside the face are never lit.
func (r Row) Lit(col int) bool {
	if col < 0 || col >= Cols {
		return false
	}
	return r&(1<<uint(col)) != 0
}

// Set returns r with the lamp in column col lit.  Columns outside the face are ignored.
func (r Row) Set(col int) Row {
	if col < 0 || col >= Cols {
		return r
	}
	return r | 1<<uint(col)
}

// Clear returns r with the lamp in column col off.
func (r Row) Clear(col int) Row {
	if col < 0 || col >= Cols {
		return r
	}
	return r &^ (1 << uint(col))
}

// Count returns the number of lit lamps in the row.
func (r Row) Count() int {
	return bits.OnesCount16(uint16(r & RowMask))
}

// String draws the row as '#' for lit and '.' for unlit lamps, leftmost column first.
func (r Row) String() string {
	var b strings.Builder
	for col := 0; col < Cols; col++ {
		if r.Lit(col) {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Grid is one frame of the face.  Index 0 is the top row.
type Grid [Rows]Row

// Lit returns whether the lamp at (row, col) is lit.
func (g *Grid) Lit(row, col int) bool {
	if row < 0 || row >= Rows {
		return false
	}
	return g[row].Lit(col)
}

// Light ORs a word into the grid.
func (g *Grid) Light(w Word) {
	g[w.Row] |= w.Mask & RowMask
}

// Clear turns every lamp off.
func (g *Grid) Clear() {
	*g = Grid{}
}

// NonEmpty returns the number of rows with at least one lit lamp.
func (g *Grid) NonEmpty() int {
	var n int
	for _, r := range g {
		if r&RowMask != 0 {
			n++
		}
	}
	return n
}

// Lamps returns the total number of lit lamps.
func (g *Grid) Lamps() int {
	var n int
	for _, r := range g {
		n += r.Count()
	}
	return n
}

// String draws the grid one row per line.
func (g *Grid) String() string {
	lines := make([]string, Rows)
	for i, r := range g {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

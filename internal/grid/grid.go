// Package grid implements the Befunge playfield: a rectangular array of
// signed 32-bit cells that the parser reads and the interpreter may mutate
// at runtime via the put instruction.
package grid

import "strings"

// Value is a Befunge cell value: a signed 32-bit integer with wrapping
// arithmetic. Grid cells not set by the source hold Space, not the zero
// Value.
type Value int32

// Space is the default cell value.
const Space Value = 0x20

// replacementChar stands in for a value outside the printable ASCII range
// when a printable rendering is required (debug dumps, command dispatch).
const replacementChar = '\''

// ValueFromRune converts a Unicode scalar to a Value.
func ValueFromRune(r rune) Value {
	return Value(r)
}

// Rune converts a Value to its Unicode scalar, falling back to the
// replacement character if the value is not a valid code point.
func (v Value) Rune() rune {
	r := rune(v)
	if r < 0 || r > 0x10FFFF {
		return '�'
	}
	return r
}

// PrintableASCII lossily converts a Value to a printable ASCII character in
// the range 0x20-0x7E, substituting replacementChar otherwise.
func (v Value) PrintableASCII() byte {
	if v >= 0x20 && v <= 0x7e {
		return byte(v)
	}
	return replacementChar
}

// Grid is a fixed-size, row-major array of cells.
type Grid struct {
	width  int
	height int
	cells  []Value
}

// New builds a Grid from source text. Lines are split on LF with any
// trailing CR stripped. The width is the longest line's rune count (at
// least 1); the height is the line count (at least 1). Shorter rows are
// padded with spaces.
func New(source string) *Grid {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	width := 1
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}

	height := len(lines)
	if height < 1 {
		height = 1
	}

	cells := make([]Value, width*height)
	for i := range cells {
		cells[i] = Space
	}

	for y, line := range lines {
		x := 0
		for _, r := range line {
			cells[y*width+x] = ValueFromRune(r)
			x++
		}
	}

	return &Grid{width: width, height: height, cells: cells}
}

// Bounds returns the width and height in cells.
func (g *Grid) Bounds() (width, height int) {
	return g.width, g.height
}

// InBounds reports whether a position lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the value at a position and whether the position was in
// bounds.
func (g *Grid) Get(x, y int) (Value, bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	return g.cells[y*g.width+x], true
}

// Put writes a value at a position and returns the previous value. The
// second return is false if the position was out of bounds, in which case
// the write is a no-op.
func (g *Grid) Put(x, y int, v Value) (previous Value, ok bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	i := y*g.width + x
	previous = g.cells[i]
	g.cells[i] = v
	return previous, true
}

// Package seating implements the seat-allocation and hold-lifecycle engine:
// an in-process, dependency-free core with no I/O, no background threads and
// no persistence. Callers (HTTP handlers, CLIs, RPC servers) own the process
// surrounding it; this package only owns the grid, the holds and the clock.
package seating

import "fmt"

// Seat is a single (row, column) position on the grid. Seats are
// value-equal on their coordinates and totally ordered by (row, column).
type Seat struct {
	Row, Col int
}

// Less reports whether s sorts before other under the (row, column) order.
func (s Seat) Less(other Seat) bool {
	if s.Row != other.Row {
		return s.Row < other.Row
	}
	return s.Col < other.Col
}

// Adjacent reports whether s and other are in the same row and one column
// apart.
func (s Seat) Adjacent(other Seat) bool {
	return s.Row == other.Row && abs(s.Col-other.Col) == 1
}

func (s Seat) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Layout describes an immutable R-row by C-column grid. It is the sole
// factory for Seat values and the (row, column) <-> linear index mapping.
type Layout struct {
	rows, cols int
}

// NewLayout builds a layout of rows x cols seats. Both dimensions must be
// at least 1.
func NewLayout(rows, cols int) (Layout, error) {
	if rows < 1 || cols < 1 {
		return Layout{}, &ArgumentError{Kind: BadArgument, Msg: fmt.Sprintf("layout must have at least one row and one column, got %dx%d", rows, cols)}
	}
	return Layout{rows: rows, cols: cols}, nil
}

// Rows returns the number of rows in the layout.
func (l Layout) Rows() int { return l.rows }

// Cols returns the number of seats per row.
func (l Layout) Cols() int { return l.cols }

// Capacity returns the total seat count, R*C.
func (l Layout) Capacity() int { return l.rows * l.cols }

// At returns the seat at (row, col), failing with BadArgument if either
// coordinate is out of bounds.
func (l Layout) At(row, col int) (Seat, error) {
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return Seat{}, &ArgumentError{Kind: BadArgument, Msg: fmt.Sprintf("seat (%d,%d) outside the %dx%d layout", row, col, l.rows, l.cols)}
	}
	return Seat{Row: row, Col: col}, nil
}

// FromIndex converts a 0-based linear index into a seat: index i maps to
// (i div C, i mod C).
func (l Layout) FromIndex(idx int) (Seat, error) {
	if idx < 0 || idx >= l.Capacity() {
		return Seat{}, &ArgumentError{Kind: BadArgument, Msg: fmt.Sprintf("index %d outside [0,%d)", idx, l.Capacity())}
	}
	return Seat{Row: idx / l.cols, Col: idx % l.cols}, nil
}

// Index converts a seat into its 0-based linear index without bounds
// checking; callers must only pass seats obtained from this layout.
func (l Layout) Index(s Seat) int {
	return l.cols*s.Row + s.Col
}

// Package board implements the immutable cell grid the pills fall onto.
package board

import (
	"errors"
	"fmt"
)

// CellState is the content of a single board cell.
type CellState uint8

const (
	Empty CellState = iota
	VirusRed
	VirusBlue
	VirusYellow
	PillRed
	PillBlue
	PillYellow
)

var stateNames = [...]string{
	Empty:       "EMPTY",
	VirusRed:    "VIRUS_RED",
	VirusBlue:   "VIRUS_BLUE",
	VirusYellow: "VIRUS_YELLOW",
	PillRed:     "PILL_RED",
	PillBlue:    "PILL_BLUE",
	PillYellow:  "PILL_YELLOW",
}

// String returns the upper-case state name.
func (s CellState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// IsVirus reports whether the state is one of the virus states.
func (s CellState) IsVirus() bool {
	return s == VirusRed || s == VirusBlue || s == VirusYellow
}

// IsPill reports whether the state is one of the pill states.
func (s CellState) IsPill() bool {
	return s == PillRed || s == PillBlue || s == PillYellow
}

var (
	ErrInvalidDimensions = errors.New("board: width and height must be positive")
	ErrOutOfBounds       = errors.New("board: position out of bounds")
)

// Board is a fixed width x height grid of cell states stored row-major.
// Every mutation returns a new Board, so a Board value can be shared freely.
type Board struct {
	width  int
	height int
	cells  []CellState
}

// New creates an empty board.
func New(width, height int) (Board, error) {
	if width <= 0 || height <= 0 {
		return Board{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return Board{
		width:  width,
		height: height,
		cells:  make([]CellState, width*height),
	}, nil
}

// MustNew is like New but panics on invalid dimensions.
// Intended for tests and package-level defaults.
func MustNew(width, height int) Board {
	b, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns the number of columns.
func (b Board) Width() int { return b.width }

// Height returns the number of rows.
func (b Board) Height() int { return b.height }

// InBounds reports whether (x, y) lies on the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the state at (x, y).
func (b Board) Cell(x, y int) (CellState, error) {
	if !b.InBounds(x, y) {
		return Empty, fmt.Errorf("%w: (%d, %d) on %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	return b.cells[y*b.width+x], nil
}

// SetCell returns a copy of the board with (x, y) set to state.
func (b Board) SetCell(x, y int, state CellState) (Board, error) {
	if !b.InBounds(x, y) {
		return b, fmt.Errorf("%w: (%d, %d) on %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	next := b.Clone()
	next.cells[y*b.width+x] = state
	return next, nil
}

// IsEmpty reports whether (x, y) is on the board and empty.
// Out-of-bounds positions are not empty.
func (b Board) IsEmpty(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.cells[y*b.width+x] == Empty
}

// Clone returns a board with its own copy of the cells.
func (b Board) Clone() Board {
	cells := make([]CellState, len(b.cells))
	copy(cells, b.cells)
	return Board{width: b.width, height: b.height, cells: cells}
}

// Count returns how many cells hold the given state.
func (b Board) Count(state CellState) int {
	n := 0
	for _, c := range b.cells {
		if c == state {
			n++
		}
	}
	return n
}

// Equal reports whether two boards have the same size and contents.
func (b Board) Equal(other Board) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i, c := range b.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

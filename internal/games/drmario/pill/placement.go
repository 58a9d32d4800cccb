package pill

import (
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
)

// CanPlace reports whether both pill cells are on the board and empty.
// Other in-flight pills must already be stamped onto b.
func CanPlace(b board.Board, p Pill) bool {
	cells := Cells(p)
	for _, c := range cells {
		if !b.InBounds(c.X, c.Y) {
			return false
		}
	}
	for _, c := range cells {
		if !b.IsEmpty(c.X, c.Y) {
			return false
		}
	}
	return true
}

// Overlap reports whether the two pills share any position.
func Overlap(a, b Pill) bool {
	for _, ca := range Cells(a) {
		for _, cb := range Cells(b) {
			if ca.X == cb.X && ca.Y == cb.Y {
				return true
			}
		}
	}
	return false
}

// PlaceOnBoard stamps both pill cells onto the board without checking
// occupancy. It fails only when a cell lies outside the board.
func PlaceOnBoard(b board.Board, p Pill) (board.Board, error) {
	next := b
	for _, c := range Cells(p) {
		state, err := CellState(c.Color)
		if err != nil {
			return b, err
		}
		next, err = next.SetCell(c.X, c.Y, state)
		if err != nil {
			return b, err
		}
	}
	return next, nil
}

// PlaceAll stamps every pill onto the board in order.
func PlaceAll(b board.Board, pills []Pill) (board.Board, error) {
	next := b
	var err error
	for _, p := range pills {
		next, err = PlaceOnBoard(next, p)
		if err != nil {
			return b, err
		}
	}
	return next, nil
}

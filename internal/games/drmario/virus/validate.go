package virus

import (
	"fmt"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
)

// Validation error codes.
const (
	CodeOutOfBounds = "OUT_OF_BOUNDS"
	CodeDuplicate   = "DUPLICATE"
)

// ValidationError describes why a placement list was rejected.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that every placement is on the board and that no two
// share a position. Bounds are checked for the whole list before
// duplicates. It returns nil for a valid list.
func Validate(b board.Board, placements []Placement) error {
	for _, p := range placements {
		if !b.InBounds(p.X, p.Y) {
			return ValidationError{
				Code:    CodeOutOfBounds,
				Message: fmt.Sprintf("Placement at (%d, %d) is outside board bounds", p.X, p.Y),
			}
		}
	}

	seen := make(map[[2]int]struct{}, len(placements))
	for _, p := range placements {
		key := [2]int{p.X, p.Y}
		if _, dup := seen[key]; dup {
			return ValidationError{
				Code:    CodeDuplicate,
				Message: fmt.Sprintf("Duplicate placement at (%d, %d)", p.X, p.Y),
			}
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Place stamps every placement onto the board, overwriting existing
// cells. Callers should Validate first; an off-board placement or unknown
// color fails the whole call and the input board is returned unchanged.
func Place(b board.Board, placements []Placement) (board.Board, error) {
	next := b
	for _, p := range placements {
		state, err := CellState(p.Color)
		if err != nil {
			return b, err
		}
		next, err = next.SetCell(p.X, p.Y, state)
		if err != nil {
			return b, err
		}
	}
	return next, nil
}

// BuildBoard generates, validates and places viruses on a fresh board.
// On any failure it returns the empty board along with the reason.
func BuildBoard(width, height, count int, seed int64, minY int) (board.Board, []Placement, error) {
	empty, err := board.New(width, height)
	if err != nil {
		return board.Board{}, nil, err
	}

	placements, err := Generate(Params{Width: width, Height: height, Count: count, Seed: seed, MinY: minY})
	if err != nil {
		return empty, nil, err
	}
	if err := Validate(empty, placements); err != nil {
		return empty, placements, err
	}
	withViruses, err := Place(empty, placements)
	if err != nil {
		return empty, placements, err
	}
	return withViruses, placements, nil
}

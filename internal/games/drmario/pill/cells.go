package pill

import (
	"fmt"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
)

// Cell is one occupied board position of a pill.
type Cell struct {
	X, Y  int
	Color Color
}

// Cells returns the two cells covered by the pill.
// At 180 and 270 degrees the color order is reversed, so the first
// geometric cell carries the second stored color.
func Cells(p Pill) [2]Cell {
	c1, c2 := p.Colors[0], p.Colors[1]
	if p.Rotation == 180 || p.Rotation == 270 {
		c1, c2 = c2, c1
	}

	x, y := p.X, p.Y
	switch p.Rotation {
	case 90:
		return [2]Cell{{x, y, c1}, {x, y + 1, c2}}
	case 180:
		return [2]Cell{{x - 1, y, c1}, {x, y, c2}}
	case 270:
		return [2]Cell{{x, y - 1, c1}, {x, y, c2}}
	default:
		return [2]Cell{{x, y, c1}, {x + 1, y, c2}}
	}
}

// CellState maps a pill color to its board state.
func CellState(c Color) (board.CellState, error) {
	switch c {
	case Red:
		return board.PillRed, nil
	case Blue:
		return board.PillBlue, nil
	case Yellow:
		return board.PillYellow, nil
	default:
		return board.Empty, fmt.Errorf("%w: %q", ErrInvalidColor, string(c))
	}
}

// Package virus generates deterministic seeded virus placements and stamps
// them onto a board.
package virus

import (
	"errors"
	"fmt"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-drmario/internal/core"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

// DefaultCount is the number of viruses seeded per board.
const DefaultCount = 20

// ErrCapacity is returned when the requested count cannot fit in the rows
// available below minY.
var ErrCapacity = errors.New("virus: count exceeds available positions")

// Placement is one generated virus.
type Placement struct {
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Color pill.Color `json:"color"`
}

// Params configures Generate.
type Params struct {
	Width, Height int
	Count         int
	Seed          int64
	MinY          int
}

// maxAttempts bounds rejection sampling. The generator's period is at most
// lcgModulus and each attempt consumes at least two draws, so this covers
// every state the generator can reach.
const maxAttempts = 3 * lcgModulus

func posKey(x, y int) uint64 {
	return uint64(uint32(x))<<32 | uint64(uint32(y))
}

// ClampMinY restricts minY to [0, height-1].
func ClampMinY(minY, height int) int {
	return core.Clamp(minY, 0, height-1)
}

// Generate produces count placements at unique positions with
// y in [clamped minY, height). Identical params yield identical output,
// including order.
func Generate(p Params) ([]Placement, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", board.ErrInvalidDimensions, p.Width, p.Height)
	}
	if p.Count <= 0 {
		return []Placement{}, nil
	}

	minY := ClampMinY(p.MinY, p.Height)
	available := p.Height - minY
	if p.Count > p.Width*available {
		return nil, fmt.Errorf("%w: %d viruses, %d cells below row %d", ErrCapacity, p.Count, p.Width*available, minY)
	}

	rng := NewLCG(p.Seed)
	used := intmap.New[uint64, struct{}](p.Count)
	placements := make([]Placement, 0, p.Count)

	var x, dy, ci int
	for attempt := 0; len(placements) < p.Count; attempt++ {
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("%w: placed %d of %d", ErrCapacity, len(placements), p.Count)
		}

		x, rng = rng.Intn(p.Width)
		dy, rng = rng.Intn(available)
		y := minY + dy

		key := posKey(x, y)
		if _, taken := used.Get(key); taken {
			continue
		}
		used.Put(key, struct{}{})

		ci, rng = rng.Intn(len(pill.Colors))
		placements = append(placements, Placement{X: x, Y: y, Color: colorAt(ci)})
	}
	return placements, nil
}

// colorAt indexes the palette the way a JavaScript array would for the
// negative draws a negative seed can produce: out-of-range indexes yield
// no color.
func colorAt(i int) pill.Color {
	if i < 0 || i >= len(pill.Colors) {
		return ""
	}
	return pill.Colors[i]
}

// MinYFromSeed derives the virus floor from the last hexadecimal digit of
// the seed's magnitude, giving a value in [0, 15].
func MinYFromSeed(seed int64) int {
	u := uint64(seed)
	if seed < 0 {
		u = -u
	}
	return int(u % 16)
}

// CellState maps a virus color to its board state.
func CellState(c pill.Color) (board.CellState, error) {
	switch c {
	case pill.Red:
		return board.VirusRed, nil
	case pill.Blue:
		return board.VirusBlue, nil
	case pill.Yellow:
		return board.VirusYellow, nil
	default:
		return board.Empty, fmt.Errorf("%w: %q", pill.ErrInvalidColor, string(c))
	}
}

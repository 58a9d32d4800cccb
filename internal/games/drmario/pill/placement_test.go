package pill

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
)

func TestCanPlace(t *testing.T) {
	b := board.MustNew(8, 16)
	b, _ = b.SetCell(5, 5, board.VirusRed)

	tests := []struct {
		name     string
		x, y     int
		rotation Rotation
		expected bool
	}{
		{"empty spot", 0, 0, 0, true},
		{"right edge horizontal", 7, 0, 0, false},
		{"left edge 180", 0, 0, 180, false},
		{"top edge 270", 0, 0, 270, false},
		{"bottom edge vertical", 0, 15, 90, false},
		{"bottom row horizontal", 3, 15, 0, true},
		{"onto virus", 4, 5, 0, false},
		{"onto virus from above", 5, 4, 90, false},
		{"next to virus", 6, 5, 0, true},
		{"negative", -1, 3, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := mustPill(t, Red, Blue, tc.x, tc.y, tc.rotation)
			if got := CanPlace(b, p); got != tc.expected {
				t.Errorf("CanPlace(%v) = %v, expected %v", p, got, tc.expected)
			}
		})
	}
}

func TestOverlap(t *testing.T) {
	a := mustPill(t, Red, Blue, 2, 2, 0)

	tests := []struct {
		name     string
		other    Pill
		expected bool
	}{
		{"same spot", mustPill(t, Yellow, Yellow, 2, 2, 0), true},
		{"shares right cell", mustPill(t, Yellow, Yellow, 3, 2, 90), true},
		{"180 overlaps anchor", mustPill(t, Blue, Red, 4, 2, 180), true},
		{"adjacent", mustPill(t, Red, Red, 4, 2, 0), false},
		{"below", mustPill(t, Red, Red, 2, 3, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlap(a, tc.other); got != tc.expected {
				t.Errorf("Overlap() = %v, expected %v", got, tc.expected)
			}
			if got := Overlap(tc.other, a); got != tc.expected {
				t.Errorf("Overlap() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPlaceOnBoard(t *testing.T) {
	b := board.MustNew(8, 16)
	p := mustPill(t, Red, Yellow, 3, 4, 270)

	next, err := PlaceOnBoard(b, p)
	if err != nil {
		t.Fatalf("PlaceOnBoard() error = %v", err)
	}

	// 270 swaps colors: (3,3) gets YELLOW, (3,4) gets RED.
	if got, _ := next.Cell(3, 3); got != board.PillYellow {
		t.Errorf("Cell(3, 3) = %v, expected PILL_YELLOW", got)
	}
	if got, _ := next.Cell(3, 4); got != board.PillRed {
		t.Errorf("Cell(3, 4) = %v, expected PILL_RED", got)
	}
	if !b.IsEmpty(3, 3) {
		t.Error("PlaceOnBoard should not modify its input board")
	}
}

func TestPlaceOnBoardOverwrites(t *testing.T) {
	b := board.MustNew(4, 4)
	b, _ = b.SetCell(0, 0, board.VirusBlue)

	next, err := PlaceOnBoard(b, mustPill(t, Red, Red, 0, 0, 0))
	if err != nil {
		t.Fatalf("PlaceOnBoard() error = %v", err)
	}
	if got, _ := next.Cell(0, 0); got != board.PillRed {
		t.Errorf("Cell(0, 0) = %v, expected PILL_RED", got)
	}
}

func TestPlaceOnBoardOutOfBounds(t *testing.T) {
	b := board.MustNew(4, 4)
	_, err := PlaceOnBoard(b, mustPill(t, Red, Blue, 3, 0, 0))
	if !errors.Is(err, board.ErrOutOfBounds) {
		t.Errorf("PlaceOnBoard() error = %v, expected ErrOutOfBounds", err)
	}
}

func TestPlaceAll(t *testing.T) {
	b := board.MustNew(8, 16)
	pills := []Pill{
		mustPill(t, Red, Blue, 0, 15, 0),
		mustPill(t, Yellow, Yellow, 5, 10, 90),
	}

	next, err := PlaceAll(b, pills)
	if err != nil {
		t.Fatalf("PlaceAll() error = %v", err)
	}
	filled := next.Count(board.PillRed) + next.Count(board.PillBlue) + next.Count(board.PillYellow)
	if filled != 4 {
		t.Errorf("filled cells = %d, expected 4", filled)
	}

	bad := append(pills, mustPill(t, Red, Red, 7, 0, 0))
	out, err := PlaceAll(b, bad)
	if err == nil {
		t.Fatal("PlaceAll() with off-board pill should fail")
	}
	if !out.Equal(b) {
		t.Error("failed PlaceAll should return the original board")
	}
}

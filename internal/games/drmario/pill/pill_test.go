package pill

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
)

func mustPill(t *testing.T, c1, c2 Color, x, y int, rot Rotation) Pill {
	t.Helper()
	p, err := New([]Color{c1, c2}, x, y, rot.Orientation(), rot)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestNew(t *testing.T) {
	p, err := New([]Color{Red, Blue}, 3, 4, Horizontal, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Colors != [2]Color{Red, Blue} || p.X != 3 || p.Y != 4 {
		t.Errorf("New() = %+v, unexpected fields", p)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name     string
		colors   []Color
		rotation Rotation
		expected error
	}{
		{"one color", []Color{Red}, 0, ErrColorCount},
		{"three colors", []Color{Red, Blue, Yellow}, 0, ErrColorCount},
		{"no colors", nil, 0, ErrColorCount},
		{"unknown color", []Color{Red, "GREEN"}, 0, ErrInvalidColor},
		{"bad rotation", []Color{Red, Blue}, 45, ErrInvalidRotation},
		{"full turn", []Color{Red, Blue}, 360, ErrInvalidRotation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.colors, 0, 0, Horizontal, tc.rotation)
			if !errors.Is(err, tc.expected) {
				t.Errorf("New() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestCells(t *testing.T) {
	tests := []struct {
		rotation Rotation
		expected [2]Cell
	}{
		{0, [2]Cell{{3, 5, Red}, {4, 5, Blue}}},
		{90, [2]Cell{{3, 5, Red}, {3, 6, Blue}}},
		{180, [2]Cell{{2, 5, Blue}, {3, 5, Red}}},
		{270, [2]Cell{{3, 4, Blue}, {3, 5, Red}}},
	}

	for _, tc := range tests {
		p := mustPill(t, Red, Blue, 3, 5, tc.rotation)
		got := Cells(p)
		if got != tc.expected {
			t.Errorf("Cells(rot %d) = %v, expected %v", tc.rotation, got, tc.expected)
		}
		if got[0].X == got[1].X && got[0].Y == got[1].Y {
			t.Errorf("Cells(rot %d) returned the same position twice", tc.rotation)
		}
	}
}

func TestCellsIgnoreOrientation(t *testing.T) {
	// Orientation disagrees with rotation: geometry still follows rotation.
	p, err := New([]Color{Yellow, Red}, 1, 1, Vertical, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got := Cells(p)
	if got[1].X != 2 || got[1].Y != 1 {
		t.Errorf("second cell = (%d, %d), expected (2, 1)", got[1].X, got[1].Y)
	}
}

func TestRotate(t *testing.T) {
	p := mustPill(t, Red, Blue, 0, 0, 0)

	cw := Rotate(p, Clockwise)
	if cw.Rotation != 90 || cw.Orientation != Vertical {
		t.Errorf("Rotate(cw) = %d %s, expected 90 VERTICAL", cw.Rotation, cw.Orientation)
	}
	ccw := Rotate(p, CounterClockwise)
	if ccw.Rotation != 270 || ccw.Orientation != Vertical {
		t.Errorf("Rotate(ccw) = %d %s, expected 270 VERTICAL", ccw.Rotation, ccw.Orientation)
	}
	if p.Rotation != 0 {
		t.Error("Rotate should not modify its input")
	}
}

func TestRotateFullTurn(t *testing.T) {
	for _, start := range Rotations {
		for _, dir := range []Direction{Clockwise, CounterClockwise} {
			p := mustPill(t, Yellow, Blue, 2, 2, start)
			r := p
			for i := 0; i < 4; i++ {
				r = Rotate(r, dir)
			}
			if r != p {
				t.Errorf("four rotations from %d = %+v, expected %+v", start, r, p)
			}
		}
	}
}

func TestCellState(t *testing.T) {
	tests := []struct {
		color    Color
		expected board.CellState
	}{
		{Red, board.PillRed},
		{Blue, board.PillBlue},
		{Yellow, board.PillYellow},
	}

	for _, tc := range tests {
		got, err := CellState(tc.color)
		if err != nil || got != tc.expected {
			t.Errorf("CellState(%s) = %v, %v; expected %v", tc.color, got, err, tc.expected)
		}
	}

	if _, err := CellState("PURPLE"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("CellState(PURPLE) error = %v, expected ErrInvalidColor", err)
	}
}

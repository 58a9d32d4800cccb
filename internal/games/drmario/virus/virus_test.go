package virus

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

func TestGenerateKnownSequence(t *testing.T) {
	got, err := Generate(Params{Width: 8, Height: 16, Count: 5, Seed: 456, MinY: 0})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	expected := []Placement{
		{3, 14, pill.Red},
		{6, 4, pill.Yellow},
		{5, 15, pill.Red},
		{2, 5, pill.Yellow},
		{2, 11, pill.Yellow},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Generate(seed 456) = %v, expected %v", got, expected)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := Params{Width: 8, Height: 16, Count: 5, Seed: 456, MinY: 0}

	first, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same params produced different placements:\n%v\n%v", first, second)
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	a, _ := Generate(Params{Width: 8, Height: 16, Count: 5, Seed: 789})
	b, _ := Generate(Params{Width: 8, Height: 16, Count: 5, Seed: 999})
	if reflect.DeepEqual(a, b) {
		t.Error("different seeds should produce different placements")
	}
}

func TestGenerateRespectsMinY(t *testing.T) {
	got, err := Generate(Params{Width: 8, Height: 16, Count: 20, Seed: 12345, MinY: 9})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("len = %d, expected 20", len(got))
	}

	seen := make(map[[2]int]bool)
	for _, p := range got {
		if p.Y < 9 || p.Y >= 16 || p.X < 0 || p.X >= 8 {
			t.Errorf("placement %v outside rows [9, 16)", p)
		}
		if !p.Color.Valid() {
			t.Errorf("placement %v has invalid color", p)
		}
		key := [2]int{p.X, p.Y}
		if seen[key] {
			t.Errorf("duplicate position %v", key)
		}
		seen[key] = true
	}

	if got[0] != (Placement{3, 9, pill.Blue}) {
		t.Errorf("first placement = %v, expected {3 9 BLUE}", got[0])
	}
}

func TestGenerateClampsMinY(t *testing.T) {
	// minY beyond the board clamps to the last row.
	got, err := Generate(Params{Width: 8, Height: 16, Count: 8, Seed: 1, MinY: 99})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, p := range got {
		if p.Y != 15 {
			t.Errorf("placement %v should be on row 15", p)
		}
	}

	// Negative minY clamps to 0.
	if _, err := Generate(Params{Width: 8, Height: 16, Count: 5, Seed: 1, MinY: -4}); err != nil {
		t.Errorf("Generate(minY -4) error = %v", err)
	}
}

func TestGenerateCapacity(t *testing.T) {
	_, err := Generate(Params{Width: 8, Height: 16, Count: 9, Seed: 1, MinY: 15})
	if !errors.Is(err, ErrCapacity) {
		t.Errorf("Generate(9 on one row) error = %v, expected ErrCapacity", err)
	}

	got, err := Generate(Params{Width: 2, Height: 1, Count: 2, Seed: 1})
	if err != nil {
		t.Fatalf("Generate(full board) error = %v", err)
	}
	expected := []Placement{{0, 0, pill.Blue}, {1, 0, pill.Red}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Generate(full board) = %v, expected %v", got, expected)
	}
}

func TestGenerateEdgeCases(t *testing.T) {
	got, err := Generate(Params{Width: 8, Height: 16, Count: 0, Seed: 1})
	if err != nil || len(got) != 0 {
		t.Errorf("Generate(count 0) = %v, %v; expected empty", got, err)
	}

	if _, err := Generate(Params{Width: 0, Height: 16, Count: 1}); !errors.Is(err, board.ErrInvalidDimensions) {
		t.Errorf("Generate(width 0) error = %v, expected ErrInvalidDimensions", err)
	}
}

func TestMinYFromSeed(t *testing.T) {
	tests := []struct {
		seed     int64
		expected int
	}{
		{0, 0},
		{12345, 9}, // 0x3039
		{255, 15},  // 0xff
		{256, 0},   // 0x100
		{-12345, 9},
		{10, 10},
	}

	for _, tc := range tests {
		if got := MinYFromSeed(tc.seed); got != tc.expected {
			t.Errorf("MinYFromSeed(%d) = %d, expected %d", tc.seed, got, tc.expected)
		}
	}
}

func TestLCG(t *testing.T) {
	g := NewLCG(0)
	r, g := g.Next()
	if want := 49297.0 / 233280.0; r != want {
		t.Errorf("first draw = %v, expected %v", r, want)
	}

	// Value semantics: an earlier generator replays the same draw.
	g2 := g
	a, _ := g.Next()
	b, _ := g2.Next()
	if a != b {
		t.Errorf("copied generators diverged: %v != %v", a, b)
	}
}

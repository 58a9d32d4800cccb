package drmario

import (
	"fmt"

	"github.com/vovakirdan/tui-drmario/internal/config"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/falling"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

const (
	scrambleRows     = 3   // scrambled pills start in the top rows
	scrambleAttempts = 100 // tries per pill before giving up on it
)

// spawnInitial creates the configured opening pills. A pill that is
// malformed or does not fit the board (viruses plus pills already
// accepted) is skipped.
func (g *Game) spawnInitial() []falling.Pill {
	out := []falling.Pill{}
	occupied := g.viruses
	for i, s := range g.cfg.Pills.Spawn {
		p, err := spawnPill(s)
		if err != nil {
			g.status = fmt.Sprintf("Spawn %d skipped: %v", i, err)
			continue
		}
		if !pill.CanPlace(occupied, p) {
			continue
		}
		fp, ok := g.newFalling(p)
		if !ok {
			continue
		}
		occupied, _ = pill.PlaceOnBoard(occupied, p)
		out = append(out, fp)
	}
	return out
}

func spawnPill(s config.PillSpawn) (pill.Pill, error) {
	colors := make([]pill.Color, len(s.Colors))
	for i, c := range s.Colors {
		colors[i] = pill.Color(c)
	}
	rotation := pill.Rotation(s.Rotation)
	orientation := pill.Orientation(s.Orientation)
	if orientation == "" {
		orientation = rotation.Orientation()
	}
	return pill.New(colors, s.X, s.Y, orientation, rotation)
}

func (g *Game) newFalling(p pill.Pill) (falling.Pill, bool) {
	fp, err := falling.New(p, 0, g.fallSpeed, falling.WithLockDelay(g.cfg.Pills.LockDelayFrames))
	if err != nil {
		g.status = fmt.Sprintf("Spawn failed: %v", err)
		return falling.Pill{}, false
	}
	return fp, true
}

// Scramble replaces the falling pills with scramble_count random pills
// near the top of the board and clears the locked pills. Draws come from
// the session RNG, so a seed reproduces the scramble.
func (g *Game) Scramble() {
	g.locked = []pill.Pill{}
	g.falling = g.randomPills(g.cfg.Pills.ScrambleCount)
	g.status = fmt.Sprintf("Scrambled %d pills", len(g.falling))
}

func (g *Game) randomPills(n int) []falling.Pill {
	out := []falling.Pill{}
	occupied := g.viruses
	width := g.viruses.Width()
	if width <= 0 {
		return out
	}

	for range n {
		for range scrambleAttempts {
			p, ok := g.randomPill(width, occupied)
			if !ok {
				continue
			}
			fp, ok := g.newFalling(p)
			if !ok {
				return out
			}
			occupied, _ = pill.PlaceOnBoard(occupied, p)
			out = append(out, fp)
			break
		}
	}
	return out
}

func (g *Game) randomPill(width int, occupied board.Board) (pill.Pill, bool) {
	colors := []pill.Color{
		pill.Colors[g.rng.Intn(len(pill.Colors))],
		pill.Colors[g.rng.Intn(len(pill.Colors))],
	}
	rotation := pill.Rotations[g.rng.Intn(len(pill.Rotations))]
	x := g.rng.Intn(width)
	y := g.rng.Intn(scrambleRows)

	p, err := pill.New(colors, x, y, rotation.Orientation(), rotation)
	if err != nil || !pill.CanPlace(occupied, p) {
		return pill.Pill{}, false
	}
	return p, true
}

package falling

import (
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

// Frame is the outcome of advancing the falling set by one frame.
type Frame struct {
	// Falling is the new falling set in processing order.
	Falling []Pill
	// Locked holds the pills that locked this frame, in lock order.
	Locked []pill.Pill
}

// Advance moves every falling pill forward by one frame.
//
// The reference board is viruses plus locked pills. Pills that have landed
// and waited out their lock delay lock first, each checked against the
// board as updated by earlier locks this frame, so processing order breaks
// ties. The remaining pills then land, wait or fall against the reference
// board plus every other falling pill at its position before this frame.
// A blocked move counts as a landing.
func Advance(viruses board.Board, locked []pill.Pill, falling []Pill, currentFrame int) (Frame, error) {
	ref, err := pill.PlaceAll(viruses, locked)
	if err != nil {
		return Frame{}, err
	}

	var newlyLocked []pill.Pill
	remaining := make([]Pill, 0, len(falling))
	for _, fp := range falling {
		if CheckLanding(fp, ref) && ShouldLock(fp, currentFrame) && pill.CanPlace(ref, fp.Pill) {
			ref, err = pill.PlaceOnBoard(ref, fp.Pill)
			if err != nil {
				return Frame{}, err
			}
			newlyLocked = append(newlyLocked, fp.Pill)
			continue
		}
		remaining = append(remaining, fp)
	}

	next := make([]Pill, len(remaining))
	for i, fp := range remaining {
		others, err := withOthers(ref, remaining, i)
		if err != nil {
			return Frame{}, err
		}
		next[i] = step(fp, others, remaining, i, currentFrame)
	}

	return Frame{Falling: next, Locked: newlyLocked}, nil
}

// withOthers stamps every falling pill except skip onto b.
func withOthers(b board.Board, falling []Pill, skip int) (board.Board, error) {
	var err error
	for j, other := range falling {
		if j == skip {
			continue
		}
		b, err = pill.PlaceOnBoard(b, other.Pill)
		if err != nil {
			return board.Board{}, err
		}
	}
	return b, nil
}

func step(fp Pill, others board.Board, falling []Pill, self, currentFrame int) Pill {
	if CheckLanding(fp, others) {
		return land(fp, currentFrame)
	}

	moved := UpdatePosition(fp, 1)
	if moved.Y == fp.Y {
		return moved
	}

	for j, other := range falling {
		if j != self && pill.Overlap(moved.Pill, other.Pill) {
			return land(fp, currentFrame)
		}
	}
	if !pill.CanPlace(others, moved.Pill) {
		return land(fp, currentFrame)
	}
	return moved
}

// land holds the pill in place for this frame and records the first
// landing frame.
func land(fp Pill, currentFrame int) Pill {
	fp.FrameCount++
	if !fp.Landed {
		fp.Landed = true
		fp.LandedAtFrame = currentFrame
	}
	return fp
}

// Package falling implements the per-pill fall, landing and lock-delay
// state machine and the per-frame advance over a set of falling pills.
package falling

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

// ErrInvalidFallSpeed is returned for a non-positive fall speed.
var ErrInvalidFallSpeed = errors.New("falling: fall speed must be positive")

// Pill is a pill under gravity.
//
// A pill is FALLING while Landed is false, LANDED (pending lock) once
// Landed is set, and leaves the falling set when it locks.
type Pill struct {
	pill.Pill

	// FrameCount is the number of frames since the pill spawned.
	FrameCount int
	// FallSpeed is the number of frames per one-cell fall.
	FallSpeed int

	// LockDelayFrames applies only when HasLockDelay is set; without it
	// a landed pill locks immediately.
	LockDelayFrames int
	HasLockDelay    bool

	// LandedAtFrame is the frame the pill first could not move down.
	LandedAtFrame int
	Landed        bool
}

// Option configures a falling pill.
type Option func(*Pill)

// WithLockDelay sets the lock delay in frames.
func WithLockDelay(frames int) Option {
	return func(p *Pill) {
		p.LockDelayFrames = frames
		p.HasLockDelay = true
	}
}

// WithLandedAt marks the pill as landed at frame.
func WithLandedAt(frame int) Option {
	return func(p *Pill) {
		p.LandedAtFrame = frame
		p.Landed = true
	}
}

// New wraps a pill with fall state.
func New(p pill.Pill, frameCount, fallSpeed int, opts ...Option) (Pill, error) {
	if fallSpeed <= 0 {
		return Pill{}, fmt.Errorf("%w: got %d", ErrInvalidFallSpeed, fallSpeed)
	}
	fp := Pill{Pill: p, FrameCount: frameCount, FallSpeed: fallSpeed}
	for _, opt := range opts {
		opt(&fp)
	}
	return fp, nil
}

// Options returns the options that reproduce the pill's optional fields.
func (p Pill) Options() []Option {
	var opts []Option
	if p.HasLockDelay {
		opts = append(opts, WithLockDelay(p.LockDelayFrames))
	}
	if p.Landed {
		opts = append(opts, WithLandedAt(p.LandedAtFrame))
	}
	return opts
}

// WithFallSpeed returns a copy with a new fall speed, keeping frame count,
// lock delay and landing state.
func (p Pill) WithFallSpeed(fallSpeed int) (Pill, error) {
	return New(p.Pill, p.FrameCount, fallSpeed, p.Options()...)
}

// CheckLanding reports whether the pill cannot move one cell down on b.
func CheckLanding(p Pill, b board.Board) bool {
	return !pill.CanPlace(b, p.Pill.Moved(0, 1))
}

// ShouldFall reports whether the frame count sits on a fall boundary.
func ShouldFall(p Pill) bool {
	if p.FallSpeed <= 0 {
		return false
	}
	return p.FrameCount > 0 && p.FrameCount%p.FallSpeed == 0
}

// UpdatePosition advances the frame count by deltaFrames and moves the
// pill down one cell if a fall boundary (a multiple of FallSpeed) lies in
// [FrameCount, FrameCount+deltaFrames). Cycles are counted over the frames
// already elapsed, so a pill sitting on a boundary falls on its next frame.
// It moves at most one cell per call regardless of how many boundaries
// were crossed.
func UpdatePosition(p Pill, deltaFrames int) Pill {
	next := p
	next.FrameCount = p.FrameCount + deltaFrames
	if p.FallSpeed <= 0 || deltaFrames <= 0 {
		return next
	}
	if cycle(next.FrameCount, p.FallSpeed) > cycle(p.FrameCount, p.FallSpeed) {
		next.Y++
	}
	return next
}

// ShouldLock reports whether a landed pill has waited out its lock delay.
// The boundary is inclusive.
func ShouldLock(p Pill, currentFrame int) bool {
	if !p.Landed {
		return false
	}
	if !p.HasLockDelay {
		return true
	}
	return currentFrame-p.LandedAtFrame >= p.LockDelayFrames
}

// cycle is the index of the fall cycle holding the last elapsed frame.
func cycle(frameCount, fallSpeed int) int {
	return floorDiv(frameCount-1, fallSpeed)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

package drmario

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-drmario/internal/config"
	"github.com/vovakirdan/tui-drmario/internal/core"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/falling"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/history"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

// Capture records the live state in history and resets the interval
// reference to the current frame.
func (g *Game) Capture() history.Snapshot {
	s := history.NewSnapshot(g.Snapshot(), g.frame)
	g.history = g.history.Add(s)
	g.lastCapture = g.frame
	return s
}

// ClearHistory drops every snapshot. The next frame becomes the new
// interval reference.
func (g *Game) ClearHistory() {
	g.history = g.history.Clear()
	g.lastCapture = -1
	g.status = "History cleared"
}

// Restore applies a snapshot to the live session. The frame counter keeps
// running; the virus board is rebuilt from the snapshot's seed and minY.
// A snapshot that fails validation or does not fit the board leaves the
// session untouched.
func (g *Game) Restore(s history.Snapshot) error {
	if err := g.fits(s); err != nil {
		g.status = fmt.Sprintf("Restore failed: %v", err)
		return err
	}

	err := history.Restore(&s, history.Setters{
		FallingPills: func(p []falling.Pill) { g.falling = p },
		LockedPills:  func(p []pill.Pill) { g.locked = p },
		Seed:         func(seed int64) { g.seed = seed },
		MinY:         func(minY int) { g.minY = minY },
		FallSpeed:    func(fs int) { g.fallSpeed = fs },
	})
	if err != nil {
		g.status = fmt.Sprintf("Restore failed: %v", err)
		return err
	}

	g.rng = rand.New(rand.NewSource(g.seed))
	g.rebuildBoard()
	g.status = fmt.Sprintf("Restored snapshot from frame %d", s.Frame)
	return nil
}

// fits rejects snapshots whose pills fall outside the configured board.
func (g *Game) fits(s history.Snapshot) error {
	if err := history.Validate(&s); err != nil {
		return err
	}
	b, err := board.New(g.cfg.Board.Width, g.cfg.Board.Height)
	if err != nil {
		return err
	}
	check := func(p pill.Pill) error {
		for _, c := range pill.Cells(p) {
			if !b.InBounds(c.X, c.Y) {
				return fmt.Errorf("%w: pill %s outside %dx%d board", history.ErrInvalidSnapshot, p, b.Width(), b.Height())
			}
		}
		return nil
	}
	for _, p := range s.Locked {
		if err := check(p); err != nil {
			return err
		}
	}
	for _, fp := range s.Falling {
		if err := check(fp.Pill); err != nil {
			return err
		}
	}
	return nil
}

// RestoreLatest applies the most recent snapshot.
func (g *Game) RestoreLatest() error {
	s, ok := g.history.Latest()
	if !ok {
		g.status = "No snapshot to restore"
		return ErrNoSnapshot
	}
	return g.Restore(s)
}

// Rewind returns to the newest snapshot at or before frame-frames, moves
// the frame counter to that snapshot and drops every later snapshot.
func (g *Game) Rewind(frames int) error {
	target := max(g.frame-frames, 0)
	s, ok := g.history.AtFrame(target)
	if !ok {
		g.status = fmt.Sprintf("No snapshot at or before frame %d", target)
		return ErrNoSnapshot
	}
	if err := g.Restore(s); err != nil {
		return err
	}
	g.frame = s.Frame
	g.history = g.history.Until(s.Frame)
	g.lastCapture = s.Frame
	g.status = fmt.Sprintf("Rewound to frame %d", s.Frame)
	return nil
}

// SetFallSpeed changes the session fall speed and rewrites it on every
// falling pill, keeping their frame counts and landing state.
func (g *Game) SetFallSpeed(fallSpeed int) error {
	if fallSpeed <= 0 {
		err := fmt.Errorf("%w: got %d", falling.ErrInvalidFallSpeed, fallSpeed)
		g.status = fmt.Sprintf("Fall speed unchanged: %v", err)
		return err
	}

	next := make([]falling.Pill, len(g.falling))
	for i, fp := range g.falling {
		updated, err := fp.WithFallSpeed(fallSpeed)
		if err != nil {
			return err
		}
		next[i] = updated
	}

	g.falling = next
	g.fallSpeed = fallSpeed
	g.status = fmt.Sprintf("Fall speed %d", fallSpeed)
	return nil
}

// ApplyConfig swaps in a reloaded config. A changed fall speed is applied
// to the falling pills at once; board size, virus count and the spawn list
// take effect on the next Reset.
func (g *Game) ApplyConfig(cfg config.DrMarioConfig) error {
	if err := cfg.Validate(); err != nil {
		g.status = fmt.Sprintf("Config rejected: %v", err)
		return err
	}

	speedChanged := cfg.Pills.FallSpeed != g.cfg.Pills.FallSpeed
	g.cfg = cfg
	if cfg.History.MaxDepth != g.history.MaxDepth() {
		g.history = resized(g.history, cfg.History.MaxDepth)
	}
	if speedChanged {
		if err := g.SetFallSpeed(cfg.Pills.FallSpeed); err != nil {
			return err
		}
	}
	g.status = "Config reloaded"
	return nil
}

// resized copies h into a history with a new depth, keeping the newest
// snapshots.
func resized(h history.History, depth int) history.History {
	next := history.New(depth)
	for _, s := range h.Snapshots() {
		next = next.Add(s)
	}
	return next
}

// SnapshotBoard composes the board a snapshot describes: viruses rebuilt
// from its seed and minY under cfg, plus its locked and falling pills.
func SnapshotBoard(cfg config.DrMarioConfig, s history.Snapshot) (board.Board, error) {
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{Seed: s.Seed})
	if err := g.Restore(s); err != nil {
		return board.Board{}, err
	}
	return g.Board(), nil
}

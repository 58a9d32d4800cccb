// Package history captures game state snapshots, keeps a bounded
// frame-ordered history of them and converts them to and from JSON.
package history

import (
	"time"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/falling"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

// GameState is the aggregate simulation state.
type GameState struct {
	Falling   []falling.Pill
	Locked    []pill.Pill
	Seed      int64
	MinY      int
	FallSpeed int
	Frame     int
}

// Clone returns a copy that shares no slices with s.
func (s GameState) Clone() GameState {
	s.Falling = cloneSlice(s.Falling)
	s.Locked = cloneSlice(s.Locked)
	return s
}

// Snapshot is an independent copy of a GameState taken at Timestamp
// (milliseconds since the Unix epoch).
type Snapshot struct {
	GameState
	Timestamp int64
}

// now is replaced in tests.
var now = time.Now

// NewSnapshot copies state and stamps it with frame and the current time.
// The recorded frame comes from the argument, not from state.Frame.
func NewSnapshot(state GameState, frame int) Snapshot {
	gs := state.Clone()
	gs.Frame = frame
	return Snapshot{GameState: gs, Timestamp: now().UnixMilli()}
}

// cloneSlice never returns nil, so snapshots always carry both lists.
func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/falling"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

// ErrInvalidSnapshot is returned for malformed or incomplete snapshots.
var ErrInvalidSnapshot = errors.New("history: invalid snapshot")

type pillJSON struct {
	Colors      [2]pill.Color    `json:"colors"`
	X           int              `json:"x"`
	Y           int              `json:"y"`
	Orientation pill.Orientation `json:"orientation"`
	Rotation    pill.Rotation    `json:"rotation"`
}

type fallingJSON struct {
	pillJSON
	FrameCount      int  `json:"frameCount"`
	FallSpeed       int  `json:"fallSpeed"`
	LockDelayFrames *int `json:"lockDelayFrames,omitempty"`
	LandedAtFrame   *int `json:"landedAtFrame,omitempty"`
}

type snapshotJSON struct {
	FallingPills []fallingJSON `json:"fallingPills"`
	LockedPills  []pillJSON    `json:"lockedPills"`
	Seed         int64         `json:"seed"`
	MinY         int           `json:"minY"`
	FallSpeed    int           `json:"fallSpeed"`
	Frame        int           `json:"frame"`
	Timestamp    int64         `json:"timestamp"`
}

func newPillJSON(p pill.Pill) pillJSON {
	return pillJSON{Colors: p.Colors, X: p.X, Y: p.Y, Orientation: p.Orientation, Rotation: p.Rotation}
}

func toPillJSON(pills []pill.Pill) []pillJSON {
	out := make([]pillJSON, len(pills))
	for i, p := range pills {
		out[i] = newPillJSON(p)
	}
	return out
}

func toFallingJSON(pills []falling.Pill) []fallingJSON {
	out := make([]fallingJSON, len(pills))
	for i, fp := range pills {
		out[i] = fallingJSON{
			pillJSON:   newPillJSON(fp.Pill),
			FrameCount: fp.FrameCount,
			FallSpeed:  fp.FallSpeed,
		}
		if fp.HasLockDelay {
			out[i].LockDelayFrames = &fp.LockDelayFrames
		}
		if fp.Landed {
			out[i].LandedAtFrame = &fp.LandedAtFrame
		}
	}
	return out
}

// Serialize renders the snapshot as indented JSON.
func Serialize(s Snapshot) (string, error) {
	out, err := json.MarshalIndent(snapshotJSON{
		FallingPills: toFallingJSON(s.Falling),
		LockedPills:  toPillJSON(s.Locked),
		Seed:         s.Seed,
		MinY:         s.MinY,
		FallSpeed:    s.FallSpeed,
		Frame:        s.Frame,
		Timestamp:    s.Timestamp,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("history: serialize snapshot: %w", err)
	}
	return string(out), nil
}

// Incoming pill and snapshot fields are pointers so missing values can be
// told apart from zeros.

type pillIn struct {
	Colors      []pill.Color      `json:"colors"`
	X           *int              `json:"x"`
	Y           *int              `json:"y"`
	Orientation *pill.Orientation `json:"orientation"`
	Rotation    *pill.Rotation    `json:"rotation"`
}

type fallingIn struct {
	pillIn
	FrameCount      *int `json:"frameCount"`
	FallSpeed       *int `json:"fallSpeed"`
	LockDelayFrames *int `json:"lockDelayFrames"`
	LandedAtFrame   *int `json:"landedAtFrame"`
}

type snapshotIn struct {
	FallingPills *[]fallingIn `json:"fallingPills"`
	LockedPills  *[]pillIn    `json:"lockedPills"`
	Seed         *int64       `json:"seed"`
	MinY         *int         `json:"minY"`
	FallSpeed    *int         `json:"fallSpeed"`
	Frame        *int         `json:"frame"`
	Timestamp    *int64       `json:"timestamp"`
}

func (in pillIn) build() (pill.Pill, error) {
	if in.X == nil || in.Y == nil {
		return pill.Pill{}, errors.New("pill position missing")
	}
	var rot pill.Rotation
	if in.Rotation != nil {
		rot = *in.Rotation
	}
	orientation := rot.Orientation()
	if in.Orientation != nil {
		orientation = *in.Orientation
	}
	return pill.New(in.Colors, *in.X, *in.Y, orientation, rot)
}

// Deserialize parses a snapshot produced by Serialize. Any malformed
// field or pill invalidates the whole snapshot.
func Deserialize(data string) (Snapshot, error) {
	var in snapshotIn
	if err := json.Unmarshal([]byte(data), &in); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	switch {
	case in.Frame == nil:
		return Snapshot{}, fmt.Errorf("%w: missing frame", ErrInvalidSnapshot)
	case in.Timestamp == nil:
		return Snapshot{}, fmt.Errorf("%w: missing timestamp", ErrInvalidSnapshot)
	case in.Seed == nil:
		return Snapshot{}, fmt.Errorf("%w: missing seed", ErrInvalidSnapshot)
	case in.MinY == nil:
		return Snapshot{}, fmt.Errorf("%w: missing minY", ErrInvalidSnapshot)
	case in.FallSpeed == nil:
		return Snapshot{}, fmt.Errorf("%w: missing fallSpeed", ErrInvalidSnapshot)
	case in.FallingPills == nil || *in.FallingPills == nil:
		return Snapshot{}, fmt.Errorf("%w: fallingPills must be an array", ErrInvalidSnapshot)
	case in.LockedPills == nil || *in.LockedPills == nil:
		return Snapshot{}, fmt.Errorf("%w: lockedPills must be an array", ErrInvalidSnapshot)
	}

	fallingPills := make([]falling.Pill, 0, len(*in.FallingPills))
	for i, fin := range *in.FallingPills {
		p, err := fin.build()
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: falling pill %d: %w", ErrInvalidSnapshot, i, err)
		}

		frameCount := 0
		if fin.FrameCount != nil {
			frameCount = *fin.FrameCount
		}
		fallSpeed := *in.FallSpeed
		if fin.FallSpeed != nil {
			fallSpeed = *fin.FallSpeed
		}
		var opts []falling.Option
		if fin.LockDelayFrames != nil {
			opts = append(opts, falling.WithLockDelay(*fin.LockDelayFrames))
		}
		if fin.LandedAtFrame != nil {
			opts = append(opts, falling.WithLandedAt(*fin.LandedAtFrame))
		}

		fp, err := falling.New(p, frameCount, fallSpeed, opts...)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: falling pill %d: %w", ErrInvalidSnapshot, i, err)
		}
		fallingPills = append(fallingPills, fp)
	}

	lockedPills := make([]pill.Pill, 0, len(*in.LockedPills))
	for i, lin := range *in.LockedPills {
		p, err := lin.build()
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: locked pill %d: %w", ErrInvalidSnapshot, i, err)
		}
		lockedPills = append(lockedPills, p)
	}

	return Snapshot{
		GameState: GameState{
			Falling:   fallingPills,
			Locked:    lockedPills,
			Seed:      *in.Seed,
			MinY:      *in.MinY,
			FallSpeed: *in.FallSpeed,
			Frame:     *in.Frame,
		},
		Timestamp: *in.Timestamp,
	}, nil
}

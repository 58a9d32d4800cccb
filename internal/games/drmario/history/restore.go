package history

import (
	"fmt"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/falling"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

// Setters receive the restored values. Nil setters are skipped.
type Setters struct {
	FallingPills func([]falling.Pill)
	LockedPills  func([]pill.Pill)
	Seed         func(int64)
	MinY         func(int)
	FallSpeed    func(int)
}

// Validate reports whether the snapshot has the shape Restore requires.
func Validate(s *Snapshot) error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot)
	case s.Falling == nil:
		return fmt.Errorf("%w: missing falling pills", ErrInvalidSnapshot)
	case s.Locked == nil:
		return fmt.Errorf("%w: missing locked pills", ErrInvalidSnapshot)
	case s.FallSpeed <= 0:
		return fmt.Errorf("%w: fall speed %d", ErrInvalidSnapshot, s.FallSpeed)
	}
	return nil
}

// Restore hands copies of the snapshot's values to the setters. An
// invalid snapshot calls no setter at all.
func Restore(s *Snapshot, set Setters) error {
	if err := Validate(s); err != nil {
		return err
	}

	if set.FallingPills != nil {
		set.FallingPills(cloneSlice(s.Falling))
	}
	if set.LockedPills != nil {
		set.LockedPills(cloneSlice(s.Locked))
	}
	if set.Seed != nil {
		set.Seed(s.Seed)
	}
	if set.MinY != nil {
		set.MinY(s.MinY)
	}
	if set.FallSpeed != nil {
		set.FallSpeed(s.FallSpeed)
	}
	return nil
}

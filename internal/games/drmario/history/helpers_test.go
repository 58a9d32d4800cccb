package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/falling"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/history"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

var fixedTime = time.Date(2024, 3, 9, 12, 30, 45, 123_000_000, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	t.Cleanup(history.SetNow(func() time.Time { return fixedTime }))
}

func mkPill(t *testing.T, c1, c2 pill.Color, x, y int, rot pill.Rotation) pill.Pill {
	t.Helper()
	p, err := pill.New([]pill.Color{c1, c2}, x, y, rot.Orientation(), rot)
	require.NoError(t, err)
	return p
}

func mkFalling(t *testing.T, p pill.Pill, frameCount, fallSpeed int, opts ...falling.Option) falling.Pill {
	t.Helper()
	fp, err := falling.New(p, frameCount, fallSpeed, opts...)
	require.NoError(t, err)
	return fp
}

func sampleState(t *testing.T) history.GameState {
	t.Helper()
	return history.GameState{
		Falling: []falling.Pill{
			mkFalling(t, mkPill(t, pill.Red, pill.Blue, 1, 0, 0), 0, 30, falling.WithLockDelay(60)),
			mkFalling(t, mkPill(t, pill.Blue, pill.Yellow, 2, 5, 180), 12, 30, falling.WithLockDelay(60), falling.WithLandedAt(40)),
		},
		Locked: []pill.Pill{
			mkPill(t, pill.Yellow, pill.Red, 4, 15, 0),
		},
		Seed:      12345,
		MinY:      9,
		FallSpeed: 30,
		Frame:     77,
	}
}

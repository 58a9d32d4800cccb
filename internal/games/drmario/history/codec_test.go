package history_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/history"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

func TestSerializeRoundTrip(t *testing.T) {
	freezeClock(t)
	snap := history.NewSnapshot(sampleState(t), 77)

	out, err := history.Serialize(snap)
	require.NoError(t, err)

	back, err := history.Deserialize(out)
	require.NoError(t, err)
	assert.Equal(t, snap, back)
}

func TestSerializeRoundTripEmpty(t *testing.T) {
	snap := history.NewSnapshot(history.GameState{Seed: -4, FallSpeed: 1}, 0)

	out, err := history.Serialize(snap)
	require.NoError(t, err)
	back, err := history.Deserialize(out)
	require.NoError(t, err)
	assert.Equal(t, snap, back)
}

func TestSerializeFormat(t *testing.T) {
	freezeClock(t)
	state := history.GameState{
		Falling:   nil,
		Locked:    []pill.Pill{mkPill(t, pill.Red, pill.Blue, 3, 15, 0)},
		Seed:      7,
		MinY:      7,
		FallSpeed: 30,
	}
	out, err := history.Serialize(history.NewSnapshot(state, 5))
	require.NoError(t, err)

	expected := `{
  "fallingPills": [],
  "lockedPills": [
    {
      "colors": [
        "RED",
        "BLUE"
      ],
      "x": 3,
      "y": 15,
      "orientation": "HORIZONTAL",
      "rotation": 0
    }
  ],
  "seed": 7,
  "minY": 7,
  "fallSpeed": 30,
  "frame": 5,
  "timestamp": 1709987445123
}`
	assert.Equal(t, expected, out)
}

func TestSerializeOptionalFields(t *testing.T) {
	out, err := history.Serialize(history.NewSnapshot(sampleState(t), 1))
	require.NoError(t, err)

	// Both falling pills carry a lock delay; only the second has landed.
	assert.Equal(t, 2, strings.Count(out, `"lockDelayFrames": 60`))
	assert.Equal(t, 1, strings.Count(out, `"landedAtFrame": 40`))
}

func TestDeserializeDefaults(t *testing.T) {
	in := `{
		"fallingPills": [{"colors": ["RED", "YELLOW"], "x": 2, "y": 3, "orientation": "VERTICAL", "rotation": 90}],
		"lockedPills": [{"colors": ["BLUE", "BLUE"], "x": 0, "y": 15}],
		"seed": 1, "minY": 1, "fallSpeed": 12, "frame": 3, "timestamp": 0
	}`

	snap, err := history.Deserialize(in)
	require.NoError(t, err)
	require.Len(t, snap.Falling, 1)
	require.Len(t, snap.Locked, 1)

	fp := snap.Falling[0]
	assert.Equal(t, 0, fp.FrameCount, "frameCount defaults to 0")
	assert.Equal(t, 12, fp.FallSpeed, "fallSpeed defaults to the snapshot's")
	assert.False(t, fp.HasLockDelay)
	assert.False(t, fp.Landed)
	assert.Equal(t, pill.Rotation(90), fp.Rotation)

	lp := snap.Locked[0]
	assert.Equal(t, pill.Rotation(0), lp.Rotation, "rotation defaults to 0")
	assert.Equal(t, pill.Horizontal, lp.Orientation)
}

func TestDeserializeInvalid(t *testing.T) {
	valid := `"fallingPills": [], "lockedPills": [], "seed": 1, "minY": 0, "fallSpeed": 30`

	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{not json`},
		{"null", `null`},
		{"array", `[]`},
		{"missing frame", `{` + valid + `, "timestamp": 0}`},
		{"missing timestamp", `{` + valid + `, "frame": 0}`},
		{"missing seed", `{"fallingPills": [], "lockedPills": [], "minY": 0, "fallSpeed": 30, "frame": 0, "timestamp": 0}`},
		{"missing minY", `{"fallingPills": [], "lockedPills": [], "seed": 1, "fallSpeed": 30, "frame": 0, "timestamp": 0}`},
		{"missing fallSpeed", `{"fallingPills": [], "lockedPills": [], "seed": 1, "minY": 0, "frame": 0, "timestamp": 0}`},
		{"string frame", `{` + valid + `, "frame": "0", "timestamp": 0}`},
		{"fallingPills not array", `{"fallingPills": {}, "lockedPills": [], "seed": 1, "minY": 0, "fallSpeed": 30, "frame": 0, "timestamp": 0}`},
		{"lockedPills null", `{"fallingPills": [], "lockedPills": null, "seed": 1, "minY": 0, "fallSpeed": 30, "frame": 0, "timestamp": 0}`},
		{"three colors", `{"fallingPills": [], "lockedPills": [{"colors": ["RED", "RED", "RED"], "x": 0, "y": 0}], "seed": 1, "minY": 0, "fallSpeed": 30, "frame": 0, "timestamp": 0}`},
		{"bad color", `{"fallingPills": [{"colors": ["RED", "MAUVE"], "x": 0, "y": 0}], "lockedPills": [], "seed": 1, "minY": 0, "fallSpeed": 30, "frame": 0, "timestamp": 0}`},
		{"bad rotation", `{"fallingPills": [], "lockedPills": [{"colors": ["RED", "RED"], "x": 0, "y": 0, "rotation": 45}], "seed": 1, "minY": 0, "fallSpeed": 30, "frame": 0, "timestamp": 0}`},
		{"missing position", `{"fallingPills": [], "lockedPills": [{"colors": ["RED", "RED"]}], "seed": 1, "minY": 0, "fallSpeed": 30, "frame": 0, "timestamp": 0}`},
		{"zero pill fall speed", `{"fallingPills": [{"colors": ["RED", "RED"], "x": 0, "y": 0, "fallSpeed": 0}], "lockedPills": [], "seed": 1, "minY": 0, "fallSpeed": 30, "frame": 0, "timestamp": 0}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := history.Deserialize(tc.input)
			assert.ErrorIs(t, err, history.ErrInvalidSnapshot)
			assert.Equal(t, history.Snapshot{}, snap, "no partial snapshot on failure")
		})
	}
}

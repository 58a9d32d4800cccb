package history

import (
	"fmt"
	"strings"
	"time"
)

// isoMillis matches the UTC millisecond ISO-8601 form used in reports.
const isoMillis = "2006-01-02T15:04:05.000Z"

// FormatForDisplay renders a human-readable report of the snapshot.
func FormatForDisplay(s Snapshot) string {
	lines := []string{
		fmt.Sprintf("Frame: %d", s.Frame),
		fmt.Sprintf("Timestamp: %s", time.UnixMilli(s.Timestamp).UTC().Format(isoMillis)),
		fmt.Sprintf("Seed: %d", s.Seed),
		fmt.Sprintf("MinY: %d", s.MinY),
		fmt.Sprintf("FallSpeed: %d", s.FallSpeed),
		fmt.Sprintf("Falling Pills: %d", len(s.Falling)),
		fmt.Sprintf("Locked Pills: %d", len(s.Locked)),
	}

	if len(s.Falling) > 0 {
		lines = append(lines, "\nFalling Pills:")
		for i, fp := range s.Falling {
			lines = append(lines, fmt.Sprintf("  %d. Colors: [%s, %s], Position: (%d, %d), Rotation: %d°, FrameCount: %d",
				i+1, fp.Colors[0], fp.Colors[1], fp.X, fp.Y, fp.Rotation, fp.FrameCount))
		}
	}

	if len(s.Locked) > 0 {
		lines = append(lines, "\nLocked Pills:")
		for i, p := range s.Locked {
			lines = append(lines, fmt.Sprintf("  %d. Colors: [%s, %s], Position: (%d, %d), Rotation: %d°",
				i+1, p.Colors[0], p.Colors[1], p.X, p.Y, p.Rotation))
		}
	}

	return strings.Join(lines, "\n")
}

package config

import (
	_ "embed"
)

//go:embed defaults/drmario.yaml
var defaultDrMarioYAML []byte

// DefaultDrMarioConfig returns the default Dr. Mario configuration.
func DefaultDrMarioConfig() DrMarioConfig {
	return DrMarioConfig{
		Board: BoardConfig{
			Width:  8,
			Height: 16,
		},
		Viruses: VirusConfig{
			Count: 20,
		},
		Pills: PillsConfig{
			FallSpeed:       30,
			LockDelayFrames: 60,
			ScrambleCount:   3,
			Spawn: []PillSpawn{
				{Colors: []string{"RED", "BLUE"}, X: 1, Y: 0, Orientation: "HORIZONTAL", Rotation: 0},
				{Colors: []string{"YELLOW", "RED"}, X: 4, Y: 2, Orientation: "VERTICAL", Rotation: 0},
				{Colors: []string{"BLUE", "YELLOW"}, X: 2, Y: 5, Orientation: "HORIZONTAL", Rotation: 180},
			},
		},
		History: HistoryConfig{
			MaxDepth:         1000,
			SnapshotInterval: 30,
			RewindFrames:     60,
		},
		Seed: 12345,
	}
}

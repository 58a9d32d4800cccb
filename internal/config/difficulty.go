package config

import "fmt"

// DifficultyPreset represents a named pacing level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // keep whatever the config file says
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyPreset adjusts pacing and virus load for a preset.
func ApplyPreset(cfg *DrMarioConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Pills.FallSpeed = 45
		cfg.Pills.LockDelayFrames = 90
		cfg.Viruses.Count = 10
	case DifficultyNormal:
		cfg.Pills.FallSpeed = 30
		cfg.Pills.LockDelayFrames = 60
		cfg.Viruses.Count = 20
	case DifficultyHard:
		cfg.Pills.FallSpeed = 12
		cfg.Pills.LockDelayFrames = 20
		cfg.Viruses.Count = 40
	}
}

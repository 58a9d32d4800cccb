// Package config provides YAML-based configuration loading, difficulty
// presets and hot reload for the Dr. Mario engine.
package config

import (
	"errors"
	"fmt"
)

// DrMarioConfig contains all configuration for a Dr. Mario session.
type DrMarioConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Viruses VirusConfig   `yaml:"viruses"`
	Pills   PillsConfig   `yaml:"pills"`
	History HistoryConfig `yaml:"history"`
	Seed    int64         `yaml:"seed"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// VirusConfig defines virus seeding.
type VirusConfig struct {
	Count int `yaml:"count"`
}

// PillsConfig defines falling pill timing and the initial spawn.
type PillsConfig struct {
	FallSpeed       int         `yaml:"fall_speed"`        // Frames per one-cell fall
	LockDelayFrames int         `yaml:"lock_delay_frames"` // Frames between landing and locking
	ScrambleCount   int         `yaml:"scramble_count"`    // Pills spawned by a scramble
	Spawn           []PillSpawn `yaml:"spawn"`
}

// PillSpawn describes one initial falling pill.
type PillSpawn struct {
	Colors      []string `yaml:"colors"`
	X           int      `yaml:"x"`
	Y           int      `yaml:"y"`
	Orientation string   `yaml:"orientation"`
	Rotation    int      `yaml:"rotation"`
}

// HistoryConfig defines snapshot capture.
type HistoryConfig struct {
	MaxDepth         int `yaml:"max_depth"`
	SnapshotInterval int `yaml:"snapshot_interval"` // Frames between automatic captures
	RewindFrames     int `yaml:"rewind_frames"`     // Frames stepped back per rewind
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate rejects configurations the engine cannot run.
func (c DrMarioConfig) Validate() error {
	var errs []error
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board must be positive, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Viruses.Count < 0 {
		errs = append(errs, fmt.Errorf("virus count must not be negative, got %d", c.Viruses.Count))
	}
	if c.Pills.FallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("fall_speed must be positive, got %d", c.Pills.FallSpeed))
	}
	if c.Pills.LockDelayFrames < 0 {
		errs = append(errs, fmt.Errorf("lock_delay_frames must not be negative, got %d", c.Pills.LockDelayFrames))
	}
	if c.History.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("history max_depth must be positive, got %d", c.History.MaxDepth))
	}
	if c.History.SnapshotInterval <= 0 {
		errs = append(errs, fmt.Errorf("snapshot_interval must be positive, got %d", c.History.SnapshotInterval))
	}
	for i, s := range c.Pills.Spawn {
		if len(s.Colors) != 2 {
			errs = append(errs, fmt.Errorf("spawn %d: need exactly two colors, got %d", i, len(s.Colors)))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

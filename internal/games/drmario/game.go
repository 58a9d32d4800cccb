// Package drmario implements the Dr. Mario pill-falling session: a seeded
// virus board, falling and locked pills advanced one frame per tick, and a
// snapshot history that can be captured, rewound and restored.
package drmario

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-drmario/internal/config"
	"github.com/vovakirdan/tui-drmario/internal/core"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/falling"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/history"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/virus"
	"github.com/vovakirdan/tui-drmario/internal/registry"
)

// GameID is the registry identifier and the owner key of stored snapshots.
const GameID = "drmario"

// ErrNoSnapshot is returned when a rewind or restore finds nothing to apply.
var ErrNoSnapshot = errors.New("drmario: no snapshot available")

// Game is one Dr. Mario session.
type Game struct {
	cfg     config.DrMarioConfig
	fixed   bool // cfg was supplied by the caller; Reset does not reload it
	runtime core.RuntimeConfig
	rng     *rand.Rand

	frame    int
	paused   bool
	stepOnce bool

	seed      int64
	minY      int
	fallSpeed int

	viruses    board.Board
	placements []virus.Placement
	falling    []falling.Pill
	locked     []pill.Pill

	history     history.History
	lastCapture int // -1 until the first frame is observed

	status string
}

// Package-level settings read by sessions created through the registry.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the YAML config used by new sessions.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset applied on top of the config.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// LoadConfig resolves the package-level config path and preset.
func LoadConfig() (config.DrMarioConfig, error) {
	cfg, err := config.LoadDrMario(configPath)
	if err != nil {
		return cfg, err
	}
	if difficultyPreset != "" {
		preset, err := config.ParsePreset(difficultyPreset)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// New creates a session that loads its config on Reset.
func New() *Game {
	return &Game{lastCapture: -1}
}

// NewWithConfig creates a session bound to cfg.
func NewWithConfig(cfg config.DrMarioConfig) *Game {
	return &Game{cfg: cfg, fixed: true, lastCapture: -1}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Dr. Mario"
}

// Reset builds a fresh session. A non-zero runtime seed overrides the
// configured one.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.status = ""

	if !g.fixed {
		cfg, err := LoadConfig()
		if err != nil {
			g.status = fmt.Sprintf("Config error: %v", err)
		}
		g.cfg = cfg
	}

	g.seed = g.cfg.Seed
	if rc.Seed != 0 {
		g.seed = rc.Seed
	}
	g.minY = virus.MinYFromSeed(g.seed)
	g.fallSpeed = g.cfg.Pills.FallSpeed
	g.rng = rand.New(rand.NewSource(g.seed))

	g.frame = 0
	g.paused = false
	g.stepOnce = false
	g.locked = []pill.Pill{}
	g.history = history.New(g.cfg.History.MaxDepth)
	g.lastCapture = -1

	g.rebuildBoard()
	g.falling = g.spawnInitial()
}

// rebuildBoard regenerates the virus board from seed and minY, falling
// back to an empty board when placement fails.
func (g *Game) rebuildBoard() {
	b, placements, err := virus.BuildBoard(g.cfg.Board.Width, g.cfg.Board.Height, g.cfg.Viruses.Count, g.seed, g.minY)
	g.viruses = b
	g.placements = placements
	if err != nil {
		g.placements = nil
		g.status = fmt.Sprintf("Virus placement failed: %v", err)
	}
}

// Step applies the input actions and advances one frame unless paused.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	g.handleInput(in)

	if g.paused && !g.stepOnce {
		return core.StepResult{State: g.State()}
	}
	g.stepOnce = false

	locked := g.advance()
	return core.StepResult{State: g.State(), Locked: locked}
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionStep) && g.paused {
		g.stepOnce = true
	}
	if in.Has(core.ActionSpeedUp) {
		//nolint:errcheck // status carries the outcome
		g.SetFallSpeed(g.fallSpeed - 1)
	}
	if in.Has(core.ActionSpeedDown) {
		//nolint:errcheck // status carries the outcome
		g.SetFallSpeed(g.fallSpeed + 1)
	}
	if in.Has(core.ActionScramble) {
		g.Scramble()
	}
	if in.Has(core.ActionSnapshot) {
		g.Capture()
	}
	if in.Has(core.ActionRestore) {
		//nolint:errcheck // status carries the outcome
		g.RestoreLatest()
	}
	if in.Has(core.ActionRewind) {
		//nolint:errcheck // status carries the outcome
		g.Rewind(g.cfg.History.RewindFrames)
	}
	if in.Has(core.ActionClear) {
		g.ClearHistory()
	}
}

// advance runs one frame and returns how many pills locked.
func (g *Game) advance() int {
	g.frame++

	next, err := falling.Advance(g.viruses, g.locked, g.falling, g.frame)
	if err != nil {
		g.paused = true
		g.status = fmt.Sprintf("Simulation halted: %v", err)
		return 0
	}
	g.falling = next.Falling
	g.locked = append(g.locked, next.Locked...)

	g.captureOnInterval()
	return len(next.Locked)
}

// captureOnInterval takes a snapshot every snapshot_interval frames
// counted from the previous capture. The first observed frame only sets
// the reference point.
func (g *Game) captureOnInterval() {
	if g.lastCapture < 0 {
		g.lastCapture = g.frame
		return
	}
	if g.frame-g.lastCapture >= g.cfg.History.SnapshotInterval {
		g.Capture()
	}
}

// State returns the session summary for the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Frame:     g.frame,
		Paused:    g.paused,
		Falling:   len(g.falling),
		Locked:    len(g.locked),
		Snapshots: g.history.Count(),
		Status:    g.status,
	}
}

// Snapshot returns a copy of the live simulation state.
func (g *Game) Snapshot() history.GameState {
	return history.GameState{
		Falling:   g.falling,
		Locked:    g.locked,
		Seed:      g.seed,
		MinY:      g.minY,
		FallSpeed: g.fallSpeed,
		Frame:     g.frame,
	}.Clone()
}

// Checksum returns the checksum of the live state.
func (g *Game) Checksum() string {
	return history.ComputeChecksum(g.Snapshot())
}

// History returns the snapshot history.
func (g *Game) History() history.History {
	return g.history
}

// VirusBoard returns the board holding only viruses.
func (g *Game) VirusBoard() board.Board {
	return g.viruses
}

// Placements returns the virus placements of the current board.
func (g *Game) Placements() []virus.Placement {
	out := make([]virus.Placement, len(g.placements))
	copy(out, g.placements)
	return out
}

// Board returns viruses, locked pills and falling pills composed into a
// single board.
func (g *Game) Board() board.Board {
	b, err := pill.PlaceAll(g.viruses, g.locked)
	if err != nil {
		return g.viruses
	}
	for _, fp := range g.falling {
		if next, err := pill.PlaceOnBoard(b, fp.Pill); err == nil {
			b = next
		}
	}
	return b
}

// Config returns the active configuration.
func (g *Game) Config() config.DrMarioConfig {
	return g.cfg
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// Status returns the last status message.
func (g *Game) Status() string {
	return g.status
}

// Package registry provides a global registry for game session factories.
// Sessions register themselves in init() functions, so the CLI, the SSH
// server and the HTTP inspector can create them by ID without importing
// every implementation.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-drmario/internal/core"
)

// Game is the interface every playable session implements.
// Sessions contain pure simulation logic with no Bubble Tea dependency.
// The platform handles input mapping, frame timing and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "drmario").
	// Used for CLI commands and as the owner key of stored snapshots.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh session.
	// The RuntimeConfig provides screen dimensions and the RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one frame, after applying the
	// actions in the input frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns frame counter, pause flag and status.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new session.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Panics if the ID is already registered or the factory is nil.
func Register(id string, f Factory) {
	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for %q", id))
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new session by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// unregister removes a factory. Tests only.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, id)
	delete(titles, id)
}

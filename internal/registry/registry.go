// Package registry provides a registry for game factories.
// Games register themselves in init() functions on the Default registry,
// allowing the platform to discover and instantiate games without
// hardcoded dependencies. Tests build their own Registry with New.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/liquidsort/internal/core"
)

// Game is the interface every playable mode must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "liquid").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Returns the result of this tick including current game state and events.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Resizer is implemented by games that keep their state across terminal
// resizes instead of being reset.
type Resizer interface {
	Resize(width, height int)
}

// LevelStarter is implemented by games with a level list the player can
// enter at any point. HasLevels is false for modes without one.
type LevelStarter interface {
	HasLevels() bool
	StartAt(level int)
}

// Describer is implemented by games with a one-line summary for menus.
type Describer interface {
	Description() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string // Empty unless the game implements Describer
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

// Registry maps game IDs to factories. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Default is the process-wide registry populated by game init() functions.
var Default = New()

// Register adds a game factory to the registry. Metadata is read once
// from a throwaway instance. Panics on a duplicate or empty ID.
func (r *Registry) Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	probe := f()
	info := GameInfo{ID: id, Title: probe.Title()}
	if d, ok := probe.(Describer); ok {
		info.Description = d.Description()
	}
	r.entries[id] = entry{factory: f, info: info}
}

// List returns information about all registered games, sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Info returns the metadata of one game.
func (r *Registry) Info(id string) (GameInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	_, ok := r.Info(id)
	return ok
}

// Register adds a game factory to the Default registry.
func Register(id string, f Factory) {
	Default.Register(id, f)
}

// List returns the games of the Default registry.
func List() []GameInfo {
	return Default.List()
}

// Create instantiates a game from the Default registry.
func Create(id string) (Game, error) {
	return Default.Create(id)
}

// Exists checks the Default registry for a game ID.
func Exists(id string) bool {
	return Default.Exists(id)
}

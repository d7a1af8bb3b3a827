// Package registry provides a global registry for mini-game factories.
// Games register themselves in init() functions, allowing the session layer
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Game is the interface every mini-game state machine implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The session layer handles input delivery, timing, and rendering.
type Game interface {
	// ID returns a unique identifier matching a config game type (e.g. "assembly").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset rebuilds the whole scene from its configuration and leaves the
	// game Initializing. Retry calls it again with the same scene and a new seed.
	Reset(scene config.SceneConfig, rt core.RuntimeConfig)

	// Step advances the simulation by one fixed tick, consuming every input
	// event that arrived since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current host-visible state.
	State() core.GameState
}

// Resizer is implemented by games that can re-lay themselves out for a new
// screen size without a Reset.
type Resizer interface {
	Resize(width, height int)
}

// TimerOwner is implemented by games that schedule callbacks. StopTimers
// is called when the session is torn down.
type TimerOwner interface {
	StopTimers()
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games.
// Games known to the config builder come first in menu order; anything
// else follows sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	order := make(map[string]int)
	for i, id := range config.GameIDs() {
		order[id] = i
	}

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		oi, iKnown := order[result[i].ID]
		oj, jKnown := order[result[j].ID]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return result[i].ID < result[j].ID
		}
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
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

// Package registry keeps the playable variants. Each variant registers a
// factory in init(), so the platform can list and create them without
// importing game internals.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/munchers/internal/core"
)

// Game is what the terminal platform drives. Implementations hold pure
// logic: the platform owns timing, key mapping and output.
type Game interface {
	// ID is the variant key used by the CLI and the score store.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts over with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies one tick of input and advances the clock by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the game into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// ScoreSink is implemented by games that hand finished runs to the
// platform for saving.
type ScoreSink interface {
	SetScoreSink(save func(name string, score, level int, runID string) error)
}

// Describer is implemented by games with a one-line summary for menus.
type Describer interface {
	Description() string
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a factory. It panics on duplicate IDs.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

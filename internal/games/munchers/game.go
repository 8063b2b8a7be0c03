// Package munchers plugs the Number Munchers engine into the terminal
// platform. Every configured variant is registered as its own game.
package munchers

import (
	"context"
	"math/rand"
	"time"

	"github.com/vovakirdan/munchers/internal/config"
	"github.com/vovakirdan/munchers/internal/core"
	"github.com/vovakirdan/munchers/internal/games/munchers/engine"
	"github.com/vovakirdan/munchers/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names mean normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

func init() {
	Register(config.Defaults())
}

// Register adds every variant of cfg that is not registered yet.
func Register(cfg config.MunchersConfig) {
	for _, id := range cfg.IDs() {
		id := id
		if registry.Exists(id) {
			continue
		}
		v, _ := cfg.Variant(id)
		registry.Register(id, func() registry.Game {
			return New(id, v)
		})
	}
}

// Game drives one engine.Machine at the platform tick rate.
type Game struct {
	id      string
	variant config.VariantConfig

	machine *engine.Machine
	ctx     context.Context
	sink    func(name string, score, level int, runID string) error

	err     error // the variant cannot be played
	saveErr error // the last name entry could not be stored

	tickDur   time.Duration
	tickCount int

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates the game for variant id. Reset must be called before play.
func New(id string, v config.VariantConfig) *Game {
	return &Game{id: id, variant: v, ctx: context.Background()}
}

// ID returns the variant key.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant.Title == "" {
		return g.id
	}
	return g.variant.Title
}

// Description returns the one-line summary from the config.
func (g *Game) Description() string {
	return g.variant.Description
}

// Controls returns the key help shown under the board.
func (g *Game) Controls() string {
	return "Arrows/WASD: move  Enter/Space: munch  Esc: menu  Q: quit"
}

// SetScoreSink sets where finished runs are saved. Without a sink, name
// entry still runs but nothing is stored.
func (g *Game) SetScoreSink(save func(name string, score, level int, runID string) error) {
	g.sink = save
}

// Reset reloads the variant, applies the difficulty preset and puts a fresh
// machine on the title screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickDur = time.Second / time.Duration(max(cfg.TickRate, 1))
	g.tickCount = 0
	g.machine = nil
	g.err = nil
	g.saveErr = nil

	v, err := config.LoadVariant(configPath, g.id)
	if err != nil {
		if configPath != "" {
			g.err = err
			return
		}
		v = g.variant
	}
	g.variant = v

	difficultyPreset.Apply(&v)
	settings, err := v.Settings()
	if err != nil {
		g.err = err
		return
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m, err := engine.NewMachine(settings, rand.New(rand.NewSource(seed)), recordFunc(g.record))
	if err != nil {
		g.err = err
		return
	}
	g.machine = m
	g.checkScreenSize()
}

// Resize updates the layout after the terminal changed size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	minW, minH := g.minSize()
	g.tooSmall = !core.NewRect(0, 0, g.screenW, g.screenH).Fits(minW, minH)
}

// minSize is the smallest screen that fits the HUD, board and footer.
func (g *Game) minSize() (int, int) {
	if g.machine == nil {
		return hudMinWidth, hudHeight + footerHeight
	}
	b := g.machine.Settings().Board
	boardW := b.Cols*cellWidth + 1
	boardH := b.Rows*cellHeight + 1
	return max(boardW, hudMinWidth), hudHeight + boardH + footerHeight
}

// Step maps the tick's actions onto engine inputs, then advances the
// clocks by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tickCount++
	if g.machine == nil {
		return core.StepResult{State: g.State()}
	}
	if g.tooSmall {
		// Esc still leaves a game the window can no longer show.
		if in.Has(core.ActionBack) {
			g.machine.Abandon()
		}
		return core.StepResult{State: g.State()}
	}

	if !in.Empty() {
		g.handle(in)
	}
	g.machine.Advance(g.tickDur)

	return core.StepResult{State: g.State()}
}

func (g *Game) handle(in core.InputFrame) {
	for _, a := range in.Actions {
		input := toInput(a)
		if input == engine.InputNone {
			continue
		}
		before := g.machine.Phase()
		if err := g.machine.Handle(g.ctx, input); err != nil {
			if before == engine.PhaseHighScoreEntry {
				g.saveErr = err
			} else {
				g.err = err
			}
		}
		if before == engine.PhaseMenu && g.machine.Phase() != engine.PhaseMenu {
			g.saveErr = nil
		}
	}
}

func toInput(a core.Action) engine.Input {
	switch a {
	case core.ActionUp:
		return engine.MoveUp
	case core.ActionDown:
		return engine.MoveDown
	case core.ActionLeft:
		return engine.MoveLeft
	case core.ActionRight:
		return engine.MoveRight
	case core.ActionConfirm:
		return engine.Confirm
	case core.ActionBack:
		return engine.Cancel
	default:
		return engine.InputNone
	}
}

// State reports score and phase to the platform. A variant that failed to
// load reports itself as in the menu so Esc leaves it.
func (g *Game) State() core.GameState {
	if g.machine == nil || g.err != nil {
		return core.GameState{InMenu: true}
	}
	s := g.machine.Snapshot()
	return core.GameState{
		Score:    s.Score,
		Level:    s.Level,
		GameOver: s.Phase == engine.PhaseGameOver || s.Phase == engine.PhaseHighScoreEntry,
		InMenu:   s.Phase == engine.PhaseMenu,
	}
}

// Snapshot returns the engine state, or a zero Snapshot before Reset.
func (g *Game) Snapshot() engine.Snapshot {
	if g.machine == nil {
		return engine.Snapshot{}
	}
	return g.machine.Snapshot()
}

// Err returns why the variant cannot be played, if it cannot.
func (g *Game) Err() error {
	return g.err
}

// EndErr reports why the last game ended, or nil while one is running.
func (g *Game) EndErr() error {
	if g.machine == nil {
		return nil
	}
	return g.machine.Err()
}

func (g *Game) record(hs engine.HighScore) error {
	if g.sink == nil {
		return nil
	}
	return g.sink(hs.Name, hs.Score, hs.Level, hs.RunID)
}

type recordFunc func(engine.HighScore) error

func (f recordFunc) RecordHighScore(hs engine.HighScore) error { return f(hs) }

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/munchers/internal/core"
	"github.com/vovakirdan/munchers/internal/registry"
	"github.com/vovakirdan/munchers/internal/storage"
)

// resizer is implemented by games that can relayout without a reset.
type resizer interface {
	Resize(w, h int)
}

// ender is implemented by games that report why a run ended.
type ender interface {
	EndErr() error
}

// Model is the Bubble Tea model for running one variant.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keyMapper  *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	goingBack  bool // Esc on the title screen
}

// NewModel creates a new Bubble Tea model for the given game. When store is
// set and the game hands over finished runs, they are saved under the
// game's ID.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("variant", game.ID())

	if sink, ok := game.(registry.ScoreSink); ok && store != nil {
		sink.SetScoreSink(func(name string, score, level int, runID string) error {
			best, _ := store.HighScore(game.ID())
			id, err := store.SaveScore(storage.ScoreEntry{
				GameID: game.ID(),
				RunID:  runID,
				Name:   name,
				Score:  score,
				Level:  level,
			})
			if err != nil {
				logger.Error("cannot save score", "err", err, "run", runID)
				return err
			}
			rank, _ := store.Rank(game.ID(), score)
			logger.Info("score saved", "id", id, "name", name, "score", score, "level", level, "rank", rank)
			if score > best {
				logger.Info("new high score", "name", name, "score", score, "previous", best)
			}
			return nil
		})
	}

	game.Reset(cfg)
	logger.Debug("game reset", "seed", cfg.Seed, "size", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH))

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the action for the next tick. Esc on the title screen
// leaves the variant instead.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack && m.gameState.InMenu {
		m.goingBack = true
		return m, tea.Quit
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleResize resizes the buffer. Games that cannot relayout are reset,
// but only while on their title screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	switch g := m.game.(type) {
	case resizer:
		g.Resize(msg.Width, msg.Height)
	default:
		if m.gameState.InMenu {
			m.game.Reset(m.config)
		}
	}
	return m, nil
}

// handleTick runs one simulation step and logs phase changes.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case prev.InMenu && !m.gameState.InMenu:
		m.logger.Info("game started")
	case !prev.GameOver && m.gameState.GameOver:
		kv := []any{"score", m.gameState.Score, "level", m.gameState.Level}
		if e, ok := m.game.(ender); ok && e.EndErr() != nil {
			kv = append(kv, "reason", e.EndErr())
		}
		m.logger.Info("game over", kv...)
	case !prev.InMenu && m.gameState.InMenu && !prev.GameOver:
		m.logger.Info("game abandoned", "score", prev.Score, "level", prev.Level)
	case m.gameState.Level > prev.Level && !prev.InMenu:
		m.logger.Debug("level up", "level", m.gameState.Level, "score", m.gameState.Score)
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen to ~/.munchers/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".munchers", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// GoingBack reports whether the player left for the variant picker.
func (m Model) GoingBack() bool {
	return m.goingBack
}

// Run plays game until the player quits or leaves the title screen.
// It returns true when the player wants the variant picker back.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.GoingBack(), nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/munchers/internal/core"
	"github.com/vovakirdan/munchers/internal/platform/tui"
	"github.com/vovakirdan/munchers/internal/registry"
	"github.com/vovakirdan/munchers/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Controls:
  Arrows/WASD  - Move the muncher
  Enter/Space  - Munch, dismiss a message, start
  Esc          - Abandon the game, or leave the title screen
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Two extra lives, longer clock, fewer and slower Toggles
  normal - The variant as configured
  hard   - One life less, shorter clock, more and faster Toggles

Examples:
  munchers play classic
  munchers play timed --difficulty easy
  munchers play toggles --seed 42
  munchers play evens --config ./my-variants.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

// terminalConfig builds the runtime config from the flags and the
// terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. Failure only disables saving.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "err", err, "path", flagDBPath)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'munchers list' to see them", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger.Info("playing", "variant", gameID, "seed", flagSeed, "fps", flagFPS)
	if _, err := tui.Run(game, store, logger, terminalConfig()); err != nil {
		return fmt.Errorf("running %s: %w", gameID, err)
	}
	return nil
}

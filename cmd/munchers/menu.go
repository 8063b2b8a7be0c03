package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/munchers/internal/platform/tui"
	"github.com/vovakirdan/munchers/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the Hall of
Fame. Esc on a variant's title screen returns here.

Examples:
  munchers menu
  munchers menu --difficulty hard
  munchers menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	lastID := ""
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, lastID)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create variant", "variant", menuResult.GameID, "err", err)
			continue
		}
		lastID = menuResult.GameID

		// A fixed --seed replays the same boards; otherwise each visit differs.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		goBack, err := tui.Run(game, store, logger, cfg)
		if err != nil {
			return fmt.Errorf("running %s: %w", menuResult.GameID, err)
		}
		if !goBack {
			return nil
		}
	}
}

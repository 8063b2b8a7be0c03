package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/munchers/internal/registry"
	"github.com/vovakirdan/munchers/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the Hall of Fame",
	Long: `Without a variant, summarise every variant that has been played.
With one, list its best runs.

Examples:
  munchers scores
  munchers scores classic
  munchers scores timed --limit 25
  munchers scores toggles --limit 0
  munchers scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show (0 for all)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return printSummary(out, store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'munchers list' to see them", gameID)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "variant", gameID)
		fmt.Fprintf(out, "Cleared the Hall of Fame for %s.\n", gameID)
		return nil
	}

	return printTop(out, store, gameID, flagLimit)
}

func printTop(out io.Writer, store *storage.Store, gameID string, limit int) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	var scores []storage.ScoreEntry
	if limit > 0 {
		scores, err = store.TopScores(gameID, limit)
	} else {
		scores, err = store.AllScores(gameID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Hall of Fame - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'munchers play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-4s  %-8s  %-5s  %s\n", "Rank", "Name", "Score", "Level", "Date")
	fmt.Fprintf(out, "  %-4s  %-4s  %-8s  %-5s  %s\n", "----", "----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-4s  %-8d  %-5d  %s\n", i+1, e.Name, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Games: %d  Average: %.1f  Best level: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
	return nil
}

func printSummary(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Hall of Fame")
	fmt.Fprintln(out)

	played := 0
	for _, g := range registry.List() {
		s, ok := all[g.ID]
		if !ok {
			continue
		}
		if played == 0 {
			fmt.Fprintf(out, "  %-12s  %-6s  %-6s  %-5s  %s\n", "Variant", "Games", "Best", "Level", "Last played")
			fmt.Fprintf(out, "  %-12s  %-6s  %-6s  %-5s  %s\n", "-------", "-----", "----", "-----", "-----------")
		}
		played++
		fmt.Fprintf(out, "  %-12s  %-6d  %-6d  %-5d  %s\n", g.ID, s.GamesCount, s.HighScore, s.BestLevel, s.LastPlayed.Format("2006-01-02"))
	}

	if played == 0 {
		fmt.Fprintln(out, "No games played yet.")
	}
	return nil
}

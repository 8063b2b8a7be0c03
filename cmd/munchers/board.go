package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/munchers/internal/config"
	"github.com/vovakirdan/munchers/internal/games/munchers/engine"
)

var boardCmd = &cobra.Command{
	Use:   "board <variant>",
	Short: "Print a generated board",
	Long: `Generate one board for the variant and print it, marking the numbers
that match the goal with a star. Use --seed to get the same board again.

Examples:
  munchers board multiples --seed 7
  munchers board toggles --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	v, err := config.LoadVariant(flagConfig, args[0])
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	preset.Apply(&v)

	settings, err := v.Settings()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	board, err := engine.Generate(cmd.Context(), settings.Board, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	logger.Debug("board generated", "variant", args[0], "seed", seed, "correct", board.CorrectCount())
	printBoard(cmd.OutOrStdout(), settings.Board.Rule, board, seed)
	return nil
}

func printBoard(out io.Writer, rule engine.Rule, b *engine.Board, seed int64) {
	fmt.Fprintf(out, "%s  (seed %d)\n\n", rule.Title(), seed)
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			cell, _ := b.Cell(engine.Position{Row: r, Col: c})
			switch {
			case !cell.HasValue:
				fmt.Fprint(out, "   .  ")
			case cell.Correct:
				fmt.Fprintf(out, " %4d* ", cell.Value)
			default:
				fmt.Fprintf(out, " %4d  ", cell.Value)
			}
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "\n%d of %d cells match.\n", b.CorrectCount(), b.Rows*b.Cols)
}

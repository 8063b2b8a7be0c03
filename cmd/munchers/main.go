// munchers is Number Munchers for the terminal.
//
// Usage:
//
//	munchers list               - List available variants
//	munchers play <variant>     - Play a variant
//	munchers menu               - Pick variants interactively
//	munchers scores [variant]   - Show the Hall of Fame
//	munchers board <variant>    - Print a generated board
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.munchers/scores.db)
//	--config <path>       - Load variants from a custom YAML file
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Log destination (default: ~/.munchers/munchers.log)
//
// MUNCHERS_DB, MUNCHERS_CONFIG and MUNCHERS_LOG_LEVEL stand in for the
// matching flags, and may be set in a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/munchers/internal/config"
	"github.com/vovakirdan/munchers/internal/games/munchers"
	"github.com/vovakirdan/munchers/internal/telemetry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

var (
	logger            = log.Default()
	logFile           *os.File
	shutdownTelemetry = func(context.Context) error { return nil }
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	err := rootCmd.ExecuteContext(context.Background())
	closeLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "munchers",
	Short: "Number Munchers - eat the right numbers in your terminal",
	Long: `Number Munchers is a terminal remake of the classic maths game.
Steer the muncher around the grid and eat every number that matches the
goal: primes, multiples or factors. Wrong answers, the Toggles and the
clock all cost lives.

Available commands:
  list     - Show all variants
  play     - Play a specific variant directly
  menu     - Interactive variant picker
  scores   - View the Hall of Fame
  board    - Print a generated board

Examples:
  munchers list
  munchers play classic
  munchers play toggles --difficulty hard
  munchers menu
  munchers scores timed
  munchers board multiples --seed 7`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "~/.munchers/scores.db", "Path to scores database")
	flags.StringVar(&flagConfig, "config", "", "Path to custom variants YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&flagLogFile, "log-file", "~/.munchers/munchers.log", "Log file path")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
}

// setup applies environment overrides, opens the log, starts tracing and
// registers configured variants before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	for name, env := range map[string]string{
		"db":        "MUNCHERS_DB",
		"config":    "MUNCHERS_CONFIG",
		"log-level": "MUNCHERS_LOG_LEVEL",
	} {
		if v, ok := os.LookupEnv(env); ok && !flags.Changed(name) {
			if err := flags.Set(name, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}

	if err := openLogging(); err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(cmd.Context())
	if err != nil {
		logger.Warn("telemetry setup failed, continuing without traces", "err", err)
	} else {
		shutdownTelemetry = shutdown
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	munchers.SetDifficultyPreset(string(preset))
	munchers.SetConfigPath(flagConfig)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	munchers.Register(cfg)

	logger.Debug("setup complete", "config", flagConfig, "difficulty", preset, "variants", len(cfg.Variants))
	return nil
}

// openLogging sends logs to the log file. The terminal belongs to the
// game, so nothing is written to stderr while playing.
func openLogging() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}

	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "munchers",
		Level:           level,
	})
	return nil
}

func closeLogging() {
	if err := shutdownTelemetry(context.Background()); err != nil {
		logger.Error("telemetry shutdown failed", "err", err)
	}
	if logFile != nil {
		logFile.Close()
	}
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// tanks is a Battle City style tank game for the terminal.
//
// Usage:
//
//	tanks                    - Start the menu (mode, map, scores)
//	tanks play [map]         - Play the campaign, optionally from a map
//	tanks maps               - List available maps
//	tanks scores [mode]      - Show high scores
//	tanks serve              - Start SSH server for remote play
//	tanks simulate           - Run headless deterministic games
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.tanks/scores.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--maps <dir>         - Load maps from a directory
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/maps"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMapDir     string
	flagLogFile    string
	flagLogLevel   string
)

// logger is configured from --log-file and --log-level before any command runs.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "TUI Tanks - defend the base in your terminal",
	Long: `TUI Tanks is a Battle City style game played in the terminal.
Drive with WASD or the arrow keys, fire with Space or J and keep the
enemy away from your base.

Available commands:
  play      - Play the campaign directly
  maps      - Show all available maps
  scores    - View high scores
  serve     - Start SSH server for remote play
  simulate  - Run headless games and print their digests

Examples:
  tanks
  tanks play 02
  tanks play --endless --difficulty hard
  tanks serve --ssh :2222
  tanks simulate --runs 8 --ticks 3600`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.tanks/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagMapDir, "maps", "", "Directory of map YAML files (default: built-in maps)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup applies the global flags to the logger and the game package.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (expected easy, normal, hard or fixed)", flagDifficulty)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "tanks",
			Level:           level,
		})
	}

	tanks.SetLogger(logger)
	tanks.SetConfigPath(flagConfig)
	if flagDifficulty != "" {
		tanks.SetDifficultyPreset(preset)
	}
	tanks.SetMapDir(flagMapDir)
	return nil
}

// mapLoader returns the loader the game itself uses for the current flags.
func mapLoader() *maps.Loader {
	if flagMapDir != "" {
		return maps.NewLoader(flagMapDir)
	}
	return maps.Builtin()
}

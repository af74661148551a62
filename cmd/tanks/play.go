package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
)

var flagEndless bool

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Play the campaign",
	Long: `Start playing right away, skipping the menu.

Controls:
  WASD/Arrows  - Drive
  Space/J      - Fire
  P            - Pause
  R            - Restart (after game over)
  Esc/B        - Back (while paused or after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slow enemies that rarely fire, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  tanks play
  tanks play 03
  tanks play --endless
  tanks play --difficulty hard --config ./my-tanks.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Loop the maps with rising difficulty")
}

func runPlay(_ *cobra.Command, args []string) error {
	var game *tanks.Game
	if flagEndless {
		game = tanks.NewEndless()
	} else {
		game = tanks.New()
	}

	mapID := ""
	if len(args) == 1 {
		mapID = args[0]
		if _, err := mapLoader().LoadByID(args[0]); err != nil {
			return fmt.Errorf("unknown map %q (run 'tanks maps' to list them): %w", args[0], err)
		}
		game.SelectMap(args[0])
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	logger.Info("game started", "game", game.ID(), "map", mapID, "seed", cfg.Seed)
	if err := tui.Run(game, store, logger, cfg); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

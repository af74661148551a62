package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. The game runs without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

type mapSelector interface {
	SelectMap(id string)
}

// runMenu loops menu -> game or scoreboard -> menu until the player quits.
func runMenu(_ *cobra.Command, _ []string) error {
	ids, err := mapLoader().ListIDs()
	if err != nil {
		return fmt.Errorf("cannot list maps: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(ids, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
			continue
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			return err
		}
		if ms, ok := game.(mapSelector); ok {
			ms.SelectMap(res.MapID)
		}
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		logger.Info("game started", "game", res.GameID, "map", res.MapID, "seed", cfg.Seed)
		if err := tui.Run(game, store, logger, cfg); err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
	}
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start game
  Tab          - High scores
  Q            - Quit

Examples:
  snake menu
  snake menu --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(true)

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}
	scores := openHighScores(cfg, logger)
	bell := audio.NewBell(os.Stdout, audio.Options{
		Food:     cfg.Sound.FoodCue(),
		GameOver: cfg.Sound.GameOverCue(),
	})

	width, height := termSize()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, width, height)
		if err != nil {
			logger.Error("menu failed", "err", err)
			return
		}
		width, height = menuResult.Width, menuResult.Height

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, width, height)
			if err != nil {
				logger.Error("scoreboard failed", "err", err)
				return
			}
			if !goBack {
				return
			}
			continue
		}

		opts := tui.NewOptions(cfg, menuResult.Preset)
		opts.Game.Seed = flagSeed
		opts.HighScores = scores
		opts.Store = store
		opts.Audio = bell
		opts.Player = os.Getenv("USER")
		opts.Width, opts.Height = width, height
		opts.Logger = logger

		closed, err := tui.Run(opts)
		if err != nil {
			logger.Error("game failed", "err", err)
			return
		}
		if closed {
			return
		}
	}
}

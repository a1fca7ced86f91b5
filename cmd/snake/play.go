package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

var (
	flagDifficulty string
	flagSpectate   string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/WASD/hjkl - Steer
  P/Esc            - Pause / resume
  R                - Restart (after game over)
  Q                - Quit (after game over)
  Ctrl+C           - Exit at any time
  Ctrl+S           - Save a screenshot to ~/.snake/screenshots

Difficulty options:
  easy   - Slow start, speeds up every 8 points
  normal - Configured speed and progression
  hard   - Fast start, speeds up every 3 points
  fixed  - Speed never increases

Examples:
  snake play
  snake play --difficulty hard
  snake play --spectate :8080     # watch at ws://localhost:8080/ws
  snake play --config ./my-snake.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Bare "snake" plays too, so both commands take the play flags.
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a live spectator feed on this address (e.g. :8080)")
		c.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name recorded with each run")
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fatal("%v", err)
	}

	cfg := loadConfig()
	logger := newLogger(true)

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	width, height := termSize()

	opts := tui.NewOptions(cfg, preset)
	opts.Game.Seed = flagSeed
	opts.HighScores = openHighScores(cfg, logger)
	opts.Store = store
	opts.Audio = audio.NewBell(os.Stdout, audio.Options{
		Food:     cfg.Sound.FoodCue(),
		GameOver: cfg.Sound.GameOverCue(),
	})
	opts.Player = flagPlayer
	opts.Width, opts.Height = width, height
	opts.Logger = logger

	if flagSpectate != "" {
		hub := spectate.NewHub(logger.WithPrefix("spectate"))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := hub.Serve(ctx, flagSpectate); err != nil {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
		opts.Spectators = hub
	}

	logger.Info("starting game", "difficulty", preset, "seed", opts.Game.Seed, "grid", opts.Game.Grid)
	if _, err := tui.Run(opts); err != nil {
		if store != nil {
			store.Close()
		}
		fatal("running game: %v", err)
	}
}

package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit       int
	flagScoresLevel string
	flagClear       bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs, optionally for one difficulty.

Examples:
  snake scores
  snake scores --difficulty hard --limit 5
  snake scores --tui
  snake scores --clear --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresLevel, "difficulty", "", "Only runs of this preset: easy, normal, hard, fixed")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs (of --difficulty, or all)")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	preset := ""
	if flagScoresLevel != "" {
		p, err := config.ParseDifficulty(flagScoresLevel)
		if err != nil {
			fatal("%v", err)
		}
		preset = string(p)
	}

	cfg := loadConfig()
	logger := newLogger(flagScoresTUI)

	store := openStore(cfg, logger)
	if store == nil {
		fatal("no run history available")
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := termSize()
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			logger.Error("scoreboard failed", "err", err)
		}
		return
	}

	if flagClear {
		if err := store.ClearRuns(preset); err != nil {
			logger.Error("cannot clear runs", "err", err)
			return
		}
		fmt.Println("Run history cleared.")
		return
	}

	runs, err := store.TopRuns(flagLimit, preset)
	if err != nil {
		logger.Error("cannot read runs", "err", err)
		return
	}

	title := "All difficulties"
	if preset != "" {
		title = config.DifficultyPreset(preset).Title()
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-5s  %-5s  %-6s  %-10s  %-8s  %s\n",
		"Rank", "Player", "Score", "Level", "Length", "Cause", "Preset", "Date")
	fmt.Printf("  %-4s  %-12s  %-5s  %-5s  %-6s  %-10s  %-8s  %s\n",
		"----", "------", "-----", "-----", "------", "-----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-5d  %-5d  %-6d  %-10s  %-8s  %s\n",
			i+1, r.Player, r.Score, r.Level, r.Length, r.Cause, r.Preset,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	scores := openHighScores(cfg, logger)
	if best := scores.Load(); best > 0 {
		fmt.Printf("High score: %d (%s)\n", best, scores.Path())
	}
	if stats, err := store.Stats(preset); err == nil && stats.Runs > 0 {
		fmt.Printf("Runs: %d  Average: %.1f  Last played: %s\n",
			stats.Runs, stats.AvgScore, stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	if preset == "" {
		printPresetStats(store, logger)
	}
}

// printPresetStats prints one summary line per difficulty that has runs.
func printPresetStats(store *storage.Store, logger *log.Logger) {
	byPreset, err := store.StatsByPreset()
	if err != nil {
		logger.Error("cannot read preset stats", "err", err)
		return
	}
	for _, p := range config.Presets {
		st, ok := byPreset[string(p)]
		if !ok {
			continue
		}
		fmt.Printf("  %-8s  runs %-4d  best %-5d  average %.1f\n", p.Title(), st.Runs, st.BestScore, st.AvgScore)
	}
}

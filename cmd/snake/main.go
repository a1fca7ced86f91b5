// snake is the classic snake game for the terminal.
//
// Usage:
//
//	snake                    - Play with the configured settings
//	snake play               - Same as above, with difficulty and spectator flags
//	snake menu               - Start menu to pick a difficulty interactively
//	snake scores             - Show the best runs
//	snake serve              - Start SSH server for remote play
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Run history database (default from config)
//	--highscore <path>  - High score file (default from config)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagSeed      int64
	flagDBPath    string
	flagHighScore string
	flagLogLevel  string
	flagLogFile   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic grid game: steer the snake to the food, grow,
and avoid the walls, the obstacles and your own tail.

Available commands:
  play     - Play a game (default)
  menu     - Interactive difficulty picker
  scores   - View the best runs
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  snake
  snake play --difficulty hard
  snake menu
  snake serve --ssh :2222
  snake scores --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagHighScore, "highscore", "", "Path to high score file (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default stderr)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies the path overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	if flagDBPath != "" {
		cfg.Storage.Database = flagDBPath
	}
	if flagHighScore != "" {
		cfg.Storage.HighScoreFile = flagHighScore
	}
	return cfg
}

// newLogger builds the process logger. Interactive commands pass
// interactive=true so that, without --log-file, nothing is written over
// the game screen.
func newLogger(interactive bool) *log.Logger {
	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(config.ExpandPath(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fatal("cannot open log file: %v", err)
		}
		out = f
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fatal("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the run history. A failure only disables history.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(config.ExpandPath(cfg.Storage.Database))
	if err != nil {
		logger.Warn("could not open run history", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}

// openHighScores returns the high score file named by the configuration.
func openHighScores(cfg config.Config, logger *log.Logger) *highscore.File {
	return highscore.NewFile(config.ExpandPath(cfg.Storage.HighScoreFile), logger.WithPrefix("highscore"))
}

// termSize returns the terminal size, or 80x24 when stdout is not a terminal.
func termSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

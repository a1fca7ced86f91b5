package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagDefaultConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a game would start with, after the search
order (--config, ~/.snake/config.yaml, ./configs/snake.yaml, built-in
defaults) and the --db and --highscore overrides.

Use --default to print the built-in defaults, a good starting point for
~/.snake/config.yaml.

Examples:
  snake config
  snake config --default > ~/.snake/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaultConfig, "default", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaultConfig {
		os.Stdout.Write(config.DefaultYAML()) //nolint:errcheck // Nothing to do on a closed stdout
		return
	}

	data, err := config.Marshal(loadConfig())
	if err != nil {
		fatal("%v", err)
	}
	os.Stdout.Write(data) //nolint:errcheck // Nothing to do on a closed stdout
}

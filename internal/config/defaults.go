package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the hardcoded configuration, used when the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:    600,
			Height:   400,
			CellSize: 20,
		},
		Speed: SpeedConfig{
			Base:          10,
			IncreaseEvery: 5,
		},
		Levels: LevelsConfig{
			AdvanceEvery: 10,
		},
		Display: DisplayConfig{
			RefreshRate: 60,
		},
		Sound: SoundConfig{
			Enabled:  true,
			Food:     true,
			GameOver: true,
		},
		Palette: PaletteConfig{
			Background: "0",
			Grid:       "238",
			SnakeHead:  "46",
			SnakeBody:  "34",
			Food:       "196",
			Obstacle:   "244",
			Text:       "252",
			Overlay:    "226",
		},
		Storage: StorageConfig{
			HighScoreFile: "~/.snake/highscore.txt",
			Database:      "~/.snake/snake.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}

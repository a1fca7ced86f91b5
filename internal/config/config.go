// Package config provides YAML-based game configuration loading, validation
// and difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config contains all settings fixed for a run.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Speed   SpeedConfig   `yaml:"speed"`
	Levels  LevelsConfig  `yaml:"levels"`
	Display DisplayConfig `yaml:"display"`
	Sound   SoundConfig   `yaml:"sound"`
	Palette PaletteConfig `yaml:"palette"`
	Storage StorageConfig `yaml:"storage"`
}

// WindowConfig sets the board size. The grid is width/cell_size columns
// by height/cell_size rows.
type WindowConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// SpeedConfig controls the step rate.
type SpeedConfig struct {
	Base          int `yaml:"base"`           // Steps per second at score 0
	IncreaseEvery int `yaml:"increase_every"` // Points per +1 speed; 0 keeps speed fixed
}

// LevelsConfig controls level progression.
type LevelsConfig struct {
	AdvanceEvery int `yaml:"advance_every"` // Points per level
}

// DisplayConfig controls frame pacing.
type DisplayConfig struct {
	RefreshRate int `yaml:"refresh_rate"` // Frames per second
}

// SoundConfig toggles the audio cues.
type SoundConfig struct {
	Enabled  bool `yaml:"enabled"`
	Food     bool `yaml:"food"`
	GameOver bool `yaml:"game_over"`
}

// PaletteConfig maps screen roles to terminal colors. Values are anything
// lipgloss accepts: ANSI indexes ("9") or hex ("#ff0000").
type PaletteConfig struct {
	Background string `yaml:"background"`
	Grid       string `yaml:"grid"`
	SnakeHead  string `yaml:"snake_head"`
	SnakeBody  string `yaml:"snake_body"`
	Food       string `yaml:"food"`
	Obstacle   string `yaml:"obstacle"`
	Text       string `yaml:"text"`
	Overlay    string `yaml:"overlay"`
}

// StorageConfig locates the persisted files. A leading "~" expands to the
// home directory.
type StorageConfig struct {
	HighScoreFile string `yaml:"high_score_file"`
	Database      string `yaml:"database"`
}

// Grid returns the board dimensions in cells.
func (c Config) Grid() core.Grid {
	return core.NewGrid(c.Window.Width, c.Window.Height, c.Window.CellSize)
}

// Validate reports the first setting that cannot produce a playable game.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.CellSize <= 0:
		return fmt.Errorf("%w: cell_size %d must be positive", ErrInvalid, c.Window.CellSize)
	case c.Grid().Area() == 0:
		return fmt.Errorf("%w: window %dx%d holds no %d-sized cell", ErrInvalid, c.Window.Width, c.Window.Height, c.Window.CellSize)
	case c.Speed.Base <= 0:
		return fmt.Errorf("%w: speed.base %d must be positive", ErrInvalid, c.Speed.Base)
	case c.Speed.IncreaseEvery < 0:
		return fmt.Errorf("%w: speed.increase_every %d must not be negative", ErrInvalid, c.Speed.IncreaseEvery)
	case c.Levels.AdvanceEvery <= 0:
		return fmt.Errorf("%w: levels.advance_every %d must be positive", ErrInvalid, c.Levels.AdvanceEvery)
	case c.Display.RefreshRate <= 0:
		return fmt.Errorf("%w: display.refresh_rate %d must be positive", ErrInvalid, c.Display.RefreshRate)
	}
	return nil
}

// FoodCue reports whether the food cue should play.
func (s SoundConfig) FoodCue() bool {
	return s.Enabled && s.Food
}

// GameOverCue reports whether the game-over cue should play.
func (s SoundConfig) GameOverCue() bool {
	return s.Enabled && s.GameOver
}

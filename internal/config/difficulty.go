package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficulty converts a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (use easy, normal, hard or fixed)", ErrInvalid, s)
}

// Title returns the menu label for the preset.
func (p DifficultyPreset) Title() string {
	switch p {
	case DifficultyEasy:
		return "Easy"
	case DifficultyNormal:
		return "Normal"
	case DifficultyHard:
		return "Hard"
	case DifficultyFixed:
		return "Fixed"
	default:
		return string(p)
	}
}

// Description returns a one-line summary for menus and help output.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Slow start, speeds up every 8 points"
	case DifficultyNormal:
		return "Configured speed and progression"
	case DifficultyHard:
		return "Fast start, speeds up every 3 points"
	case DifficultyFixed:
		return "Speed never increases"
	default:
		return ""
	}
}

// ApplyPreset adjusts the speed settings for a preset. Normal keeps the
// configured values.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Base = 6
		cfg.Speed.IncreaseEvery = 8
	case DifficultyHard:
		cfg.Speed.Base = 14
		cfg.Speed.IncreaseEvery = 3
	case DifficultyFixed:
		cfg.Speed.IncreaseEvery = 0
	}
}

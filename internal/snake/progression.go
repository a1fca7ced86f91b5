package snake

import "time"

// DefaultLevelEvery is the number of points per level.
const DefaultLevelEvery = 10

// Speed returns the snake speed in grid steps per second.
// A non-positive every disables speed growth.
func Speed(score, base, every int) int {
	if every <= 0 {
		return base
	}
	return base + score/every
}

// MoveInterval returns the minimum time between grid steps at speed,
// truncated to whole milliseconds.
func MoveInterval(speed int) time.Duration {
	speed = max(speed, 1)
	return time.Duration(1000/speed) * time.Millisecond
}

// Level returns the 1-based level reached at score.
// A non-positive every keeps the game on level 1.
func Level(score, every int) int {
	if every <= 0 {
		return 1
	}
	return score/every + 1
}

// Package audio plays the game's sound cues. Cues are fire-and-forget and
// each one can be switched off independently.
package audio

import (
	"io"
	"sync"
)

// Cue identifies a sound effect.
type Cue int

const (
	CueFood Cue = iota
	CueGameOver
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueFood:
		return "food"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player plays cues.
type Player interface {
	Play(c Cue)
}

// Options selects which cues are audible.
type Options struct {
	Food     bool
	GameOver bool
}

// Bell rings the terminal bell on the session output. Write errors are
// ignored; a lost beep is not worth reporting.
type Bell struct {
	mu   sync.Mutex
	out  io.Writer
	opts Options
}

// NewBell returns a Bell writing to out.
func NewBell(out io.Writer, opts Options) *Bell {
	return &Bell{out: out, opts: opts}
}

// Enabled reports whether cue c is audible.
func (b *Bell) Enabled(c Cue) bool {
	switch c {
	case CueFood:
		return b.opts.Food
	case CueGameOver:
		return b.opts.GameOver
	}
	return false
}

// Play rings once for food and twice for game over.
func (b *Bell) Play(c Cue) {
	if b == nil || b.out == nil || !b.Enabled(c) {
		return
	}

	seq := "\a"
	if c == CueGameOver {
		seq = "\a\a"
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	io.WriteString(b.out, seq) //nolint:errcheck // Best-effort beep
}

// Silent discards every cue.
type Silent struct{}

// Play does nothing.
func (Silent) Play(Cue) {}

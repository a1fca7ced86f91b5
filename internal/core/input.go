package core

// IntentKind discriminates the player's intents, abstracted from physical keys.
type IntentKind int

const (
	IntentNone        IntentKind = iota
	IntentMove                   // Steer the snake; Intent.Dir holds the direction
	IntentTogglePause            // P, Escape
	IntentRestart                // R, honored only after game over
	IntentQuit                   // Q, honored only after game over
	IntentClose                  // Window/session close, always honored
)

// String returns a human-readable name for the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "None"
	case IntentMove:
		return "Move"
	case IntentTogglePause:
		return "TogglePause"
	case IntentRestart:
		return "Restart"
	case IntentQuit:
		return "Quit"
	case IntentClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Intent is a single player command consumed by the game state machine.
// Dir is meaningful only for IntentMove.
type Intent struct {
	Kind IntentKind
	Dir  Direction
}

// Move returns a steering intent.
func Move(d Direction) Intent {
	return Intent{Kind: IntentMove, Dir: d}
}

// TogglePause returns a pause-toggle intent.
func TogglePause() Intent {
	return Intent{Kind: IntentTogglePause}
}

// Restart returns a restart intent.
func Restart() Intent {
	return Intent{Kind: IntentRestart}
}

// Quit returns a quit intent.
func Quit() Intent {
	return Intent{Kind: IntentQuit}
}

// Close returns a window-close intent.
func Close() Intent {
	return Intent{Kind: IntentClose}
}

// String returns the intent including its direction for moves.
func (i Intent) String() string {
	if i.Kind == IntentMove {
		return "Move(" + i.Dir.String() + ")"
	}
	return i.Kind.String()
}

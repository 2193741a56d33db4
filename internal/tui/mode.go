// Package tui provides the terminal user interface for brutal.
package tui

// Mode represents which part of the screen has focus.
type Mode int

const (
	ModeInput Mode = iota // Typing a new todo (initial focus)
	ModeList              // Navigating the list
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeList:
		return "list"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeInput
}

package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI: black ink on paper with one
// warning yellow.
var Colors = struct {
	Ink     lipgloss.Color
	Paper   lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Done    lipgloss.Color
	Cursor  lipgloss.Color
}{
	Ink:     lipgloss.Color("#000000"),
	Paper:   lipgloss.Color("#FFFFFF"),
	Accent:  lipgloss.Color("#FFE600"), // Yellow
	Muted:   lipgloss.Color("#777777"),
	Done:    lipgloss.Color("#999999"),
	Cursor:  lipgloss.Color("#FF3B00"), // Red-orange
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Stat     lipgloss.Style
	StatNum  lipgloss.Style

	// Input
	InputBox        lipgloss.Style
	InputBoxFocused lipgloss.Style
	AddButton       lipgloss.Style

	// Todo list
	List          lipgloss.Style
	Row           lipgloss.Style
	RowSelected   lipgloss.Style
	Check         lipgloss.Style
	CheckDone     lipgloss.Style
	Text          lipgloss.Style
	TextDone      lipgloss.Style
	Meta          lipgloss.Style
	Cursor        lipgloss.Style
	Empty         lipgloss.Style
	EmptyHint     lipgloss.Style
	Loading       lipgloss.Style
	Footer        lipgloss.Style
	HelpContainer lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	heavy := lipgloss.ThickBorder()

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Ink).
			Background(Colors.Accent).
			Padding(0, 1),
		Subtitle: lipgloss.NewStyle().
			Italic(true).
			Foreground(Colors.Muted).
			MarginLeft(1),
		Stat:    lipgloss.NewStyle().Foreground(Colors.Muted),
		StatNum: lipgloss.NewStyle().Bold(true),

		InputBox: lipgloss.NewStyle().
			Border(heavy).
			BorderForeground(Colors.Muted).
			Padding(0, 1),
		InputBoxFocused: lipgloss.NewStyle().
			Border(heavy).
			BorderForeground(Colors.Accent).
			Padding(0, 1),
		AddButton: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Ink).
			Background(Colors.Accent).
			Padding(0, 2).
			MarginLeft(1),

		List:        lipgloss.NewStyle().MarginTop(1),
		Row:         lipgloss.NewStyle(),
		RowSelected: lipgloss.NewStyle().Bold(true),
		Check:       lipgloss.NewStyle().Bold(true),
		CheckDone:   lipgloss.NewStyle().Bold(true).Foreground(Colors.Accent),
		Text:        lipgloss.NewStyle(),
		TextDone: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(Colors.Done),
		Meta:      lipgloss.NewStyle().Foreground(Colors.Muted),
		Cursor:    lipgloss.NewStyle().Bold(true).Foreground(Colors.Cursor),
		Empty:     lipgloss.NewStyle().Bold(true).MarginTop(1),
		EmptyHint: lipgloss.NewStyle().Foreground(Colors.Muted),
		Loading: lipgloss.NewStyle().
			Bold(true).
			Padding(1, 2),
		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),
		HelpContainer: lipgloss.NewStyle().MarginTop(1),
	}
}

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/brutal/internal/domain"
	"github.com/runoshun/brutal/internal/todoview"
)

// Input field settings.
const (
	inputPlaceholder = "What needs to be done?"
	inputCharLimit   = 500
)

// Model is the main bubbletea model for the TUI.
// State is only mutated inside Update; round trips run as commands and
// return the mutation to apply.
type Model struct {
	// Dependencies (pointers first for alignment)
	dispatcher *todoview.Dispatcher
	state      *todoview.State

	// Components
	keys    KeyMap
	styles  Styles
	help    help.Model
	input   textinput.Model
	spinner spinner.Model

	// Numeric state (smaller types last)
	mode     Mode
	cursor   int
	width    int
	height   int
	showHelp bool
}

// New creates a new TUI Model over the dispatcher.
func New(d *todoview.Dispatcher, cfg domain.TUIConfig) *Model {
	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.CharLimit = inputCharLimit
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Line

	return &Model{
		dispatcher: d,
		state:      todoview.NewState(),
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		help:       help.New(),
		input:      ti,
		spinner:    sp,
		mode:       ModeInput,
		showHelp:   cfg.ShowHelp,
	}
}

// Init starts the initial read and the loading spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadTodos(),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// State returns the model's to-do state.
func (m *Model) State() *todoview.State {
	return m.state
}

// Mode returns the focused area.
func (m *Model) Mode() Mode {
	return m.mode
}

// Cursor returns the selected row index.
func (m *Model) Cursor() int {
	return m.cursor
}

// loadTodos returns a command that performs the initial read.
func (m *Model) loadTodos() tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		apply, err := d.Fetch(context.Background())
		return MsgTodosLoaded{Apply: apply, Err: err}
	}
}

// addTodo returns a command that creates a todo from text.
func (m *Model) addTodo(text string) tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		apply, err := d.Add(context.Background(), text)
		return MsgTodoAdded{Apply: apply, Err: err}
	}
}

// toggleTodo returns a command that flips current's completion.
// current is a snapshot taken when the key was pressed.
func (m *Model) toggleTodo(current domain.Todo) tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		apply, err := d.Toggle(context.Background(), current)
		return MsgTodoToggled{Apply: apply, Err: err, TodoID: current.ID}
	}
}

// deleteTodo returns a command that removes a todo.
func (m *Model) deleteTodo(id int) tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		apply, err := d.Delete(context.Background(), id)
		return MsgTodoDeleted{Apply: apply, Err: err, TodoID: id}
	}
}

// selected returns the todo under the cursor.
func (m *Model) selected() (domain.Todo, bool) {
	if m.cursor < 0 || m.cursor >= m.state.Len() {
		return domain.Todo{}, false
	}
	return m.state.At(m.cursor), true
}

// clampCursor keeps the cursor on an existing row.
func (m *Model) clampCursor() {
	if m.cursor >= m.state.Len() {
		m.cursor = m.state.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Run starts the TUI program and blocks until it exits.
func Run(d *todoview.Dispatcher, cfg domain.TUIConfig) error {
	p := tea.NewProgram(New(d, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

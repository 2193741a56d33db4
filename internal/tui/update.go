package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/brutal/internal/todoview"
)

// Update handles messages and updates the model.
// Failed round trips carry a nil mutation and leave state untouched; the
// dispatcher has already logged them.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = m.inputWidth()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgTodosLoaded:
		m.state.Apply(msg.Apply)
		m.clampCursor()
		return m, nil

	case MsgTodoAdded:
		if msg.Err != nil {
			return m, nil
		}
		m.state.Apply(msg.Apply)
		m.input.Reset()
		return m, nil

	case MsgTodoToggled:
		m.state.Apply(msg.Apply)
		return m, nil

	case MsgTodoDeleted:
		m.state.Apply(msg.Apply)
		m.clampCursor()
		return m, nil
	}

	if m.mode.IsInputMode() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.state.Loading() {
		return m, nil
	}

	switch m.mode {
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeList:
		return m.handleListMode(msg)
	}
	return m, nil
}

func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.setMode(ModeList)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		if todoview.NormalizeText(text) == "" {
			return m, nil
		}
		return m, m.addTodo(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		m.setMode(ModeInput)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.state.Len()-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		current, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.toggleTodo(current)
	case key.Matches(msg, m.keys.Delete):
		current, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.deleteTodo(current.ID)
	}
	return m, nil
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	if mode.IsInputMode() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/brutal/internal/domain"
	"github.com/runoshun/brutal/internal/testutil"
	"github.com/runoshun/brutal/internal/todoview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = domain.NewTimestamp(time.Date(2025, 1, 15, 9, 30, 0, 0, time.Local))

func seedTodos() []domain.Todo {
	return []domain.Todo{
		{ID: 1, Text: "Buy milk", CreatedAt: created},
		{ID: 2, Text: "Walk dog", Completed: true, CreatedAt: created},
		{ID: 3, Text: "Write report", CreatedAt: created},
	}
}

// newLoadedModel returns a model after a successful initial read.
func newLoadedModel(t *testing.T, todos ...domain.Todo) (*Model, *testutil.MockTodoAPI) {
	t.Helper()
	api := testutil.NewMockTodoAPI(todos...)
	m := New(todoview.NewDispatcher(api, nil), domain.TUIConfig{ShowHelp: true})
	m.Update(m.loadTodos()())
	require.False(t, m.State().Loading())
	return m, api
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_InitialLoad(t *testing.T) {
	t.Run("success populates state", func(t *testing.T) {
		m, api := newLoadedModel(t, seedTodos()...)

		assert.Equal(t, 3, m.State().Len())
		assert.Equal(t, todoview.Stats{Total: 3, Completed: 1, Remaining: 2}, m.State().Stats())
		assert.Equal(t, 1, api.CallCount())
	})

	t.Run("failure clears loading with empty list", func(t *testing.T) {
		api := testutil.NewMockTodoAPI(seedTodos()...)
		api.ListErr = assert.AnError
		logger := &testutil.MockLogger{}
		m := New(todoview.NewDispatcher(api, logger), domain.TUIConfig{})

		m.Update(m.loadTodos()())

		assert.False(t, m.State().Loading())
		assert.Equal(t, 0, m.State().Len())
		assert.Len(t, logger.Errors(), 1)
	})

	t.Run("keys ignored while loading", func(t *testing.T) {
		api := testutil.NewMockTodoAPI()
		m := New(todoview.NewDispatcher(api, nil), domain.TUIConfig{})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, cmd)
		assert.True(t, m.State().Loading())
	})
}

func TestModel_Add(t *testing.T) {
	t.Run("submit appends and clears input", func(t *testing.T) {
		m, api := newLoadedModel(t, seedTodos()...)
		typeText(m, "Buy bread")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		run(t, m, cmd)

		require.Equal(t, 4, m.State().Len())
		last := m.State().At(3)
		assert.Equal(t, 4, last.ID)
		assert.Equal(t, "Buy bread", last.Text)
		assert.Empty(t, m.input.Value())
		assert.Equal(t, 2, api.CallCount())
	})

	t.Run("blank input sends nothing", func(t *testing.T) {
		m, api := newLoadedModel(t, seedTodos()...)
		typeText(m, "   ")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, cmd)
		assert.Equal(t, 1, api.CallCount())
		assert.Equal(t, 3, m.State().Len())
	})

	t.Run("failure keeps input and state", func(t *testing.T) {
		m, api := newLoadedModel(t, seedTodos()...)
		api.CreateErr = assert.AnError
		typeText(m, "Buy bread")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		run(t, m, cmd)

		assert.Equal(t, seedTodos(), m.State().Todos())
		assert.Equal(t, "Buy bread", m.input.Value())
	})
}

func TestModel_ListActions(t *testing.T) {
	t.Run("toggle flips only the selected todo", func(t *testing.T) {
		m, _ := newLoadedModel(t, seedTodos()...)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		require.Equal(t, ModeList, m.Mode())

		_, cmd := m.Update(keyRunes("x"))
		run(t, m, cmd)

		todos := m.State().Todos()
		assert.True(t, todos[0].Completed)
		assert.Equal(t, seedTodos()[1:], todos[1:])
	})

	t.Run("toggle sends the negated snapshot", func(t *testing.T) {
		m, api := newLoadedModel(t, seedTodos()...)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m.Update(keyRunes("j"))

		_, cmd := m.Update(keyRunes(" "))
		run(t, m, cmd)

		call := api.Calls[len(api.Calls)-1]
		assert.Equal(t, 2, call.ID)
		require.NotNil(t, call.Patch.Completed)
		assert.False(t, *call.Patch.Completed)
		assert.False(t, m.State().At(1).Completed)
	})

	t.Run("delete removes selected and clamps cursor", func(t *testing.T) {
		m, _ := newLoadedModel(t, seedTodos()...)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m.Update(keyRunes("j"))
		m.Update(keyRunes("j"))
		require.Equal(t, 2, m.Cursor())

		_, cmd := m.Update(keyRunes("d"))
		run(t, m, cmd)

		assert.Equal(t, 2, m.State().Len())
		assert.Equal(t, 1, m.Cursor())
		_, found := m.State().Find(3)
		assert.False(t, found)
	})

	t.Run("failed mutation leaves state unchanged", func(t *testing.T) {
		m, api := newLoadedModel(t, seedTodos()...)
		api.UpdateErr = assert.AnError
		api.DeleteErr = assert.AnError
		m.Update(tea.KeyMsg{Type: tea.KeyTab})

		_, cmd := m.Update(keyRunes("x"))
		run(t, m, cmd)
		_, cmd = m.Update(keyRunes("d"))
		run(t, m, cmd)

		assert.Equal(t, seedTodos(), m.State().Todos())
	})

	t.Run("actions on empty list send nothing", func(t *testing.T) {
		m, api := newLoadedModel(t)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})

		_, toggleCmd := m.Update(keyRunes("x"))
		_, deleteCmd := m.Update(keyRunes("d"))

		assert.Nil(t, toggleCmd)
		assert.Nil(t, deleteCmd)
		assert.Equal(t, 1, api.CallCount())
	})

	t.Run("cursor stays in bounds", func(t *testing.T) {
		m, _ := newLoadedModel(t, seedTodos()...)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})

		m.Update(keyRunes("k"))
		assert.Equal(t, 0, m.Cursor())
		for range 5 {
			m.Update(keyRunes("j"))
		}
		assert.Equal(t, 2, m.Cursor())
	})
}

func TestModel_Quit(t *testing.T) {
	t.Run("q quits from list", func(t *testing.T) {
		m, _ := newLoadedModel(t)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})

		_, cmd := m.Update(keyRunes("q"))

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("q is typed in input", func(t *testing.T) {
		m, _ := newLoadedModel(t)

		typeText(m, "q")

		assert.Equal(t, "q", m.input.Value())
	})

	t.Run("ctrl+c always quits", func(t *testing.T) {
		m, _ := newLoadedModel(t)

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "input", ModeInput.String())
	assert.Equal(t, "list", ModeList.String())
	assert.Equal(t, "unknown", Mode(99).String())
	assert.True(t, ModeInput.IsInputMode())
	assert.False(t, ModeList.IsInputMode())
}

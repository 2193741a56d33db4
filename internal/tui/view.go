package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/runoshun/brutal/internal/domain"
	"github.com/runoshun/brutal/internal/todoview"
)

const (
	defaultWidth = 60
	minWidth     = 40
)

// Fixed copy.
const (
	textLoading    = "LOADING"
	textTitle      = "TASKS"
	textSubtitle   = "in brutal form"
	textAdd        = "ADD"
	textEmpty      = "No tasks yet."
	textEmptyHint  = "Add one above to get started."
	textFooter     = "BRUTALIST TODO / PRESS HARD TO MAKE A MARK"
	checkboxDone   = "[x]"
	checkboxActive = "[ ]"
	ellipsis       = "..."
)

// View renders the TUI.
func (m *Model) View() string {
	if m.state.Loading() {
		return m.styles.Loading.Render(m.spinner.View() + " " + textLoading)
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewInput())
	b.WriteString("\n")
	if m.state.Len() == 0 {
		b.WriteString(m.viewEmptyState())
	} else {
		b.WriteString(m.viewTodoList())
	}
	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return m.styles.App.Render(b.String())
}

func (m *Model) contentWidth() int {
	w := m.width - 4 // app padding
	if m.width == 0 {
		w = defaultWidth
	}
	if w < minWidth {
		w = minWidth
	}
	return w
}

func (m *Model) inputWidth() int {
	// border + padding + prompt + button
	return m.contentWidth() - 4 - 2 - lipgloss.Width(m.styles.AddButton.Render(textAdd))
}

// viewHeader renders the title and the counts.
func (m *Model) viewHeader() string {
	title := m.styles.Title.Render(textTitle) + m.styles.Subtitle.Render(textSubtitle)

	stats := m.state.Stats()
	counts := strings.Join([]string{
		m.renderStat(stats.Total, "total"),
		m.renderStat(stats.Completed, "done"),
		m.renderStat(stats.Remaining, "left"),
	}, "  ")

	return title + "\n" + counts
}

func (m *Model) renderStat(n int, label string) string {
	return m.styles.StatNum.Render(fmt.Sprintf("%d", n)) + " " + m.styles.Stat.Render(label)
}

// viewInput renders the text field and the add button.
func (m *Model) viewInput() string {
	box := m.styles.InputBox
	if m.mode.IsInputMode() {
		box = m.styles.InputBoxFocused
	}
	field := box.Render(m.input.View())
	button := m.styles.AddButton.Render(textAdd)
	return lipgloss.JoinHorizontal(lipgloss.Center, field, button)
}

// viewEmptyState renders the placeholder shown for an empty list.
func (m *Model) viewEmptyState() string {
	return m.styles.Empty.Render(textEmpty) + "\n" + m.styles.EmptyHint.Render(textEmptyHint) + "\n"
}

// viewTodoList renders one row per todo in state order.
func (m *Model) viewTodoList() string {
	var b strings.Builder
	width := m.contentWidth()
	for i := 0; i < m.state.Len(); i++ {
		selected := m.mode == ModeList && i == m.cursor
		b.WriteString(m.renderTodoRow(m.state.At(i), selected, width))
		b.WriteString("\n")
	}
	return m.styles.List.Render(b.String())
}

// renderTodoRow renders a single todo.
// Format: "> [x] Buy milk                 Jan 15  #004"
func (m *Model) renderTodoRow(todo domain.Todo, selected bool, width int) string {
	indicator := " "
	if selected {
		indicator = m.styles.Cursor.Render(">")
	}

	meta := m.styles.Meta.Render(strings.TrimSpace(
		todoview.FormatDate(todo.CreatedAt.Time) + "  " + todoview.FormatID(todo.ID),
	))

	// indicator + check + separators
	prefixWidth := 2 + len(checkboxActive) + 1
	label := todo.Text
	maxTextLen := width - prefixWidth - lipgloss.Width(meta) - 2
	if maxTextLen > len(ellipsis) && runewidth.StringWidth(label) > maxTextLen {
		label = runewidth.Truncate(label, maxTextLen, ellipsis)
	}

	check := m.styles.Check.Render(checkboxActive)
	text := m.styles.Text.Render(label)
	if todo.Completed {
		check = m.styles.CheckDone.Render(checkboxDone)
		text = m.styles.TextDone.Render(label)
	}

	left := indicator + " " + check + " " + text
	gap := width - lipgloss.Width(left) - lipgloss.Width(meta)
	if gap < 2 {
		gap = 2
	}

	row := left + strings.Repeat(" ", gap) + meta
	if selected {
		return m.styles.RowSelected.Render(row)
	}
	return m.styles.Row.Render(row)
}

// viewFooter renders the footer line and the key help.
func (m *Model) viewFooter() string {
	footer := m.styles.Footer.Render(textFooter)
	if !m.showHelp {
		return footer
	}
	return footer + "\n" + m.styles.HelpContainer.Render(m.help.View(m.keys))
}

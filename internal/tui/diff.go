package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/logging/events"
	"quill/internal/tui/state"
	"quill/internal/tui/widgets/diff"
)

// diffOverlay shows the file on disk against the buffer.
type diffOverlay struct {
	title  string
	before string
	after  string
}

func (m *model) diffLines() []string {
	out := diff.NewDiffView().View(m.ui, m.diff.before, m.diff.after)
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func (m *model) updateDiff(k tea.KeyMsg) tea.Cmd {
	page := m.ui.Height - chrome - 1
	max := len(m.diffLines()) - page
	switch k.String() {
	case "esc", "q", "alt+d":
		m.diff = nil
		m.ui.ScrollV = 0
		events.UI.Overlay("diff", false)
		return m.editor.Focus()
	case "v":
		m.ui = state.ToggleView(m.ui)
		m.ui = state.Resize(m.ui, m.ui.Width, m.ui.Height)
	case "w":
		m.ui = state.ToggleWrap(m.ui)
	case "up", "k":
		m.ui = state.ScrollUp(m.ui, false)
	case "down", "j":
		m.ui = state.ScrollDown(m.ui, false, max)
	case "pgup":
		m.ui = state.ScrollUp(m.ui, true)
	case "pgdown", " ":
		m.ui = state.ScrollDown(m.ui, true, max)
	case "home", "g":
		m.ui.ScrollV = 0
	}
	return nil
}

func (m *model) diffView(height int) string {
	lines := m.diffLines()
	head := titleStyle.Render("Review changes: "+m.diff.title) + faintStyle.Render("   v: layout  w: wrap  esc: close")
	rows := height - 1
	start := m.ui.ScrollV
	if start > len(lines) {
		start = len(lines)
	}
	end := len(lines)
	if rows > 0 && start+rows < end {
		end = start + rows
	}
	return head + "\n" + strings.Join(lines[start:end], "\n")
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"quill/internal/logging/events"
	"quill/internal/tui/util"
)

// menuBar tracks the open drop-down and its highlighted item.
type menuBar struct {
	open bool
	menu int
	item int
}

func (b *menuBar) show() {
	b.open = true
	b.menu = 0
	b.item = 0
}

func (b *menuBar) hide() { b.open = false }

var (
	barStyle    = lipgloss.NewStyle().Bold(true)
	barSelStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	dropStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
)

func (m *model) updateMenuBar(k tea.KeyMsg) tea.Cmd {
	items := m.menus[m.bar.menu].Items
	switch k.String() {
	case "esc", "f10", "ctrl+c":
		m.bar.hide()
	case "left", "h":
		m.bar.menu = (m.bar.menu + len(m.menus) - 1) % len(m.menus)
		m.bar.item = 0
		events.UI.MenuOpen(m.menus[m.bar.menu].Title)
	case "right", "l", "tab":
		m.bar.menu = (m.bar.menu + 1) % len(m.menus)
		m.bar.item = 0
		events.UI.MenuOpen(m.menus[m.bar.menu].Title)
	case "up", "k":
		if m.bar.item > 0 {
			m.bar.item--
		}
	case "down", "j":
		if m.bar.item < len(items)-1 {
			m.bar.item++
		}
	case "enter", " ":
		it := items[m.bar.item]
		events.UI.MenuSelect(m.menus[m.bar.menu].Title, it.Label)
		m.bar.hide()
		return m.run(it.Intent)
	}
	return nil
}

func (m *model) menuBarView() string {
	parts := make([]string, 0, len(m.menus))
	for i, mn := range m.menus {
		label := " " + mn.Title + " "
		if m.bar.open && i == m.bar.menu {
			parts = append(parts, barSelStyle.Render(label))
			continue
		}
		parts = append(parts, label)
	}
	line := strings.Join(parts, "") + faintStyle.Render("  f10: menu")
	if m.ui.Width > 0 {
		line = truncate.String(line, uint(m.ui.Width))
	}
	return util.ThemeStyle(m.editor.Style()).Inherit(barStyle).Render(line)
}

func (m *model) dropdown() string {
	mn := m.menus[m.bar.menu]
	width := 0
	for _, it := range mn.Items {
		if w := lipgloss.Width(it.Label) + 2 + lipgloss.Width(it.Keys.Help().Key); w > width {
			width = w
		}
	}
	var b strings.Builder
	for i, it := range mn.Items {
		gap := width - lipgloss.Width(it.Label) - lipgloss.Width(it.Keys.Help().Key)
		line := fmt.Sprintf("%s%s%s", it.Label, strings.Repeat(" ", gap), it.Keys.Help().Key)
		if i == m.bar.item {
			line = barSelStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(mn.Items)-1 {
			b.WriteString("\n")
		}
	}
	box := dropStyle.Render(b.String())
	offset := 0
	for i := 0; i < m.bar.menu; i++ {
		offset += lipgloss.Width(m.menus[i].Title) + 2
	}
	pad := strings.Repeat(" ", offset)
	lines := strings.Split(box, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

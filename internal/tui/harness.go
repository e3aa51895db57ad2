package tui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the editor model programmatically for integration tests.
// Commands returned by the model are recorded, not run: cursor blinks and
// directory reads would otherwise block or loop.
type Harness struct {
	model *model
	last  tea.Cmd
}

// NewHarness builds a model from opts.
func NewHarness(opts Options) *Harness {
	return &Harness{model: newModel(opts)}
}

// Send routes a message through the model.
func (h *Harness) Send(msg tea.Msg) {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*model); ok {
		h.model = updated
	}
	h.last = cmd
}

// Type sends s as individual key presses.
func (h *Harness) Type(s string) {
	for _, r := range s {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	return h.model.View()
}

// Quitting reports whether the model asked the program to exit.
func (h *Harness) Quitting() bool { return h.model.quitting }

// Content is the editor buffer.
func (h *Harness) Content() string { return h.model.editor.Content() }

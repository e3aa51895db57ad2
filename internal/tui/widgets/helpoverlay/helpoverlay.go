package helpoverlay

import (
	"fmt"
	"strings"

	"quill/internal/menu"
	"quill/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns the accelerators grouped by menu with the current mode indicated.
func (HelpOverlay) View(s state.UIState, menus []menu.Menu) string {
	mode := "EDIT"
	if s.Mode == state.PREVIEW {
		mode = "PREVIEW"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Mode: %s)\n", mode)
	for _, m := range menus {
		fmt.Fprintf(&b, "\n%s:\n", m.Title)
		for _, it := range m.Items {
			fmt.Fprintf(&b, "  %-8s %s\n", it.Keys.Help().Key, it.Label)
		}
	}
	fmt.Fprintf(&b, "\nMenu bar:\n  %-8s open, ←/→ switch menu, enter select, esc close\n", menu.Bar.Help().Key)
	fmt.Fprintf(&b, "\nReview changes:\n  v unified/side-by-side, w wrap, ↑/↓ PgUp/PgDn scroll, esc close\n")
	return b.String()
}

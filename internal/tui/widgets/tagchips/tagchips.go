package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quill/internal/tui/state"
	"quill/internal/tui/util"
)

// View renders document tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.MODIFIED:
		return "Modified"
	case state.UNTITLED:
		return "Untitled"
	case state.PREVIEWING:
		return "Preview"
	case state.MODE:
		return t.Text
	case state.LINES:
		return fmt.Sprintf("%d lines", t.Value)
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	white := lipgloss.Color("#FFFFFF")
	switch t.Kind {
	case state.MODIFIED:
		return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	case state.UNTITLED:
		return base.Background(p.Danger).Foreground(white)
	case state.PREVIEWING:
		return base.Background(p.Success).Foreground(white)
	case state.MODE:
		return base.Background(p.Primary).Foreground(white)
	case state.LINES:
		return base.Background(p.MutedDark).Foreground(white)
	default:
		return base
	}
}

package statusbar

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/truncate"

	"quill/internal/tui/state"
	"quill/internal/tui/util"
	"quill/internal/tui/widgets/tagchips"
)

// Info is the document side of the status line.
type Info struct {
	Path     string
	Doc      util.Doc
	Theme    string
	FontSize string
	Line     int
	Column   int
	NoColor  bool
}

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes the status line and cuts it to the terminal width.
func (StatusBar) View(s state.UIState, info Info) string {
	name := info.Path
	if !info.Doc.HasFile {
		name = "[untitled]"
	}
	parts := []string{name, tagchips.View(util.ComputeTags(info.Doc), info.NoColor)}
	parts = append(parts, "Ln "+strconv.Itoa(info.Line+1)+", Col "+strconv.Itoa(info.Column+1))
	if info.Theme != "" {
		parts = append(parts, info.Theme)
	}
	if info.FontSize != "" {
		parts = append(parts, info.FontSize)
	}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	line := strings.Join(parts, "  ")
	if s.Width > 0 {
		line = truncate.StringWithTail(line, uint(s.Width), "…")
	}
	return line
}

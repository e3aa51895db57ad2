// Package highlight renders buffer content with chroma for the preview pane.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/alecthomas/chroma/v2/styles"

	"quill/internal/modes"
)

const formatter = "terminal256"

// Render highlights src with the lexer for mode and the named chroma style.
// Unknown styles fall back to chroma's default.
func Render(src string, mode modes.Mode, style string) (string, error) {
	var b strings.Builder
	if err := quick.Highlight(&b, src, modes.Lexer(mode), formatter, style); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Styles lists the chroma style ids.
func Styles() []string {
	return styles.Names()
}

// HasStyle reports whether chroma registers name.
func HasStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// Colors returns the background and foreground of the style's background
// entry as #rrggbb, or "" when unset.
func Colors(style string) (bg, fg string) {
	entry := styles.Get(style).Get(chroma.Background)
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}
	return bg, fg
}

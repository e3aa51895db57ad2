package util

import (
	"strings"

	"quill/internal/tui/state"
)

// Doc is the document summary the status chips are computed from.
type Doc struct {
	HasFile bool
	Dirty   bool
	Preview bool
	Mode    string
	Lines   int
}

// ComputeTags returns the chips for d in a stable order:
//
//	Modified, Untitled, Preview, Mode, Lines
//
// Mode and Lines are always present.
func ComputeTags(d Doc) []state.Tag {
	tags := make([]state.Tag, 0, 5)
	if d.Dirty {
		tags = append(tags, state.Tag{Kind: state.MODIFIED})
	}
	if !d.HasFile {
		tags = append(tags, state.Tag{Kind: state.UNTITLED})
	}
	if d.Preview {
		tags = append(tags, state.Tag{Kind: state.PREVIEWING})
	}
	mode := strings.TrimSpace(d.Mode)
	if mode == "" {
		mode = "text"
	}
	tags = append(tags, state.Tag{Kind: state.MODE, Text: mode})
	lines := d.Lines
	if lines < 1 {
		lines = 1
	}
	tags = append(tags, state.Tag{Kind: state.LINES, Value: lines})
	return tags
}

package util

import (
	"testing"

	"quill/internal/tui/state"
)

func findKind(tags []state.Tag, k state.TagKind) (idx int, ok bool) {
	for i, t := range tags {
		if t.Kind == k {
			return i, true
		}
	}
	return -1, false
}

func TestUntitledAndModified(t *testing.T) {
	tags := ComputeTags(Doc{Dirty: true, Mode: "python", Lines: 3})
	if _, ok := findKind(tags, state.MODIFIED); !ok {
		t.Fatalf("expected MODIFIED tag present")
	}
	if _, ok := findKind(tags, state.UNTITLED); !ok {
		t.Fatalf("expected UNTITLED tag for a buffer without file")
	}

	tags = ComputeTags(Doc{HasFile: true, Mode: "python", Lines: 3})
	if _, ok := findKind(tags, state.MODIFIED); ok {
		t.Fatalf("did not expect MODIFIED on a clean buffer")
	}
	if _, ok := findKind(tags, state.UNTITLED); ok {
		t.Fatalf("did not expect UNTITLED with a file")
	}
}

func TestModeAndLinesAlwaysPresent(t *testing.T) {
	tags := ComputeTags(Doc{})
	idx, ok := findKind(tags, state.MODE)
	if !ok || tags[idx].Text != "text" {
		t.Fatalf("expected MODE text by default")
	}
	idx, ok = findKind(tags, state.LINES)
	if !ok || tags[idx].Value != 1 {
		t.Fatalf("expected LINES with at least 1")
	}
}

func TestStableOrder(t *testing.T) {
	tags := ComputeTags(Doc{Dirty: true, Preview: true, Mode: "css", Lines: 10})
	order := []state.TagKind{state.MODIFIED, state.UNTITLED, state.PREVIEWING, state.MODE, state.LINES}
	if len(tags) != len(order) {
		t.Fatalf("expected %d tags, got %d", len(order), len(tags))
	}
	for i, k := range order {
		if tags[i].Kind != k {
			t.Fatalf("tag %d is %v, want %v", i, tags[i].Kind, k)
		}
	}
}

package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/config"
	"quill/internal/dispatch"
	"quill/internal/modes"
)

type memClipboard struct{ text string }

func (c *memClipboard) ReadAll() (string, error)   { return c.text, nil }
func (c *memClipboard) WriteAll(text string) error { c.text = text; return nil }

func newTestHarness(t *testing.T, file string) (*Harness, *config.Store) {
	t.Helper()
	dir := t.TempDir()
	store := config.NewStore(filepath.Join(dir, "settings.json"))
	if err := store.Init(false); err != nil {
		t.Fatalf("init settings: %v", err)
	}
	settings, err := store.Load()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	h := NewHarness(Options{
		Settings:  store,
		Initial:   settings,
		File:      file,
		Clipboard: &memClipboard{},
		StartDir:  dir,
		NoColor:   true,
	})
	h.Send(tea.WindowSizeMsg{Width: 160, Height: 40})
	return h, store
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func TestSaveUntitledThroughDialog(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Type("hello")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if _, ok := h.model.dialog.(*pathDialog); !ok {
		t.Fatalf("expected save dialog, got %T", h.model.dialog)
	}
	target := filepath.Join(t.TempDir(), "a.py")
	h.Type(target)
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	data, err := os.ReadFile(target)
	if err != nil || string(data) != "hello" {
		t.Fatalf("expected saved content, got %q err=%v", data, err)
	}
	if h.model.dialog != nil {
		t.Fatalf("expected dialog closed")
	}
	if h.model.editor.Mode() != modes.Python || h.model.editor.Dirty() {
		t.Fatalf("expected clean python buffer")
	}
	view := h.View()
	if !strings.Contains(view, target) || !strings.Contains(view, "python") {
		t.Fatalf("expected path and mode in status, view =\n%s", view)
	}
}

func TestCancelSaveKeepsUntitled(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Type("x")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.model.dialog != nil {
		t.Fatalf("expected dialog closed")
	}
	if h.model.dispatcher.Session().HasFile() {
		t.Fatalf("expected no file after cancel")
	}
	if h.model.errMsg != "" {
		t.Fatalf("cancel must be silent, got %q", h.model.errMsg)
	}
	if !strings.Contains(h.View(), "[untitled]") {
		t.Fatalf("expected untitled status")
	}
}

func TestOpenFileFromOptions(t *testing.T) {
	path := writeFile(t, "main.java", "class A {}")
	h, _ := newTestHarness(t, path)
	if h.Content() != "class A {}" {
		t.Fatalf("unexpected content %q", h.Content())
	}
	if h.model.editor.Mode() != modes.Java {
		t.Fatalf("expected java mode, got %q", h.model.editor.Mode())
	}
}

func TestSaveWriteFailureShowsErrorBox(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	h.Type(filepath.Join(t.TempDir(), "missing", "a.txt"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(h.View(), "Could not write") {
		t.Fatalf("expected error box, view =\n%s", h.View())
	}
	if h.model.dispatcher.Session().HasFile() {
		t.Fatalf("session must stay untitled")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	if h.model.errMsg != "" {
		t.Fatalf("expected any key to dismiss the error")
	}
	if h.Content() != "" {
		t.Fatalf("dismissing key must not reach the buffer, got %q", h.Content())
	}
}

func TestQuitNeedsConfirmationWhenDirty(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Type("unsaved")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if h.Quitting() {
		t.Fatalf("expected first ctrl+q to warn")
	}
	if !strings.Contains(h.View(), "Unsaved changes") {
		t.Fatalf("expected unsaved warning")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if !h.Quitting() {
		t.Fatalf("expected second ctrl+q to quit")
	}
}

func TestQuitCleanBufferImmediately(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if !h.Quitting() {
		t.Fatalf("expected clean buffer to quit at once")
	}
}

func TestReplaceChainsPrompts(t *testing.T) {
	path := writeFile(t, "a.txt", "foo and foo")
	h, _ := newTestHarness(t, path)
	h.Send(alt('r'))
	h.Type("foo")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.model.pending == nil || h.model.pending.Intent != dispatch.Replace {
		t.Fatalf("expected follow-up replace prompt")
	}
	h.Type("bar")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Content() != "bar and bar" {
		t.Fatalf("unexpected content %q", h.Content())
	}
	if !strings.Contains(h.View(), "Replaced 2") {
		t.Fatalf("expected replacement notice")
	}
}

func TestThemeChoiceFiltersAndPersists(t *testing.T) {
	h, store := newTestHarness(t, "")
	h.Send(alt('t'))
	d, ok := h.model.dialog.(*choiceDialog)
	if !ok {
		t.Fatalf("expected choice dialog, got %T", h.model.dialog)
	}
	h.Type("nor")
	if len(d.visible) != 1 || d.visible[0] != "nord" {
		t.Fatalf("expected fuzzy filter to leave nord, got %v", d.visible)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.SelectedTheme != "nord" || got.FontSize != "14px" {
		t.Fatalf("unexpected settings %+v", got)
	}
	if h.model.editor.Theme() != "nord" {
		t.Fatalf("expected editor theme nord")
	}
}

func TestFontSizePrompt(t *testing.T) {
	h, store := newTestHarness(t, "")
	h.Send(alt('z'))
	for i := 0; i < 2; i++ {
		h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	h.Type("18")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.FontSize != "18px" {
		t.Fatalf("expected 18px, got %q", got.FontSize)
	}
	if !strings.Contains(h.View(), "18px") {
		t.Fatalf("expected font size in status")
	}
}

func TestMenuBarSelectsItem(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Send(tea.KeyMsg{Type: tea.KeyF10})
	if !h.model.bar.open {
		t.Fatalf("expected menu bar open")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(h.View(), "Go to Line") {
		t.Fatalf("expected Edit drop-down, view =\n%s", h.View())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.model.bar.open {
		t.Fatalf("expected menu bar closed after select")
	}
	if h.model.pending == nil || h.model.pending.Intent != dispatch.Find {
		t.Fatalf("expected find prompt")
	}
}

func TestReviewChangesOverlay(t *testing.T) {
	path := writeFile(t, "a.txt", "one\ntwo")
	h, _ := newTestHarness(t, path)
	h.Type("zero ")
	h.Send(alt('d'))
	if h.model.diff == nil {
		t.Fatalf("expected diff overlay")
	}
	view := h.View()
	if !strings.Contains(view, "Review changes") || !strings.Contains(view, "+ zero one") {
		t.Fatalf("unexpected diff view:\n%s", view)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	if !strings.Contains(h.View(), "BUFFER") {
		t.Fatalf("expected side-by-side header")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.model.diff != nil {
		t.Fatalf("expected overlay closed")
	}
}

func TestHelpOverlayAndPreview(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Send(tea.KeyMsg{Type: tea.KeyF1})
	if !strings.Contains(h.View(), "Help (Mode: EDIT)") {
		t.Fatalf("expected help overlay")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	h.Send(alt('p'))
	if !h.model.editor.Previewing() || !strings.Contains(h.View(), "Preview") {
		t.Fatalf("expected preview mode")
	}
	h.Type("q")
	if h.Content() != "" {
		t.Fatalf("preview must not edit, got %q", h.Content())
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func newInitializedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "quill", "settings.json"))
	if err := s.Init(false); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s
}

func TestLoadMissingFileFails(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := s.Load(); err == nil {
		t.Fatalf("expected error for missing settings")
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path).Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadRejectsUndefinedTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"selectedTheme":"ghost","fontSize":"14px","theme":{"monokai":"monokai"}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewStore(path).Load()
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestInitWritesDefaults(t *testing.T) {
	s := newInitializedStore(t)
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, Defaults()) {
		t.Fatalf("expected defaults, got %#v", got)
	}
	data, _ := os.ReadFile(s.Path())
	if !strings.Contains(string(data), "\n  \"selectedTheme\"") {
		t.Fatalf("expected two-space indented JSON, got %s", data)
	}
}

func TestInitKeepsExistingUnlessForced(t *testing.T) {
	s := newInitializedStore(t)
	if _, err := s.Update(FieldFontSize, "20px"); err != nil {
		t.Fatal(err)
	}
	if err := s.Init(false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := s.Init(true); err != nil {
		t.Fatalf("forced init: %v", err)
	}
	got, _ := s.Load()
	if got.FontSize != Defaults().FontSize {
		t.Fatalf("expected defaults after forced init, got %q", got.FontSize)
	}
}

func TestUpdateFontSizeKeepsOtherFields(t *testing.T) {
	s := newInitializedStore(t)
	before, _ := s.Load()

	if _, err := s.Update(FieldFontSize, "18px"); err != nil {
		t.Fatalf("update: %v", err)
	}
	after, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if after.FontSize != "18px" {
		t.Fatalf("expected fontSize 18px, got %q", after.FontSize)
	}
	if after.SelectedTheme != before.SelectedTheme || !reflect.DeepEqual(after.Theme, before.Theme) {
		t.Fatalf("other fields changed: %#v", after)
	}
}

func TestUpdateSelectedThemeValidates(t *testing.T) {
	s := newInitializedStore(t)
	if _, err := s.Update(FieldSelectedTheme, "dracula"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := s.Update(FieldSelectedTheme, "missing"); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	got, _ := s.Load()
	if got.SelectedTheme != "dracula" || got.ThemeStyle() != "dracula" {
		t.Fatalf("rejected update must not be written, got %#v", got)
	}
}

func TestUpdateThemeEntry(t *testing.T) {
	s := newInitializedStore(t)
	got, err := s.Update("theme.paper", "github")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Theme["paper"] != "github" {
		t.Fatalf("expected paper theme entry, got %#v", got.Theme)
	}
	if _, err := s.Update("theme.paper", ""); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	loaded, _ := s.Load()
	if _, ok := loaded.Theme["paper"]; ok {
		t.Fatalf("expected paper entry removed")
	}
}

func TestUpdateUnknownField(t *testing.T) {
	s := newInitializedStore(t)
	if _, err := s.Update("colour", "red"); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := s.Update("theme.", "x"); err == nil {
		t.Fatalf("expected error for empty theme name")
	}
}

func TestThemeNamesSorted(t *testing.T) {
	names := Defaults().ThemeNames()
	want := []string{"dracula", "github", "monokai", "nord", "solarized-dark"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestUpdateKeepsFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	s := newInitializedStore(t)
	fi, err := os.Stat(s.path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o644 {
		t.Fatalf("expected new settings file to be 0644, got %v", fi.Mode().Perm())
	}
	if err := os.Chmod(s.path, 0o640); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if _, err := s.Update(FieldFontSize, "16px"); err != nil {
		t.Fatalf("update: %v", err)
	}
	fi, err = os.Stat(s.path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o640 {
		t.Fatalf("expected mode 0640 kept, got %v", fi.Mode().Perm())
	}
}

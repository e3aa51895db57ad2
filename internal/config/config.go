package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"quill/internal/logging/events"
)

// ErrInvalidSettings marks a settings record that parsed but cannot be used.
var ErrInvalidSettings = errors.New("invalid settings")

// Field names accepted by Update. Theme entries use "theme.<name>".
const (
	FieldSelectedTheme = "selectedTheme"
	FieldFontSize      = "fontSize"
	themeFieldPrefix   = "theme."
)

// Settings is the persisted editor configuration:
// {"selectedTheme": "monokai", "fontSize": "14px", "theme": {"monokai": "monokai"}}
// Theme maps a display name to a chroma style id.
type Settings struct {
	SelectedTheme string            `json:"selectedTheme"`
	FontSize      string            `json:"fontSize"`
	Theme         map[string]string `json:"theme"`
}

// Defaults returns the record written by Init.
func Defaults() Settings {
	return Settings{
		SelectedTheme: "monokai",
		FontSize:      "14px",
		Theme: map[string]string{
			"monokai":        "monokai",
			"dracula":        "dracula",
			"github":         "github",
			"nord":           "nord",
			"solarized-dark": "solarized-dark",
		},
	}
}

// ThemeStyle returns the chroma style id of the selected theme.
func (s Settings) ThemeStyle() string {
	return s.Theme[s.SelectedTheme]
}

// ThemeNames returns the configured theme names sorted.
func (s Settings) ThemeNames() []string {
	names := make([]string, 0, len(s.Theme))
	for k := range s.Theme {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Validate checks the invariants Load and Update rely on.
func Validate(s Settings) error {
	if strings.TrimSpace(s.SelectedTheme) == "" {
		return fmt.Errorf("%w: selectedTheme is empty", ErrInvalidSettings)
	}
	if strings.TrimSpace(s.FontSize) == "" {
		return fmt.Errorf("%w: fontSize is empty", ErrInvalidSettings)
	}
	if _, ok := s.Theme[s.SelectedTheme]; !ok {
		return fmt.Errorf("%w: theme %q is not defined", ErrInvalidSettings, s.SelectedTheme)
	}
	return nil
}

func clone(s Settings) Settings {
	out := s
	out.Theme = make(map[string]string, len(s.Theme))
	for k, v := range s.Theme {
		out.Theme[k] = v
	}
	return out
}

// Store reads and writes the settings file. Updates are serialized by a
// mutex; the file itself is not locked against other processes.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the settings file. A missing or malformed file is an error; the
// editor has no built-in fallback.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var out Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return Settings{}, fmt.Errorf("parse settings JSON: %w", err)
	}
	if err := Validate(out); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", s.path, err)
	}
	events.Settings.Loaded(s.path)
	return out, nil
}

// Update reads the current record, sets one field and writes the whole
// record back. The returned record is what was written.
func (s *Store) Update(field, value string) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.load()
	if err != nil {
		return Settings{}, err
	}
	next := clone(cur)
	switch {
	case field == FieldSelectedTheme:
		next.SelectedTheme = value
	case field == FieldFontSize:
		next.FontSize = value
	case strings.HasPrefix(field, themeFieldPrefix) && len(field) > len(themeFieldPrefix):
		name := strings.TrimPrefix(field, themeFieldPrefix)
		if value == "" {
			delete(next.Theme, name)
		} else {
			next.Theme[name] = value
		}
	default:
		return Settings{}, fmt.Errorf("unknown settings field %q", field)
	}
	if err := Validate(next); err != nil {
		return Settings{}, err
	}
	if err := s.save(next); err != nil {
		return Settings{}, err
	}
	events.Settings.Updated(field, value)
	return next, nil
}

// Init writes the default record. An existing file is kept unless force is set.
func (s *Store) Init(force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !force {
		if _, err := os.Stat(s.path); err == nil {
			return fmt.Errorf("%s already exists", s.path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := s.save(Defaults()); err != nil {
		return err
	}
	events.Settings.Initialized(s.path)
	return nil
}

// save writes through a temp file in the same directory and renames it over
// the target.
func (s *Store) save(v Settings) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.json")
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	defer os.Remove(tmp.Name())
	// CreateTemp makes 0600 files; keep the mode of the file being replaced.
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(s.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// DefaultPath is <user config dir>/quill/settings.json, or settings.json in
// the working directory when the config dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "settings.json"
	}
	return filepath.Join(dir, "quill", "settings.json")
}

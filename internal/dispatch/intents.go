package dispatch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"quill/internal/config"
	"quill/internal/document"
	"quill/internal/logging/events"
	"quill/internal/modes"
)

// Intent names a command reachable from the menus.
type Intent string

const (
	NewFile       Intent = "new"
	Open          Intent = "open"
	Save          Intent = "save"
	SaveAs        Intent = "saveAs"
	Reload        Intent = "reload"
	Close         Intent = "close"
	Find          Intent = "find"
	Replace       Intent = "replace"
	GotoLine      Intent = "gotoLine"
	SelectAll     Intent = "selectAll"
	Paste         Intent = "paste"
	Undo          Intent = "undo"
	Redo          Intent = "redo"
	RemoveLine    Intent = "removeLine"
	ToggleComment Intent = "toggleComment"
	Theme         Intent = "theme"
	FontSize      Intent = "fontSize"
	Diff          Intent = "diff"
)

const (
	minFontSize = 6
	maxFontSize = 72
)

var errNoSettings = errors.New("settings store unavailable")

func defaultTable() map[Intent]Handler {
	return map[Intent]Handler{
		NewFile:       newFile,
		Open:          open,
		Save:          save,
		SaveAs:        saveAs,
		Reload:        reload,
		Close:         closeFile,
		Find:          find,
		Replace:       replace,
		GotoLine:      gotoLine,
		SelectAll:     selectAll,
		Paste:         paste,
		Undo:          undo,
		Redo:          redo,
		RemoveLine:    removeLine,
		ToggleComment: toggleComment,
		Theme:         theme,
		FontSize:      fontSize,
		Diff:          diff,
	}
}

/* ---------- file ---------- */

func newFile(env Env, session *document.Session) (*Request, error) {
	return &Request{Kind: SaveFile, Title: "New File", next: createPicked}, nil
}

func createPicked(env Env, session *document.Session, path string) (*Request, error) {
	if err := env.FS.WriteFile(path, []byte{}); err != nil {
		return nil, &FileError{Op: "create", Path: path, Err: err}
	}
	session.RecordOpened(path)
	env.Surface.SetContent("")
	mode, known := modes.FromPath(path)
	applyMode(env, path, mode, known)
	env.Surface.MarkClean()
	events.Document.Opened(path, string(mode))
	return nil, nil
}

func open(env Env, session *document.Session) (*Request, error) {
	return openRequest(), nil
}

func openRequest() *Request {
	return &Request{Kind: OpenFile, Intent: Open, Title: "Open File", next: openPicked}
}

func openPicked(env Env, session *document.Session, path string) (*Request, error) {
	data, err := env.FS.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	mode, known := modes.FromPath(path)
	session.RecordOpened(path)
	env.Surface.SetContent(string(data))
	applyMode(env, path, mode, known)
	env.Surface.MarkClean()
	events.Document.Opened(path, string(mode))
	return nil, nil
}

func save(env Env, session *document.Session) (*Request, error) {
	content := env.Surface.Content()
	if path, ok := session.CurrentTarget(); ok {
		return nil, writeContent(env, path, content)
	}
	return saveRequest("Save File", "", content), nil
}

func saveAs(env Env, session *document.Session) (*Request, error) {
	initial, _ := session.CurrentTarget()
	return saveRequest("Save As", initial, env.Surface.Content()), nil
}

// saveRequest captures content at dispatch time; the dialog result only
// decides where it goes.
func saveRequest(title, initial, content string) *Request {
	return &Request{
		Kind:    SaveFile,
		Title:   title,
		Initial: initial,
		next: func(env Env, session *document.Session, path string) (*Request, error) {
			if err := writeContent(env, path, content); err != nil {
				return nil, err
			}
			session.RecordOpened(path)
			mode, known := modes.FromPath(path)
			applyMode(env, path, mode, known)
			return nil, nil
		},
	}
}

func writeContent(env Env, path, content string) error {
	if err := env.FS.WriteFile(path, []byte(content)); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	env.Surface.MarkClean()
	events.Document.Saved(path, len(content))
	notify(env, "Saved "+path)
	return nil
}

func reload(env Env, session *document.Session) (*Request, error) {
	path, ok := session.CurrentTarget()
	if !ok {
		notify(env, "No file to reload")
		return nil, nil
	}
	data, err := env.FS.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	env.Surface.SetContent(string(data))
	env.Surface.MarkClean()
	notify(env, "Reloaded "+path)
	return nil, nil
}

func closeFile(env Env, session *document.Session) (*Request, error) {
	env.Surface.SetContent("")
	env.Surface.SetMode(modes.Text)
	env.Surface.MarkClean()
	session.RecordClosed()
	events.Document.Closed()
	return nil, nil
}

func applyMode(env Env, path string, mode modes.Mode, known bool) {
	env.Surface.SetMode(mode)
	if !known {
		events.Document.UnknownExtension(path)
		notify(env, fmt.Sprintf("%s: file extension not recognized, using plain text mode", filepath.Base(path)))
	}
}

/* ---------- edit ---------- */

func find(env Env, session *document.Session) (*Request, error) {
	return &Request{
		Kind:  Prompt,
		Title: "Find",
		next: func(env Env, _ *document.Session, pattern string) (*Request, error) {
			if pattern == "" {
				return nil, nil
			}
			if !env.Surface.Find(pattern) {
				notify(env, fmt.Sprintf("No match for %q", pattern))
			}
			return nil, nil
		},
	}, nil
}

func replace(env Env, session *document.Session) (*Request, error) {
	return &Request{
		Kind:  Prompt,
		Title: "Find",
		next: func(env Env, _ *document.Session, pattern string) (*Request, error) {
			if pattern == "" {
				return nil, nil
			}
			return &Request{
				Kind:  Prompt,
				Title: fmt.Sprintf("Replace %q with", pattern),
				next: func(env Env, _ *document.Session, replacement string) (*Request, error) {
					n := env.Surface.Replace(pattern, replacement)
					notify(env, fmt.Sprintf("Replaced %d occurrence(s)", n))
					return nil, nil
				},
			}, nil
		},
	}, nil
}

func gotoLine(env Env, session *document.Session) (*Request, error) {
	return &Request{
		Kind:  Prompt,
		Title: "Go to line",
		next: func(env Env, _ *document.Session, value string) (*Request, error) {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid line number %q", value)
			}
			env.Surface.GotoLine(n)
			return nil, nil
		},
	}, nil
}

func selectAll(env Env, session *document.Session) (*Request, error) {
	if err := env.Surface.SelectAll(); err != nil {
		return nil, fmt.Errorf("copy to clipboard: %w", err)
	}
	notify(env, "Copied buffer to clipboard")
	return nil, nil
}

func paste(env Env, session *document.Session) (*Request, error) {
	if err := env.Surface.Paste(); err != nil {
		return nil, fmt.Errorf("paste from clipboard: %w", err)
	}
	return nil, nil
}

func undo(env Env, session *document.Session) (*Request, error) {
	if !env.Surface.Undo() {
		notify(env, "Nothing to undo")
	}
	return nil, nil
}

func redo(env Env, session *document.Session) (*Request, error) {
	if !env.Surface.Redo() {
		notify(env, "Nothing to redo")
	}
	return nil, nil
}

func removeLine(env Env, session *document.Session) (*Request, error) {
	env.Surface.RemoveLine()
	return nil, nil
}

func toggleComment(env Env, session *document.Session) (*Request, error) {
	mode := env.Surface.Mode()
	prefix := modes.CommentPrefix(mode)
	if prefix == "" {
		notify(env, fmt.Sprintf("No line comments in %s mode", mode))
		return nil, nil
	}
	env.Surface.ToggleComment(prefix)
	return nil, nil
}

/* ---------- settings ---------- */

func theme(env Env, session *document.Session) (*Request, error) {
	if env.Settings == nil {
		return nil, errNoSettings
	}
	cur, err := env.Settings.Load()
	if err != nil {
		return nil, err
	}
	return &Request{
		Kind:    Choice,
		Title:   "Theme",
		Initial: cur.SelectedTheme,
		Options: cur.ThemeNames(),
		next: func(env Env, _ *document.Session, name string) (*Request, error) {
			if _, ok := cur.Theme[name]; !ok {
				return nil, fmt.Errorf("unknown theme %q", name)
			}
			updated, err := env.Settings.Update(config.FieldSelectedTheme, name)
			if err != nil {
				return nil, err
			}
			env.Surface.SetTheme(name, updated.ThemeStyle())
			notify(env, "Theme: "+name)
			return nil, nil
		},
	}, nil
}

func fontSize(env Env, session *document.Session) (*Request, error) {
	if env.Settings == nil {
		return nil, errNoSettings
	}
	cur, err := env.Settings.Load()
	if err != nil {
		return nil, err
	}
	return &Request{
		Kind:    Prompt,
		Title:   "Font size (px)",
		Initial: strings.TrimSuffix(cur.FontSize, "px"),
		next: func(env Env, _ *document.Session, value string) (*Request, error) {
			size, err := NormalizeFontSize(value)
			if err != nil {
				return nil, err
			}
			if _, err := env.Settings.Update(config.FieldFontSize, size); err != nil {
				return nil, err
			}
			env.Surface.SetFontSize(size)
			notify(env, "Font size: "+size)
			return nil, nil
		},
	}, nil
}

// NormalizeFontSize turns "18" or "18px" into "18px".
func NormalizeFontSize(value string) (string, error) {
	v := strings.TrimSuffix(strings.TrimSpace(value), "px")
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return "", fmt.Errorf("invalid font size %q", value)
	}
	if n < minFontSize || n > maxFontSize {
		return "", fmt.Errorf("font size %d out of range %d-%d", n, minFontSize, maxFontSize)
	}
	return fmt.Sprintf("%dpx", n), nil
}

/* ---------- view ---------- */

func diff(env Env, session *document.Session) (*Request, error) {
	path, ok := session.CurrentTarget()
	if !ok {
		notify(env, "No file on disk to compare against")
		return nil, nil
	}
	data, err := env.FS.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	if env.Presenter != nil {
		env.Presenter.ShowDiff(path, string(data), env.Surface.Content())
	}
	return nil, nil
}

func notify(env Env, msg string) {
	if env.Presenter != nil {
		env.Presenter.Notify(msg)
	}
}

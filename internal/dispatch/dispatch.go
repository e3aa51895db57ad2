package dispatch

import (
	"fmt"

	"quill/internal/config"
	"quill/internal/document"
	"quill/internal/logging/events"
	"quill/internal/modes"
)

// Surface is the editing widget the dispatcher drives.
type Surface interface {
	SetContent(text string)
	Content() string
	SetMode(m modes.Mode)
	Mode() modes.Mode
	// Find moves the cursor to the next match of pattern and reports whether
	// one was found.
	Find(pattern string) bool
	// Replace substitutes every match of pattern and returns the count.
	Replace(pattern, replacement string) int
	// GotoLine moves to the 1-based line n, clamped to the buffer.
	GotoLine(n int)
	SelectAll() error
	Paste() error
	Undo() bool
	Redo() bool
	RemoveLine()
	ToggleComment(prefix string)
	SetTheme(name, style string)
	SetFontSize(size string)
	// MarkClean records the current content as saved.
	MarkClean()
}

// Presenter shows transient information that is not part of the buffer.
type Presenter interface {
	Notify(msg string)
	ShowDiff(title, before, after string)
}

// SettingsStore is the subset of config.Store the handlers use.
type SettingsStore interface {
	Load() (config.Settings, error)
	Update(field, value string) (config.Settings, error)
}

// Env bundles the collaborators a handler may touch.
type Env struct {
	FS        FileSystem
	Surface   Surface
	Presenter Presenter
	Settings  SettingsStore
}

// Handler runs one intent against the session. A non-nil request suspends
// the command until the caller resumes it with a dialog result.
type Handler func(env Env, session *document.Session) (*Request, error)

// Continuation resumes a suspended command with a confirmed value.
type Continuation func(env Env, session *document.Session, value string) (*Request, error)

// RequestKind says which dialog a request needs.
type RequestKind int

const (
	OpenFile RequestKind = iota
	SaveFile
	Prompt
	Choice
)

func (k RequestKind) String() string {
	switch k {
	case OpenFile:
		return "open-file"
	case SaveFile:
		return "save-file"
	case Prompt:
		return "prompt"
	case Choice:
		return "choice"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Request asks the shell for a dialog. Initial pre-fills the input; Options
// lists the choices of a Choice request.
type Request struct {
	Kind    RequestKind
	Intent  Intent
	Title   string
	Initial string
	Options []string

	next Continuation
}

// Result is the outcome of a dialog.
type Result struct {
	Canceled bool
	Value    string
}

func Canceled() Result              { return Result{Canceled: true} }
func Confirmed(value string) Result { return Result{Value: value} }

// Dispatcher owns the document session and routes intents through the
// dispatch table.
type Dispatcher struct {
	env     Env
	session *document.Session
	table   map[Intent]Handler
}

// New builds a dispatcher with a fresh session.
func New(env Env) *Dispatcher {
	if env.FS == nil {
		env.FS = OSFileSystem{}
	}
	return &Dispatcher{
		env:     env,
		session: document.NewSession(),
		table:   defaultTable(),
	}
}

// Session exposes the session for display. Callers must not mutate it.
func (d *Dispatcher) Session() *document.Session { return d.session }

// Handles reports whether intent has a handler.
func (d *Dispatcher) Handles(intent Intent) bool {
	_, ok := d.table[intent]
	return ok
}

// Dispatch runs the handler for intent.
func (d *Dispatcher) Dispatch(intent Intent) (*Request, error) {
	h, ok := d.table[intent]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, intent)
	}
	events.Command.Dispatch(string(intent))
	req, err := h(d.env, d.session)
	return d.settle(intent, req, err)
}

// Resume continues req with the dialog result. Cancellation ends the command
// without touching the session.
func (d *Dispatcher) Resume(req *Request, res Result) (*Request, error) {
	if req == nil {
		return nil, nil
	}
	if res.Canceled {
		events.Command.Cancel(string(req.Intent))
		return nil, nil
	}
	if req.next == nil {
		return nil, nil
	}
	events.Command.Resume(string(req.Intent))
	next, err := req.next(d.env, d.session, res.Value)
	return d.settle(req.Intent, next, err)
}

// OpenPath opens path as if it had been picked in the open dialog.
func (d *Dispatcher) OpenPath(path string) error {
	_, err := d.Resume(openRequest(), Confirmed(path))
	return err
}

func (d *Dispatcher) settle(intent Intent, req *Request, err error) (*Request, error) {
	if err != nil {
		events.Command.Error(string(intent), err)
		return nil, err
	}
	if req != nil {
		req.Intent = intent
		events.Command.Request(string(intent), req.Kind.String())
	}
	return req, nil
}

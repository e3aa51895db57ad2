package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	slogmulti "github.com/samber/slog-multi"
)

const defaultLogFile = "quill.log"

var (
	mu      sync.Mutex
	level   = new(slog.LevelVar)
	logPath = defaultLogFile
	stderr  io.Writer
	logger  = slog.New(discardHandler{})
)

// Options controls where log records go.
type Options struct {
	// FilePath receives JSON records. Empty uses quill.log in the working
	// directory.
	FilePath string
	// Trace enables debug level trace events.
	Trace bool
	// Stderr additionally prints errors as text; used by CLI subcommands that
	// do not own the terminal.
	Stderr io.Writer
}

// Configure sets the log destination. Directories are created when missing.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	logPath = defaultLogFile
	if p := strings.TrimSpace(opts.FilePath); p != "" {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		} else {
			logPath = p
		}
	}
	stderr = opts.Stderr
	if opts.Trace {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
	logger = build()
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(slog.LevelInfo)
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	return level.Level() <= slog.LevelDebug
}

// Path returns the active log file path.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

func build() *slog.Logger {
	handlers := []slog.Handler{
		slog.NewJSONHandler(&fileWriter{path: logPath}, &slog.HandlerOptions{Level: level}),
	}
	if stderr != nil {
		handlers = append(handlers, slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// Trace appends a structured entry when tracing is enabled.
func Trace(event string, payload map[string]interface{}) {
	mu.Lock()
	l := logger
	mu.Unlock()
	if payload == nil {
		l.Debug(event)
		return
	}
	l.Debug(event, slog.Any("payload", payload))
}

// Info records a notable event regardless of the trace setting.
func Info(msg string, args ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Info(msg, args...)
}

// Error records err. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Error(err.Error())
}

// fileWriter opens the log file per write so a removed or rotated file is
// recreated on the next record.
type fileWriter struct {
	path string
}

func (w *fileWriter) Write(p []byte) (int, error) {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return len(p), nil
	}
	defer f.Close()
	return f.Write(p)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

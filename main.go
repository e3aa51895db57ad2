// Copyright
// SPDX-License-Identifier: MIT
// quill: single-document terminal text editor with syntax modes and JSON settings
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"quill/internal/config"
	"quill/internal/dispatch"
	"quill/internal/highlight"
	"quill/internal/logging"
	"quill/internal/logging/events"
	"quill/internal/modes"
	"quill/internal/tui"
)

const Version = "0.1.0"

/* ---------- CLI ---------- */

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

func run(args, environ []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "help", "-h", "--help", "-help":
			if len(args) > 1 {
				helpTopic(stdout, args[1])
			} else {
				usage(stdout)
			}
			return 0
		case "version", "--version":
			fmt.Fprintln(stdout, "quill", Version)
			return 0
		case "init":
			return cmdInit(args[1:], environ, stdout, stderr)
		case "get":
			return cmdGet(args[1:], environ, stdout, stderr)
		case "set":
			return cmdSet(args[1:], environ, stdout, stderr)
		case "themes":
			return cmdThemes(args[1:], environ, stdout, stderr)
		}
	}
	return cmdEdit(args, environ, stderr)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `quill `+Version+`
Single-document terminal text editor. Syntax mode follows the file extension
(`+strings.Join(modes.Extensions(), " ")+`); anything else opens as plain text.
USAGE
  quill [options] [file]
  quill <command> [options]
COMMANDS
  init         Write the default settings file
  get          Print the settings, or one field (quill get fontSize)
  set          Change one settings field (quill set selectedTheme nord)
  themes       List configured themes (quill themes chroma: all chroma styles)
  help         Show help (try: quill help keys)
  version      Print version
OPTIONS
  -settings PATH     Settings JSON (default: $QUILL_SETTINGS or the user config dir)
  -log-file PATH     Log file (default: $QUILL_LOG_FILE or quill.log)
  -trace             Write trace events to the log ($QUILL_TRACE)
  -no-alt-screen     Render inline ($QUILL_NO_ALT_SCREEN)
  -line-numbers      Show line numbers (default: true)
NOTES
  • Press f10 for the menu bar and f1 for the key list.
  • ctrl+q with unsaved changes asks for a second ctrl+q.`)
}

func helpTopic(w io.Writer, name string) {
	switch name {
	case "keys":
		fmt.Fprintln(w, `FILE
  ctrl+n new   ctrl+o open   ctrl+s save   alt+s save as   ctrl+r reload   ctrl+w close   ctrl+q exit
EDIT
  ctrl+f find   alt+r replace   ctrl+l go to line   ctrl+a copy all   ctrl+v paste
  ctrl+z undo   ctrl+y redo     ctrl+d remove line  ctrl+/ toggle comment
SETTINGS
  alt+t theme   alt+z font size
VIEW
  alt+p highlighted preview   alt+d review changes against disk   f1 help   f10 menu bar`)
	case "settings", "set", "get":
		fmt.Fprintln(w, `USAGE
  quill get [field]
  quill set <field> <value>
FIELDS
  selectedTheme     Name of an entry in "theme"
  fontSize          Size with px suffix; a bare number gets "px" appended
  theme.<name>      chroma style for <name>; an empty value removes the entry
FILE
  {"selectedTheme": "monokai", "fontSize": "14px", "theme": {"monokai": "monokai"}}`)
	default:
		usage(w)
	}
}

/* ---------- commands ---------- */

func cmdEdit(args, environ []string, stderr io.Writer) int {
	rt, err := config.LoadArgs(args, environ)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stderr)
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	logging.Configure(logging.Options{FilePath: rt.Logging.FilePath, Trace: rt.Logging.Trace})
	traceStartup(rt)

	store := config.NewStore(rt.SettingsPath)
	settings, err := store.Load()
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\nRun 'quill init' to create %s\n", err, rt.SettingsPath)
		return 1
	}
	cwd, _ := os.Getwd()
	err = tui.Run(tui.Options{
		Settings:    store,
		Initial:     settings,
		File:        rt.File,
		StartDir:    cwd,
		LineNumbers: rt.LineNumbers,
		AltScreen:   rt.AltScreen,
	})
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadCommand parses subcommand flags and points errors at stderr.
func loadCommand(name string, args, environ []string, stderr io.Writer) (config.Command, bool) {
	cmd, err := config.LoadCommandArgs(name, args, environ)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return config.Command{}, false
	}
	logging.Configure(logging.Options{FilePath: cmd.Logging.FilePath, Trace: cmd.Logging.Trace, Stderr: stderr})
	return cmd, true
}

func cmdInit(args, environ []string, stdout, stderr io.Writer) int {
	cmd, ok := loadCommand("init", args, environ, stderr)
	if !ok {
		return 2
	}
	if err := config.NewStore(cmd.SettingsPath).Init(cmd.Force); err != nil {
		logging.Error(err)
		return 1
	}
	fmt.Fprintln(stdout, "Wrote", cmd.SettingsPath)
	return 0
}

func cmdGet(args, environ []string, stdout, stderr io.Writer) int {
	cmd, ok := loadCommand("get", args, environ, stderr)
	if !ok {
		return 2
	}
	s, err := config.NewStore(cmd.SettingsPath).Load()
	if err != nil {
		logging.Error(err)
		return 1
	}
	if len(cmd.Positional) == 0 {
		data, _ := json.MarshalIndent(s, "", "  ")
		fmt.Fprintln(stdout, string(data))
		return 0
	}
	field := cmd.Positional[0]
	switch {
	case field == config.FieldSelectedTheme:
		fmt.Fprintln(stdout, s.SelectedTheme)
	case field == config.FieldFontSize:
		fmt.Fprintln(stdout, s.FontSize)
	case strings.HasPrefix(field, "theme."):
		style, ok := s.Theme[strings.TrimPrefix(field, "theme.")]
		if !ok {
			logging.Error(fmt.Errorf("no theme %q", strings.TrimPrefix(field, "theme.")))
			return 1
		}
		fmt.Fprintln(stdout, style)
	default:
		logging.Error(fmt.Errorf("unknown settings field %q", field))
		return 2
	}
	return 0
}

func cmdSet(args, environ []string, stdout, stderr io.Writer) int {
	cmd, ok := loadCommand("set", args, environ, stderr)
	if !ok {
		return 2
	}
	if len(cmd.Positional) != 2 {
		fmt.Fprintln(stderr, "usage: quill set <field> <value>")
		return 2
	}
	field, value := cmd.Positional[0], cmd.Positional[1]
	switch {
	case field == config.FieldFontSize:
		size, err := dispatch.NormalizeFontSize(value)
		if err != nil {
			logging.Error(err)
			return 2
		}
		value = size
	case strings.HasPrefix(field, "theme.") && value != "":
		if !highlight.HasStyle(value) {
			logging.Error(fmt.Errorf("unknown chroma style %q (see: quill themes chroma)", value))
			return 2
		}
	}
	if _, err := config.NewStore(cmd.SettingsPath).Update(field, value); err != nil {
		logging.Error(err)
		return 1
	}
	fmt.Fprintf(stdout, "%s = %s\n", field, value)
	return 0
}

func cmdThemes(args, environ []string, stdout, stderr io.Writer) int {
	cmd, ok := loadCommand("themes", args, environ, stderr)
	if !ok {
		return 2
	}
	if len(cmd.Positional) > 0 && cmd.Positional[0] == "chroma" {
		for _, name := range highlight.Styles() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}
	s, err := config.NewStore(cmd.SettingsPath).Load()
	if err != nil {
		logging.Error(err)
		return 1
	}
	for _, name := range s.ThemeNames() {
		mark := " "
		if name == s.SelectedTheme {
			mark = "*"
		}
		fmt.Fprintf(stdout, "%s %-16s %s\n", mark, name, s.Theme[name])
	}
	return 0
}

/* ---------- startup trace ---------- */

func traceStartup(rt config.Runtime) {
	events.App.Start(startupTracePayload(rt))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(rt config.Runtime) map[string]interface{} {
	flags := make(map[string]interface{}, len(rt.Flags))
	for k, v := range rt.Flags {
		flags[k] = v
	}
	flags["trace"] = rt.Logging.Trace
	flags["logFile"] = rt.Logging.FilePath
	payload := map[string]interface{}{
		"argv":    rt.Args,
		"flags":   flags,
		"file":    rt.File,
		"version": Version,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quill/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	rt := config.Runtime{
		SettingsPath: "settings.json",
		File:         "notes.py",
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"settings":     "settings.json",
			"line-numbers": "true",
		},
		Args: []string{"-settings", "settings.json", "notes.py"},
	}

	payload := startupTracePayload(rt)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["settings"] != "settings.json" {
		t.Fatalf("expected settings flag, got %v", flagsValue["settings"])
	}
	if flagsValue["trace"] != true || flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected logging flags, got %v", flagsValue)
	}
	if payload["file"] != "notes.py" {
		t.Fatalf("expected file in payload, got %v", payload["file"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
}

// cli runs the command line against a settings file in a temp dir.
func cli(t *testing.T, settings string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	logFile := filepath.Join(filepath.Dir(settings), "quill.log")
	full := append([]string{args[0], "-settings", settings, "-log-file", logFile}, args[1:]...)
	code := run(full, nil, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestInitGetSet(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.json")

	if code, out, errOut := cli(t, settings, "init"); code != 0 || !strings.Contains(out, "Wrote") {
		t.Fatalf("init failed: %d %q %q", code, out, errOut)
	}
	if code, _, _ := cli(t, settings, "init"); code != 1 {
		t.Fatalf("expected second init without -force to fail, got %d", code)
	}
	if code, _, _ := cli(t, settings, "init", "-force"); code != 0 {
		t.Fatalf("expected forced init to succeed, got %d", code)
	}

	if code, out, _ := cli(t, settings, "set", "fontSize", "18"); code != 0 || out != "fontSize = 18px\n" {
		t.Fatalf("set fontSize: %d %q", code, out)
	}
	if code, out, _ := cli(t, settings, "get", "fontSize"); code != 0 || out != "18px\n" {
		t.Fatalf("get fontSize: %d %q", code, out)
	}
	if code, out, _ := cli(t, settings, "get", "selectedTheme"); code != 0 || out != "monokai\n" {
		t.Fatalf("other fields must be unchanged: %d %q", code, out)
	}

	if code, _, _ := cli(t, settings, "set", "theme.paper", "no-such-style"); code != 2 {
		t.Fatalf("expected unknown chroma style to be rejected, got %d", code)
	}
	if code, _, _ := cli(t, settings, "set", "theme.paper", "github"); code != 0 {
		t.Fatalf("expected theme entry to be added, got %d", code)
	}
	if code, _, errOut := cli(t, settings, "set", "selectedTheme", "ghost"); code != 1 || !strings.Contains(errOut, "ghost") {
		t.Fatalf("expected undefined theme to fail, got %d %q", code, errOut)
	}

	code, out, _ := cli(t, settings, "get")
	if code != 0 {
		t.Fatalf("get: %d", code)
	}
	var s config.Settings
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("get output is not JSON: %v", err)
	}
	if s.Theme["paper"] != "github" || s.FontSize != "18px" {
		t.Fatalf("unexpected settings %+v", s)
	}
}

func TestThemesListsSelected(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.json")
	if code, _, _ := cli(t, settings, "init"); code != 0 {
		t.Fatalf("init failed")
	}
	code, out, _ := cli(t, settings, "themes")
	if code != 0 || !strings.Contains(out, "* monokai") || !strings.Contains(out, "  nord") {
		t.Fatalf("unexpected themes output %d %q", code, out)
	}
	code, out, _ = cli(t, settings, "themes", "chroma")
	if code != 0 || !strings.Contains(out, "dracula") {
		t.Fatalf("expected chroma styles, got %d", code)
	}
}

func TestEditWithoutSettingsPointsToInit(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-settings", filepath.Join(dir, "missing.json"), "-log-file", filepath.Join(dir, "q.log")}, nil, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "quill init") {
		t.Fatalf("expected init hint, got %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "q.log")); err != nil {
		t.Fatalf("expected log file to be written: %v", err)
	}
}

func TestEditRejectsBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-bogus"}, nil, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if code := run([]string{"a.txt", "b.txt"}, nil, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2 for two files, got %d", code)
	}
}

func TestVersionAndHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"version"}, nil, &stdout, &stderr); code != 0 || !strings.Contains(stdout.String(), Version) {
		t.Fatalf("unexpected version output %q", stdout.String())
	}
	stdout.Reset()
	run([]string{"help", "keys"}, nil, &stdout, &stderr)
	if !strings.Contains(stdout.String(), "ctrl+s save") {
		t.Fatalf("unexpected keys help %q", stdout.String())
	}
}

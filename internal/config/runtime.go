package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Runtime captures per-invocation options from flags and environment.
type Runtime struct {
	SettingsPath string
	File         string
	AltScreen    bool
	LineNumbers  bool
	Logging      Logging
	Flags        map[string]string
	Args         []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSettings    = "QUILL_SETTINGS"
	envLogFile     = "QUILL_LOG_FILE"
	envTrace       = "QUILL_TRACE"
	envNoAltScreen = "QUILL_NO_ALT_SCREEN"
)

// LoadArgs parses args (without the program name) against environ.
func LoadArgs(args []string, environ []string) (Runtime, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("quill", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	settings := fs.String("settings", envOrDefault(env, envSettings, DefaultPath()), "path to the settings JSON file")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable JSON trace logging")
	noAlt := fs.Bool("no-alt-screen", envOrBool(env, envNoAltScreen, false), "render inline instead of the alternate screen")
	lineNumbers := fs.Bool("line-numbers", true, "show line numbers")

	if err := fs.Parse(args); err != nil {
		return Runtime{}, err
	}
	rest := fs.Args()
	if len(rest) > 1 {
		return Runtime{}, fmt.Errorf("expected at most one file argument, got %d", len(rest))
	}
	if strings.TrimSpace(*settings) == "" {
		return Runtime{}, fmt.Errorf("settings path must not be empty")
	}

	rt := Runtime{
		SettingsPath: *settings,
		AltScreen:    !*noAlt,
		LineNumbers:  *lineNumbers,
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"settings":      *settings,
			"logFile":       *logFile,
			"trace":         strconv.FormatBool(*trace),
			"no-alt-screen": strconv.FormatBool(*noAlt),
			"line-numbers":  strconv.FormatBool(*lineNumbers),
		},
		Args: append([]string(nil), args...),
	}
	if len(rest) == 1 {
		rt.File = rest[0]
	}
	return rt, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Command captures options for the settings subcommands (init, get, set).
type Command struct {
	SettingsPath string
	Force        bool
	Logging      Logging
	Positional   []string
}

// LoadCommandArgs parses the arguments that follow a subcommand name.
func LoadCommandArgs(name string, args []string, environ []string) (Command, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("quill "+name, flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	settings := fs.String("settings", envOrDefault(env, envSettings, DefaultPath()), "path to the settings JSON file")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable JSON trace logging")
	force := fs.Bool("force", false, "overwrite an existing settings file")

	if err := fs.Parse(args); err != nil {
		return Command{}, err
	}
	if strings.TrimSpace(*settings) == "" {
		return Command{}, fmt.Errorf("settings path must not be empty")
	}
	return Command{
		SettingsPath: *settings,
		Force:        *force,
		Logging:      Logging{FilePath: *logFile, Trace: *trace},
		Positional:   fs.Args(),
	}, nil
}

package modes

import (
	"path/filepath"
	"strings"
)

// Mode identifies the syntax highlighting language applied to the buffer.
type Mode string

const (
	Text       Mode = "text"
	JavaScript Mode = "javascript"
	HTML       Mode = "html"
	Python     Mode = "python"
	CSS        Mode = "css"
	PHP        Mode = "php"
	Java       Mode = "java"
	JSON       Mode = "json"
)

var byExtension = map[string]Mode{
	".js":   JavaScript,
	".html": HTML,
	".py":   Python,
	".css":  CSS,
	".php":  PHP,
	".java": Java,
	".json": JSON,
}

// chroma lexer names; Text maps to chroma's plaintext lexer.
var lexers = map[Mode]string{
	Text:       "plaintext",
	JavaScript: "javascript",
	HTML:       "html",
	Python:     "python",
	CSS:        "css",
	PHP:        "php",
	Java:       "java",
	JSON:       "json",
}

var commentPrefixes = map[Mode]string{
	JavaScript: "//",
	Python:     "#",
	PHP:        "//",
	Java:       "//",
}

// Lookup returns the mode registered for ext and whether it was known.
// ext may be given with or without its leading dot, in any case.
func Lookup(ext string) (Mode, bool) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return Text, false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	m, ok := byExtension[ext]
	if !ok {
		return Text, false
	}
	return m, true
}

// Resolve maps ext to a mode, falling back to Text.
func Resolve(ext string) Mode {
	m, _ := Lookup(ext)
	return m
}

// FromPath resolves the mode for a file path by its extension.
func FromPath(path string) (Mode, bool) {
	return Lookup(filepath.Ext(path))
}

// Lexer returns the chroma lexer name for m.
func Lexer(m Mode) string {
	if l, ok := lexers[m]; ok {
		return l
	}
	return lexers[Text]
}

// CommentPrefix returns the line comment marker for m, or "" when the
// language has no line comments.
func CommentPrefix(m Mode) string {
	return commentPrefixes[m]
}

// Extensions lists the known extensions in a stable order.
func Extensions() []string {
	return []string{".js", ".html", ".py", ".css", ".php", ".java", ".json"}
}

// All lists every mode, Text first.
func All() []Mode {
	return []Mode{Text, JavaScript, HTML, Python, CSS, PHP, Java, JSON}
}

package modes

import "testing"

func TestResolveKnownExtensions(t *testing.T) {
	cases := map[string]Mode{
		".js":   JavaScript,
		".html": HTML,
		".py":   Python,
		".css":  CSS,
		".php":  PHP,
		".java": Java,
		".json": JSON,
	}
	for ext, want := range cases {
		if got := Resolve(ext); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", ext, got, want)
		}
	}
	if len(cases) != len(Extensions()) {
		t.Fatalf("extension list out of sync with table")
	}
}

func TestResolveFallsBackToText(t *testing.T) {
	for _, ext := range []string{"", ".txt", ".go", ".md", ".", "   "} {
		if got := Resolve(ext); got != Text {
			t.Fatalf("Resolve(%q) = %q, want text", ext, got)
		}
		if _, ok := Lookup(ext); ok {
			t.Fatalf("Lookup(%q) reported a known extension", ext)
		}
	}
}

func TestLookupNormalizesInput(t *testing.T) {
	for _, ext := range []string{"py", ".PY", " .Py "} {
		m, ok := Lookup(ext)
		if !ok || m != Python {
			t.Fatalf("Lookup(%q) = %q ok=%v, want python", ext, m, ok)
		}
	}
}

func TestFromPath(t *testing.T) {
	if m, ok := FromPath("/tmp/a.py"); !ok || m != Python {
		t.Fatalf("expected python for /tmp/a.py, got %q", m)
	}
	if m, ok := FromPath("/tmp/Makefile"); ok || m != Text {
		t.Fatalf("expected text for extensionless file, got %q", m)
	}
}

func TestLexerAndCommentPrefix(t *testing.T) {
	if Lexer(Text) != "plaintext" {
		t.Fatalf("expected plaintext lexer for text mode")
	}
	if Lexer(Mode("cobol")) != "plaintext" {
		t.Fatalf("expected plaintext lexer for unknown mode")
	}
	if CommentPrefix(Python) != "#" || CommentPrefix(JavaScript) != "//" {
		t.Fatalf("unexpected comment prefixes")
	}
	if CommentPrefix(HTML) != "" {
		t.Fatalf("expected no line comments for html")
	}
}

func TestAllModesHaveLexers(t *testing.T) {
	all := All()
	if all[0] != Text {
		t.Fatalf("expected text first, got %q", all[0])
	}
	for _, m := range all {
		if _, ok := lexers[m]; !ok {
			t.Fatalf("mode %q has no lexer", m)
		}
	}
	for _, ext := range Extensions() {
		if _, ok := Lookup(ext); !ok {
			t.Fatalf("extension %q not registered", ext)
		}
	}
}

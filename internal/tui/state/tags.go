package state

// TagKind enumerates the document status chips.
type TagKind int

const (
	// Stable ordering for display: Modified, Untitled, Preview, Mode, Lines
	MODIFIED TagKind = iota
	UNTITLED
	PREVIEWING
	MODE
	LINES
)

// Tag represents a single status chip. Value carries the line count and Text
// the mode name; other tags leave them zero.
type Tag struct {
	Kind  TagKind
	Value int
	Text  string
}

package state

// EditorMode says whether keys edit the buffer or the highlighted preview is shown.
type EditorMode int

const (
	EDIT EditorMode = iota
	PREVIEW
)

// DiffMode controls how the review diff is rendered.
type DiffMode int

const (
	Unified DiffMode = iota
	SideBySide
)

// UIState holds cross-widget UI state used by the status bar, diff and help.
type UIState struct {
	// Mode & View
	Mode EditorMode
	Wrap bool
	View DiffMode

	// Layout & scrolling
	Width   int
	Height  int
	MinCol  int
	ScrollV int

	// Notices and ephemeral messages
	Notice string
}

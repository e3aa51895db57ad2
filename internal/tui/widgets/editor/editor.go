package editor

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/highlight"
	"quill/internal/modes"
)

const (
	historyLimit = 200
	// tabWidth is the number of spaces the textarea inserts for a tab.
	tabWidth = 4
)

// Clipboard is the system clipboard seam.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard uses atotto/clipboard.
func SystemClipboard() Clipboard { return systemClipboard{} }

type snapshot struct {
	text     string
	row, col int
}

// Editor wraps a textarea and adds the editing commands the menus need.
type Editor struct {
	area textarea.Model
	clip Clipboard

	mode     modes.Mode
	theme    string
	style    string
	fontSize string

	// disk is the text as loaded and loaded is what the textarea made of it.
	disk   string
	loaded string
	format lineFormat

	clean    string
	undo     []snapshot
	redo     []snapshot
	typing   bool
	lastFind string

	preview bool
	height  int
}

// NewEditor returns a focused editor in text mode.
func NewEditor(clip Clipboard, lineNumbers bool) *Editor {
	if clip == nil {
		clip = SystemClipboard()
	}
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.Prompt = ""
	ta.Placeholder = ""
	ta.ShowLineNumbers = lineNumbers
	ta.Focus()
	return &Editor{area: ta, clip: clip, mode: modes.Text, height: ta.Height()}
}

// SetSize resizes the visible area.
func (e *Editor) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	e.area.SetWidth(width)
	e.area.SetHeight(height)
	e.height = height
}

func (e *Editor) Focus() tea.Cmd { return e.area.Focus() }
func (e *Editor) Blur()          { e.area.Blur() }

// Update forwards msg to the textarea and records an undo step when the
// buffer changed. Consecutive word characters typed form one step.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if e.preview {
		return nil
	}
	before := e.snapshot()
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	if e.area.Value() == before.text {
		return cmd
	}
	word := false
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes && !k.Paste {
		word = !strings.ContainsFunc(string(k.Runes), unicode.IsSpace)
	}
	if !(word && e.typing) {
		e.push(before)
	}
	e.redo = nil
	e.typing = word
	return cmd
}

// View renders the textarea, or the highlighted preview when enabled.
func (e *Editor) View() string {
	if !e.preview {
		return e.area.View()
	}
	out, err := highlight.Render(e.area.Value(), e.mode, e.style)
	if err != nil {
		return e.area.View()
	}
	lines := strings.Split(out, "\n")
	start := e.area.Line() - e.height + 1
	if start < 0 {
		start = 0
	}
	end := start + e.height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// TogglePreview switches between editing and the read-only highlighted view.
func (e *Editor) TogglePreview() bool {
	e.preview = !e.preview
	if e.preview {
		e.area.Blur()
	} else {
		e.area.Focus()
	}
	return e.preview
}

func (e *Editor) Previewing() bool { return e.preview }

// SetContent replaces the buffer and clears the history. The textarea turns
// tabs into spaces and reads \r\n as two line breaks, so the line format of
// text is kept to be restored by Content.
func (e *Editor) SetContent(text string) {
	e.undo, e.redo = nil, nil
	e.typing = false
	e.lastFind = ""
	e.format = detectFormat(text)
	e.area.SetValue(strings.ReplaceAll(text, "\r\n", "\n"))
	e.disk = text
	e.loaded = e.area.Value()
	e.moveTo(0, 0)
}

// Content returns the buffer in the line format it was loaded with. An
// unchanged buffer returns the loaded text byte for byte.
func (e *Editor) Content() string {
	v := e.area.Value()
	if v == e.loaded {
		return e.disk
	}
	return e.format.apply(v)
}

func (e *Editor) SetMode(m modes.Mode) { e.mode = m }
func (e *Editor) Mode() modes.Mode     { return e.mode }

func (e *Editor) SetTheme(name, style string) {
	e.theme = name
	e.style = style
}

func (e *Editor) Theme() string { return e.theme }
func (e *Editor) Style() string { return e.style }

func (e *Editor) SetFontSize(size string) { e.fontSize = size }
func (e *Editor) FontSize() string        { return e.fontSize }

func (e *Editor) MarkClean()  { e.clean = e.area.Value() }
func (e *Editor) Dirty() bool { return e.area.Value() != e.clean }

// Cursor returns the 0-based logical line and column.
func (e *Editor) Cursor() (row, col int) {
	li := e.area.LineInfo()
	return e.area.Line(), li.StartColumn + li.ColumnOffset
}

func (e *Editor) LineCount() int { return e.area.LineCount() }

// Find moves the cursor to the next case-insensitive match after the cursor,
// wrapping at the end of the buffer.
func (e *Editor) Find(pattern string) bool {
	pat := []rune(pattern)
	if len(pat) == 0 || strings.Contains(pattern, "\n") {
		return false
	}
	lines := strings.Split(e.area.Value(), "\n")
	row, col := e.Cursor()
	from := col
	if strings.EqualFold(pattern, e.lastFind) {
		from = col + 1
	}
	e.lastFind = pattern
	for i := 0; i <= len(lines); i++ {
		r := (row + i) % len(lines)
		start := 0
		if i == 0 {
			start = from
		}
		if idx := indexFold([]rune(lines[r]), pat, start); idx >= 0 {
			if i == len(lines) && idx >= from {
				break
			}
			e.moveTo(r, idx)
			return true
		}
	}
	return false
}

func indexFold(line, pat []rune, from int) int {
	for i := from; i >= 0 && i+len(pat) <= len(line); i++ {
		match := true
		for j, p := range pat {
			if unicode.ToLower(line[i+j]) != unicode.ToLower(p) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Replace substitutes every case-insensitive occurrence of pattern.
func (e *Editor) Replace(pattern, replacement string) int {
	if pattern == "" {
		return 0
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
	text := e.area.Value()
	n := len(re.FindAllStringIndex(text, -1))
	if n == 0 {
		return 0
	}
	row, col := e.Cursor()
	e.edit(re.ReplaceAllLiteralString(text, replacement), row, col)
	return n
}

// GotoLine moves to the start of the 1-based line n, clamped.
func (e *Editor) GotoLine(n int) {
	row := n - 1
	if last := e.area.LineCount() - 1; row > last {
		row = last
	}
	if row < 0 {
		row = 0
	}
	e.moveTo(row, 0)
}

// SelectAll copies the whole buffer to the clipboard.
func (e *Editor) SelectAll() error {
	return e.clip.WriteAll(e.area.Value())
}

// Paste inserts the clipboard at the cursor.
func (e *Editor) Paste() error {
	text, err := e.clip.ReadAll()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	e.push(e.snapshot())
	e.redo = nil
	e.typing = false
	e.area.InsertString(text)
	return nil
}

func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	e.redo = append(e.redo, e.snapshot())
	s := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.restore(s)
	return true
}

func (e *Editor) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	e.undo = append(e.undo, e.snapshot())
	s := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.restore(s)
	return true
}

// RemoveLine deletes the cursor line.
func (e *Editor) RemoveLine() {
	lines := strings.Split(e.area.Value(), "\n")
	row, _ := e.Cursor()
	lines = append(lines[:row], lines[row+1:]...)
	if row >= len(lines) {
		row = len(lines) - 1
	}
	if row < 0 {
		row = 0
	}
	e.edit(strings.Join(lines, "\n"), row, 0)
}

// ToggleComment adds or strips prefix after the indentation of the cursor line.
func (e *Editor) ToggleComment(prefix string) {
	if prefix == "" {
		return
	}
	lines := strings.Split(e.area.Value(), "\n")
	row, col := e.Cursor()
	line := lines[row]
	body := strings.TrimLeftFunc(line, unicode.IsSpace)
	indent := line[:len(line)-len(body)]
	if strings.HasPrefix(body, prefix) {
		body = strings.TrimPrefix(body, prefix)
		body = strings.TrimPrefix(body, " ")
	} else {
		body = prefix + " " + body
	}
	lines[row] = indent + body
	e.edit(strings.Join(lines, "\n"), row, col)
}

// lineFormat is the line ending and indentation style of a loaded file.
type lineFormat struct {
	crlf bool
	tabs bool
}

func detectFormat(text string) lineFormat {
	f := lineFormat{crlf: strings.Contains(text, "\r\n")}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "\t") {
			f.tabs = true
			break
		}
	}
	return f
}

// apply converts textarea text back: leading runs of tabWidth spaces become
// tabs and line breaks become \r\n.
func (f lineFormat) apply(text string) string {
	if f.tabs {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			n := len(line) - len(strings.TrimLeft(line, " "))
			if tabs := n / tabWidth; tabs > 0 {
				lines[i] = strings.Repeat("\t", tabs) + line[tabs*tabWidth:]
			}
		}
		text = strings.Join(lines, "\n")
	}
	if f.crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

func (e *Editor) edit(text string, row, col int) {
	e.push(e.snapshot())
	e.redo = nil
	e.typing = false
	e.area.SetValue(text)
	e.moveTo(row, col)
}

func (e *Editor) push(s snapshot) {
	e.undo = append(e.undo, s)
	if len(e.undo) > historyLimit {
		e.undo = e.undo[len(e.undo)-historyLimit:]
	}
}

func (e *Editor) snapshot() snapshot {
	row, col := e.Cursor()
	return snapshot{text: e.area.Value(), row: row, col: col}
}

func (e *Editor) restore(s snapshot) {
	e.typing = false
	e.area.SetValue(s.text)
	e.moveTo(s.row, s.col)
}

// moveTo places the cursor on a logical line. The textarea only moves by
// visual rows, so walk there and then set the column.
func (e *Editor) moveTo(row, col int) {
	if last := e.area.LineCount() - 1; row > last {
		row = last
	}
	if row < 0 {
		row = 0
	}
	guard := e.area.Length() + e.area.LineCount() + 1
	for i := 0; e.area.Line() > row && i < guard; i++ {
		e.area.CursorUp()
	}
	for i := 0; e.area.Line() < row && i < guard; i++ {
		e.area.CursorDown()
	}
	e.area.SetCursor(col)
}

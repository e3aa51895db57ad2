package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"quill/internal/tui/state"
)

var (
	delLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	addLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	delChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	addChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint   = lipgloss.NewStyle().Faint(true)
)

// Op is one line of a line-level diff.
type Op struct {
	Type dmp.Operation
	Text string
}

// Lines diffs before and after line by line.
func Lines(before, after string) []Op {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)
	var out []Op
	for _, df := range diffs {
		text := strings.TrimSuffix(df.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			out = append(out, Op{Type: df.Type, Text: l})
		}
	}
	return out
}

type DiffView struct{}

func NewDiffView() DiffView { return DiffView{} }

// View renders disk content against the buffer. Adjacent delete/insert lines
// are paired and get character-level highlights.
func (DiffView) View(s state.UIState, disk, buffer string) string {
	if disk == buffer {
		return "No changes\n"
	}
	ops := Lines(disk, buffer)
	if s.View == state.SideBySide {
		return sideBySide(ops, s)
	}
	return unified(ops, s)
}

func unified(ops []Op, s state.UIState) string {
	var b strings.Builder
	b.WriteString("DISK vs BUFFER (Unified)\n")
	width := s.Width - 2
	for i := 0; i < len(ops); i++ {
		op := ops[i]
		if op.Type == dmp.DiffDelete && i+1 < len(ops) && ops[i+1].Type == dmp.DiffInsert {
			del, ins := charPair(op.Text, ops[i+1].Text)
			writeLine(&b, delLine.Render("- ")+del, width, s.Wrap)
			writeLine(&b, addLine.Render("+ ")+ins, width, s.Wrap)
			i++
			continue
		}
		switch op.Type {
		case dmp.DiffDelete:
			writeLine(&b, delLine.Render("- "+op.Text), width, s.Wrap)
		case dmp.DiffInsert:
			writeLine(&b, addLine.Render("+ "+op.Text), width, s.Wrap)
		default:
			writeLine(&b, "  "+faint.Render(op.Text), width, s.Wrap)
		}
	}
	return b.String()
}

func sideBySide(ops []Op, s state.UIState) string {
	const sep = " │ "
	colWidth := 40
	if s.Width > 0 {
		colWidth = (s.Width - len([]rune(sep))) / 2
		if colWidth < 10 {
			colWidth = 10
		}
	}
	var b strings.Builder
	b.WriteString(pad("DISK", colWidth) + sep + "BUFFER\n")
	row := func(l, r string) {
		l = truncate.String(l, uint(colWidth))
		r = truncate.String(r, uint(colWidth))
		fmt.Fprintf(&b, "%s%s%s\n", pad(l, colWidth), sep, r)
	}
	for i := 0; i < len(ops); i++ {
		op := ops[i]
		switch {
		case op.Type == dmp.DiffDelete && i+1 < len(ops) && ops[i+1].Type == dmp.DiffInsert:
			del, ins := charPair(op.Text, ops[i+1].Text)
			row(delLine.Render("- ")+del, addLine.Render("+ ")+ins)
			i++
		case op.Type == dmp.DiffDelete:
			row(delLine.Render("- "+op.Text), "")
		case op.Type == dmp.DiffInsert:
			row("", addLine.Render("+ "+op.Text))
		default:
			row(faint.Render("  "+op.Text), faint.Render("  "+op.Text))
		}
	}
	return b.String()
}

// charPair highlights the changed runs of a replaced line.
func charPair(before, after string) (string, string) {
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	d.DiffCleanupSemantic(diffs)
	var l, r strings.Builder
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			l.WriteString(delChar.Render(df.Text))
		case dmp.DiffInsert:
			r.WriteString(addChar.Render(df.Text))
		case dmp.DiffEqual:
			l.WriteString(delLine.Render(df.Text))
			r.WriteString(addLine.Render(df.Text))
		}
	}
	return l.String(), r.String()
}

func writeLine(b *strings.Builder, line string, width int, wrap bool) {
	if width > 0 {
		if wrap {
			line = wordwrap.String(line, width)
		} else {
			line = truncate.String(line, uint(width))
		}
	}
	b.WriteString(line)
	b.WriteString("\n")
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"quill/internal/dispatch"
)

const maxSuggestions = 8

// dialog is a modal that ends with a dispatch result.
type dialog interface {
	Update(msg tea.Msg) (tea.Cmd, *dispatch.Result)
	View() string
}

func done(r dispatch.Result) *dispatch.Result { return &r }

func isCancel(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch k.String() {
	case "esc", "ctrl+c":
		return true
	}
	return false
}

func newDialog(req *dispatch.Request, startDir string, width, height int) (dialog, tea.Cmd) {
	switch req.Kind {
	case dispatch.OpenFile:
		return newOpenDialog(req.Title, startDir, height)
	case dispatch.SaveFile:
		return newPathDialog(req.Title, req.Initial, startDir, width)
	case dispatch.Choice:
		return newChoiceDialog(req.Title, req.Initial, req.Options, width)
	default:
		return newPromptDialog(req.Title, req.Initial, width)
	}
}

/* ---------- open ---------- */

type openDialog struct {
	title  string
	picker filepicker.Model
}

func newOpenDialog(title, dir string, height int) (*openDialog, tea.Cmd) {
	fp := filepicker.New()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = false
	fp.Height = clamp(height-6, 5, 20)
	fp.CurrentDirectory = dir
	d := &openDialog{title: title, picker: fp}
	return d, d.picker.Init()
}

func (d *openDialog) Update(msg tea.Msg) (tea.Cmd, *dispatch.Result) {
	// esc is the picker's "parent directory" key; here it cancels.
	if isCancel(msg) {
		return nil, done(dispatch.Canceled())
	}
	var cmd tea.Cmd
	d.picker, cmd = d.picker.Update(msg)
	if ok, path := d.picker.DidSelectFile(msg); ok {
		return cmd, done(dispatch.Confirmed(path))
	}
	return cmd, nil
}

func (d *openDialog) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.title) + "\n")
	b.WriteString(faintStyle.Render(d.picker.CurrentDirectory) + "\n\n")
	b.WriteString(d.picker.View())
	b.WriteString("\n" + faintStyle.Render("enter: open   ←/backspace: up   esc: cancel"))
	return b.String()
}

/* ---------- save path ---------- */

type pathDialog struct {
	title   string
	input   textinput.Model
	base    string
	suggest []string
}

func newPathDialog(title, initial, base string, width int) (*pathDialog, tea.Cmd) {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "path/to/file"
	in.Width = clamp(width-12, 20, 80)
	in.SetValue(initial)
	in.CursorEnd()
	d := &pathDialog{title: title, input: in, base: base}
	d.computeSuggestions()
	return d, d.input.Focus()
}

func (d *pathDialog) Update(msg tea.Msg) (tea.Cmd, *dispatch.Result) {
	if isCancel(msg) {
		return nil, done(dispatch.Canceled())
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			if strings.TrimSpace(d.input.Value()) == "" {
				return nil, nil
			}
			return nil, done(dispatch.Confirmed(expandPath(d.input.Value(), d.base)))
		case "tab":
			if len(d.suggest) > 0 {
				d.input.SetValue(d.suggest[0])
				d.input.CursorEnd()
				d.computeSuggestions()
			}
			return nil, nil
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	d.computeSuggestions()
	return cmd, nil
}

// computeSuggestions lists directory entries matching the last path segment.
func (d *pathDialog) computeSuggestions() {
	in := d.input.Value()
	if strings.TrimSpace(in) == "" {
		d.suggest = nil
		return
	}
	expanded := expandPath(in, d.base)
	dir := expanded
	base := ""
	if fi, err := os.Stat(expanded); err != nil || !fi.IsDir() || !strings.HasSuffix(in, string(filepath.Separator)) {
		dir = filepath.Dir(expanded)
		base = filepath.Base(expanded)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		d.suggest = nil
		return
	}
	prefix := in[:len(in)-len(lastSegment(in))]
	var out []string
	for _, e := range entries {
		name := e.Name()
		if base != "" && !strings.HasPrefix(strings.ToLower(name), strings.ToLower(base)) {
			continue
		}
		if name == base && !e.IsDir() {
			continue
		}
		cand := prefix + name
		if e.IsDir() {
			cand += string(filepath.Separator)
		}
		out = append(out, cand)
		if len(out) >= maxSuggestions {
			break
		}
	}
	d.suggest = out
}

func lastSegment(p string) string {
	if i := strings.LastIndex(p, string(filepath.Separator)); i >= 0 {
		return p[i+1:]
	}
	return p
}

func (d *pathDialog) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.title) + "\n\n")
	b.WriteString(d.input.View() + "\n")
	for _, s := range d.suggest {
		b.WriteString(faintStyle.Render("  • "+s) + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("enter: save   tab: complete   esc: cancel"))
	return b.String()
}

// expandPath resolves ~, environment variables and relative paths against base.
func expandPath(p, base string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, strings.TrimPrefix(p[1:], "/"))
		}
	}
	p = os.ExpandEnv(p)
	if !filepath.IsAbs(p) {
		if base == "" {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

/* ---------- prompt ---------- */

type promptDialog struct {
	title string
	input textinput.Model
}

func newPromptDialog(title, initial string, width int) (*promptDialog, tea.Cmd) {
	in := textinput.New()
	in.Prompt = "> "
	in.Width = clamp(width-12, 20, 60)
	in.SetValue(initial)
	in.CursorEnd()
	d := &promptDialog{title: title, input: in}
	return d, d.input.Focus()
}

func (d *promptDialog) Update(msg tea.Msg) (tea.Cmd, *dispatch.Result) {
	if isCancel(msg) {
		return nil, done(dispatch.Canceled())
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		return nil, done(dispatch.Confirmed(d.input.Value()))
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd, nil
}

func (d *promptDialog) View() string {
	return titleStyle.Render(d.title) + "\n\n" + d.input.View() + "\n\n" +
		faintStyle.Render("enter: confirm   esc: cancel")
}

/* ---------- choice ---------- */

type choiceDialog struct {
	title   string
	options []string
	filter  textinput.Model
	visible []string
	cursor  int
}

func newChoiceDialog(title, initial string, options []string, width int) (*choiceDialog, tea.Cmd) {
	in := textinput.New()
	in.Prompt = "filter: "
	in.Width = clamp(width-16, 10, 40)
	d := &choiceDialog{title: title, options: options, filter: in}
	d.refilter()
	for i, o := range d.visible {
		if o == initial {
			d.cursor = i
		}
	}
	return d, d.filter.Focus()
}

// refilter ranks options against the filter; an empty filter keeps the
// original order.
func (d *choiceDialog) refilter() {
	q := d.filter.Value()
	if q == "" {
		d.visible = append([]string(nil), d.options...)
	} else {
		ranks := fuzzy.RankFindFold(q, d.options)
		sort.Sort(ranks)
		d.visible = d.visible[:0]
		for _, r := range ranks {
			d.visible = append(d.visible, r.Target)
		}
	}
	if d.cursor >= len(d.visible) {
		d.cursor = len(d.visible) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *choiceDialog) Update(msg tea.Msg) (tea.Cmd, *dispatch.Result) {
	if isCancel(msg) {
		return nil, done(dispatch.Canceled())
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			if len(d.visible) == 0 {
				return nil, nil
			}
			return nil, done(dispatch.Confirmed(d.visible[d.cursor]))
		case "up", "ctrl+p":
			if d.cursor > 0 {
				d.cursor--
			}
			return nil, nil
		case "down", "ctrl+n":
			if d.cursor < len(d.visible)-1 {
				d.cursor++
			}
			return nil, nil
		}
	}
	var cmd tea.Cmd
	d.filter, cmd = d.filter.Update(msg)
	d.refilter()
	return cmd, nil
}

func (d *choiceDialog) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.title) + "\n\n")
	b.WriteString(d.filter.View() + "\n\n")
	if len(d.visible) == 0 {
		b.WriteString(faintStyle.Render("  no match") + "\n")
	}
	for i, o := range d.visible {
		if i == d.cursor {
			b.WriteString(selStyle.Render("> "+o) + "\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  %s\n", o))
	}
	b.WriteString("\n" + faintStyle.Render("↑/↓: move   enter: choose   esc: cancel"))
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quill/internal/config"
	"quill/internal/dispatch"
	"quill/internal/logging/events"
	"quill/internal/menu"
	"quill/internal/tui/state"
	"quill/internal/tui/util"
	"quill/internal/tui/widgets/editor"
	"quill/internal/tui/widgets/helpoverlay"
	"quill/internal/tui/widgets/statusbar"
)

// Options configures the editor program.
type Options struct {
	Settings    dispatch.SettingsStore
	Initial     config.Settings
	File        string
	FS          dispatch.FileSystem
	Clipboard   editor.Clipboard
	StartDir    string
	LineNumbers bool
	AltScreen   bool
	NoColor     bool
}

// Run starts the editor and blocks until it quits.
func Run(opts Options) error {
	m := newModel(opts)
	progOpts := []tea.ProgramOption{}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	return err
}

// ===== Model =====

// chrome is the menu bar, status line and key hints.
const chrome = 3

var shortHelp = []dispatch.Intent{dispatch.Save, dispatch.Open, dispatch.Find, menu.Quit, menu.Help}

type model struct {
	menus      []menu.Menu
	dispatcher *dispatch.Dispatcher
	editor     *editor.Editor
	ui         state.UIState
	status     statusbar.StatusBar
	helpView   helpoverlay.HelpOverlay
	help       help.Model
	keys       menu.KeyMap
	noColor    bool
	startDir   string

	// a suspended command and its dialog
	pending *dispatch.Request
	dialog  dialog

	errMsg    string
	bar       menuBar
	showHelp  bool
	diff      *diffOverlay
	quitArmed bool
	quitting  bool
}

func newModel(opts Options) *model {
	menus := menu.Default()
	ed := editor.NewEditor(opts.Clipboard, opts.LineNumbers)
	startDir := opts.StartDir
	if startDir == "" {
		startDir, _ = os.Getwd()
	}
	m := &model{
		menus:    menus,
		editor:   ed,
		ui:       state.UIState{MinCol: 20, Wrap: true},
		status:   statusbar.NewStatusBar(),
		helpView: helpoverlay.NewHelpOverlay(),
		help:     help.New(),
		keys:     menu.KeyMap{Menus: menus, Short: shortHelp},
		noColor:  util.NoColor(opts.NoColor),
		startDir: startDir,
	}
	m.dispatcher = dispatch.New(dispatch.Env{
		FS:        opts.FS,
		Surface:   ed,
		Presenter: m,
		Settings:  opts.Settings,
	})
	if opts.Initial.SelectedTheme != "" {
		ed.SetTheme(opts.Initial.SelectedTheme, opts.Initial.ThemeStyle())
	}
	ed.SetFontSize(opts.Initial.FontSize)
	if opts.File != "" {
		if err := m.dispatcher.OpenPath(opts.File); err != nil {
			m.showError(err)
		}
	}
	return m
}

func (m *model) Init() tea.Cmd { return textarea.Blink }

// Notify implements dispatch.Presenter.
func (m *model) Notify(msg string) {
	m.ui = state.Notify(m.ui, msg)
}

// ShowDiff implements dispatch.Presenter.
func (m *model) ShowDiff(title, before, after string) {
	m.diff = &diffOverlay{title: title, before: before, after: after}
	m.ui.ScrollV = 0
	events.UI.Overlay("diff", true)
}

func (m *model) showError(err error) {
	var fe *dispatch.FileError
	if errors.As(err, &fe) {
		m.errMsg = "Could not " + fe.Op + " " + fe.Path + "\n\n" + fe.Err.Error()
		return
	}
	m.errMsg = err.Error()
}

// Update handles all program messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
		return m, nil
	}
	if m.dialog != nil {
		return m, m.updateDialog(msg)
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.editor.Update(msg)
	}
	if m.errMsg != "" {
		m.errMsg = ""
		return m, nil
	}
	if m.diff != nil {
		return m, m.updateDiff(k)
	}
	if m.showHelp {
		switch k.String() {
		case "esc", "q", "f1", "enter":
			m.showHelp = false
			events.UI.Overlay("help", false)
		}
		return m, nil
	}
	if m.bar.open {
		return m, m.updateMenuBar(k)
	}
	if key.Matches(k, menu.Bar) {
		m.bar.show()
		events.UI.MenuOpen(m.menus[m.bar.menu].Title)
		return m, nil
	}
	if it, ok := menu.Match(m.menus, k); ok {
		return m, m.run(it.Intent)
	}
	if k.String() == "ctrl+c" {
		return m, m.run(menu.Quit)
	}
	m.quitArmed = false
	return m, m.editor.Update(k)
}

// run executes one intent. View intents stay in the shell; the rest go
// through the dispatcher.
func (m *model) run(intent dispatch.Intent) tea.Cmd {
	switch intent {
	case menu.Quit:
		return m.quit()
	case menu.Preview:
		m.editor.TogglePreview()
		m.ui = state.ToggleMode(m.ui)
		return nil
	case menu.Help:
		m.showHelp = true
		events.UI.Overlay("help", true)
		return nil
	}
	m.quitArmed = false
	req, err := m.dispatcher.Dispatch(intent)
	return m.settle(req, err)
}

func (m *model) settle(req *dispatch.Request, err error) tea.Cmd {
	if err != nil {
		m.showError(err)
		return m.editor.Focus()
	}
	if req == nil {
		if m.editor.Previewing() {
			return nil
		}
		return m.editor.Focus()
	}
	m.editor.Blur()
	d, cmd := newDialog(req, m.dialogDir(), m.ui.Width, m.ui.Height)
	m.pending = req
	m.dialog = d
	events.UI.Overlay(req.Kind.String(), true)
	return cmd
}

// dialogDir starts file dialogs next to the open file.
func (m *model) dialogDir() string {
	if p, ok := m.dispatcher.Session().CurrentTarget(); ok {
		return filepath.Dir(p)
	}
	return m.startDir
}

func (m *model) updateDialog(msg tea.Msg) tea.Cmd {
	cmd, res := m.dialog.Update(msg)
	if res == nil {
		return cmd
	}
	req := m.pending
	m.dialog, m.pending = nil, nil
	events.UI.Overlay(req.Kind.String(), false)
	next, err := m.dispatcher.Resume(req, *res)
	return tea.Batch(cmd, m.settle(next, err))
}

func (m *model) quit() tea.Cmd {
	dirty := m.editor.Dirty()
	if dirty && !m.quitArmed {
		m.quitArmed = true
		m.Notify("Unsaved changes: press ctrl+q again to quit")
		return nil
	}
	events.App.Quit(dirty)
	m.quitting = true
	return tea.Quit
}

func (m *model) resize(width, height int) {
	m.ui = state.Resize(m.ui, width, height)
	m.help.Width = width
	m.editor.SetSize(width, height-chrome)
	events.UI.Resize(width, height)
}

// ===== Views =====

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	errStyle   = boxStyle.BorderForeground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	bodyHeight := m.ui.Height - chrome
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	var body string
	switch {
	case m.dialog != nil:
		body = m.place(boxStyle.Render(m.dialog.View()), bodyHeight)
	case m.errMsg != "":
		body = m.place(errStyle.Render(titleStyle.Render("Error")+"\n\n"+m.errMsg+"\n\n"+faintStyle.Render("press any key")), bodyHeight)
	case m.diff != nil:
		body = m.diffView(bodyHeight)
	case m.showHelp:
		body = m.helpView.View(m.ui, m.menus)
	default:
		body = m.editor.View()
	}
	if m.bar.open {
		body = overlayTop(m.dropdown(), body)
	}
	row, col := m.editor.Cursor()
	cur, ok := m.dispatcher.Session().CurrentTarget()
	status := m.status.View(m.ui, statusbar.Info{
		Path: cur,
		Doc: util.Doc{
			HasFile: ok,
			Dirty:   m.editor.Dirty(),
			Preview: m.editor.Previewing(),
			Mode:    string(m.editor.Mode()),
			Lines:   m.editor.LineCount(),
		},
		Theme:    m.editor.Theme(),
		FontSize: m.editor.FontSize(),
		Line:     row,
		Column:   col,
		NoColor:  m.noColor,
	})
	return strings.Join([]string{m.menuBarView(), body, status, m.help.View(m.keys)}, "\n")
}

func (m *model) place(box string, height int) string {
	if m.ui.Width <= 0 {
		return box
	}
	return lipgloss.Place(m.ui.Width, height, lipgloss.Center, lipgloss.Center, box)
}

// overlayTop replaces the first lines of body with top.
func overlayTop(top, body string) string {
	t := strings.Split(top, "\n")
	b := strings.Split(body, "\n")
	for i := range t {
		if i < len(b) {
			b[i] = t[i]
		} else {
			b = append(b, t[i])
		}
	}
	return strings.Join(b, "\n")
}

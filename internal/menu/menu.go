// Package menu holds the menu bar layout and the key accelerators that route
// to dispatcher intents.
package menu

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/dispatch"
)

// Intents handled by the terminal shell itself rather than the dispatcher.
const (
	Quit    dispatch.Intent = "quit"
	Preview dispatch.Intent = "preview"
	Help    dispatch.Intent = "help"
)

// Item is one menu entry.
type Item struct {
	Label  string
	Intent dispatch.Intent
	Keys   key.Binding
}

// Menu is one drop-down of the menu bar.
type Menu struct {
	Title string
	Items []Item
}

// Bar opens the menu bar.
var Bar = key.NewBinding(key.WithKeys("f10"), key.WithHelp("f10", "menu"))

func item(label string, intent dispatch.Intent, keys ...string) Item {
	help := ""
	if len(keys) > 0 {
		help = keys[0]
	}
	return Item{
		Label:  label,
		Intent: intent,
		Keys:   key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, label)),
	}
}

// Default returns the menus in bar order.
func Default() []Menu {
	toggle := item("Toggle Comment", dispatch.ToggleComment, "ctrl+_")
	// terminals report ctrl+/ as ctrl+_
	toggle.Keys.SetHelp("ctrl+/", "Toggle Comment")

	return []Menu{
		{Title: "File", Items: []Item{
			item("New", dispatch.NewFile, "ctrl+n"),
			item("Open", dispatch.Open, "ctrl+o"),
			item("Save", dispatch.Save, "ctrl+s"),
			item("Save As", dispatch.SaveAs, "alt+s"),
			item("Reload", dispatch.Reload, "ctrl+r"),
			item("Close", dispatch.Close, "ctrl+w"),
			item("Exit", Quit, "ctrl+q"),
		}},
		{Title: "Edit", Items: []Item{
			item("Find", dispatch.Find, "ctrl+f"),
			item("Replace", dispatch.Replace, "alt+r"),
			item("Go to Line", dispatch.GotoLine, "ctrl+l"),
			item("Select All", dispatch.SelectAll, "ctrl+a"),
			item("Paste", dispatch.Paste, "ctrl+v"),
			item("Undo", dispatch.Undo, "ctrl+z"),
			item("Redo", dispatch.Redo, "ctrl+y"),
			item("Remove Line", dispatch.RemoveLine, "ctrl+d"),
			toggle,
		}},
		{Title: "Settings", Items: []Item{
			item("Theme", dispatch.Theme, "alt+t"),
			item("Font Size", dispatch.FontSize, "alt+z"),
		}},
		{Title: "View", Items: []Item{
			item("Preview", Preview, "alt+p"),
			item("Review Changes", dispatch.Diff, "alt+d"),
			item("Help", Help, "f1"),
		}},
	}
}

// Match returns the item whose accelerator matches msg.
func Match(menus []Menu, msg tea.KeyMsg) (Item, bool) {
	for _, m := range menus {
		for _, it := range m.Items {
			if key.Matches(msg, it.Keys) {
				return it, true
			}
		}
	}
	return Item{}, false
}

// Find returns the menu and item for intent.
func Find(menus []Menu, intent dispatch.Intent) (Menu, Item, bool) {
	for _, m := range menus {
		for _, it := range m.Items {
			if it.Intent == intent {
				return m, it, true
			}
		}
	}
	return Menu{}, Item{}, false
}

// KeyMap adapts the menus to bubbles/help.
type KeyMap struct {
	Menus []Menu
	Short []dispatch.Intent
}

func (k KeyMap) ShortHelp() []key.Binding {
	out := []key.Binding{Bar}
	for _, intent := range k.Short {
		if _, it, ok := Find(k.Menus, intent); ok {
			out = append(out, it.Keys)
		}
	}
	return out
}

func (k KeyMap) FullHelp() [][]key.Binding {
	out := make([][]key.Binding, 0, len(k.Menus))
	for _, m := range k.Menus {
		col := make([]key.Binding, 0, len(m.Items))
		for _, it := range m.Items {
			col = append(col, it.Keys)
		}
		out = append(out, col)
	}
	return out
}

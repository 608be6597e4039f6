package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

var quitKey = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))

// browseKeyMap is active while the list and search box have focus. Any key
// not bound here is typed into the search box.
type browseKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Run    key.Binding
	Stop   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Clear  key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Stop, k.Add, k.Edit, k.Delete, quitKey}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Clear}, k.ShortHelp()}
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Save, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Save, k.Cancel, quitKey}}
}

type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

func (k confirmKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Yes, k.No} }

func (k confirmKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type promptKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
}

func (k promptKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Accept, k.Cancel} }

func (k promptKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var (
	browseKeys = browseKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "ctrl+k"), key.WithHelp("↑/ctrl+k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "ctrl+j"), key.WithHelp("↓/ctrl+j", "down")),
		Run:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Stop:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "stop")),
		Add:    key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add")),
		Edit:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit")),
		Delete: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
	}

	formKeys = formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}

	confirmKeys = confirmKeyMap{
		Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "delete")),
		No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "keep")),
	}

	promptKeys = promptKeyMap{
		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel run")),
	}
)

// keyMap returns the bindings the current mode responds to, for the help line.
func (a *App) keyMap() help.KeyMap {
	switch a.mode {
	case modeAdd, modeEdit:
		return formKeys
	case modeDelete:
		return confirmKeys
	case modeParam:
		return promptKeys
	default:
		return browseKeys
	}
}

func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle
	h.Styles.FullKey = helpKeyStyle
	h.Styles.FullDesc = helpStyle
	h.Styles.FullSeparator = helpStyle
	return h
}

package ui

import (
	"context"

	"commander/db"
	"commander/model"
	"commander/runner"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeDelete
	modeParam
)

// App is a terminal browser over a command store.
type App struct {
	store db.Store
	ctx   context.Context

	commands []model.Command
	filtered []model.Command
	cursor   int
	search   textinput.Model

	mode   mode
	width  int
	height int
	err    string
	status string
	help   help.Model

	// add and edit
	fields    []textinput.Model
	focus     int
	editingID int

	// run
	pending     model.Command
	paramNames  []string
	paramValues map[string]string
	paramIndex  int
	paramInput  textinput.Model
	running     bool
	runOutput   chan runner.OutputMsg
	cancelRun   context.CancelFunc
	output      viewport.Model
	outputLog   []string
}

// NewApp loads every command from store. ctx bounds store calls and any
// command started from the browser.
func NewApp(ctx context.Context, store db.Store) (*App, error) {
	commands, err := store.Repository().GetAllCommands(ctx)
	if err != nil {
		return nil, err
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "filter by how-to, line or platform"
	search.Focus()

	return &App{
		store:    store,
		ctx:      ctx,
		commands: commands,
		filtered: commands,
		search:   search,
		help:     newHelp(),
		output:   viewport.New(80, 10),
	}, nil
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

type outputMsg runner.OutputMsg

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case outputMsg:
		return a, a.handleOutput(runner.OutputMsg(msg))

	case tea.KeyMsg:
		a.err, a.status = "", ""
		if key.Matches(msg, quitKey) {
			a.stopRun()
			return a, tea.Quit
		}
		switch a.mode {
		case modeAdd, modeEdit:
			return a, a.updateForm(msg)
		case modeDelete:
			a.updateDelete(msg)
			return a, nil
		case modeParam:
			return a, a.updateParam(msg)
		default:
			return a, a.updateBrowse(msg)
		}
	}
	return a, nil
}

func (a *App) resize(width, height int) {
	a.width = width - 4
	a.height = height - 2
	a.output.Width = a.width - 4
	a.output.Height = a.height / 3
	a.help.Width = a.width
}

func (a *App) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, browseKeys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, browseKeys.Down):
		a.moveCursor(1)
	case key.Matches(msg, browseKeys.Run):
		if c, ok := a.selected(); ok && !a.running {
			return a.startRun(c)
		}
	case key.Matches(msg, browseKeys.Stop):
		if a.running {
			a.stopRun()
			a.status = "Stopped"
		}
	case key.Matches(msg, browseKeys.Add):
		return a.openForm(modeAdd, model.Command{})
	case key.Matches(msg, browseKeys.Edit):
		if c, ok := a.selected(); ok {
			return a.openForm(modeEdit, c)
		}
	case key.Matches(msg, browseKeys.Delete):
		if _, ok := a.selected(); ok {
			a.mode = modeDelete
		}
	case key.Matches(msg, browseKeys.Clear):
		a.search.SetValue("")
		a.filterCommands()
	default:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		a.filterCommands()
		return cmd
	}
	return nil
}

func (a *App) updateDelete(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		if c, ok := a.selected(); ok {
			if err := a.deleteCommand(c.ID); err != nil {
				a.err = err.Error()
			} else {
				a.status = "Deleted!"
				a.refreshCommands()
			}
		}
		a.mode = modeNormal
	case key.Matches(msg, confirmKeys.No):
		a.mode = modeNormal
	}
}

func (a *App) selected() (model.Command, bool) {
	if a.cursor < 0 || a.cursor >= len(a.filtered) {
		return model.Command{}, false
	}
	return a.filtered[a.cursor], true
}

func (a *App) moveCursor(delta int) {
	a.cursor = max(0, min(a.cursor+delta, len(a.filtered)-1))
}

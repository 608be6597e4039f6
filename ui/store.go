package ui

import (
	"commander/model"

	"github.com/sahilm/fuzzy"
)

// Each write runs in its own unit of work and is committed immediately.

func (a *App) addCommand(c *model.Command) error {
	repo := a.store.Repository()
	if err := repo.CreateCommand(c); err != nil {
		return err
	}
	return repo.SaveChanges(a.ctx)
}

func (a *App) updateCommand(c *model.Command) error {
	repo := a.store.Repository()
	stored, err := repo.GetCommandByID(a.ctx, c.ID)
	if err != nil {
		return err
	}
	stored.HowTo, stored.Line, stored.Platform = c.HowTo, c.Line, c.Platform
	if err := repo.UpdateCommand(stored); err != nil {
		return err
	}
	return repo.SaveChanges(a.ctx)
}

func (a *App) deleteCommand(id int) error {
	repo := a.store.Repository()
	stored, err := repo.GetCommandByID(a.ctx, id)
	if err != nil {
		return err
	}
	if err := repo.DeleteCommand(stored); err != nil {
		return err
	}
	return repo.SaveChanges(a.ctx)
}

func (a *App) refreshCommands() {
	commands, err := a.store.Repository().GetAllCommands(a.ctx)
	if err != nil {
		a.err = err.Error()
		return
	}
	a.commands = commands
	a.filterCommands()
}

// commandSource lets fuzzy match over how-to, line and platform at once.
type commandSource []model.Command

func (s commandSource) String(i int) string {
	return s[i].HowTo + " " + s[i].Line + " " + s[i].Platform
}

func (s commandSource) Len() int { return len(s) }

func (a *App) filterCommands() {
	if q := a.search.Value(); q == "" {
		a.filtered = a.commands
	} else {
		matches := fuzzy.FindFrom(q, commandSource(a.commands))
		a.filtered = make([]model.Command, len(matches))
		for i, m := range matches {
			a.filtered[i] = a.commands[m.Index]
		}
	}
	a.cursor = max(0, min(a.cursor, len(a.filtered)-1))
}

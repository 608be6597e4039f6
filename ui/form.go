package ui

import (
	"errors"
	"strings"

	"commander/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
)

const (
	fieldHowTo = iota
	fieldLine
	fieldPlatform
)

var fieldLabels = [...]string{
	fieldHowTo:    "How to",
	fieldLine:     "Line",
	fieldPlatform: "Platform",
}

func newField(placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetValue(value)
	return in
}

// openForm switches to m with the fields prefilled from c. c.ID is zero when
// adding.
func (a *App) openForm(m mode, c model.Command) tea.Cmd {
	a.mode = m
	a.editingID = c.ID
	a.fields = []textinput.Model{
		fieldHowTo:    newField("list files", c.HowTo, 250),
		fieldLine:     newField("ls -la {{dir}}", c.Line, 0),
		fieldPlatform: newField("linux, Windows, PowerShell", c.Platform, 0),
	}
	a.search.Blur()
	return a.focusField(fieldHowTo)
}

func (a *App) closeForm() tea.Cmd {
	a.mode = modeNormal
	a.fields = nil
	return a.search.Focus()
}

// focusField moves focus to field i, wrapping at either end.
func (a *App) focusField(i int) tea.Cmd {
	n := len(a.fields)
	a.focus = (i%n + n) % n
	for j := range a.fields {
		a.fields[j].Blur()
	}
	return a.fields[a.focus].Focus()
}

func (a *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, formKeys.Cancel):
		return a.closeForm()
	case key.Matches(msg, formKeys.Next):
		return a.focusField(a.focus + 1)
	case key.Matches(msg, formKeys.Prev):
		return a.focusField(a.focus - 1)
	case key.Matches(msg, formKeys.Save):
		return a.submitForm()
	}
	var cmd tea.Cmd
	a.fields[a.focus], cmd = a.fields[a.focus].Update(msg)
	return cmd
}

func (a *App) submitForm() tea.Cmd {
	c := model.Command{
		ID:       a.editingID,
		HowTo:    strings.TrimSpace(a.fields[fieldHowTo].Value()),
		Line:     strings.TrimSpace(a.fields[fieldLine].Value()),
		Platform: strings.TrimSpace(a.fields[fieldPlatform].Value()),
	}
	if err := c.Validate(); err != nil {
		a.err = formError(err)
		return nil
	}

	save, done := a.addCommand, "Added!"
	if a.mode == modeEdit {
		save, done = a.updateCommand, "Updated!"
	}
	if err := save(&c); err != nil {
		a.err = err.Error()
		return nil
	}

	a.status = done
	a.refreshCommands()
	return a.closeForm()
}

// formError names the fields that failed validation, in form order.
func formError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	return "Check " + strings.Join(names, ", ")
}

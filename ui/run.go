package ui

import (
	"context"
	"strings"

	"commander/model"
	"commander/runner"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// startRun asks for every {{param}} in c.Line before running it.
func (a *App) startRun(c model.Command) tea.Cmd {
	a.pending = c
	a.paramValues = make(map[string]string)
	a.paramNames = runner.ExtractParams(c.Line)
	if len(a.paramNames) == 0 {
		return a.execute()
	}
	a.mode = modeParam
	return a.askParam(0)
}

func (a *App) askParam(i int) tea.Cmd {
	a.paramIndex = i
	a.paramInput = textinput.New()
	a.paramInput.Prompt = "= "
	a.paramInput.Placeholder = a.paramNames[i]
	a.search.Blur()
	return a.paramInput.Focus()
}

func (a *App) updateParam(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, promptKeys.Cancel):
		a.mode = modeNormal
		return a.search.Focus()
	case key.Matches(msg, promptKeys.Accept):
		a.paramValues[a.paramNames[a.paramIndex]] = a.paramInput.Value()
		if a.paramIndex+1 < len(a.paramNames) {
			return a.askParam(a.paramIndex + 1)
		}
		return a.execute()
	}
	var cmd tea.Cmd
	a.paramInput, cmd = a.paramInput.Update(msg)
	return cmd
}

func (a *App) execute() tea.Cmd {
	line := runner.SubstituteParams(a.pending.Line, a.paramValues)

	a.mode = modeNormal
	a.running = true
	a.outputLog = nil
	a.appendOutput(cmdPreviewStyle.Render("$ "+line), "")

	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelRun = cancel
	a.runOutput = make(chan runner.OutputMsg)
	go runner.Run(ctx, a.pending.Platform, line, a.runOutput)

	return tea.Batch(a.search.Focus(), waitForOutput(a.runOutput))
}

func (a *App) handleOutput(msg runner.OutputMsg) tea.Cmd {
	if msg.Done {
		a.finishRun()
		if msg.ErrMsg != "" {
			a.appendOutput(errorStyle.Render("Error: " + msg.ErrMsg))
		}
		return nil
	}
	line := msg.Line
	if msg.IsErr {
		line = errorStyle.Render(line)
	}
	a.appendOutput(line)
	return waitForOutput(a.runOutput)
}

func (a *App) appendOutput(lines ...string) {
	a.outputLog = append(a.outputLog, lines...)
	a.output.SetContent(strings.Join(a.outputLog, "\n"))
	a.output.GotoBottom()
}

func (a *App) finishRun() {
	a.running = false
	a.runOutput = nil
	a.stopRun()
	a.cancelRun = nil
}

func (a *App) stopRun() {
	if a.cancelRun != nil {
		a.cancelRun()
	}
}

func waitForOutput(ch <-chan runner.OutputMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return outputMsg{Done: true}
		}
		return outputMsg(msg)
	}
}

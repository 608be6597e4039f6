package ui

import (
	"fmt"
	"strings"
)

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	sections := []string{a.viewHeader(), a.search.View()}
	switch a.mode {
	case modeAdd, modeEdit:
		sections = append(sections, a.viewForm())
	default:
		sections = append(sections, a.viewList())
		if s := a.viewPrompt(); s != "" {
			sections = append(sections, s)
		}
	}
	sections = append(sections, a.viewOutput())
	if s := a.viewStatus(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, a.help.View(a.keyMap()))

	return appStyle.Render(strings.Join(sections, "\n\n"))
}

func (a *App) viewHeader() string {
	header := titleStyle.Render("commander") + " " +
		mutedStyle.Render(fmt.Sprintf("%d of %d", len(a.filtered), len(a.commands)))
	if a.running {
		header += " " + warningStyle.Render("running")
	}
	return header
}

// viewList shows one row per command with the selected line underneath,
// scrolled so the cursor stays visible.
func (a *App) viewList() string {
	if len(a.filtered) == 0 {
		if a.search.Value() != "" {
			return mutedStyle.Render("No match.")
		}
		return mutedStyle.Render("Nothing stored yet. ctrl+a adds a command.")
	}

	rows := max(3, a.height-a.output.Height-14)
	start := max(0, a.cursor-rows+1)
	end := min(start+rows, len(a.filtered))

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		c := a.filtered[i]
		marker, style := "  ", normalStyle
		if i == a.cursor {
			marker, style = "▸ ", selectedStyle
		}
		lines = append(lines, marker+platformStyle.Render("["+c.Platform+"]")+" "+style.Render(c.HowTo))
	}
	if c, ok := a.selected(); ok {
		lines = append(lines, "", cmdPreviewStyle.Render("$ "+truncate(c.Line, a.width-8)))
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewPrompt() string {
	switch a.mode {
	case modeDelete:
		if c, ok := a.selected(); ok {
			return warningStyle.Render(fmt.Sprintf("Delete %q?", c.HowTo))
		}
	case modeParam:
		label := fmt.Sprintf("{{%s}} %d/%d", a.paramNames[a.paramIndex], a.paramIndex+1, len(a.paramNames))
		return labelStyle.Render(label) + " " + a.paramInput.View()
	}
	return ""
}

func (a *App) viewForm() string {
	title := "New command"
	if a.mode == modeEdit {
		title = fmt.Sprintf("Edit command #%d", a.editingID)
	}

	rows := []string{labelStyle.Render(title)}
	for i, in := range a.fields {
		style := inputStyle
		if i == a.focus {
			style = focusedInputStyle
		}
		rows = append(rows, mutedStyle.Render(fieldLabels[i]), style.Width(a.width-20).Render(in.View()))
	}
	return strings.Join(rows, "\n")
}

func (a *App) viewOutput() string {
	return outputTitleStyle.Render("OUTPUT") + "\n" +
		borderStyle.Width(a.width-4).Render(a.output.View())
}

func (a *App) viewStatus() string {
	switch {
	case a.err != "":
		return errorStyle.Render("Error: " + a.err)
	case a.status != "":
		return successStyle.Render(a.status)
	}
	return ""
}

func truncate(s string, n int) string {
	if n < 4 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// Package runner fills in and executes the Line of a stored command.
package runner

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"sync"
)

var paramRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// ExtractParams returns the distinct {{param}} names of line in order of
// first appearance.
func ExtractParams(line string) []string {
	matches := paramRegex.FindAllStringSubmatch(line, -1)
	seen := make(map[string]bool)
	var params []string
	for _, m := range matches {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			params = append(params, name)
		}
	}
	return params
}

// SubstituteParams replaces each {{param}} that has a value. Placeholders
// without a value are left as they are.
func SubstituteParams(line string, values map[string]string) string {
	return paramRegex.ReplaceAllStringFunc(line, func(m string) string {
		name := m[2 : len(m)-2]
		if v, ok := values[name]; ok {
			return v
		}
		return m
	})
}

// Shell returns the interpreter invocation for a command's Platform. Windows
// platforms run under cmd.exe, PowerShell under pwsh, everything else under sh.
func Shell(platform string) []string {
	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "powershell"), strings.Contains(p, "pwsh"):
		return []string{"pwsh", "-NoProfile", "-Command"}
	case strings.Contains(p, "windows"), strings.Contains(p, "cmd"):
		return []string{"cmd", "/C"}
	case p == "" && runtime.GOOS == "windows":
		return []string{"cmd", "/C"}
	default:
		return []string{"sh", "-c"}
	}
}

// OutputMsg is sent for each line of output and once more when the process ends.
type OutputMsg struct {
	Line   string
	IsErr  bool
	Done   bool
	ErrMsg string
}

// Run executes line with the shell for platform and streams its output to
// output, closing it when done. Cancelling ctx kills the process.
func Run(ctx context.Context, platform, line string, output chan<- OutputMsg) {
	defer close(output)

	shell := Shell(platform)
	c := exec.CommandContext(ctx, shell[0], append(shell[1:], line)...)

	stdout, err := c.StdoutPipe()
	if err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}

	if err := c.Start(); err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}

	var wg sync.WaitGroup
	stream := func(r io.Reader, isErr bool) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			output <- OutputMsg{Line: scanner.Text(), IsErr: isErr}
		}
	}
	wg.Add(2)
	go stream(stdout, false)
	go stream(stderr, true)
	wg.Wait()

	if err := c.Wait(); err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}
	output <- OutputMsg{Done: true}
}

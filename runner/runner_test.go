package runner

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestExtractParams(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{line: "ls -la", want: nil},
		{line: "ssh {{user}}@{{host}}", want: []string{"user", "host"}},
		{line: "cp {{src}} {{dst}} && rm {{src}}", want: []string{"src", "dst"}},
		{line: "echo {{ not a param }}", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractParams(tt.line))
		})
	}
}

func TestSubstituteParams(t *testing.T) {
	got := SubstituteParams("scp {{file}} {{user}}@{{host}}:{{file}}", map[string]string{
		"file": "a.txt",
		"host": "example.org",
	})
	assert.Equal(t, "scp a.txt {{user}}@example.org:a.txt", got)
}

func TestShell(t *testing.T) {
	assert.Equal(t, []string{"cmd", "/C"}, Shell("Windows 11"))
	assert.Equal(t, []string{"pwsh", "-NoProfile", "-Command"}, Shell("PowerShell"))
	assert.Equal(t, []string{"sh", "-c"}, Shell("linux"))
	assert.Equal(t, []string{"sh", "-c"}, Shell("macOS zsh"))
}

func collect(ch <-chan OutputMsg) []OutputMsg {
	var msgs []OutputMsg
	for m := range ch {
		msgs = append(msgs, m)
	}
	return msgs
}

func TestRun_StreamsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	ch := make(chan OutputMsg)
	go Run(context.Background(), "linux", "echo out; echo err 1>&2", ch)
	msgs := collect(ch)

	require.NotEmpty(t, msgs)
	last := msgs[len(msgs)-1]
	assert.True(t, last.Done)
	assert.Empty(t, last.ErrMsg)
	assert.Contains(t, msgs, OutputMsg{Line: "out"})
	assert.Contains(t, msgs, OutputMsg{Line: "err", IsErr: true})
}

func TestRun_ReportsExitError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	ch := make(chan OutputMsg)
	go Run(context.Background(), "linux", "exit 3", ch)
	msgs := collect(ch)

	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Done)
	assert.Contains(t, msgs[0].ErrMsg, "exit status 3")
}

func TestRun_Cancelled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan OutputMsg)
	go Run(ctx, "linux", "sleep 5", ch)
	msgs := collect(ch)

	require.NotEmpty(t, msgs)
	assert.NotEmpty(t, msgs[len(msgs)-1].ErrMsg)
}

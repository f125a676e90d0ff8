// Package ytdlp locates and fetches media by shelling out to the yt-dlp binary.
package ytdlp

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner runs an external command and returns its output streams.
// It exists so tests can stub out the yt-dlp binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// Run executes the command and captures stdout and stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

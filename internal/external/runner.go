// Package external launches the processes the tool hands work off to: the
// user's text editor and a speech synthesizer. Both go through Runner so
// callers can be tested without spawning anything.
package external

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/conorfennell/flashcard/internal/domain"
)

// Runner starts a process and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs processes with os/exec, attached to the given streams.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns an ExecRunner attached to the process's own terminal.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	slog.Debug("Running external command", "name", name, "args", args)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// Editor opens files in an interactive editor. Command may carry arguments,
// e.g. "code --wait".
type Editor struct {
	Command string
	Runner  Runner
}

// Edit blocks until the editor exits.
func (e Editor) Edit(ctx context.Context, path string) error {
	name, args, ok := splitCommand(e.Command)
	if !ok {
		return domain.ErrMissingEditor
	}
	return e.Runner.Run(ctx, name, append(args, path)...)
}

// Speaker reads text aloud with an external speech synthesizer.
type Speaker struct {
	Command string
	Runner  Runner
}

// Say blocks until the synthesizer has finished speaking text.
func (s Speaker) Say(ctx context.Context, text string) error {
	name, args, ok := splitCommand(s.Command)
	if !ok {
		return fmt.Errorf("no speech command configured")
	}
	return s.Runner.Run(ctx, name, append(args, text)...)
}

func splitCommand(command string) (string, []string, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}

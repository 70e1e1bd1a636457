package hooks

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/raphi011/hookr/internal/config"
	"github.com/raphi011/hookr/internal/log"
)

// Executor spawns hook commands. Zero-value streams are left unconnected.
type Executor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecutor returns an executor that inherits the process's streams.
func NewExecutor() *Executor {
	return &Executor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Execute runs the command to completion in its configured directory.
// The child is not tied to ctx: once started it always runs to the end.
func (e *Executor) Execute(ctx context.Context, c config.Command) (Outcome, error) {
	path, err := c.LookPath()
	if err != nil {
		return Outcome{}, &SpawnError{Cmd: c.Cmd, Err: err}
	}

	cmd := exec.Command(path, c.Args...)
	cmd.Dir = c.Dir()
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	done := log.FromContext(ctx).Command(cmd.Dir, c.Cmd, c.Args...)
	start := time.Now()

	if err := cmd.Start(); err != nil {
		return Outcome{}, &SpawnError{Cmd: c.Cmd, Err: err}
	}
	err = cmd.Wait()
	done(time.Since(start))

	return outcomeOf(err)
}

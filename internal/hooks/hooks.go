package hooks

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// OutcomeKind describes how a hook command ended.
type OutcomeKind string

const (
	Success  OutcomeKind = "success"
	Failure  OutcomeKind = "failure"
	Signaled OutcomeKind = "signaled"
)

// Outcome is the result of a command that was started.
// ExitCode is only meaningful for Success and Failure.
type Outcome struct {
	Kind     OutcomeKind
	ExitCode int
}

// Succeeded reports whether the command exited with status 0.
func (o Outcome) Succeeded() bool {
	return o.Kind == Success
}

func (o Outcome) String() string {
	switch o.Kind {
	case Failure:
		return "exit status " + strconv.Itoa(o.ExitCode)
	case Signaled:
		return "terminated by signal"
	default:
		return string(o.Kind)
	}
}

// outcomeOf classifies the error returned by exec.Cmd.Wait.
func outcomeOf(err error) (Outcome, error) {
	if err == nil {
		return Outcome{Kind: Success}, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Outcome{}, err
	}
	if code := exitErr.ExitCode(); code != -1 {
		return Outcome{Kind: Failure, ExitCode: code}, nil
	}
	return Outcome{Kind: Signaled}, nil
}

// SpawnError is returned when a hook command could not be started.
type SpawnError struct {
	Cmd string
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Cmd, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// CommandError is returned when a hook command ran but did not succeed.
type CommandError struct {
	Name    string
	Outcome Outcome
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("hook %q failed: %s", e.Name, e.Outcome)
}

// ExitCode returns the status to exit with: the child's own code, or 1
// when it was killed by a signal.
func (e *CommandError) ExitCode() int {
	if e.Outcome.Kind == Failure && e.Outcome.ExitCode > 0 {
		return e.Outcome.ExitCode
	}
	return 1
}

package hooks

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/raphi011/hookr/internal/config"
	"github.com/raphi011/hookr/internal/glob"
	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/store"
	"github.com/raphi011/hookr/internal/trigger"
)

// ChangeDetector lists the changed files of the repository containing dir
// as absolute paths.
type ChangeDetector interface {
	ChangedPaths(ctx context.Context, dir string) ([]string, error)
}

// CommandExecutor runs a hook command.
type CommandExecutor interface {
	Execute(ctx context.Context, c config.Command) (Outcome, error)
}

// RunRecorder persists executed runs.
type RunRecorder interface {
	RecordRun(ctx context.Context, run store.Run) error
}

// MetricsRecorder observes executed runs.
type MetricsRecorder interface {
	ObserveRun(ctx context.Context, hook, outcome string, d time.Duration)
}

// Installer binds hooks to repository trigger points.
type Installer interface {
	Apply(ctx context.Context, repo, name string, point trigger.Point) error
	Remove(ctx context.Context, repo, name string, point trigger.Point) (bool, error)
	Delete(ctx context.Context, name string) (bool, error)
}

// Runner ties change detection, execution and bookkeeping together.
type Runner struct {
	Changes   ChangeDetector
	Executor  CommandExecutor
	Runs      RunRecorder
	Metrics   MetricsRecorder // optional
	Installer Installer
}

// Run executes hook if any changed file in repo matches one of its glob
// patterns, with paths matched relative to cwd. A hook without matches is
// skipped and leaves no trace in the store. A run that started is always
// recorded, even when ctx is cancelled while the command runs.
func (r *Runner) Run(ctx context.Context, hook config.Hook, repo, cwd string) error {
	l := log.FromContext(ctx)

	// Changed paths are symlink-free, so cwd must be too
	if resolved, err := filepath.EvalSymlinks(cwd); err == nil {
		cwd = resolved
	}

	gate, err := glob.New(hook.GlobPatterns)
	if err != nil {
		return fmt.Errorf("%w: hook %q: %v", config.ErrConfig, hook.Name, err)
	}

	paths, err := r.Changes.ChangedPaths(ctx, repo)
	if err != nil {
		return err
	}

	match, ok := gate.Match(paths, cwd)
	if !ok {
		l.Printf("skipping %s: no changed files match\n", hook.Name)
		return nil
	}
	l.Debug("running hook", "hook", hook.Name, "pattern", match.Pattern, "path", match.Path)

	start := time.Now()
	outcome, err := r.Executor.Execute(ctx, hook.Command)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	run := store.Run{
		Name:      hook.Name,
		Repo:      repo,
		Outcome:   string(outcome.Kind),
		StartedAt: start,
		Duration:  elapsed,
	}
	if outcome.Kind != Signaled {
		code := outcome.ExitCode
		run.ExitCode = &code
	}
	bookkeeping := context.WithoutCancel(ctx)
	if err := r.Runs.RecordRun(bookkeeping, run); err != nil {
		return err
	}
	if r.Metrics != nil {
		r.Metrics.ObserveRun(bookkeeping, hook.Name, string(outcome.Kind), elapsed)
	}

	if !outcome.Succeeded() {
		return &CommandError{Name: hook.Name, Outcome: outcome}
	}
	return nil
}

// Apply installs hook name at point in repo.
func (r *Runner) Apply(ctx context.Context, repo, name string, point trigger.Point) error {
	return r.Installer.Apply(ctx, repo, name, point)
}

// Remove unbinds hook name from point in repo.
func (r *Runner) Remove(ctx context.Context, repo, name string, point trigger.Point) (bool, error) {
	return r.Installer.Remove(ctx, repo, name, point)
}

// Delete retires hook name from every repository and the store.
func (r *Runner) Delete(ctx context.Context, name string) (bool, error) {
	return r.Installer.Delete(ctx, name)
}

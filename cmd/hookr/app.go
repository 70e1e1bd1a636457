package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/hookr/internal/config"
	"github.com/raphi011/hookr/internal/git"
	"github.com/raphi011/hookr/internal/hooks"
	"github.com/raphi011/hookr/internal/installer"
	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/paths"
	"github.com/raphi011/hookr/internal/store"
	"github.com/raphi011/hookr/internal/telemetry"
)

// App wires the store, installer and runner for commands that touch state.
type App struct {
	Store     *store.Store
	Installer *installer.Installer
	Runner    *hooks.Runner
	Metrics   telemetry.Recorder
}

// openApp opens the store and builds the runner around it.
func openApp(ctx context.Context) (*App, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debug("opening store", "path", dbPath)

	s, err := store.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	exe, err := executablePath()
	if err != nil {
		s.Close()
		return nil, err
	}

	metrics, err := telemetry.New(ctx, telemetry.LoadConfig(), version)
	if err != nil {
		log.FromContext(ctx).Printf("Warning: metrics disabled: %v\n", err)
		metrics = telemetry.NoOp{}
	}

	inst := installer.New(s, exe)
	return &App{
		Store:     s,
		Installer: inst,
		Metrics:   metrics,
		Runner: &hooks.Runner{
			Changes:   git.Detector{},
			Executor:  hooks.NewExecutor(),
			Runs:      s,
			Metrics:   metrics,
			Installer: inst,
		},
	}, nil
}

// Close flushes metrics and closes the store.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Metrics.Close(ctx), a.Store.Close())
}

// executablePath returns the absolute path of the running binary, which
// shims call back into.
func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate hookr executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// resolveConfigPath returns --config, $HOOKR_CONFIG or the XDG default.
func resolveConfigPath() (string, error) {
	if configFlag != "" {
		return paths.ExpandHome(configFlag)
	}
	return config.DefaultPath()
}

// resolveDBPath returns --db, $HOOKR_DB or the XDG default.
func resolveDBPath() (string, error) {
	if dbFlag != "" {
		return paths.ExpandHome(dbFlag)
	}
	return paths.DatabasePath()
}

// loadConfig loads the global config, merged with repo's local config when
// repo is not empty.
func loadConfig(ctx context.Context, repo string) (*config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debug("loading config", "path", path)

	global, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if repo == "" {
		return &global, nil
	}

	local, err := config.LoadLocal(repo)
	if err != nil {
		return nil, err
	}
	if local != nil {
		log.FromContext(ctx).Debug("merging local config", "path", local.Path)
	}
	return config.MergeLocal(&global, local), nil
}

// currentRepo returns the toplevel of the working tree containing the
// current directory. cwd has symlinks resolved, like the toplevel git
// reports.
func currentRepo(ctx context.Context) (repo, cwd string, err error) {
	cwd, err = os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(cwd); err == nil {
		cwd = resolved
	}
	if err := git.CheckGit(); err != nil {
		return "", "", err
	}
	repo, err = git.Toplevel(ctx, cwd)
	if err != nil {
		return "", "", err
	}
	return repo, cwd, nil
}

// isInteractive reports whether prompts can be shown.
func isInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

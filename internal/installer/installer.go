package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/raphi011/hookr/internal/git"
	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/store"
	"github.com/raphi011/hookr/internal/trigger"
)

var (
	// ErrAlreadyConfigured is returned when the hook is already bound at the
	// trigger point.
	ErrAlreadyConfigured = errors.New("hook already configured")

	// ErrForeignHookConflict is returned when an unmanaged hook script
	// already exists at the trigger point.
	ErrForeignHookConflict = errors.New("existing hook is not managed by hookr")

	// ErrNotInstalled is returned when no hook is bound at the trigger point.
	ErrNotInstalled = errors.New("no hooks installed")
)

// State is the management state of one trigger point in a repository.
type State int

const (
	Unmanaged State = iota
	ManagedSingle
	ManagedChained
)

func (s State) String() string {
	switch s {
	case ManagedSingle:
		return "managed"
	case ManagedChained:
		return "managed (chained)"
	default:
		return "unmanaged"
	}
}

// Store is the binding storage the installer needs.
type Store interface {
	RegisterHook(ctx context.Context, name string) error
	BindingExists(ctx context.Context, repo string, point trigger.Point) (bool, error)
	BindingMatches(ctx context.Context, repo string, point trigger.Point, name string) (bool, error)
	AddBinding(ctx context.Context, name, repo string, point trigger.Point) error
	RemoveBinding(ctx context.Context, name, repo string, point trigger.Point) (bool, error)
	Bindings(ctx context.Context, repo string, point trigger.Point) ([]string, error)
	BindingsForHook(ctx context.Context, name string) ([]store.Binding, error)
	DeleteHook(ctx context.Context, name string) (bool, error)
}

// Installer binds hooks to trigger points and keeps shims in sync.
type Installer struct {
	Store Store
	// Exe is the absolute path of the hookr binary written into shims.
	Exe string
}

// New creates an installer.
func New(s Store, exe string) *Installer {
	return &Installer{Store: s, Exe: exe}
}

// ShimPath returns the script git runs for point in repo.
func ShimPath(repo string, point trigger.Point) string {
	return filepath.Join(git.HooksDir(repo), point.String())
}

// Apply binds hook name to point in repo and rewrites the shim.
func (i *Installer) Apply(ctx context.Context, repo, name string, point trigger.Point) error {
	if !point.Valid() {
		return fmt.Errorf("invalid trigger point %s", point)
	}
	if err := git.RequireGitDir(repo); err != nil {
		return err
	}

	exists, err := i.Store.BindingExists(ctx, repo, point)
	if err != nil {
		return err
	}

	if exists {
		matches, err := i.Store.BindingMatches(ctx, repo, point, name)
		if err != nil {
			return err
		}
		if matches {
			return fmt.Errorf("%w: %s is already installed as %s in %s", ErrAlreadyConfigured, name, point, repo)
		}
		if err := checkOwned(ShimPath(repo, point)); err != nil {
			return err
		}
		log.FromContext(ctx).Printf("chaining %s onto the existing %s hook\n", name, point)
	} else {
		path := ShimPath(repo, point)
		if _, err := os.Lstat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrForeignHookConflict, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to inspect %s: %w", path, err)
		}
	}

	if err := i.Store.RegisterHook(ctx, name); err != nil {
		return err
	}
	if err := i.Store.AddBinding(ctx, name, repo, point); err != nil {
		return err
	}

	if err := i.Sync(ctx, repo, point); err != nil {
		if _, rbErr := i.Store.RemoveBinding(ctx, name, repo, point); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return nil
}

// Remove unbinds hook name from point in repo. The shim is rewritten, or
// deleted when no binding is left. Removing a hook that is not bound reports
// false. A shim that was replaced by another script is left alone and
// reported as ErrForeignHookConflict.
func (i *Installer) Remove(ctx context.Context, repo, name string, point trigger.Point) (bool, error) {
	bound, err := i.Store.BindingMatches(ctx, repo, point, name)
	if err != nil || !bound {
		return false, err
	}
	if err := checkOwned(ShimPath(repo, point)); err != nil {
		return false, err
	}

	removed, err := i.Store.RemoveBinding(ctx, name, repo, point)
	if err != nil || !removed {
		return false, err
	}
	return true, i.Sync(ctx, repo, point)
}

// Delete removes hook name from every repository it is bound in, then
// deletes its record, bindings and run history. Repositories that no longer
// exist are only cleaned up in the store.
//
// Every shim is checked before the store is touched, so a foreign script
// aborts the delete with nothing changed. The store is updated in one
// transaction. If rewriting a shim fails afterwards, the remaining shims are
// still rewritten and the stale ones are left for doctor to repair.
func (i *Installer) Delete(ctx context.Context, name string) (bool, error) {
	l := log.FromContext(ctx)

	bindings, err := i.Store.BindingsForHook(ctx, name)
	if err != nil {
		return false, err
	}

	var live []store.Binding
	for _, b := range bindings {
		if err := git.RequireGitDir(b.Repo); err != nil {
			l.Debug("skipping shim update", "repo", b.Repo, "reason", err)
			continue
		}
		if err := checkOwned(ShimPath(b.Repo, b.Point)); err != nil {
			return false, err
		}
		live = append(live, b)
	}

	deleted, err := i.Store.DeleteHook(ctx, name)
	if err != nil || !deleted {
		return deleted, err
	}

	var errs []error
	for _, b := range live {
		if err := i.Sync(ctx, b.Repo, b.Point); err != nil {
			errs = append(errs, err)
		}
	}
	return true, errors.Join(errs...)
}

// State reports how point in repo is managed.
func (i *Installer) State(ctx context.Context, repo string, point trigger.Point) (State, error) {
	names, err := i.Store.Bindings(ctx, repo, point)
	if err != nil {
		return Unmanaged, err
	}
	switch len(names) {
	case 0:
		return Unmanaged, nil
	case 1:
		return ManagedSingle, nil
	default:
		return ManagedChained, nil
	}
}

// Script renders the shim for point in repo from its bindings.
func (i *Installer) Script(ctx context.Context, repo string, point trigger.Point) (string, error) {
	names, err := i.Store.Bindings(ctx, repo, point)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w at %s in %s", ErrNotInstalled, point, repo)
	}
	return Render(i.Exe, names), nil
}

// Sync makes the shim for point in repo reflect its bindings. An existing
// file that hookr did not write is never replaced or removed.
func (i *Installer) Sync(ctx context.Context, repo string, point trigger.Point) error {
	names, err := i.Store.Bindings(ctx, repo, point)
	if err != nil {
		return err
	}

	path := ShimPath(repo, point)
	if err := checkOwned(path); err != nil {
		return err
	}
	if len(names) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		log.FromContext(ctx).Debug("removed shim", "path", path)
		return nil
	}

	if err := writeShim(path, Render(i.Exe, names)); err != nil {
		return err
	}
	log.FromContext(ctx).Debug("wrote shim", "path", path, "hooks", len(names))
	return nil
}

// checkOwned returns ErrForeignHookConflict when path exists and is not a
// shim written by hookr. A missing file is fine.
func checkOwned(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrForeignHookConflict, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, len(Header))
	if _, err := io.ReadFull(f, head); err != nil || string(head) != Header {
		return fmt.Errorf("%w: %s was replaced by another script", ErrForeignHookConflict, path)
	}
	return nil
}

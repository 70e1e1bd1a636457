package git

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// IgnoredDirs are directory names whose untracked contents never count as
// changes.
var IgnoredDirs = []string{".cache", ".direnv", ".venv", "__pycache__", "node_modules"}

// StatusEntry is one record of `git status --porcelain=v1`.
type StatusEntry struct {
	Index    byte   // X: index vs HEAD
	Worktree byte   // Y: worktree vs index
	Path     string // slash separated, relative to the toplevel
}

// Staged reports an added, modified or deleted path in the index.
func (e StatusEntry) Staged() bool {
	return isChange(e.Index)
}

// Unstaged reports an added, modified or deleted path in the worktree,
// including untracked files.
func (e StatusEntry) Unstaged() bool {
	return e.Untracked() || isChange(e.Worktree)
}

// Untracked reports a path git does not track.
func (e StatusEntry) Untracked() bool {
	return e.Index == '?' && e.Worktree == '?'
}

func isChange(c byte) bool {
	return c == 'A' || c == 'M' || c == 'D'
}

// Status returns the porcelain status of the working tree at dir, with
// untracked directories expanded to their files.
func Status(ctx context.Context, dir string) ([]StatusEntry, error) {
	out, err := outputGit(ctx, dir, "status", "--porcelain=v1", "-z", "--no-renames", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	return parseStatus(out)
}

// parseStatus parses NUL separated porcelain v1 output.
func parseStatus(data []byte) ([]StatusEntry, error) {
	var entries []StatusEntry
	records := bytes.Split(data, []byte{0})
	for i := 0; i < len(records); i++ {
		rec := records[i]
		if len(rec) == 0 {
			continue
		}
		if len(rec) < 4 || rec[2] != ' ' {
			return nil, fmt.Errorf("malformed status record %q", rec)
		}
		e := StatusEntry{Index: rec[0], Worktree: rec[1], Path: string(rec[3:])}
		// renames and copies carry their source path as an extra record
		if e.Index == 'R' || e.Index == 'C' {
			i++
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// UnpushedPaths returns paths that differ between the upstream tracking ref
// and HEAD, relative to the toplevel. Without an upstream it returns nil.
func UnpushedPaths(ctx context.Context, dir string) ([]string, error) {
	upstream, ok := Upstream(ctx, dir)
	if !ok {
		return nil, nil
	}
	if !HasCommits(ctx, dir) {
		return nil, ErrNoCommits
	}
	out, err := outputGit(ctx, dir, "diff", "--name-only", "-z", "--no-renames", upstream, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("git diff %s HEAD: %w", upstream, err)
	}
	var paths []string
	for _, p := range bytes.Split(out, []byte{0}) {
		if len(p) > 0 {
			paths = append(paths, string(p))
		}
	}
	return paths, nil
}

// ChangedPaths returns the absolute, de-duplicated and sorted set of paths
// that are staged, unstaged, untracked or committed but not pushed in the
// working tree containing dir.
func ChangedPaths(ctx context.Context, dir string) ([]string, error) {
	top, err := Toplevel(ctx, dir)
	if err != nil {
		return nil, err
	}

	entries, err := Status(ctx, top)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	add := func(rel string) {
		seen[filepath.Join(top, filepath.FromSlash(rel))] = struct{}{}
	}

	for _, e := range entries {
		if e.Untracked() && inIgnoredDir(e.Path) {
			continue
		}
		if e.Staged() || e.Unstaged() {
			add(e.Path)
		}
	}

	unpushed, err := UnpushedPaths(ctx, top)
	if err != nil {
		return nil, err
	}
	for _, p := range unpushed {
		add(p)
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths, nil
}

// inIgnoredDir reports whether any directory component of the slash
// separated path is in IgnoredDirs.
func inIgnoredDir(path string) bool {
	parts := strings.Split(path, "/")
	for _, dir := range parts[:len(parts)-1] {
		if slices.Contains(IgnoredDirs, dir) {
			return true
		}
	}
	return false
}

// Detector adapts ChangedPaths to an interface value.
type Detector struct{}

// ChangedPaths implements the hooks change detector.
func (Detector) ChangedPaths(ctx context.Context, dir string) ([]string, error) {
	return ChangedPaths(ctx, dir)
}

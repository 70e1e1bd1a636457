package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Toplevel returns the root of the working tree containing dir.
func Toplevel(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %s: %v", ErrNotARepository, dir, err)
	}
	top := strings.TrimSpace(string(out))
	if top == "" {
		return "", fmt.Errorf("%w: %s", ErrNotARepository, dir)
	}
	return top, nil
}

// RequireGitDir checks that repo contains a .git directory. Linked worktrees
// and submodules, where .git is a file, are rejected.
func RequireGitDir(repo string) error {
	info, err := os.Stat(filepath.Join(repo, ".git"))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w in %s", ErrNoGitDir, repo)
	}
	return nil
}

// HooksDir returns the hook directory of a repository with a .git directory.
func HooksDir(repo string) string {
	return filepath.Join(repo, ".git", "hooks")
}

// HasCommits reports whether HEAD resolves to a commit.
func HasCommits(ctx context.Context, dir string) bool {
	return runGit(ctx, dir, "rev-parse", "--verify", "--quiet", "HEAD^{commit}") == nil
}

// Upstream returns the upstream tracking ref of the current branch, e.g.
// "origin/main". ok is false when no upstream is configured or HEAD is
// detached.
func Upstream(ctx context.Context, dir string) (ref string, ok bool) {
	out, err := outputGit(ctx, dir, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	if err != nil {
		return "", false
	}
	ref = strings.TrimSpace(string(out))
	return ref, ref != ""
}

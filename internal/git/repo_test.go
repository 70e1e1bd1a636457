package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestToplevel(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t, true)
	writeFile(t, repo, "a/b/c.txt", "x")

	got, err := Toplevel(context.Background(), filepath.Join(repo, "a", "b"))
	if err != nil {
		t.Fatalf("Toplevel() error = %v", err)
	}
	if got != repo {
		t.Errorf("Toplevel() = %q, want %q", got, repo)
	}
}

func TestRequireGitDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := RequireGitDir(dir); !errors.Is(err, ErrNoGitDir) {
		t.Errorf("RequireGitDir(no .git) = %v, want ErrNoGitDir", err)
	}

	// a .git file, as in linked worktrees, is not accepted
	if err := os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := RequireGitDir(dir); !errors.Is(err, ErrRepository) {
		t.Errorf("RequireGitDir(.git file) = %v, want ErrRepository", err)
	}

	other := t.TempDir()
	if err := os.Mkdir(filepath.Join(other, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := RequireGitDir(other); err != nil {
		t.Errorf("RequireGitDir(.git dir) = %v, want nil", err)
	}
}

func TestHasCommits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if HasCommits(ctx, setupTestRepo(t, false)) {
		t.Error("HasCommits(fresh repo) = true, want false")
	}
	if !HasCommits(ctx, setupTestRepo(t, true)) {
		t.Error("HasCommits(committed repo) = false, want true")
	}
}

func TestUpstream_None(t *testing.T) {
	t.Parallel()

	if ref, ok := Upstream(context.Background(), setupTestRepo(t, true)); ok {
		t.Errorf("Upstream() = %q, true; want no upstream", ref)
	}
}

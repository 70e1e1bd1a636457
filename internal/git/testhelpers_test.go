package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// gitCmd runs git in dir and fails the test on error.
func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// writeFile creates name (and its parents) below dir.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// setupTestRepo creates a git repo in a temp dir. With commit set it
// contains one commit adding README.md.
func setupTestRepo(t *testing.T, commit bool) string {
	t.Helper()
	if err := CheckGit(); err != nil {
		t.Skip(err)
	}

	repo := resolvePath(t, t.TempDir())
	gitCmd(t, repo, "init", "-q")
	gitCmd(t, repo, "config", "user.email", "test@test.com")
	gitCmd(t, repo, "config", "user.name", "Test User")
	gitCmd(t, repo, "config", "commit.gpgsign", "false")

	if commit {
		writeFile(t, repo, "README.md", "# test\n")
		gitCmd(t, repo, "add", "README.md")
		gitCmd(t, repo, "commit", "-q", "-m", "Initial commit")
	}
	return repo
}

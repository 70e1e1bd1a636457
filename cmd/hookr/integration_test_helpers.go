//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/raphi011/hookr/internal/output"
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
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

// setupTestRepo creates a git repo with an initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	repoPath := filepath.Join(resolvePath(t, dir), name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	gitCmd(t, repoPath, "init")
	gitCmd(t, repoPath, "config", "user.email", "test@test.com")
	gitCmd(t, repoPath, "config", "user.name", "Test User")
	gitCmd(t, repoPath, "config", "commit.gpgsign", "false")

	writeFile(t, filepath.Join(repoPath, "README.md"), "# "+name+"\n", 0644)
	gitCmd(t, repoPath, "add", "README.md")
	gitCmd(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// testEnv is an isolated config, database and repository.
type testEnv struct {
	repo   string
	config string
	db     string
	bin    string
}

// newTestEnv creates a repository, a bin dir with scripts and a config
// with hooks:
//   - "go" runs bin/check on **/*.go
//   - "docs" runs bin/check on docs/**/*.md
//   - "broken" runs bin/fail on **/*.go
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	tmp := t.TempDir()
	env := &testEnv{
		repo:   setupTestRepo(t, tmp, "repo"),
		config: filepath.Join(tmp, "config.toml"),
		db:     filepath.Join(tmp, "data", "hookr.db"),
		bin:    filepath.Join(resolvePath(t, tmp), "bin"),
	}

	writeFile(t, filepath.Join(env.bin, "check"), "#!/bin/sh\nexit 0\n", 0755)
	writeFile(t, filepath.Join(env.bin, "fail"), "#!/bin/sh\nexit 3\n", 0755)

	writeFile(t, env.config, `
[[hooks]]
name = "go"
glob_pattern = ["**/*.go"]
[hooks.command]
cmd = "check"
directory = "`+env.bin+`"

[[hooks]]
name = "docs"
glob_pattern = ["docs/**/*.md"]
[hooks.command]
cmd = "./check"
directory = "`+env.bin+`"

[[hooks]]
name = "broken"
glob_pattern = ["**/*.go"]
[hooks.command]
cmd = "fail"
directory = "`+env.bin+`"
`, 0644)

	t.Chdir(env.repo)
	return env
}

// run executes hookr with the environment's config and database and
// returns what it printed to stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	ctx := output.WithPrinter(context.Background(), &buf)

	root := newRootCmd()
	root.SetArgs(append([]string{"--config", e.config, "--db", e.db, "-q"}, args...))
	err := root.ExecuteContext(ctx)
	return buf.String(), err
}

func (e *testEnv) shim(point string) string {
	return filepath.Join(e.repo, ".git", "hooks", point)
}

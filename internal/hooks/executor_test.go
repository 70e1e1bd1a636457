package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/hookr/internal/config"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
}

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecutor_Execute(t *testing.T) {
	t.Parallel()
	requireSh(t)

	dir := t.TempDir()
	writeScript(t, dir, "ok", `echo "ran in $(pwd) with $1"`)
	writeScript(t, dir, "fail", "exit 7")
	writeScript(t, dir, "killed", "kill -TERM $$")

	tests := []struct {
		name string
		cmd  string
		want Outcome
	}{
		{"success", "ok", Outcome{Kind: Success}},
		{"failure", "fail", Outcome{Kind: Failure, ExitCode: 7}},
		{"signaled", "killed", Outcome{Kind: Signaled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout bytes.Buffer
			e := &Executor{Stdout: &stdout, Stderr: &stdout}
			got, err := e.Execute(context.Background(), config.Command{
				Cmd:       tt.cmd,
				Args:      config.Args{"arg one"},
				Directory: &dir,
			})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Execute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExecutor_Output(t *testing.T) {
	t.Parallel()
	requireSh(t)

	dir := t.TempDir()
	writeScript(t, dir, "ok", `echo "$1"`)

	var stdout bytes.Buffer
	e := &Executor{Stdout: &stdout}
	if _, err := e.Execute(context.Background(), config.Command{
		Cmd:       "./ok",
		Args:      config.Args{"arg one"},
		Directory: &dir,
	}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "arg one" {
		t.Errorf("stdout = %q, want %q", got, "arg one")
	}
}

func TestExecutor_SpawnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	e := &Executor{}
	_, err := e.Execute(context.Background(), config.Command{Cmd: "hookr-definitely-missing", Directory: &dir})

	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("Execute() error = %v, want *SpawnError", err)
	}
	if !errors.Is(err, config.ErrNotExecutable) {
		t.Errorf("Execute() error = %v, want ErrNotExecutable", err)
	}
}

func TestExecutor_RelativeDirectory(t *testing.T) {
	requireSh(t)

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "tools"), 0755); err != nil {
		t.Fatal(err)
	}
	writeScript(t, filepath.Join(root, "tools"), "check.sh", "pwd")
	t.Chdir(root)

	dir := "tools"
	c := config.Command{Cmd: "check.sh", Directory: &dir}
	if problems := config.ValidateHook(0, config.Hook{Name: "check", Command: c, GlobPatterns: []string{"*"}}); len(problems) != 0 {
		t.Fatalf("ValidateHook() = %v, want none", problems)
	}

	var stdout bytes.Buffer
	e := &Executor{Stdout: &stdout, Stderr: &stdout}
	got, err := e.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got.Kind != Success {
		t.Errorf("Execute() = %v, want success", got)
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout.String()), "tools") {
		t.Errorf("command ran in %q, want .../tools", strings.TrimSpace(stdout.String()))
	}
}

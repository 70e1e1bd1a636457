package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(cfg.Hooks) != 0 {
		t.Errorf("Load() hooks = %d, want 0", len(cfg.Hooks))
	}
	if cfg.Path != "" {
		t.Errorf("Load() path = %q, want empty", cfg.Path)
	}
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[[hooks]]
name = "lint"
glob_pattern = ["**/*.go", "go.mod"]
description = "run linters"
[hooks.command]
cmd = "golangci-lint"
args = "run   ./..."

[[hooks]]
name = "say"
glob_pattern = ["*"]
[hooks.command]
cmd = "echo"
args = ["hello world", "again"]
directory = "/tmp"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if got := cfg.Names(); strings.Join(got, ",") != "lint,say" {
		t.Fatalf("Names() = %v, want [lint say]", got)
	}

	lint := cfg.Hooks[0]
	if lint.Command.Cmd != "golangci-lint" {
		t.Errorf("cmd = %q, want golangci-lint", lint.Command.Cmd)
	}
	if got := []string(lint.Command.Args); strings.Join(got, "|") != "run|./..." {
		t.Errorf("args = %q, want [run ./...]", got)
	}
	if lint.Command.Directory != nil {
		t.Errorf("directory = %q, want unset", *lint.Command.Directory)
	}
	if lint.Description != "run linters" {
		t.Errorf("description = %q", lint.Description)
	}

	say := cfg.Hooks[1]
	if got := []string(say.Command.Args); len(got) != 2 || got[0] != "hello world" {
		t.Errorf("list args = %q, want [\"hello world\" again]", got)
	}
	if say.Command.Dir() != "/tmp" {
		t.Errorf("directory = %q, want /tmp", say.Command.Dir())
	}
}

func TestLoad_YAMLList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
- name: fmt
  command:
    cmd: cargo
    args: fmt --check
  glob_pattern:
    - "src/**/*.rs"
  description: check formatting
- name: test
  command:
    cmd: cargo
    args: [test, --all]
  glob_pattern: ["**/*.rs"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Hooks) != 2 {
		t.Fatalf("hooks = %d, want 2", len(cfg.Hooks))
	}
	if got := cfg.Hooks[0].Command.Args.String(); got != "fmt --check" {
		t.Errorf("args = %q, want %q", got, "fmt --check")
	}
	if got := cfg.Hooks[1].Command.Args.String(); got != "test --all" {
		t.Errorf("args = %q, want %q", got, "test --all")
	}
}

func TestLoad_YAMLMapping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
hooks:
  - name: docs
    command:
      cmd: make
      directory: ""
    glob_pattern: ["docs/**"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Hooks) != 1 {
		t.Fatalf("hooks = %d, want 1", len(cfg.Hooks))
	}
	// an explicit empty directory must survive loading so Validate can flag it
	if d := cfg.Hooks[0].Command.Directory; d == nil || *d != "" {
		t.Errorf("directory = %v, want pointer to empty string", d)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed toml", "config.toml", "[[hooks]\nname = "},
		{"unknown toml key", "config.toml", "[[hooks]]\nname = \"a\"\nglob = [\"*\"]\n"},
		{"bad args type", "config.toml", "[[hooks]]\nname = \"a\"\n[hooks.command]\ncmd = \"x\"\nargs = 3\n"},
		{"malformed yaml", "config.yml", "- name: [unclosed\n"},
		{"unknown yaml key", "config.yml", "- name: a\n  globs: [\"*\"]\n"},
		{"yaml scalar root", "config.yml", "just a string\n"},
		{"unsupported extension", "config.json", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() = nil error, want error")
			}
			if !errors.Is(err, ErrConfig) {
				t.Errorf("Load() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestLoad_EmptyYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yml", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Hooks) != 0 {
		t.Errorf("hooks = %d, want 0", len(cfg.Hooks))
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	cfg := &Config{Hooks: []Hook{{Name: "lint"}, {Name: "lint-go"}, {Name: "test"}}}

	h, err := cfg.Find("test")
	if err != nil {
		t.Fatalf("Find(test) error = %v", err)
	}
	if h.Name != "test" {
		t.Errorf("Find(test) = %q", h.Name)
	}

	_, err = cfg.Find("lnt")
	var unknown *UnknownHookError
	if !errors.As(err, &unknown) {
		t.Fatalf("Find(lnt) error = %v, want *UnknownHookError", err)
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("UnknownHookError should match ErrConfig")
	}
	if len(unknown.Suggestions) == 0 || unknown.Suggestions[0] != "lint" {
		t.Errorf("Suggestions = %v, want lint first", unknown.Suggestions)
	}
	if !strings.Contains(err.Error(), `did you mean "lint"`) {
		t.Errorf("Error() = %q, want suggestion", err.Error())
	}
}

func TestHookString(t *testing.T) {
	t.Parallel()

	dir := "/work"
	h := Hook{
		Name:         "lint",
		Command:      Command{Cmd: "golangci-lint", Args: Args{"run", "./..."}, Directory: &dir},
		GlobPatterns: []string{"**/*.go", "go.mod"},
		Description:  "run linters",
	}

	want := ` - lint:
  {
    cmd: golangci-lint run ./...
    directory: /work
    glob_pattern: [**/*.go, go.mod]
    description: run linters
  }`
	if got := h.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("HOOKR_CONFIG", "/tmp/hooks.yml")
		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath() error = %v", err)
		}
		if got != "/tmp/hooks.yml" {
			t.Errorf("DefaultPath() = %q, want /tmp/hooks.yml", got)
		}
	})

	t.Run("prefers existing yaml over missing toml", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("HOOKR_CONFIG", "")
		t.Setenv("XDG_CONFIG_HOME", xdg)
		if err := os.MkdirAll(filepath.Join(xdg, "hookr"), 0755); err != nil {
			t.Fatal(err)
		}
		want := writeFile(t, filepath.Join(xdg, "hookr"), "config.yml", "")

		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath() error = %v", err)
		}
		if got != want {
			t.Errorf("DefaultPath() = %q, want %q", got, want)
		}
	})

	t.Run("falls back to toml", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("HOOKR_CONFIG", "")
		t.Setenv("XDG_CONFIG_HOME", xdg)

		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath() error = %v", err)
		}
		if want := filepath.Join(xdg, "hookr", "config.toml"); got != want {
			t.Errorf("DefaultPath() = %q, want %q", got, want)
		}
	})
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	var cfg Config
	if _, err := toml.Decode(defaultConfig, &cfg); err != nil {
		t.Fatalf("default config is not valid TOML: %v", err)
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := Init(path, false); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Init(path, false); err == nil {
		t.Error("second Init() without force = nil, want error")
	}
	if err := Init(path, true); err != nil {
		t.Errorf("Init() with force error = %v", err)
	}
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/hookr/internal/paths"
)

// ErrConfig is matched by every configuration error: missing or malformed
// files, unknown hooks and validation failures.
var ErrConfig = errors.New("config error")

// Command is the process a hook runs.
type Command struct {
	Cmd  string `toml:"cmd" yaml:"cmd"`
	Args Args   `toml:"args" yaml:"args"`
	// Directory is nil when not configured, so that an explicitly empty
	// value can be reported by Validate.
	Directory *string `toml:"directory" yaml:"directory"`
}

// Dir returns the configured working directory or "".
func (c Command) Dir() string {
	if c.Directory == nil {
		return ""
	}
	return *c.Directory
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Cmd
	}
	return c.Cmd + " " + c.Args.String()
}

// Hook is a reusable hook definition.
type Hook struct {
	Name         string   `toml:"name" yaml:"name"`
	Command      Command  `toml:"command" yaml:"command"`
	GlobPatterns []string `toml:"glob_pattern" yaml:"glob_pattern"`
	Description  string   `toml:"description" yaml:"description"`
	// Enabled is only meaningful in a repo-local config, where false
	// drops a globally defined hook of the same name.
	Enabled *bool `toml:"enabled" yaml:"enabled"`
}

// IsEnabled returns true unless the hook was explicitly disabled.
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// String renders the hook for listings.
func (h Hook) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, " - %s:\n  {\n", h.Name)
	fmt.Fprintf(&b, "    cmd: %s\n", h.Command)
	if h.Command.Directory != nil {
		fmt.Fprintf(&b, "    directory: %s\n", h.Command.Dir())
	}
	fmt.Fprintf(&b, "    glob_pattern: [%s]\n", strings.Join(h.GlobPatterns, ", "))
	if h.Description != "" {
		fmt.Fprintf(&b, "    description: %s\n", h.Description)
	}
	b.WriteString("  }")
	return b.String()
}

// Config holds the ordered hook definitions.
type Config struct {
	Hooks []Hook `toml:"hooks" yaml:"hooks"`

	// Path is the file the config was read from; empty if none existed.
	Path string `toml:"-" yaml:"-"`
}

// Names returns hook names in configured order.
func (c *Config) Names() []string {
	names := make([]string, len(c.Hooks))
	for i, h := range c.Hooks {
		names[i] = h.Name
	}
	return names
}

// Find returns the hook called name. Unknown names yield an
// *UnknownHookError carrying close matches.
func (c *Config) Find(name string) (Hook, error) {
	for _, h := range c.Hooks {
		if h.Name == name {
			return h, nil
		}
	}
	return Hook{}, &UnknownHookError{Name: name, Suggestions: suggest(name, c.Names())}
}

// UnknownHookError is returned by Find.
type UnknownHookError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownHookError) Error() string {
	msg := fmt.Sprintf("unknown hook %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += ", did you mean " + formatOptions(e.Suggestions) + "?"
	}
	return msg
}

func (e *UnknownHookError) Is(target error) bool {
	return target == ErrConfig
}

// suggest returns up to three names that fuzzily match name, best first.
func suggest(name string, names []string) []string {
	var out []string
	for _, m := range fuzzy.Find(name, names) {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// configFileNames are tried in order inside the config directory.
var configFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// DefaultPath returns $HOOKR_CONFIG if set, otherwise the first existing
// config file in the hookr config directory, falling back to config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv("HOOKR_CONFIG"); p != "" {
		return paths.ExpandHome(p)
	}
	dir, err := paths.ConfigDir()
	if err != nil {
		return "", err
	}
	for _, name := range configFileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return filepath.Join(dir, configFileNames[0]), nil
}

// Load reads the config at path. The format is chosen by extension.
// A missing file yields an empty config (no error).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%w: failed to read %s: %v", ErrConfig, path, err)
	}

	cfg, err := decode(path, data)
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path

	for i := range cfg.Hooks {
		if err := expandDirectory(&cfg.Hooks[i], ""); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func decode(path string, data []byte) (Config, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return decodeTOML(path, data)
	case ".yaml", ".yml":
		return decodeYAML(path, data)
	default:
		return Config{}, fmt.Errorf("%w: unsupported config format %q for %s: must be %s",
			ErrConfig, ext, path, formatOptions([]string{".toml", ".yaml", ".yml"}))
	}
}

func decodeTOML(path string, data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: failed to parse %s: %v", ErrConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrConfig, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// decodeYAML accepts either a top-level list of hooks or a mapping with a
// hooks key.
func decodeYAML(path string, data []byte) (Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Config{}, fmt.Errorf("%w: failed to parse %s: %v", ErrConfig, path, err)
	}
	if len(root.Content) == 0 {
		return Config{}, nil
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var err error
	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		err = dec.Decode(&cfg.Hooks)
	case yaml.MappingNode:
		err = dec.Decode(&cfg)
	default:
		return Config{}, fmt.Errorf("%w: %s: expected a list of hooks or a hooks mapping", ErrConfig, path)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: failed to parse %s: %v", ErrConfig, path, err)
	}
	return cfg, nil
}

// expandDirectory expands ~ in the hook's working directory and, when base
// is set, resolves relative directories against it.
func expandDirectory(h *Hook, base string) error {
	if h.Command.Directory == nil || *h.Command.Directory == "" {
		return nil
	}
	dir, err := paths.ExpandHome(*h.Command.Directory)
	if err != nil {
		return fmt.Errorf("%w: hook %q: %v", ErrConfig, h.Name, err)
	}
	if base != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(base, dir)
	}
	h.Command.Directory = &dir
	return nil
}

const defaultConfig = `# hookr configuration
#
# Each [[hooks]] entry defines a reusable hook. Install it into a repository
# with "hookr apply <name> <trigger>", e.g. "hookr apply lint pre-commit".
#
# A hook only runs its command when at least one changed file (staged,
# unstaged, untracked or committed but not pushed) matches one of its
# glob patterns. "*" stays inside one directory, "**" crosses directories.
# Paths are matched relative to the directory git runs the hook from
# (the repository root).
#
# [[hooks]]
# name = "gofmt"
# description = "Check formatting of Go files"
# glob_pattern = ["**/*.go"]
# [hooks.command]
# cmd = "gofmt"
# args = "-l ."              # split on whitespace, no quoting
#
# [[hooks]]
# name = "lint"
# glob_pattern = ["**/*.go", "go.mod"]
# [hooks.command]
# cmd = "golangci-lint"
# args = ["run", "./..."]    # a list keeps arguments containing spaces intact
# directory = "~/src/project" # optional working directory
#
# Repositories can add or override hooks in a .hookr.toml (or .hookr.yml)
# at their root. Set enabled = false there to drop a global hook.
`

// Init creates a default config file at path.
// If force is true, overwrites an existing file.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

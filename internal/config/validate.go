package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/raphi011/hookr/internal/glob"
)

// FieldError is a single validation problem scoped to one hook field.
type FieldError struct {
	Index   int    // position of the hook in the config
	Hook    string // hook name, may be empty
	Field   string // e.g. "name", "command.cmd", "glob_pattern[1]"
	Message string
}

func (e FieldError) Error() string {
	label := e.Hook
	if label == "" {
		label = fmt.Sprintf("hooks[%d]", e.Index)
	}
	return fmt.Sprintf("%s: %s: %s", label, e.Field, e.Message)
}

// ValidationError collects every problem found by Validate.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid configuration (%d problems):", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrConfig
}

// Validate checks every hook without executing anything and returns a
// *ValidationError listing all problems, or nil.
func Validate(cfg *Config) error {
	var problems []FieldError

	seen := make(map[string]int, len(cfg.Hooks))
	for i, h := range cfg.Hooks {
		problems = append(problems, ValidateHook(i, h)...)

		if h.Name == "" {
			continue
		}
		if first, dup := seen[h.Name]; dup {
			problems = append(problems, FieldError{
				Index:   i,
				Hook:    h.Name,
				Field:   "name",
				Message: fmt.Sprintf("duplicate name (first defined at hooks[%d])", first),
			})
			continue
		}
		seen[h.Name] = i
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// ValidateHook returns the problems of a single hook definition.
func ValidateHook(index int, h Hook) []FieldError {
	var problems []FieldError
	add := func(field, format string, args ...any) {
		problems = append(problems, FieldError{
			Index:   index,
			Hook:    h.Name,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if strings.TrimSpace(h.Name) == "" {
		add("name", "must not be empty")
	} else if strings.ContainsAny(h.Name, " \t\n'\"") {
		add("name", "must not contain whitespace or quotes")
	}

	dirOK := true
	if h.Command.Directory != nil {
		dir := *h.Command.Directory
		switch info, err := os.Stat(dir); {
		case strings.TrimSpace(dir) == "":
			add("command.directory", "must not be empty when given")
			dirOK = false
		case err != nil:
			add("command.directory", "%q does not exist", dir)
			dirOK = false
		case !info.IsDir():
			add("command.directory", "%q is not a directory", dir)
			dirOK = false
		}
	}

	if strings.TrimSpace(h.Command.Cmd) == "" {
		add("command.cmd", "must not be empty")
	} else if dirOK {
		if _, err := h.Command.LookPath(); err != nil {
			add("command.cmd", "%v", err)
		}
	}

	if len(h.GlobPatterns) == 0 {
		add("glob_pattern", "at least one pattern is required")
	}
	for i, p := range h.GlobPatterns {
		if err := glob.Validate(p); err != nil {
			add(fmt.Sprintf("glob_pattern[%d]", i), "invalid pattern %q", p)
		}
	}

	return problems
}

// ErrNotExecutable is returned by LookPath when the command cannot be run.
var ErrNotExecutable = errors.New("executable not found")

// LookPath resolves the command's executable the way it will be spawned.
// Paths containing a separator are taken relative to the working directory.
// Bare names are looked up in the working directory first, then on PATH.
// The result is absolute, so it stays valid once the child's working
// directory is set.
func (c Command) LookPath() (string, error) {
	name := c.Cmd
	dir := c.Dir()

	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		path := name
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		if err := checkExecutable(path); err != nil {
			return "", err
		}
		return filepath.Abs(path)
	}

	if dir != "" {
		path := filepath.Join(dir, name)
		if checkExecutable(path) == nil {
			return filepath.Abs(path)
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		if dir != "" {
			return "", fmt.Errorf("%w: %q is neither in %s nor on PATH", ErrNotExecutable, name, dir)
		}
		return "", fmt.Errorf("%w: %q is not on PATH", ErrNotExecutable, name)
	}
	return path, nil
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotExecutable, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotExecutable, path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable", ErrNotExecutable, path)
	}
	return nil
}

// formatOptions formats a list of values for messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

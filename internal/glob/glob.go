// Package glob decides whether a hook should run by matching changed file
// paths against the hook's glob patterns.
//
// Patterns use literal-separator semantics: "*" never crosses a "/" and
// "**" is needed to span directories. "src/*.go" matches "src/a.go" but not
// "src/sub/a.go"; "src/**/*.go" matches both.
package glob

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadPattern is returned for patterns that cannot be compiled.
var ErrBadPattern = doublestar.ErrBadPattern

// Result records which pattern matched which path.
type Result struct {
	Pattern string
	// Path is the matched path, relative to the working directory.
	Path string
}

// Gate is an ordered, validated set of patterns.
type Gate struct {
	patterns []string
}

// Validate reports whether pattern is syntactically valid.
func Validate(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("empty pattern: %w", ErrBadPattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("%q: %w", pattern, ErrBadPattern)
	}
	return nil
}

// New validates every pattern and returns a gate that tries them in order.
// All invalid patterns are reported together.
func New(patterns []string) (*Gate, error) {
	var errs []error
	for _, p := range patterns {
		if err := Validate(p); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Gate{patterns: patterns}, nil
}

// Match makes each path relative to cwd and returns the first pattern, in
// configured order, that matches any of them. No paths or no match yields
// false.
func (g *Gate) Match(paths []string, cwd string) (Result, bool) {
	if len(paths) == 0 {
		return Result{}, false
	}

	rel := make([]string, len(paths))
	for i, p := range paths {
		rel[i] = relative(cwd, p)
	}

	for _, pattern := range g.patterns {
		for _, p := range rel {
			// patterns are validated in New
			if ok, _ := doublestar.Match(pattern, p); ok {
				return Result{Pattern: pattern, Path: p}, true
			}
		}
	}
	return Result{}, false
}

// relative returns p relative to cwd in slash form. Paths that cannot be
// made relative are matched as given.
func relative(cwd, p string) string {
	if cwd == "" || !filepath.IsAbs(p) {
		return filepath.ToSlash(filepath.Clean(p))
	}
	r, err := filepath.Rel(cwd, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(r)
}

package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/raphi011/hookr/internal/git"
	"github.com/raphi011/hookr/internal/installer"
	"github.com/raphi011/hookr/internal/store"
	"github.com/raphi011/hookr/internal/trigger"
)

// Bindings is the part of the store doctor inspects and repairs.
type Bindings interface {
	AllBindings(ctx context.Context) ([]store.Binding, error)
	RemoveBinding(ctx context.Context, name, repo string, point trigger.Point) (bool, error)
}

// Shims renders and rewrites shims from the recorded bindings.
type Shims interface {
	Script(ctx context.Context, repo string, point trigger.Point) (string, error)
	Sync(ctx context.Context, repo string, point trigger.Point) error
}

// Run checks every bound trigger point and prints a summary to w.
// With fix, repairable issues are fixed afterwards. The detected issues are
// returned either way.
func Run(ctx context.Context, b Bindings, sh Shims, w io.Writer, fix bool) ([]Issue, error) {
	fmt.Fprintln(w, "Checking bindings...")
	issues, stats, err := check(ctx, b, sh)
	if err != nil {
		return nil, err
	}

	printSummary(w, stats)

	if len(issues) == 0 {
		fmt.Fprintln(w, "\n✓ No issues found")
		return nil, nil
	}

	fmt.Fprintf(w, "\nFound %d issues:\n", len(issues))
	printIssuesByCategory(w, issues)

	if fix {
		return issues, fixAll(ctx, b, sh, w, issues)
	}

	fmt.Fprintln(w, "\nRun 'hookr doctor --fix' to repair.")
	return issues, nil
}

type target struct {
	repo  string
	point trigger.Point
}

// check groups bindings by repository and trigger point and inspects each
// group once.
func check(ctx context.Context, b Bindings, sh Shims) ([]Issue, IssueStats, error) {
	var stats IssueStats

	all, err := b.AllBindings(ctx)
	if err != nil {
		return nil, stats, err
	}

	var targets []target
	seen := make(map[target]bool)
	for _, binding := range all {
		t := target{repo: binding.Repo, point: binding.Point}
		if !seen[t] {
			seen[t] = true
			targets = append(targets, t)
		}
	}

	var issues []Issue
	repoOK := make(map[string]bool)
	for _, t := range targets {
		ok, checked := repoOK[t.repo]
		if !checked {
			if err := git.RequireGitDir(t.repo); err != nil {
				issues = append(issues, Issue{
					Key:         t.repo,
					Description: "repository no longer exists",
					FixAction:   FixDropBindings,
					Category:    CategoryRepo,
					Repo:        t.repo,
				})
				stats.ReposMissing++
			}
			ok = err == nil
			repoOK[t.repo] = ok
		}
		if !ok {
			continue
		}

		issue, found, err := checkShim(ctx, sh, t)
		if err != nil {
			return nil, stats, err
		}
		if !found {
			stats.ShimsHealthy++
			continue
		}
		if issue.FixAction == FixNone {
			stats.ShimsForeign++
		} else {
			stats.ShimsStale++
		}
		issues = append(issues, issue)
	}

	return issues, stats, nil
}

// checkShim compares the shim on disk with what the bindings render to.
func checkShim(ctx context.Context, sh Shims, t target) (Issue, bool, error) {
	path := installer.ShimPath(t.repo, t.point)
	issue := Issue{
		Key:       path,
		FixAction: FixRewrite,
		Category:  CategoryShim,
		Repo:      t.repo,
		Point:     t.point,
	}

	want, err := sh.Script(ctx, t.repo, t.point)
	if err != nil {
		return Issue{}, false, err
	}

	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		issue.Description = "shim missing"
		return issue, true, nil
	}
	if err != nil {
		return Issue{}, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		issue.Description = "not a regular file"
		issue.FixAction = FixNone
		return issue, true, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Issue{}, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	got := string(data)

	switch {
	case !strings.HasPrefix(got, installer.Header):
		issue.Description = "replaced by an unmanaged script"
		issue.FixAction = FixNone
	case got != want:
		issue.Description = "shim out of date"
	case info.Mode().Perm()&0111 == 0:
		issue.Description = "shim not executable"
	default:
		return Issue{}, false, nil
	}
	return issue, true, nil
}

// fixAll applies fixes for all detected issues.
func fixAll(ctx context.Context, b Bindings, sh Shims, w io.Writer, issues []Issue) error {
	fmt.Fprintln(w, "\nFixing issues...")

	var fixed, failed, skipped int
	var errs []error
	for _, issue := range issues {
		var err error
		switch issue.FixAction {
		case FixRewrite:
			err = sh.Sync(ctx, issue.Repo, issue.Point)
		case FixDropBindings:
			err = dropBindings(ctx, b, issue.Repo)
		default:
			fmt.Fprintf(w, "  - Skipped %s (fix manually)\n", issue.Key)
			skipped++
			continue
		}
		if err != nil {
			fmt.Fprintf(w, "  ✗ %s: %v\n", issue.Key, err)
			errs = append(errs, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "  ✓ Fixed %s\n", issue.Key)
		fixed++
	}

	fmt.Fprintf(w, "\nFixed %d, failed %d, skipped %d\n", fixed, failed, skipped)
	return errors.Join(errs...)
}

func dropBindings(ctx context.Context, b Bindings, repo string) error {
	all, err := b.AllBindings(ctx)
	if err != nil {
		return err
	}
	for _, binding := range all {
		if binding.Repo != repo {
			continue
		}
		if _, err := b.RemoveBinding(ctx, binding.Name, binding.Repo, binding.Point); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, stats IssueStats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  ✓ %d shims healthy\n", stats.ShimsHealthy)
	if stats.ShimsStale > 0 {
		fmt.Fprintf(w, "  ⚠ %d shims need rewriting\n", stats.ShimsStale)
	}
	if stats.ShimsForeign > 0 {
		fmt.Fprintf(w, "  ✗ %d shims replaced by other scripts\n", stats.ShimsForeign)
	}
	if stats.ReposMissing > 0 {
		fmt.Fprintf(w, "  ⚠ %d repositories missing\n", stats.ReposMissing)
	}
}

func printIssuesByCategory(w io.Writer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryRepo: "Repository issues",
		CategoryShim: "Shim issues",
	}

	for _, cat := range []IssueCategory{CategoryRepo, CategoryShim} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			fmt.Fprintf(w, "  • %s: %s\n", issue.Key, issue.Description)
		}
	}
}

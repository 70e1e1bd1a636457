package doctor

import "github.com/raphi011/hookr/internal/trigger"

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryRepo represents bound repositories that are gone.
	CategoryRepo IssueCategory = "repo"
	// CategoryShim represents shims that disagree with their bindings.
	CategoryShim IssueCategory = "shim"
)

// FixAction is what --fix does about an issue.
type FixAction string

const (
	// FixNone marks issues that need manual attention.
	FixNone FixAction = ""
	// FixRewrite regenerates the shim from its bindings.
	FixRewrite FixAction = "rewrite"
	// FixDropBindings removes every binding of the repository.
	FixDropBindings FixAction = "drop"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // shim or repository path
	Description string        // human-readable description
	FixAction   FixAction     // what --fix would do
	Category    IssueCategory // issue category
	Repo        string
	Point       trigger.Point // zero for repository issues
}

// IssueStats tracks counts by category.
type IssueStats struct {
	ShimsHealthy int // shims matching their bindings
	ShimsStale   int // shims --fix can rewrite
	ShimsForeign int // shims replaced by unmanaged scripts
	ReposMissing int // repositories that no longer exist
}

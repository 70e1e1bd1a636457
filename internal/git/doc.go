// Package git provides the repository introspection hookr needs, via the
// git CLI.
//
// All operations call git through package cmd rather than using Go git
// libraries. This keeps results identical to what the user's own git reports
// (index format, safe.directory, core.excludesFile) and avoids a large
// dependency for a handful of read-only queries.
//
// # Change Detection
//
// [ChangedPaths] returns every file a hook might care about:
//
//   - staged changes (index vs HEAD)
//   - unstaged changes and untracked files (worktree vs index), skipping
//     untracked files inside [IgnoredDirs]
//   - commits not yet pushed (upstream vs HEAD), when an upstream is set
//
// # Errors
//
// All repository errors match [ErrRepository] with errors.Is.
package git

// Package cmd provides helpers for executing helper commands (mostly git)
// with proper error handling.
//
// Commands run with a context and are traced through the context logger in
// verbose mode. Stderr is captured and returned as the error text so that
// failures read like the tool's own message:
//
//	out, err := cmd.OutputContext(ctx, repo, "git", "rev-parse", "--show-toplevel")
//	if err != nil {
//	    // err is git's stderr, e.g. "fatal: not a git repository ..."
//	}
//
// Hook commands themselves are not run through this package: they inherit
// the terminal's stdio and are classified by package hooks.
//
// # Design Notes
//
// hookr shells out to the git CLI rather than linking a Go git library.
// That keeps behaviour identical to what the user's git would report
// (index format, config, safe.directory rules).
package cmd

// Package hooks runs hook commands when a trigger point fires.
//
// A run is gated on the repository's changed files: the hook's glob patterns
// are matched against the staged, unstaged, untracked and unpushed paths,
// and the command only executes when at least one path matches.
//
// # Outcomes
//
// [Executor] spawns the command with the terminal's streams and classifies
// how it ended:
//
//   - [Success]: exit status 0
//   - [Failure]: any other exit status, carried in [Outcome.ExitCode]
//   - [Signaled]: terminated by a signal, no exit status
//
// A command that cannot be started at all is a [*SpawnError]. It is never
// recorded as a run.
//
// # Recording
//
// [Runner] records every executed run (successful or not) before reporting a
// failure, so the counters reflect what actually ran. Failed and signaled
// runs are returned as [*CommandError], whose exit code the CLI passes on to
// git.
package hooks

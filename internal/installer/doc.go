// Package installer writes the shim scripts git invokes at trigger points.
//
// Each (repository, trigger point) pair is in one of three states:
//
//   - [Unmanaged]: no hookr binding; any file at .git/hooks/<point> belongs
//     to someone else and is never touched
//   - [ManagedSingle]: one bound hook
//   - [ManagedChained]: several bound hooks, run in the order they were applied
//
// The shim is always regenerated from the bindings recorded in the store,
// so applying appends a line and removing drops exactly one:
//
//	#!/usr/bin/env sh
//	set -e
//	/usr/local/bin/hookr run fmt
//	/usr/local/bin/hookr run lint
//
// With set -e the first failing hook aborts the shim and git sees its exit
// status.
package installer

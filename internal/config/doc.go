// Package config handles loading and validation of hookr configuration.
//
// The global config lives at ~/.config/hookr/config.toml (or config.yaml /
// config.yml; $XDG_CONFIG_HOME and $HOOKR_CONFIG are honored). A repository
// may add or override hooks in a .hookr.toml, .hookr.yaml or .hookr.yml at
// its root; see [MergeLocal].
//
// # Hook Definitions
//
// TOML uses an array of tables:
//
//	[[hooks]]
//	name = "lint"
//	glob_pattern = ["**/*.go"]
//	description = "Run golangci-lint"
//	[hooks.command]
//	cmd = "golangci-lint"
//	args = "run ./..."
//
// YAML accepts the same fields, either as a top-level list or under a
// hooks key:
//
//	- name: lint
//	  command:
//	    cmd: golangci-lint
//	    args: run ./...
//	  glob_pattern: ["**/*.go"]
//
// args is split on whitespace when given as a string; use a list to pass
// arguments that contain spaces.
//
// # Validation
//
// [Validate] never fails fast. It returns a [ValidationError] holding a
// [FieldError] for every problem so that all of them can be fixed in one
// pass. Executables are resolved with [Command.LookPath], the same lookup
// used when the hook runs.
package config

// Package prompt provides simple interactive prompts.
//
// Prompts render to stderr so stdout stays pipeable, and callers are
// expected to check for a terminal first.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [Select]: Single selection from a fuzzy-filtered list
package prompt

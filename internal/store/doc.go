// Package store persists hookr's state in an embedded libsql database.
//
// The database holds three tables:
//
//   - hooks: one row per registered hook with total and successful run
//     counters (successful_runs <= total_runs is enforced by a CHECK)
//   - repo_hooks: which hook is bound to which trigger point of which
//     repository; the row id keeps the order hooks were applied in
//   - hook_runs: the history of individual runs
//
// The schema is created by the embedded migrations in package migrations.
// Counter updates are single statements inside a transaction, so a failed
// invocation never leaves partial counts behind. There is no cross-process
// locking; busy or locked errors from the engine are returned as is.
package store

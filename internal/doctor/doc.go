// Package doctor checks that the shims on disk agree with the bindings
// recorded in the database, and optionally repairs them.
//
// Issues fall into two categories:
//
//   - [CategoryRepo]: a bound repository was moved or deleted, or is no
//     longer a git repository. Fixing drops its bindings.
//
//   - [CategoryShim]: a shim is missing, out of date or not executable.
//     Fixing regenerates it from the bindings. A shim that was replaced by
//     an unmanaged script is reported but never overwritten.
//
// # Usage
//
//	issues, err := doctor.Run(ctx, st, inst, os.Stdout, false) // check only
//	issues, err := doctor.Run(ctx, st, inst, os.Stdout, true)  // check and fix
package doctor

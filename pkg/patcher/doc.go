// Package patcher applies, removes and restores injected environment blocks
// in target files.
//
// Apply follows a fixed protocol per target:
//
//  1. read the target
//  2. plan the new content (see injection.Injector.Plan)
//  3. stop with Skipped(AlreadyApplied) if nothing would change
//  4. write the pristine backup (<target>.bak) unless it already exists
//  5. write the planned content
//
// Once the backup exists a restore guard is armed. If the final write
// fails the guard puts the pre-call content back, falling back to the
// backup file, and the Result records whether that worked. The backup is
// created at most once and is never overwritten, so it always holds the
// file as it was before envinject first touched it.
//
// The Patcher is not safe against other processes modifying the same
// target concurrently.
package patcher

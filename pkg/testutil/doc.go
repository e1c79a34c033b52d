// Package testutil provides utilities for testing envinject components.
//
// Key components:
//   - NewTestFS / NewMemFS: in-memory afero filesystems behind types.FS
//   - FailingFS: a types.FS wrapper that injects read, write and remove
//     failures for exercising rollback paths
//   - CreateExtension: lays out an installation directory with a
//     dist/extension.js target, on disk or in memory
//
// Usage guidelines:
//   - Prefer the in-memory filesystem; use real directories only for the
//     OS filesystem and CLI tests
//   - Define test data inline, not in external files
package testutil

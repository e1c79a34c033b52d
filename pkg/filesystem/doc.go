// Package filesystem provides filesystem implementations for envinject.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed one used by
// tests, plus small helpers built on top of types.FS.
package filesystem

// Package types defines the core types and interfaces used throughout envinject.
// This includes the FS abstraction, the ordered InjectionSpec and the
// per-target Result reported by the patcher.
package types

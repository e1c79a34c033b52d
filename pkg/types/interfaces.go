package types

import (
	"io/fs"
)

// FS defines the filesystem operations envinject needs
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Remove(name string) error

	// Glob returns the names of all files matching pattern, like filepath.Glob
	Glob(pattern string) ([]string, error)
}

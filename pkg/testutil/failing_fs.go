package testutil

import (
	"io/fs"

	"github.com/arthur-debert/envinject/pkg/types"
)

type failure struct {
	remaining int
	err       error
	partial   bool
}

// take reports whether this call should fail, consuming one use
func (f *failure) take() bool {
	if f == nil || f.remaining == 0 {
		return false
	}
	if f.remaining > 0 {
		f.remaining--
	}
	return true
}

// FailingFS wraps a types.FS and fails selected operations on selected paths.
// It is not safe for concurrent use.
type FailingFS struct {
	types.FS

	reads   map[string]*failure
	writes  map[string]*failure
	removes map[string]*failure

	// Writes records every WriteFile path in call order, failed or not
	Writes []string
}

// NewFailingFS wraps base
func NewFailingFS(base types.FS) *FailingFS {
	return &FailingFS{
		FS:      base,
		reads:   make(map[string]*failure),
		writes:  make(map[string]*failure),
		removes: make(map[string]*failure),
	}
}

// FailWrite makes the next times writes to path return err. A negative
// times fails every write.
func (f *FailingFS) FailWrite(path string, times int, err error) {
	f.writes[path] = &failure{remaining: times, err: err}
}

// FailWritePartial is FailWrite, but each failing write first stores the
// leading half of the data, leaving a truncated file behind.
func (f *FailingFS) FailWritePartial(path string, times int, err error) {
	f.writes[path] = &failure{remaining: times, err: err, partial: true}
}

// FailRead makes every read of path return err
func (f *FailingFS) FailRead(path string, err error) {
	f.reads[path] = &failure{remaining: -1, err: err}
}

// FailRemove makes every remove of path return err
func (f *FailingFS) FailRemove(path string, err error) {
	f.removes[path] = &failure{remaining: -1, err: err}
}

func (f *FailingFS) ReadFile(name string) ([]byte, error) {
	if fl := f.reads[name]; fl.take() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fl.err}
	}
	return f.FS.ReadFile(name)
}

func (f *FailingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f.Writes = append(f.Writes, name)
	if fl := f.writes[name]; fl.take() {
		if fl.partial {
			_ = f.FS.WriteFile(name, data[:len(data)/2], perm)
		}
		return &fs.PathError{Op: "write", Path: name, Err: fl.err}
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FailingFS) Remove(name string) error {
	if fl := f.removes[name]; fl.take() {
		return &fs.PathError{Op: "remove", Path: name, Err: fl.err}
	}
	return f.FS.Remove(name)
}

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/envinject/pkg/filesystem"
	"github.com/arthur-debert/envinject/pkg/paths"
	"github.com/arthur-debert/envinject/pkg/types"
	"github.com/spf13/afero"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// NewMemFS returns an in-memory afero filesystem and its types.FS view,
// for tests that need to create directories or wrap the backing store.
func NewMemFS() (afero.Fs, types.FS) {
	mem := afero.NewMemMapFs()
	return mem, filesystem.NewAferoFS(mem)
}

// ReadFS reads a file from fsys, failing the test on error.
func ReadFS(t *testing.T, fsys types.FS, path string) string {
	t.Helper()

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// CreateExtension creates parent/name/dist/extension.js in mem with content
// and returns the target path. An empty content still creates the file.
func CreateExtension(t *testing.T, mem afero.Fs, parent, name, content string) string {
	t.Helper()

	dir := filepath.Join(parent, name)
	target := paths.TargetPath(dir, paths.DefaultTargetPath)
	if err := mem.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(target), err)
	}
	if err := afero.WriteFile(mem, target, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", target, err)
	}
	return target
}

// CreateExtensionOnDisk is CreateExtension against the OS filesystem.
func CreateExtensionOnDisk(t *testing.T, parent, name, content string) string {
	t.Helper()
	return CreateExtension(t, afero.NewOsFs(), parent, name, content)
}

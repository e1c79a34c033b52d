package patcher

import (
	"fmt"
	"io/fs"

	"github.com/arthur-debert/envinject/pkg/filesystem"
	"github.com/arthur-debert/envinject/pkg/types"
)

// restoreGuard puts a target back to its pre-call content unless released
type restoreGuard struct {
	fs         types.FS
	target     string
	snapshot   []byte
	perm       fs.FileMode
	backupPath string
	armed      bool
}

func newRestoreGuard(fsys types.FS, target string, snapshot []byte, perm fs.FileMode, backupPath string) *restoreGuard {
	return &restoreGuard{
		fs:         fsys,
		target:     target,
		snapshot:   snapshot,
		perm:       perm,
		backupPath: backupPath,
	}
}

func (g *restoreGuard) arm() {
	g.armed = true
}

func (g *restoreGuard) release() {
	g.armed = false
}

// rollback restores the target and records the attempt on res.
// It does nothing when the guard is not armed.
func (g *restoreGuard) rollback(res *types.Result) {
	if !g.armed {
		return
	}
	g.armed = false
	res.RollbackAttempted = true
	res.RestoreErr = g.restore()
}

func (g *restoreGuard) restore() error {
	snapErr := g.fs.WriteFile(g.target, g.snapshot, g.perm)
	if snapErr == nil {
		return nil
	}
	if g.backupPath == "" {
		return snapErr
	}
	if ok, _ := filesystem.Exists(g.fs, g.backupPath); !ok {
		return snapErr
	}
	if err := filesystem.CopyFile(g.fs, g.backupPath, g.target); err != nil {
		return fmt.Errorf("%v; copy from backup: %w", snapErr, err)
	}
	return nil
}

package patcher

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/filesystem"
	"github.com/arthur-debert/envinject/pkg/injection"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/paths"
	"github.com/arthur-debert/envinject/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Patcher
type Options struct {
	// Injector renders and locates blocks; nil uses injection.Default()
	Injector *injection.Injector

	// BackupSuffix names the sibling backup; empty uses paths.DefaultBackupSuffix
	BackupSuffix string

	// DryRun reports what would change without writing anything
	DryRun bool
}

// Patcher ensures target files carry exactly one up-to-date injected block
type Patcher struct {
	fs           types.FS
	injector     *injection.Injector
	backupSuffix string
	dryRun       bool
	logger       zerolog.Logger
}

// New creates a Patcher operating on fsys
func New(fsys types.FS, opts Options) *Patcher {
	injector := opts.Injector
	if injector == nil {
		injector = injection.Default()
	}
	suffix := opts.BackupSuffix
	if suffix == "" {
		suffix = paths.DefaultBackupSuffix
	}
	return &Patcher{
		fs:           fsys,
		injector:     injector,
		backupSuffix: suffix,
		dryRun:       opts.DryRun,
		logger:       logging.GetLogger("patcher"),
	}
}

// BackupPath returns where the backup of target lives
func (p *Patcher) BackupPath(target string) string {
	return paths.BackupPath(target, p.backupSuffix)
}

// HasBackup reports whether a backup exists for target
func (p *Patcher) HasBackup(target string) bool {
	ok, err := filesystem.Exists(p.fs, p.BackupPath(target))
	return err == nil && ok
}

// Apply makes target contain exactly one block rendering spec.
// The returned Result is always non-nil; err is non-nil exactly when
// Result.Status is StatusFailed.
func (p *Patcher) Apply(target string, spec *types.InjectionSpec) (*types.Result, error) {
	res := p.newResult(target)
	logger := p.logger.With().Str("target", target).Logger()
	defer logging.LogOperationStart(logger, "apply")()

	if err := injection.ValidateSpec(spec); err != nil {
		return p.fail(res, err)
	}

	original, perm, err := p.read(target)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrTargetMissing) {
			p.restoreBackup(res)
		}
		return p.fail(res, err)
	}

	planned, changed := p.injector.Plan(string(original), spec)
	if !changed {
		logger.Debug().Msg("Block already up to date")
		return p.skip(res, types.SkipAlreadyApplied), nil
	}
	if p.dryRun {
		res.Status = types.StatusWouldChange
		return res, nil
	}

	if err := p.write(res, target, original, perm, planned, true); err != nil {
		return p.fail(res, err)
	}

	res.Status = types.StatusApplied
	logger.Info().
		Strs("vars", spec.Names()).
		Bool("backupCreated", res.BackupCreated).
		Msg("Injected env block")
	return res, nil
}

// Remove strips any injected block from target without touching the backup
func (p *Patcher) Remove(target string) (*types.Result, error) {
	res := p.newResult(target)
	logger := p.logger.With().Str("target", target).Logger()

	original, perm, err := p.read(target)
	if err != nil {
		return p.fail(res, err)
	}

	stripped, changed := p.injector.Unplan(string(original))
	if !changed {
		return p.skip(res, types.SkipNoBlock), nil
	}
	if p.dryRun {
		res.Status = types.StatusWouldChange
		return res, nil
	}

	if err := p.write(res, target, original, perm, stripped, false); err != nil {
		return p.fail(res, err)
	}

	res.Status = types.StatusRemoved
	logger.Info().Msg("Removed env block")
	return res, nil
}

// Restore copies the backup over target. Unless keepBackup is set the
// backup is then deleted, so the next Apply captures a fresh copy.
func (p *Patcher) Restore(target string, keepBackup bool) (*types.Result, error) {
	res := p.newResult(target)
	logger := p.logger.With().Str("target", target).Logger()

	if !p.HasBackup(target) {
		return p.skip(res, types.SkipNoBackup), nil
	}
	if p.dryRun {
		res.Status = types.StatusWouldChange
		return res, nil
	}

	if err := filesystem.CopyFile(p.fs, res.BackupPath, target); err != nil {
		return p.fail(res, errors.Wrapf(err, errors.ErrRestoreFailed, "cannot restore %s from backup", target).
			WithDetail("backup", res.BackupPath))
	}
	res.Status = types.StatusRestored

	if !keepBackup {
		if err := p.fs.Remove(res.BackupPath); err != nil {
			logger.Warn().Err(err).Str("backup", res.BackupPath).Msg("Restored target but could not remove backup")
		}
	}

	logger.Info().Bool("keepBackup", keepBackup).Msg("Restored target from backup")
	return res, nil
}

// Inspect reports the injection state of target. A nil spec matches any block.
func (p *Patcher) Inspect(target string, spec *types.InjectionSpec) (types.TargetState, error) {
	data, _, err := p.read(target)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrTargetMissing) {
			return types.TargetStateMissing, nil
		}
		return "", err
	}
	return p.injector.Inspect(string(data), spec), nil
}

func (p *Patcher) newResult(target string) *types.Result {
	return &types.Result{Target: target, BackupPath: p.BackupPath(target)}
}

// read loads target, which must be an existing regular file
func (p *Patcher) read(target string) ([]byte, fs.FileMode, error) {
	info, err := p.fs.Stat(target)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, 0, errors.Wrapf(err, errors.ErrTargetMissing, "target %s not found", target)
		}
		return nil, 0, errors.Wrapf(err, errors.ErrIOFailure, "cannot stat %s", target)
	}
	if !info.Mode().IsRegular() {
		return nil, 0, errors.Newf(errors.ErrIOFailure, "target %s is not a regular file", target)
	}

	data, err := p.fs.ReadFile(target)
	if err != nil {
		return nil, 0, errors.Wrapf(err, errors.ErrIOFailure, "cannot read %s", target)
	}
	return data, info.Mode().Perm(), nil
}

// write replaces target with content under a restore guard. With backup
// set the pristine backup is ensured first and the guard arms only once
// it exists; otherwise the guard arms immediately on the in-memory snapshot.
func (p *Patcher) write(res *types.Result, target string, original []byte, perm fs.FileMode, content string, backup bool) (err error) {
	guard := newRestoreGuard(p.fs, target, original, perm, res.BackupPath)
	defer func() {
		if err != nil {
			guard.rollback(res)
		}
	}()

	if backup {
		created, err := p.ensureBackup(res.BackupPath, original, perm)
		if err != nil {
			return err
		}
		res.BackupCreated = created
	}
	guard.arm()

	if err := p.fs.WriteFile(target, []byte(content), perm); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "cannot write %s", target)
	}
	guard.release()
	return nil
}

// ensureBackup writes original to backupPath unless a backup already exists.
// A failed backup write is removed so a truncated copy is never taken as pristine.
func (p *Patcher) ensureBackup(backupPath string, original []byte, perm fs.FileMode) (bool, error) {
	exists, err := filesystem.Exists(p.fs, backupPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrIOFailure, "cannot check backup %s", backupPath)
	}
	if exists {
		p.logger.Debug().Str("backup", backupPath).Msg("Backup already exists, keeping it")
		return false, nil
	}

	if err := p.fs.WriteFile(backupPath, original, perm); err != nil {
		if rmErr := p.fs.Remove(backupPath); rmErr != nil && !stderrors.Is(rmErr, fs.ErrNotExist) {
			p.logger.Warn().Err(rmErr).Str("backup", backupPath).Msg("Could not remove incomplete backup")
		}
		return false, errors.Wrapf(err, errors.ErrIOFailure, "cannot create backup %s", backupPath)
	}

	p.logger.Info().Str("backup", backupPath).Msg("Backup created")
	return true, nil
}

// restoreBackup copies an existing backup over the target after a failure
// that left no usable in-memory content
func (p *Patcher) restoreBackup(res *types.Result) {
	if p.dryRun || !p.HasBackup(res.Target) {
		return
	}
	res.RollbackAttempted = true
	res.RestoreErr = filesystem.CopyFile(p.fs, res.BackupPath, res.Target)
}

func (p *Patcher) skip(res *types.Result, reason types.SkipReason) *types.Result {
	res.Status = types.StatusSkipped
	res.Reason = reason
	return res
}

// fail records err on res. When a rollback was attempted and itself failed
// the returned error carries ErrRestoreFailed.
func (p *Patcher) fail(res *types.Result, err error) (*types.Result, error) {
	res.Status = types.StatusFailed
	if res.RollbackAttempted && res.RestoreErr != nil {
		err = errors.Wrapf(res.RestoreErr, errors.ErrRestoreFailed, "restore of %s failed after: %v", res.Target, err).
			WithDetail("backup", res.BackupPath)
	}
	res.Err = err

	event := p.logger.Error().Err(err).Str("target", res.Target)
	if res.RollbackAttempted {
		event = event.Bool("restored", res.RestoreErr == nil)
	}
	event.Msg("Patch failed")
	return res, err
}

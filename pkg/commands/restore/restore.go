// Package restore implements the restore command: put every installation of
// an extension back to its pristine backup.
package restore

import (
	"github.com/arthur-debert/envinject/pkg/commands/internal"
	"github.com/arthur-debert/envinject/pkg/config"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/types"
)

// Options contains options for the restore command
type Options struct {
	// ParentDir is the directory holding extension installations
	ParentDir string

	// Extension is the installation directory name prefix
	Extension string

	// KeepBackup leaves the backup in place after restoring
	KeepBackup bool

	// Config supplies target path and backup suffix (defaults when nil)
	Config *config.Config

	// DryRun reports what would change without writing
	DryRun bool

	// FileSystem to use (defaults to OS filesystem)
	FileSystem types.FS
}

// Run restores each installation that has a backup. Installations without
// one are skipped.
func Run(opts Options) (*types.Report, error) {
	logger := logging.GetLogger("commands.restore")
	scope := &internal.Scope{
		ParentDir:  opts.ParentDir,
		Extension:  opts.Extension,
		Config:     opts.Config,
		FileSystem: opts.FileSystem,
		DryRun:     opts.DryRun,
	}
	scope.Normalize()

	p, err := scope.Patcher()
	if err != nil {
		return nil, err
	}
	report := scope.NewReport("restore")
	targets, err := scope.Discover(report)
	if err != nil {
		return nil, err
	}

	for _, target := range targets {
		res, _ := p.Restore(target.Path, opts.KeepBackup)
		report.Targets = append(report.Targets, types.TargetReport{Target: target, Result: res})
	}

	logger.Info().
		Str("extension", opts.Extension).
		Int("restored", report.Count(types.StatusRestored)).
		Int("failed", report.Count(types.StatusFailed)).
		Msg("Restore finished")
	return report, nil
}

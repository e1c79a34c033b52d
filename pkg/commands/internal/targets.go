// Package internal holds helpers shared by the command implementations.
package internal

import (
	"github.com/arthur-debert/envinject/pkg/config"
	"github.com/arthur-debert/envinject/pkg/discovery"
	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/filesystem"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/patcher"
	"github.com/arthur-debert/envinject/pkg/paths"
	"github.com/arthur-debert/envinject/pkg/types"
)

// Scope is the common input of every per-target command
type Scope struct {
	ParentDir  string
	Extension  string
	Config     *config.Config
	FileSystem types.FS
	DryRun     bool
}

// Normalize fills defaults: OS filesystem, built-in config, expanded parent dir
func (s *Scope) Normalize() {
	if s.FileSystem == nil {
		s.FileSystem = filesystem.NewOS()
	}
	if s.Config == nil {
		s.Config = config.Default()
	}
	s.ParentDir = paths.ExpandHome(s.ParentDir)
}

// NewReport starts a report for command over s
func (s *Scope) NewReport(command string) *types.Report {
	return &types.Report{
		Command:   command,
		Extension: s.Extension,
		ParentDir: s.ParentDir,
		DryRun:    s.DryRun,
	}
}

// Patcher builds a patcher from the scope's config
func (s *Scope) Patcher() (*patcher.Patcher, error) {
	injector, err := s.Config.Injector()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid markers")
	}
	return patcher.New(s.FileSystem, patcher.Options{
		Injector:     injector,
		BackupSuffix: s.Config.Target.BackupSuffix,
		DryRun:       s.DryRun,
	}), nil
}

// Discover finds targets for s. A prefix matching nothing sets report.NoMatch
// and returns no targets and no error.
func (s *Scope) Discover(report *types.Report) ([]types.Target, error) {
	logger := logging.GetLogger("commands")

	targets, err := discovery.Find(s.FileSystem, s.ParentDir, s.Extension, s.Config.Target.Path)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNoMatch) {
			logger.Warn().
				Str("extension", s.Extension).
				Str("parentDir", s.ParentDir).
				Msg("No extension found")
			report.NoMatch = true
			return nil, nil
		}
		return nil, err
	}
	return targets, nil
}

// MissingResult is the skip result recorded for a target whose script is absent
func MissingResult(p *patcher.Patcher, t types.Target) *types.Result {
	return &types.Result{
		Target:     t.Path,
		Status:     types.StatusSkipped,
		Reason:     types.SkipTargetMissing,
		BackupPath: p.BackupPath(t.Path),
		Err:        errors.Newf(errors.ErrTargetMissing, "%s not found", t.Path).WithDetail("dir", t.Dir),
	}
}

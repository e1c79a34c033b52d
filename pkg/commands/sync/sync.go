// Package sync implements the sync command: apply every [[targets]] entry of
// the configuration in one run.
package sync

import (
	"github.com/arthur-debert/envinject/pkg/commands/inject"
	"github.com/arthur-debert/envinject/pkg/config"
	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/types"
)

// Options contains options for the sync command
type Options struct {
	// Config holds the targets to apply; required
	Config *config.Config

	// ParentDir overrides extensions.parent_dir when set
	ParentDir string

	DryRun     bool
	FileSystem types.FS
}

// Run applies each configured target in order and returns one report per
// target. An entry with invalid vars stops the run before later entries.
func Run(opts Options) ([]*types.Report, error) {
	logger := logging.GetLogger("commands.sync")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInternal, "sync requires a configuration")
	}
	if len(opts.Config.Targets) == 0 {
		return nil, errors.New(errors.ErrConfigValid, "no [[targets]] configured")
	}

	parentDir := opts.ParentDir
	if parentDir == "" {
		parentDir = opts.Config.ParentDir()
	}

	reports := make([]*types.Report, 0, len(opts.Config.Targets))
	for i, t := range opts.Config.Targets {
		report, err := inject.Run(inject.Options{
			ParentDir:  parentDir,
			Extension:  t.Extension,
			Spec:       t.Spec(),
			Config:     opts.Config,
			DryRun:     opts.DryRun,
			FileSystem: opts.FileSystem,
		})
		if err != nil {
			return reports, errors.Wrapf(err, errors.GetErrorCode(err), "targets[%d] (%s)", i, t.Extension)
		}
		reports = append(reports, report)
	}

	logger.Info().Int("targets", len(reports)).Msg("Sync finished")
	return reports, nil
}

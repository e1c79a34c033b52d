// Package remove implements the remove command: strip the injected block
// from every installation of an extension, leaving backups alone.
package remove

import (
	"github.com/arthur-debert/envinject/pkg/commands/internal"
	"github.com/arthur-debert/envinject/pkg/config"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/types"
)

// Options contains options for the remove command
type Options struct {
	ParentDir  string
	Extension  string
	Config     *config.Config
	DryRun     bool
	FileSystem types.FS
}

// Run strips the block from each installation
func Run(opts Options) (*types.Report, error) {
	logger := logging.GetLogger("commands.remove")
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
	report := scope.NewReport("remove")
	targets, err := scope.Discover(report)
	if err != nil {
		return nil, err
	}

	for _, target := range targets {
		if target.Missing {
			report.Targets = append(report.Targets, types.TargetReport{Target: target, Result: internal.MissingResult(p, target)})
			continue
		}
		res, _ := p.Remove(target.Path)
		report.Targets = append(report.Targets, types.TargetReport{Target: target, Result: res})
	}

	logger.Info().
		Str("extension", opts.Extension).
		Int("removed", report.Count(types.StatusRemoved)).
		Msg("Remove finished")
	return report, nil
}

// Package status implements the status command: report the injection state
// of every installation of an extension without modifying anything.
package status

import (
	"github.com/arthur-debert/envinject/pkg/commands/internal"
	"github.com/arthur-debert/envinject/pkg/config"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/types"
	"github.com/arthur-debert/envinject/pkg/varspec"
)

// Options contains options for the status command
type Options struct {
	// ParentDir is the directory holding extension installations
	ParentDir string

	// Extension is the installation directory name prefix
	Extension string

	// VarsJSON, when set, lets status tell an up-to-date block from a stale one
	VarsJSON string

	// Config supplies markers, target path and backup suffix (defaults when nil)
	Config *config.Config

	// FileSystem to use (defaults to OS filesystem)
	FileSystem types.FS
}

// Run inspects each installation. Without VarsJSON any block counts as injected.
func Run(opts Options) (*types.Report, error) {
	logger := logging.GetLogger("commands.status")
	scope := &internal.Scope{
		ParentDir:  opts.ParentDir,
		Extension:  opts.Extension,
		Config:     opts.Config,
		FileSystem: opts.FileSystem,
	}
	scope.Normalize()

	report := scope.NewReport("status")

	var spec *types.InjectionSpec
	if opts.VarsJSON != "" {
		var err error
		if spec, err = varspec.ParseJSON([]byte(opts.VarsJSON)); err != nil {
			return nil, err
		}
		report.Vars = spec.Names()
	}

	if err := inspect(scope, report, spec); err != nil {
		return nil, err
	}
	logger.Debug().Int("targets", len(report.Targets)).Msg("Status collected")
	return report, nil
}

func inspect(scope *internal.Scope, report *types.Report, spec *types.InjectionSpec) error {
	p, err := scope.Patcher()
	if err != nil {
		return err
	}
	targets, err := scope.Discover(report)
	if err != nil {
		return err
	}

	for _, target := range targets {
		tr := types.TargetReport{Target: target, State: types.TargetStateMissing}
		if !target.Missing {
			tr.State, tr.Err = p.Inspect(target.Path, spec)
		}
		report.Targets = append(report.Targets, tr)
	}
	return nil
}

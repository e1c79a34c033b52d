// Package inject implements the default command: inject env vars into every
// installation of an extension.
package inject

import (
	"github.com/arthur-debert/envinject/pkg/commands/internal"
	"github.com/arthur-debert/envinject/pkg/config"
	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/injection"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/types"
	"github.com/arthur-debert/envinject/pkg/varspec"
)

// Options contains options for the inject command
type Options struct {
	// ParentDir is the directory holding extension installations
	ParentDir string

	// Extension is the installation directory name prefix
	Extension string

	// VarsJSON is a JSON object of variables to inject
	VarsJSON string

	// VarsFile is a JSON or YAML file of variables, used when VarsJSON is empty
	VarsFile string

	// Spec is a pre-parsed spec, used when VarsJSON and VarsFile are empty
	Spec *types.InjectionSpec

	// Config supplies markers, target path and backup suffix (defaults when nil)
	Config *config.Config

	// DryRun reports what would change without writing
	DryRun bool

	// FileSystem to use (defaults to OS filesystem)
	FileSystem types.FS
}

// Run parses the vars, finds the installations and applies the block to each.
// Malformed vars and invalid names fail before any file is touched.
func Run(opts Options) (*types.Report, error) {
	logger := logging.GetLogger("commands.inject")
	scope := &internal.Scope{
		ParentDir:  opts.ParentDir,
		Extension:  opts.Extension,
		Config:     opts.Config,
		FileSystem: opts.FileSystem,
		DryRun:     opts.DryRun,
	}
	scope.Normalize()

	spec, err := resolveSpec(opts, scope.FileSystem)
	if err != nil {
		return nil, err
	}
	if spec.Len() == 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "no env vars given for %s", opts.Extension)
	}
	if err := injection.ValidateSpec(spec); err != nil {
		return nil, err
	}

	p, err := scope.Patcher()
	if err != nil {
		return nil, err
	}

	report := scope.NewReport("apply")
	report.Vars = spec.Names()

	targets, err := scope.Discover(report)
	if err != nil {
		return nil, err
	}

	for _, target := range targets {
		if target.Missing {
			report.Targets = append(report.Targets, types.TargetReport{Target: target, Result: internal.MissingResult(p, target)})
			continue
		}

		// Failures are recorded on the result; keep going with the next target
		res, _ := p.Apply(target.Path, spec)
		report.Targets = append(report.Targets, types.TargetReport{Target: target, Result: res})
	}

	logger.Info().
		Str("extension", opts.Extension).
		Int("targets", len(report.Targets)).
		Int("applied", report.Count(types.StatusApplied)).
		Int("failed", report.Count(types.StatusFailed)).
		Msg("Inject finished")
	return report, nil
}

func resolveSpec(opts Options, fsys types.FS) (*types.InjectionSpec, error) {
	switch {
	case opts.VarsJSON != "":
		return varspec.ParseJSON([]byte(opts.VarsJSON))
	case opts.VarsFile != "":
		return varspec.ParseFile(fsys, opts.VarsFile)
	case opts.Spec != nil:
		return opts.Spec, nil
	}
	return nil, errors.New(errors.ErrInputParse, "no env vars given")
}

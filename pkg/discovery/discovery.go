// Package discovery finds the extension installations a run should patch.
package discovery

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/filesystem"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/paths"
	"github.com/arthur-debert/envinject/pkg/types"
)

// Find returns one Target per directory in parentDir whose name starts with
// prefix, sorted by path. relPath locates the script inside each directory
// (paths.DefaultTargetPath when empty). Targets whose script is absent are
// returned with Missing set. When nothing matches the error has code ErrNoMatch.
func Find(fsys types.FS, parentDir, prefix, relPath string) ([]types.Target, error) {
	logger := logging.GetLogger("discovery")

	if prefix == "" {
		return nil, errors.New(errors.ErrInvalidInput, "extension name must not be empty")
	}
	if relPath == "" {
		relPath = paths.DefaultTargetPath
	}

	pattern := filepath.Join(parentDir, escapeGlob(prefix)+"*")
	matches, err := fsys.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid extension name %q", prefix)
	}
	sort.Strings(matches)

	var targets []types.Target
	for _, dir := range matches {
		info, err := fsys.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}

		target := types.Target{
			Dir:  dir,
			Path: paths.TargetPath(dir, relPath),
		}
		target.Missing = !filesystem.IsRegularFile(fsys, target.Path)
		targets = append(targets, target)

		logger.Debug().
			Str("dir", dir).
			Bool("missing", target.Missing).
			Msg("Found extension directory")
	}

	if len(targets) == 0 {
		return nil, errors.Newf(errors.ErrNoMatch, "no extension found with base name %s in %s", prefix, parentDir).
			WithDetail("parentDir", parentDir).
			WithDetail("prefix", prefix)
	}
	return targets, nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`)

// escapeGlob makes every character of s match literally in a glob pattern
func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

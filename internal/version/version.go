// Package version carries build information stamped in at release time.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/envinject/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/envinject/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/envinject/internal/version.Date={{.Date}}
)

// String renders the build information as printed by `envinject version`
func String() string {
	return fmt.Sprintf("envinject %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}

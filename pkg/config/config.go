package config

import (
	"github.com/arthur-debert/envinject/pkg/injection"
	"github.com/arthur-debert/envinject/pkg/paths"
	"github.com/arthur-debert/envinject/pkg/types"
)

// Config is the effective envinject configuration
type Config struct {
	Markers    Markers      `koanf:"markers" toml:"markers"`
	Target     Target       `koanf:"target" toml:"target"`
	Extensions Extensions   `koanf:"extensions" toml:"extensions"`
	Targets    []TargetSpec `koanf:"targets" toml:"targets,omitempty"`
}

// Markers holds the block sentinel lines
type Markers struct {
	Start string `koanf:"start" toml:"start"`
	End   string `koanf:"end" toml:"end"`
}

// Target describes where the script lives inside an installation
type Target struct {
	Path         string `koanf:"path" toml:"path"`
	BackupSuffix string `koanf:"backup_suffix" toml:"backup_suffix"`
}

// Extensions holds extension discovery settings
type Extensions struct {
	ParentDir string `koanf:"parent_dir" toml:"parent_dir"`
}

// TargetSpec is one extension patched by sync
type TargetSpec struct {
	Extension string            `koanf:"extension" toml:"extension"`
	Vars      map[string]string `koanf:"vars" toml:"vars"`
}

// Spec returns the vars as an InjectionSpec. Config maps carry no order,
// so names are sorted.
func (t TargetSpec) Spec() *types.InjectionSpec {
	return types.InjectionSpecFromMap(t.Vars)
}

// Injector builds the block injector for the configured markers
func (c *Config) Injector() (*injection.Injector, error) {
	return injection.New(injection.Markers{Start: c.Markers.Start, End: c.Markers.End})
}

// ParentDir returns the extensions directory with ~ expanded
func (c *Config) ParentDir() string {
	return paths.ExpandHome(c.Extensions.ParentDir)
}

// Package paths provides centralized path handling for envinject.
// It resolves XDG Base Directory locations for configuration and state,
// and maps extension installation directories to the files envinject
// reads and writes.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for envinject
	EnvConfigDir = "ENVINJECT_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for envinject
	EnvStateDir = "ENVINJECT_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default names and locations
const (
	// AppDirName is the directory name for envinject-specific files
	AppDirName = "envinject"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "envinject.log"

	// DefaultTargetPath is the bundled script relative to an installation directory
	DefaultTargetPath = "dist/extension.js"

	// DefaultBackupSuffix is appended to a target path to name its backup
	DefaultBackupSuffix = ".bak"

	// DefaultExtensionsDir is where VS Code installs extensions
	DefaultExtensionsDir = "~/.vscode/extensions"
)

// Paths provides the user-level locations envinject uses
type Paths interface {
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	LogFilePath() string
}

type paths struct {
	xdgConfig string
	xdgState  string
}

// New creates a Paths instance, honoring EnvConfigDir and EnvStateDir
func New() Paths {
	p := &paths{}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = ExpandHome(stateDir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// TargetPath joins an installation directory with a slash-separated relative target
func TargetPath(installDir, rel string) string {
	return filepath.Join(installDir, filepath.FromSlash(rel))
}

// BackupPath returns the sibling backup location for target
func BackupPath(target, suffix string) string {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return target + suffix
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Only ~/ and ~\ are expanded; ~user is left alone
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

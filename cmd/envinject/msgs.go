package envinject

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Inject environment variables into editor extensions"
	MsgStatusShort     = "Show whether installations carry an injected block"
	MsgRestoreShort    = "Restore installations from their backups"
	MsgRemoveShort     = "Strip the injected block, keeping backups"
	MsgSyncShort       = "Inject every target listed in the config file"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgSyncTarget   = "\n%s:\n"
	MsgFailedFormat = "%d of %d installations failed"

	// Error messages
	MsgErrLoadConfig = "failed to load config: %w"
	MsgErrNoVars     = "env vars JSON or --vars-file is required"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Preview changes without writing any file"
	MsgFlagNoColor    = "Disable colored output"
	MsgFlagConfig     = "Config file (default is $XDG_CONFIG_HOME/envinject/config.toml)"
	MsgFlagVarsFile   = "Read env vars from a JSON or YAML file"
	MsgFlagKeepBackup = "Keep the backup after restoring"
	MsgFlagParentDir  = "Extensions directory (default is extensions.parent_dir)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/restore-long.txt
	msgRestoreLongRaw string
	MsgRestoreLong    = strings.TrimSpace(msgRestoreLongRaw)

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

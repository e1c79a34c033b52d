package envinject

import (
	"fmt"

	"github.com/arthur-debert/envinject/internal/version"
	"github.com/arthur-debert/envinject/pkg/commands/inject"
	"github.com/arthur-debert/envinject/pkg/commands/remove"
	"github.com/arthur-debert/envinject/pkg/commands/restore"
	"github.com/arthur-debert/envinject/pkg/commands/status"
	"github.com/arthur-debert/envinject/pkg/commands/sync"
	"github.com/arthur-debert/envinject/pkg/config"
	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/output"
	"github.com/arthur-debert/envinject/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globals holds the persistent flags and the configuration loaded from them
type globals struct {
	verbosity  int
	dryRun     bool
	noColor    bool
	configFile string

	cfg *config.Config
}

func (g *globals) renderer(cmd *cobra.Command) *output.Renderer {
	return output.NewRenderer(cmd.OutOrStdout(), g.noColor)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globals{}
	var varsFile string

	rootCmd := &cobra.Command{
		Use:     "envinject <extension-parent-dir> <extension-name> [env-vars-json]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.RangeArgs(2, 3),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLoggerWithOutput(g.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			cfg, err := config.Load(config.LoadOptions{ConfigFile: g.configFile})
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			g.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := inject.Options{
				ParentDir: args[0],
				Extension: args[1],
				VarsFile:  varsFile,
				Config:    g.cfg,
				DryRun:    g.dryRun,
			}
			if len(args) == 3 {
				opts.VarsJSON = args[2]
			} else if varsFile == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoVars)
			}

			report, err := inject.Run(opts)
			if err != nil {
				return err
			}
			g.renderer(cmd).Report(report)
			return failures(report)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)

	rootCmd.Flags().StringVar(&varsFile, "vars-file", "", MsgFlagVarsFile)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newRestoreCmd(g))
	rootCmd.AddCommand(newRemoveCmd(g))
	rootCmd.AddCommand(newSyncCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// failures turns failed targets into a command error so the process exits non-zero
func failures(reports ...*types.Report) error {
	failed, total := 0, 0
	for _, r := range reports {
		for _, t := range r.Targets {
			total++
			if t.Err != nil || (t.Result != nil && t.Result.Status == types.StatusFailed) {
				failed++
			}
		}
	}
	if failed == 0 {
		return nil
	}
	return errors.Newf(errors.ErrIOFailure, MsgFailedFormat, failed, total)
}

func newStatusCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "status <extension-parent-dir> <extension-name> [env-vars-json]",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := status.Options{
				ParentDir: args[0],
				Extension: args[1],
				Config:    g.cfg,
			}
			if len(args) == 3 {
				opts.VarsJSON = args[2]
			}

			report, err := status.Run(opts)
			if err != nil {
				return err
			}
			g.renderer(cmd).Status(report)
			return failures(report)
		},
	}
}

func newRestoreCmd(g *globals) *cobra.Command {
	var keepBackup bool

	cmd := &cobra.Command{
		Use:     "restore <extension-parent-dir> <extension-name>",
		Short:   MsgRestoreShort,
		Long:    MsgRestoreLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := restore.Run(restore.Options{
				ParentDir:  args[0],
				Extension:  args[1],
				KeepBackup: keepBackup,
				Config:     g.cfg,
				DryRun:     g.dryRun,
			})
			if err != nil {
				return err
			}
			g.renderer(cmd).Report(report)
			return failures(report)
		},
	}
	cmd.Flags().BoolVar(&keepBackup, "keep-backup", false, MsgFlagKeepBackup)
	return cmd
}

func newRemoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <extension-parent-dir> <extension-name>",
		Short:   MsgRemoveShort,
		Long:    MsgRemoveLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := remove.Run(remove.Options{
				ParentDir: args[0],
				Extension: args[1],
				Config:    g.cfg,
				DryRun:    g.dryRun,
			})
			if err != nil {
				return err
			}
			g.renderer(cmd).Report(report)
			return failures(report)
		},
	}
}

func newSyncCmd(g *globals) *cobra.Command {
	var parentDir string

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, runErr := sync.Run(sync.Options{
				Config:    g.cfg,
				ParentDir: parentDir,
				DryRun:    g.dryRun,
			})

			r := g.renderer(cmd)
			for _, report := range reports {
				r.Printf(MsgSyncTarget, r.Style("Header", report.Extension))
				r.Report(report)
			}
			if runErr != nil {
				return runErr
			}
			return failures(reports...)
		},
	}
	cmd.Flags().StringVar(&parentDir, "parent-dir", "", MsgFlagParentDir)
	return cmd
}

func newConfigCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Dump(g.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

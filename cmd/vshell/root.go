package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/vshell/pkg/vshell"
	"github.com/arthur-debert/vshell/pkg/vshell/config"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags and the configuration resolved
// from them before any subcommand runs.
type globalOptions struct {
	configPath string
	stateFile  string
	logLevel   string
	color      string
	noBanner   bool

	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "vshell",
		Short: "A shell over an in-memory filesystem",
		Long: `vshell is a small shell whose files and directories live in memory.
It understands ls, cd, pwd, mkdir, touch, rm, cat, echo, clear and tree, and
can persist the filesystem between runs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is ./"+config.ConfigFileName+")")
	flags.StringVar(&opts.stateFile, "state", "", "file the filesystem is persisted to, empty keeps it in memory")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.color, "color", "", "colorize output: auto, always or never")
	flags.BoolVar(&opts.noBanner, "no-banner", false, "do not print the welcome banner")

	cmd.AddCommand(newShellCommand(opts))
	cmd.AddCommand(newExecCommand(opts))
	cmd.AddCommand(versionCmd)

	return cmd
}

// resolve loads the configuration and lets explicitly set flags override it.
func (o *globalOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("state") {
		cfg.StateFile = o.stateFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if o.noBanner {
		cfg.Banner = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := vshell.LogLevelFromString(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	vshell.SetLogger(vshell.NewLogger(cmd.ErrOrStderr(), level))

	o.cfg = cfg
	return nil
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Print the version number of vshell`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vshell version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

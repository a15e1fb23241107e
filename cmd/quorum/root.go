package main

import (
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	config   string
	input    string
	output   string
	logLevel string
}

// newRootCommand builds the command graph. The returned function closes the
// log file once the command has run.
func newRootCommand() (*cobra.Command, func() error) {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:   "quorum",
		Short: "Council session attendance and vote analyzer",
		Long: "quorum reads the session documents extracted from council minutes and reports\n" +
			"member attendance and non-unanimous deliberations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.StringVarP(&flags.input, "input", "i", "", "Session document directory (overrides paths.input_dir)")
	pf.StringVarP(&flags.output, "output", "o", "", "Artifact directory (overrides paths.output_dir)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides logging.level)")

	rootCmd.AddCommand(
		newPresenceCommand(ctx),
		newDeliberationsCommand(ctx),
		newMembersCommand(ctx),
		newReportCommand(ctx),
		newConfigCommand(ctx),
	)
	return rootCmd, ctx.close
}

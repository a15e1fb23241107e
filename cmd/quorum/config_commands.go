package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quorum/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if _, err := os.Stat(target); err == nil && !overwrite {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
			} else if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("check config path: %w", err)
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit paths.input_dir to point at the session documents before running quorum.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

// initTarget resolves --path, falling back to the default config location.
func initTarget(flagPath string) (string, error) {
	if strings.TrimSpace(flagPath) == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(flagPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureOutputDir(); err != nil {
				return fmt.Errorf("ensure output directory: %w", err)
			}

			out := cmd.OutOrStdout()
			status := newStatusPrinter(cmd)
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			inputKind, inputMsg := statusOK, cfg.Paths.InputDir
			if info, err := os.Stat(cfg.Paths.InputDir); err != nil || !info.IsDir() {
				inputKind, inputMsg = statusWarn, cfg.Paths.InputDir+" (missing)"
			}
			status.line("Input", inputKind, inputMsg)
			status.line("Output", statusOK, cfg.Paths.OutputDir)
			status.line("Key mode", statusInfo, cfg.Members.KeyMode)
			status.line("Formats", statusInfo, strings.Join(cfg.Output.Formats, ", "))
			if cfg.Logging.File != "" {
				status.line("Log file", statusInfo, cfg.Logging.File)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"quorum/internal/config"
	"quorum/internal/logging"
	"quorum/internal/pipeline"
)

// commandContext lazily loads the configuration and logger once per
// invocation and hands them to subcommands.
type commandContext struct {
	flags *globalFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	logCloser  io.Closer
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		c.configPath, c.configExists = path, exists
		if err := c.flags.apply(cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// apply overlays command-line overrides on cfg and revalidates it.
func (f *globalFlags) apply(cfg *config.Config) error {
	input := strings.TrimSpace(f.input)
	output := strings.TrimSpace(f.output)
	level := strings.ToLower(strings.TrimSpace(f.logLevel))
	if input == "" && output == "" && level == "" {
		return nil
	}
	if input != "" {
		expanded, err := config.ExpandPath(input)
		if err != nil {
			return fmt.Errorf("resolve --input: %w", err)
		}
		cfg.Paths.InputDir = expanded
	}
	if output != "" {
		expanded, err := config.ExpandPath(output)
		if err != nil {
			return fmt.Errorf("resolve --output: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if level != "" {
		cfg.Logging.Level = level
	}
	return cfg.Validate()
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.logCloser, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// close releases the log file opened by ensureLogger, if any.
func (c *commandContext) close() error {
	if c.logCloser == nil {
		return nil
	}
	err := c.logCloser.Close()
	c.logCloser = nil
	return err
}

// run executes the analysis pipeline with the command's context.
func (c *commandContext) run(cmd *cobra.Command) (*pipeline.Result, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return pipeline.Run(cmd.Context(), cfg, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

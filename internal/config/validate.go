package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMembers(); err != nil {
		return err
	}
	if err := c.validateAttendance(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == "" {
		return errors.New("paths.input_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.InputDir == c.Paths.OutputDir {
		return errors.New("paths.output_dir must differ from paths.input_dir")
	}
	return nil
}

func (c *Config) validateMembers() error {
	switch c.Members.KeyMode {
	case KeyModeSurname, KeyModeFull:
	default:
		return fmt.Errorf("members.key_mode: unsupported value %q (want %q or %q)", c.Members.KeyMode, KeyModeSurname, KeyModeFull)
	}
	for from, to := range c.Members.Equivalences {
		if next, chained := c.Members.Equivalences[to]; chained && next != to {
			return fmt.Errorf("members.equivalences: %q maps to %q which is itself remapped to %q", from, to, next)
		}
	}
	return nil
}

func (c *Config) validateAttendance() error {
	if c.Attendance.StatusPresent == c.Attendance.StatusAbsent {
		return errors.New("attendance.status_present and attendance.status_absent must differ")
	}
	return nil
}

func (c *Config) validateOutput() error {
	for _, format := range c.Output.Formats {
		switch format {
		case FormatCSV, FormatMarkdown, FormatJSON:
		default:
			return fmt.Errorf("output.formats: unsupported format %q", format)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

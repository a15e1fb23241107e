package config

import (
	"fmt"
	"os"
	"strings"

	"quorum/internal/textutil"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMembers()
	c.normalizeAttendance()
	c.normalizeDeliberations()
	c.normalizeOutput()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		if value, ok := os.LookupEnv("QUORUM_INPUT_DIR"); ok {
			c.Paths.InputDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		if value, ok := os.LookupEnv("QUORUM_OUTPUT_DIR"); ok {
			c.Paths.OutputDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMembers() {
	c.Members.KeyMode = strings.ToLower(strings.TrimSpace(c.Members.KeyMode))
	if c.Members.KeyMode == "" {
		c.Members.KeyMode = defaultKeyMode
	}
	c.Members.Titles = upperUnique(c.Members.Titles)

	equivalences := make(map[string]string, len(c.Members.Equivalences))
	for from, to := range c.Members.Equivalences {
		from = strings.ToUpper(strings.TrimSpace(from))
		to = strings.ToUpper(strings.TrimSpace(to))
		if from == "" || to == "" {
			continue
		}
		equivalences[from] = to
	}
	c.Members.Equivalences = equivalences
}

func (c *Config) normalizeAttendance() {
	c.Attendance.StatusPresent = strings.TrimSpace(c.Attendance.StatusPresent)
	if c.Attendance.StatusPresent == "" {
		c.Attendance.StatusPresent = defaultStatusPresent
	}
	c.Attendance.StatusAbsent = strings.TrimSpace(c.Attendance.StatusAbsent)
	if c.Attendance.StatusAbsent == "" {
		c.Attendance.StatusAbsent = defaultStatusAbsent
	}
}

func (c *Config) normalizeDeliberations() {
	c.Deliberations.UnanimousMarkers = upperUnique(c.Deliberations.UnanimousMarkers)
	if len(c.Deliberations.UnanimousMarkers) == 0 {
		c.Deliberations.UnanimousMarkers = []string{defaultUnanimousMarker}
	}
}

func (c *Config) normalizeOutput() {
	formats := make([]string, 0, len(c.Output.Formats))
	seen := make(map[string]struct{}, len(c.Output.Formats))
	for _, format := range c.Output.Formats {
		normalized := strings.ToLower(strings.TrimSpace(format))
		if normalized == "md" {
			normalized = FormatMarkdown
		}
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		formats = append(formats, normalized)
	}
	c.Output.Formats = formats
	c.Output.Basename = textutil.SanitizeFileName(c.Output.Basename)
	if c.Output.Basename == "" {
		c.Output.Basename = defaultOutputBasename
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

func upperUnique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToUpper(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

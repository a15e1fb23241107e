package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"quorum/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Member key derivation modes.
const (
	KeyModeSurname = "surname"
	KeyModeFull    = "full"
)

// Output artifact formats.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Paths contains input and output directory configuration.
type Paths struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
}

// Members controls how raw member names collapse onto canonical keys.
type Members struct {
	// KeyMode is "surname" (trailing uppercase tokens, punctuation removed)
	// or "full" (whole normalized name).
	KeyMode string `toml:"key_mode"`
	// Titles are honorific tokens stripped from the start of a name.
	Titles []string `toml:"titles"`
	// Equivalences force a normalized key onto another canonical key.
	Equivalences map[string]string `toml:"equivalences"`
}

// Attendance contains presence counting rules and CSV cell values.
type Attendance struct {
	CountProxyGivers bool   `toml:"count_proxy_givers"`
	StatusPresent    string `toml:"status_present"`
	StatusAbsent     string `toml:"status_absent"`
}

// Deliberations contains vote classification settings.
type Deliberations struct {
	UnanimousMarkers []string `toml:"unanimous_markers"`
}

// Output contains artifact selection.
type Output struct {
	Formats  []string `toml:"formats"`
	Basename string   `toml:"basename"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a copy of every log line.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for quorum.
//
// Configuration sections by subsystem:
//   - Paths: session document directory and artifact directory
//   - Members: name canonicalization rules
//   - Attendance: proxy handling and CSV cell values
//   - Deliberations: vote outcome markers
//   - Output: artifact formats and file naming
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Members       Members       `toml:"members"`
	Attendance    Attendance    `toml:"attendance"`
	Deliberations Deliberations `toml:"deliberations"`
	Output        Output        `toml:"output"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPathLiteral)
}

// Load reads the configuration at path, or searches the default locations
// when path is empty. It returns the normalized config, the file it resolved
// to, and whether that file exists. A missing file is not an error: defaults
// and environment fallbacks apply instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	// Unset paths fall back to the environment, then to the defaults, in normalize.
	cfg.Paths = Paths{}

	resolved, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

// decodeFile rejects unknown keys so a misspelled option fails loudly instead
// of silently keeping its default.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for _, e := range strict.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// locate resolves an explicit path as given. Without one it tries the user
// config file, then quorum.toml in the working directory, and reports the
// user config path when neither exists.
func locate(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		return expanded, exists, err
	}

	candidates := []string{defaultConfigPathLiteral, projectConfigName}
	var first string
	for _, candidate := range candidates {
		expanded, err := expandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if first == "" {
			first = expanded
		}
		exists, err := isFile(expanded)
		if err != nil {
			return "", false, err
		}
		if exists {
			return expanded, true, nil
		}
	}
	return first, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	default:
		return !info.IsDir(), nil
	}
}

// EnsureOutputDir creates the artifact directory.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.OutputDir, err)
	}
	return nil
}

// WantsFormat reports whether the named artifact format is enabled.
func (c *Config) WantsFormat(format string) bool {
	for _, f := range c.Output.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// IsUnanimousMarker reports whether a recorded vote mode means "adopted unanimously".
func (c *Config) IsUnanimousMarker(mode string) bool {
	mode = strings.ToUpper(strings.TrimSpace(mode))
	for _, marker := range c.Deliberations.UnanimousMarkers {
		if marker == mode {
			return true
		}
	}
	return false
}

// expandPath resolves a leading "~" to the home directory and returns a
// clean absolute path. Empty input stays empty.
func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value[1:], "/"))
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return abs, nil
}

// ExpandPath applies the same "~" and absolute path rules used for config
// values to command-line paths.
func ExpandPath(value string) (string, error) {
	return expandPath(value)
}

// CreateSample writes the commented sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

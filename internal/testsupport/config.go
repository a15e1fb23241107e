package testsupport

import (
	"path/filepath"
	"testing"

	"quorum/internal/config"
)

// ConfigOption adjusts the configuration returned by NewConfig.
type ConfigOption func(*config.Config)

// NewConfig returns the default configuration with input and output rooted in
// a fresh temp directory and no member equivalences.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "json")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Members.Equivalences = map[string]string{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

func WithInputDir(dir string) ConfigOption {
	return func(c *config.Config) { c.Paths.InputDir = dir }
}

// WithEquivalence forces the key from onto the key to.
func WithEquivalence(from, to string) ConfigOption {
	return func(c *config.Config) { c.Members.Equivalences[from] = to }
}

// WithFormats limits the artifacts written.
func WithFormats(formats ...string) ConfigOption {
	return func(c *config.Config) { c.Output.Formats = formats }
}

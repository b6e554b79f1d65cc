package testsupport

import (
	"path/filepath"
	"testing"

	"sublaunch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config anchored at a unique temp launcher directory.
// Pause and run serialization are disabled so tests never block.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Launcher.BaseDir = filepath.Join(root, "app")
	cfgVal.Launcher.Pause = false
	cfgVal.Launcher.SerializeRuns = false
	cfgVal.History.Path = filepath.Join(root, "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: root,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithHistory enables the run ledger on the test config.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// WithLogDir points log output at a directory inside the test root.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Dir = filepath.Join(b.baseDir, "logs")
	}
}

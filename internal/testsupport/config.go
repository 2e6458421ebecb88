package testsupport

import (
	"path/filepath"
	"testing"

	"subclean/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.History.Path = filepath.Join(base, "state", "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithHistory enables run history in the test config.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// WithLogFile routes a JSON copy of log output to a file under the test directory.
func WithLogFile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = filepath.Join(b.baseDir, "logs", "subclean.log")
	}
}

// WithConvergence overrides the cleaning convergence mode and pass cap.
func WithConvergence(mode string, maxPasses int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cleaning.Convergence = mode
		if maxPasses > 0 {
			b.cfg.Cleaning.MaxPasses = maxPasses
		}
	}
}

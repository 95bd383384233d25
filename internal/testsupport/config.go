package testsupport

import (
	"path/filepath"
	"testing"

	"funmatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Video and script roots exist but are empty.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.VideoDirs = []string{filepath.Join(base, "videos")}
	cfgVal.Paths.ScriptDirs = []string{filepath.Join(base, "scripts")}
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Studios.RegistryPath = filepath.Join(base, "data", "studios.json")
	cfgVal.History.Path = filepath.Join(base, "data", "history.log")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range append(append([]string{}, cfgVal.Paths.VideoDirs...), cfgVal.Paths.ScriptDirs...) {
		MkdirAll(t, dir)
	}
	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithDefaultAction sets the Enter-key action.
func WithDefaultAction(action string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.DefaultAction = action
	}
}

// WithAskOnEmpty toggles the keyword prompt for empty extractions.
func WithAskOnEmpty(ask bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.AskOnEmpty = ask
	}
}

// WithSkipExistingScripts toggles skipping videos that already have a script.
func WithSkipExistingScripts(skip bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.SkipExistingScripts = skip
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

// VideoDir returns the first video root.
func VideoDir(cfg *config.Config) string {
	return cfg.Paths.VideoDirs[0]
}

// ScriptDir returns the first script root.
func ScriptDir(cfg *config.Config) string {
	return cfg.Paths.ScriptDirs[0]
}

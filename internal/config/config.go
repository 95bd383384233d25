package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains library roots and state directories.
type Paths struct {
	VideoDirs  []string `toml:"video_dirs"`
	ScriptDirs []string `toml:"script_dirs"`
	DataDir    string   `toml:"data_dir"`
	LogDir     string   `toml:"log_dir"`
}

// Library controls how the video and script populations are scanned.
type Library struct {
	VideoExtensions     []string `toml:"video_extensions"`
	ScriptExtension     string   `toml:"script_extension"`
	ExcludePaths        []string `toml:"exclude_paths"`
	SkipExistingScripts bool     `toml:"skip_existing_scripts"`
}

// Weights are the points awarded by each scoring component.
type Weights struct {
	Date        int `toml:"date"`
	Studio      int `toml:"studio"`
	CleanStrong int `toml:"clean_strong"`
	Exact       int `toml:"exact"`
	Partial     int `toml:"partial"`
	CleanWeak   int `toml:"clean_weak"`
}

// Matching contains every knob consumed by the extraction and scoring core.
type Matching struct {
	StopWords           []string `toml:"stop_words"`
	IgnoredNumbers      []string `toml:"ignored_numbers"`
	CleanupPatterns     []string `toml:"cleanup_patterns"`
	AskOnEmpty          bool     `toml:"ask_on_empty"`
	DefaultAction       string   `toml:"default_action"`
	SkipMarker          string   `toml:"skip_marker"`
	QuitMarker          string   `toml:"quit_marker"`
	MinKeywordLength    int      `toml:"min_keyword_length"`
	StrongKeywordLength int      `toml:"strong_keyword_length"`
	MinScore            int      `toml:"min_score"`
	DisplayLimit        int      `toml:"display_limit"`
	CheckLimit          int      `toml:"check_limit"`
	Weights             Weights  `toml:"weights"`
}

// Studios locates the persisted studio registry.
type Studios struct {
	RegistryPath string `toml:"registry_path"`
}

// History locates the processed-video log.
type History struct {
	Path string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for funmatch.
//
// Configuration sections by subsystem:
//   - Paths: library roots plus data and log directories
//   - Library: scan extensions and exclusions
//   - Matching: extraction filters, clean-up rules, prompt behaviour, weights
//   - Studios: studio registry location
//   - History: processed-video log location
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Library  Library  `toml:"library"`
	Matching Matching `toml:"matching"`
	Studios  Studios  `toml:"studios"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/funmatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("funmatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// IndexPath returns the SQLite library index location.
func (c *Config) IndexPath() string {
	return filepath.Join(c.Paths.DataDir, "library.db")
}

// LockPath returns the run lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "funmatch.lock")
}

// LogPath returns the log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "funmatch.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

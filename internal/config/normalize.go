package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLibrary()
	c.normalizeMatching()
	if err := c.normalizeStores(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.VideoDirs, err = expandAll(c.Paths.VideoDirs); err != nil {
		return fmt.Errorf("paths.video_dirs: %w", err)
	}
	if c.Paths.ScriptDirs, err = expandAll(c.Paths.ScriptDirs); err != nil {
		return fmt.Errorf("paths.script_dirs: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() {
	dottedExts := make([]string, 0, len(c.Library.VideoExtensions))
	for _, ext := range c.Library.VideoExtensions {
		dottedExts = append(dottedExts, dotted(strings.TrimSpace(ext)))
	}
	exts := uniqueLower(dottedExts)
	if len(exts) == 0 {
		exts = append(exts, defaultVideoExtensions...)
	}
	c.Library.VideoExtensions = exts

	c.Library.ScriptExtension = dotted(strings.ToLower(strings.TrimSpace(c.Library.ScriptExtension)))
	if c.Library.ScriptExtension == "" {
		c.Library.ScriptExtension = defaultScriptExtension
	}

	// Relative exclusions are resolved per root by the scanner.
	excludes := make([]string, 0, len(c.Library.ExcludePaths))
	for _, p := range c.Library.ExcludePaths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		excludes = append(excludes, filepath.Clean(p))
	}
	c.Library.ExcludePaths = excludes
}

func (c *Config) normalizeMatching() {
	m := &c.Matching
	m.StopWords = uniqueLower(m.StopWords)
	m.IgnoredNumbers = uniqueLower(m.IgnoredNumbers)

	// Order is significant, so only blanks are dropped.
	patterns := make([]string, 0, len(m.CleanupPatterns))
	for _, p := range m.CleanupPatterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		patterns = append(patterns, p)
	}
	m.CleanupPatterns = patterns

	m.DefaultAction = strings.ToLower(strings.TrimSpace(m.DefaultAction))
	if m.DefaultAction == "" {
		m.DefaultAction = defaultDefaultAction
	}
	m.SkipMarker = strings.ToLower(strings.TrimSpace(m.SkipMarker))
	if m.SkipMarker == "" {
		m.SkipMarker = defaultSkipMarker
	}
	m.QuitMarker = strings.ToLower(strings.TrimSpace(m.QuitMarker))
	if m.QuitMarker == "" {
		m.QuitMarker = defaultQuitMarker
	}
	if m.MinKeywordLength == 0 {
		m.MinKeywordLength = defaultMinKeywordLength
	}
	if m.StrongKeywordLength == 0 {
		m.StrongKeywordLength = defaultStrongKeywordLength
	}
	if m.MinScore == 0 {
		m.MinScore = defaultMinScore
	}
	if m.DisplayLimit == 0 {
		m.DisplayLimit = defaultDisplayLimit
	}
	if m.CheckLimit == 0 {
		m.CheckLimit = defaultCheckLimit
	}
}

func (c *Config) normalizeStores() error {
	var err error
	if strings.TrimSpace(c.Studios.RegistryPath) == "" {
		c.Studios.RegistryPath = filepath.Join(c.Paths.DataDir, defaultRegistryFile)
	}
	if c.Studios.RegistryPath, err = expandPath(strings.TrimSpace(c.Studios.RegistryPath)); err != nil {
		return fmt.Errorf("studios.registry_path: %w", err)
	}
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = filepath.Join(c.Paths.DataDir, defaultHistoryFile)
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func expandAll(values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		expanded, err := expandPath(v)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[expanded]; ok {
			continue
		}
		seen[expanded] = struct{}{}
		out = append(out, expanded)
	}
	return out, nil
}

func uniqueLower(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		normalized := strings.ToLower(strings.TrimSpace(v))
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

func dotted(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

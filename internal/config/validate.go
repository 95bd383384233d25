package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateWeights(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	switch m.DefaultAction {
	case ActionDone, ActionSkip:
	default:
		return fmt.Errorf("matching.default_action must be %q or %q, got %q", ActionDone, ActionSkip, m.DefaultAction)
	}
	if m.SkipMarker == m.QuitMarker {
		return errors.New("matching.skip_marker and matching.quit_marker must differ")
	}
	if _, err := strconv.Atoi(m.SkipMarker); err == nil {
		return errors.New("matching.skip_marker must not be a number")
	}
	if _, err := strconv.Atoi(m.QuitMarker); err == nil {
		return errors.New("matching.quit_marker must not be a number")
	}
	if err := ensurePositiveMap(map[string]int{
		"matching.min_keyword_length":    m.MinKeywordLength,
		"matching.strong_keyword_length": m.StrongKeywordLength,
		"matching.min_score":             m.MinScore,
		"matching.display_limit":         m.DisplayLimit,
		"matching.check_limit":           m.CheckLimit,
	}); err != nil {
		return err
	}
	for i, pattern := range m.CleanupPatterns {
		if _, err := regexp.Compile("(?i)" + pattern); err != nil {
			return fmt.Errorf("matching.cleanup_patterns[%d]: %w", i, err)
		}
	}
	for _, n := range m.IgnoredNumbers {
		if _, err := strconv.ParseUint(n, 10, 64); err != nil {
			return fmt.Errorf("matching.ignored_numbers: %q is not a number", n)
		}
	}
	return nil
}

func (c *Config) validateWeights() error {
	w := c.Matching.Weights
	for key, value := range map[string]int{
		"matching.weights.date":         w.Date,
		"matching.weights.studio":       w.Studio,
		"matching.weights.clean_strong": w.CleanStrong,
		"matching.weights.exact":        w.Exact,
		"matching.weights.partial":      w.Partial,
		"matching.weights.clean_weak":   w.CleanWeak,
	} {
		if value < 0 {
			return fmt.Errorf("%s must be >= 0", key)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

package studio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"funmatch/internal/logging"
)

// Store persists a registry as JSON. Writes replace the whole file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store for path. An empty path keeps the registry in
// memory only.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "studio"),
	}
}

// Path returns the registry file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry. A missing file yields the built-in studios; an
// unreadable or malformed file yields an empty registry so matching proceeds
// without studio detection.
func (s *Store) Load() *Registry {
	if s.path == "" {
		return Default()
	}
	studios, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("studio registry not found, using defaults", logging.String("path", s.path))
			return Default()
		}
		logging.WarnWithContext(s.logger, "failed to load studio registry", "studio_registry_load_failed",
			logging.Error(err),
			logging.String("path", s.path),
			logging.String(logging.FieldErrorHint, "fix or delete the registry file"),
			logging.String(logging.FieldImpact, "studio detection disabled for this run"))
		return Empty()
	}
	registry, err := NewRegistry(studios)
	if err != nil {
		logging.WarnWithContext(s.logger, "studio registry contains invalid patterns", "studio_pattern_invalid",
			logging.Error(err),
			logging.String("path", s.path),
			logging.String(logging.FieldErrorHint, "correct the listed patterns"),
			logging.String(logging.FieldImpact, "invalid patterns are ignored"))
	}
	s.logger.Debug("loaded studio registry",
		logging.Int("studio_count", registry.Len()),
		logging.String("path", s.path))
	return registry
}

// Save writes the full registry atomically via a temp file.
func (s *Store) Save(registry *Registry) error {
	if s.path == "" {
		return nil
	}
	studios := registry.Studios()
	if studios == nil {
		studios = []Studio{}
	}
	data, err := json.MarshalIndent(studios, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal studio registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *Store) read() ([]Studio, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	switch data[0] {
	case '[':
		var studios []Studio
		if err := json.Unmarshal(data, &studios); err != nil {
			return nil, fmt.Errorf("parse registry list: %w", err)
		}
		return studios, nil
	case '{':
		return decodeObjectForm(data)
	default:
		return nil, fmt.Errorf("parse registry: unexpected leading %q", data[0])
	}
}

// decodeObjectForm reads {"Studio": ["pattern", ...]} keeping key order, which
// a map decode would lose.
func decodeObjectForm(data []byte) ([]Studio, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse registry object: %w", err)
	}
	var studios []Studio
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse registry object: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parse registry object: unexpected key %v", tok)
		}
		var patterns []string
		if err := dec.Decode(&patterns); err != nil {
			return nil, fmt.Errorf("parse registry patterns for %q: %w", name, err)
		}
		studios = append(studios, Studio{Name: name, Patterns: patterns})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse registry object: %w", err)
	}
	return studios, nil
}

// Catalog couples a live registry with its store. Every accepted learn is
// persisted as a whole-file rewrite.
type Catalog struct {
	registry *Registry
	store    *Store
}

// NewCatalog loads the registry from store.
func NewCatalog(store *Store) *Catalog {
	return &Catalog{registry: store.Load(), store: store}
}

// Registry returns the live registry. The pointer stays valid across learns.
func (c *Catalog) Registry() *Registry {
	return c.registry
}

// Learn adds pattern under name and persists the registry when it changed.
func (c *Catalog) Learn(name, pattern string) (bool, error) {
	added, err := c.registry.Learn(name, pattern)
	if err != nil || !added {
		return added, err
	}
	if err := c.store.Save(c.registry); err != nil {
		return true, fmt.Errorf("persist studio registry: %w", err)
	}
	c.store.logger.Info("learned studio pattern",
		logging.String("studio", name),
		logging.String("pattern", pattern))
	return true, nil
}

package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Log is the append-only set of processed video paths, one per line.
type Log struct {
	path    string
	entries []string
	index   map[string]struct{}
}

// Open loads the log at path. A missing file is an empty log.
func Open(path string) (*Log, error) {
	l := &Log{path: path, index: make(map[string]struct{})}
	if path == "" {
		return l, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return l, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		l.remember(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return l, nil
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Contains reports whether path was already processed.
func (l *Log) Contains(path string) bool {
	_, ok := l.index[strings.TrimSpace(path)]
	return ok
}

// Len returns the number of recorded paths.
func (l *Log) Len() int {
	return len(l.entries)
}

// List returns recorded paths in the order they were added.
func (l *Log) List() []string {
	return append([]string(nil), l.entries...)
}

// Append records path. Paths already present are not written again.
func (l *Log) Append(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("history path cannot be empty")
	}
	if l.Contains(path) {
		return nil
	}
	if l.path != "" {
		if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
			return fmt.Errorf("create history directory: %w", err)
		}
		file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open history for append: %w", err)
		}
		if _, err := file.WriteString(path + "\n"); err != nil {
			_ = file.Close()
			return fmt.Errorf("append history: %w", err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("close history: %w", err)
		}
	}
	l.remember(path)
	return nil
}

func (l *Log) remember(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if _, ok := l.index[line]; ok {
		return
	}
	l.index[line] = struct{}{}
	l.entries = append(l.entries, line)
}

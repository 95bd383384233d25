package library

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions selects which files a scan keeps.
type ScanOptions struct {
	Extensions []string
	// Excludes are directories to skip, absolute or relative to each root.
	Excludes []string
}

// Scan walks every root and returns matching files ordered by path. A missing
// root is an error; unreadable subdirectories are skipped.
func Scan(roots []string, opts ScanOptions) ([]Entry, error) {
	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}

	seen := make(map[string]struct{})
	entries := make([]Entry, 0, 128)
	for _, root := range roots {
		root = filepath.Clean(root)
		excluded := buildExcluded(root, opts.Excludes)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if path == root {
					return walkErr
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if isExcluded(path, excluded) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := exts[strings.ToLower(filepath.Ext(d.Name()))]; !ok {
				return nil
			}
			if _, dup := seen[path]; dup {
				return nil
			}
			seen[path] = struct{}{}
			entries = append(entries, NewEntry(path))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].FullPath < entries[j].FullPath })
	return entries, nil
}

func buildExcluded(root string, excludes []string) []string {
	excluded := make([]string, 0, len(excludes))
	for _, x := range excludes {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if filepath.IsAbs(x) {
			excluded = append(excluded, filepath.Clean(x))
			continue
		}
		excluded = append(excluded, filepath.Clean(filepath.Join(root, x)))
	}
	sort.Strings(excluded)
	return excluded
}

func isExcluded(path string, excluded []string) bool {
	path = filepath.Clean(path)
	for _, base := range excluded {
		if path == base || strings.HasPrefix(path, base+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

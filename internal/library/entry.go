package library

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"funmatch/internal/textutil"
)

// Kind distinguishes the two scanned populations.
type Kind string

const (
	KindVideo  Kind = "video"
	KindScript Kind = "script"
)

// Entry is one scanned file. Entries are immutable once built.
type Entry struct {
	DisplayName    string
	FullPath       string
	NormalizedName string
	ParentFolder   string
}

// NewEntry derives the display, normalized, and parent folder names from path.
func NewEntry(path string) Entry {
	base := filepath.Base(path)
	display := strings.TrimSuffix(base, filepath.Ext(base))
	parent := filepath.Base(filepath.Dir(path))
	if parent == "." || parent == string(filepath.Separator) {
		parent = ""
	}
	return Entry{
		DisplayName:    display,
		FullPath:       path,
		NormalizedName: textutil.AlphaNumeric(display),
		ParentFolder:   parent,
	}
}

// CompanionScriptPath returns the path a script for this video should live at.
func (e Entry) CompanionScriptPath(scriptExt string) string {
	return strings.TrimSuffix(e.FullPath, filepath.Ext(e.FullPath)) + scriptExt
}

// Exists reports whether the entry's file is still on disk. Errors other than
// not-exist count as present so a transient stat failure does not hide work.
func Exists(e Entry) bool {
	_, err := os.Stat(e.FullPath)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

package history_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"funmatch/internal/history"
)

func TestAppendIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.log")

	log, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if log.Len() != 0 {
		t.Fatalf("expected empty log, got %d", log.Len())
	}

	for _, p := range []string{"/v/a.mp4", "/v/b.mp4", "/v/a.mp4"} {
		if err := log.Append(p); err != nil {
			t.Fatalf("Append(%q): %v", p, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if string(data) != "/v/a.mp4\n/v/b.mp4\n" {
		t.Fatalf("unexpected history file %q", data)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.Contains("/v/b.mp4") || reopened.Contains("/v/c.mp4") {
		t.Fatal("unexpected membership after reopen")
	}
	if err := reopened.Append("/v/b.mp4"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got := reopened.List(); !reflect.DeepEqual(got, []string{"/v/a.mp4", "/v/b.mp4"}) {
		t.Fatalf("List() = %v", got)
	}
}

func TestOpenSkipsBlankAndDuplicateLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")
	if err := os.WriteFile(path, []byte("/v/a.mp4\n\n  /v/a.mp4  \n/v/b.mp4"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	log, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := log.List(); !reflect.DeepEqual(got, []string{"/v/a.mp4", "/v/b.mp4"}) {
		t.Fatalf("List() = %v", got)
	}
}

func TestAppendRejectsEmptyPath(t *testing.T) {
	log, err := history.Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := log.Append("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
	if err := log.Append("/v/a.mp4"); err != nil {
		t.Fatalf("in-memory Append: %v", err)
	}
	if !log.Contains("/v/a.mp4") {
		t.Fatal("expected in-memory log to remember path")
	}
}

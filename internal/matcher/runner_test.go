package matcher_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"funmatch/internal/config"
	"funmatch/internal/extract"
	"funmatch/internal/fileutil"
	"funmatch/internal/history"
	"funmatch/internal/library"
	"funmatch/internal/logging"
	"funmatch/internal/matcher"
	"funmatch/internal/scoring"
	"funmatch/internal/session"
	"funmatch/internal/studio"
	"funmatch/internal/testsupport"
)

type harness struct {
	cfg     *config.Config
	console *testsupport.ScriptedConsole
	history *history.Log
	runner  *matcher.Runner
}

func newHarness(t *testing.T, lines ...string) *harness {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	for _, name := range []string{"Alice Sunset", "Bob Harbor"} {
		testsupport.WriteFile(t, filepath.Join(testsupport.ScriptDir(cfg), name+".funscript"), name)
	}
	scripts, err := library.Scan(cfg.Paths.ScriptDirs, library.ScanOptions{Extensions: []string{".funscript"}})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	hist, err := history.Open(cfg.History.Path)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	registry := studio.Empty()
	extractor, err := extract.NewFromConfig(cfg, registry)
	if err != nil {
		t.Fatalf("extractor: %v", err)
	}
	console := testsupport.NewScriptedConsole(lines...)
	deps := session.Deps{
		Extractor: extractor,
		Engine:    scoring.NewEngineFromConfig(cfg),
		Registry:  registry,
		Scripts:   scripts,
		Console:   console,
		History:   hist,
		Copier:    session.CopyFunc(fileutil.CopyFile),
		Logger:    logging.NewNop(),
	}
	runner := matcher.NewRunner(deps, session.OptionsFromConfig(cfg), matcher.Options{
		SkipExistingScripts: cfg.Library.SkipExistingScripts,
		ScriptExtension:     cfg.Library.ScriptExtension,
	}, hist, console)
	return &harness{cfg: cfg, console: console, history: hist, runner: runner}
}

func (h *harness) video(t *testing.T, name string) library.Entry {
	t.Helper()
	return library.NewEntry(testsupport.WriteFile(t, filepath.Join(testsupport.VideoDir(h.cfg), "vr", name), "video"))
}

func TestRunSkipsIneligibleVideos(t *testing.T) {
	h := newHarness(t, "1")

	stale := library.NewEntry(filepath.Join(testsupport.VideoDir(h.cfg), "vr", "Gone.mp4"))
	processed := h.video(t, "Bob Harbor Evening.mp4")
	if err := h.history.Append(processed.FullPath); err != nil {
		t.Fatalf("append: %v", err)
	}
	paired := h.video(t, "Bob Harbor Morning.mp4")
	testsupport.WriteFile(t, paired.CompanionScriptPath(".funscript"), "existing")
	fresh := h.video(t, "Alice Sunset Take.mp4")

	summary, err := h.runner.Run(context.Background(), []library.Entry{stale, processed, paired, fresh})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := matcher.Summary{Total: 4, Done: 1, Stale: 1, AlreadyDone: 1, ExistingPair: 1}
	if summary != want {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}
	if got := testsupport.ReadFile(t, fresh.CompanionScriptPath(".funscript")); got != "Alice Sunset" {
		t.Fatalf("unexpected companion content %q", got)
	}
	if got := testsupport.ReadFile(t, paired.CompanionScriptPath(".funscript")); got != "existing" {
		t.Fatal("paired video must not be touched")
	}
}

func TestRunStopsOnAbort(t *testing.T) {
	h := newHarness(t, "q")
	first := h.video(t, "Alice Sunset Take.mp4")
	second := h.video(t, "Bob Harbor Take.mp4")

	summary, err := h.runner.Run(context.Background(), []library.Entry{first, second})
	if !errors.Is(err, session.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !summary.Aborted || summary.Done != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(h.console.Prompts) != 1 {
		t.Fatalf("expected the run to stop after one prompt, got %d", len(h.console.Prompts))
	}
}

func TestRunTargetBypassesHistory(t *testing.T) {
	h := newHarness(t, "", "1")
	other := h.video(t, "Bob Harbor Take.mp4")
	target := h.video(t, "Alice Sunset Take.mp4")
	if err := h.history.Append(target.FullPath); err != nil {
		t.Fatalf("append: %v", err)
	}

	summary, err := h.runner.RunTarget(context.Background(), "alice sunset", []library.Entry{other, target})
	if err != nil {
		t.Fatalf("RunTarget: %v", err)
	}
	if summary.Done != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !strings.Contains(h.console.Output.String(), target.FullPath) {
		t.Fatalf("expected target announcement, got %q", h.console.Output.String())
	}
}

func TestRunTargetDeclined(t *testing.T) {
	h := newHarness(t, "n")
	target := h.video(t, "Alice Sunset Take.mp4")

	summary, err := h.runner.RunTarget(context.Background(), "alice", []library.Entry{target})
	if err != nil {
		t.Fatalf("RunTarget: %v", err)
	}
	if summary != (matcher.Summary{}) {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
	if h.console.Remaining() != 0 || len(h.console.Prompts) != 1 {
		t.Fatalf("expected only the confirmation prompt, got %v", h.console.Prompts)
	}
}

func TestRunTargetNoMatch(t *testing.T) {
	h := newHarness(t)
	target := h.video(t, "Alice Sunset Take.mp4")

	summary, err := h.runner.RunTarget(context.Background(), "carol", []library.Entry{target})
	if err != nil {
		t.Fatalf("RunTarget: %v", err)
	}
	if summary.Total != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !strings.Contains(h.console.Output.String(), "No video matches") {
		t.Fatalf("expected no-match notice, got %q", h.console.Output.String())
	}
	if len(h.console.Prompts) != 0 {
		t.Fatal("no prompt expected without a target")
	}
}

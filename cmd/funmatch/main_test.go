package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"funmatch/internal/session"
	"funmatch/internal/testsupport"
)

const (
	scriptName = "CzechVR - Alice - 2024.03.10.funscript"
	videoName  = "CzechVR_741_Alice_2024-03-10_8K_180x180.mp4"
)

func seedLibrary(t *testing.T, env *cliTestEnv) string {
	t.Helper()
	testsupport.WriteFile(t, filepath.Join(testsupport.ScriptDir(env.cfg), scriptName), `{"actions":[]}`)
	testsupport.WriteFile(t, filepath.Join(testsupport.ScriptDir(env.cfg), "Bob Harbor.funscript"), `{"actions":[]}`)
	return testsupport.WriteFile(t, filepath.Join(testsupport.VideoDir(env.cfg), "czech", videoName), "video")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
}

func TestScanReportsCounts(t *testing.T) {
	env := setupCLITestEnv(t)
	seedLibrary(t, env)

	out, _, err := runCLI(t, []string{"scan"}, env.configPath, "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "video")
	requireContains(t, out, "script")
	if _, err := os.Stat(env.cfg.IndexPath()); err != nil {
		t.Fatalf("expected index at %s: %v", env.cfg.IndexPath(), err)
	}
}

func TestCheckShowsRankedScripts(t *testing.T) {
	env := setupCLITestEnv(t)
	seedLibrary(t, env)

	out, _, err := runCLI(t, []string{"check", "CzechVR", "Alice", "2024-03-10"}, env.configPath, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Keywords: Alice, studio=CzechVR, date=240310")
	requireContains(t, out, "CzechVR - Alice - 2024.03.10")
	requireContains(t, out, "date:240310")

	out, _, err = runCLI(t, []string{"check", "Nobody"}, env.configPath, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "No scripts reached the minimum score.")
}

func TestRunCopiesSelectedScriptAndRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	video := seedLibrary(t, env)

	out, _, err := runCLI(t, []string{"run"}, env.configPath, "1\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Matched")

	companion := filepath.Join(filepath.Dir(video), "CzechVR_741_Alice_2024-03-10_8K_180x180.funscript")
	if got := testsupport.ReadFile(t, companion); got != `{"actions":[]}` {
		t.Fatalf("unexpected companion content %q", got)
	}

	out, _, err = runCLI(t, []string{"history", "list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, video)

	// The second pass finds nothing left to offer.
	out, _, err = runCLI(t, []string{"run"}, env.configPath, "")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	requireContains(t, out, "Already processed")
}

func TestRunQuitMarkerAborts(t *testing.T) {
	env := setupCLITestEnv(t)
	seedLibrary(t, env)

	_, _, err := runCLI(t, []string{"run"}, env.configPath, "q\n")
	if !errors.Is(err, session.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "No videos processed yet")
}

func TestStudiosAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"studios", "add", "StudioX", "studio[\\s._-]*x"}, env.configPath, "")
	if err != nil {
		t.Fatalf("studios add: %v", err)
	}
	requireContains(t, out, "Added pattern")

	out, _, err = runCLI(t, []string{"studios", "add", "studiox", "studio[\\s._-]*x"}, env.configPath, "")
	if err != nil {
		t.Fatalf("studios add duplicate: %v", err)
	}
	requireContains(t, out, "already has pattern")

	if _, _, err := runCLI(t, []string{"studios", "add", "Broken", "("}, env.configPath, ""); err == nil {
		t.Fatal("expected invalid pattern to fail")
	}

	out, _, err = runCLI(t, []string{"studios", "list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("studios list: %v", err)
	}
	requireContains(t, out, "CzechVR")
	requireContains(t, out, "StudioX")
}

func TestRunTargetConfirmsAndSkips(t *testing.T) {
	env := setupCLITestEnv(t)
	video := seedLibrary(t, env)

	out, _, err := runCLI(t, []string{"run", "--target", "Alice 741"}, env.configPath, "\ns\n")
	if err != nil {
		t.Fatalf("run --target: %v", err)
	}
	requireContains(t, out, "Target: "+video+" (2 of 2 terms)")
	requireContains(t, out, "Skipped")

	out, _, err = runCLI(t, []string{"run", "--target", "Alice 741"}, env.configPath, "n\n")
	if err != nil {
		t.Fatalf("run --target declined: %v", err)
	}
	requireContains(t, out, "Cancelled.")
}

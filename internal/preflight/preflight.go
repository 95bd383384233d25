package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"funmatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Access is the permission set a directory must grant.
type Access uint32

const (
	// ReadOnly is enough for directories that are only scanned.
	ReadOnly Access = unix.R_OK | unix.X_OK
	// ReadWrite is required wherever funmatch creates files.
	ReadWrite Access = unix.R_OK | unix.W_OK | unix.X_OK
)

func (a Access) String() string {
	if a&unix.W_OK != 0 {
		return "read/write"
	}
	return "read"
}

// RunAll checks every configured directory. Video roots must be writable
// because selected scripts are copied next to the videos.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, dir := range cfg.Paths.VideoDirs {
		results = append(results, CheckDirectoryAccess("Video root", dir, ReadWrite))
	}
	for _, dir := range cfg.Paths.ScriptDirs {
		results = append(results, CheckDirectoryAccess("Script root", dir, ReadOnly))
	}
	results = append(results,
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir, ReadWrite),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, ReadWrite),
	)
	return results
}

// CheckDirectoryAccess verifies that the directory exists and grants access.
func CheckDirectoryAccess(name, path string, access Access) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, uint32(access)); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s ok)", path, access)}
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

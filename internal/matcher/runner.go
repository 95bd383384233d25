package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"funmatch/internal/library"
	"funmatch/internal/logging"
	"funmatch/internal/scoring"
	"funmatch/internal/session"
)

// Console is what the driver needs beyond a session's prompt surface.
type Console interface {
	session.Console
	Confirm(prompt string, defaultYes bool) (bool, error)
}

// HistorySet answers whether a video was already processed.
type HistorySet interface {
	Contains(path string) bool
}

// Options controls which videos are offered.
type Options struct {
	SkipExistingScripts bool
	ScriptExtension     string
}

// Summary counts how each video of a run ended.
type Summary struct {
	Total        int
	Done         int
	Skipped      int
	Failed       int
	Stale        int
	AlreadyDone  int
	ExistingPair int
	Learned      int
	Aborted      bool
}

// Runner processes videos one at a time, strictly in order.
type Runner struct {
	deps    session.Deps
	opts    session.Options
	runOpts Options
	history HistorySet
	console Console
	logger  *slog.Logger
	exists  func(library.Entry) bool
}

// NewRunner wires a driver. deps.Console must be the same console passed here.
func NewRunner(deps session.Deps, opts session.Options, runOpts Options, history HistorySet, console Console) *Runner {
	return &Runner{
		deps:    deps,
		opts:    opts,
		runOpts: runOpts,
		history: history,
		console: console,
		logger:  logging.NewComponentLogger(deps.Logger, "matcher"),
		exists:  library.Exists,
	}
}

// Run offers every eligible video. Stale, already processed, and already
// paired videos are skipped. An aborted session stops the run and the summary
// so far is returned with session.ErrAborted.
func (r *Runner) Run(ctx context.Context, videos []library.Entry) (Summary, error) {
	var summary Summary
	summary.Total = len(videos)
	for _, video := range videos {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !r.exists(video) {
			summary.Stale++
			r.logger.Info("skipping stale video", logging.String(logging.FieldVideo, video.FullPath))
			continue
		}
		if r.history != nil && r.history.Contains(video.FullPath) {
			summary.AlreadyDone++
			r.logger.Debug("skipping processed video", logging.String(logging.FieldVideo, video.FullPath))
			continue
		}
		if r.runOpts.SkipExistingScripts && r.hasCompanion(video) {
			summary.ExistingPair++
			r.logger.Debug("skipping paired video", logging.String(logging.FieldVideo, video.FullPath))
			continue
		}
		if err := r.runOne(ctx, video, &summary); err != nil {
			return summary, err
		}
	}
	r.logger.Info("run finished",
		logging.Int("done", summary.Done),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("stale", summary.Stale))
	return summary, nil
}

// RunTarget resolves one video from query and runs it after confirmation,
// ignoring history and existing scripts. A declined confirmation cancels only
// this operation and returns a zero summary.
func (r *Runner) RunTarget(ctx context.Context, query string, videos []library.Entry) (Summary, error) {
	var summary Summary
	video, score, ok := scoring.ResolveTarget(query, videos)
	if !ok {
		r.console.Warnf("No video matches %q.", query)
		return summary, nil
	}
	summary.Total = 1

	r.console.Printf("Target: %s (%d of %d terms)\n", video.FullPath, score, len(strings.Fields(query)))
	confirmed, err := r.console.Confirm("Match this video?", true)
	if err != nil {
		summary.Aborted = true
		return summary, fmt.Errorf("%w: %v", session.ErrAborted, err)
	}
	if !confirmed {
		r.console.Printf("Cancelled.\n")
		return Summary{}, nil
	}
	if !r.exists(video) {
		summary.Stale++
		r.console.Warnf("Video no longer exists: %s", video.FullPath)
		return summary, nil
	}
	err = r.runOne(ctx, video, &summary)
	return summary, err
}

func (r *Runner) runOne(ctx context.Context, video library.Entry, summary *Summary) error {
	outcome, err := session.New(r.deps, r.opts, video).Run(ctx)
	switch outcome.State {
	case session.StateDone:
		summary.Done++
	case session.StateSkipped:
		summary.Skipped++
	case session.StateFailed:
		summary.Failed++
	}
	if outcome.Learned {
		summary.Learned++
	}
	if err != nil {
		if errors.Is(err, session.ErrAborted) {
			summary.Aborted = true
			r.logger.Info("run aborted by user", logging.String(logging.FieldVideo, video.FullPath))
		}
		return err
	}
	return nil
}

func (r *Runner) hasCompanion(video library.Entry) bool {
	companion := video.CompanionScriptPath(r.runOpts.ScriptExtension)
	if companion == video.FullPath {
		return false
	}
	_, err := os.Stat(companion)
	return err == nil
}

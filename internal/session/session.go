package session

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"funmatch/internal/config"
	"funmatch/internal/extract"
	"funmatch/internal/library"
	"funmatch/internal/logging"
	"funmatch/internal/scoring"
	"funmatch/internal/studio"
	"funmatch/internal/textutil"
)

// Console is the prompt surface a session talks through.
type Console interface {
	Printf(format string, args ...any)
	Warnf(format string, args ...any)
	ReadLine(prompt string) (string, error)
	ShowCandidates(candidates []scoring.Candidate)
}

// History records resolved videos.
type History interface {
	Append(path string) error
}

// Copier performs an overwrite copy of src onto dst.
type Copier interface {
	Copy(src, dst string) error
}

// CopyFunc adapts a function to Copier.
type CopyFunc func(src, dst string) error

func (f CopyFunc) Copy(src, dst string) error { return f(src, dst) }

// Learner persists a new studio detection pattern.
type Learner interface {
	Learn(name, pattern string) (bool, error)
}

// Deps are the collaborators shared by every session of a run.
type Deps struct {
	Extractor *extract.Extractor
	Engine    *scoring.Engine
	Registry  *studio.Registry
	Scripts   []library.Entry
	Console   Console
	History   History
	Copier    Copier
	Learner   Learner
	Logger    *slog.Logger
}

// Options are the prompt behaviour settings.
type Options struct {
	AskOnEmpty      bool
	DefaultAction   string
	SkipMarker      string
	QuitMarker      string
	DisplayLimit    int
	ScriptExtension string
}

// OptionsFromConfig maps configuration onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AskOnEmpty:      cfg.Matching.AskOnEmpty,
		DefaultAction:   cfg.Matching.DefaultAction,
		SkipMarker:      cfg.Matching.SkipMarker,
		QuitMarker:      cfg.Matching.QuitMarker,
		DisplayLimit:    cfg.Matching.DisplayLimit,
		ScriptExtension: cfg.Library.ScriptExtension,
	}
}

// Outcome describes how a session ended.
type Outcome struct {
	State       State
	Video       library.Entry
	Selected    *scoring.Candidate
	Destination string
	Learned     bool
	Reason      string
	// Err holds the copy error of a failed session.
	Err error
}

// Session drives one video from analysis to a terminal state.
type Session struct {
	deps   Deps
	opts   Options
	video  library.Entry
	logger *slog.Logger

	state   State
	result  extract.Result
	shown   []scoring.Candidate
	outcome Outcome
}

// New creates a session for video in StateAnalyzing.
func New(deps Deps, opts Options, video library.Entry) *Session {
	if opts.DisplayLimit <= 0 {
		opts.DisplayLimit = 12
	}
	if opts.DefaultAction == "" {
		opts.DefaultAction = config.ActionDone
	}
	logger := logging.NewComponentLogger(deps.Logger, "session").With(logging.String(logging.FieldVideo, video.FullPath))
	return &Session{
		deps:    deps,
		opts:    opts,
		video:   video,
		logger:  logger,
		state:   StateAnalyzing,
		outcome: Outcome{Video: video},
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Result returns the current extraction, including refined keywords.
func (s *Session) Result() extract.Result {
	return s.result
}

// Run advances the session until it reaches a terminal state. The returned
// error is non-nil only for ErrAborted or a cancelled context; the outcome
// reflects whatever state was reached.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	for !s.state.Terminal() {
		if err := ctx.Err(); err != nil {
			return s.outcome, err
		}
		var err error
		switch s.state {
		case StateAnalyzing:
			err = s.analyze()
		case StateAwaitingInput, StateRefined:
			err = s.awaitInput()
		}
		if err != nil {
			s.outcome.State = s.state
			return s.outcome, err
		}
	}
	s.outcome.State = s.state
	return s.outcome, nil
}

func (s *Session) analyze() error {
	s.result = s.deps.Extractor.Extract(s.video.DisplayName, s.video.FullPath)
	s.logger.Debug("extracted metadata",
		logging.Strings("keywords", s.result.Keywords),
		logging.String("studio", s.result.Studio),
		logging.String("date", s.result.DateCompact))

	if s.result.Empty() && s.opts.AskOnEmpty {
		s.deps.Console.Warnf("Nothing usable found in %q.", s.video.DisplayName)
		line, err := s.read("Keywords (Enter to skip permanently): ")
		if err != nil {
			return err
		}
		if s.isQuit(line) {
			return ErrAborted
		}
		if line != "" {
			s.result = s.deps.Extractor.ExtractQuery(line)
		}
	}
	if s.result.Empty() {
		s.recordHistory()
		s.logger.Info("video skipped permanently",
			logging.Args(logging.DecisionAttrs("skip", "permanent", "nothing extracted")...)...)
		s.finish(StateSkipped, ReasonPermanentSkip)
		return nil
	}
	s.transition(StateAwaitingInput)
	return nil
}

func (s *Session) awaitInput() error {
	s.transition(StateAwaitingInput)

	ranked := s.deps.Engine.Rank(s.result, s.deps.Scripts)
	if len(ranked) > s.opts.DisplayLimit {
		ranked = ranked[:s.opts.DisplayLimit]
	}
	scoring.AttachInference(ranked, s.deps.Registry)
	s.shown = ranked

	s.deps.Console.Printf("\n%s\n", s.video.DisplayName)
	if len(ranked) == 0 {
		s.deps.Console.Warnf("No matching scripts for keywords: %s", strings.Join(s.result.Keywords, " "))
	} else {
		s.deps.Console.ShowCandidates(ranked)
	}

	line, err := s.read(s.prompt())
	if err != nil {
		return err
	}

	switch {
	case line == "":
		return s.applyDefault()
	case strings.EqualFold(line, s.opts.SkipMarker):
		s.logger.Info("video skipped", logging.Args(logging.DecisionAttrs("skip", "skipped", "user skip marker")...)...)
		s.finish(StateSkipped, ReasonSkipped)
		return nil
	case s.isQuit(line):
		return ErrAborted
	}

	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(s.shown) {
		return s.selectCandidate(s.shown[n-1])
	}

	s.refine(line)
	return nil
}

func (s *Session) applyDefault() error {
	if s.opts.DefaultAction == config.ActionSkip {
		s.logger.Info("video skipped", logging.Args(logging.DecisionAttrs("skip", "skipped", "default action")...)...)
		s.finish(StateSkipped, ReasonSkipped)
		return nil
	}
	s.recordHistory()
	s.logger.Info("video marked done", logging.Args(logging.DecisionAttrs("skip", "done", "default action")...)...)
	s.finish(StateDone, ReasonMarkedDone)
	return nil
}

func (s *Session) refine(line string) {
	s.result = s.result.WithKeywords(textutil.Tokenize(line)...)
	s.deps.Console.Printf("Keywords: %s\n", strings.Join(s.result.Keywords, " "))
	s.logger.Debug("keywords refined", logging.Strings("keywords", s.result.Keywords))
	s.transition(StateRefined)
}

func (s *Session) selectCandidate(c scoring.Candidate) error {
	dst := s.video.CompanionScriptPath(s.opts.ScriptExtension)
	if err := s.deps.Copier.Copy(c.TargetPath, dst); err != nil {
		s.deps.Console.Warnf("Copy failed: %v", err)
		logging.WarnWithContext(s.logger, "script copy failed", "script_copy_failed",
			logging.Error(err),
			logging.String("source", c.TargetPath),
			logging.String("destination", dst),
			logging.String(logging.FieldErrorHint, "check that the script exists and the video folder is writable"),
			logging.String(logging.FieldImpact, "video left unresolved and will be offered again"))
		s.outcome.Err = err
		s.finish(StateFailed, ReasonCopyFailed)
		return nil
	}

	selected := c
	s.outcome.Selected = &selected
	s.outcome.Destination = dst
	s.deps.Console.Printf("Copied %s -> %s\n", c.DisplayName, dst)
	s.logger.Info("script matched",
		logging.String("script", c.TargetPath),
		logging.Int("score", c.Score),
		logging.Strings("matched_terms", c.MatchedTerms))
	s.recordHistory()
	s.finish(StateDone, ReasonMatched)

	return s.offerLearn(c)
}

// offerLearn proposes a pattern for the candidate's inferred studio when
// nothing was detected for the video but the label appears in its name.
func (s *Session) offerLearn(c scoring.Candidate) error {
	label := strings.TrimSpace(c.InferredStudio)
	if s.deps.Learner == nil || s.result.Studio != "" || label == "" {
		return nil
	}
	if !textutil.ContainsFold(s.video.DisplayName, label) {
		return nil
	}

	answer, err := s.read(fmt.Sprintf("Learn studio %q for future matches? [y/N]: ", label))
	if err != nil {
		return err
	}
	if s.isQuit(answer) {
		return ErrAborted
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
	default:
		return nil
	}

	added, err := s.deps.Learner.Learn(label, regexp.QuoteMeta(label))
	if err != nil {
		s.deps.Console.Warnf("Could not save studio pattern: %v", err)
		logging.WarnWithContext(s.logger, "studio learn failed", "studio_learn_failed",
			logging.Error(err),
			logging.String("studio", label),
			logging.String(logging.FieldErrorHint, "check the studio registry file permissions"),
			logging.String(logging.FieldImpact, "pattern kept for this run only"))
		return nil
	}
	if added {
		s.outcome.Learned = true
		s.deps.Console.Printf("Learned studio %s\n", label)
	}
	return nil
}

func (s *Session) recordHistory() {
	if s.deps.History == nil {
		return
	}
	if err := s.deps.History.Append(s.video.FullPath); err != nil {
		s.deps.Console.Warnf("Could not record history: %v", err)
		logging.WarnWithContext(s.logger, "history append failed", "history_append_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the history file permissions"),
			logging.String(logging.FieldImpact, "video will be offered again next run"))
	}
}

func (s *Session) read(prompt string) (string, error) {
	line, err := s.deps.Console.ReadLine(prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAborted, err)
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) prompt() string {
	var b strings.Builder
	if n := len(s.shown); n > 0 {
		fmt.Fprintf(&b, "[1-%d] select, ", n)
	}
	fmt.Fprintf(&b, "%s skip, %s quit, text refines, Enter = %s: ", s.opts.SkipMarker, s.opts.QuitMarker, s.opts.DefaultAction)
	return b.String()
}

func (s *Session) isQuit(line string) bool {
	return s.opts.QuitMarker != "" && strings.EqualFold(line, s.opts.QuitMarker)
}

func (s *Session) transition(next State) {
	if s.state == next {
		return
	}
	s.logger.Debug("session transition",
		logging.String("from", s.state.String()),
		logging.String("to", next.String()))
	s.state = next
}

func (s *Session) finish(state State, reason string) {
	s.transition(state)
	s.outcome.State = state
	s.outcome.Reason = reason
}

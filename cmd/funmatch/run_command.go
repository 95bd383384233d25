package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"funmatch/internal/console"
	"funmatch/internal/extract"
	"funmatch/internal/fileutil"
	"funmatch/internal/history"
	"funmatch/internal/library"
	"funmatch/internal/logging"
	"funmatch/internal/matcher"
	"funmatch/internal/preflight"
	"funmatch/internal/runlock"
	"funmatch/internal/scoring"
	"funmatch/internal/session"
	"funmatch/internal/studio"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var target string
	var rescan bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match unprocessed videos to scripts interactively",
		Long: "Offer every video that has no history entry and no script beside it, " +
			"show the best scoring scripts and copy the chosen one next to the video.\n\n" +
			"At the prompt: a number selects, Enter applies the default action, " +
			"the skip marker skips, the quit marker stops the run and anything else refines the keywords.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if failed := preflight.Failed(preflight.RunAll(cfg)); len(failed) > 0 {
				return fmt.Errorf("preflight: %s %s", strings.ToLower(failed[0].Name), failed[0].Detail)
			}
			runCtx, logger, err := ctx.runContext(cmd.Context())
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.LockPath())
			if err != nil {
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					logging.WarnWithContext(logger, "run lock release failed", "lock_release_failed",
						logging.Error(err),
						logging.String(logging.FieldImpact, "next run may report the lock as held"))
				}
			}()

			idx, err := library.Open(cfg.IndexPath())
			if err != nil {
				return fmt.Errorf("open library index: %w", err)
			}
			defer idx.Close()

			videos, scripts, err := libraryEntries(runCtx, cfg, idx, rescan, logger)
			if err != nil {
				return err
			}

			hist, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			store, err := ctx.studioStore(logger)
			if err != nil {
				return err
			}
			catalog := studio.NewCatalog(store)
			extractor, err := extract.NewFromConfig(cfg, catalog.Registry())
			if err != nil {
				return err
			}

			term := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			deps := session.Deps{
				Extractor: extractor,
				Engine:    scoring.NewEngineFromConfig(cfg),
				Registry:  catalog.Registry(),
				Scripts:   scripts,
				Console:   term,
				History:   hist,
				Copier:    session.CopyFunc(fileutil.CopyFile),
				Learner:   catalog,
				Logger:    logger,
			}
			runner := matcher.NewRunner(deps, session.OptionsFromConfig(cfg), matcher.Options{
				SkipExistingScripts: cfg.Library.SkipExistingScripts,
				ScriptExtension:     cfg.Library.ScriptExtension,
			}, hist, term)

			logger.Info("run started",
				logging.Int("videos", len(videos)),
				logging.Int("scripts", len(scripts)),
				logging.Bool("target", strings.TrimSpace(target) != ""))

			var summary matcher.Summary
			if q := strings.TrimSpace(target); q != "" {
				summary, err = runner.RunTarget(runCtx, q, videos)
			} else {
				summary, err = runner.Run(runCtx, videos)
			}
			if summary.Total > 0 {
				printSummary(cmd.OutOrStdout(), summary)
			}
			if errors.Is(err, session.ErrAborted) {
				return fmt.Errorf("run stopped: %w", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Match only the video best matching these words")
	cmd.Flags().BoolVar(&rescan, "rescan", false, "Rescan the library before matching")
	return cmd
}

func printSummary(out io.Writer, s matcher.Summary) {
	rows := [][]string{
		{"Matched", strconv.Itoa(s.Done)},
		{"Skipped", strconv.Itoa(s.Skipped)},
		{"Copy failed", strconv.Itoa(s.Failed)},
		{"Already processed", strconv.Itoa(s.AlreadyDone)},
		{"Script present", strconv.Itoa(s.ExistingPair)},
		{"Missing on disk", strconv.Itoa(s.Stale)},
		{"Studios learned", strconv.Itoa(s.Learned)},
	}
	fmt.Fprintln(out, console.RenderTable([]string{"Result", "Videos"}, rows, []console.Alignment{console.AlignLeft, console.AlignRight}))
	if s.Aborted {
		fmt.Fprintln(out, "Run stopped before the last video.")
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"funmatch/internal/console"
	"funmatch/internal/extract"
	"funmatch/internal/library"
	"funmatch/internal/logging"
	"funmatch/internal/scoring"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var rescan bool

	cmd := &cobra.Command{
		Use:   "check <words...>",
		Short: "Show the best scoring scripts for a free-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx, logger, err := ctx.runContext(cmd.Context())
			if err != nil {
				return err
			}

			idx, err := library.Open(cfg.IndexPath())
			if err != nil {
				return fmt.Errorf("open library index: %w", err)
			}
			defer idx.Close()

			_, scripts, err := libraryEntries(runCtx, cfg, idx, rescan, logger)
			if err != nil {
				return err
			}
			store, err := ctx.studioStore(logger)
			if err != nil {
				return err
			}
			registry := store.Load()
			extractor, err := extract.NewFromConfig(cfg, registry)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			result, candidates := scoring.NewEngineFromConfig(cfg).Check(extractor, query, scripts)
			scoring.AttachInference(candidates, registry)
			logger.Debug("check evaluated",
				logging.String("query", query),
				logging.Strings("keywords", result.Keywords),
				logging.Int("candidates", len(candidates)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Keywords: %s\n", describeResult(result))
			if len(candidates) == 0 {
				fmt.Fprintln(out, "No scripts reached the minimum score.")
				return nil
			}
			fmt.Fprintln(out, console.RenderCandidates(candidates))
			return nil
		},
	}

	cmd.Flags().BoolVar(&rescan, "rescan", false, "Rescan the library before checking")
	return cmd
}

func describeResult(r extract.Result) string {
	parts := make([]string, 0, 3)
	if len(r.Keywords) > 0 {
		parts = append(parts, strings.Join(r.Keywords, " "))
	}
	if r.Studio != "" {
		parts = append(parts, "studio="+r.Studio)
	}
	if r.DateCompact != "" {
		parts = append(parts, "date="+r.DateCompact)
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, ", ")
}

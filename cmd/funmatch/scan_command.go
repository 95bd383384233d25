package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"funmatch/internal/console"
	"funmatch/internal/library"
	"funmatch/internal/runlock"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Rescan the video and script roots into the library index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx, logger, err := ctx.runContext(cmd.Context())
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.LockPath())
			if err != nil {
				return err
			}
			defer lock.Release()

			idx, err := library.Open(cfg.IndexPath())
			if err != nil {
				return fmt.Errorf("open library index: %w", err)
			}
			defer idx.Close()

			if _, _, err := scanLibrary(runCtx, cfg, idx, logger); err != nil {
				return err
			}
			stats, err := idx.Stats(runCtx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(stats))
			for _, s := range stats {
				rows = append(rows, []string{string(s.Kind), strconv.Itoa(s.Count), s.ScannedAt.Local().Format("2006-01-02 15:04:05")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), console.RenderTable(
				[]string{"Kind", "Files", "Scanned"},
				rows,
				[]console.Alignment{console.AlignLeft, console.AlignRight, console.AlignLeft},
			))
			return nil
		},
	}
}

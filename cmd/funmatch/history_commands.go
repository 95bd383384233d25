package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"funmatch/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect processed videos",
	}
	historyCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print processed video paths in the order they were recorded",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if log.Len() == 0 {
				fmt.Fprintln(out, "No videos processed yet")
				return nil
			}
			for _, path := range log.List() {
				fmt.Fprintln(out, path)
			}
			return nil
		},
	})
	return historyCmd
}

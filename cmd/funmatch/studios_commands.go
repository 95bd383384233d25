package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"funmatch/internal/console"
	"funmatch/internal/runlock"
	"funmatch/internal/studio"
)

func newStudiosCommand(ctx *commandContext) *cobra.Command {
	studiosCmd := &cobra.Command{
		Use:   "studios",
		Short: "Inspect and extend the studio registry",
	}

	studiosCmd.AddCommand(newStudiosListCommand(ctx))
	studiosCmd.AddCommand(newStudiosAddCommand(ctx))

	return studiosCmd
}

func newStudiosListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List studios in detection order",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.studioStore(logger)
			if err != nil {
				return err
			}
			studios := store.Load().Studios()
			out := cmd.OutOrStdout()
			if len(studios) == 0 {
				fmt.Fprintf(out, "No studios registered in %s\n", store.Path())
				return nil
			}
			rows := make([][]string, 0, len(studios))
			for i, s := range studios {
				rows = append(rows, []string{strconv.Itoa(i + 1), s.Name, strings.Join(s.Patterns, "  ")})
			}
			fmt.Fprintln(out, console.RenderTable(
				[]string{"#", "Studio", "Patterns"},
				rows,
				[]console.Alignment{console.AlignRight, console.AlignLeft, console.AlignLeft},
			))
			return nil
		},
	}
}

func newStudiosAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <pattern>",
		Short: "Add a detection pattern, creating the studio if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.LockPath())
			if err != nil {
				return err
			}
			defer lock.Release()

			store, err := ctx.studioStore(logger)
			if err != nil {
				return err
			}
			name, pattern := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			added, err := studio.NewCatalog(store).Learn(name, pattern)
			if err != nil {
				return fmt.Errorf("add studio pattern: %w", err)
			}
			out := cmd.OutOrStdout()
			if !added {
				fmt.Fprintf(out, "%s already has pattern %s\n", name, pattern)
				return nil
			}
			fmt.Fprintf(out, "Added pattern %s to %s\n", pattern, name)
			return nil
		},
	}
}

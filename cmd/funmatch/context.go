package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"funmatch/internal/config"
	"funmatch/internal/library"
	"funmatch/internal/logging"
	"funmatch/internal/studio"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		verbose := c.verbose != nil && *c.verbose
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, verbose)
	})
	return c.logger, c.loggerErr
}

// runContext tags ctx with a fresh correlation id and returns a logger that
// carries it.
func (c *commandContext) runContext(ctx context.Context) (context.Context, *slog.Logger, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return ctx, nil, err
	}
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())
	return ctx, logging.WithContext(ctx, logger), nil
}

func (c *commandContext) studioStore(logger *slog.Logger) (*studio.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return studio.NewStore(cfg.Studios.RegistryPath, logger), nil
}

// libraryEntries returns the indexed videos and scripts, scanning when the
// index holds nothing yet or when rescan is set.
func libraryEntries(ctx context.Context, cfg *config.Config, idx *library.Index, rescan bool, logger *slog.Logger) ([]library.Entry, []library.Entry, error) {
	if !rescan {
		videos, vErr := idx.Entries(ctx, library.KindVideo)
		scripts, sErr := idx.Entries(ctx, library.KindScript)
		switch {
		case vErr == nil && sErr == nil:
			return videos, scripts, nil
		case vErr != nil && !errors.Is(vErr, library.ErrIndexEmpty):
			return nil, nil, vErr
		case sErr != nil && !errors.Is(sErr, library.ErrIndexEmpty):
			return nil, nil, sErr
		}
		logger.Info("library index empty, scanning")
	}
	return scanLibrary(ctx, cfg, idx, logger)
}

func scanLibrary(ctx context.Context, cfg *config.Config, idx *library.Index, logger *slog.Logger) ([]library.Entry, []library.Entry, error) {
	videos, err := library.Scan(cfg.Paths.VideoDirs, library.ScanOptions{
		Extensions: cfg.Library.VideoExtensions,
		Excludes:   cfg.Library.ExcludePaths,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan videos: %w", err)
	}
	scripts, err := library.Scan(cfg.Paths.ScriptDirs, library.ScanOptions{
		Extensions: []string{cfg.Library.ScriptExtension},
		Excludes:   cfg.Library.ExcludePaths,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan scripts: %w", err)
	}
	if err := idx.Replace(ctx, library.KindVideo, videos); err != nil {
		return nil, nil, err
	}
	if err := idx.Replace(ctx, library.KindScript, scripts); err != nil {
		return nil, nil, err
	}
	logger.Info("library scanned",
		logging.Int("videos", len(videos)),
		logging.Int("scripts", len(scripts)))
	return videos, scripts, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

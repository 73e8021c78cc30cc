package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"archivewit/internal/config"
	"archivewit/internal/curation"
	"archivewit/internal/editor"
	"archivewit/internal/linkmeta"
	"archivewit/internal/logging"
	"archivewit/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
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
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withStore opens the archive for read-only commands.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer st.Close()
	return fn(st)
}

// withSession opens the archive, takes the edit lock and builds a curation
// service. A non-empty formPath replaces the interactive editor with the
// contents of that file.
func (c *commandContext) withSession(runCtx context.Context, formPath string, fn func(context.Context, *curation.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	return c.withStore(func(st *store.Store) error {
		unlock, err := st.Lock()
		if err != nil {
			return err
		}
		defer func() { _ = unlock() }()

		var ed editor.Editor = editor.NewCommand(cfg.Editor.Command)
		if path := strings.TrimSpace(formPath); path != "" {
			expanded, err := config.ExpandPath(path)
			if err != nil {
				return fmt.Errorf("resolve form path: %w", err)
			}
			ed = editor.File{Path: expanded}
		}
		fetcher := linkmeta.NewFetcher(cfg.Links.UserAgent, cfg.LinkTimeout())
		svc := curation.NewService(st, ed, logger, curation.WithLinkFetcher(fetcher))
		return fn(runCtx, svc)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

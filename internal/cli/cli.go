// Package cli implements the aurinfo command-line interface.
//
// This package provides commands for resolving AUR package metadata,
// extracting dependency sets, searching the AUR, managing the record
// cache, and serving the same data over HTTP. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aurtools/aurinfo/pkg/aur"
	"github.com/aurtools/aurinfo/pkg/buildinfo"
	"github.com/aurtools/aurinfo/pkg/cache"
	"github.com/aurtools/aurinfo/pkg/srcinfo"
)

// appName is the application name used for directories and display.
const appName = "aurinfo"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	archFlag   string
	cfg        Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "aurinfo resolves AUR package metadata",
		Long:         `aurinfo fetches and parses .SRCINFO package descriptions from the Arch User Repository, resolving per-sub-package metadata records, dependency sets and update summaries.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if c.archFlag != "" {
				cfg.Arch = c.archFlag
			}
			if cfg.Arch != string(srcinfo.ArchX8664) && cfg.Arch != string(srcinfo.ArchI686) {
				return fmt.Errorf("unsupported architecture %q", cfg.Arch)
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file path")
	root.PersistentFlags().StringVar(&c.archFlag, "arch", "", "target architecture (x86_64 or i686)")

	root.AddCommand(c.infoCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.indexCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// openClient builds the AUR client from the loaded configuration. The
// returned closer releases the cache backend.
func (c *CLI) openClient(ctx context.Context) (*aur.Client, func(), error) {
	backend, err := c.openCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	ttl, err := c.cfg.cacheTTL()
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}

	indexFile := c.cfg.IndexFile
	if indexFile == "" {
		if dir, err := cacheDir(c.cfg); err == nil {
			indexFile = dir + "/packages.idx"
		}
	}

	client := aur.New(aur.Options{
		BaseURL:   c.cfg.BaseURL,
		Cache:     backend,
		Logger:    c.Logger,
		Arch:      srcinfo.Arch(c.cfg.Arch),
		CacheTTL:  ttl,
		IndexFile: indexFile,
	})
	return client, func() { _ = backend.Close() }, nil
}

// openCache constructs the configured cache backend.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	switch c.cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryCache(0), nil
	case "file":
		dir, err := cacheDir(c.cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.cfg.Redis.Addr,
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})
	case "mongo":
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      c.cfg.Mongo.URI,
			Database: c.cfg.Mongo.Database,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.cfg.Cache.Backend)
	}
}

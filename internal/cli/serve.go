package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/nocworks/socplan/internal/api"
	"github.com/nocworks/socplan/pkg/cache"
	"github.com/nocworks/socplan/pkg/gen"
	"github.com/nocworks/socplan/pkg/layout"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the socplan HTTP API",
		Long: `Run the socplan HTTP API.

The server exposes validation, layout, port distribution, and floogen
generation endpoints under /api. Settings are read from a TOML config
file; flags override it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "server config file (TOML)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// loadServerConfig reads the TOML server config, applying defaults for
// anything unset. A missing path means pure defaults.
func loadServerConfig(path string) (api.Config, error) {
	cfg := api.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load server config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *CLI) runServe(ctx context.Context, cfg api.Config) error {
	store, err := c.serverCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	genOpts := []gen.Option{gen.WithTimeout(time.Duration(cfg.GenerateTimeoutSeconds) * time.Second)}
	if cfg.GeneratorBin != "" {
		genOpts = append(genOpts, gen.WithBinary(cfg.GeneratorBin))
	}
	runner, err := gen.NewRunner(cfg.Workdir, genOpts...)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	server := api.NewServer(c.Logger, layout.DefaultConfig(), store, runner)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	c.Logger.Info("server stopped")
	return nil
}

// serverCache picks the cache backend from the server config: redis when a
// URL is set, otherwise the file cache, otherwise none.
func (c *CLI) serverCache(ctx context.Context, cfg api.Config) (cache.Cache, error) {
	switch {
	case cfg.RedisURL != "":
		store, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache")
		return store, nil
	case cfg.CacheDir != "":
		return cache.NewFileCache(cfg.CacheDir)
	default:
		return cache.NewNullCache(), nil
	}
}

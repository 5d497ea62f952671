package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/StinkyLord/ibuildhw/internal/build"
	"github.com/StinkyLord/ibuildhw/internal/catalog"
	"github.com/StinkyLord/ibuildhw/internal/metrics"
	"github.com/StinkyLord/ibuildhw/internal/model"
	"github.com/StinkyLord/ibuildhw/internal/resolver"
	"github.com/StinkyLord/ibuildhw/internal/session"
)

// app bundles the services one command invocation needs.
type app struct {
	logger   *zap.Logger
	metrics  *metrics.Metrics
	cache    *catalog.Cache
	catalogs *catalog.Service
	resolver *resolver.Resolver
}

func newApp() *app {
	m := metrics.New()
	a := &app{
		logger:   logger,
		metrics:  m,
		resolver: resolver.New(logger, m),
	}

	if cfg.Cache.Enabled {
		cache, err := catalog.OpenCache(cfg.Cache.Path)
		if err != nil {
			// Run uncached rather than fail the command.
			logger.Warn("Catalog cache unavailable", zap.String("path", cfg.Cache.Path), zap.Error(err))
		} else {
			a.cache = cache
		}
	}

	client := catalog.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.GetAPITimeout())
	ttl := cfg.GetCacheTTL()
	if !cfg.Cache.Enabled {
		ttl = 0
	}
	a.catalogs = catalog.NewService(client, a.cache, catalog.Options{
		TTL:         ttl,
		Offline:     cfg.Cache.Offline,
		Concurrency: cfg.API.Concurrency,
	}, logger, m)
	return a
}

func (a *app) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("Failed to close catalog cache", zap.Error(err))
		}
	}
}

// loadBuild reads the sheet at path and hydrates it against the catalogs
// of the categories it mentions. Ids that no longer exist are logged and
// left out.
func (a *app) loadBuild(ctx context.Context, path string) (*build.Sheet, build.State, error) {
	sheet, err := build.LoadSheet(path)
	if err != nil {
		return nil, build.State{}, err
	}

	fetched := a.catalogs.FetchAll(ctx, sheet.Categories())
	for category, f := range fetched {
		if f.Err != nil {
			logger.Warn("Catalog unavailable for selected component",
				zap.String("category", string(category)), zap.Error(f.Err))
		}
	}

	state, err := sheet.State(catalog.Catalogs(fetched))
	if errors.Is(err, build.ErrUnknownComponent) {
		logger.Warn("Build sheet references unknown components", zap.Error(err))
		err = nil
	}
	if err != nil {
		return nil, build.State{}, fmt.Errorf("failed to load build %s: %w", path, err)
	}
	return sheet, state, nil
}

// newSession creates a session seeded with state.
func (a *app) newSession(state build.State) *session.Session {
	s := session.New(a.catalogs, a.resolver, a.logger)
	s.Load(state)
	return s
}

// parseCategory wraps model.ParseCategory with the list of valid names.
func parseCategory(s string) (model.Category, error) {
	c, err := model.ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("%w (valid: %v)", err, model.Categories)
	}
	return c, nil
}

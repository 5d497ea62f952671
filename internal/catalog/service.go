package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/StinkyLord/ibuildhw/internal/metrics"
	"github.com/StinkyLord/ibuildhw/internal/model"
)

// Fetcher retrieves one category's catalog. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, category model.Category) ([]*model.Component, error)
}

// Options tune a Service.
type Options struct {
	// TTL is how long a cached catalog is served without refetching.
	// Zero disables cache reads (every call goes to the API).
	TTL time.Duration
	// Offline serves cached catalogs of any age and never calls the API.
	Offline bool
	// Concurrency caps parallel fetches in FetchAll. Zero means one per
	// category.
	Concurrency int
}

// Fetched is the outcome for one category in FetchAll.
type Fetched struct {
	Components []*model.Component
	Err        error
}

// Service is the catalog source the rest of the program talks to: cache
// first, remote API second.
type Service struct {
	fetcher Fetcher
	cache   *Cache
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService wires a fetcher and an optional cache.
func NewService(fetcher Fetcher, cache *Cache, opts Options, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		opts:    opts,
		logger:  logger,
		metrics: m,
	}
}

// Get returns the catalog for category.
func (s *Service) Get(ctx context.Context, category model.Category) ([]*model.Component, error) {
	if !category.HasCatalog() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	log := s.logger.With(zap.String("category", string(category)))

	if s.cache != nil && (s.opts.TTL > 0 || s.opts.Offline) {
		maxAge := s.opts.TTL
		if s.opts.Offline {
			maxAge = 0
		}
		components, fetchedAt, err := s.cache.Get(ctx, category, maxAge)
		switch {
		case err == nil:
			s.metrics.Fetch(string(category), metrics.FetchCached)
			log.Debug("Catalog served from cache",
				zap.Int("items", len(components)),
				zap.Time("fetched_at", fetchedAt))
			return components, nil
		case !errors.Is(err, ErrNoCatalog):
			log.Warn("Catalog cache read failed", zap.Error(err))
		}
	}

	if s.opts.Offline {
		s.metrics.Fetch(string(category), metrics.FetchError)
		return nil, fmt.Errorf("%w for %s (offline)", ErrNoCatalog, category)
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w for %s (no API configured)", ErrNoCatalog, category)
	}

	start := time.Now()
	components, err := s.fetcher.Fetch(ctx, category)
	s.metrics.ObserveFetch(string(category), time.Since(start))
	if err != nil {
		s.metrics.Fetch(string(category), metrics.FetchError)
		log.Warn("Catalog fetch failed", zap.Error(err))
		return nil, err
	}
	s.metrics.Fetch(string(category), metrics.FetchOK)
	log.Debug("Catalog fetched",
		zap.Int("items", len(components)),
		zap.Duration("elapsed", time.Since(start)))

	if s.cache != nil {
		if err := s.cache.Put(ctx, category, components); err != nil {
			log.Warn("Catalog cache write failed", zap.Error(err))
		}
	}
	return components, nil
}

// FetchAll retrieves several catalogs concurrently. A failure in one
// category is recorded in its Fetched entry and never cancels the others.
func (s *Service) FetchAll(ctx context.Context, categories []model.Category) map[model.Category]Fetched {
	var mu sync.Mutex
	out := make(map[model.Category]Fetched, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	if s.opts.Concurrency > 0 {
		g.SetLimit(s.opts.Concurrency)
	}
	for _, category := range categories {
		if !category.HasCatalog() {
			continue
		}
		category := category
		g.Go(func() error {
			components, err := s.Get(gctx, category)
			mu.Lock()
			out[category] = Fetched{Components: components, Err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Catalogs flattens FetchAll results, dropping failed categories.
func Catalogs(fetched map[model.Category]Fetched) map[model.Category][]*model.Component {
	out := make(map[model.Category][]*model.Component, len(fetched))
	for category, f := range fetched {
		if f.Err == nil {
			out[category] = f.Components
		}
	}
	return out
}

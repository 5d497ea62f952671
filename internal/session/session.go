// Package session holds a build in progress and keeps its open slots'
// candidate lists current.
//
// Catalog fetches for different slots run concurrently and complete in any
// order. Each result is resolved against the build as it stands when the
// data arrives, and results requested before a newer refresh of the same
// slot are discarded, so the last selection always wins.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/StinkyLord/ibuildhw/internal/build"
	"github.com/StinkyLord/ibuildhw/internal/model"
	"github.com/StinkyLord/ibuildhw/internal/resolver"
)

// Source supplies catalogs. *catalog.Service implements it.
type Source interface {
	Get(ctx context.Context, category model.Category) ([]*model.Component, error)
}

// Slot is the latest known candidate list for one category.
type Slot struct {
	Category model.Category
	Result   resolver.Result
	// Err is set when the catalog could not be fetched. Result is then
	// empty and was not produced by the resolver.
	Err error
	// Generation is the build generation the refresh was requested at.
	Generation uint64
	// Stale marks a result that arrived after a newer one for the same
	// slot and was not stored.
	Stale bool
}

// Session is safe for concurrent use.
type Session struct {
	source   Source
	resolver *resolver.Resolver
	logger   *zap.Logger

	mu         sync.Mutex
	state      build.State
	generation uint64
	slots      map[model.Category]Slot
	catalogs   map[model.Category][]*model.Component
}

// New creates an empty session. res and logger may be nil.
func New(source Source, res *resolver.Resolver, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if res == nil {
		res = resolver.New(logger, nil)
	}
	return &Session{
		source:   source,
		resolver: res,
		logger:   logger,
		state:    build.Empty(),
		slots:    map[model.Category]Slot{},
		catalogs: map[model.Category][]*model.Component{},
	}
}

// State returns the current build.
func (s *Session) State() build.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation returns the number of selections made so far.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Select records c in category (nil clears it) and returns the new
// generation. Candidate lists are not recomputed until the next Refresh.
func (s *Session) Select(category model.Category, c *model.Component) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.Select(category, c)
	s.generation++
	s.logger.Debug("Selection changed",
		zap.String("category", string(category)),
		zap.Bool("cleared", c == nil),
		zap.Uint64("generation", s.generation))
	return s.generation
}

// SelectByID looks id up in category's catalog, fetching it if this
// session has not seen it yet, and selects it.
func (s *Session) SelectByID(ctx context.Context, category model.Category, id string) error {
	var catalog []*model.Component
	if category == model.CategoryPurpose {
		catalog = model.PurposeProfiles()
	} else {
		var err error
		if catalog, err = s.catalog(ctx, category); err != nil {
			return err
		}
	}
	c := build.Find(catalog, id)
	if c == nil {
		return fmt.Errorf("%w: %s:%s", build.ErrUnknownComponent, category, id)
	}
	s.Select(category, c)
	return nil
}

// Load replaces the whole build, as when reading a build sheet.
func (s *Session) Load(state build.State) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.generation++
	return s.generation
}

func (s *Session) catalog(ctx context.Context, category model.Category) ([]*model.Component, error) {
	s.mu.Lock()
	cached, ok := s.catalogs[category]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}
	components, err := s.source.Get(ctx, category)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.catalogs[category] = components
	s.mu.Unlock()
	return components, nil
}

// Refresh fetches and resolves categories concurrently. With no
// categories it refreshes every open slot. The returned slots follow the
// order of the requested categories. Refresh returns only after every
// fetch it started has finished.
func (s *Session) Refresh(ctx context.Context, categories ...model.Category) []Slot {
	s.mu.Lock()
	requested := s.generation
	if len(categories) == 0 {
		categories = s.state.Open(model.Categories)
	}
	s.mu.Unlock()

	var targets []model.Category
	for _, c := range categories {
		if c == model.CategoryExtra {
			continue
		}
		targets = append(targets, c)
	}

	out := make([]Slot, len(targets))
	var g errgroup.Group
	for i, category := range targets {
		i, category := i, category
		g.Go(func() error {
			out[i] = s.refreshOne(ctx, category, requested)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *Session) refreshOne(ctx context.Context, category model.Category, requested uint64) Slot {
	log := s.logger.With(zap.String("category", string(category)))

	var catalog []*model.Component
	var fetchErr error
	if category != model.CategoryPurpose {
		// Always refetch; the session copy only serves SelectByID.
		catalog, fetchErr = s.source.Get(ctx, category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot := Slot{Category: category, Generation: requested}
	if fetchErr != nil {
		slot.Err = fetchErr
		slot.Result = resolver.Result{Category: category}
		log.Warn("Catalog unavailable, slot left empty", zap.Error(fetchErr))
	} else {
		if category != model.CategoryPurpose {
			s.catalogs[category] = catalog
		}
		slot.Result = s.resolver.Resolve(category, catalog, s.state)
	}

	if prev, ok := s.slots[category]; ok && prev.Generation > requested {
		slot.Stale = true
		log.Debug("Discarding superseded result",
			zap.Uint64("generation", requested),
			zap.Uint64("current", prev.Generation))
		return slot
	}
	s.slots[category] = slot
	return slot
}

// Slot returns the stored result for category.
func (s *Session) Slot(category model.Category) (Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[category]
	return slot, ok
}

// Slots returns every stored result in model.Categories order.
func (s *Session) Slots() []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Slot
	for _, c := range model.Categories {
		if slot, ok := s.slots[c]; ok {
			out = append(out, slot)
		}
	}
	return out
}

// Conflicts audits the current build.
func (s *Session) Conflicts() []resolver.Conflict {
	return s.resolver.Audit(s.State())
}

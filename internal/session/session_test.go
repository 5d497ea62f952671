package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/StinkyLord/ibuildhw/internal/build"
	"github.com/StinkyLord/ibuildhw/internal/model"
	"github.com/StinkyLord/ibuildhw/internal/resolver"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gatedSource serves fixed catalogs. A category with a gate blocks until
// the gate is closed or the context ends.
type gatedSource struct {
	mu       sync.Mutex
	catalogs map[model.Category][]*model.Component
	failures map[model.Category]error
	gates    map[model.Category]chan struct{}
	started  chan model.Category
}

func newGatedSource() *gatedSource {
	return &gatedSource{
		catalogs: map[model.Category][]*model.Component{},
		failures: map[model.Category]error{},
		gates:    map[model.Category]chan struct{}{},
		started:  make(chan model.Category, 16),
	}
}

func (g *gatedSource) Get(ctx context.Context, category model.Category) ([]*model.Component, error) {
	g.mu.Lock()
	gate := g.gates[category]
	delete(g.gates, category)
	catalog, err := g.catalogs[category], g.failures[category]
	g.mu.Unlock()

	g.started <- category
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return catalog, err
}

func (g *gatedSource) gate(category model.Category) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[category] = ch
	return ch
}

func board(id, socket, form string, price int) *model.Component {
	return &model.Component{
		ID: id, Category: model.CategoryMotherboard, Price: model.Price(price),
		Attrs: model.MotherboardAttrs{Socket: socket, FormFactor: form},
	}
}

func cpu(id, socket string, price int) *model.Component {
	return &model.Component{
		ID: id, Category: model.CategoryCPU, Price: model.Price(price),
		Attrs: model.CPUAttrs{Socket: socket},
	}
}

func ids(components []*model.Component) []string {
	out := make([]string, 0, len(components))
	for _, c := range components {
		out = append(out, c.ID)
	}
	return out
}

func newSession(t *testing.T, src Source) *Session {
	logger := zaptest.NewLogger(t)
	return New(src, resolver.New(logger, nil), logger)
}

func TestRefresh_ResolvesOpenSlots(t *testing.T) {
	src := newGatedSource()
	src.catalogs[model.CategoryMotherboard] = []*model.Component{
		board("m1", "AM5", "ATX", 200),
		board("m2", "LGA1700", "ATX", 300),
	}
	src.catalogs[model.CategoryCPU] = []*model.Component{cpu("c1", "AM5", 400)}

	s := newSession(t, src)
	s.Select(model.CategoryCPU, cpu("c1", "AM5", 400))

	slots := s.Refresh(context.Background(), model.CategoryMotherboard, model.CategoryPurpose)
	require.Len(t, slots, 2)
	assert.Equal(t, []string{"m1"}, ids(slots[0].Result.Candidates))
	assert.Len(t, slots[1].Result.Candidates, 8)

	stored, ok := s.Slot(model.CategoryMotherboard)
	require.True(t, ok)
	assert.Equal(t, []string{"m1"}, ids(stored.Result.Candidates))
}

func TestRefresh_DefaultsToOpenSlots(t *testing.T) {
	src := newGatedSource()
	s := newSession(t, src)
	s.Select(model.CategoryCPU, cpu("c1", "AM5", 400))

	slots := s.Refresh(context.Background())
	var got []model.Category
	for _, slot := range slots {
		got = append(got, slot.Category)
	}
	assert.NotContains(t, got, model.CategoryCPU)
	assert.NotContains(t, got, model.CategoryExtra)
	assert.Contains(t, got, model.CategoryMotherboard)
	assert.Contains(t, got, model.CategoryPurpose)
}

func TestRefresh_FetchFailureLeavesSlotEmpty(t *testing.T) {
	src := newGatedSource()
	src.failures[model.CategoryPSU] = errors.New("connection refused")
	s := newSession(t, src)

	slots := s.Refresh(context.Background(), model.CategoryPSU)
	require.Len(t, slots, 1)
	assert.Error(t, slots[0].Err)
	assert.Empty(t, slots[0].Result.Candidates)
	assert.False(t, slots[0].Result.Fallback)
}

func TestRefresh_SupersededResultIsDiscarded(t *testing.T) {
	src := newGatedSource()
	src.catalogs[model.CategoryMotherboard] = []*model.Component{
		board("m1", "AM5", "ATX", 200),
		board("m2", "LGA1700", "ATX", 300),
	}
	s := newSession(t, src)

	// First refresh is held at the network.
	gate := src.gate(model.CategoryMotherboard)
	firstDone := make(chan []Slot)
	go func() {
		firstDone <- s.Refresh(context.Background(), model.CategoryMotherboard)
	}()
	<-src.started

	// The user picks a CPU and a second refresh completes first.
	s.Select(model.CategoryCPU, cpu("c2", "LGA1700", 350))
	second := s.Refresh(context.Background(), model.CategoryMotherboard)
	<-src.started
	require.Len(t, second, 1)
	assert.False(t, second[0].Stale)
	assert.Equal(t, []string{"m2"}, ids(second[0].Result.Candidates))

	close(gate)
	first := <-firstDone
	require.Len(t, first, 1)
	assert.True(t, first[0].Stale)

	stored, _ := s.Slot(model.CategoryMotherboard)
	assert.Equal(t, uint64(1), stored.Generation)
	assert.Equal(t, []string{"m2"}, ids(stored.Result.Candidates))
}

func TestRefresh_LateArrivalSeesCurrentBuild(t *testing.T) {
	src := newGatedSource()
	src.catalogs[model.CategoryMotherboard] = []*model.Component{
		board("m1", "AM5", "ATX", 200),
		board("m2", "LGA1700", "ATX", 300),
	}
	s := newSession(t, src)

	gate := src.gate(model.CategoryMotherboard)
	done := make(chan []Slot)
	go func() {
		done <- s.Refresh(context.Background(), model.CategoryMotherboard)
	}()
	<-src.started

	s.Select(model.CategoryCPU, cpu("c1", "AM5", 400))
	close(gate)

	slots := <-done
	require.Len(t, slots, 1)
	// No newer refresh was stored, so the result is kept, and it was
	// resolved against the build as it stood on arrival.
	assert.False(t, slots[0].Stale)
	assert.Equal(t, []string{"m1"}, ids(slots[0].Result.Candidates))
}

func TestRefresh_Cancellation(t *testing.T) {
	src := newGatedSource()
	src.gate(model.CategoryGPU)
	s := newSession(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []Slot)
	go func() {
		done <- s.Refresh(ctx, model.CategoryGPU)
	}()
	<-src.started
	cancel()

	slots := <-done
	require.Len(t, slots, 1)
	assert.ErrorIs(t, slots[0].Err, context.Canceled)
}

func TestSelectByID(t *testing.T) {
	src := newGatedSource()
	src.catalogs[model.CategoryCPU] = []*model.Component{cpu("c1", "AM5", 400)}
	s := newSession(t, src)
	ctx := context.Background()

	require.NoError(t, s.SelectByID(ctx, model.CategoryCPU, "c1"))
	assert.Equal(t, "c1", s.State().Get(model.CategoryCPU).ID)
	assert.Equal(t, uint64(1), s.Generation())

	err := s.SelectByID(ctx, model.CategoryCPU, "missing")
	assert.ErrorIs(t, err, build.ErrUnknownComponent)

	require.NoError(t, s.SelectByID(ctx, model.CategoryPurpose, "4k-gaming"))
	assert.Equal(t, "4K Gaming", s.State().Get(model.CategoryPurpose).Name)
}

func TestConflicts(t *testing.T) {
	s := newSession(t, newGatedSource())
	s.Select(model.CategoryCPU, cpu("c1", "AM5", 400))
	s.Select(model.CategoryMotherboard, board("m2", "LGA1700", "ATX", 300))

	conflicts := s.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, resolver.AxisSocket, conflicts[0].Axis)
}

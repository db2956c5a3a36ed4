package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

// stubResolver returns canned results in order, repeating the last one.
type stubResolver struct {
	mu      sync.Mutex
	results []resolveResult
	calls   int
}

type resolveResult struct {
	bundle model.ResolvedBundle
	err    error
}

func (r *stubResolver) Resolve(_ context.Context, _ time.Time) (model.ResolvedBundle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.calls
	if i >= len(r.results) {
		i = len(r.results) - 1
	}
	r.calls++
	res := r.results[i]
	return res.bundle, res.err
}

// stubClock hands Run a channel the test fires manually, and records the
// durations Run asked to wait for.
type stubClock struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
	fire  chan time.Time
}

func newStubClock() *stubClock {
	return &stubClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), fire: make(chan time.Time)}
}

func (c *stubClock) Now() time.Time { return c.now }

func (c *stubClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.waits = append(c.waits, d)
	c.mu.Unlock()
	return c.fire
}

func (c *stubClock) waitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waits)
}

func testConfig() Config {
	return Config{
		NormalInterval: 30 * time.Second,
		BaseDelay:      time.Second,
		MaxDelay:       5 * time.Minute,
		Seed:           1,
	}
}

func newTestCoordinator(t *testing.T, resolver Resolver, onUpdate func(model.ResolvedBundle)) (*Coordinator, *Store, *stubClock) {
	t.Helper()
	s := openTestStore(t)
	clock := newStubClock()
	return NewCoordinator(resolver, s, clock, testConfig(), onUpdate), s, clock
}

func TestBackoffNeverExceedsExponentialCap(t *testing.T) {
	c, _, _ := newTestCoordinator(t, nil, nil)

	for want, failures := range map[time.Duration]int{
		2 * time.Second:  1,
		4 * time.Second:  2,
		16 * time.Second: 4,
	} {
		c.failures = failures
		for i := 0; i < 100; i++ {
			wait := c.nextWait()
			assert.GreaterOrEqual(t, wait, time.Duration(0))
			assert.LessOrEqual(t, wait, want)
		}
	}
}

func TestBackoffSaturatesAtMaxDelay(t *testing.T) {
	c, _, _ := newTestCoordinator(t, nil, nil)

	assert.Equal(t, c.cfg.MaxDelay, c.backoffCap(20))
	c.failures = 20
	for i := 0; i < 100; i++ {
		assert.LessOrEqual(t, c.nextWait(), c.cfg.MaxDelay)
	}
}

func TestFailureCountStopsGrowingOnceDelayIsCapped(t *testing.T) {
	resolver := &stubResolver{results: []resolveResult{{err: errors.New("unreachable")}}}
	c, _, _ := newTestCoordinator(t, resolver, nil)

	for i := 0; i < 50; i++ {
		c.attempt(context.Background())
	}
	assert.Equal(t, c.cfg.MaxDelay, c.backoffCap(c.failures))
	after := c.failures
	c.attempt(context.Background())
	assert.Equal(t, after, c.failures)
}

func TestSuccessResetsToNormalInterval(t *testing.T) {
	resolver := &stubResolver{results: []resolveResult{
		{err: errors.New("unreachable")},
		{bundle: testBundle("menu")},
	}}
	c, _, _ := newTestCoordinator(t, resolver, nil)

	c.attempt(context.Background())
	assert.Equal(t, 1, c.failures)
	assert.NotEqual(t, c.cfg.NormalInterval, c.nextWait())

	c.attempt(context.Background())
	assert.Zero(t, c.failures)
	assert.Equal(t, c.cfg.NormalInterval, c.nextWait())
}

func TestSuccessfulAttemptStoresBundleAndNotifies(t *testing.T) {
	want := testBundle("menu")
	resolver := &stubResolver{results: []resolveResult{{bundle: want}}}
	var got model.ResolvedBundle
	c, s, clock := newTestCoordinator(t, resolver, func(b model.ResolvedBundle) { got = b })

	c.attempt(context.Background())

	assert.Equal(t, want, got)
	cached, found, err := s.Bundle()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, cached.Bundle)
	assert.Equal(t, clock.Now(), cached.StoredAt)
}

func TestFailedAttemptLeavesCachedBundleUntouched(t *testing.T) {
	resolver := &stubResolver{results: []resolveResult{{err: errors.New("unreachable")}}}
	c, s, clock := newTestCoordinator(t, resolver, nil)
	require.NoError(t, s.StoreBundle(testBundle("menu"), clock.Now()))

	for i := 0; i < 5; i++ {
		c.attempt(context.Background())
	}

	cached, found, err := s.Bundle()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "menu", cached.Bundle.ContentRef)
}

func TestRefreshShortCircuitsTheWait(t *testing.T) {
	resolver := &stubResolver{results: []resolveResult{{bundle: testBundle("menu")}}}
	c, _, clock := newTestCoordinator(t, resolver, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	// first attempt runs immediately, then the loop parks on After
	waitFor(t, func() bool { return clock.waitCount() == 1 })
	require.Equal(t, 1, resolver.callCount())

	// the timer never fires; Refresh alone wakes the loop
	c.Refresh()
	waitFor(t, func() bool { return resolver.callCount() == 2 })

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRefreshWhileIdleCoalesces(t *testing.T) {
	c, _, _ := newTestCoordinator(t, nil, nil)
	c.Refresh()
	c.Refresh()
	c.Refresh()
	assert.Len(t, c.refresh, 1)
}

func (r *stubResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

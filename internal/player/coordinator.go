package player

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

// Resolver is the network boundary the coordinator polls. *Client
// satisfies it; tests substitute a stub.
type Resolver interface {
	Resolve(ctx context.Context, at time.Time) (model.ResolvedBundle, error)
}

// Config tunes the polling loop.
type Config struct {
	NormalInterval time.Duration
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	Seed           int64 // 0 seeds from the clock
}

// DefaultConfig matches typical signage deployments: poll every 30s,
// back off between 1s and 5m.
func DefaultConfig() Config {
	return Config{
		NormalInterval: 30 * time.Second,
		BaseDelay:      time.Second,
		MaxDelay:       5 * time.Minute,
	}
}

// Coordinator is the player's only source of network resolution calls.
// It runs a two-state loop: Polling at a fixed interval while calls
// succeed, Backoff with capped full-jitter delays while they fail. In
// either state the cached bundle drives playback; a screen that has ever
// resolved successfully never goes blank because of the network.
type Coordinator struct {
	client   Resolver
	store    *Store
	clock    Clock
	cfg      Config
	rng      *rand.Rand
	refresh  chan struct{}
	onUpdate func(model.ResolvedBundle)

	failures int
}

// NewCoordinator wires the loop. onUpdate may be nil; when set it fires
// after every successful resolution, with the stored bundle.
func NewCoordinator(client Resolver, store *Store, clock Clock, cfg Config, onUpdate func(model.ResolvedBundle)) *Coordinator {
	seed := cfg.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return &Coordinator{
		client:   client,
		store:    store,
		clock:    clock,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		refresh:  make(chan struct{}, 1),
		onUpdate: onUpdate,
	}
}

// Refresh short-circuits the current wait and triggers an immediate
// resolution attempt. It never cancels an in-flight call, only the
// waiting portion of the loop. Safe to call from any goroutine.
func (c *Coordinator) Refresh() {
	select {
	case c.refresh <- struct{}{}:
	default:
	}
}

// Run drives the loop until ctx is done. Calls are strictly sequential:
// no second resolution is issued while one is outstanding.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		c.attempt(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.clock.After(c.nextWait()):
		case <-c.refresh:
		}
	}
}

// attempt performs one resolution call and updates the failure count: any
// success resets it, any failure grows it (capped where the delay reaches
// MaxDelay).
func (c *Coordinator) attempt(ctx context.Context) {
	bundle, err := c.client.Resolve(ctx, c.clock.Now())
	if err != nil {
		if c.failures == 0 || c.backoffCap(c.failures) < c.cfg.MaxDelay {
			c.failures++
		}
		log.Warn().Err(err).Int("failures", c.failures).Msg("resolution failed, continuing on cached bundle")
		return
	}

	if err := c.store.StoreBundle(bundle, c.clock.Now()); err != nil {
		log.Error().Err(err).Msg("failed to persist resolved bundle")
	}
	c.failures = 0

	if c.onUpdate != nil {
		c.onUpdate(bundle)
	}
}

// nextWait returns the normal interval while healthy, or a full-jitter
// delay while failing: min(MaxDelay, BaseDelay * 2^failures) * rand(0,1).
func (c *Coordinator) nextWait() time.Duration {
	if c.failures == 0 {
		return c.cfg.NormalInterval
	}
	return time.Duration(c.rng.Float64() * float64(c.backoffCap(c.failures)))
}

// backoffCap is the exponential ceiling before jitter, clamped to
// MaxDelay (and overflow-safe).
func (c *Coordinator) backoffCap(failures int) time.Duration {
	d := c.cfg.BaseDelay
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= c.cfg.MaxDelay || d < 0 {
			return c.cfg.MaxDelay
		}
	}
	return d
}

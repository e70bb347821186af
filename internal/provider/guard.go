package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobradar/aggregator-service/internal/model"
)

// GuardConfig parameterises one Guard. Clock is overridable so tests can
// drive window rollover without sleeping.
type GuardConfig struct {
	QPSCap          int           // search calls allowed per window
	Window          time.Duration // token + failure window length
	CircuitFailures int           // consecutive failures before the circuit opens
	Clock           func() time.Time
}

// Guard wraps one provider with a token-bucket rate limiter and a
// failure-count circuit breaker. Both share a single time window: when it
// elapses the bucket refills and the failure count resets wholesale, which
// is the only path out of an open circuit (time-based recovery, no
// half-open probing).
//
// GetJob passes through uninstrumented — single-item lookups are not
// subject to either policy.
type Guard struct {
	inner           Provider
	qpsCap          int
	window          time.Duration
	circuitFailures int
	now             func() time.Time

	mu          sync.Mutex
	tokens      int
	windowStart time.Time
	failures    int
}

// NewGuard wraps inner. The first window starts on the first call, not at
// construction time.
func NewGuard(inner Provider, cfg GuardConfig) *Guard {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	g := &Guard{
		inner:           inner,
		qpsCap:          cfg.QPSCap,
		window:          cfg.Window,
		circuitFailures: cfg.CircuitFailures,
		now:             now,
	}
	g.tokens = cfg.QPSCap
	g.windowStart = now()
	return g
}

// Name reports the wrapped source's tag.
func (g *Guard) Name() model.Source { return g.inner.Name() }

// SearchJobs enforces the circuit breaker and the token bucket, in that
// order, before delegating. Inner errors are returned unchanged so callers
// see the true cause, while the failure counter still records them.
func (g *Guard) SearchJobs(ctx context.Context, query model.JobQuery) (*model.SearchResult, error) {
	if err := g.admit(); err != nil {
		return nil, err
	}

	res, err := g.inner.SearchJobs(ctx, query)
	if err != nil {
		g.recordFailure()
		return nil, err
	}
	return res, nil
}

// GetJob delegates without touching tokens or failure counts.
func (g *Guard) GetJob(ctx context.Context, id string) (*model.Job, error) {
	return g.inner.GetJob(ctx, id)
}

// admit consumes a token, rolling the window over first when it has
// elapsed. The circuit is checked before tokens so an open circuit rejects
// even when tokens remain.
func (g *Guard) admit() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if now.Sub(g.windowStart) >= g.window {
		g.tokens = g.qpsCap
		g.failures = 0
		g.windowStart = now
	}

	if g.failures >= g.circuitFailures {
		return fmt.Errorf("%s: %w", g.inner.Name(), ErrCircuitOpen)
	}
	if g.tokens <= 0 {
		return fmt.Errorf("%s: %w", g.inner.Name(), ErrRateLimited)
	}
	g.tokens--
	return nil
}

func (g *Guard) recordFailure() {
	g.mu.Lock()
	g.failures++
	g.mu.Unlock()
}

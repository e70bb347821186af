// Package scheduler wires up the cron job that periodically re-runs the
// configured standing queries so the search cache stays warm.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"jobradar/aggregator-service/internal/cache"
	"jobradar/aggregator-service/internal/compose"
	"jobradar/aggregator-service/internal/model"
)

// Scheduler wraps robfig/cron and manages the warm loop.
type Scheduler struct {
	cron     *cron.Cron
	composer *compose.Composer
	cache    *cache.SearchCache
	queries  []string
	spec     string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that re-runs queries every intervalHours hours.
func New(composer *compose.Composer, c *cache.SearchCache, queries []string, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.DefaultLogger)),
		composer: composer,
		cache:    c,
		queries:  queries,
		spec:     fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one warm
// cycle immediately so the cache is populated without waiting for the
// first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runWarm(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s, queries: %v", s.spec, s.queries)

	// Run immediately on startup (non-blocking)
	go s.runWarm(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runWarm runs every standing query through the composer and stores the
// result. A failing query is logged and skipped; the cycle keeps going.
func (s *Scheduler) runWarm(ctx context.Context) {
	log.Println("[scheduler] Warm cycle started")

	var warmed int
	for _, q := range s.queries {
		query := model.JobQuery{Q: q}
		res, err := s.composer.SearchJobs(ctx, query)
		if err != nil {
			log.Printf("[scheduler] Warm query %q failed: %v — continuing", q, err)
			continue
		}
		s.cache.Set(ctx, query, res)
		warmed++
		log.Printf("[scheduler] Warmed %q — %d jobs", q, len(res.Jobs))
	}

	log.Printf("[scheduler] Warm cycle complete — %d/%d queries cached", warmed, len(s.queries))
}

// Package compose fans a search out to every configured provider, merges
// the partial results into one deduplicated set, and annotates the
// survivors with jurisdiction flags.
package compose

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"jobradar/aggregator-service/internal/jurisdiction"
	"jobradar/aggregator-service/internal/model"
	"jobradar/aggregator-service/internal/observability"
	"jobradar/aggregator-service/internal/provider"
)

// Composer is the only externally consumed surface of the aggregation
// core. It is built once at startup from an explicit list of
// already-wrapped providers; there is no global registry.
type Composer struct {
	providers   []provider.Provider
	rules       *jurisdiction.Engine
	callTimeout time.Duration
}

// New constructs a Composer. The provider list is used as given — callers
// decide wrapping and ordering. callTimeout bounds each provider call so a
// hung source cannot hang the whole composition; zero disables the bound.
func New(providers []provider.Provider, rules *jurisdiction.Engine, callTimeout time.Duration) *Composer {
	return &Composer{providers: providers, rules: rules, callTimeout: callTimeout}
}

type outcome struct {
	res *model.SearchResult
	err error
}

// SearchJobs queries every provider concurrently with all-settled
// semantics: a provider that fails (rate-limited, circuit-open, or a real
// transport error) contributes zero results and is only surfaced through
// logs and metrics. The call itself fails only when every provider failed.
//
// The returned set is deduplicated by fingerprint, canonicalized by source
// priority, annotated by the jurisdiction engine, and ordered
// first-seen-first so results are deterministic for deterministic inputs.
func (c *Composer) SearchJobs(ctx context.Context, query model.JobQuery) (*model.SearchResult, error) {
	start := time.Now()
	defer func() {
		observability.ComposeDuration.Observe(time.Since(start).Seconds())
	}()

	outcomes := make([]outcome, len(c.providers))
	var wg sync.WaitGroup
	for i, p := range c.providers {
		wg.Add(1)
		go func(i int, p provider.Provider) {
			defer wg.Done()
			callCtx := ctx
			if c.callTimeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, c.callTimeout)
				defer cancel()
			}
			res, err := p.SearchJobs(callCtx, query)
			outcomes[i] = outcome{res: res, err: err}
		}(i, p)
	}
	wg.Wait()

	type slot struct {
		job  model.Job
		rank int
	}
	var order []string
	slots := make(map[string]*slot)

	var errs []error
	for i, p := range c.providers {
		o := outcomes[i]
		if o.err != nil {
			errs = append(errs, o.err)
			observability.ProviderRequests.WithLabelValues(string(p.Name()), classify(o.err)).Inc()
			log.Printf("[composer] provider %s failed: %v — continuing", p.Name(), o.err)
			continue
		}
		observability.ProviderRequests.WithLabelValues(string(p.Name()), observability.StatusOK).Inc()

		for _, job := range o.res.Jobs {
			fp := Fingerprint(&job)
			rank := rankOf(job.Source)
			if s, ok := slots[fp]; ok {
				observability.DuplicatesDropped.Inc()
				if rank < s.rank {
					s.job = job
					s.rank = rank
				}
				continue
			}
			slots[fp] = &slot{job: job, rank: rank}
			order = append(order, fp)
		}
	}

	if len(c.providers) > 0 && len(errs) == len(c.providers) {
		return nil, fmt.Errorf("all %d providers failed: %w", len(errs), errors.Join(errs...))
	}

	jobs := make([]model.Job, 0, len(order))
	for _, fp := range order {
		jobs = append(jobs, c.rules.ApplyFlags(slots[fp].job))
	}
	return &model.SearchResult{Jobs: jobs}, nil
}

// GetJob probes providers in configuration order and returns the first
// hit, annotated like a search result. Provider errors are tolerated the
// same way the fan-out tolerates them; an ID no provider knows yields
// (nil, nil).
func (c *Composer) GetJob(ctx context.Context, id string) (*model.Job, error) {
	for _, p := range c.providers {
		job, err := p.GetJob(ctx, id)
		if err != nil {
			log.Printf("[composer] provider %s getJob failed: %v — continuing", p.Name(), err)
			continue
		}
		if job != nil {
			annotated := c.rules.ApplyFlags(*job)
			return &annotated, nil
		}
	}
	return nil, nil
}

// classify maps a provider error onto its metric label.
func classify(err error) string {
	switch {
	case errors.Is(err, provider.ErrRateLimited):
		return observability.StatusRateLimited
	case errors.Is(err, provider.ErrCircuitOpen):
		return observability.StatusCircuitOpen
	default:
		return observability.StatusError
	}
}

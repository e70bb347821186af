// Package provider defines the job-source contract, the concrete sources
// built into this service, and the resilience wrapper every source is
// placed behind.
package provider

import (
	"context"
	"errors"

	"jobradar/aggregator-service/internal/model"
)

// Sentinel errors raised by the Guard before it ever reaches the wrapped
// source. The composer classifies outcomes with errors.Is against these.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrCircuitOpen = errors.New("circuit open")
)

// Provider is the contract every job source implements: seed data, the
// curated Postgres feed, or a real board client. Implementations own their
// I/O, retries and pagination cursors; no state is shared between them.
//
// SearchJobs returns an empty result for "no matches" — an error always
// means the source itself failed (transport, quota, bad credentials).
// GetJob returns (nil, nil) when the ID is unknown.
type Provider interface {
	Name() model.Source
	SearchJobs(ctx context.Context, query model.JobQuery) (*model.SearchResult, error)
	GetJob(ctx context.Context, id string) (*model.Job, error)
}

package provider_test

import (
	"context"
	"testing"
	"time"

	"jobradar/aggregator-service/internal/model"
	"jobradar/aggregator-service/internal/provider"
)

func seedDataset() []model.Job {
	posted := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)
	return []model.Job{
		{ID: "a", Title: "Go Developer", Company: "Acme", Location: "Austin, TX", SalaryMin: 100000, SalaryMax: 130000, PostedAt: posted},
		{ID: "b", Title: "Rust Developer", Company: "Acme", Location: "Remote", Remote: true, PostedAt: posted},
		{ID: "c", Title: "Go Platform Engineer", Company: "Beta", Location: "Seattle, WA", Description: "Range $150,000 - $180,000 per year", PostedAt: posted},
	}
}

// ── Filtering ──────────────────────────────────────────────────────────────

func TestSeed_FiltersByText(t *testing.T) {
	s := provider.NewSeed(seedDataset())
	res, err := s.SearchJobs(context.Background(), model.JobQuery{Q: "go"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(res.Jobs))
	}
}

func TestSeed_FiltersByRemote(t *testing.T) {
	s := provider.NewSeed(seedDataset())
	remote := true
	res, err := s.SearchJobs(context.Background(), model.JobQuery{Remote: &remote})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Jobs) != 1 || res.Jobs[0].ID != "b" {
		t.Fatalf("got %v, want only job b", res.Jobs)
	}
}

func TestSeed_FiltersByMinSalary(t *testing.T) {
	s := provider.NewSeed(seedDataset())
	res, err := s.SearchJobs(context.Background(), model.JobQuery{MinSalary: 140000})
	if err != nil {
		t.Fatal(err)
	}
	// Job c qualifies through its backfilled range; jobs a and b do not.
	if len(res.Jobs) != 1 || res.Jobs[0].ID != "c" {
		t.Fatalf("got %v, want only job c", res.Jobs)
	}
}

// ── Salary backfill ────────────────────────────────────────────────────────

func TestSeed_BackfillsSalaryFromDescription(t *testing.T) {
	s := provider.NewSeed(seedDataset())
	job, err := s.GetJob(context.Background(), "c")
	if err != nil || job == nil {
		t.Fatalf("GetJob: job=%v err=%v", job, err)
	}
	if job.SalaryMin != 150000 || job.SalaryMax != 180000 || job.Currency != "USD" {
		t.Errorf("backfilled salary = %v–%v %s, want 150000–180000 USD",
			job.SalaryMin, job.SalaryMax, job.Currency)
	}
}

// ── Pagination ─────────────────────────────────────────────────────────────

func TestSeed_Pagination(t *testing.T) {
	s := provider.NewSeed(seedDataset())

	page1, err := s.SearchJobs(context.Background(), model.JobQuery{Limit: 2, Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page1.Jobs) != 2 {
		t.Fatalf("page 1: got %d jobs, want 2", len(page1.Jobs))
	}
	if page1.NextPage == nil || *page1.NextPage != 2 {
		t.Fatalf("page 1: nextPage = %v, want 2", page1.NextPage)
	}

	page2, err := s.SearchJobs(context.Background(), model.JobQuery{Limit: 2, Page: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page2.Jobs) != 1 {
		t.Fatalf("page 2: got %d jobs, want 1", len(page2.Jobs))
	}
	if page2.NextPage != nil {
		t.Fatalf("page 2: nextPage = %v, want nil", *page2.NextPage)
	}
}

// ── No results is not an error ─────────────────────────────────────────────

func TestSeed_NoMatchesReturnsEmptyNotError(t *testing.T) {
	s := provider.NewSeed(seedDataset())
	res, err := s.SearchJobs(context.Background(), model.JobQuery{Q: "haskell"})
	if err != nil {
		t.Fatalf("no-match search must not error: %v", err)
	}
	if len(res.Jobs) != 0 {
		t.Fatalf("got %d jobs, want 0", len(res.Jobs))
	}
}

func TestSeed_GetJobUnknownID(t *testing.T) {
	s := provider.NewSeed(seedDataset())
	job, err := s.GetJob(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if job != nil {
		t.Fatalf("got %v, want nil for unknown id", job)
	}
}

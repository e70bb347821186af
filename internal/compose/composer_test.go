package compose_test

import (
	"context"
	"errors"
	"testing"

	"jobradar/aggregator-service/internal/compose"
	"jobradar/aggregator-service/internal/jurisdiction"
	"jobradar/aggregator-service/internal/model"
	"jobradar/aggregator-service/internal/provider"
)

// stubProvider returns a fixed result or a fixed error.
type stubProvider struct {
	source model.Source
	jobs   []model.Job
	err    error
}

func (s *stubProvider) Name() model.Source { return s.source }

func (s *stubProvider) SearchJobs(ctx context.Context, q model.JobQuery) (*model.SearchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.SearchResult{Jobs: s.jobs}, nil
}

func (s *stubProvider) GetJob(ctx context.Context, id string) (*model.Job, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, j := range s.jobs {
		if j.ID == id {
			job := j
			return &job, nil
		}
	}
	return nil, nil
}

func newComposer(t *testing.T, providers ...provider.Provider) *compose.Composer {
	t.Helper()
	rules, err := jurisdiction.Load("")
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	return compose.New(providers, rules, 0)
}

func listing(id string, source model.Source) model.Job {
	return model.Job{
		ID:       id,
		Title:    "Backend Engineer",
		Company:  "Harborview Analytics",
		Location: "Seattle, WA",
		ApplyURL: "https://jobs.harborview.example/backend",
		Source:   source,
	}
}

// ── Canonicalization by source priority ────────────────────────────────────

func TestSearchJobs_DuplicateKeepsHigherPrioritySource(t *testing.T) {
	c := newComposer(t,
		&stubProvider{source: model.SourceGoogle, jobs: []model.Job{listing("g1", model.SourceGoogle)}},
		&stubProvider{source: model.SourceManual, jobs: []model.Job{listing("m1", model.SourceManual)}},
	)

	res, err := c.SearchJobs(context.Background(), model.JobQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 canonical", len(res.Jobs))
	}
	if res.Jobs[0].Source != model.SourceManual {
		t.Errorf("canonical source = %s, want manual", res.Jobs[0].Source)
	}
}

func TestSearchJobs_FingerprintIsCaseInsensitive(t *testing.T) {
	upper := listing("u1", model.SourceAdzuna)
	upper.Title = "BACKEND ENGINEER"
	upper.Company = "HARBORVIEW ANALYTICS"
	c := newComposer(t,
		&stubProvider{source: model.SourceAdzuna, jobs: []model.Job{upper}},
		&stubProvider{source: model.SourceLever, jobs: []model.Job{listing("l1", model.SourceLever)}},
	)

	res, err := c.SearchJobs(context.Background(), model.JobQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 (case must not split fingerprints)", len(res.Jobs))
	}
	if res.Jobs[0].Source != model.SourceLever {
		t.Errorf("canonical source = %s, want lever", res.Jobs[0].Source)
	}
}

func TestSearchJobs_UnknownSourceLosesToEverything(t *testing.T) {
	c := newComposer(t,
		&stubProvider{source: "mystery", jobs: []model.Job{listing("x1", "mystery")}},
		&stubProvider{source: model.SourceSeed, jobs: []model.Job{listing("s1", model.SourceSeed)}},
	)

	res, err := c.SearchJobs(context.Background(), model.JobQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Jobs) != 1 || res.Jobs[0].Source != model.SourceSeed {
		t.Fatalf("got %v, want the seed record to win", res.Jobs)
	}
}

// ── Partial failure ────────────────────────────────────────────────────────

func TestSearchJobs_ToleratesFailedProviders(t *testing.T) {
	other := listing("a2", model.SourceAdzuna)
	other.Title = "Data Engineer"
	c := newComposer(t,
		&stubProvider{source: model.SourceGreenhouse, err: errors.New("transport down")},
		&stubProvider{source: model.SourceAdzuna, jobs: []model.Job{other}},
	)

	res, err := c.SearchJobs(context.Background(), model.JobQuery{})
	if err != nil {
		t.Fatalf("partial failure must not fail the call: %v", err)
	}
	if len(res.Jobs) != 1 || res.Jobs[0].ID != "a2" {
		t.Fatalf("got %v, want the surviving provider's job", res.Jobs)
	}
}

func TestSearchJobs_AllProvidersFailed(t *testing.T) {
	c := newComposer(t,
		&stubProvider{source: model.SourceGreenhouse, err: errors.New("down")},
		&stubProvider{source: model.SourceLever, err: provider.ErrRateLimited},
	)

	if _, err := c.SearchJobs(context.Background(), model.JobQuery{}); err == nil {
		t.Fatal("want an error when every provider fails")
	}
}

// ── Ordering ───────────────────────────────────────────────────────────────

func TestSearchJobs_FirstSeenOrderIsStable(t *testing.T) {
	first := listing("f1", model.SourceManual)
	second := listing("f2", model.SourceManual)
	second.Title = "Data Engineer"
	third := listing("f3", model.SourceManual)
	third.Title = "Platform Engineer"

	c := newComposer(t,
		&stubProvider{source: model.SourceManual, jobs: []model.Job{first, second, third}},
	)

	res, err := c.SearchJobs(context.Background(), model.JobQuery{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"f1", "f2", "f3"}
	for i, id := range want {
		if res.Jobs[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, res.Jobs[i].ID, id)
		}
	}
}

// ── End-to-end compliance scenario ─────────────────────────────────────────

func TestSearchJobs_SeattleListingWithoutRange(t *testing.T) {
	c := newComposer(t,
		&stubProvider{source: model.SourceManual, jobs: []model.Job{listing("m1", model.SourceManual)}},
		&stubProvider{source: model.SourceGoogle, jobs: []model.Job{listing("g1", model.SourceGoogle)}},
	)

	res, err := c.SearchJobs(context.Background(), model.JobQuery{Q: "backend"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(res.Jobs))
	}

	job := res.Jobs[0]
	if job.Source != model.SourceManual {
		t.Errorf("source = %s, want manual", job.Source)
	}
	if job.Flags[model.FlagRequiresPayDisclosure] != true {
		t.Error("requiresPayDisclosure flag not set")
	}
	if job.Flags[model.FlagRankPenalty] != 0.92 {
		t.Errorf("rankPenalty = %v, want 0.92 (WA is a strict region)", job.Flags[model.FlagRankPenalty])
	}
}

func TestSearchJobs_DisclosedRangeIsNotFlagged(t *testing.T) {
	disclosed := listing("m1", model.SourceManual)
	disclosed.SalaryMin = 140000
	disclosed.SalaryMax = 175000
	c := newComposer(t, &stubProvider{source: model.SourceManual, jobs: []model.Job{disclosed}})

	res, err := c.SearchJobs(context.Background(), model.JobQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Jobs[0].Flags) != 0 {
		t.Errorf("flags = %v, want none", res.Jobs[0].Flags)
	}
}

// ── GetJob ─────────────────────────────────────────────────────────────────

func TestGetJob_FirstHitWinsAndIsAnnotated(t *testing.T) {
	c := newComposer(t,
		&stubProvider{source: model.SourceGreenhouse, err: errors.New("down")},
		&stubProvider{source: model.SourceManual, jobs: []model.Job{listing("m1", model.SourceManual)}},
	)

	job, err := c.GetJob(context.Background(), "m1")
	if err != nil {
		t.Fatal(err)
	}
	if job == nil {
		t.Fatal("job not found")
	}
	if job.Flags[model.FlagRequiresPayDisclosure] != true {
		t.Error("lookup result should carry jurisdiction flags too")
	}
}

func TestGetJob_UnknownID(t *testing.T) {
	c := newComposer(t, &stubProvider{source: model.SourceManual})
	job, err := c.GetJob(context.Background(), "nope")
	if err != nil || job != nil {
		t.Fatalf("got job=%v err=%v, want nil, nil", job, err)
	}
}

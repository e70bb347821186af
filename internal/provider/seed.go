package provider

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobradar/aggregator-service/internal/model"
	"jobradar/aggregator-service/internal/salary"
)

// Seed serves a fixed in-memory dataset. Used for local development and as
// the lowest-trust source in mixed setups; its listings lose every
// canonicalization tie.
type Seed struct {
	jobs []model.Job
}

// NewSeed builds a Seed over the given listings, or over the built-in
// dataset when jobs is nil. Listings without an ID get one assigned, and
// listings without a declared range get one backfilled from their
// description text when the extractor finds a reliable signal.
func NewSeed(jobs []model.Job) *Seed {
	if jobs == nil {
		jobs = defaultSeedJobs()
	}
	for i := range jobs {
		if jobs[i].ID == "" {
			jobs[i].ID = uuid.NewString()
		}
		jobs[i].Source = model.SourceSeed
		if !jobs[i].HasPayRange() {
			if r := salary.Detect(jobs[i].Description); r != nil {
				jobs[i].SalaryMin = r.Min
				jobs[i].SalaryMax = r.Max
				jobs[i].Currency = r.Currency
			}
		}
	}
	return &Seed{jobs: jobs}
}

func (s *Seed) Name() model.Source { return model.SourceSeed }

// SearchJobs filters the dataset and applies limit/page pagination. Pages
// are 1-based; NextPage is set only when more matches remain.
func (s *Seed) SearchJobs(ctx context.Context, query model.JobQuery) (*model.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matched []model.Job
	for _, j := range s.jobs {
		if matches(&j, query) {
			matched = append(matched, j)
		}
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	res := &model.SearchResult{Jobs: []model.Job{}}
	if offset < len(matched) {
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		res.Jobs = matched[offset:end]
		if end < len(matched) {
			next := page + 1
			res.NextPage = &next
		}
	}
	return res, nil
}

// GetJob returns (nil, nil) for unknown IDs.
func (s *Seed) GetJob(ctx context.Context, id string) (*model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, j := range s.jobs {
		if j.ID == id {
			job := j
			return &job, nil
		}
	}
	return nil, nil
}

func matches(j *model.Job, q model.JobQuery) bool {
	if q.Q != "" {
		needle := strings.ToLower(q.Q)
		haystack := strings.ToLower(j.Title + " " + j.Company + " " + j.Description)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	if q.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(q.Location)) {
		return false
	}
	if q.Remote != nil && j.Remote != *q.Remote {
		return false
	}
	if q.MinSalary > 0 && j.SalaryMax < q.MinSalary {
		return false
	}
	return true
}

func defaultSeedJobs() []model.Job {
	posted := time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC)
	return []model.Job{
		{
			ID:          "seed-backend-sea",
			Company:     "Harborview Analytics",
			Title:       "Backend Engineer",
			Description: "Build ingestion pipelines in Go. Pay range $140,000 - $175,000 per year.",
			Location:    "Seattle, WA",
			ApplyURL:    "https://jobs.harborview.example/backend",
			PostedAt:    posted,
		},
		{
			ID:          "seed-sre-denver",
			Company:     "Summit Grid",
			Title:       "Site Reliability Engineer",
			Description: "On-call rotation, Kubernetes fleet. Competitive salary.",
			Location:    "Denver, CO",
			ApplyURL:    "https://summitgrid.example/careers/sre",
			PostedAt:    posted.AddDate(0, 0, -2),
		},
		{
			ID:          "seed-data-remote",
			Company:     "Northlake Labs",
			Title:       "Data Engineer",
			Description: "Remote-first warehouse team. $120,000 - $150,000 annual.",
			Location:    "Remote",
			Remote:      true,
			ApplyURL:    "https://northlake.example/jobs/data",
			PostedAt:    posted.AddDate(0, 0, -5),
		},
		{
			ID:          "seed-fe-van",
			Company:     "Pacific Crest Software",
			Title:       "Frontend Developer",
			Description: "Design-system heavy product work.",
			Location:    "Vancouver, BC",
			ApplyURL:    "https://pacificcrest.example/jobs/frontend",
			PostedAt:    posted.AddDate(0, 0, -1),
		},
		{
			ID:          "seed-ops-berlin",
			Company:     "Spreewerk GmbH",
			Title:       "Platform Engineer",
			Description: "Hybrid role in Berlin, Germany. Compensation €5.200 – €6.000 / month.",
			Location:    "Berlin, Germany",
			ApplyURL:    "https://spreewerk.example/karriere/platform",
			PostedAt:    posted.AddDate(0, 0, -7),
		},
	}
}

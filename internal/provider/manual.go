package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobradar/aggregator-service/internal/model"
	"jobradar/aggregator-service/internal/salary"
)

// Manual serves recruiter-curated listings from the listings table. These
// are the highest-trust records in the priority table: a curated row beats
// any reseller's copy of the same posting.
type Manual struct {
	pool *pgxpool.Pool
}

// NewManual constructs the provider over an existing pool.
func NewManual(pool *pgxpool.Pool) *Manual {
	return &Manual{pool: pool}
}

func (m *Manual) Name() model.Source { return model.SourceManual }

const manualColumns = `id, company, title, COALESCE(description, ''), COALESCE(location, ''),
       COALESCE(remote, false), COALESCE(salary_min, 0), COALESCE(salary_max, 0),
       COALESCE(currency, ''), posted_at, COALESCE(apply_url, '')`

// SearchJobs filters listings with ILIKE matching and paginates with
// LIMIT/OFFSET. Pages are 1-based to match the rest of the providers.
func (m *Manual) SearchJobs(ctx context.Context, query model.JobQuery) (*model.SearchResult, error) {
	where := []string{"TRUE"}
	args := []interface{}{}

	if query.Q != "" {
		args = append(args, "%"+query.Q+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	if query.Location != "" {
		args = append(args, "%"+query.Location+"%")
		where = append(where, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if query.Remote != nil {
		args = append(args, *query.Remote)
		where = append(where, fmt.Sprintf("COALESCE(remote, false) = $%d", len(args)))
	}
	if query.MinSalary > 0 {
		args = append(args, query.MinSalary)
		where = append(where, fmt.Sprintf("COALESCE(salary_max, 0) >= $%d", len(args)))
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	// Fetch one extra row to learn whether another page exists.
	args = append(args, limit+1, (page-1)*limit)

	sql := fmt.Sprintf(
		`SELECT %s FROM listings WHERE %s ORDER BY posted_at DESC LIMIT $%d OFFSET $%d`,
		manualColumns, strings.Join(where, " AND "), len(args)-1, len(args),
	)

	rows, err := m.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	res := &model.SearchResult{Jobs: jobs}
	if len(jobs) > limit {
		res.Jobs = jobs[:limit]
		next := page + 1
		res.NextPage = &next
	}
	if res.Jobs == nil {
		res.Jobs = []model.Job{}
	}
	return res, nil
}

// GetJob returns (nil, nil) when no listing has the given ID.
func (m *Manual) GetJob(ctx context.Context, id string) (*model.Job, error) {
	row := m.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1`, manualColumns), id)
	job, err := scanListing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", id, err)
	}
	return &job, nil
}

func scanListing(row pgx.Row) (model.Job, error) {
	var job model.Job
	err := row.Scan(
		&job.ID, &job.Company, &job.Title, &job.Description, &job.Location,
		&job.Remote, &job.SalaryMin, &job.SalaryMax, &job.Currency,
		&job.PostedAt, &job.ApplyURL,
	)
	if err != nil {
		return model.Job{}, err
	}
	job.Source = model.SourceManual
	if !job.HasPayRange() {
		if r := salary.Detect(job.Description); r != nil {
			job.SalaryMin = r.Min
			job.SalaryMax = r.Max
			job.Currency = r.Currency
		}
	}
	return job, nil
}

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"jobradar/aggregator-service/internal/model"
	"jobradar/aggregator-service/internal/salary"
)

const (
	adzunaBaseURL  = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageSize = 50
	httpTimeout    = 15 * time.Second
)

// Adzuna queries the Adzuna public API. It is a broad pay-aggregator, so
// its listings rank below direct and ATS sources during canonicalization.
type Adzuna struct {
	appID   string
	appKey  string
	country string // "us", "gb", "fr", …
	client  *http.Client
}

// NewAdzuna constructs the client. Credentials are validated by the
// registry before this is ever called.
func NewAdzuna(appID, appKey, country string) *Adzuna {
	return &Adzuna{
		appID:   appID,
		appKey:  appKey,
		country: country,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

func (a *Adzuna) Name() model.Source { return model.SourceAdzuna }

// adzunaResponse mirrors the top-level Adzuna JSON response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

// adzunaResult mirrors a single Adzuna job listing.
type adzunaResult struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Company     adzunaCompany  `json:"company"`
	Location    adzunaLocation `json:"location"`
	SalaryMin   float64        `json:"salary_min"`
	SalaryMax   float64        `json:"salary_max"`
	RedirectURL string         `json:"redirect_url"`
	Created     string         `json:"created"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

// SearchJobs fetches one page of results for the query. NextPage is set
// whenever Adzuna returned a full page, since the API reports totals
// unreliably across regions.
func (a *Adzuna) SearchJobs(ctx context.Context, query model.JobQuery) (*model.SearchResult, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/%s/search/%d", adzunaBaseURL, a.country, page)

	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", strconv.Itoa(pageSize(query)))
	params.Set("content-type", "application/json")
	params.Set("sort_by", "date")
	if query.Q != "" {
		params.Set("what", query.Q)
	}
	if query.Location != "" {
		params.Set("where", query.Location)
	}
	if query.MinSalary > 0 {
		params.Set("salary_min", strconv.Itoa(int(query.MinSalary)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	res := &model.SearchResult{Jobs: make([]model.Job, 0, len(apiResp.Results))}
	for _, r := range apiResp.Results {
		res.Jobs = append(res.Jobs, a.toJob(r))
	}
	if len(apiResp.Results) == pageSize(query) {
		next := page + 1
		res.NextPage = &next
	}
	return res, nil
}

// GetJob is not supported by the Adzuna API — there is no stable
// fetch-by-id endpoint — so lookups report "not found" rather than error.
func (a *Adzuna) GetJob(ctx context.Context, id string) (*model.Job, error) {
	return nil, nil
}

func (a *Adzuna) toJob(r adzunaResult) model.Job {
	job := model.Job{
		ID:          r.ID,
		Company:     r.Company.DisplayName,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location.DisplayName,
		SalaryMin:   r.SalaryMin,
		SalaryMax:   r.SalaryMax,
		ApplyURL:    r.RedirectURL,
		Source:      model.SourceAdzuna,
		Raw: map[string]interface{}{
			"created":     r.Created,
			"redirectUrl": r.RedirectURL,
		},
	}
	if t, err := time.Parse(time.RFC3339, r.Created); err == nil {
		job.PostedAt = t
	}
	if !job.HasPayRange() {
		if sr := salary.Detect(r.Description); sr != nil {
			job.SalaryMin = sr.Min
			job.SalaryMax = sr.Max
			job.Currency = sr.Currency
		}
	}
	return job
}

func pageSize(q model.JobQuery) int {
	if q.Limit > 0 && q.Limit < adzunaPageSize {
		return q.Limit
	}
	return adzunaPageSize
}

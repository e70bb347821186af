// Package model defines shared data structures for the aggregator service.
package model

import "time"

// Source identifies which board or dataset a listing came from. The set is
// closed: anything else is treated as an unknown source and ranked last
// during canonicalization.
type Source string

const (
	SourceManual          Source = "manual"
	SourceGreenhouse      Source = "greenhouse"
	SourceLever           Source = "lever"
	SourceAshby           Source = "ashby"
	SourceRecruitee       Source = "recruitee"
	SourceWorkable        Source = "workable"
	SourceSmartRecruiters Source = "smartrecruiters"
	SourceUSAJobs         Source = "usajobs"
	SourceGoogle          Source = "google"
	SourceAdzuna          Source = "adzuna"
	SourceSeed            Source = "seed"
)

// KnownSources lists every valid Source tag, used for config validation.
var KnownSources = []Source{
	SourceManual, SourceGreenhouse, SourceLever, SourceAshby,
	SourceRecruitee, SourceWorkable, SourceSmartRecruiters,
	SourceUSAJobs, SourceGoogle, SourceAdzuna, SourceSeed,
}

// Flag keys set during composition. Flags are additive-only within one
// composition pass: components may add flags, never remove one another's.
const (
	FlagRequiresPayDisclosure = "requiresPayDisclosure"
	FlagRankPenalty           = "rankPenalty"
	FlagClosed                = "closed"
)

// Job is a normalised listing exchanged between every component. The ID is
// scoped to the provider that produced it; cross-provider identity is the
// fingerprint computed during composition, never the ID.
type Job struct {
	ID          string                 `json:"id"`
	Company     string                 `json:"company"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Location    string                 `json:"location,omitempty"`
	Remote      bool                   `json:"remote,omitempty"`
	SalaryMin   float64                `json:"salaryMin,omitempty"`
	SalaryMax   float64                `json:"salaryMax,omitempty"`
	Currency    string                 `json:"currency,omitempty"`
	PostedAt    time.Time              `json:"postedAt"`
	ApplyURL    string                 `json:"applyUrl,omitempty"`
	Source      Source                 `json:"source"`
	Raw         map[string]interface{} `json:"raw,omitempty"`
	Flags       map[string]interface{} `json:"flags,omitempty"`
}

// HasPayRange reports whether the listing already carries a usable declared
// range: both bounds present, positive, and not inverted.
func (j *Job) HasPayRange() bool {
	return j.SalaryMin > 0 && j.SalaryMax > 0 && j.SalaryMax >= j.SalaryMin
}

// WithFlag returns a shallow copy of the job with one extra flag set. The
// receiver (and any flags map it shares with other copies) is never mutated.
func (j Job) WithFlag(key string, value interface{}) Job {
	flags := make(map[string]interface{}, len(j.Flags)+1)
	for k, v := range j.Flags {
		flags[k] = v
	}
	flags[key] = value
	j.Flags = flags
	return j
}

// Sort hints accepted in JobQuery.Sort. Ordering itself is applied by the
// query layer, not the composer.
const (
	SortRelevance = "relevance"
	SortDate      = "date"
	SortSalary    = "salary"
)

// JobQuery is a read-only search request. It has no identity beyond its
// fields and must not be mutated once handed to a provider.
type JobQuery struct {
	Q         string  `json:"q,omitempty"`
	Location  string  `json:"location,omitempty"`
	Remote    *bool   `json:"remote,omitempty"`
	MinSalary float64 `json:"minSalary,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	Page      int     `json:"page,omitempty"`
	Sort      string  `json:"sort,omitempty"`
}

// SearchResult is what a provider (and the composer) returns for one query.
// NextPage is nil when the provider reported no further pages.
type SearchResult struct {
	Jobs     []Job `json:"jobs"`
	NextPage *int  `json:"nextPage,omitempty"`
}

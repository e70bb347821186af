// Package jurisdiction decides whether a listing is expected to disclose a
// pay range and computes the ranking penalty when it does not.
//
// The rule set is best-effort and deliberately conservative: it only makes
// claims about countries it models (US and CA by default), it is not legal
// advice, and it never hides a listing — violations are signalled through
// flags, ranking penalties are applied by whoever ranks.
package jurisdiction

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"jobradar/aggregator-service/internal/model"
)

//go:embed rules.yaml
var defaultRules []byte

// ruleFile mirrors the YAML rule document.
type ruleFile struct {
	StrictPenalty  float64       `yaml:"strictPenalty"`
	DefaultPenalty float64       `yaml:"defaultPenalty"`
	Countries      []countryRule `yaml:"countries"`
}

type countryRule struct {
	Code          string   `yaml:"code"`
	Keywords      []string `yaml:"keywords"`
	Regions       []string `yaml:"regions"`
	StrictRegions []string `yaml:"strictRegions"`
}

// Engine evaluates pay-disclosure rules. Built once at startup and
// read-only afterwards, so it is safe for concurrent use.
type Engine struct {
	strictPenalty  float64
	defaultPenalty float64
	countries      []countryRule // keywords kept lower-cased
	regionCountry  map[string]string
	strictRegions  map[string]bool
}

// Load parses the rule file at path, or the embedded default rule set when
// path is empty. Invalid rule data is a startup error, never a silent
// fallback.
func Load(path string) (*Engine, error) {
	data := defaultRules
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read jurisdiction rules: %w", err)
		}
		data = b
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse jurisdiction rules: %w", err)
	}
	return newEngine(rf)
}

func newEngine(rf ruleFile) (*Engine, error) {
	if rf.StrictPenalty <= 0 || rf.StrictPenalty > 1 {
		return nil, fmt.Errorf("strictPenalty must be in (0,1], got %v", rf.StrictPenalty)
	}
	if rf.DefaultPenalty <= 0 || rf.DefaultPenalty > 1 {
		return nil, fmt.Errorf("defaultPenalty must be in (0,1], got %v", rf.DefaultPenalty)
	}
	if len(rf.Countries) == 0 {
		return nil, fmt.Errorf("jurisdiction rules declare no countries")
	}

	e := &Engine{
		strictPenalty:  rf.StrictPenalty,
		defaultPenalty: rf.DefaultPenalty,
		regionCountry:  make(map[string]string),
		strictRegions:  make(map[string]bool),
	}

	for _, c := range rf.Countries {
		if c.Code == "" {
			return nil, fmt.Errorf("country rule missing code")
		}
		lowered := make([]string, len(c.Keywords))
		for i, kw := range c.Keywords {
			lowered[i] = strings.ToLower(kw)
		}
		regionSet := make(map[string]bool, len(c.Regions))
		for _, r := range c.Regions {
			if len(r) != 2 {
				return nil, fmt.Errorf("country %s: region code %q is not two letters", c.Code, r)
			}
			e.regionCountry[r] = c.Code
			regionSet[r] = true
		}
		for _, s := range c.StrictRegions {
			if !regionSet[s] {
				return nil, fmt.Errorf("country %s: strict region %q not in region table", c.Code, s)
			}
			e.strictRegions[s] = true
		}
		e.countries = append(e.countries, countryRule{Code: c.Code, Keywords: lowered})
	}

	return e, nil
}

// NeedsPayDisclosure is true when the listing's location resolves to a
// modelled country and the listing carries no valid declared pay range.
// Unrecognised countries are never flagged.
func (e *Engine) NeedsPayDisclosure(job *model.Job) bool {
	if job.HasPayRange() {
		return false
	}
	country, _ := e.ParseLocation(job.Location)
	return country != ""
}

// PenaltyFor returns a multiplicative score factor in (0,1]. Listings that
// do not need disclosure score 1.0; strict-enforcement regions discount
// harder than the rest.
func (e *Engine) PenaltyFor(job *model.Job) float64 {
	if !e.NeedsPayDisclosure(job) {
		return 1.0
	}
	_, region := e.ParseLocation(job.Location)
	if e.strictRegions[region] {
		return e.strictPenalty
	}
	return e.defaultPenalty
}

// ApplyFlags returns a copy of the job annotated with the disclosure flag
// and rank penalty when disclosure is needed, and the job untouched
// otherwise. Existing flags are never removed; visible fields are never
// altered.
func (e *Engine) ApplyFlags(job model.Job) model.Job {
	if !e.NeedsPayDisclosure(&job) {
		return job
	}
	job = job.WithFlag(model.FlagRequiresPayDisclosure, true)
	return job.WithFlag(model.FlagRankPenalty, e.PenaltyFor(&job))
}

// AdjustScore applies the jurisdiction penalty to a base relevance score
// and rounds to the nearest integer.
func (e *Engine) AdjustScore(baseScore int, job *model.Job) int {
	p := e.PenaltyFor(job)
	return int(float64(baseScore)*p + 0.5)
}

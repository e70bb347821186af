// Package config loads and validates environment variables at startup.
// Fail-fast: if a value is missing or malformed, the process exits rather
// than silently defaulting to something surprising.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"jobradar/aggregator-service/internal/model"
)

// Config holds all runtime configuration for the aggregator service. It is
// parsed once in main and passed down; nothing reads the environment after
// startup.
type Config struct {
	Port string

	// Providers are the selectors from JOB_PROVIDERS, validated against
	// the closed source enum.
	Providers []model.Source

	// Resilience policy applied to every wrapped provider.
	MaxQPS          int
	RateWindow      time.Duration
	CircuitFailures int

	// ProviderTimeout bounds each fan-out call; zero disables the bound.
	ProviderTimeout time.Duration

	// JurisdictionRulesPath overrides the embedded rule set when non-empty.
	JurisdictionRulesPath string

	// DatabaseURL is required only when the manual provider is selected.
	DatabaseURL string

	// RedisURL enables the search-result cache when non-empty.
	RedisURL string
	CacheTTL time.Duration

	// WarmQueries are standing search terms the scheduler re-runs to keep
	// the cache populated. Empty disables warming.
	WarmQueries       []string
	WarmIntervalHours int

	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{
		AdzunaAppID:   os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:  os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry: os.Getenv("ADZUNA_COUNTRY"),
	}
	if cfg.AdzunaCountry == "" {
		cfg.AdzunaCountry = "us"
	}

	providers := os.Getenv("JOB_PROVIDERS")
	if providers == "" {
		providers = "seed"
	}
	for _, sel := range strings.Split(providers, ",") {
		sel = strings.TrimSpace(sel)
		if sel == "" {
			continue
		}
		src, err := parseSource(sel)
		if err != nil {
			return nil, err
		}
		cfg.Providers = append(cfg.Providers, src)
	}
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("JOB_PROVIDERS must name at least one provider")
	}

	maxQPS := 5
	if s := os.Getenv("MAX_QPS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("MAX_QPS must be a positive integer, got %q", s)
		}
		maxQPS = v
	}
	cfg.MaxQPS = maxQPS

	windowMs := 1000
	if s := os.Getenv("RATE_WINDOW_MS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("RATE_WINDOW_MS must be a positive integer, got %q", s)
		}
		windowMs = v
	}
	cfg.RateWindow = time.Duration(windowMs) * time.Millisecond

	failures := 3
	if s := os.Getenv("CIRCUIT_FAILURES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("CIRCUIT_FAILURES must be a positive integer, got %q", s)
		}
		failures = v
	}
	cfg.CircuitFailures = failures

	timeoutMs := 10000
	if s := os.Getenv("PROVIDER_TIMEOUT_MS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("PROVIDER_TIMEOUT_MS must be a non-negative integer, got %q", s)
		}
		timeoutMs = v
	}
	cfg.ProviderTimeout = time.Duration(timeoutMs) * time.Millisecond

	cfg.JurisdictionRulesPath = os.Getenv("JURISDICTION_RULES_PATH")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if hasProvider(cfg.Providers, model.SourceManual) && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when the manual provider is selected")
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")
	ttlSeconds := 300
	if s := os.Getenv("CACHE_TTL_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("CACHE_TTL_SECONDS must be a positive integer, got %q", s)
		}
		ttlSeconds = v
	}
	cfg.CacheTTL = time.Duration(ttlSeconds) * time.Second

	if s := os.Getenv("WARM_QUERIES"); s != "" {
		for _, q := range strings.Split(s, ",") {
			if q = strings.TrimSpace(q); q != "" {
				cfg.WarmQueries = append(cfg.WarmQueries, q)
			}
		}
	}
	interval := 6
	if s := os.Getenv("WARM_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("WARM_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}
	cfg.WarmIntervalHours = interval

	cfg.Port = os.Getenv("AGGREGATOR_PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}

// parseSource validates a provider selector against the closed source enum.
func parseSource(sel string) (model.Source, error) {
	src := model.Source(strings.ToLower(sel))
	for _, known := range model.KnownSources {
		if src == known {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown provider selector %q", sel)
}

func hasProvider(providers []model.Source, want model.Source) bool {
	for _, p := range providers {
		if p == want {
			return true
		}
	}
	return false
}

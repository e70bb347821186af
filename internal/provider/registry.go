package provider

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobradar/aggregator-service/internal/config"
	"jobradar/aggregator-service/internal/model"
)

// BuildAll constructs one provider per configured selector and wraps each
// in its own Guard. Selectors that pass the config enum but have no client
// linked in this build (the partner-ATS boards) are a startup error, not a
// silent skip.
func BuildAll(cfg *config.Config, pool *pgxpool.Pool) ([]Provider, error) {
	guard := GuardConfig{
		QPSCap:          cfg.MaxQPS,
		Window:          cfg.RateWindow,
		CircuitFailures: cfg.CircuitFailures,
	}

	var out []Provider
	for _, sel := range cfg.Providers {
		var p Provider
		switch sel {
		case model.SourceSeed:
			p = NewSeed(nil)
		case model.SourceManual:
			if pool == nil {
				return nil, fmt.Errorf("manual provider selected but no database pool available")
			}
			p = NewManual(pool)
		case model.SourceAdzuna:
			if cfg.AdzunaAppID == "" || cfg.AdzunaAppKey == "" {
				return nil, fmt.Errorf("adzuna provider selected but ADZUNA_APP_ID / ADZUNA_APP_KEY not set")
			}
			p = NewAdzuna(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry)
		default:
			return nil, fmt.Errorf("provider %q has no client linked in this build", sel)
		}
		out = append(out, NewGuard(p, guard))
	}
	return out, nil
}

// aggregator-service — queries every configured job source concurrently,
// merges and deduplicates the results, and annotates listings that are
// expected to disclose a pay range.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"jobradar/aggregator-service/internal/cache"
	"jobradar/aggregator-service/internal/compose"
	"jobradar/aggregator-service/internal/config"
	"jobradar/aggregator-service/internal/db"
	"jobradar/aggregator-service/internal/httpapi"
	"jobradar/aggregator-service/internal/jurisdiction"
	"jobradar/aggregator-service/internal/provider"
	"jobradar/aggregator-service/internal/scheduler"
)

func main() {
	// .env is a local-development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] Config error: %v", err)
	}

	ctx := context.Background()

	rules, err := jurisdiction.Load(cfg.JurisdictionRulesPath)
	if err != nil {
		log.Fatalf("[main] Jurisdiction rules error: %v", err)
	}

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[main] Postgres error: %v", err)
		}
		defer pool.Close()
	}

	providers, err := provider.BuildAll(cfg, pool)
	if err != nil {
		log.Fatalf("[main] Provider registry error: %v", err)
	}
	log.Printf("[main] %d provider(s) configured: %v", len(providers), cfg.Providers)

	composer := compose.New(providers, rules, cfg.ProviderTimeout)

	var searchCache *cache.SearchCache
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[main] Redis error: %v", err)
		}
		defer rdb.Close()
		searchCache = cache.New(rdb, cfg.CacheTTL)
		log.Printf("[main] Search cache enabled — TTL %s", cfg.CacheTTL)
	}

	if len(cfg.WarmQueries) > 0 {
		warm := scheduler.New(composer, searchCache, cfg.WarmQueries, cfg.WarmIntervalHours)
		if err := warm.Start(ctx); err != nil {
			log.Fatalf("[main] Scheduler error: %v", err)
		}
		defer warm.Stop()
	}

	server := httpapi.New(composer, searchCache)
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("[main] Listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("[main] Fatal: %v", err)
	}
}

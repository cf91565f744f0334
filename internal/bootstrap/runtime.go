// Package bootstrap wires process-level dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"socialfeed/internal/cache"
	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/middleware"
	"socialfeed/internal/observability"
	"socialfeed/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ServiceName identifies this process in traces and metrics.
const ServiceName = "socialfeed-api"

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData fills an empty database with demo content.
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seedIfEmpty(context.Background(), cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

func seedIfEmpty(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	empty, err := seed.IsEmpty(ctx, db)
	if err != nil {
		return err
	}
	if !empty {
		middleware.Logger.Info("demo seed skipped, database already has users")
		return nil
	}

	opts := seed.DefaultOptions()
	opts.JWTSecret = cfg.JWTSecret
	res, err := seed.NewSeeder(db, 0).Run(ctx, opts)
	if err != nil {
		return err
	}
	for _, tok := range res.Tokens {
		middleware.Logger.Info("dev token", "user_id", tok.UserID, "username", tok.Username, "token", tok.Token)
	}
	return nil
}

// InitTracing installs the global tracer provider described by cfg. The
// returned shutdown func is always safe to call.
func InitTracing(cfg *config.Config) (func(context.Context) error, error) {
	return observability.InitTracing(observability.TracingConfig{
		ServiceName:    ServiceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
}

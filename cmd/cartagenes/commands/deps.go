package commands

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/CartagenesDev/cartagenes-finacias/internal/auth"
	"github.com/CartagenesDev/cartagenes-finacias/internal/content"
	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/internal/external/brapi"
	"github.com/CartagenesDev/cartagenes-finacias/internal/external/gemini"
	"github.com/CartagenesDev/cartagenes-finacias/internal/market"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/config"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/database"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/httputil"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/redis"
)

// brapiBurstPerSecond caps in-process quote requests regardless of Redis
const brapiBurstPerSecond = 2

// services holds the shared infrastructure built by every long-lived command
type services struct {
	cfg   *config.Config
	log   *logger.Logger
	redis *redis.Client
	db    *database.DB
}

// bootstrap loads config, builds the logger and connects to the optional stores
func bootstrap() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	rdb, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	rt := &services{cfg: cfg, log: log, redis: rdb}

	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		rt.db = db
		log.Info("Connected to database")
	}

	return rt, nil
}

// Close releases the stores opened by bootstrap
func (rt *services) Close() {
	if rt.db != nil {
		rt.db.Close()
	}
	if err := rt.redis.Close(); err != nil {
		rt.log.WithError(err).Warn("Failed to close redis")
	}
}

// marketGateway wires brapi behind the shared HTTP client and the snapshot cache
func (rt *services) marketGateway() *market.Gateway {
	httpClient := httputil.New(rt.log, rt.cfg.Brapi.Timeout).
		WithLimiter(rate.NewLimiter(rate.Limit(brapiBurstPerSecond), brapiBurstPerSecond))
	if rt.redis.Enabled() {
		httpClient.WithRateLimiter(redis.NewRateLimiter(rt.redis, rt.cfg.Session.KeyPrefix), redis.BrapiRateLimit)
	}

	provider := brapi.NewClient(httpClient, rt.cfg.Brapi.BaseURL, rt.cfg.Brapi.Token, rt.log)
	cache := redis.NewCache(rt.redis, rt.cfg.Session.KeyPrefix)

	return market.NewGateway(provider, cache, rt.log).WithTimeout(rt.cfg.Brapi.Timeout)
}

// contentGateway wires Gemini when a key is configured; otherwise every call
// resolves to the built-in articles and tips.
func (rt *services) contentGateway(ctx context.Context) (*content.Gateway, error) {
	var generator contracts.ContentGenerator = &content.FixtureGenerator{}

	if rt.cfg.Gemini.Enabled() {
		client, err := gemini.NewClient(ctx, rt.cfg.Gemini.APIKey, rt.cfg.Gemini.Model, rt.log)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		generator = client
	} else {
		rt.log.Warn("GEMINI_API_KEY not set, serving built-in news and tips")
	}

	return content.NewGateway(generator, rt.cfg.Gemini.RatePerMinute, rt.log).
		WithTimeout(rt.cfg.Gemini.Timeout), nil
}

// sessionBackend selects where users and the current session are persisted
func (rt *services) sessionBackend(ctx context.Context) (auth.Backend, error) {
	switch rt.cfg.Session.Backend {
	case config.SessionBackendRedis:
		return auth.NewRedisBackend(rt.redis, rt.cfg.Session.KeyPrefix)
	case config.SessionBackendPostgres:
		if rt.db == nil {
			return nil, fmt.Errorf("postgres session backend requires DATABASE_URL")
		}
		if err := auth.Migrate(ctx, rt.db.Pool); err != nil {
			return nil, fmt.Errorf("migrate session schema: %w", err)
		}
		return auth.NewPostgresBackend(rt.db.Pool, rt.cfg.Session.KeyPrefix), nil
	default:
		return auth.NewMemoryBackend(), nil
	}
}

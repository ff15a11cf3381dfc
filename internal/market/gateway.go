package market

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/redis"
)

// DefaultTimeout bounds a single upstream quote request
const DefaultTimeout = 5 * time.Second

// ErrEmptyResults is reported when the upstream answers with no quotes
var ErrEmptyResults = errors.New("empty quote results")

// Gateway produces market snapshots, falling back to illustrative data on any failure
// ⭐ SSOT: the only way the app obtains quotes
type Gateway struct {
	provider  contracts.QuoteProvider
	cache     *redis.Cache
	logger    *logger.Logger
	watchList []string
	timeout   time.Duration
	now       func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGateway creates a gateway over provider. cache may be nil.
func NewGateway(provider contracts.QuoteProvider, cache *redis.Cache, log *logger.Logger) *Gateway {
	return &Gateway{
		provider:  provider,
		cache:     cache,
		logger:    log,
		watchList: WatchList,
		timeout:   DefaultTimeout,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithTimeout overrides the upstream timeout
func (g *Gateway) WithTimeout(d time.Duration) *Gateway {
	g.timeout = d
	return g
}

// WithRand makes fallback jitter reproducible
func (g *Gateway) WithRand(rng *rand.Rand) *Gateway {
	g.rng = rng
	return g
}

// WatchList returns the requested symbols
func (g *Gateway) WatchList() []string {
	return g.watchList
}

// FetchSnapshot returns a non-empty snapshot. It never fails: network errors,
// non-2xx, timeouts, malformed payloads and empty results all yield the fallback set.
func (g *Gateway) FetchSnapshot(ctx context.Context) contracts.MarketSnapshot {
	cacheKey := redis.SnapshotKey(strings.Join(g.watchList, ","))

	if snapshot, ok := g.cached(ctx, cacheKey); ok {
		return snapshot
	}

	fetchCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	quotes, err := g.provider.FetchQuotes(fetchCtx, g.watchList)
	if err == nil && len(quotes) == 0 {
		err = ErrEmptyResults
	}
	if err != nil {
		g.logger.WithError(err).Warn("Market data unavailable, using fallback quotes")
		return g.fallback()
	}

	snapshot := contracts.MarketSnapshot{
		Quotes:    quotes,
		Source:    contracts.SourceLive,
		FetchedAt: g.now(),
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, cacheKey, snapshot, redis.TTLShort); err != nil {
			g.logger.WithError(err).Warn("Failed to cache market snapshot")
		}
	}

	g.logger.WithFields(map[string]interface{}{
		"quotes": len(quotes),
		"source": snapshot.Source,
	}).Info("Market snapshot fetched")

	return snapshot
}

func (g *Gateway) cached(ctx context.Context, key string) (contracts.MarketSnapshot, bool) {
	if g.cache == nil {
		return contracts.MarketSnapshot{}, false
	}

	var snapshot contracts.MarketSnapshot
	hit, err := g.cache.Get(ctx, key, &snapshot)
	if err != nil {
		g.logger.WithError(err).Warn("Market snapshot cache read failed")
		return contracts.MarketSnapshot{}, false
	}
	if !hit || len(snapshot.Quotes) == 0 {
		return contracts.MarketSnapshot{}, false
	}

	snapshot.Source = contracts.SourceCache
	return snapshot, true
}

func (g *Gateway) fallback() contracts.MarketSnapshot {
	g.rngMu.Lock()
	quotes := Fallback(g.rng)
	g.rngMu.Unlock()

	return contracts.MarketSnapshot{
		Quotes:    quotes,
		Source:    contracts.SourceFallback,
		FetchedAt: g.now(),
	}
}

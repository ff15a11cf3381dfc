package market

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/internal/external/brapi"
	"github.com/CartagenesDev/cartagenes-finacias/internal/ranking"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/config"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/httputil"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/redis"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func brapiGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := brapi.NewClient(httputil.New(logger.Nop(), 2*time.Second), server.URL, "", logger.Nop())
	return NewGateway(client, nil, logger.Nop()).WithRand(seeded())
}

func assertFallback(t *testing.T, snapshot contracts.MarketSnapshot) {
	t.Helper()
	assert.True(t, snapshot.IsFallback())
	require.Len(t, snapshot.Quotes, len(fallbackQuotes))
	assert.Equal(t, "PETR4", snapshot.Quotes[0].Symbol)
	assert.False(t, snapshot.FetchedAt.IsZero())
}

func TestFallback_Shape(t *testing.T) {
	quotes := Fallback(seeded())
	require.Len(t, quotes, 15)

	seen := make(map[string]bool)
	for i, q := range quotes {
		base := fallbackQuotes[i]
		assert.False(t, seen[q.Symbol], "duplicate symbol %s", q.Symbol)
		seen[q.Symbol] = true

		assert.Equal(t, base.symbol, q.Symbol)
		assert.Equal(t, base.shortName, q.ShortName)
		assert.Equal(t, base.priceEarnings, *q.PriceEarnings)
		assert.Equal(t, base.dividendYield, *q.DividendYield)

		maxDelta := math.Abs(base.price) * base.priceVariance / 2
		assert.InDelta(t, base.price, q.Price, maxDelta+1e-9, q.Symbol)

		maxDelta = math.Abs(base.change) * base.changeVariance / 2
		assert.InDelta(t, base.change, q.ChangePercent, maxDelta+1e-9, q.Symbol)
	}
}

func TestFallback_ZeroVarianceIsExact(t *testing.T) {
	for _, q := range Fallback(seeded()) {
		if q.Symbol == "SYNE3" {
			assert.Equal(t, 0.0, q.ChangePercent)
			return
		}
	}
	t.Fatal("SYNE3 missing from fallback set")
}

func TestFallback_Rankings(t *testing.T) {
	rankings := ranking.Compute(contracts.MarketSnapshot{Quotes: Fallback(seeded())})

	var pe []string
	for _, q := range rankings.LowestPE {
		pe = append(pe, q.Symbol)
	}
	assert.Equal(t, []string{"MNPR3", "NEMO3", "VSPT3", "ALLD3", "BBAS3"}, pe)

	var dy []string
	for _, q := range rankings.TopDividends {
		dy = append(dy, q.Symbol)
	}
	assert.Equal(t, []string{"SYNE3", "MOAR3", "CASH3", "NEMO3", "ALLD3"}, dy)
}

func TestWatchList(t *testing.T) {
	assert.Len(t, WatchList, 22)
	assert.Equal(t, "PETR4", WatchList[0])
	assert.Equal(t, "CASH3", WatchList[len(WatchList)-1])
}

func TestFetchSnapshot_Live(t *testing.T) {
	provider := &FixtureProvider{Quotes: []contracts.MarketQuote{
		{Symbol: "PETR4", ShortName: "PETROBRAS", Price: 38.5, PriceEarnings: contracts.Float(4.5), DividendYield: contracts.Float(18.2)},
		{Symbol: "AAPL34", ShortName: "NOT WATCHED", Price: 1},
		{Symbol: "VALE3", ShortName: "VALE", Price: 62.1, PriceEarnings: contracts.Float(5.2), DividendYield: contracts.Float(9.5)},
	}}
	gateway := NewGateway(provider, nil, logger.Nop())

	snapshot := gateway.FetchSnapshot(context.Background())

	assert.Equal(t, contracts.SourceLive, snapshot.Source)
	assert.Equal(t, []string{"PETR4", "VALE3"}, snapshot.Symbols())
	assert.Equal(t, 1, provider.Calls)
}

func TestFetchSnapshot_FallbackCases(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>rate limited</html>`))
			},
		},
		{
			name: "empty results",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"results":[]}`))
			},
		},
		{
			name: "missing results",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := brapiGateway(t, tt.handler).FetchSnapshot(context.Background())
			assertFallback(t, snapshot)
		})
	}
}

func TestFetchSnapshot_Timeout(t *testing.T) {
	release := make(chan struct{})
	gateway := brapiGateway(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	start := time.Now()
	snapshot := gateway.WithTimeout(50 * time.Millisecond).FetchSnapshot(context.Background())

	assertFallback(t, snapshot)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetchSnapshot_NetworkError(t *testing.T) {
	provider := &FixtureProvider{Err: errors.New("dial tcp: connection refused")}

	snapshot := NewGateway(provider, nil, logger.Nop()).WithRand(seeded()).FetchSnapshot(context.Background())

	assertFallback(t, snapshot)
}

func TestFetchSnapshot_DisabledCacheIsTransparent(t *testing.T) {
	client, err := redis.New(&config.Config{})
	require.NoError(t, err)

	provider := &FixtureProvider{Quotes: []contracts.MarketQuote{{Symbol: "PETR4", Price: 38}}}
	gateway := NewGateway(provider, redis.NewCache(client, "test"), logger.Nop())

	first := gateway.FetchSnapshot(context.Background())
	second := gateway.FetchSnapshot(context.Background())

	assert.Equal(t, contracts.SourceLive, first.Source)
	assert.Equal(t, contracts.SourceLive, second.Source)
	assert.Equal(t, 2, provider.Calls)
}

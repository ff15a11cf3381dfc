package feed

import (
	"context"
	"sync"
	"time"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/internal/ranking"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// LoadingTip is shown until the first tip arrives
const LoadingTip = "Carregando dica..."

// MarketSource produces quote snapshots without failing
type MarketSource interface {
	FetchSnapshot(ctx context.Context) contracts.MarketSnapshot
}

// ContentSource produces news and the daily tip without failing
type ContentSource interface {
	FetchNews(ctx context.Context) []contracts.NewsArticle
	FetchDailyTip(ctx context.Context) string
}

// Home is everything the home screen renders
type Home struct {
	News      []contracts.NewsArticle  `json:"news"`
	Tip       string                   `json:"tip"`
	Ticker    contracts.MarketSnapshot `json:"ticker"`
	Rankings  ranking.Rankings         `json:"rankings"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// Board holds the latest market and content state shown on the home screen.
// Market and content refresh independently and write disjoint fields.
// ⭐ SSOT: home screen state lives here only
type Board struct {
	market  MarketSource
	content ContentSource
	logger  *logger.Logger

	mu        sync.RWMutex
	snapshot  contracts.MarketSnapshot
	rankings  ranking.Rankings
	news      []contracts.NewsArticle
	tip       string
	updatedAt time.Time

	subMu       sync.Mutex
	subscribers map[chan contracts.MarketSnapshot]struct{}
}

// NewBoard creates an empty board
func NewBoard(market MarketSource, content ContentSource, log *logger.Logger) *Board {
	return &Board{
		market:      market,
		content:     content,
		logger:      log,
		tip:         LoadingTip,
		subscribers: make(map[chan contracts.MarketSnapshot]struct{}),
	}
}

// Refresh reloads market and content concurrently
func (b *Board) Refresh(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		b.RefreshMarket(ctx)
	}()

	go func() {
		defer wg.Done()
		b.RefreshContent(ctx)
	}()

	wg.Wait()
}

// RefreshMarket fetches a snapshot, recomputes rankings and notifies subscribers
func (b *Board) RefreshMarket(ctx context.Context) contracts.MarketSnapshot {
	snapshot := b.market.FetchSnapshot(ctx)
	rankings := ranking.Compute(snapshot)

	b.mu.Lock()
	b.snapshot = snapshot
	b.rankings = rankings
	b.updatedAt = time.Now()
	b.mu.Unlock()

	b.logger.WithFields(map[string]interface{}{
		"quotes":    len(snapshot.Quotes),
		"source":    snapshot.Source,
		"lowest_pe": len(rankings.LowestPE),
		"dividends": len(rankings.TopDividends),
	}).Debug("Market board refreshed")

	b.broadcast(snapshot)
	return snapshot
}

// RefreshContent fetches news and tip concurrently
func (b *Board) RefreshContent(ctx context.Context) {
	var (
		wg   sync.WaitGroup
		news []contracts.NewsArticle
		tip  string
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		news = b.content.FetchNews(ctx)
	}()

	go func() {
		defer wg.Done()
		tip = b.content.FetchDailyTip(ctx)
	}()

	wg.Wait()

	b.mu.Lock()
	if len(news) > 0 {
		b.news = news
	}
	if tip != "" {
		b.tip = tip
	}
	b.updatedAt = time.Now()
	b.mu.Unlock()

	b.logger.WithField("articles", len(news)).Debug("Content board refreshed")
}

// Home returns a consistent copy of the home screen state
func (b *Board) Home() Home {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return Home{
		News:      append([]contracts.NewsArticle(nil), b.news...),
		Tip:       b.tip,
		Ticker:    b.snapshot,
		Rankings:  b.rankings,
		UpdatedAt: b.updatedAt,
	}
}

// Ticker returns the latest snapshot
func (b *Board) Ticker() contracts.MarketSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot
}

// Rankings returns the rankings of the latest snapshot
func (b *Board) Rankings() ranking.Rankings {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rankings
}

// News returns the latest carousel
func (b *Board) News() []contracts.NewsArticle {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]contracts.NewsArticle(nil), b.news...)
}

// Tip returns the latest daily tip
func (b *Board) Tip() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tip
}

// Subscribe returns a channel receiving every new snapshot. Slow readers only
// see the most recent one. Call cancel to unsubscribe.
func (b *Board) Subscribe() (<-chan contracts.MarketSnapshot, func()) {
	ch := make(chan contracts.MarketSnapshot, 1)

	b.subMu.Lock()
	b.subscribers[ch] = struct{}{}
	b.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.subMu.Lock()
			delete(b.subscribers, ch)
			b.subMu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Subscribers returns the number of live subscriptions
func (b *Board) Subscribers() int {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	return len(b.subscribers)
}

func (b *Board) broadcast(snapshot contracts.MarketSnapshot) {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	for ch := range b.subscribers {
		// drop the stale value so the latest snapshot always fits
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

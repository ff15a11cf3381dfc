package feed

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

type stubMarket struct {
	calls int32
	delay time.Duration
}

func (s *stubMarket) FetchSnapshot(ctx context.Context) contracts.MarketSnapshot {
	n := atomic.AddInt32(&s.calls, 1)
	time.Sleep(s.delay)
	return contracts.MarketSnapshot{
		Quotes: []contracts.MarketQuote{
			{Symbol: "PETR4", Price: float64(n), PriceEarnings: contracts.Float(4.5), DividendYield: contracts.Float(18.2)},
			{Symbol: "MGLU3", Price: 2, PriceEarnings: contracts.Float(-15), DividendYield: contracts.Float(0)},
		},
		Source:    contracts.SourceLive,
		FetchedAt: time.Now(),
	}
}

type stubContent struct {
	delay time.Duration
	tip   string
}

func (s *stubContent) FetchNews(ctx context.Context) []contracts.NewsArticle {
	time.Sleep(s.delay)
	return []contracts.NewsArticle{{ID: "news-0", Title: "Manchete"}}
}

func (s *stubContent) FetchDailyTip(ctx context.Context) string {
	time.Sleep(s.delay)
	return s.tip
}

func TestBoard_InitialState(t *testing.T) {
	b := NewBoard(&stubMarket{}, &stubContent{}, logger.Nop())

	home := b.Home()
	assert.Equal(t, LoadingTip, home.Tip)
	assert.Empty(t, home.News)
	assert.Empty(t, home.Ticker.Quotes)
}

func TestBoard_Refresh(t *testing.T) {
	b := NewBoard(&stubMarket{}, &stubContent{tip: "Invista cedo."}, logger.Nop())

	b.Refresh(context.Background())

	home := b.Home()
	assert.Equal(t, "Invista cedo.", home.Tip)
	require.Len(t, home.News, 1)
	assert.Equal(t, []string{"PETR4", "MGLU3"}, home.Ticker.Symbols())
	require.Len(t, home.Rankings.LowestPE, 1)
	assert.Equal(t, "PETR4", home.Rankings.LowestPE[0].Symbol)
	assert.Len(t, home.Rankings.TopDividends, 2)
	assert.False(t, home.UpdatedAt.IsZero())
}

func TestBoard_RefreshRunsConcurrently(t *testing.T) {
	delay := 100 * time.Millisecond
	b := NewBoard(&stubMarket{delay: delay}, &stubContent{delay: delay, tip: "x"}, logger.Nop())

	start := time.Now()
	b.Refresh(context.Background())

	// market, news and tip all sleep; run serially this would take 3x delay
	assert.Less(t, time.Since(start), 2*delay+50*time.Millisecond)
}

func TestBoard_EmptyTipKeepsPrevious(t *testing.T) {
	content := &stubContent{tip: "Primeira dica."}
	b := NewBoard(&stubMarket{}, content, logger.Nop())

	b.RefreshContent(context.Background())
	content.tip = ""
	b.RefreshContent(context.Background())

	assert.Equal(t, "Primeira dica.", b.Tip())
}

func TestBoard_Subscribe(t *testing.T) {
	b := NewBoard(&stubMarket{}, &stubContent{}, logger.Nop())

	updates, cancel := b.Subscribe()
	assert.Equal(t, 1, b.Subscribers())

	b.RefreshMarket(context.Background())
	b.RefreshMarket(context.Background())

	select {
	case snapshot := <-updates:
		// only the latest snapshot is kept for a slow reader
		assert.Equal(t, 2.0, snapshot.Quotes[0].Price)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	cancel()
	cancel()
	assert.Equal(t, 0, b.Subscribers())

	_, open := <-updates
	assert.False(t, open)

	// broadcasting after unsubscribe must not panic
	b.RefreshMarket(context.Background())
}

func TestBoard_HomeReturnsCopies(t *testing.T) {
	b := NewBoard(&stubMarket{}, &stubContent{tip: "x"}, logger.Nop())
	b.Refresh(context.Background())

	home := b.Home()
	home.News[0].Title = "changed"

	assert.Equal(t, "Manchete", b.News()[0].Title)
}

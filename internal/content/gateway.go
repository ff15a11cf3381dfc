package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// DefaultTimeout bounds a single generation call
const DefaultTimeout = 20 * time.Second

// Gateway serves carousel news and the daily tip, absorbing every generator failure
// ⭐ SSOT: the only way the app obtains generated content
type Gateway struct {
	generator contracts.ContentGenerator
	limiter   *rate.Limiter
	timeout   time.Duration
	logger    *logger.Logger
}

// NewGateway creates a content gateway. perMinute <= 0 disables throttling.
func NewGateway(generator contracts.ContentGenerator, perMinute int, log *logger.Logger) *Gateway {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}

	return &Gateway{
		generator: generator,
		limiter:   limiter,
		timeout:   DefaultTimeout,
		logger:    log,
	}
}

// WithTimeout overrides the per-call timeout
func (g *Gateway) WithTimeout(d time.Duration) *Gateway {
	g.timeout = d
	return g
}

// FetchNews returns exactly contracts.NewsCount articles. Generated articles get
// IDs news-{i} and seeded images; anything else yields FallbackNews.
func (g *Gateway) FetchNews(ctx context.Context) []contracts.NewsArticle {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	articles, err := g.generateNews(ctx)
	if err != nil {
		g.logger.WithError(err).Warn("News generation failed, using fallback articles")
		return FallbackNews()
	}

	for i := range articles {
		articles[i].ID = fmt.Sprintf("news-%d", i)
		articles[i].ImageURL = fmt.Sprintf("https://picsum.photos/seed/%d/800/600", i+42)
	}

	g.logger.WithField("articles", len(articles)).Info("News generated")
	return articles
}

func (g *Gateway) generateNews(ctx context.Context) ([]contracts.NewsArticle, error) {
	// Wait fails at once when the next token lands after the call deadline
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	articles, err := g.generator.GenerateNews(ctx)
	if err != nil {
		return nil, err
	}

	if len(articles) != contracts.NewsCount {
		return nil, fmt.Errorf("expected %d articles, got %d", contracts.NewsCount, len(articles))
	}
	for i, a := range articles {
		if strings.TrimSpace(a.Title) == "" {
			return nil, fmt.Errorf("article %d has no title", i)
		}
	}

	return articles, nil
}

// FetchDailyTip returns a generated tip, EmptyTip for a blank answer, or ErrorTip on failure
func (g *Gateway) FetchDailyTip(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		g.logger.WithError(err).Warn("Tip generation throttled, using fallback tip")
		return ErrorTip
	}

	tip, err := g.generator.GenerateTip(ctx)
	if err != nil {
		g.logger.WithError(err).Warn("Tip generation failed, using fallback tip")
		return ErrorTip
	}

	tip = strings.TrimSpace(tip)
	if tip == "" {
		return EmptyTip
	}
	return tip
}

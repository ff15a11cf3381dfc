package jobs

import (
	"context"

	"github.com/CartagenesDev/cartagenes-finacias/internal/feed"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// MarketRefreshJob reloads quotes and rankings on the home board
type MarketRefreshJob struct {
	board    *feed.Board
	schedule string
	logger   *logger.Logger
}

// NewMarketRefreshJob creates a new market refresh job
func NewMarketRefreshJob(board *feed.Board, schedule string, log *logger.Logger) *MarketRefreshJob {
	return &MarketRefreshJob{
		board:    board,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *MarketRefreshJob) Name() string {
	return "market_refresh"
}

// Schedule returns the cron schedule (every minute by default)
func (j *MarketRefreshJob) Schedule() string {
	return j.schedule
}

// Run refreshes the market side of the board. Upstream failures are already
// absorbed by the gateway, so only cancellation is reported.
func (j *MarketRefreshJob) Run(ctx context.Context) error {
	snapshot := j.board.RefreshMarket(ctx)

	if snapshot.IsFallback() {
		j.logger.Warn("Market refresh served fallback quotes")
	}

	return ctx.Err()
}

// ContentRefreshJob reloads news and the daily tip on the home board
type ContentRefreshJob struct {
	board    *feed.Board
	schedule string
	logger   *logger.Logger
}

// NewContentRefreshJob creates a new content refresh job
func NewContentRefreshJob(board *feed.Board, schedule string, log *logger.Logger) *ContentRefreshJob {
	return &ContentRefreshJob{
		board:    board,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ContentRefreshJob) Name() string {
	return "content_refresh"
}

// Schedule returns the cron schedule (hourly by default)
func (j *ContentRefreshJob) Schedule() string {
	return j.schedule
}

// Run refreshes news and tip
func (j *ContentRefreshJob) Run(ctx context.Context) error {
	j.board.RefreshContent(ctx)
	j.logger.WithField("articles", len(j.board.News())).Debug("Content refreshed")
	return ctx.Err()
}

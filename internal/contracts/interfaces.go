package contracts

import "context"

// ⭐ SSOT: collaborator interfaces between gateways and their backends

// QuoteProvider fetches quotes for a watch-list from some source
type QuoteProvider interface {
	FetchQuotes(ctx context.Context, symbols []string) ([]MarketQuote, error)
}

// ContentGenerator produces carousel news and the daily tip
type ContentGenerator interface {
	GenerateNews(ctx context.Context) ([]NewsArticle, error)
	GenerateTip(ctx context.Context) (string, error)
}

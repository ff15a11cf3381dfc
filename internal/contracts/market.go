package contracts

import "time"

// MarketQuote is one watch-list entry of a quote snapshot
// ⭐ SSOT: quote shape shared by the gateway, rankings and the ticker
type MarketQuote struct {
	Symbol        string   `json:"symbol"`
	ShortName     string   `json:"short_name"`
	Price         float64  `json:"price"`
	ChangePercent float64  `json:"change_percent"`
	PriceEarnings *float64 `json:"price_earnings"` // P/L, nil = absent
	DividendYield *float64 `json:"dividend_yield"` // DY (%), nil = absent
}

// Float returns a pointer to v, for optional quote fields
func Float(v float64) *float64 {
	return &v
}

// Snapshot sources
const (
	SourceLive     = "live"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// MarketSnapshot is an ordered, immutable set of quotes fetched at once
type MarketSnapshot struct {
	Quotes    []MarketQuote `json:"quotes"`
	Source    string        `json:"source"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// IsFallback reports whether the snapshot came from the illustrative data set
func (s MarketSnapshot) IsFallback() bool {
	return s.Source == SourceFallback
}

// Symbols returns the snapshot symbols in order
func (s MarketSnapshot) Symbols() []string {
	symbols := make([]string, len(s.Quotes))
	for i, q := range s.Quotes {
		symbols[i] = q.Symbol
	}
	return symbols
}

package market

import (
	"context"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
)

// FixtureProvider serves a canned quote list or error, for tests and offline runs
type FixtureProvider struct {
	Quotes []contracts.MarketQuote
	Err    error
	Calls  int
}

// FetchQuotes returns the canned quotes filtered to symbols, or Err
func (p *FixtureProvider) FetchQuotes(ctx context.Context, symbols []string) ([]contracts.MarketQuote, error) {
	p.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}

	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		wanted[s] = true
	}

	out := make([]contracts.MarketQuote, 0, len(p.Quotes))
	for _, q := range p.Quotes {
		if wanted[q.Symbol] {
			out = append(out, q)
		}
	}
	return out, nil
}

package ranking

import (
	"sort"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
)

// TopN is the length of each home-page ranking
const TopN = 5

// Rankings bundles the two home-page rankings of one snapshot
type Rankings struct {
	LowestPE     []contracts.MarketQuote `json:"lowest_pe"`
	TopDividends []contracts.MarketQuote `json:"top_dividends"`
}

// Compute derives both rankings from snapshot
func Compute(snapshot contracts.MarketSnapshot) Rankings {
	return Rankings{
		LowestPE:     LowestPositivePE(snapshot),
		TopDividends: HighestDividendYield(snapshot),
	}
}

// LowestPositivePE ranks quotes by ascending P/L, keeping only present and
// strictly positive values. Ties keep snapshot order.
func LowestPositivePE(snapshot contracts.MarketSnapshot) []contracts.MarketQuote {
	ranked := filter(snapshot.Quotes, func(q contracts.MarketQuote) bool {
		return q.PriceEarnings != nil && *q.PriceEarnings > 0
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].PriceEarnings < *ranked[j].PriceEarnings
	})

	return top(ranked)
}

// HighestDividendYield ranks quotes by descending dividend yield, keeping
// every present value including zero. Ties keep snapshot order.
func HighestDividendYield(snapshot contracts.MarketSnapshot) []contracts.MarketQuote {
	ranked := filter(snapshot.Quotes, func(q contracts.MarketQuote) bool {
		return q.DividendYield != nil
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].DividendYield > *ranked[j].DividendYield
	})

	return top(ranked)
}

// filter copies matching quotes into a fresh slice so the snapshot is never reordered
func filter(quotes []contracts.MarketQuote, keep func(contracts.MarketQuote) bool) []contracts.MarketQuote {
	out := make([]contracts.MarketQuote, 0, len(quotes))
	for _, q := range quotes {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

func top(quotes []contracts.MarketQuote) []contracts.MarketQuote {
	if len(quotes) > TopN {
		return quotes[:TopN]
	}
	return quotes
}

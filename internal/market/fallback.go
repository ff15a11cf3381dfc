package market

import (
	"math/rand"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
)

// WatchList is the fixed set of B3 symbols requested upstream
// ⭐ SSOT: the watch-list is defined here only
var WatchList = []string{
	"PETR4", "VALE3", "ITUB4", "BBDC4", "BBAS3", "WEGE3", "MGLU3", "HAPV3",
	"PRIO3", "CSNA3", "GGBR4", "RENT3", "JBSS3", "ELET3", "SUZB3",
	"MNPR3", "SYNE3", "NEMO3", "VSPT3", "ALLD3", "MOAR3", "CASH3",
}

// fallbackQuote is a base row of the illustrative data set.
// Price and change are jittered by +/- variance/2 on every call.
type fallbackQuote struct {
	symbol         string
	shortName      string
	price          float64
	priceVariance  float64
	change         float64
	changeVariance float64
	priceEarnings  float64
	dividendYield  float64
}

var fallbackQuotes = []fallbackQuote{
	// Blue chips, shown on the ticker
	{"PETR4", "PETROBRAS", 38.45, 0.02, 1.25, 0.1, 4.5, 18.2},
	{"VALE3", "VALE", 62.10, 0.02, -0.85, 0.1, 5.2, 9.5},
	{"ITUB4", "ITAU UNIBANCO", 33.20, 0.01, 0.50, 0.1, 9.1, 6.2},
	{"WEGE3", "WEG", 40.15, 0.02, 2.10, 0.1, 28.5, 1.8},
	{"BBAS3", "BANCO BRASIL", 58.90, 0.01, 0.90, 0.1, 4.1, 10.5},
	{"PRIO3", "PRIO", 46.20, 0.02, 1.5, 0.1, 8.5, 0},
	{"MGLU3", "MAGALU", 2.15, 0.05, -3.20, 0.2, -15.0, 0},
	{"CSNA3", "SID NACIONAL", 12.50, 0.02, -1.10, 0.1, 6.8, 5.4},

	// Lowest P/L ranking
	{"MNPR3", "MINUPAR PART", 5.20, 0.05, 0, 0, 0.07, 2.1},
	{"NEMO3", "SUZANO HOLD", 14.50, 0.01, 0, 0, 0.76, 35.98},
	{"VSPT3", "FERROVIA C.", 8.90, 0.02, 0, 0, 1.95, 0},
	{"ALLD3", "ALLIED TECN", 6.30, 0.02, 0, 0, 2.21, 24.69},

	// Dividend yield ranking
	{"SYNE3", "SYN PROP E..", 4.10, 0.01, 0, 0, 12.0, 125.53},
	{"MOAR3", "MONTEIRO A..", 350.00, 0.01, 0, 0, 5.0, 76.21},
	{"CASH3", "MELIUZ S.A.", 7.80, 0.02, 0, 0, -5.0, 54.11},
}

// Fallback returns the illustrative quote set used when the live source fails.
// Fundamentals are fixed; price and change carry bounded jitter from rng.
func Fallback(rng *rand.Rand) []contracts.MarketQuote {
	quotes := make([]contracts.MarketQuote, len(fallbackQuotes))
	for i, b := range fallbackQuotes {
		quotes[i] = contracts.MarketQuote{
			Symbol:        b.symbol,
			ShortName:     b.shortName,
			Price:         jitter(rng, b.price, b.priceVariance),
			ChangePercent: jitter(rng, b.change, b.changeVariance),
			PriceEarnings: contracts.Float(b.priceEarnings),
			DividendYield: contracts.Float(b.dividendYield),
		}
	}
	return quotes
}

// jitter returns base * (1 + (u - 0.5) * variance) for u in [0, 1)
func jitter(rng *rand.Rand, base, variance float64) float64 {
	if variance == 0 {
		return base
	}
	return base * (1 + (rng.Float64()-0.5)*variance)
}

package brapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/httputil"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// Client fetches B3 quotes from brapi.dev
// ⭐ SSOT: brapi.dev calls go through this client only
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	token      string
}

// NewClient creates a new brapi client
func NewClient(httpClient *httputil.Client, baseURL, token string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// quoteResponse is the subset of /quote we read
type quoteResponse struct {
	Results []quoteResult `json:"results"`
}

type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  string   `json:"shortName"`
	RegularMarketPrice         float64  `json:"regularMarketPrice"`
	RegularMarketChangePercent float64  `json:"regularMarketChangePercent"`
	PriceEarnings              *float64 `json:"priceEarnings"`
	DividendYield              *float64 `json:"dividendYield"`
}

// QuoteURL builds the /quote URL for symbols
func (c *Client) QuoteURL(symbols []string) string {
	params := url.Values{}
	params.Set("fundamental", "true")
	if c.token != "" {
		params.Set("token", c.token)
	}

	return fmt.Sprintf("%s/quote/%s?%s", c.baseURL, strings.Join(symbols, ","), params.Encode())
}

// FetchQuotes requests quotes for symbols in a single call.
// Missing P/L and DY are reported as 0.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) ([]contracts.MarketQuote, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols requested")
	}

	var resp quoteResponse
	if err := c.httpClient.GetJSON(ctx, c.QuoteURL(symbols), &resp); err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}

	quotes := make([]contracts.MarketQuote, 0, len(resp.Results))
	for _, r := range resp.Results {
		quotes = append(quotes, contracts.MarketQuote{
			Symbol:        r.Symbol,
			ShortName:     r.ShortName,
			Price:         r.RegularMarketPrice,
			ChangePercent: r.RegularMarketChangePercent,
			PriceEarnings: orZero(r.PriceEarnings),
			DividendYield: orZero(r.DividendYield),
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(symbols),
		"received":  len(quotes),
	}).Debug("Fetched brapi quotes")

	return quotes, nil
}

func orZero(v *float64) *float64 {
	if v == nil {
		return contracts.Float(0)
	}
	return contracts.Float(*v)
}

package brapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CartagenesDev/cartagenes-finacias/pkg/httputil"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

func newTestClient(baseURL, token string) *Client {
	return NewClient(httputil.New(logger.Nop(), 2*time.Second), baseURL, token, logger.Nop())
}

func TestQuoteURL(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		token string
		want  string
	}{
		{
			name: "no token",
			base: "https://brapi.dev/api",
			want: "https://brapi.dev/api/quote/PETR4,VALE3?fundamental=true",
		},
		{
			name:  "with token",
			base:  "https://brapi.dev/api/",
			token: "abc",
			want:  "https://brapi.dev/api/quote/PETR4,VALE3?fundamental=true&token=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(tt.base, tt.token)
			assert.Equal(t, tt.want, c.QuoteURL([]string{"PETR4", "VALE3"}))
		})
	}
}

func TestFetchQuotes_MapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote/PETR4,MGLU3", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("fundamental"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"symbol":"PETR4","shortName":"PETROBRAS PN","regularMarketPrice":38.45,"regularMarketChangePercent":1.25,"priceEarnings":4.5,"dividendYield":18.2},
			{"symbol":"MGLU3","shortName":"MAGAZ LUIZA","regularMarketPrice":2.15,"regularMarketChangePercent":-3.2,"priceEarnings":null}
		]}`))
	}))
	defer server.Close()

	quotes, err := newTestClient(server.URL, "").FetchQuotes(context.Background(), []string{"PETR4", "MGLU3"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "PETR4", quotes[0].Symbol)
	assert.Equal(t, "PETROBRAS PN", quotes[0].ShortName)
	assert.Equal(t, 38.45, quotes[0].Price)
	assert.Equal(t, 1.25, quotes[0].ChangePercent)
	assert.Equal(t, 4.5, *quotes[0].PriceEarnings)
	assert.Equal(t, 18.2, *quotes[0].DividendYield)

	require.NotNil(t, quotes[1].PriceEarnings)
	require.NotNil(t, quotes[1].DividendYield)
	assert.Equal(t, 0.0, *quotes[1].PriceEarnings)
	assert.Equal(t, 0.0, *quotes[1].DividendYield)
}

func TestFetchQuotes_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").FetchQuotes(context.Background(), []string{"PETR4"})
	require.Error(t, err)

	var statusErr *httputil.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

func TestFetchQuotes_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").FetchQuotes(context.Background(), []string{"PETR4"})
	assert.Error(t, err)
}

func TestFetchQuotes_NoSymbols(t *testing.T) {
	_, err := newTestClient("http://unused", "").FetchQuotes(context.Background(), nil)
	assert.Error(t, err)
}

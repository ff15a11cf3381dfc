package content

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateNews(ctx context.Context) ([]contracts.NewsArticle, error) {
	args := m.Called(ctx)
	news, _ := args.Get(0).([]contracts.NewsArticle)
	return news, args.Error(1)
}

func (m *mockGenerator) GenerateTip(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func generated(n int) []contracts.NewsArticle {
	articles := make([]contracts.NewsArticle, n)
	for i := range articles {
		articles[i] = contracts.NewsArticle{
			Title:    fmt.Sprintf("Manchete %d", i),
			Summary:  "Resumo.",
			Category: "MERCADO",
		}
	}
	return articles
}

func TestFetchNews_AssignsIDsAndImages(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("GenerateNews", mock.Anything).Return(generated(5), nil).Once()

	news := NewGateway(gen, 0, logger.Nop()).FetchNews(context.Background())

	require.Len(t, news, contracts.NewsCount)
	for i, a := range news {
		assert.Equal(t, fmt.Sprintf("news-%d", i), a.ID)
		assert.Equal(t, fmt.Sprintf("https://picsum.photos/seed/%d/800/600", i+42), a.ImageURL)
		assert.Equal(t, fmt.Sprintf("Manchete %d", i), a.Title)
	}
	gen.AssertExpectations(t)
}

func TestFetchNews_Fallback(t *testing.T) {
	tests := []struct {
		name string
		news []contracts.NewsArticle
		err  error
	}{
		{"generator error", nil, errors.New("503 service unavailable")},
		{"too few", generated(3), nil},
		{"too many", generated(6), nil},
		{"empty", []contracts.NewsArticle{}, nil},
		{"blank title", append(generated(4), contracts.NewsArticle{Title: "  "}), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(mockGenerator)
			gen.On("GenerateNews", mock.Anything).Return(tt.news, tt.err).Once()

			news := NewGateway(gen, 0, logger.Nop()).FetchNews(context.Background())

			assert.Equal(t, FallbackNews(), news)
			gen.AssertNumberOfCalls(t, "GenerateNews", 1)
		})
	}
}

func TestFallbackNews(t *testing.T) {
	news := FallbackNews()
	require.Len(t, news, contracts.NewsCount)
	for i, a := range news {
		assert.Equal(t, fmt.Sprintf("%d", i+1), a.ID)
		assert.Equal(t, fmt.Sprintf("https://picsum.photos/seed/%d/800/600", i+1), a.ImageURL)
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Category)
	}
	assert.Equal(t, "Ibovespa opera em alta com otimismo externo", news[0].Title)
}

func TestFetchDailyTip(t *testing.T) {
	tests := []struct {
		name string
		tip  string
		err  error
		want string
	}{
		{"generated", "  Comece pela reserva de emergência.\n", nil, "Comece pela reserva de emergência."},
		{"empty answer", "", nil, EmptyTip},
		{"whitespace answer", "   ", nil, EmptyTip},
		{"error", "", errors.New("quota exceeded"), ErrorTip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(mockGenerator)
			gen.On("GenerateTip", mock.Anything).Return(tt.tip, tt.err).Once()

			got := NewGateway(gen, 0, logger.Nop()).FetchDailyTip(context.Background())

			assert.Equal(t, tt.want, got)
			gen.AssertExpectations(t)
		})
	}
}

func TestFetchDailyTip_Throttled(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("GenerateTip", mock.Anything).Return("Dica.", nil).Once()

	// one call per minute: the second call cannot be admitted within the timeout
	gateway := NewGateway(gen, 1, logger.Nop()).WithTimeout(50 * time.Millisecond)

	assert.Equal(t, "Dica.", gateway.FetchDailyTip(context.Background()))
	assert.Equal(t, ErrorTip, gateway.FetchDailyTip(context.Background()))
	gen.AssertNumberOfCalls(t, "GenerateTip", 1)
}

func TestGateway_ThrottledCallIsDelayed(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("GenerateNews", mock.Anything).Return(generated(5), nil).Once()
	gen.On("GenerateTip", mock.Anything).Return("Dica.", nil).Once()

	// 600 per minute: the second call waits about 100ms for its token
	gateway := NewGateway(gen, 600, logger.Nop()).WithTimeout(time.Second)

	news := gateway.FetchNews(context.Background())
	require.Len(t, news, contracts.NewsCount)
	assert.Equal(t, "news-0", news[0].ID)

	start := time.Now()
	assert.Equal(t, "Dica.", gateway.FetchDailyTip(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	gen.AssertExpectations(t)
}

func TestFetchNews_ThrottledPastDeadline(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("GenerateNews", mock.Anything).Return(generated(5), nil).Once()

	gateway := NewGateway(gen, 1, logger.Nop()).WithTimeout(50 * time.Millisecond)

	require.Len(t, gateway.FetchNews(context.Background()), contracts.NewsCount)
	assert.Equal(t, FallbackNews(), gateway.FetchNews(context.Background()))
	gen.AssertNumberOfCalls(t, "GenerateNews", 1)
}

func TestFetchNews_CancelledContext(t *testing.T) {
	gen := &FixtureGenerator{News: generated(5)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	news := NewGateway(gen, 0, logger.Nop()).FetchNews(ctx)

	assert.Equal(t, FallbackNews(), news)
}

func TestFixtureGenerator_DoesNotShareBacking(t *testing.T) {
	gen := &FixtureGenerator{News: generated(5), Tip: "Dica."}
	gateway := NewGateway(gen, 0, logger.Nop())

	first := gateway.FetchNews(context.Background())
	assert.Equal(t, "news-0", first[0].ID)
	assert.Empty(t, gen.News[0].ID)
	assert.Equal(t, "Dica.", gateway.FetchDailyTip(context.Background()))
}

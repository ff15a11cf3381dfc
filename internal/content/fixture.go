package content

import (
	"context"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
)

// FixtureGenerator serves canned content, used when no Gemini key is configured
type FixtureGenerator struct {
	News    []contracts.NewsArticle
	Tip     string
	NewsErr error
	TipErr  error
}

// GenerateNews returns a copy of News or NewsErr
func (f *FixtureGenerator) GenerateNews(ctx context.Context) ([]contracts.NewsArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.NewsErr != nil {
		return nil, f.NewsErr
	}
	return append([]contracts.NewsArticle(nil), f.News...), nil
}

// GenerateTip returns Tip or TipErr
func (f *FixtureGenerator) GenerateTip(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.TipErr != nil {
		return "", f.TipErr
	}
	return f.Tip, nil
}

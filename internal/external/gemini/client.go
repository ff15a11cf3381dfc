package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// DefaultModel is the generative model used for news and tips
const DefaultModel = "gemini-2.5-flash"

// NewsPrompt asks for five fictional but realistic B3 headlines as a JSON array
const NewsPrompt = `Você é um jornalista financeiro sênior do mercado brasileiro (B3).
Gere 5 notícias fictícias, porém realistas e impactantes, sobre o mercado financeiro atual (ações, inflação, juros, commodities, tecnologia).

Para cada notícia, forneça:
- title: Manchete impactante
- summary: Resumo curto de 2 frases
- category: Uma categoria curta (ex: MERCADO, TECH, COMMODITIES, POLITICA)

Responda APENAS em JSON no seguinte formato de array:
[
  {
    "title": "...",
    "summary": "...",
    "category": "..."
  }
]`

// TipPrompt asks for one short beginner investment tip
const TipPrompt = "Dê uma dica curta e única de investimento para iniciantes (máximo 15 palavras)."

// ErrNoText is returned when the model answers without any text part
var ErrNoText = errors.New("no text returned")

var newsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    {Type: genai.TypeString},
			"summary":  {Type: genai.TypeString},
			"category": {Type: genai.TypeString},
		},
		Required: []string{"title", "summary", "category"},
	},
}

// Client generates carousel news and tips through the Gemini API
// ⭐ SSOT: Gemini calls go through this client only
type Client struct {
	genai  *genai.Client
	model  string
	logger *logger.Logger
}

// NewClient creates a Gemini API client for apiKey
func NewClient(ctx context.Context, apiKey, model string, log *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		genai:  client,
		model:  model,
		logger: log,
	}, nil
}

// GenerateNews asks for the news array and parses it. IDs and images are left empty.
func (c *Client) GenerateNews(ctx context.Context) ([]contracts.NewsArticle, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(NewsPrompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   newsSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generate news: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, fmt.Errorf("generate news: %w", err)
	}

	articles, err := ParseNews(text)
	if err != nil {
		return nil, err
	}

	c.logger.WithField("articles", len(articles)).Debug("Generated news")
	return articles, nil
}

// GenerateTip asks for a short tip. An empty answer is returned as "".
func (c *Client) GenerateTip(ctx context.Context) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(TipPrompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate tip: %w", err)
	}

	text, err := responseText(resp)
	if errors.Is(err, ErrNoText) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("generate tip: %w", err)
	}

	return strings.TrimSpace(text), nil
}

type newsItem struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// ParseNews decodes a JSON array of {title, summary, category}
func ParseNews(text string) ([]contracts.NewsArticle, error) {
	var items []newsItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("parse news: %w", err)
	}

	articles := make([]contracts.NewsArticle, len(items))
	for i, item := range items {
		articles[i] = contracts.NewsArticle{
			Title:    item.Title,
			Summary:  item.Summary,
			Category: item.Category,
		}
	}
	return articles, nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoText
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	if sb.Len() == 0 {
		return "", ErrNoText
	}
	return sb.String(), nil
}

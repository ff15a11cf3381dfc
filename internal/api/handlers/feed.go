package handlers

import (
	"net/http"

	"github.com/CartagenesDev/cartagenes-finacias/internal/feed"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// FeedHandler serves the home screen: news, tip, ticker and rankings
// ⭐ SSOT: read-only home endpoints live here
type FeedHandler struct {
	board  *feed.Board
	logger *logger.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(board *feed.Board, log *logger.Logger) *FeedHandler {
	return &FeedHandler{
		board:  board,
		logger: log,
	}
}

// GetHome returns everything the home screen renders
// GET /api/home
func (h *FeedHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.board.Home())
}

// GetSnapshot returns the latest quote snapshot
// GET /api/market/snapshot
func (h *FeedHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		respondJSON(w, http.StatusOK, h.board.RefreshMarket(r.Context()))
		return
	}
	respondJSON(w, http.StatusOK, h.board.Ticker())
}

// GetRankings returns the lowest P/L and top dividend yield rankings
// GET /api/market/rankings
func (h *FeedHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.board.Rankings())
}

// GetNews returns the news carousel
// GET /api/content/news
func (h *FeedHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"news": h.board.News(),
	})
}

// GetTip returns the daily tip
// GET /api/content/tip
func (h *FeedHandler) GetTip(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"tip": h.board.Tip(),
	})
}

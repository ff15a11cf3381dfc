package handlers

import (
	"net/http"

	"github.com/CartagenesDev/cartagenes-finacias/internal/auth"
	"github.com/CartagenesDev/cartagenes-finacias/internal/view"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// NavigationHandler resolves view transitions against the current session
type NavigationHandler struct {
	store  *auth.Store
	logger *logger.Logger
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(store *auth.Store, log *logger.Logger) *NavigationHandler {
	return &NavigationHandler{
		store:  store,
		logger: log,
	}
}

// NavigationRequest asks to move from one view to another
type NavigationRequest struct {
	From  string     `json:"from"`
	To    string     `json:"to"`
	Event view.Event `json:"event"`
}

// Navigate returns the resulting transition. Blocked transitions are answered
// with 200 and the message to show.
// POST /api/navigation
func (h *NavigationHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Event == "" {
		req.Event = view.EventNavigate
	}

	user, err := h.store.CurrentUser(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load session")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	t := view.Apply(view.Parse(req.From), req.Event, view.Parse(req.To), user)
	respondJSON(w, http.StatusOK, t)
}

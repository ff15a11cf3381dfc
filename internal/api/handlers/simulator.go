package handlers

import (
	"fmt"
	"net/http"

	"github.com/CartagenesDev/cartagenes-finacias/internal/projection"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// MaxYears caps the horizon accepted over HTTP
const MaxYears = 100

// SimulatorHandler runs compound-interest projections
// ⭐ SSOT: simulator endpoints live here
type SimulatorHandler struct {
	logger *logger.Logger
}

// NewSimulatorHandler creates a new simulator handler
func NewSimulatorHandler(log *logger.Logger) *SimulatorHandler {
	return &SimulatorHandler{logger: log}
}

// ProjectResponse is the full simulator answer: summary, chart series and display strings
type ProjectResponse struct {
	Input     projection.Input           `json:"input"`
	Result    projection.Result          `json:"result"`
	Formatted projection.FormattedResult `json:"formatted"`
	Series    projection.Series          `json:"series"`
}

// QuickResponse is the quick calculator answer
type QuickResponse struct {
	Input     projection.Input           `json:"input"`
	Result    projection.Result          `json:"result"`
	Formatted projection.FormattedResult `json:"formatted"`
}

// Project runs the month-by-month projection
// POST /api/simulator/project
func (h *SimulatorHandler) Project(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readInput(w, r)
	if !ok {
		return
	}

	result, series, ok := projection.Project(in)
	if !ok {
		respondError(w, http.StatusBadRequest, projection.ErrInvalidInput.Error())
		return
	}

	fields := map[string]interface{}{
		"months": in.Months(),
		"rate":   in.AnnualRatePercent,
	}
	if user := UserFrom(r.Context()); user != nil {
		fields["user_id"] = user.ID
	}
	h.logger.WithFields(fields).Debug("Projection computed")

	respondJSON(w, http.StatusOK, ProjectResponse{
		Input:     in,
		Result:    result,
		Formatted: result.Formatted(),
		Series:    series,
	})
}

// Quick runs the nominal-rate quick calculator
// POST /api/simulator/quick
func (h *SimulatorHandler) Quick(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readInput(w, r)
	if !ok {
		return
	}

	result, ok := projection.ProjectSimple(in)
	if !ok {
		respondError(w, http.StatusBadRequest, projection.ErrInvalidInput.Error())
		return
	}

	respondJSON(w, http.StatusOK, QuickResponse{
		Input:     in,
		Result:    result,
		Formatted: result.Formatted(),
	})
}

func (h *SimulatorHandler) readInput(w http.ResponseWriter, r *http.Request) (projection.Input, bool) {
	var req projection.Input
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return projection.Input{}, false
	}

	in := projection.NewInput(req.InitialAmount, req.MonthlyContribution, req.AnnualRatePercent, req.Years)
	if err := validateInput(in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return projection.Input{}, false
	}

	return in, true
}

func validateInput(in projection.Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if in.Years > MaxYears {
		return fmt.Errorf("%w: years must be <= %d", projection.ErrInvalidInput, MaxYears)
	}
	return nil
}

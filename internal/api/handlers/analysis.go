package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/finscope/finscope/internal/screening"
	"github.com/finscope/finscope/pkg/logger"
)

// AnalysisHandler serves per-symbol valuation and health endpoints.
type AnalysisHandler struct {
	engine *screening.Engine
	logger *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(engine *screening.Engine, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{engine: engine, logger: log}
}

func symbolFrom(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(mux.Vars(r)["symbol"]))
}

// Valuation returns every valuation model result plus the aggregate.
// GET /api/v1/valuation/{symbol}
func (h *AnalysisHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	symbol := symbolFrom(r)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	results, summary, err := h.engine.Valuations(r.Context(), symbol)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  symbol,
		"models":  results,
		"summary": summary,
	})
}

// Health returns every financial-health score.
// GET /api/v1/health/{symbol}
func (h *AnalysisHandler) Health(w http.ResponseWriter, r *http.Request) {
	symbol := symbolFrom(r)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	scores, err := h.engine.Health(r.Context(), symbol)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"scores": scores,
	})
}

// Fundamentals returns the (cached) raw snapshot.
// GET /api/v1/fundamentals/{symbol}
func (h *AnalysisHandler) Fundamentals(w http.ResponseWriter, r *http.Request) {
	symbol := symbolFrom(r)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	f, err := h.engine.Fundamentals(r.Context(), symbol)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, f)
}

package handlers

import (
	"net/http"

	"github.com/finscope/finscope/internal/provider"
	"github.com/finscope/finscope/pkg/logger"
)

// MarketHandler serves raw market-data endpoints (quote, history, search).
type MarketHandler struct {
	provider provider.DataProvider
	logger   *logger.Logger
}

// NewMarketHandler creates a new market data handler.
func NewMarketHandler(p provider.DataProvider, log *logger.Logger) *MarketHandler {
	return &MarketHandler{provider: p, logger: log}
}

// Quote returns the current trading snapshot.
// GET /api/v1/quote/{symbol}
func (h *MarketHandler) Quote(w http.ResponseWriter, r *http.Request) {
	symbol := symbolFrom(r)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	quote, err := h.provider.Quote(r.Context(), symbol)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// History returns an OHLCV series.
// GET /api/v1/history/{symbol}?period=1y
func (h *MarketHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := symbolFrom(r)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	period := provider.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = provider.Period1Y
	}
	if err := period.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	candles, err := h.provider.History(r.Context(), symbol, period)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  symbol,
		"period":  string(period),
		"candles": candles,
	})
}

// Search performs a name-based symbol lookup.
// GET /api/v1/search?q=apple
func (h *MarketHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}

	results, err := h.provider.Search(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
	})
}

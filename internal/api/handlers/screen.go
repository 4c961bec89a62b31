package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/finscope/finscope/internal/screening"
	"github.com/finscope/finscope/pkg/logger"
)

// ScreenHandler serves screening runs and their exports.
type ScreenHandler struct {
	engine   *screening.Engine
	universe screening.Universe
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

// NewScreenHandler creates a new screening handler.
func NewScreenHandler(engine *screening.Engine, universe screening.Universe, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		engine:   engine,
		universe: universe,
		logger:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard UI is served from a different origin in
			// development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// parseParams builds the parameter set for a request, starting from the
// mode defaults and applying query overrides.
func (h *ScreenHandler) parseParams(r *http.Request) (screening.Mode, screening.Params, error) {
	modeStr := r.URL.Query().Get("mode")
	if modeStr == "" {
		modeStr = string(screening.ModeValue)
	}
	mode, err := screening.ParseMode(modeStr)
	if err != nil {
		return "", screening.Params{}, err
	}

	params := screening.DefaultParams(mode)
	if v := r.URL.Query().Get("min_market_cap"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinMarketCap = parsed
		}
	}
	if v := r.URL.Query().Get("max_market_cap"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			params.MaxMarketCap = parsed
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed < params.MaxResults {
			params.MaxResults = parsed
		}
	}

	return mode, params, nil
}

// Screen runs a synchronous screening pass.
// GET /api/v1/screen?mode=value&min_market_cap=...&limit=...
func (h *ScreenHandler) Screen(w http.ResponseWriter, r *http.Request) {
	mode, params, err := h.parseParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	candidates, err := h.engine.Screen(r.Context(), mode, h.universe, params, nil)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"mode":       string(mode),
		"count":      len(candidates),
		"candidates": candidates,
	})
}

// Export runs a screening pass and renders the flat CSV contract.
// GET /api/v1/screen/export?mode=value
func (h *ScreenHandler) Export(w http.ResponseWriter, r *http.Request) {
	mode, params, err := h.parseParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	candidates, err := h.engine.Screen(r.Context(), mode, h.universe, params, nil)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="screening_`+string(mode)+`.csv"`)
	if err := screening.WriteCSV(w, candidates); err != nil {
		h.logger.WithError(err).Error("CSV export failed")
	}
}

// Universe returns the built-in screening universe.
// GET /api/v1/universe
func (h *ScreenHandler) Universe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(h.universe),
		"universe": h.universe,
	})
}

// progressEvent is one websocket frame of a streamed screening run.
type progressEvent struct {
	Type       string                `json:"type"` // progress | result | error
	Done       int                   `json:"done,omitempty"`
	Total      int                   `json:"total,omitempty"`
	Symbol     string                `json:"symbol,omitempty"`
	Candidates []screening.Candidate `json:"candidates,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// ScreenWS runs a screening pass while streaming per-symbol progress.
// GET /api/v1/screen/ws?mode=value
func (h *ScreenHandler) ScreenWS(w http.ResponseWriter, r *http.Request) {
	mode, params, err := h.parseParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Single writer goroutine: progress callbacks fire from worker
	// goroutines, so they go through a channel instead of writing to the
	// connection directly.
	events := make(chan progressEvent, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for ev := range events {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}()

	progress := func(done, total int, symbol string) {
		select {
		case events <- progressEvent{Type: "progress", Done: done, Total: total, Symbol: symbol}:
		default:
			// Slow client; dropping a progress frame is fine.
		}
	}

	candidates, err := h.engine.Screen(r.Context(), mode, h.universe, params, progress)
	if err != nil {
		events <- progressEvent{Type: "error", Error: err.Error()}
	} else {
		events <- progressEvent{Type: "result", Candidates: candidates}
	}

	close(events)
	<-writerDone
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/finscope/finscope/internal/api/handlers"
	"github.com/finscope/finscope/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(screen *handlers.ScreenHandler, analysis *handlers.AnalysisHandler, market *handlers.MarketHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api/v1").Subrouter()

	// Screening
	api.HandleFunc("/screen", screen.Screen).Methods("GET")
	api.HandleFunc("/screen/export", screen.Export).Methods("GET")
	api.HandleFunc("/screen/ws", screen.ScreenWS).Methods("GET")
	api.HandleFunc("/universe", screen.Universe).Methods("GET")

	// Per-symbol analysis
	api.HandleFunc("/valuation/{symbol}", analysis.Valuation).Methods("GET")
	api.HandleFunc("/health/{symbol}", analysis.Health).Methods("GET")
	api.HandleFunc("/fundamentals/{symbol}", analysis.Fundamentals).Methods("GET")

	// Market data
	api.HandleFunc("/quote/{symbol}", market.Quote).Methods("GET")
	api.HandleFunc("/history/{symbol}", market.History).Methods("GET")
	api.HandleFunc("/search", market.Search).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "finscope-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/CartagenesDev/cartagenes-finacias/internal/api/handlers"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// Handlers bundles every endpoint group mounted by NewRouter
type Handlers struct {
	Feed       *handlers.FeedHandler
	Simulator  *handlers.SimulatorHandler
	Auth       *handlers.AuthHandler
	Navigation *handlers.NavigationHandler
	Ticker     *handlers.TickerHandler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Home
	api.HandleFunc("/home", h.Feed.GetHome).Methods("GET")
	api.HandleFunc("/market/snapshot", h.Feed.GetSnapshot).Methods("GET")
	api.HandleFunc("/market/rankings", h.Feed.GetRankings).Methods("GET")
	api.HandleFunc("/content/news", h.Feed.GetNews).Methods("GET")
	api.HandleFunc("/content/tip", h.Feed.GetTip).Methods("GET")

	// Simulator (the full projection needs a verified session)
	api.Handle("/simulator/project", h.Auth.RequireVerified(http.HandlerFunc(h.Simulator.Project))).Methods("POST")
	api.HandleFunc("/simulator/quick", h.Simulator.Quick).Methods("POST")

	// Auth
	api.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/verify-email", h.Auth.VerifyEmail).Methods("POST")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/login/google", h.Auth.LoginGoogle).Methods("POST")
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")
	api.HandleFunc("/auth/reset-password", h.Auth.ResetPassword).Methods("POST")
	api.HandleFunc("/auth/me", h.Auth.Me).Methods("GET")

	// Navigation
	api.HandleFunc("/navigation", h.Navigation.Navigate).Methods("POST")

	// Ticker stream
	r.HandleFunc("/ws/ticker", h.Ticker.Stream).Methods("GET")

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
		"service": "cartagenes-api",
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// websocket upgrades need the original writer (http.Hijacker)
			if r.URL.Path == "/ws/ticker" {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
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

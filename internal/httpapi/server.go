package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"matchd/internal/engine"
	"matchd/internal/hub"
	"matchd/pkg/types"
)

// Service defines the lifecycle operations required by the HTTP API layer.
// Implemented by *engine.Engine.
type Service interface {
	CreateMatch(teamA, teamB string) (types.Match, error)
	StartMatch(id string) (types.Match, error)
	StopMatch(id string)
	SeedMatches() ([]types.Match, error)
	ListMatches() []types.Match
	GetMatch(id string) (types.Match, bool)
	MatchEvents(id string) ([]types.MatchEvent, bool)
	Ready() bool
}

// Streams defines the subscription surface required by the streaming
// endpoints. Implemented by *hub.Hub.
type Streams interface {
	Subscribe(matchID string) (*hub.Subscription, error)
}

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
}

func NewMux(svc Service, streams Streams) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		origins := corsAllowedOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/matches", func(w http.ResponseWriter, r *http.Request) {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			var req types.CreateMatchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			if strings.TrimSpace(req.TeamA) == "" || strings.TrimSpace(req.TeamB) == "" {
				writeJSONError(w, http.StatusBadRequest, "teamA and teamB are required")
				return
			}
			m, err := svc.CreateMatch(req.TeamA, req.TeamB)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, http.StatusCreated, m)
		})

		r.Post("/matches/{id}/start", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			m, err := svc.StartMatch(id)
			if err != nil {
				switch {
				case engine.IsMatchNotFound(err):
					writeJSONError(w, http.StatusNotFound, "match not found")
				case engine.IsInvalidTransition(err):
					writeJSONError(w, http.StatusConflict, err.Error())
				default:
					writeJSONError(w, http.StatusInternalServerError, err.Error())
				}
				return
			}
			writeJSON(w, http.StatusOK, m)
		})

		r.Post("/matches/{id}/stop", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if _, ok := svc.GetMatch(id); !ok {
				writeJSONError(w, http.StatusNotFound, "match not found")
				return
			}
			svc.StopMatch(id)
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/seed", func(w http.ResponseWriter, r *http.Request) {
			created, err := svc.SeedMatches()
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, http.StatusCreated, created)
		})
	})

	r.Route("/matches", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.ListMatches())
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			m, ok := svc.GetMatch(chi.URLParam(r, "id"))
			if !ok {
				writeJSONError(w, http.StatusNotFound, "match not found")
				return
			}
			writeJSON(w, http.StatusOK, m)
		})

		r.Get("/{id}/events", func(w http.ResponseWriter, r *http.Request) {
			evs, ok := svc.MatchEvents(chi.URLParam(r, "id"))
			if !ok {
				writeJSONError(w, http.StatusNotFound, "match not found")
				return
			}
			if evs == nil {
				evs = []types.MatchEvent{}
			}
			writeJSON(w, http.StatusOK, evs)
		})

		r.Get("/{id}/events/stream", streamSSE(streams))
		r.Get("/{id}/events/ws", streamWS(streams))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("shutting down"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && zlog != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}

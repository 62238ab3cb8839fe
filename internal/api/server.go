// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nicodishanthj/locache/internal/common"
	"github.com/nicodishanthj/locache/internal/lookup"
	"github.com/nicodishanthj/locache/internal/ratelimit"
	"github.com/nicodishanthj/locache/internal/sqlite"
)

// Server wires the HTTP surface onto the lookup orchestrator, the store,
// and the per-instance rate limiter and request counter.
type Server struct {
	router   chi.Router
	store    *sqlite.Store
	lookups  *lookup.Orchestrator
	limiter  *ratelimit.Limiter
	requests *ratelimit.Counter
	registry *prometheus.Registry
	now      func() time.Time
}

// NewServer constructs the Server and registers its routes and gauges.
func NewServer(store *sqlite.Store, orch *lookup.Orchestrator, limiter *ratelimit.Limiter, requests *ratelimit.Counter) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	if orch == nil {
		return nil, fmt.Errorf("lookup orchestrator required")
	}
	if limiter == nil {
		return nil, fmt.Errorf("rate limiter required")
	}
	if requests == nil {
		return nil, fmt.Errorf("request counter required")
	}
	srv := &Server{
		router:   chi.NewRouter(),
		store:    store,
		lookups:  orch,
		limiter:  limiter,
		requests: requests,
		registry: prometheus.NewRegistry(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	if err := srv.registerGauges(); err != nil {
		return nil, err
	}
	srv.routes()
	common.Logger().Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			s.requests.Record(s.now())
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthcheck", s.handleHealthcheck)
	s.router.Get("/check", s.handleCheck)
	s.router.Post("/add", s.handleAdd)
	s.router.Get("/metrics", s.rateLimited(s.handleMetrics))
	s.router.Get("/metrics.json", s.rateLimited(s.handleMetricsJSON))
	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) registerGauges() error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "locache",
			Name:      "cached_users",
			Help:      "Number of usernames with a cached location.",
		}, s.cachedUsers),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "locache",
			Name:      "requests_last_10_minutes",
			Help:      "Inbound requests observed in the trailing request window.",
		}, func() float64 {
			return float64(s.requests.Count(s.now()))
		}),
	}
	for _, gauge := range gauges {
		if err := s.registry.Register(gauge); err != nil {
			return fmt.Errorf("register gauge: %w", err)
		}
	}
	return nil
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

// rateLimited guards a handler with the sliding-window limiter, keyed by
// client address.
func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !s.limiter.Admit(key, s.now()) {
			common.Logger().Warn("api: rate limit rejection", "key", key, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, lookup.ErrRateLimited)
			return
		}
		next(w, r)
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// statusForError maps the lookup error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, lookup.ErrBlankUsername):
		return http.StatusBadRequest
	case errors.Is(err, lookup.ErrLocationNotAllowed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, lookup.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lookup.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, lookup.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, lookup.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

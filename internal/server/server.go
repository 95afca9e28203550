// Package server provides the HTTP REST API over analysis history and the test checklist.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/placement-readiness/internal/checklist"
	"github.com/jonathan/placement-readiness/internal/fetch"
	"github.com/jonathan/placement-readiness/internal/history"
	"github.com/jonathan/placement-readiness/internal/ingestion"
	"github.com/jonathan/placement-readiness/internal/logger"
	"github.com/jonathan/placement-readiness/internal/metrics"
	"github.com/jonathan/placement-readiness/internal/server/middleware"
	"github.com/jonathan/placement-readiness/internal/server/ratelimit"
	"github.com/jonathan/placement-readiness/internal/storage"
)

// maxBodyBytes bounds request bodies; job descriptions are the largest payload.
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	history     *history.Store
	checklist   *checklist.Store
	rateLimiter *ratelimit.Limiter
	urlOpts     ingestion.URLOptions
	log         zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port         int
	Backend      storage.Backend
	HistoryKey   string
	HistoryLimit int
	ChecklistKey string
	// UseBrowser enables headless rendering of thin job posting pages.
	UseBrowser bool
	Logger     zerolog.Logger
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	// Getter overrides the cached HTTP fetcher used for jd_url.
	Getter fetch.Getter
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Backend == nil {
		return nil, errors.New("server requires a storage backend")
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		history: history.New(cfg.Backend,
			history.WithKey(cfg.HistoryKey),
			history.WithLimit(cfg.HistoryLimit),
			history.WithLogger(cfg.Logger),
		),
		checklist:   checklist.New(cfg.Backend, checklist.WithKey(cfg.ChecklistKey), checklist.WithLogger(cfg.Logger)),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		log:         cfg.Logger,
	}

	s.urlOpts.Getter = cfg.Getter
	if s.urlOpts.Getter == nil {
		s.urlOpts.Getter = fetch.NewCached(fetch.New(fetch.WithLogger(cfg.Logger)), cfg.Backend, fetch.DefaultCacheTTL, cfg.Logger)
	}
	if cfg.UseBrowser {
		s.urlOpts.Renderer = fetch.NewRenderer(cfg.Logger)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /analyses", s.handleCreateAnalysis)
	mux.HandleFunc("POST /analyses/stream", s.handleCreateAnalysisStream)
	mux.HandleFunc("GET /analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("PATCH /analyses/{id}/confidence", s.handleUpdateConfidence)
	mux.HandleFunc("DELETE /analyses/{id}", s.handleDeleteAnalysis)
	mux.HandleFunc("DELETE /analyses", s.handleClearAnalyses)

	mux.HandleFunc("GET /test-checklist", s.handleGetChecklist)
	mux.HandleFunc("POST /test-checklist/{id}/toggle", s.handleToggleChecklistItem)
	mux.HandleFunc("DELETE /test-checklist", s.handleResetChecklist)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.wrap(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // browser rendering of jd_url can be slow
		IdleTimeout:  60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return s.log.WithContext(context.Background())
		},
	}

	return s, nil
}

func (s *Server) wrap(h http.Handler) http.Handler {
	return middleware.RequestID(middleware.Logging(s.withRateLimit(s.withCORS(h))))
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until ctx is done or the process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exhausted their bucket with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		if d.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		}
		if !d.Allowed {
			retry := int(d.RetryAfter.Round(time.Second).Seconds())
			retry = max(retry, 1)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate limit exceeded, try again later",
				"retry_after": retry,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP without port.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status and a client-safe message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	s.errorResponse(w, status, publicMessage(err))
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

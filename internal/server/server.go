package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/export"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
	shutdownGrace = 30 * time.Second

	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 64
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       Store
	analyzer    *pipeline.Analyzer
	users       *UserService
	sessions    *SessionService
	exporters   *export.Registry
	archive     Archiver
	metrics     *metrics.Manager
	rateLimiter *ratelimit.Limiter
	renderer    *renderer
	logger      *zap.Logger

	maxUploadBytes int64
	importEnabled  bool
}

// Config holds server dependencies and settings
type Config struct {
	Addr           string
	Store          Store
	Analyzer       *pipeline.Analyzer
	Passwords      *config.PasswordConfig
	Sessions       *config.SessionConfig
	Exporters      *export.Registry
	Archive        Archiver
	Metrics        *metrics.Manager
	RateLimiter    *ratelimit.Limiter
	Logger         *zap.Logger
	MaxUploadBytes int64
	// ImportEnabled shows the job posting URL field on the upload page.
	ImportEnabled bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server requires a store")
	}
	if cfg.Analyzer == nil {
		return nil, errors.New("server requires an analyzer")
	}
	if cfg.Passwords == nil || cfg.Sessions == nil {
		return nil, errors.New("server requires password and session configuration")
	}
	if cfg.Exporters == nil {
		cfg.Exporters = export.DefaultRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}

	rnd, err := newRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:          cfg.Store,
		analyzer:       cfg.Analyzer,
		users:          NewUserService(cfg.Store, cfg.Passwords),
		sessions:       NewSessionService(cfg.Sessions),
		exporters:      cfg.Exporters,
		archive:        cfg.Archive,
		metrics:        cfg.Metrics,
		rateLimiter:    cfg.RateLimiter,
		renderer:       rnd,
		logger:         cfg.Logger,
		maxUploadBytes: cfg.MaxUploadBytes,
		importEnabled:  cfg.ImportEnabled,
	}

	mux := http.NewServeMux()
	s.routes(mux)

	s.handler = s.withRecovery(s.withLogging(s.withMetrics(s.withRateLimit(mux))))
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second, // job posting import may launch a browser
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// routes registers every page. Session wrappers run inside the mux so that
// outer middleware still observes the matched pattern.
func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
	})

	// Accounts
	mux.Handle("GET /login", s.public(s.handleLoginChoice))
	mux.Handle("GET /register", s.public(s.handleRegisterChoice))
	mux.Handle("GET /login/{role}", s.public(s.handleLoginPage))
	mux.Handle("POST /login/{role}", s.public(s.handleLogin))
	mux.Handle("GET /register/{role}", s.public(s.handleRegisterPage))
	mux.Handle("POST /register/{role}", s.public(s.handleRegister))
	mux.Handle("GET /logout", s.public(s.handleLogout))
	mux.Handle("GET /profile", s.user(s.handleProfilePage))
	mux.Handle("POST /profile", s.user(s.handleProfileUpdate))

	// Analysis
	mux.Handle("GET /upload", s.user(s.handleUploadPage))
	mux.Handle("POST /analyze/", s.user(s.handleAnalyze))
	mux.Handle("GET /dashboard", s.user(s.handleDashboard))
	mux.Handle("GET /download-report", s.user(s.handleDownloadReport))

	// Documents
	mux.Handle("GET /ats-resume", s.jobSeeker(s.handleATSResumePage))
	mux.Handle("POST /ats-resume", s.jobSeeker(s.handleATSResume))
	mux.Handle("GET /cover-letter", s.jobSeeker(s.handleCoverLetterPage))
	mux.Handle("POST /cover-letter", s.jobSeeker(s.handleCoverLetter))
	for _, d := range documents {
		mux.Handle("GET /download-"+d.slug, s.user(s.handleDownloadText(d)))
		mux.Handle("GET /download-"+d.slug+"-pdf", s.user(s.handleDownloadRendered(d, export.FormatPDF)))
		mux.Handle("GET /download-"+d.slug+"-docx", s.user(s.handleDownloadRendered(d, export.FormatDOCX)))
	}

	// Applications
	mux.Handle("GET /applications", s.jobSeeker(s.handleApplicationsPage))
	mux.Handle("POST /applications", s.jobSeeker(s.handleCreateApplication))

	// Ops
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

func (s *Server) public(h http.HandlerFunc) http.Handler {
	return middleware.Session(s.sessions)(h)
}

func (s *Server) user(h http.HandlerFunc) http.Handler {
	return middleware.Session(s.sessions)(middleware.RequireUser(loginPath)(h))
}

func (s *Server) jobSeeker(h http.HandlerFunc) http.Handler {
	return middleware.Session(s.sessions)(
		middleware.RequireUser(loginPath)(
			middleware.RequireRole(types.RoleJobSeeker, dashboardPath)(h)))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.logger.Info("server stopped")
	return nil
}

// statusWriter wraps http.ResponseWriter to capture status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func wrapStatus(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

// withRecovery turns a handler panic into a logged 500.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := wrapStatus(w)
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("panic in handler",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"))
				if !sw.wroteHeader {
					http.Error(sw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}
		}()
		next.ServeHTTP(sw, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		sw := wrapStatus(w)
		next.ServeHTTP(sw, r)
		s.logger.Info("request",
			zap.String(logger.FieldRequestID, requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// withMetrics records request counts and latency by matched route.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := wrapStatus(w)
		next.ServeHTTP(sw, r)
		s.metrics.RecordHTTPRequest(routeLabel(r.Pattern), r.Method, sw.status, time.Since(start))
	})
}

// routeLabel strips the method from a mux pattern: "GET /dashboard" -> "/dashboard".
func routeLabel(pattern string) string {
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds())
		if retry < 1 {
			retry = 1
		}
		response["retry_after"] = retry
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/vidsense/internal/client"
)

const (
	// DefaultListenAddress binds to loopback only.
	DefaultListenAddress = "127.0.0.1:8080"

	// DefaultTitle is the page title.
	DefaultTitle = "Video Sentiment Analysis"

	// maxRequestBody limits analyze request bodies. A request carries one
	// URL and one flag.
	maxRequestBody = 64 * 1024

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

// Backend is the analysis backend as seen by the server.
// *client.Client implements it.
type Backend interface {
	Forward(ctx context.Context, body []byte) (int, []byte, error)
	Health(ctx context.Context) (client.HealthStatus, error)
}

// Server serves the browser form and proxies analysis requests.
type Server struct {
	addr            string
	backend         Backend
	logger          *slog.Logger
	metrics         *Metrics
	title           string
	contentAnalysis bool
	handler         http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		if title != "" {
			s.title = title
		}
	}
}

// WithContentAnalysis sets the initial state of the content analysis
// checkbox. It is checked by default.
func WithContentAnalysis(checked bool) Option {
	return func(s *Server) {
		s.contentAnalysis = checked
	}
}

// WithMetrics uses m instead of a new Metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New creates a Server listening on addr and forwarding to backend.
// An empty addr means DefaultListenAddress.
func New(addr string, backend Backend, opts ...Option) *Server {
	if addr == "" {
		addr = DefaultListenAddress
	}
	s := &Server{
		addr:            addr,
		backend:         backend,
		logger:          slog.Default(),
		title:           DefaultTitle,
		contentAnalysis: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	s.handler = Logging(s.logger, Instrument(s.metrics, mux))
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the server's HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
// In-flight analyses get shutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting web server", "addr", "http://"+ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down web server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down web server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, pageData{
		Title:           s.title,
		AnalyzePath:     "/analyze",
		ContentAnalysis: s.contentAnalysis,
	})
	if err != nil {
		s.logger.Error("template execution failed", "error", err, "remote", r.RemoteAddr)
	}
}

// handleAnalyze forwards the request body to the backend and relays the
// backend's status and body unchanged.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		s.metrics.analysesTotal.WithLabelValues(outcomeBadRequest).Inc()
		s.respondDetail(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}
	if !json.Valid(body) {
		s.metrics.analysesTotal.WithLabelValues(outcomeBadRequest).Inc()
		s.respondDetail(w, http.StatusBadRequest, "Request body is not valid JSON.")
		return
	}

	s.metrics.analysesInFlight.Inc()
	start := time.Now()
	status, payload, err := s.backend.Forward(r.Context(), body)
	s.metrics.analysisDuration.Observe(time.Since(start).Seconds())
	s.metrics.analysesInFlight.Dec()

	if err != nil {
		s.metrics.analysesTotal.WithLabelValues(outcomeTransportError).Inc()
		s.logger.Error("analysis backend request failed", "error", err, "remote", r.RemoteAddr)
		if errors.Is(err, client.ErrBodyTooLarge) {
			s.respondDetail(w, http.StatusBadGateway, "Analysis report is too large.")
			return
		}
		s.respondDetail(w, http.StatusBadGateway, "Analysis backend is unavailable.")
		return
	}

	if status >= 200 && status <= 299 {
		s.metrics.analysesTotal.WithLabelValues(outcomeSuccess).Inc()
	} else {
		s.metrics.analysesTotal.WithLabelValues(outcomeBackendError).Inc()
		s.logger.Warn("analysis backend returned an error", "status", status, "remote", r.RemoteAddr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		s.logger.Error("failed to write response", "error", err, "remote", r.RemoteAddr)
	}
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// handleHealth reports "ok" when the backend is healthy and "degraded"
// otherwise. The server itself is up in both cases.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, err := s.backend.Health(r.Context())
	resp := healthResponse{Status: "ok", Backend: status.String()}
	code := http.StatusOK
	if status != client.HealthOK {
		s.logger.Warn("analysis backend health check failed", "status", status.String(), "error", err)
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	s.respondJSON(w, code, resp)
}

// respondDetail writes an error body in the backend's format, so that the
// page shows it like a backend error.
func (s *Server) respondDetail(w http.ResponseWriter, code int, detail string) {
	s.respondJSON(w, code, struct {
		Detail string `json:"detail"`
	}{Detail: detail})
}

func (s *Server) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

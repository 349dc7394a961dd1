// Package server exposes the start operation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imamik/gamehost/internal/orchestrator"
	"github.com/imamik/gamehost/internal/render"
)

// DefaultStartTimeout bounds a single start request.
const DefaultStartTimeout = 20 * time.Second

// Result labels of gamehost_start_requests_total.
const (
	resultResolved    = "resolved"
	resultFailed      = "failed"
	resultUnavailable = "template_unavailable"
)

// Starter runs one start attempt.
type Starter interface {
	Start(ctx context.Context) orchestrator.Result
}

// PageRenderer fills the page template.
type PageRenderer interface {
	Render(ctx context.Context, title, content string) (render.Page, error)
}

// Server serves the start endpoint.
type Server struct {
	starter      Starter
	renderer     PageRenderer
	log          logr.Logger
	registry     *prometheus.Registry
	metrics      *Metrics
	startTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithRegistry registers metrics with reg and serves it on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithStartTimeout overrides DefaultStartTimeout.
func WithStartTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.startTimeout = d
	}
}

// New creates a Server.
func New(starter Starter, renderer PageRenderer, opts ...Option) *Server {
	s := &Server{
		starter:      starter,
		renderer:     renderer,
		log:          logr.Discard(),
		startTimeout: DefaultStartTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleStart)
	r.Get("/start", s.handleStart)
	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.startTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.startTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	log := s.log.WithValues("requestID", middleware.GetReqID(r.Context()))
	started := time.Now()

	startCtx, cancel := context.WithTimeout(r.Context(), s.startTimeout)
	res := s.starter.Start(startCtx)
	cancel()

	var (
		title, content string
		err            error
		result         string
	)
	switch v := res.(type) {
	case orchestrator.Resolved:
		result = resultResolved
		title = render.SuccessTitle
		content, err = render.SuccessContent(v.PublicAddress, v.Description)
	case orchestrator.Failed:
		result = resultFailed
		title = render.FailureTitle
		content, err = render.FailureContent(v.Err)
	default:
		result = resultFailed
		title = render.FailureTitle
		content, err = render.FailureContent(errors.New("start produced no result"))
	}
	if err != nil {
		log.Error(err, "failed to render page content")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page, err := s.renderer.Render(r.Context(), title, content)
	if err != nil {
		s.metrics.recordTemplateFailure()
		s.metrics.recordStart(resultUnavailable, time.Since(started).Seconds())
		log.Error(err, "template unavailable")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.metrics.recordStart(result, time.Since(started).Seconds())
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page.Body))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		s.log.V(1).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(started).String(),
			"requestID", middleware.GetReqID(r.Context()),
		)
	})
}

// Package server exposes the mockup customizer over HTTP.
//
// Every project lives in an in-memory session addressed by its ID. The
// routes mirror the operations of the editor: garment settings, per-zone
// artwork and sliders, pointer drags, the live SVG preview, bitmap export,
// the AI try-on and the quote link. Errors are returned as JSON
// {"code": ..., "message": ...} with a status derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/furiarock/mockstudio/pkg/compose"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/render/sink"
	"github.com/furiarock/mockstudio/pkg/session"
	"github.com/furiarock/mockstudio/pkg/tryon"
)

const (
	// JanitorInterval is how often expired sessions are swept.
	JanitorInterval = 5 * time.Minute

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server handles the HTTP API.
type Server struct {
	Logger   *log.Logger
	Store    *session.MemoryStore
	Exporter *compose.Exporter

	// TryOn is nil when no API key is configured. Try-on requests then
	// fail with UNAUTHORIZED.
	TryOn *tryon.Service

	// DefaultFormat is used when an export names no format.
	DefaultFormat sink.Format

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithTryOn enables the try-on endpoint.
func WithTryOn(t *tryon.Service) Option { return func(s *Server) { s.TryOn = t } }

// WithDefaultFormat sets the export format used when none is requested.
func WithDefaultFormat(f sink.Format) Option { return func(s *Server) { s.DefaultFormat = f } }

// New creates a server. A nil store gets one with the default TTL; a nil
// exporter renders without a cache.
func New(store *session.MemoryStore, exporter *compose.Exporter, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = session.NewMemoryStore(session.DefaultTTL)
	}
	if exporter == nil {
		exporter = compose.NewExporter(nil, nil, logger)
	}
	s := &Server{
		Logger:        logger,
		Store:         store,
		Exporter:      exporter,
		DefaultFormat: sink.FormatPNG,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is canceled, then shuts down gracefully.
// Expired sessions are swept in the background while it runs.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.Store.RunJanitor(ctx, JanitorInterval, func(n int) {
		s.Logger.Debug("expired sessions removed", "count", n, "remaining", s.Store.Len())
	})

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", addr)
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}

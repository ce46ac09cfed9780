// Package server is the railway HTTP entrypoint. It owns the listening
// socket, applies the global middleware, serves the root greeting and
// mounts the admin and user route groups under their prefixes.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/en9inerd/railway-server/config"
	"github.com/en9inerd/railway-server/httperrors"
	"github.com/en9inerd/railway-server/middleware"
	"github.com/en9inerd/railway-server/router"
)

// Greeting is the body served at GET /.
const Greeting = "Hello! Server is running!"

// Mount pairs a path prefix with the handler that owns everything below it.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Options is the complete, immutable description of a server. Build it
// once and pass it to New; every Server gets its own mux, so any number of
// them can coexist in one process.
type Options struct {
	Port int

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	MaxJSONBodyBytes int64
	TrustedProxies   []string
	MaxInFlight      int
	HealthPath       string

	// Mounts are registered in order; a repeated prefix replaces the
	// earlier handler.
	Mounts []Mount
}

// OptionsFromConfig copies the loaded configuration into Options.
func OptionsFromConfig(cfg *config.Config, mounts ...Mount) Options {
	return Options{
		Port:              cfg.Port,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		MaxJSONBodyBytes:  cfg.Server.MaxJSONBodyBytes,
		TrustedProxies:    slices.Clone(cfg.Server.TrustedProxies),
		MaxInFlight:       cfg.Server.MaxInFlight,
		HealthPath:        cfg.Server.HealthPath,
		Mounts:            slices.Clone(mounts),
	}
}

// Server is a configured, not yet listening, railway HTTP server.
type Server struct {
	opts    Options
	logger  *slog.Logger
	handler *router.Group
}

// New builds the handler tree described by opts. Nothing is bound until
// Run or Serve is called.
func New(opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		opts:    opts,
		logger:  logger,
		handler: router.New(http.NewServeMux()),
	}
	s.configureMiddleware()
	s.handler.Route(func(r *router.Group) {
		s.registerRootRoute(r)

		// the in-flight cap covers the route groups only, so the greeting
		// and 404s still answer on a saturated server
		groups := r.With(middleware.MaxInFlight(opts.MaxInFlight, logger))
		for _, m := range opts.Mounts {
			s.mountRouteGroup(groups, m.Prefix, m.Handler)
		}
	})
	return s
}

// configureMiddleware must run before any route is registered; the router
// panics otherwise.
func (s *Server) configureMiddleware() {
	s.handler.Use(
		middleware.Logger(s.logger),
		middleware.Recoverer(s.logger, false),
		middleware.RealIP(s.opts.TrustedProxies),
		middleware.Health(s.opts.HealthPath),
		middleware.JSONBody(s.opts.MaxJSONBodyBytes, s.logger),
	)
	s.handler.NotFoundHandler(func(w http.ResponseWriter, r *http.Request) {
		httperrors.NotFound(r).WriteJSON(w)
	})
}

func (s *Server) registerRootRoute(r *router.Group) {
	r.HandleFunc("GET /", handleRoot)
}

func (s *Server) mountRouteGroup(g *router.Group, prefix string, h http.Handler) {
	g.MountHandler(prefix, h)
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, Greeting)
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the address Run binds.
func (s *Server) Addr() string {
	return ":" + strconv.Itoa(s.opts.Port)
}

// Run binds the configured port and serves until ctx is cancelled. A bind
// failure is returned immediately, before any traffic is accepted.
func (s *Server) Run(ctx context.Context) error {
	if s.opts.Port < 1 || s.opts.Port > 65535 {
		return fmt.Errorf("invalid port %d", s.opts.Port)
	}
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		ReadTimeout:       s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       s.opts.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("server running", "addr", ln.Addr().String(), "mounts", s.handler.Mounts())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.opts.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

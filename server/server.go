package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/poiesic/conceptmap/query"
)

const defaultAddr = ":8080"

// Server serves the knowledge graph HTTP API.
type Server struct {
	echo    *echo.Echo
	service *query.Service
	addr    string
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithAddr sets the listen address.
// Default is ":8080".
func WithAddr(addr string) Option {
	return func(s *Server) error {
		if addr != "" {
			s.addr = addr
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates an HTTP server over the query service.
func NewServer(service *query.Service, opts ...Option) (*Server, error) {
	if service == nil {
		return nil, ErrQueryServiceRequired
	}

	s := &Server{
		service: service,
		addr:    defaultAddr,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/graph", s.handleGraph)
	e.GET("/graph/expand", s.handleExpand)
	e.GET("/search", s.handleSearch)

	s.echo = e
	return s, nil
}

// Start listens on the configured address and blocks until the server
// stops. It returns nil after a clean Shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.addr)
	err := s.echo.Start(s.addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully, waiting for in-flight requests
// until the context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.echo.Shutdown(ctx)
}

// Handler returns the underlying HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

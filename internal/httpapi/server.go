// Package httpapi exposes the schema store as a small REST service: the
// server half of the contract the store.RESTStore client speaks.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Controller registers a group of routes on the server's mux.
type Controller interface {
	AddRoutes(router *http.ServeMux)
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithAddr overrides the listen address (default ":8080").
func WithAddr(addr string) ServerOption {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithLogger injects the request logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAllowedOrigins sets the CORS origin allow-list. Defaults to "*" so the
// service works behind a gateway that enforces its own policy.
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// Server wraps http.Server with CORS and request logging middleware.
type Server struct {
	addr    string
	logger  *zap.Logger
	origins []string
	server  *http.Server
}

// NewServer assembles the mux from the given controllers.
func NewServer(controllers []Controller, options ...ServerOption) *Server {
	s := &Server{
		addr:    ":8080",
		logger:  zap.NewNop(),
		origins: []string{"*"},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	router := http.NewServeMux()
	router.Handle("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		replyJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	for _, controller := range controllers {
		controller.AddRoutes(router)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           c.Handler(s.loggingMiddleware(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the assembled handler chain, used by tests and embedders.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("schema service listening", zap.String("addr", s.addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("elapsed", time.Since(started)),
		)
	})
}

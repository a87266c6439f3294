package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/opencatalog/searchsync/internal/model"
	loggerpkg "github.com/opencatalog/searchsync/internal/pkg/logger"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
	"github.com/opencatalog/searchsync/internal/service/reindex"
)

const (
	defaultShutdownTimeout = 10 * time.Second
)

// ReindexService is the orchestration surface the HTTP server exposes.
type ReindexService interface {
	Submit(ctx context.Context, req *reindex.ReindexRequest) (*model.JobRecord, error)
	LastStatus(ctx context.Context, mode model.RunMode) (*model.JobRecord, error)
}

// Authorizer guards the reindex submission route.
type Authorizer interface {
	Authorize(r *http.Request) error
}

// Server implements the HTTP server.
type Server struct {
	tp               trace.Tracer
	logger           *zap.Logger
	authz            Authorizer
	svc              ReindexService
	httpServer       *http.Server
	requestBodyLimit int64
}

// Config represents the configuration of the HTTP server.
type Config struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestBodyLimit  int64
}

// New creates a new HTTP server.
func New(ctx context.Context, cfg *Config, authz Authorizer, svc ReindexService) *Server {
	srv := &Server{
		tp:     otel.Tracer(svcpkg.Info().GetName()),
		logger: loggerpkg.FromContext(ctx),
		authz:  authz,
		svc:    svc,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			// Request contexts inherit the process context so handlers see
			// the process-wide logger and trace providers.
			BaseContext: func(net.Listener) context.Context {
				return ctx
			},
		},
		requestBodyLimit: cfg.RequestBodyLimit,
	}

	router := http.NewServeMux()
	srv.registerRoutes(router)
	srv.httpServer.Handler = srv.withObservabilityMiddleware(router)
	return srv
}

// registerRoutes registers the HTTP routes.
func (s *Server) registerRoutes(router *http.ServeMux) {
	router.HandleFunc(
		"/healthz",
		withMethodMiddleware(
			http.MethodGet,
			s.handleHealthz,
		),
	)
	router.HandleFunc(
		"/v1/search/reindex",
		withMethodMiddleware(
			http.MethodPost,
			withAuthorizationMiddleware(
				s.authz,
				withRequestBodyLimitMiddleware(
					s.requestBodyLimit,
					s.handleReindex,
				),
			),
		),
	)
	router.HandleFunc(
		"/v1/search/reindex/status/",
		withMethodMiddleware(
			http.MethodGet,
			s.handleReindexStatus,
		),
	)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
			os.Exit(1)
		}
	}()

	sig := <-sigChan
	fmt.Fprintf(os.Stdout, "Received signal: %v\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server shutdown failed: %v\n", err)
		return err
	}

	fmt.Fprintf(os.Stdout, "Server gracefully stopped")
	return nil
}

// Package http provides the HTTP servers for the node agent: the API server
// carrying token issuance and container sessions, and the metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/allisson/containertoken/internal/config"
	containerHTTP "github.com/allisson/containertoken/internal/container/http"
	containerUseCase "github.com/allisson/containertoken/internal/container/usecase"
	"github.com/allisson/containertoken/internal/metrics"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
	tokenHTTP "github.com/allisson/containertoken/internal/token/http"
	tokenUseCase "github.com/allisson/containertoken/internal/token/usecase"
)

// APIServer serves the token issuance and container session API.
type APIServer struct {
	server      *http.Server
	logger      *slog.Logger
	cancelReady context.CancelFunc
}

// NewAPIServer assembles the Gin router and wraps it in an http.Server.
// meterProvider may be nil when metrics are disabled.
func NewAPIServer(
	cfg *config.Config,
	logger *slog.Logger,
	tokens tokenUseCase.TokenUseCase,
	containers containerUseCase.ContainerUseCase,
	meterProvider otelmetric.MeterProvider,
) *APIServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// The readiness probe flips to not ready once shutdown starts.
	readyCtx, cancelReady := context.WithCancel(context.Background())

	router.GET("/health", gin.WrapH(HealthHandler()))
	router.GET("/ready", gin.WrapH(ReadinessHandler(readyCtx)))

	tokenHandler := tokenHTTP.NewTokenHandler(tokens, logger)
	containerHandler := containerHTTP.NewContainerHandler(containers, logger)

	// Token issuance is the unauthenticated surface; rate limit it per IP.
	issueGroup := router.Group("/v1/tokens")
	if cfg.RateLimitIssueEnabled {
		issueGroup.Use(tokenHTTP.IssueRateLimitMiddleware(
			cfg.RateLimitIssueRequestsPerSec,
			cfg.RateLimitIssueBurst,
			logger,
		))
	}
	issueGroup.POST("", tokenHandler.IssueHandler)

	router.POST("/v1/keys/rotate", tokenHandler.RotateKeyHandler)

	// Container operations require a token-authenticated session.
	sessionGroup := router.Group("/v1/containers")
	sessionGroup.Use(tokenHTTP.SessionAuthenticationMiddleware(
		tokens,
		tokenDomain.ProtocolContainerManager,
		cfg.NodeAddress,
		logger,
	))
	sessionGroup.POST("/start", containerHandler.StartHandler)
	sessionGroup.GET("/:container_id", containerHandler.StatusHandler)
	sessionGroup.POST("/:container_id/stop", containerHandler.StopHandler)

	return &APIServer{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:      logger,
		cancelReady: cancelReady,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *APIServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API server.
func (s *APIServer) Start(ctx context.Context) error {
	s.logger.Info("starting api server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start api server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down api server")
	s.cancelReady()
	return s.server.Shutdown(ctx)
}

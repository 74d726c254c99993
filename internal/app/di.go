// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/containertoken/internal/config"
	containerUseCase "github.com/allisson/containertoken/internal/container/usecase"
	"github.com/allisson/containertoken/internal/http"
	"github.com/allisson/containertoken/internal/metrics"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
	"github.com/allisson/containertoken/internal/token/service"
	tokenUseCase "github.com/allisson/containertoken/internal/token/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Token subsystem
	keyStore      *service.KeyStore
	secretManager service.SecretManager
	kmsService    service.KMSService
	kmsKeeper     tokenDomain.KMSKeeper
	tokenUC       tokenUseCase.TokenUseCase
	rotator       *service.Rotator

	// Container subsystem
	containerRepo containerUseCase.ContainerRepository
	containerUC   containerUseCase.ContainerUseCase

	// Servers
	apiServer     *http.APIServer
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	keyStoreInit        sync.Once
	secretManagerInit   sync.Once
	kmsServiceInit      sync.Once
	tokenUCInit         sync.Once
	rotatorInit         sync.Once
	containerRepoInit   sync.Once
	containerUCInit     sync.Once
	apiServerInit       sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled it returns a no-op implementation.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		c.businessMetrics, err = metrics.NewBusinessMetrics(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// APIServer returns the API server instance.
func (c *Container) APIServer() (*http.APIServer, error) {
	c.apiServerInit.Do(func() {
		server, err := c.initAPIServer()
		if err != nil {
			c.initErrors["apiServer"] = err
			return
		}
		c.apiServer = server
	})
	if storedErr, exists := c.initErrors["apiServer"]; exists {
		return nil, storedErr
	}
	return c.apiServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.apiServer != nil {
		if err := c.apiServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.kmsKeeper != nil {
		if err := c.kmsKeeper.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("kms keeper close: %w", err))
		}
	}

	// Zero master key material last.
	if c.keyStore != nil {
		c.keyStore.Close()
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initAPIServer creates the API server with all its dependencies.
func (c *Container) initAPIServer() (*http.APIServer, error) {
	tokens, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for api server: %w", err)
	}

	containers, err := c.ContainerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get container use case for api server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for api server: %w", err)
	}

	if provider != nil {
		return http.NewAPIServer(c.config, c.Logger(), tokens, containers, provider.MeterProvider()), nil
	}
	return http.NewAPIServer(c.config, c.Logger(), tokens, containers, nil), nil
}

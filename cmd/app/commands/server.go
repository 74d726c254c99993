package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/containertoken/internal/app"
	"github.com/allisson/containertoken/internal/config"
	appHTTP "github.com/allisson/containertoken/internal/http"
)

// RunServer starts the node agent with graceful shutdown support.
// Loads configuration, initializes the DI container, and starts the API and
// metrics servers plus the background key rotator when configured. Blocks
// until receiving SIGINT/SIGTERM or encountering a fatal error.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting node agent",
		slog.String("version", version),
		slog.String("node_address", cfg.NodeAddress),
	)

	defer closeContainer(container, logger)

	server, err := container.APIServer()
	if err != nil {
		return fmt.Errorf("failed to initialize api server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	rotator, err := container.Rotator()
	if err != nil {
		return fmt.Errorf("failed to initialize key rotator: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := server.Start(groupCtx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		group.Go(func() error {
			if err := metricsServer.Start(groupCtx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	if rotator != nil {
		group.Go(func() error {
			rotator.Run(groupCtx)
			return nil
		})
	}

	// Blocks until a signal arrives or a server fails to start.
	<-groupCtx.Done()
	logger.Info("shutdown signal received")

	shutdownErr := shutdownServers(cfg, server, metricsServer)
	return errors.Join(group.Wait(), shutdownErr)
}

// shutdownServers stops both servers within the configured shutdown timeout.
func shutdownServers(
	cfg *config.Config,
	server *appHTTP.APIServer,
	metricsServer *appHTTP.MetricsServer,
) error {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	var shutdownErrors []error

	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return errors.Join(shutdownErrors...)
	}
	return nil
}

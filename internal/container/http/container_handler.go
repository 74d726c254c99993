// Package http provides HTTP handlers for container lifecycle operations.
// All routes require a token-authenticated session; the validated identity
// is read from the request context bound by the session middleware.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/containertoken/internal/container/http/dto"
	containerUseCase "github.com/allisson/containertoken/internal/container/usecase"
	apperrors "github.com/allisson/containertoken/internal/errors"
	"github.com/allisson/containertoken/internal/httputil"
	tokenHTTP "github.com/allisson/containertoken/internal/token/http"
)

// ContainerHandler handles HTTP requests for container lifecycle operations.
type ContainerHandler struct {
	containerUseCase containerUseCase.ContainerUseCase
	logger           *slog.Logger
}

// NewContainerHandler creates a new container handler with required dependencies.
func NewContainerHandler(useCase containerUseCase.ContainerUseCase, logger *slog.Logger) *ContainerHandler {
	return &ContainerHandler{
		containerUseCase: useCase,
		logger:           logger,
	}
}

// StartHandler registers the session's container as running.
// POST /v1/containers/start
// Returns 201 Created with the registered container.
func (h *ContainerHandler) StartHandler(c *gin.Context) {
	identity, ok := tokenHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	container, err := h.containerUseCase.Start(c.Request.Context(), identity)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("container started",
		slog.String("container_id", container.ID.String()),
		slog.Int64("memory_mb", container.Resource.MemoryMB),
	)

	c.JSON(http.StatusCreated, dto.MapContainerToResponse(container))
}

// StatusHandler returns the state of the container named in the path.
// GET /v1/containers/:container_id
// Returns 200 OK with the container state.
func (h *ContainerHandler) StatusHandler(c *gin.Context) {
	identity, ok := tokenHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	container, err := h.containerUseCase.Status(c.Request.Context(), identity, c.Param("container_id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapContainerToResponse(container))
}

// StopHandler transitions the container named in the path to the stopped state.
// POST /v1/containers/:container_id/stop
// Returns 200 OK with the container state.
func (h *ContainerHandler) StopHandler(c *gin.Context) {
	identity, ok := tokenHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	container, err := h.containerUseCase.Stop(c.Request.Context(), identity, c.Param("container_id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("container stopped",
		slog.String("container_id", container.ID.String()),
	)

	c.JSON(http.StatusOK, dto.MapContainerToResponse(container))
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/containertoken/internal/httputil"
	"github.com/allisson/containertoken/internal/token/http/dto"
	tokenUseCase "github.com/allisson/containertoken/internal/token/usecase"
	customValidation "github.com/allisson/containertoken/internal/validation"
)

// TokenHandler handles HTTP requests for token issuance and key rotation.
type TokenHandler struct {
	tokenUseCase tokenUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(useCase tokenUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: useCase,
		logger:       logger,
	}
}

// IssueHandler signs a container token for the requested placement.
// POST /v1/tokens
// Returns 201 Created with the signed token.
func (h *TokenHandler) IssueHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Validate already checked the format.
	applicationID := uuid.MustParse(req.ApplicationID)

	output, err := h.tokenUseCase.Issue(c.Request.Context(), &tokenUseCase.IssueTokenInput{
		ApplicationID:     applicationID,
		ContainerSequence: req.ContainerSequence,
		NodeAddress:       req.NodeAddress,
		MemoryMB:          req.MemoryMB,
		VCores:            req.VCores,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("token issued",
		slog.String("container_id", output.Identifier.ContainerID.String()),
		slog.String("service", output.Token.Service),
		slog.Uint64("key_version", uint64(output.Identifier.KeyVersion)),
	)

	response := dto.MapTokenToResponse(output.Token, output.Identifier)
	c.JSON(http.StatusCreated, response)
}

// RotateKeyHandler activates a new master key version.
// POST /v1/keys/rotate
// Returns 200 OK with the new key version.
func (h *TokenHandler) RotateKeyHandler(c *gin.Context) {
	version, err := h.tokenUseCase.RotateKey(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("master key rotated", slog.Uint64("key_version", uint64(version)))

	c.JSON(http.StatusOK, dto.RotateKeyResponse{KeyVersion: version})
}

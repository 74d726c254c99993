package http

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/containertoken/internal/errors"
	"github.com/allisson/containertoken/internal/httputil"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
	tokenUseCase "github.com/allisson/containertoken/internal/token/usecase"
)

// SessionAuthenticationMiddleware authenticates container management requests
// with a bearer container token. The credential is the base64-encoded JSON
// wire token.
//
// The middleware:
// 1. Extracts the Bearer credential from the Authorization header
// 2. Checks the token kind against the kind the protocol requires
// 3. Checks the token service against this node's advertised address
// 4. Verifies identifier and signature through TokenUseCase.Validate
// 5. Stores the validated identity in the request context for handlers
//
// A failure at any step rejects the whole request; there is no partial
// authentication. Verification outcomes map to:
//   - Protocol with no registered kind → 401 Unauthorized
//   - Missing/malformed credential → 401 Unauthorized
//   - Wrong kind for the protocol → 401 Unauthorized
//   - Token addressed to another node → 403 Forbidden
//   - Malformed identifier bytes → 422 Unprocessable Entity
//   - Signature mismatch, expired token, unknown key version → 401 Unauthorized
func SessionAuthenticationMiddleware(
	useCase tokenUseCase.TokenUseCase,
	protocol tokenDomain.Protocol,
	localService string,
	logger *slog.Logger,
) gin.HandlerFunc {
	requiredKind, knownProtocol := tokenDomain.RequiredKind(protocol)

	return func(c *gin.Context) {
		// A protocol outside the kind map accepts no token at all.
		if !knownProtocol {
			logger.Debug("session rejected: protocol accepts no token",
				slog.String("protocol", string(protocol)))
			httputil.HandleErrorGin(c,
				apperrors.Wrap(apperrors.ErrUnauthorized, "protocol accepts no token"), logger)
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("session rejected: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("session rejected: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		credential := authHeader[len(bearerPrefix):]
		if credential == "" {
			logger.Debug("session rejected: empty bearer credential")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		raw, err := base64.StdEncoding.DecodeString(credential)
		if err != nil {
			logger.Debug("session rejected: credential is not base64")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		var token tokenDomain.Token
		if err := json.Unmarshal(raw, &token); err != nil {
			logger.Debug("session rejected: credential is not a wire token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if token.Kind != requiredKind {
			logger.Debug("session rejected: unexpected token kind",
				slog.String("kind", string(token.Kind)),
				slog.String("required_kind", string(requiredKind)))
			httputil.HandleErrorGin(c,
				apperrors.Wrap(apperrors.ErrUnauthorized, "unexpected token kind"), logger)
			c.Abort()
			return
		}

		if token.Service != localService {
			logger.Debug("session rejected: token addressed to another service",
				slog.String("service", token.Service),
				slog.String("local_service", localService))
			httputil.HandleErrorGin(c, tokenDomain.ErrUnauthorizedIdentity, logger)
			c.Abort()
			return
		}

		identity, err := useCase.Validate(c.Request.Context(), token.Identifier, token.Signature)
		if err != nil {
			logger.Debug("session rejected: token verification failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("session authenticated",
			slog.String("container_id", identity.ContainerID.String()),
			slog.String("node_address", identity.NodeAddress))

		c.Next()
	}
}

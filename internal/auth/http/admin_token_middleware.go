// Package http provides the authentication and rate limiting middleware of the catalog API.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/catalog/internal/auth/service"
	apperrors "github.com/allisson/catalog/internal/errors"
	"github.com/allisson/catalog/internal/httputil"
)

const bearerPrefix = "bearer "

// AdminTokenMiddleware requires "Authorization: Bearer <token>" where the token
// matches tokenHash. It guards the product write endpoints.
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Token not matching the configured hash → 401 Unauthorized
func AdminTokenMiddleware(
	tokenService authService.AdminTokenService,
	tokenHash string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) <= len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !tokenService.Verify(authHeader[len(bearerPrefix):], tokenHash) {
			logger.Debug("authentication failed: invalid admin token",
				slog.String("client_ip", c.ClientIP()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

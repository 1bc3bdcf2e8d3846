package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminTokenAuth protects the lead-management endpoints using a static bearer
// token. There are no end-user accounts in this product, so a shared secret
// for the back office is sufficient.
func AdminTokenAuth(token string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			logAuthFailure(log, c, http.StatusServiceUnavailable, "token_not_configured")
			writeAuthError(c, http.StatusServiceUnavailable, "ADMIN_DISABLED", "Admin API is not configured")
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logAuthFailure(log, c, http.StatusUnauthorized, "missing_auth")
			writeAuthError(c, http.StatusUnauthorized, "AUTH_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logAuthFailure(log, c, http.StatusUnauthorized, "invalid_auth_format")
			writeAuthError(c, http.StatusUnauthorized, "AUTH_INVALID", "Authorization header must be 'Bearer <token>'")
			return
		}

		if parts[1] != token {
			logAuthFailure(log, c, http.StatusForbidden, "invalid_token")
			writeAuthError(c, http.StatusForbidden, "AUTH_INVALID", "Invalid admin token")
			return
		}

		c.Next()
	}
}

func writeAuthError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func logAuthFailure(log *zap.Logger, c *gin.Context, status int, reason string) {
	log.Warn("admin_auth_failure",
		zap.Int("status", status),
		zap.String("reason", reason),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", RequestIDFrom(c)),
	)
}

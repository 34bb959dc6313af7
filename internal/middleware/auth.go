package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resq-ai/dispatch/internal/auth"
)

// Authenticate returns a middleware that resolves the calling principal from
// a bearer token and stores it in the request context. Requests without an
// Authorization header proceed anonymously; role enforcement happens in the
// services, not here.
func Authenticate(secret string, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "malformed authorization header",
				},
			})
			c.Abort()
			return
		}

		principal, err := auth.ParseToken(tokenString, secret)
		if err != nil {
			logger.Debugw("token verification failed", "error", err, "client_ip", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "invalid or expired token",
				},
			})
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(auth.NewContext(c.Request.Context(), principal))
		c.Next()
	}
}

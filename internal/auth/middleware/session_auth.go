package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ccstudio/portfolio-backend/internal/auth"
	"github.com/ccstudio/portfolio-backend/internal/auth/domain"
)

// SessionChecker resolves a bearer token to a live session.
type SessionChecker interface {
	Session(ctx context.Context, token string) (*domain.Session, error)
}

// SessionAuthMiddleware gates the admin surface: it validates the
// bearer session token and exposes the admin identity to handlers.
// A failed lookup is treated the same as no session at all.
func SessionAuthMiddleware(sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing session token"})
			c.Abort()
			return
		}

		sess, err := sessions.Session(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(auth.CtxAdminEmail, sess.Email)
		c.Set(auth.CtxSessionToken, sess.Token)

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}

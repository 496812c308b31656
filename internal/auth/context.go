package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxAdminEmail   = "admin_email"
	CtxSessionToken = "session_token"
)

// AdminEmail extracts the signed-in admin's email from the Gin context.
// This is set by SessionAuthMiddleware.
func AdminEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxAdminEmail))
}

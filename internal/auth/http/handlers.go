package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ccstudio/portfolio-backend/internal/auth"
	"github.com/ccstudio/portfolio-backend/internal/auth/domain"
)

// Service is the slice of the auth service the handlers need.
type Service interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
}

type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sess, err := h.svc.SignIn(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		// surfaced verbatim on the login form
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
	})
}

func (h *Handler) logout(c *gin.Context) {
	token := c.GetString(auth.CtxSessionToken)
	if err := h.svc.SignOut(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// session is what the admin UI's guard calls before revealing anything:
// reaching this handler at all means the middleware accepted the token.
func (h *Handler) session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "email": auth.AdminEmail(c)})
}

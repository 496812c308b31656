package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccstudio/portfolio-backend/internal/auth/domain"
	"github.com/ccstudio/portfolio-backend/internal/auth/middleware"
)

type fakeChecker struct {
	sessions map[string]*domain.Session
}

func (f *fakeChecker) Session(_ context.Context, token string) (*domain.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, domain.ErrNoSession
	}
	return s, nil
}

func setupRouter(checker middleware.SessionChecker) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)

	reached := false
	r := gin.New()
	r.GET("/admin/probe", middleware.SessionAuthMiddleware(checker), func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"ok": true, "email": c.GetString("admin_email")})
	})
	return r, &reached
}

func TestSessionAuthMiddleware(t *testing.T) {
	checker := &fakeChecker{sessions: map[string]*domain.Session{
		"tok-1": {Token: "tok-1", Email: "admin@example.com"},
	}}

	t.Run("no token", func(t *testing.T) {
		r, reached := setupRouter(checker)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/probe", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, *reached, "protected handler must not run without a session")
	})

	t.Run("invalid token", func(t *testing.T) {
		r, reached := setupRouter(checker)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/probe", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, *reached)
	})

	t.Run("valid token", func(t *testing.T) {
		r, reached := setupRouter(checker)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/probe", nil)
		req.Header.Set("Authorization", "Bearer tok-1")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, *reached)
		assert.Contains(t, w.Body.String(), "admin@example.com")
	})
}

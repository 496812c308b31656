package http

import "github.com/gin-gonic/gin"

// Register attaches the unauthenticated auth routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
}

// RegisterSession attaches the routes that require a live session;
// the caller mounts these behind SessionAuthMiddleware.
func (h *Handler) RegisterSession(rg *gin.RouterGroup) {
	rg.POST("/logout", h.logout)
	rg.GET("/session", h.session)
}

package http

import "github.com/gin-gonic/gin"

// Register attaches the authenticated project routes.
func (h *AdminHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

// Register attaches the public read-only project routes.
func (h *PublicHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:uid", h.get)
}

package settings

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Getter interface {
	Get(ctx context.Context) (*Settings, error)
}

type Handler struct {
	repo Getter
}

func NewHandler(repo Getter) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) get(c *gin.Context) {
	s, err := h.repo.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "settings not found"})
			return
		}
		log.Printf("[settings] get: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": s})
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/settings", h.get)
}

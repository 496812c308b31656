package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ccstudio/portfolio-backend/internal/projects/domain"
)

func (h *PublicHandler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		log.Printf("[public] list projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

// get serves the detail page data. An unknown slug is a 404, distinct
// from a transient fetch failure.
func (h *PublicHandler) get(c *gin.Context) {
	uid := c.Param("uid")

	p, err := h.repo.GetByUID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		log.Printf("[public] get project %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

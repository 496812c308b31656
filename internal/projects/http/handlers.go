package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ccstudio/portfolio-backend/internal/projects/domain"
)

func (h *AdminHandler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *AdminHandler) create(c *gin.Context) {
	draft, cleanup, err := buildDraft(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	defer cleanup()

	res, err := h.svc.Save(c.Request.Context(), draft)
	if err != nil {
		warnings := []string{}
		if res != nil {
			warnings = res.Warnings
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":       false,
			"error":    err.Error(),
			"warnings": warnings,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":       true,
		"project":  res.Project,
		"warnings": res.Warnings,
	})
}

func (h *AdminHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return
	}

	draft, cleanup, err := buildDraft(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	defer cleanup()
	draft.ID = id

	res, err := h.svc.Save(c.Request.Context(), draft)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		warnings := []string{}
		if res != nil {
			warnings = res.Warnings
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":       false,
			"error":    err.Error(),
			"warnings": warnings,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"project":  res.Project,
		"warnings": res.Warnings,
	})
}

func (h *AdminHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

package handlers

import (
	"net/http"

	"clinicdesk/models"
	"clinicdesk/services/content"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves one content collection.
type ContentHandler[T any] struct {
	Collection *content.Collection[T]
}

func NewContentHandler[T any](coll *content.Collection[T]) *ContentHandler[T] {
	return &ContentHandler[T]{Collection: coll}
}

func (h *ContentHandler[T]) List(c *gin.Context) {
	items, err := h.Collection.List(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch "+h.Collection.Name, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandler[T]) Get(c *gin.Context) {
	item, err := h.Collection.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch "+h.Collection.Name, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.Collection.Create(c.Request.Context(), item)
	if err != nil {
		respondError(c, "Failed to create "+h.Collection.Name, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContentHandler[T]) Update(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		bindError(c, err)
		return
	}
	updated, err := h.Collection.Update(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		respondError(c, "Failed to update "+h.Collection.Name, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandler[T]) Delete(c *gin.Context) {
	if err := h.Collection.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete "+h.Collection.Name, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SettingsHandler serves the site settings document.
type SettingsHandler struct {
	Settings *content.SettingsService
}

func NewSettingsHandler(svc *content.SettingsService) *SettingsHandler {
	return &SettingsHandler{Settings: svc}
}

// GetSettingsHandler handles GET /api/settings.
func (h *SettingsHandler) GetSettingsHandler(c *gin.Context) {
	settings, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettingsHandler handles PUT /api/admin/settings.
func (h *SettingsHandler) SaveSettingsHandler(c *gin.Context) {
	var settings models.SiteSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		bindError(c, err)
		return
	}
	saved, err := h.Settings.Save(c.Request.Context(), settings)
	if err != nil {
		respondError(c, "Failed to save settings", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

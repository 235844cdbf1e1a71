package handlers

import (
	"net/http"

	"clinicdesk/services/storage"
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps image uploads.
const maxUploadBytes = 10 << 20

// StorageHandler handles content image uploads.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// UploadImageHandler handles POST /api/admin/uploads with a multipart "file"
// and a "folder" form value.
func (h *StorageHandler) UploadImageHandler(c *gin.Context) {
	if h.StorageSvc == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Image storage unavailable", "cloudinary is not configured")
		return
	}

	folder := c.PostForm("folder")
	if !storage.AllowedFolders[folder] {
		utils.JSONError(c, http.StatusBadRequest, "Invalid folder", "allowed values are services, testimonials, blog and site")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "File not provided", err.Error())
		return
	}
	if fileHeader.Size > maxUploadBytes {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "File too large", "images are limited to 10MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read file", err.Error())
		return
	}
	defer file.Close()

	result, err := h.StorageSvc.UploadImage(c.Request.Context(), file, folder)
	if err != nil {
		respondError(c, "Failed to upload image", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// DeleteImageHandler handles DELETE /api/admin/uploads?publicId=...
func (h *StorageHandler) DeleteImageHandler(c *gin.Context) {
	if h.StorageSvc == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Image storage unavailable", "cloudinary is not configured")
		return
	}
	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "publicId is required", "")
		return
	}
	if err := h.StorageSvc.DeleteImage(c.Request.Context(), publicID); err != nil {
		respondError(c, "Failed to delete image", err)
		return
	}
	c.Status(http.StatusNoContent)
}

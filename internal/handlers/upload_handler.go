// internal/handlers/upload_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type UploadHandler struct {
	storage *services.StorageService
}

func NewUploadHandler(storage *services.StorageService) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Upload handles POST /upload (vendor). The category form field selects the
// folder and limits; the file field carries the image.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "Missing file upload", nil)
		return
	}
	defer file.Close()

	category := c.DefaultPostForm("category", "products")
	options := h.storage.UploadOptionsFor(category)

	result, err := h.storage.UploadImage(file, header, options)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

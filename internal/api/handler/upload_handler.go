package handler

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/content-gallery/internal/storage"
	"github.com/d60-Lab/content-gallery/pkg/logger"
	"github.com/d60-Lab/content-gallery/pkg/response"
)

// Raster formats the gallery accepts.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type uploadRequest struct {
	ImageData   string `json:"imageData"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// UploadImage stores a base64-encoded image in the object store and
// returns its public URL. Admin only.
// @Summary Upload image
// @Tags upload
// @Accept json
// @Produce json
// @Param request body uploadRequest true "image payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/upload/image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	var missing []string
	if req.ImageData == "" {
		missing = append(missing, "imageData")
	}
	if req.FileName == "" {
		missing = append(missing, "fileName")
	}
	if req.ContentType == "" {
		missing = append(missing, "contentType")
	}
	if len(missing) > 0 {
		response.MissingFields(c, missing)
		return
	}
	if !allowedImageTypes[req.ContentType] {
		response.BadRequest(c, "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.")
		return
	}

	// accept both raw base64 and data: URLs
	payload := req.ImageData
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		response.BadRequest(c, "Invalid base64 image data")
		return
	}

	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + storage.SanitizeName(req.FileName)
	url, err := h.objectStore.Put(c.Request.Context(), name, req.ContentType, data)
	if err != nil {
		logger.Error("image upload failed", zap.String("name", name), zap.Error(err))
		response.InternalError(c, "Failed to upload image")
		return
	}
	response.Success(c, gin.H{
		"message":   "Image uploaded successfully",
		"fileName":  name,
		"publicUrl": url,
		"size":      len(data),
	})
}

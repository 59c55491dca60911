package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"seaside_restaurant/pkg/storage"

	"github.com/gin-gonic/gin"
)

// UploadHandler stores dish images. A nil uploader means object storage is
// not configured.
type UploadHandler struct {
	uploader storage.Uploader
	maxBytes int64
	maxMB    int
	log      *slog.Logger
}

func NewUploadHandler(uploader storage.Uploader, maxMB int, log *slog.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		maxBytes: int64(maxMB) * 1024 * 1024,
		maxMB:    maxMB,
		log:      log,
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided in form-data"})
		return
	}
	if header.Size > h.maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File size exceeds %d MB limit", h.maxMB)})
		return
	}
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File storage is not configured"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}
	defer file.Close()

	obj, err := h.uploader.Upload(c.Request.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.log.Error("upload failed", "file", header.Filename, "error", err)
		var apiErr *storage.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "S3 Error: " + apiErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}

	h.log.Info("file uploaded", "key", obj.Key, "size", obj.Size)
	c.JSON(http.StatusCreated, gin.H{
		"file_name": header.Filename,
		"s3_url":    obj.URL,
		"file_size": obj.Size,
		"folder":    h.uploader.Folder(),
	})
}

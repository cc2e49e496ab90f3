package api

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hmchef/hmchef/internal/service"
)

// Uploads larger than this are refused outright.
const maxUploadBytes = 10 << 20

// UploadHandler accepts a multipart image and stores it durably, returning
// the public URL the recipe will carry from then on.
type UploadHandler struct {
	storage service.ImageStorage
}

func NewUploadHandler(storage service.ImageStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload", h.Upload)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "missing file field"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unreadable file"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unreadable file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.storage.Save(c.Request.Context(), data, fileHeader.Filename, contentType)
	if err != nil {
		log.Printf("image upload failed for %s: %v", c.Query("user"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to store image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

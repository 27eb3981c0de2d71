package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/brand-site-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UploadHandler accepts image and video uploads for the admin editor.
// Files are stored under the configured directory with generated names and
// served back at the public base URL.
type UploadHandler struct {
	cfg *config.UploadConfig
	log zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(cfg *config.UploadConfig, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		cfg: cfg,
		log: log.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /admin/uploads. The "kind" form field selects the
// image or video limits; rejected uploads retain nothing on disk.
func (h *UploadHandler) Upload(c *gin.Context) {
	kind := c.PostForm("kind")
	if kind == "" {
		kind = "image"
	}
	if kind != "image" && kind != "video" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be image or video"})
		return
	}

	maxSize := h.cfg.MaxImageSize
	allowedMIMEs := h.cfg.ImageMIMEs
	if kind == "video" {
		maxSize = h.cfg.MaxVideoSize
		allowedMIMEs = h.cfg.VideoMIMEs
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file too large, max size for %s uploads is %d MB", kind, maxSize/(1024*1024)),
		})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !mimeAllowed(contentType, allowedMIMEs) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"error": fmt.Sprintf("content type %q is not allowed for %s uploads", contentType, kind),
		})
		return
	}

	if err := os.MkdirAll(h.cfg.Dir, 0755); err != nil {
		h.log.Error().Err(err).Msg("Failed to create upload directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := fmt.Sprintf("%s_%s%s", kind, uuid.New().String(), ext)
	dst := filepath.Join(h.cfg.Dir, filename)

	if err := c.SaveUploadedFile(header, dst); err != nil {
		h.log.Error().Err(err).Str("path", dst).Msg("Failed to store upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	url := strings.TrimRight(h.cfg.PublicBaseURL, "/") + "/" + filename
	h.log.Info().Str("kind", kind).Str("url", url).Int64("size", header.Size).Msg("Upload stored")

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func mimeAllowed(contentType string, allowed []string) bool {
	// Strip any charset-style parameter before matching
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType))

	for _, m := range allowed {
		if contentType == m {
			return true
		}
	}
	return false
}

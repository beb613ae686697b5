package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"newshub/internal/imagehost"
	"newshub/internal/logger"
	"newshub/internal/metrics"
)

const (
	// DefaultMaxUploadBytes is the largest accepted image.
	DefaultMaxUploadBytes int64 = 5 << 20

	imageField = "image"
	// multipartOverhead leaves room for boundaries and part headers.
	multipartOverhead = 64 << 10
)

// UploadHandler forwards images to the image host.
type UploadHandler struct {
	uploader imagehost.Uploader
	maxBytes int64
}

// NewUploadHandler creates a new UploadHandler. A non-positive maxBytes uses DefaultMaxUploadBytes.
func NewUploadHandler(uploader imagehost.Uploader, maxBytes int64) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadHandler{uploader: uploader, maxBytes: maxBytes}
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Message  string `json:"message"`
}

// UploadErrorResponse is returned when an upload is rejected or fails.
type UploadErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Upload handles POST /api/upload-image
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	header, err := c.FormFile(imageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, UploadErrorResponse{Error: "No image file provided"})
		return
	}
	if header.Size > h.maxBytes {
		h.tooLarge(c)
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, UploadErrorResponse{Error: "No image file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, UploadErrorResponse{Error: "Failed to read image", Message: err.Error()})
		return
	}
	if int64(len(data)) > h.maxBytes {
		h.tooLarge(c)
		return
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		metrics.ImageUploadsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		c.JSON(http.StatusBadRequest, UploadErrorResponse{
			Error:   "Only image files are allowed",
			Message: "detected content type " + detected.String(),
		})
		return
	}

	timer := metrics.NewTimer()
	url, err := h.uploader.Upload(c.Request.Context(), data, header.Filename)
	if err != nil {
		metrics.ObserveImageUpload(metrics.ResultError, timer.Seconds())
		logger.FromContext(c.Request.Context()).Error("Image upload failed",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))

		message := err.Error()
		var upstream *imagehost.UpstreamError
		if errors.As(err, &upstream) {
			message = upstream.Message
		}
		c.JSON(http.StatusInternalServerError, UploadErrorResponse{
			Error:   "Failed to upload image",
			Message: message,
		})
		return
	}
	metrics.ObserveImageUpload(metrics.ResultSuccess, timer.Seconds())

	c.JSON(http.StatusOK, UploadResponse{
		Success:  true,
		ImageURL: url,
		Message:  "Image uploaded successfully",
	})
}

func (h *UploadHandler) tooLarge(c *gin.Context) {
	metrics.ImageUploadsTotal.WithLabelValues(metrics.ResultRejected).Inc()
	c.JSON(http.StatusRequestEntityTooLarge, UploadErrorResponse{
		Error:   "Image too large",
		Message: fmt.Sprintf("images must be at most %d bytes", h.maxBytes),
	})
}

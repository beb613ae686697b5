package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newshub/internal/feed"
	"newshub/internal/logger"
	"newshub/internal/service"
)

const feedFilename = "rss.xml"

// FeedHandler serves the RSS feed.
type FeedHandler struct {
	feeds service.FeedServiceInterface
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feeds service.FeedServiceInterface) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

// Inline handles GET /api/rss
func (h *FeedHandler) Inline(c *gin.Context) {
	h.serve(c, "inline")
}

// Download handles GET /api/rss.xml
func (h *FeedHandler) Download(c *gin.Context) {
	h.serve(c, "attachment")
}

// Preview handles GET /api/rss/preview
func (h *FeedHandler) Preview(c *gin.Context) {
	preview, err := h.feeds.Preview(c.Request.Context())
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to build feed preview", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Error generating RSS preview"})
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *FeedHandler) serve(c *gin.Context, disposition string) {
	doc, err := h.feeds.RenderFeed(c.Request.Context())
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to render feed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Error generating RSS feed"})
		return
	}

	c.Header("Content-Disposition", disposition+`; filename="`+feedFilename+`"`)
	c.Data(http.StatusOK, feed.ContentType, doc)
}

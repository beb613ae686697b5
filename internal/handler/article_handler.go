package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newshub/internal/domain"
	"newshub/internal/logger"
	"newshub/internal/service"
	"newshub/internal/validator"
)

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	articles  service.ArticleServiceInterface
	validator *validator.Validator
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles service.ArticleServiceInterface, v *validator.Validator) *ArticleHandler {
	return &ArticleHandler{
		articles:  articles,
		validator: v,
	}
}

// ValidationErrorResponse is returned with 400 when the request body is invalid.
type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors"`
}

// CleanupResponse is returned by POST /api/articles/cleanup.
type CleanupResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
	Description  string `json:"description"`
}

// List handles GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.articles.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "Error fetching articles", err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// ListPublished handles GET /api/articles/published
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	articles, err := h.articles.ListPublished(c.Request.Context())
	if err != nil {
		h.internalError(c, "Error fetching published articles", err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/articles/:id and counts one view.
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "Error fetching article", err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: MsgArticleNotFound})
		return
	}
	c.JSON(http.StatusOK, article)
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req validator.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	in, err := h.validator.ValidateCreate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Message: MsgValidationError,
			Errors:  validator.FieldErrors(err),
		})
		return
	}

	article, err := h.articles.Create(c.Request.Context(), in)
	if err != nil {
		h.internalError(c, "Error creating article", err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Update handles PUT /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var req validator.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	patch, err := h.validator.ValidatePatch(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Message: MsgValidationError,
			Errors:  validator.FieldErrors(err),
		})
		return
	}

	article, err := h.articles.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.internalError(c, "Error updating article", err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: MsgArticleNotFound})
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	deleted, err := h.articles.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "Error deleting article", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, MessageResponse{Message: MsgArticleNotFound})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: MsgArticleDeleted})
}

// Cleanup handles POST /api/articles/cleanup
func (h *ArticleHandler) Cleanup(c *gin.Context) {
	removed, err := h.articles.Cleanup(c.Request.Context())
	if err != nil {
		h.internalError(c, "Error during cleanup", err)
		return
	}
	c.JSON(http.StatusOK, CleanupResponse{
		Message:      MsgCleanupDone,
		DeletedCount: removed,
		Description:  fmt.Sprintf(cleanupDescriptionFormat, removed),
	})
}

func (h *ArticleHandler) internalError(c *gin.Context, message string, err error) {
	logger.FromContext(c.Request.Context()).Error(message,
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: message})
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Message: MsgValidationError,
		Errors:  []domain.FieldError{{Field: "body", Message: "malformed JSON body: " + err.Error()}},
	})
}

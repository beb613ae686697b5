package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newshub/internal/logger"
	"newshub/internal/service"
)

// StatsHandler serves dashboard statistics.
type StatsHandler struct {
	stats service.StatsServiceInterface
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats service.StatsServiceInterface) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Stats handles GET /api/stats
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to compute stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Error fetching statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

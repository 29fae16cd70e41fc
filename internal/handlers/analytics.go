package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const statusHealthy = "healthy"

// @Summary      Dashboard analytics
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "analytics"
// @Failure      401  {object}  map[string]string
// @Router       /api/analytics/dashboard [get]
// @Security     SessionCookie
func (h *Handler) dashboardAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"analytics": h.services.Analytics.Dashboard()})
}

// @Summary      Video analytics
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "video_analytics"
// @Failure      401  {object}  map[string]string
// @Router       /api/video-analytics [get]
// @Security     SessionCookie
func (h *Handler) videoAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"video_analytics": h.services.Analytics.VideoFeeds()})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    statusHealthy,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

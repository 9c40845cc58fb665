package api

import (
	"net/http"
	"strconv"

	"ctrip-server/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Overview returns the dashboard aggregates
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.analyticsService.Overview()
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// Trends returns per-day event counts over a trailing window
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	event := c.DefaultQuery("event", "created")
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	trend, err := h.analyticsService.Trend(event, days)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event": event,
		"days":  days,
		"trend": trend,
	})
}

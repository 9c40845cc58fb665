package api

import (
	"net/http"

	"ctrip-server/internal/middleware"
	"ctrip-server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LabHandler struct {
	labService *services.LabService
}

func NewLabHandler(labService *services.LabService) *LabHandler {
	return &LabHandler{labService: labService}
}

// Spawn provisions a sandbox for a report
func (h *LabHandler) Spawn(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	reportID, err := uuid.Parse(c.Param("reportId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	instance, err := h.labService.Spawn(reportID, userID, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, instance)
}

// Get returns one instance
func (h *LabHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instance id"})
		return
	}

	instance, err := h.labService.Get(id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, instance)
}

// ListMine returns the caller's instances
func (h *LabHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	instances, err := h.labService.ListMine(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"instances": instances})
}

// Terminate ends an instance
func (h *LabHandler) Terminate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instance id"})
		return
	}

	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	role, _ := middleware.CallerRole(c)

	instance, err := h.labService.Terminate(id, userID, role, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, instance)
}

package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin guards admin routes with a static token when one is configured.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.adminToken == "" {
			c.Next()
			return
		}
		got := c.GetHeader("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.adminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			return
		}
		c.Next()
	}
}

func (h *Handler) GetLiveSessions(c *gin.Context) {
	sessions, err := h.Hub.LiveSessions(c.Request.Context())
	if err != nil {
		h.hubError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Hub.Stats(c.Request.Context())
	if err != nil {
		h.hubError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetMaintenance(c *gin.Context) {
	on, err := h.Hub.Maintenance(c.Request.Context())
	if err != nil {
		h.hubError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": on})
}

type maintenanceRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetMaintenance stores the flag (which other instances pick up over Redis) and
// applies it to this hub right away.
func (h *Handler) SetMaintenance(c *gin.Context) {
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"enabled\": bool}"})
		return
	}
	ctx := c.Request.Context()

	if h.Maintenance != nil {
		if err := h.Maintenance.SetMaintenanceMode(ctx, *req.Enabled); err != nil {
			h.log.Error("failed to store maintenance flag", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store maintenance flag"})
			return
		}
	}
	if err := h.Hub.SetMaintenance(ctx, *req.Enabled); err != nil {
		h.hubError(c, err)
		return
	}
	h.log.Info("maintenance mode set", "enabled", *req.Enabled)
	c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
}

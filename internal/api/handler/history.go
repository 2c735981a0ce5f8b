package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHistory returns the most recent sessions of a participant (user id or
// connection id), newest first.
func (h *Handler) GetHistory(c *gin.Context) {
	participantID := c.Param("participantId")
	sessions, err := h.Hub.History(c.Request.Context(), participantID)
	if err != nil {
		h.hubError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participant_id": participantID, "sessions": sessions})
}

func (h *Handler) hubError(c *gin.Context, err error) {
	h.log.Error("hub query failed", "error", err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat hub unavailable"})
}

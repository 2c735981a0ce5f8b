package handler

import "github.com/gin-gonic/gin"

// Routes registers every endpoint on r.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/anonid", h.GetAnonID)
	r.GET("/ws", h.ServeWebSocket)

	api := r.Group("/api")
	api.GET("/history/:participantId", h.GetHistory)

	admin := api.Group("/admin", h.RequireAdmin())
	admin.GET("/sessions", h.GetLiveSessions)
	admin.GET("/stats", h.GetStats)
	admin.GET("/maintenance", h.GetMaintenance)
	admin.POST("/maintenance", h.SetMaintenance)
}

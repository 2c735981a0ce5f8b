package handler

import (
	"net/http"

	"reelchat/backend/internal/chathub"
	"reelchat/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and hands the connection to the hub.
// A valid token pre-binds its anonymous identity; no token means a guest.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	var identity models.Identity
	if token := bearerToken(c); token != "" {
		claims, err := h.Tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}
		identity = models.Identity{UserID: claims.AnonID, Username: claims.Username}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written an HTTP error
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := chathub.NewWebSocketClient(h.Hub, conn, identity, h.sendBufferSize, h.log)
	if err := h.Hub.Register(c.Request.Context(), client); err != nil {
		h.log.Warn("hub refused connection", "error", err)
		conn.Close()
		return
	}
	client.Run()
}

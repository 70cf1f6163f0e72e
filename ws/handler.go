package ws

import (
	"encoding/json"
	"net/http"

	"collegeskills_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	manager  *Manager
	upgrader websocket.Upgrader
}

// NewHandler builds the websocket endpoint. allowedOrigin is the
// frontend origin; an empty value admits any origin, for development
// setups only.
func NewHandler(manager *Manager, allowedOrigin string) *Handler {
	return &Handler{
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// ServeWS upgrades the connection. The auth middleware has already put
// the user id on the context.
func (h *Handler) ServeWS(c *gin.Context) {
	userIDVal, exists := c.Get("userID")
	userID, _ := userIDVal.(string)
	if !exists || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		UserID:  userID,
		conn:    conn,
		send:    make(chan json.RawMessage, 256),
		manager: h.manager,
	}

	h.manager.register <- client

	go client.readPump()
	go client.writePump()
}

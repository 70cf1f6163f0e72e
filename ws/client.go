package ws

import (
	"encoding/json"
	"time"

	"collegeskills_backend/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type incomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type joinPayload struct {
	ConversationID string `json:"conversation_id"`
}

type Client struct {
	UserID  string
	conn    *websocket.Conn
	send    chan json.RawMessage
	manager *Manager
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read error", "user_id", c.UserID, "error", err)
			}
			return
		}

		var msg incomingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg incomingMessage) {
	switch msg.Action {
	case "join":
		var payload joinPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.ConversationID == "" {
			return
		}
		c.manager.join(c, payload.ConversationID)

	case "leave":
		var payload joinPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.ConversationID == "" {
			return
		}
		c.manager.leave(c, payload.ConversationID)
	}
}

package api

import (
	"encoding/json"
	"log"

	"github.com/example/taskboard/modules/notify"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// clientMessage is the inbound WebSocket frame. The only recognized
// type is "join", which subscribes the connection to a user's private
// channel; everything the server pushes goes out as notify.WSEvent.
type clientMessage struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// HandleWebSocket owns one WebSocket connection for its lifetime. The
// connection receives all global broadcasts immediately; targeted
// notifications require an explicit join.
func (m *APIModule) HandleWebSocket(c *websocket.Conn) {
	hub := m.hub
	if hub == nil {
		log.Println("[api] WebSocket rejected: hub not attached")
		_ = c.Close()
		return
	}

	client := &notify.Client{
		ID:   uuid.New().String(),
		Conn: c,
	}
	hub.Register(client)

	defer func() {
		hub.Unregister(client)
		_ = c.Close()
	}()

	for {
		_, msgBytes, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[api] WebSocket error for client %s: %v", client.ID, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			log.Printf("[api] Ignoring malformed WebSocket frame from client %s", client.ID)
			continue
		}

		switch msg.Type {
		case "join":
			if msg.UserID != "" {
				hub.Join(client.ID, msg.UserID)
			}
		default:
			// Unrecognized frames are dropped silently.
		}
	}
}

package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Client represents a connected WebSocket client. UserID is empty until
// the client joins its own channel with an explicit join message.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
}

// Hub owns the live-connection registry: every connected client plus
// per-user channel membership. It is the only shared mutable state in
// the process; mutations happen on connect, join and disconnect, reads
// at broadcast time.
type Hub struct {
	clients    map[string]*Client         // clientID -> Client
	channels   map[string]map[string]bool // userID -> set of clientIDs
	register   chan *Client
	unregister chan *Client
	broadcast  chan *envelope
	done       chan struct{}
	mu         sync.RWMutex
}

// envelope is a queued delivery. An empty UserID addresses every
// connected client; otherwise only the user's channel members.
type envelope struct {
	UserID string
	Event  string
	Data   any
}

// WSEvent is the frame written to WebSocket clients.
type WSEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		channels:   make(map[string]map[string]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *envelope, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. It accepts a context for graceful
// shutdown.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Println("[hub] Shutting down...")
			h.closeAllClients()
			close(h.done)
			return
		case client := <-h.register:
			h.handleRegister(client)
		case client := <-h.unregister:
			h.handleUnregister(client)
		case msg := <-h.broadcast:
			h.handleBroadcast(msg)
		}
	}
}

// Wait blocks until the hub has stopped.
func (h *Hub) Wait() {
	<-h.done
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client and its channel membership.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Join subscribes a connection to the private channel of the given
// user. Membership is established only by this explicit action; there
// is no automatic subscription at connect time.
func (h *Hub) Join(clientID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[clientID]
	if !ok {
		return
	}

	// Leave a previously joined channel first
	if client.UserID != "" && h.channels[client.UserID] != nil {
		delete(h.channels[client.UserID], clientID)
		if len(h.channels[client.UserID]) == 0 {
			delete(h.channels, client.UserID)
		}
	}

	client.UserID = userID
	if h.channels[userID] == nil {
		h.channels[userID] = make(map[string]bool)
	}
	h.channels[userID][clientID] = true
	log.Printf("[hub] Client %s joined channel %s", clientID, userID)
}

// BroadcastAll queues an event for every connected client. Delivery is
// fire-and-forget: a client disconnected at broadcast time misses the
// event, and no caller ever blocks on subscriber acknowledgment.
func (h *Hub) BroadcastAll(event string, payload any) {
	h.broadcast <- &envelope{Event: event, Data: payload}
}

// SendToUser queues an event for the members of one user's private
// channel only.
func (h *Hub) SendToUser(userID, event string, payload any) {
	h.broadcast <- &envelope{UserID: userID, Event: event, Data: payload}
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ChannelMemberCount returns the number of connections in a user's
// channel.
func (h *Hub) ChannelMemberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if members, ok := h.channels[userID]; ok {
		return len(members)
	}
	return 0
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	log.Printf("[hub] Client %s connected", client.ID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	if client.UserID != "" && h.channels[client.UserID] != nil {
		delete(h.channels[client.UserID], client.ID)
		if len(h.channels[client.UserID]) == 0 {
			delete(h.channels, client.UserID)
		}
	}
	log.Printf("[hub] Client %s disconnected", client.ID)
}

func (h *Hub) handleBroadcast(msg *envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(WSEvent{Event: msg.Event, Data: msg.Data})
	if err != nil {
		log.Printf("[hub] Failed to marshal %s event: %v", msg.Event, err)
		return
	}

	if msg.UserID == "" {
		for _, client := range h.clients {
			h.sendToClient(client, data)
		}
		return
	}

	for clientID := range h.channels[msg.UserID] {
		if client, ok := h.clients[clientID]; ok {
			h.sendToClient(client, data)
		}
	}
}

func (h *Hub) sendToClient(client *Client, data []byte) {
	if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[hub] Failed to send to client %s: %v", client.ID, err)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		_ = client.Conn.Close()
	}
	h.clients = make(map[string]*Client)
	h.channels = make(map[string]map[string]bool)
}

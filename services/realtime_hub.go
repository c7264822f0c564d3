package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ChatEvent is pushed to a user's open sockets whenever a chat turn
// completes, whether it came in over REST or the socket itself.
type ChatEvent struct {
	Sender    string    `json:"sender"` // "user" or "bot"
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"` // set for bot events
	Timestamp time.Time `json:"timestamp"`
}

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn

	writeMu sync.Mutex
}

// Send writes one frame. The connection allows only one writer at a time,
// so every write (broadcasts, pings, error replies) goes through here.
func (c *WSClient) Send(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// SendJSON writes one JSON frame under the same write lock.
func (c *WSClient) SendJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// ChatStreamHub tracks the open websocket connections per user. A user may
// hold several connections (multiple tabs); events fan out to all of them.
type ChatStreamHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewChatStreamHub() *ChatStreamHub {
	return &ChatStreamHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *ChatStreamHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *ChatStreamHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Broadcast sends the event to every open socket of the user. Write errors
// are ignored here; the read loop notices the dead connection and
// unregisters it.
func (h *ChatStreamHub) Broadcast(userID uint, event ChatEvent) {
	msg, _ := json.Marshal(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Send(websocket.TextMessage, msg)
	}
}

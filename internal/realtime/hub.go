// Package realtime pushes tracker updates to connected websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
)

const (
	pingInterval = 25 * time.Second
	writeTimeout = 10 * time.Second
)

// Message is the envelope written to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client is one websocket connection owned by a user.
type Client struct {
	UserID uuid.UUID
	conn   *websocket.Conn

	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
}

func (c *Client) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(messageType, data)
}

// Hub fans messages out to every connection of a user.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
	log     logging.Logger
}

func NewHub(log logging.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		log:     log,
	}
}

func (h *Hub) Register(userID uuid.UUID, conn *websocket.Conn) *Client {
	c := &Client{UserID: userID, conn: conn}
	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Count returns how many connections userID has open.
func (h *Hub) Count(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Broadcast sends a message of the given type to every connection of userID.
// Connections that fail to accept the write are dropped.
func (h *Hub) Broadcast(ctx context.Context, userID uuid.UUID, messageType string, data any) {
	msg, err := json.Marshal(Message{Type: messageType, Data: data})
	if err != nil {
		h.log.Error(ctx, "encode realtime message", "error", err, "type", messageType)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			h.log.Warn(ctx, "drop realtime client", "user_id", userID, "error", err)
			h.Unregister(c)
		}
	}
}

// Serve registers conn for userID and blocks until the client goes away.
// Incoming messages are discarded; pings keep idle proxies from closing the
// connection.
func (h *Hub) Serve(userID uuid.UUID, conn *websocket.Conn) {
	c := h.Register(userID, conn)
	done := make(chan struct{})
	defer func() {
		close(done)
		h.Unregister(c)
	}()

	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := c.write(websocket.PingMessage, nil); err != nil {
					_ = conn.Close()
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

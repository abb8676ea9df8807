package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/handbreaker/internal/game"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Message is the websocket envelope in both directions.
type Message struct {
	Type string `json:"type"`

	// Client to server.
	Action string  `json:"action,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`

	// Server to client.
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Message types.
const (
	TypeAction   = "action"
	TypeKey      = "key"
	TypeClick    = "click"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// GameHub pushes game snapshots to websocket clients whenever they change
// and forwards client input to the session.
type GameHub struct {
	session  Session
	interval time.Duration
	clients  map[*client]bool
	mu       sync.RWMutex
	stop     chan struct{}
	once     sync.Once
}

// NewGameHub creates a hub and starts its broadcast loop.
func NewGameHub(session Session, interval time.Duration) *GameHub {
	h := &GameHub{
		session:  session,
		interval: interval,
		clients:  make(map[*client]bool),
		stop:     make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// Close stops the broadcast loop and disconnects every client.
func (h *GameHub) Close() {
	h.once.Do(func() {
		close(h.stop)
		h.mu.Lock()
		for c := range h.clients {
			c.conn.Close()
		}
		h.mu.Unlock()
	})
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *GameHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn}
	snap, _ := h.session.Snapshot()
	if err := c.send(snapshotMessage(snap)); err != nil {
		return
	}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if _, ok := err.(*json.SyntaxError); ok {
				c.send(errorMessage("malformed message"))
				continue
			}
			break
		}
		if err := h.handle(msg); err != nil {
			c.send(errorMessage(err.Error()))
		}
	}
}

// handle forwards one client message to the session.
func (h *GameHub) handle(msg Message) error {
	switch msg.Type {
	case TypeAction:
		return h.session.Action(msg.Action)
	case TypeKey:
		return h.session.Key(msg.Key)
	case TypeClick:
		return h.session.Click(msg.X, msg.Y)
	}
	return fmt.Errorf("unknown message type %q", msg.Type)
}

// broadcast sends each new snapshot to all connected clients.
func (h *GameHub) broadcast() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
		}

		h.mu.RLock()
		n := len(h.clients)
		h.mu.RUnlock()
		if n == 0 {
			continue
		}

		snap, ver := h.session.Snapshot()
		if ver == last {
			continue
		}
		last = ver
		msg := snapshotMessage(snap)

		h.mu.RLock()
		for c := range h.clients {
			if err := c.send(msg); err != nil {
				c.conn.Close()
			}
		}
		h.mu.RUnlock()
	}
}

func snapshotMessage(s game.Snapshot) []byte {
	msg, _ := json.Marshal(Message{Type: TypeSnapshot, Snapshot: &s})
	return msg
}

func errorMessage(text string) []byte {
	msg, _ := json.Marshal(Message{Type: TypeError, Error: text})
	return msg
}

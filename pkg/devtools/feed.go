package devtools

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/hookrt/pkg/hooks"
)

// EventType is the type of a feed event.
type EventType string

const (
	EventCycle  EventType = "cycle"
	EventAction EventType = "action"
	EventError  EventType = "error"
)

// Event is sent to feed clients as a JSON text message.
type Event struct {
	Type       EventType          `json:"type"`
	InstanceID string             `json:"instanceId,omitempty"`
	Action     string             `json:"action,omitempty"`
	Cycle      *hooks.CycleReport `json:"cycle,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Client send buffer and write limits.
const (
	sendBuffer = 64
	writeWait  = 5 * time.Second
)

// feedClient is one subscriber. Its writer goroutine drains send so that
// Publish never waits on the network.
type feedClient struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *feedClient) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Feed manages WebSocket clients of the cycle stream.
type Feed struct {
	clients  map[*feedClient]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{
		clients: make(map[*feedClient]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the request and keeps the client subscribed
// until it disconnects.
func (f *Feed) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := f.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	c := &feedClient{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	f.mu.Lock()
	f.clients[c] = true
	f.mu.Unlock()

	go f.writeLoop(c)

	// Clients never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.remove(c)
}

func (f *Feed) writeLoop(c *feedClient) {
	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				f.remove(c)
				return
			}
		case <-c.done:
			return
		}
	}
}

// Publish queues ev for every connected client without blocking. Clients
// whose queue is full are dropped.
func (f *Feed) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	f.mu.RLock()
	clients := make([]*feedClient, 0, len(f.clients))
	for c := range f.clients {
		clients = append(clients, c)
	}
	f.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			f.remove(c)
		}
	}
}

func (f *Feed) remove(c *feedClient) {
	f.mu.Lock()
	delete(f.clients, c)
	f.mu.Unlock()
	c.close()
}

// ClientCount returns the number of connected clients.
func (f *Feed) ClientCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Close disconnects all clients.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for c := range f.clients {
		c.close()
		delete(f.clients, c)
	}
}

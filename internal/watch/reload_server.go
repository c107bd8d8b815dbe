package watch

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ReloadServer manages WebSocket connections for dev-time reload. The
// admin app's dev server connects and refreshes when generated files
// change.
type ReloadServer struct {
	connections map[*websocket.Conn]bool
	broadcast   chan *Event
	register    chan *websocket.Conn
	unregister  chan *websocket.Conn
	done        chan struct{}
	mutex       sync.RWMutex
	upgrader    websocket.Upgrader
}

// Event is one generation lifecycle message sent to browsers
type Event struct {
	Type      string   `json:"type"` // "generating", "generated", "failed"
	Resource  string   `json:"resource,omitempty"`
	Files     []string `json:"files,omitempty"`
	Message   string   `json:"message,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Duration  float64  `json:"duration,omitempty"` // Milliseconds
}

// NewReloadServer creates a new reload server
func NewReloadServer() *ReloadServer {
	rs := &ReloadServer{
		connections: make(map[*websocket.Conn]bool),
		broadcast:   make(chan *Event, 256),
		register:    make(chan *websocket.Conn),
		unregister:  make(chan *websocket.Conn),
		done:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					// Allow no origin (same-origin)
					return true
				}
				// Allow localhost only
				return strings.HasPrefix(origin, "http://localhost") ||
					strings.HasPrefix(origin, "https://localhost") ||
					strings.HasPrefix(origin, "http://127.0.0.1") ||
					strings.HasPrefix(origin, "https://127.0.0.1")
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	go rs.run()

	return rs
}

// run handles the WebSocket connection lifecycle
func (rs *ReloadServer) run() {
	for {
		select {
		case <-rs.done:
			log.Printf("[reload] Shutting down reload server")
			return

		case conn := <-rs.register:
			rs.mutex.Lock()
			rs.connections[conn] = true
			rs.mutex.Unlock()
			log.Printf("[reload] Client connected (total: %d)", rs.ConnectionCount())

		case conn := <-rs.unregister:
			rs.mutex.Lock()
			if _, ok := rs.connections[conn]; ok {
				delete(rs.connections, conn)
				conn.Close()
			}
			rs.mutex.Unlock()
			log.Printf("[reload] Client disconnected (total: %d)", rs.ConnectionCount())

		case event := <-rs.broadcast:
			rs.sendToAll(event)
		}
	}
}

// sendToAll sends an event to all connected clients
func (rs *ReloadServer) sendToAll(event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[reload] Failed to marshal event: %v", err)
		return
	}

	// Collect failed connections while holding the read lock
	rs.mutex.RLock()
	var failedConns []*websocket.Conn
	for conn := range rs.connections {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("[reload] Failed to send event: %v", err)
			failedConns = append(failedConns, conn)
		}
	}
	rs.mutex.RUnlock()

	// Remove failed connections with the write lock
	if len(failedConns) > 0 {
		rs.mutex.Lock()
		for _, conn := range failedConns {
			if _, ok := rs.connections[conn]; ok {
				conn.Close()
				delete(rs.connections, conn)
			}
		}
		rs.mutex.Unlock()
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket
func (rs *ReloadServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := rs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[reload] Failed to upgrade connection: %v", err)
		return
	}

	rs.register <- conn

	go rs.readMessages(conn)
}

// readMessages reads messages from the client (for keepalive)
func (rs *ReloadServer) readMessages(conn *websocket.Conn) {
	defer func() {
		rs.unregister <- conn
	}()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[reload] WebSocket error: %v", err)
			}
			break
		}
	}
}

// NotifyGenerating announces that a resource's regeneration started
func (rs *ReloadServer) NotifyGenerating(resource string, files []string) {
	rs.broadcast <- &Event{
		Type:      "generating",
		Resource:  resource,
		Files:     files,
		Timestamp: time.Now().Unix(),
	}
}

// NotifyGenerated announces a completed regeneration; clients reload
func (rs *ReloadServer) NotifyGenerated(resource string, duration time.Duration) {
	rs.broadcast <- &Event{
		Type:      "generated",
		Resource:  resource,
		Timestamp: time.Now().Unix(),
		Duration:  float64(duration.Milliseconds()),
	}
}

// NotifyFailed announces a failed regeneration with its output
func (rs *ReloadServer) NotifyFailed(resource, message string) {
	rs.broadcast <- &Event{
		Type:      "failed",
		Resource:  resource,
		Message:   message,
		Timestamp: time.Now().Unix(),
	}
}

// ConnectionCount returns the number of active connections
func (rs *ReloadServer) ConnectionCount() int {
	rs.mutex.RLock()
	defer rs.mutex.RUnlock()
	return len(rs.connections)
}

// Close closes all connections and stops the server
func (rs *ReloadServer) Close() {
	close(rs.done)

	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	for conn := range rs.connections {
		conn.Close()
	}
	rs.connections = make(map[*websocket.Conn]bool)
}

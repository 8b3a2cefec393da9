// Package notify pushes "something changed" events to websocket
// subscribers. Delivery is best effort: no acks, no retries, and a
// subscriber whose queue is full misses the event.
package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/logging"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// Event is the frame sent to subscribers.
type Event struct {
	Type string `json:"type"`
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected subscribers and fans events out to them.
type Hub struct {
	log      logging.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
}

func NewHub(log logging.Logger) *Hub {
	return &Hub{
		log: log.With("module", "notify"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// ServeWS upgrades the request and keeps the subscriber registered until
// the connection goes away. Anything the peer sends is discarded.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	if h.isClosed() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		h.log.Warn(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, sendBufferSize)}
	if !h.register(sub) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go h.writeLoop(sub)
	h.readLoop(r.Context(), sub)
}

// Broadcast queues event for every subscriber without blocking.
func (h *Hub) Broadcast(event string) {
	msg, err := json.Marshal(Event{Type: event})
	if err != nil {
		h.log.Error(context.Background(), "marshal event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	dropped := 0
	for sub := range h.subs {
		select {
		case sub.send <- msg:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.log.Debug(context.Background(), "event dropped for slow subscribers", "event", event, "dropped", dropped)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber and refuses new ones. The HTTP
// server does not track hijacked connections, so shutdown must call this.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.send)
	}
}

func (h *Hub) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func (h *Hub) register(sub *subscriber) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.subs[sub] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()

	h.log.Info(context.Background(), "subscriber connected", "remote", sub.conn.RemoteAddr().String(), "subscribers", n)
	return true
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.send)
	}
	n := len(h.subs)
	h.mu.Unlock()

	h.log.Info(context.Background(), "subscriber disconnected", "remote", sub.conn.RemoteAddr().String(), "subscribers", n)
}

func (h *Hub) readLoop(ctx context.Context, sub *subscriber) {
	defer func() {
		h.unregister(sub)
		_ = sub.conn.Close()
	}()

	sub.conn.SetReadLimit(maxMessageSize)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug(ctx, "subscriber read error", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sub.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

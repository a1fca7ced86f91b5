// Package spectate serves a read-only live feed of a running game over
// WebSocket. The game loop publishes snapshots; viewers never block it.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

// Message is the frame sent to viewers.
type Message struct {
	Type  string         `json:"type"` // Always "state"
	State snake.Snapshot `json:"state"`
}

// Hub fans snapshots out to connected viewers.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	viewers map[*viewer]struct{}
	latest  []byte
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub. A nil logger discards diagnostics.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Read-only feed, any origin may watch
			},
		},
		viewers: make(map[*viewer]struct{}),
	}
}

// Handler routes /ws to the live feed and /snapshot to the latest state.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/snapshot", h.ServeSnapshot)
	return mux
}

// Serve listens on addr until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator feed listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		h.Close()
		return srv.Shutdown(shutdownCtx)
	}
}

// Broadcast publishes a snapshot. Viewers whose buffer is full miss the frame.
func (h *Hub) Broadcast(s snake.Snapshot) {
	data, err := json.Marshal(Message{Type: "state", State: s})
	if err != nil {
		h.logger.Error("cannot encode snapshot", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = data
	for v := range h.viewers {
		select {
		case v.send <- data:
		default:
			h.logger.Debug("viewer too slow, frame dropped", "remote", v.conn.RemoteAddr())
		}
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		v.conn.Close()
	}
}

// ServeWS upgrades the request and streams snapshots until the viewer leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	v := &viewer{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(v)
	h.logger.Info("viewer connected", "remote", conn.RemoteAddr())

	go v.writeLoop()

	// Keep connection alive; viewers have nothing to say.
	for {
		var val any
		if err := conn.ReadJSON(&val); err != nil {
			break
		}
	}

	h.unregister(v)
	conn.Close()
	h.logger.Info("viewer disconnected", "remote", conn.RemoteAddr())
}

// ServeSnapshot writes the latest state as JSON.
func (h *Hub) ServeSnapshot(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	data := h.latest
	h.mu.Unlock()

	if data == nil {
		http.Error(w, "no game running", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data) //nolint:errcheck // Client went away
}

func (h *Hub) register(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers[v] = struct{}{}
	if h.latest != nil {
		v.send <- h.latest
	}
}

func (h *Hub) unregister(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.viewers[v]; ok {
		delete(h.viewers, v)
		close(v.send)
	}
}

func (v *viewer) writeLoop() {
	for data := range v.send {
		v.conn.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck // Write reports it
		if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			v.conn.Close()
			// Drain until the reader unregisters us.
			for range v.send {
			}
			return
		}
	}
}

// internal/httpserver/sse.go
//
// Server-sent-events push of game state snapshots. This is the explicit
// state-change notification that replaces the original UI framework's
// reactive auto-recomputation: the server broadcasts a fresh snapshot
// after every mutation and the client re-renders from it.

package httpserver

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// sseClient represents a single SSE connection.
type sseClient struct {
	ch        chan string
	sessionID string
}

// broadcaster manages SSE clients grouped by game session.
type broadcaster struct {
	mu      sync.RWMutex
	clients map[*sseClient]struct{}
}

// newBroadcaster creates an empty broadcaster.
func newBroadcaster() *broadcaster {
	return &broadcaster{
		clients: make(map[*sseClient]struct{}),
	}
}

// register adds a client for a session and returns it.
func (b *broadcaster) register(sessionID string) *sseClient {
	c := &sseClient{
		ch:        make(chan string, sseChannelBuffer),
		sessionID: sessionID,
	}
	b.mu.Lock()
	b.clients[c] = struct{}{}
	b.mu.Unlock()
	return c
}

// unregister removes a client and closes its channel.
func (b *broadcaster) unregister(c *sseClient) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.ch)
	}
	b.mu.Unlock()
}

// broadcast sends a message to all clients of a session.
func (b *broadcaster) broadcast(sessionID, data string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for c := range b.clients {
		if c.sessionID == sessionID {
			select {
			case c.ch <- data:
			default:
				// Channel full, skip slow client.
			}
		}
	}
}

// clientCount returns the number of connected clients for a session.
func (b *broadcaster) clientCount(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for c := range b.clients {
		if c.sessionID == sessionID {
			n++
		}
	}
	return n
}

// serveSSE handles one SSE connection for a session, pushing snapshots
// until the client goes away.
func (b *broadcaster) serveSSE(w http.ResponseWriter, r *http.Request, sessionID string, onConnect func(c *sseClient)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error":"streaming_unsupported"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := b.register(sessionID)
	defer b.unregister(c)

	if onConnect != nil {
		onConnect(c)
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-c.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}

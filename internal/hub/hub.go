package hub

import (
	"encoding/json"
	"sync"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single subscriber connection (a reader of a post's
// comment stream). It's essentially a channel that the SSE handler will
// listen to.
type Client chan []byte

// Hub manages comment-stream subscribers per post.
type Hub struct {
	posts map[uint]map[Client]bool
	mu    sync.RWMutex
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		posts: make(map[uint]map[Client]bool),
	}
}

// Subscribe adds a new client to a specific post's stream.
func (h *Hub) Subscribe(postID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.posts[postID]; !ok {
		h.posts[postID] = make(map[Client]bool)
	}
	h.posts[postID][client] = true
}

// Unsubscribe removes a client from a post's stream.
func (h *Hub) Unsubscribe(postID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.posts[postID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.posts, postID)
			}
		}
	}
}

// Broadcast sends an event to all clients watching a specific post.
func (h *Hub) Broadcast(postID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.posts[postID]; ok {
		messageBytes, err := json.Marshal(event)
		if err != nil {
			return
		}

		for client := range clients {
			// Use a non-blocking send to prevent a slow client from blocking the hub.
			select {
			case client <- messageBytes:
			default:
				// Client channel is full, maybe they are disconnected or slow.
				// The unsubscribe logic will handle cleaning this up eventually.
			}
		}
	}
}

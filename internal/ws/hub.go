package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Event is broadcast to connected clients whenever a task changes.
type Event struct {
	Type    string `json:"type"` // task.created, task.updated, task.deleted
	TaskID  int    `json:"task_id"`
	ActorID int    `json:"actor_id"`
}

// Client wraps a websocket connection with a write lock.
type Client struct {
	Conn *websocket.Conn
	Mu   sync.Mutex
}

// Hub fans task events out to every registered client.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish queues an event without blocking the request handler. Events are
// dropped when the broadcast buffer is full.
func (h *Hub) Publish(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
	}
}

// Run manages register, unregister, and broadcast. Call it in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, message)
				client.Mu.Unlock()
				if err != nil {
					delete(h.Clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}

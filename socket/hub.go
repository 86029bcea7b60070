package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection subscribed to a match room. Outbound
// frames go through the buffered Send channel, which gives each subscriber
// FIFO delivery in publish order.
type Client struct {
	UserID  string
	MatchID string
	Send    chan []byte
	Conn    *websocket.Conn
}

// RoomMessage is a frame addressed to every subscriber of a match room.
// Exclude, when set, skips one client (typing indicators go to the room
// minus the sender).
type RoomMessage struct {
	MatchID string
	Data    []byte
	Exclude *Client
}

// Hub is the connection registry: match room -> connected clients. It is
// injected into the handlers that need it rather than living as a package
// global, and all room membership changes funnel through Run.
type Hub struct {
	Rooms      map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan RoomMessage
	mu         sync.RWMutex
}

// NewHub creates an empty connection registry
func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan RoomMessage),
	}
}

// Run processes registry events until the process exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.MatchID] == nil {
				h.Rooms[client.MatchID] = make(map[*Client]bool)
			}
			h.Rooms[client.MatchID][client] = true
			h.mu.Unlock()
			log.Printf("👥 User %s joined room %s", client.UserID, client.MatchID)
		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.Rooms[client.MatchID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
				}
				if len(clients) == 0 {
					delete(h.Rooms, client.MatchID)
				}
			}
			h.mu.Unlock()
		case msg := <-h.Broadcast:
			h.deliver(msg)
		}
	}
}

// deliver fans a frame out to the room. Clients whose send buffer is full
// are dropped; they reconcile through a thread re-fetch on reconnect.
func (h *Hub) deliver(msg RoomMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.Rooms[msg.MatchID] {
		if client == msg.Exclude {
			continue
		}
		select {
		case client.Send <- msg.Data:
		default:
			close(client.Send)
			delete(h.Rooms[msg.MatchID], client)
			log.Printf("⚠️ Dropped slow client %s from room %s", client.UserID, msg.MatchID)
		}
	}
}

// Emit marshals an event envelope and broadcasts it to the whole room.
// Broadcast failures are delivery-side only and never affect durable state.
func (h *Hub) Emit(matchID, event string, payload interface{}) {
	h.emit(matchID, event, payload, nil)
}

// EmitExcept broadcasts to the room minus one client
func (h *Hub) EmitExcept(matchID, event string, payload interface{}, exclude *Client) {
	h.emit(matchID, event, payload, exclude)
}

func (h *Hub) emit(matchID, event string, payload interface{}, exclude *Client) {
	data, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		log.Printf("❌ Failed to marshal %s event for room %s: %v", event, matchID, err)
		return
	}
	h.Broadcast <- RoomMessage{MatchID: matchID, Data: data, Exclude: exclude}
}

// RoomSize reports the number of connections in a match room
func (h *Hub) RoomSize(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Rooms[matchID])
}

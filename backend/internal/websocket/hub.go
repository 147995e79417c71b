package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/ratefeed"
)

// Client represents a single WebSocket client connection.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte // Buffered channel for outbound messages
}

// Hub manages WebSocket clients and broadcasts rate updates to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

var GlobalHub *Hub

// NewHub creates and initializes a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the Hub's event loop.
func (h *Hub) Run() {
	log.Println("Starting WebSocket Hub...")
	go h.listenToRateUpdates()

	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("Client registered: %s", client.Conn.RemoteAddr())

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("Client unregistered: %s", client.Conn.RemoteAddr())
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Client's send buffer is full; drop the update for that
					// client rather than stalling the broadcast loop.
					log.Printf("Client send buffer full, dropping update: %s", client.Conn.RemoteAddr())
				}
			}
			h.mu.RUnlock()
		}
	}
}

// listenToRateUpdates drains the rate feed and broadcasts each update.
func (h *Hub) listenToRateUpdates() {
	log.Println("Hub listening for rate updates...")
	for update := range ratefeed.Updates {
		msgBytes, err := json.Marshal(update)
		if err != nil {
			log.Printf("Error marshalling rate update: %v", err)
			continue
		}
		h.broadcast <- msgBytes
	}
}

// InitializeGlobalHub creates and runs the global Hub instance.
func InitializeGlobalHub() {
	GlobalHub = NewHub()
	go GlobalHub.Run()
}

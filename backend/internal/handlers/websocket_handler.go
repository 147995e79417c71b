package handlers

import (
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	ws "github.com/user/nairaswap/backend/internal/websocket"
)

// RateWSEndpoint is the handler for the WebSocket bitcoin rate feed.
// The feed is public; no token is required to watch rates.
func RateWSEndpoint(c *websocket.Conn) {
	client := &ws.Client{
		Conn: c,
		Send: make(chan []byte, 256),
	}

	ws.GlobalHub.Register <- client

	go clientWritePump(client)
	go clientReadPump(client)

	log.Printf("WebSocket connection established: %s", c.RemoteAddr())
}

// clientWritePump pumps messages from the hub to the websocket connection.
func clientWritePump(client *ws.Client) {
	defer func() {
		client.Conn.Close()
		log.Printf("Write pump stopped for %s", client.Conn.RemoteAddr())
	}()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Error writing message to %s: %v", client.Conn.RemoteAddr(), err)
			ws.GlobalHub.Unregister <- client
			return
		}
	}
	// Hub closed the Send channel; nothing more to write.
}

// clientReadPump drains the websocket connection so disconnects are noticed.
// Clients don't send anything meaningful on the rate feed.
func clientReadPump(client *ws.Client) {
	defer func() {
		ws.GlobalHub.Unregister <- client
		client.Conn.Close()
		log.Printf("Read pump stopped for %s", client.Conn.RemoteAddr())
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Client disconnected unexpectedly %s: %v", client.Conn.RemoteAddr(), err)
			}
			break
		}
	}
}

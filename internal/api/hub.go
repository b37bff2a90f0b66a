/*
Package api
File: hub.go
Description:
    The WebSocket Hub is the real-time communication layer.

    It maintains a registry of all connected clients and routes broadcast
    messages to the room (game) each client joined. After every committed
    turn the handlers push the full state, its digest and the new log
    entries to everyone watching that game.

    Architecture:
    - Hub: the singleton manager.
    - Client: one browser connection, pinned to a game room.
    - ServeWs: the HTTP handler that upgrades a GET request to a WebSocket.
*/

package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Message defines the standard JSON envelope for all real-time traffic.
type Message struct {
	Type    string      `json:"type"`    // Event type (e.g., "turn_committed")
	GameID  string      `json:"game_id"` // Room this message belongs to
	Payload interface{} `json:"payload"` // The actual data
}

// roomMessage is a pre-marshaled frame addressed to one game room.
type roomMessage struct {
	gameID string
	data   []byte
}

// Client represents a single connected spectator or player tab.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte // Buffered channel of outbound frames
	gameID   string      // Room filter; empty means all rooms
	compress bool        // Client negotiated lz4 binary frames
}

// Hub maintains the set of active clients and broadcasts room messages.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan roomMessage
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new Hub instance. Call once and run as a goroutine.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan roomMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run is the main event loop for the Hub. It blocks; run it in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("WS: New connection registered (game=%s)", client.gameID)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				if client.gameID != "" && client.gameID != message.gameID {
					continue
				}
				select {
				case client.send <- message.data:
				default:
					// Full send buffer: assume the client hung or left.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastToGame queues a marshaled frame for every client in a room.
func (h *Hub) BroadcastToGame(gameID string, data []byte) {
	h.Broadcast <- roomMessage{gameID: gameID, data: data}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the HTTP request to a WebSocket. Query parameters:
// ?game=<id> pins the client to one room, ?compress=lz4 switches the
// client to LZ4 binary frames.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WS Upgrade Error:", err)
		return
	}

	client := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		gameID:   r.URL.Query().Get("game"),
		compress: r.URL.Query().Get("compress") == "lz4",
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so pings and close frames are handled.
// Incoming traffic is otherwise ignored: all mutations go through HTTP.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS Error: %v", err)
			}
			break
		}
	}
}

// writePump pumps frames from the hub to the websocket connection,
// compressing for clients that negotiated it.
func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()

	for message := range c.send {
		if c.compress {
			if err := c.conn.WriteMessage(websocket.BinaryMessage, compressLZ4(message)); err != nil {
				return
			}
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

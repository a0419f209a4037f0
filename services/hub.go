package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub pushes refresh signals to admin clients watching a challenge.
// Whenever the assignment set of a challenge changes, every watcher of
// that challenge gets a summary_refresh message telling it to re-fetch.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

type Client struct {
	hub         *Hub
	id          string
	socket      *websocket.Conn
	send        chan []byte
	challengeID string
	userID      string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %s watching challenge %s (user %s) - total clients: %d", client.id, client.challengeID, client.userID, h.ClientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client %s stopped watching challenge %s - total clients: %d", client.id, client.challengeID, len(h.clients))
			}
			h.mutex.Unlock()
		}
	}
}

// NotifyChallenge broadcasts a summary_refresh to every client watching
// the challenge. Called after every assignment create, edit or delete.
func (h *Hub) NotifyChallenge(challengeID string) {
	message := Message{
		Type: "summary_refresh",
		Payload: map[string]interface{}{
			"challengeId": challengeID,
		},
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling refresh message: %v", err)
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		if client.challengeID != challengeID {
			continue
		}
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.mutex.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) RegisterClient(conn *websocket.Conn, challengeID, userID string) *Client {
	client := &Client{
		hub:         h,
		id:          uuid.NewString(),
		socket:      conn,
		send:        make(chan []byte, 16),
		challengeID: challengeID,
		userID:      userID,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}

		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		response := Message{Type: "pong", Payload: "pong"}
		data, _ := json.Marshal(response)
		c.send <- data

	default:
		log.Printf("Unknown message type %q from client %s watching challenge %s", msg.Type, c.id, c.challengeID)
	}
}

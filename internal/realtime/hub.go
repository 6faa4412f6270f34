// Package realtime implements the publish/subscribe channel that pushes
// entity-changed and notification events to connected clients.
package realtime

import (
	"encoding/json"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Event is the frame sent to clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Names of the events emitted by the handlers.
const (
	EventNewPost         = "newPost"
	EventPostUpdated     = "postUpdated"
	EventPostDeleted     = "postDeleted"
	EventRecipeUpdated   = "recipeUpdated"
	EventNewNotification = "newNotification"
)

type envelope struct {
	userID string // empty means broadcast to everyone
	frame  []byte
}

// Hub owns the set of connected clients and distributes frames to them.
// Emission is fire-and-forget: a slow client or a full queue drops frames,
// it never blocks the emitting request.
type Hub struct {
	log *zap.Logger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	emit       chan envelope

	connected atomic.Int64
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		emit:       make(chan envelope, 256),
	}
}

// Run owns the client map. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.connected.Store(int64(len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.connected.Store(int64(len(h.clients)))
			}
		case env := <-h.emit:
			for c := range h.clients {
				if env.userID != "" && c.userID != env.userID {
					continue
				}
				select {
				case c.send <- env.frame:
				default:
					// client can't keep up, drop the frame
				}
			}
		}
	}
}

// Broadcast pushes an event to every connected client.
func (h *Hub) Broadcast(event string, data any) {
	h.publish("", event, data)
}

// EmitTo pushes an event only to clients subscribed as the given user.
func (h *Hub) EmitTo(userID primitive.ObjectID, event string, data any) {
	h.publish(userID.Hex(), event, data)
}

func (h *Hub) publish(userID, event string, data any) {
	frame, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		h.log.Error("marshal event", zap.String("event", event), zap.Error(err))
		return
	}

	select {
	case h.emit <- envelope{userID: userID, frame: frame}:
	default:
		h.log.Warn("fan-out queue full, dropping event", zap.String("event", event))
	}
}

// Connected reports the current number of registered clients.
func (h *Hub) Connected() int {
	return int(h.connected.Load())
}

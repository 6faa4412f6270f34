package realtime

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendQueueSize  = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Verifier checks an identity token and returns the embedded user id.
type Verifier interface {
	Verify(raw string) (primitive.ObjectID, error)
}

// Client is one websocket connection. A client that presented a valid
// token is subscribed to its user's room and receives recipient-scoped
// events; everyone receives broadcasts.
type Client struct {
	id     string
	userID string // hex, empty for anonymous connections
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
}

// ServeWS upgrades the request and registers the connection. A token may be
// passed as the "token" query parameter; an invalid or absent token still
// yields a broadcast-only connection.
func (h *Hub) ServeWS(tokens Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			id:   uuid.NewString(),
			hub:  h,
			conn: conn,
			send: make(chan []byte, sendQueueSize),
		}
		if raw := c.Query("token"); raw != "" {
			if userID, err := tokens.Verify(raw); err == nil {
				client.userID = userID.Hex()
			}
		}

		h.register <- client
		h.log.Info("client connected",
			zap.String("client", client.id),
			zap.String("user", client.userID),
		)

		go client.writePump()
		go client.readPump()
	}
}

// readPump drains the connection so control frames are processed and
// detects the client going away. Inbound data frames are ignored; the
// channel is server-to-client only.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
		c.hub.log.Info("client disconnected", zap.String("client", c.id))
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

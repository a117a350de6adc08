//START OF FILE kingbandits/internal/network/client.go
package network

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Outbound frames buffered per client before Deliver starts dropping.
	sendQueueSize = 256
)

// Client is one WebSocket connection. The Hub owns its lifecycle; the read and
// write loops only move bytes.
type Client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
	log  *zap.Logger

	// Set by the Hub when the client is dropped. Accessed only from the Hub goroutine.
	closed bool
}

func newClient(conn *websocket.Conn, hub *Hub) *Client {
	id := uuid.NewString()
	return &Client{
		id:   id,
		conn: conn,
		hub:  hub,
		send: make(chan []byte, sendQueueSize),
		log:  hub.log.Named("client").With(zap.String("peer", id)),
	}
}

func (c *Client) ID() string { return c.id }

func (c *Client) RemoteAddr() string { return c.conn.RemoteAddr().String() }

// Deliver must be called from the Hub goroutine.
func (c *Client) Deliver(msg Outbound) bool {
	if c.closed {
		return false
	}
	data, err := Encode(msg)
	if err != nil {
		c.log.Error("dropping unencodable message", zap.String("type", msg.MessageType()), zap.Error(err))
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		c.log.Warn("send queue full, dropping message", zap.String("type", msg.MessageType()))
		return false
	}
}

func (c *Client) readLoop() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("unexpected close", zap.Error(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		select {
		case c.hub.incoming <- clientMessage{client: c, data: data}:
		case <-c.hub.done:
			return
		}
	}
}

// writeLoop pumps queued frames to the connection and keeps it alive with pings.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The Hub closed the queue.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Warn("write failed", zap.Error(err))
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

//END OF FILE kingbandits/internal/network/client.go

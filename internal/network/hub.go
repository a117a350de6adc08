//START OF FILE kingbandits/internal/network/hub.go
package network

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrHubStopped is returned by Do once the Hub loop has exited.
var ErrHubStopped = errors.New("hub stopped")

// clientMessage pairs a frame with the client that sent it.
type clientMessage struct {
	client *Client
	data   []byte
}

// Hub is the single event loop of the server. Registration, frames, scheduled
// tasks and synchronous requests all run on its goroutine, so the handler
// never needs a lock.
type Hub struct {
	// Accessed only from the Hub goroutine.
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	incoming   chan clientMessage
	tasks      chan func()

	done chan struct{}
	log  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		tasks:      make(chan func(), 64),
		done:       make(chan struct{}),
		log:        logger.Named("hub"),
	}
}

// Run processes events until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context, handler EventHandler) {
	h.log.Info("event loop started")
	defer func() {
		for client := range h.clients {
			h.drop(client)
			handler.OnDisconnect(client)
		}
		close(h.done)
		h.log.Info("event loop stopped")
	}()

	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.log.Debug("client registered", zap.String("peer", client.id), zap.String("addr", client.RemoteAddr()))
			handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.log.Debug("client unregistered", zap.String("peer", client.id))
				handler.OnDisconnect(client)
			}

		case msg := <-h.incoming:
			// Frames racing an unregister are discarded.
			if _, ok := h.clients[msg.client]; ok {
				handler.OnMessage(msg.client, msg.data)
			}

		case fn := <-h.tasks:
			fn()

		case <-ctx.Done():
			return
		}
	}
}

// drop removes client and closes its send queue, which stops its writer.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	client.closed = true
	close(client.send)
}

// Post queues fn to run on the loop. It reports false if the Hub has stopped.
func (h *Hub) Post(fn func()) bool {
	select {
	case h.tasks <- fn:
		return true
	case <-h.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to return. Calling it from the
// loop itself deadlocks.
func (h *Hub) Do(fn func()) error {
	finished := make(chan struct{})
	if !h.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrHubStopped
	}
	select {
	case <-finished:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// AfterFunc runs fn on the loop once d has elapsed.
func (h *Hub) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { h.Post(fn) })
}

// Done is closed when the loop has exited.
func (h *Hub) Done() <-chan struct{} { return h.done }

//END OF FILE kingbandits/internal/network/hub.go

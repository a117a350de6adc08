//START OF FILE kingbandits/internal/network/handler.go
package network

// Peer is a connected client as seen by the event handler.
type Peer interface {
	// ID is the connection identity, stable for the life of the connection.
	ID() string

	RemoteAddr() string

	// Deliver queues msg without blocking. It reports false when the frame
	// was dropped because the peer is gone or its queue is full.
	Deliver(msg Outbound) bool
}

// EventHandler connects the network layer to the game logic. Every method is
// called from the Hub goroutine, one at a time.
type EventHandler interface {
	// OnConnect is called once a new client is registered.
	OnConnect(p Peer)

	// OnDisconnect is called after the client left. Deliver on p is a no-op from here on.
	OnDisconnect(p Peer)

	// OnMessage is called with every text frame received from p.
	OnMessage(p Peer, data []byte)
}

//END OF FILE kingbandits/internal/network/handler.go

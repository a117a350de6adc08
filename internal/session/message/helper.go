package message

import (
	"fmt"

	"kingbandits/internal/network"
)

// Send delivers msg to p. It is a no-op for a nil peer.
func Send(p network.Peer, msg Message) bool {
	if p == nil {
		return false
	}
	return p.Deliver(msg)
}

// SendError delivers an ERROR message to p.
func SendError(p network.Peer, format string, args ...any) bool {
	return Send(p, Error{Message: fmt.Sprintf(format, args...)})
}

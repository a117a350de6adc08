//START OF FILE kingbandits/internal/network/protocol.go
package network

import (
	"encoding/json"
	"fmt"
)

// MaxMessageSize bounds inbound frames. Game commands are a few hundred bytes.
const MaxMessageSize = 16 * 1024

// Outbound is any server to client message. The wire form is the JSON object
// of the value with a "type" member carrying MessageType.
type Outbound interface {
	MessageType() string
}

// Encode frames msg as a flat JSON object tagged with its type.
func Encode(msg Outbound) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.MessageType(), err)
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("encode %s: payload is not a JSON object", msg.MessageType())
	}

	tag, _ := json.Marshal(msg.MessageType())
	out := make([]byte, 0, len(body)+len(tag)+9)
	out = append(out, `{"type":`...)
	out = append(out, tag...)
	if len(body) > 2 {
		out = append(out, ',')
	}
	return append(out, body[1:]...), nil
}

//END OF FILE kingbandits/internal/network/protocol.go

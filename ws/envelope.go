package ws

import (
	"encoding/json"

	"flack/domain/event"
)

// Envelope is the wire frame: a named event plus its raw payload. Inbound
// frames keep Data raw so each handler decodes its own shape.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EncodeEvent marshals an outbound event into a wire frame.
func EncodeEvent(e event.Event) ([]byte, error) {
	payload, err := json.Marshal(e.Payload())
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: e.Name(), Data: payload})
}

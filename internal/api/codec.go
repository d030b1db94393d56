// Package api defines the gearcheck.v1 Connect services: procedure names,
// request and response messages, handler constructors and typed clients.
//
// Messages are plain Go structs carried as JSON, so browsers can call the
// services with fetch and the Connect protocol headers.
package api

import (
	"encoding/json"
	"fmt"
)

// Codec marshals messages as JSON. Its name replaces Connect's built-in
// "json" codec, which only accepts protobuf messages.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string {
	return "json"
}

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid JSON message: %w", err)
	}
	return nil
}

package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codecName doubles as the content subtype: application/json.
const codecName = "json"

// jsonCodec marshals plain structs with encoding/json. Connect's built-in
// JSON codec only accepts protobuf messages.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON returns the option that installs the JSON codec.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}

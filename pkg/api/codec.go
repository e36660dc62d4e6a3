package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// CodecName replaces connect's protobuf JSON codec for these services.
const CodecName = "json"

// Codec marshals the plain Go messages of this package as JSON.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string {
	return CodecName
}

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

package rpc

import (
	"connectrpc.com/connect"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonCodec lets Connect carry the plain Go message structs of this package
// as JSON. It replaces Connect's default "json" codec, which only accepts
// protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}

// WithJSON is the codec option every handler and client of this package uses.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}

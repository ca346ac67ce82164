// Package api is the wire contract between the guialocal client and server:
// the DirectoryService gRPC service, its messages and the JSON codec they
// travel in.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of the JSON codec.
const CodecName = "json"

// Codec marshals messages as JSON.
var Codec encoding.Codec = jsonCodec{}

func init() {
	encoding.RegisterCodec(Codec)
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

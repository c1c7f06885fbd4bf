package ports

import "github.com/motoko-tools/ttlex/wireformat"

// Codec encodes structural values into bytes for a host and back.
type Codec interface {
	// Name is the identifier used in configuration ("json", "msgpack", "cbor").
	Name() string
	Encode(v wireformat.Value) ([]byte, error)
	Decode(data []byte) (wireformat.Value, error)
}

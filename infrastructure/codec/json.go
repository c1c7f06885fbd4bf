package codec

import (
	"github.com/motoko-tools/ttlex/domain/ports"
	"github.com/motoko-tools/ttlex/wireformat"
)

var _ ports.Codec = JSON{}

// JSON encodes values as compact JSON with record keys in insertion order.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Encode(v wireformat.Value) ([]byte, error) {
	return v.MarshalJSON()
}

func (JSON) Decode(data []byte) (wireformat.Value, error) {
	var v wireformat.Value
	if err := v.UnmarshalJSON(data); err != nil {
		return wireformat.Value{}, err
	}
	return v, nil
}

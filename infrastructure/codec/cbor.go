package codec

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/motoko-tools/ttlex/domain/ports"
	"github.com/motoko-tools/ttlex/wireformat"
)

var _ ports.Codec = (*CBOR)(nil)

// CBOR produces canonical CBOR (RFC 7049 section 3.9): map keys are sorted
// and numbers take their shortest form, so equal values encode to equal
// bytes. Record key order is not preserved.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBOR builds the canonical encoder and a decoder that yields string-keyed maps.
func NewCBOR() (*CBOR, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor: encoder: %w", err)
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("cbor: decoder: %w", err)
	}
	return &CBOR{enc: enc, dec: dec}, nil
}

func (c *CBOR) Name() string { return "cbor" }

func (c *CBOR) Encode(v wireformat.Value) ([]byte, error) {
	return c.enc.Marshal(v.Interface())
}

func (c *CBOR) Decode(data []byte) (wireformat.Value, error) {
	var raw any
	if err := c.dec.Unmarshal(data, &raw); err != nil {
		return wireformat.Value{}, fmt.Errorf("cbor: %w", err)
	}
	return wireformat.From(raw)
}

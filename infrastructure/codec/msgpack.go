package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/motoko-tools/ttlex/domain/ports"
	"github.com/motoko-tools/ttlex/wireformat"
)

var _ ports.Codec = MsgPack{}

// MsgPack walks the value directly so that record keys keep their order.
type MsgPack struct{}

func (MsgPack) Name() string { return "msgpack" }

func (MsgPack) Encode(v wireformat.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := encodeMsgPack(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeMsgPack(enc *msgpack.Encoder, v wireformat.Value) error {
	switch v.Kind() {
	case wireformat.KindNull:
		return enc.EncodeNil()
	case wireformat.KindBool:
		return enc.EncodeBool(v.AsBool())
	case wireformat.KindInt:
		return enc.EncodeInt(v.AsInt())
	case wireformat.KindFloat:
		return enc.EncodeFloat64(v.AsFloat())
	case wireformat.KindString:
		return enc.EncodeString(v.AsString())
	case wireformat.KindSeq:
		if err := enc.EncodeArrayLen(v.Len()); err != nil {
			return err
		}
		for i, item := range v.Items() {
			if err := encodeMsgPack(enc, item); err != nil {
				return &wireformat.PathError{Index: i, Err: err}
			}
		}
		return nil
	case wireformat.KindMap:
		if err := enc.EncodeMapLen(v.Len()); err != nil {
			return err
		}
		for i, key := range v.Keys() {
			if err := enc.EncodeString(key); err != nil {
				return err
			}
			if err := encodeMsgPack(enc, v.Index(i)); err != nil {
				return &wireformat.PathError{Key: key, Err: err}
			}
		}
		return nil
	default:
		return fmt.Errorf("msgpack: unknown value kind %s", v.Kind())
	}
}

func (MsgPack) Decode(data []byte) (wireformat.Value, error) {
	r := bytes.NewReader(data)
	v, err := decodeMsgPack(msgpack.NewDecoder(r))
	if err != nil {
		return wireformat.Value{}, fmt.Errorf("msgpack: %w", err)
	}
	if r.Len() > 0 {
		return wireformat.Value{}, fmt.Errorf("msgpack: %d trailing bytes", r.Len())
	}
	return v, nil
}

func decodeMsgPack(dec *msgpack.Decoder) (wireformat.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return wireformat.Value{}, err
	}

	switch {
	case c == msgpcode.Nil:
		return wireformat.Null(), dec.DecodeNil()
	case c == msgpcode.True || c == msgpcode.False:
		b, err := dec.DecodeBool()
		return wireformat.Bool(b), err
	case c == msgpcode.Float || c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return wireformat.Value{}, err
		}
		return wireformat.Float(f)
	case msgpcode.IsFixedNum(c),
		c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64,
		c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32:
		n, err := dec.DecodeInt64()
		if err != nil {
			return wireformat.Value{}, err
		}
		return wireformat.Int(n)
	case c == msgpcode.Uint64:
		n, err := dec.DecodeUint64()
		if err != nil {
			return wireformat.Value{}, err
		}
		return wireformat.Int(n)
	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		return wireformat.String(s), err
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return wireformat.Value{}, err
		}
		items := make([]wireformat.Value, 0, n)
		for i := range n {
			item, err := decodeMsgPack(dec)
			if err != nil {
				return wireformat.Value{}, &wireformat.PathError{Index: i, Err: err}
			}
			items = append(items, item)
		}
		return wireformat.Seq(items...), nil
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return wireformat.Value{}, err
		}
		fields := make([]wireformat.Field, 0, n)
		for range n {
			key, err := dec.DecodeString()
			if err != nil {
				return wireformat.Value{}, fmt.Errorf("map key: %w", err)
			}
			fv, err := decodeMsgPack(dec)
			if err != nil {
				return wireformat.Value{}, &wireformat.PathError{Key: key, Err: err}
			}
			fields = append(fields, wireformat.F(key, fv))
		}
		return wireformat.Object(fields...), nil
	default:
		return wireformat.Value{}, fmt.Errorf("unsupported code 0x%02x", c)
	}
}

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoko-tools/ttlex/wireformat"
)

func sample(t *testing.T) wireformat.Value {
	t.Helper()
	line, err := wireformat.Int(3)
	require.NoError(t, err)
	start, err := wireformat.Int(-12)
	require.NoError(t, err)
	big, err := wireformat.Int(wireformat.MaxSafeInteger)
	require.NoError(t, err)
	ratio, err := wireformat.Float(0.5)
	require.NoError(t, err)
	whole, err := wireformat.Float(2.0)
	require.NoError(t, err)

	return wireformat.Object(
		wireformat.F("token_type", wireformat.String("Ident")),
		wireformat.F("data", wireformat.Seq(line, start, big, ratio, whole)),
		wireformat.F("ok", wireformat.Bool(true)),
		wireformat.F("pair", wireformat.Null()),
		wireformat.F("nested", wireformat.Object(wireformat.F("z", wireformat.String("é")))),
	)
}

func TestCodecs_RoundTrip(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, err := ByName(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			want := sample(t)
			data, err := c.Encode(want)
			require.NoError(t, err)

			got, err := c.Decode(data)
			require.NoError(t, err)
			assert.True(t, wireformat.Equal(want, got), "decoded %v", got.Interface())
		})
	}
}

func TestCodecs_AgreeOnShape(t *testing.T) {
	v := sample(t)
	var decoded []wireformat.Value
	for _, name := range Names() {
		c, err := ByName(name)
		require.NoError(t, err)
		data, err := c.Encode(v)
		require.NoError(t, err)
		got, err := c.Decode(data)
		require.NoError(t, err)
		decoded = append(decoded, got)
	}
	for i := 1; i < len(decoded); i++ {
		assert.True(t, wireformat.Equal(decoded[0], decoded[i]))
	}
}

func TestJSON_KeepsKeyOrder(t *testing.T) {
	data, err := JSON{}.Encode(wireformat.Object(
		wireformat.F("value", wireformat.Bool(false)),
		wireformat.F("a", wireformat.Null()),
	))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":false,"a":null}`, string(data))
	assert.Equal(t, `{"value":false,"a":null}`, string(data))
}

func TestMsgPack_KeepsKeyOrder(t *testing.T) {
	c := MsgPack{}
	data, err := c.Encode(wireformat.Object(
		wireformat.F("b", wireformat.Null()),
		wireformat.F("a", wireformat.Null()),
	))
	require.NoError(t, err)

	got, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got.Keys())
}

func TestMsgPack_RejectsTrailingBytes(t *testing.T) {
	c := MsgPack{}
	data, err := c.Encode(wireformat.Null())
	require.NoError(t, err)

	_, err = c.Decode(append(data, 0xc0))
	assert.ErrorContains(t, err, "trailing")
}

func TestCBOR_IsCanonical(t *testing.T) {
	c, err := NewCBOR()
	require.NoError(t, err)

	a, err := c.Encode(wireformat.Object(
		wireformat.F("bb", wireformat.Null()),
		wireformat.F("a", wireformat.Null()),
	))
	require.NoError(t, err)
	b, err := c.Encode(wireformat.Object(
		wireformat.F("a", wireformat.Null()),
		wireformat.F("bb", wireformat.Null()),
	))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestByName(t *testing.T) {
	c, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, Default, c.Name())

	_, err = ByName("xml")
	assert.ErrorContains(t, err, `unknown codec "xml"`)
}

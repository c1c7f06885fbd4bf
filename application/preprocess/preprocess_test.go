package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tabs", in: "\tlet x = 1;", want: "  let x = 1;"},
		{name: "tab width 4", opts: []Option{WithTabWidth(4)}, in: "\tx", want: "    x"},
		{name: "tabs kept", opts: []Option{WithTabWidth(0)}, in: "\tx", want: "\tx"},
		{name: "trailing", in: "a  \nb\t\r\nc ", want: "a\nb\r\nc "},
		{name: "trailing kept", opts: []Option{WithTrimTrailing(false)}, in: "a  \n", want: "a  \n"},
		{name: "zero width", in: "\ufeffle\u200bt x", want: "let x"},
		{name: "zero width kept", opts: []Option{WithStripInvisible(false)}, in: "a\u200bb", want: "a\u200bb"},
		{name: "lone joiner", in: "a\u200db", want: "ab"},
		{name: "emoji joiner", in: "\U0001F468\u200d\U0001F469", want: "\U0001F468\u200d\U0001F469"},
		{name: "joiner after variation selector", in: "\u2764\ufe0f\u200d\U0001F525", want: "\u2764\ufe0f\u200d\U0001F525"},
		{name: "nfc off by default", in: "cafe\u0301", want: "cafe\u0301"},
		{name: "nfc", opts: []Option{WithNormalize(true)}, in: "cafe\u0301", want: "caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.opts...).Apply(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	p := New()
	once, err := p.Apply("\t\u200bactor A {  \r\n}\t\n")
	require.NoError(t, err)
	twice, err := p.Apply(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

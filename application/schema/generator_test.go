package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoko-tools/ttlex/domain/entities"
)

func TestGenerateSchema_ErrorDetail(t *testing.T) {
	data, err := GenerateSchema(&entities.ErrorDetail{})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "object", decoded["type"])
	assert.Equal(t, []any{"message"}, decoded["required"])
	assert.Contains(t, decoded["properties"], "message")
}

func TestGenerateSchema_MapsWireTypes(t *testing.T) {
	type report struct {
		Spans []entities.CommentSpan `json:"spans"`
		At    entities.Source        `json:"at"`
	}

	data, err := GenerateSchema(report{})
	require.NoError(t, err)

	var decoded struct {
		Properties struct {
			Spans struct {
				Items struct {
					Type        string `json:"type"`
					PrefixItems []any  `json:"prefixItems"`
				} `json:"items"`
			} `json:"spans"`
			At struct {
				Required []string `json:"required"`
			} `json:"at"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "array", decoded.Properties.Spans.Items.Type)
	assert.Len(t, decoded.Properties.Spans.Items.PrefixItems, 2)
	assert.Equal(t, []string{"line", "col", "span"}, decoded.Properties.At.Required)
}

func TestMarshalDocument(t *testing.T) {
	data, err := MarshalDocument()
	require.NoError(t, err)

	var decoded struct {
		Schema string                     `json:"$schema"`
		ID     string                     `json:"$id"`
		Defs   map[string]json.RawMessage `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "https://json-schema.org/draft/2020-12/schema", decoded.Schema)
	assert.Equal(t, BaseURI, decoded.ID)
	for _, name := range []string{
		DefCommentSpan, DefSource, DefToken, DefLoc, DefTokenTree, DefErrorDetail,
		"parse_token_tree", "find_comments", "is_keyword",
	} {
		assert.Contains(t, decoded.Defs, name)
	}
}

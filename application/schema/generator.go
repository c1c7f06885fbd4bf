// Package schema describes the wire format as JSON Schema (draft 2020-12)
// and validates encoded responses against it.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/domain/entities"
)

// BaseURI identifies the generated document.
const BaseURI = "https://motoko-tools.github.io/ttlex/schema.json"

// Definition names under $defs.
const (
	DefCommentSpan = "CommentSpan"
	DefSource      = "Source"
	DefToken       = "Token"
	DefLoc         = "Loc"
	DefTokenTree   = "TokenTree"
	DefErrorDetail = "ErrorDetail"
)

// GenerateSchema reflects v into a standalone schema. Wire types whose
// encoding differs from their Go shape are mapped to their wire schema.
func GenerateSchema(v any) ([]byte, error) {
	s := reflector().Reflect(v)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(entities.CommentSpan{}):
				return commentSpan()
			case reflect.TypeOf(entities.Source{}):
				return source()
			}
			return nil
		},
	}
}

// Document builds the full schema: every wire record under $defs, and one
// response envelope per operation under $defs/<operation>.
func Document() *jsonschema.Schema {
	errDetail := reflector().Reflect(&entities.ErrorDetail{})
	errDetail.Version = ""
	errDetail.ID = ""
	errDetail.Description = "The only error shape the host sees."

	defs := jsonschema.Definitions{
		DefCommentSpan: commentSpan(),
		DefSource:      source(),
		DefToken:       token(),
		DefLoc:         loc(),
		DefTokenTree:   tokenTree(),
		DefErrorDetail: errDetail,
	}
	for _, op := range boundary.Operations {
		defs[string(op)] = envelope(result(op))
	}

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		ID:          jsonschema.ID(BaseURI),
		Title:       "ttlex wire format",
		Definitions: defs,
	}
}

// MarshalDocument renders Document as indented JSON.
func MarshalDocument() ([]byte, error) {
	data, err := json.MarshalIndent(Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

func ref(name string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/$defs/" + name}
}

func result(op boundary.Operation) *jsonschema.Schema {
	switch op {
	case boundary.OpParseTokenTree:
		return ref(DefTokenTree)
	case boundary.OpFindComments:
		return &jsonschema.Schema{Type: "array", Items: ref(DefCommentSpan)}
	default:
		return &jsonschema.Schema{Type: "boolean"}
	}
}

func envelope(value *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			object([]string{"value"}, "value", value),
			object([]string{"error"}, "error", ref(DefErrorDetail)),
		},
	}
}

// object builds a closed record from alternating name/schema pairs.
func object(required []string, pairs ...any) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for i := 0; i+1 < len(pairs); i += 2 {
		props.Set(pairs[i].(string), pairs[i+1].(*jsonschema.Schema))
	}
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func count() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Minimum: json.Number("0")}
}

func pair(a, b *jsonschema.Schema) *jsonschema.Schema {
	two := uint64(2)
	return &jsonschema.Schema{
		Type:        "array",
		PrefixItems: []*jsonschema.Schema{a, b},
		MinItems:    &two,
		MaxItems:    &two,
	}
}

func commentSpan() *jsonschema.Schema {
	s := pair(count(), count())
	s.Description = "Half-open byte range [start, end) of one comment."
	return s
}

func source() *jsonschema.Schema {
	line := count()
	line.Minimum = json.Number("1")
	return object([]string{"line", "col", "span"},
		"line", line,
		"col", count(),
		"span", pair(count(), count()),
	)
}

func constant(v string) *jsonschema.Schema {
	return &jsonschema.Schema{Const: v}
}

func enum(values ...string) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string"}
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

func token() *jsonschema.Schema {
	text := &jsonschema.Schema{Type: "string"}
	variant := func(types []string, data *jsonschema.Schema) *jsonschema.Schema {
		return object([]string{"token_type", "data"},
			"token_type", enum(types...),
			"data", data,
		)
	}
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			variant([]string{string(entities.TokenOpen), string(entities.TokenClose)}, pair(text, groupTypes())),
			variant([]string{string(entities.TokenDelim)}, pair(text, enum(string(entities.DelimComma), string(entities.DelimSemi)))),
			variant([]string{string(entities.TokenLiteral)}, pair(text, literalKinds())),
			variant(plainTokenTypes(), text),
		},
	}
}

func loc() *jsonschema.Schema {
	return pair(ref(DefToken), ref(DefSource))
}

func tokenTree() *jsonschema.Schema {
	group := object([]string{"token_tree_type", "data"},
		"token_tree_type", constant(string(entities.TreeGroup)),
		"data", &jsonschema.Schema{
			Type: "array",
			PrefixItems: []*jsonschema.Schema{
				{Type: "array", Items: ref(DefTokenTree)},
				groupTypes(),
				{OneOf: []*jsonschema.Schema{{Type: "null"}, pair(ref(DefLoc), ref(DefLoc))}},
			},
			MinItems: ptr(uint64(3)),
			MaxItems: ptr(uint64(3)),
		},
	)
	leaf := object([]string{"token_tree_type", "data"},
		"token_tree_type", constant(string(entities.TreeToken)),
		"data", ref(DefLoc),
	)
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{group, leaf}}
}

func groupTypes() *jsonschema.Schema {
	return enum(
		string(entities.GroupUnenclosed),
		string(entities.GroupParen),
		string(entities.GroupCurly),
		string(entities.GroupSquare),
		string(entities.GroupAngle),
		string(entities.GroupBlockComment),
	)
}

func literalKinds() *jsonschema.Schema {
	kinds := []entities.LiteralKind{
		entities.LiteralNull, entities.LiteralUnit, entities.LiteralBool,
		entities.LiteralNat, entities.LiteralNat8, entities.LiteralNat16, entities.LiteralNat32, entities.LiteralNat64,
		entities.LiteralInt, entities.LiteralInt8, entities.LiteralInt16, entities.LiteralInt32, entities.LiteralInt64,
		entities.LiteralFloat, entities.LiteralText, entities.LiteralChar, entities.LiteralPrincipal,
	}
	values := make([]string, len(kinds))
	for i, k := range kinds {
		values[i] = string(k)
	}
	return enum(values...)
}

func plainTokenTypes() []string {
	types := []entities.TokenType{
		entities.TokenLineComment, entities.TokenDot, entities.TokenColon, entities.TokenAssign,
		entities.TokenOperator, entities.TokenIdent, entities.TokenWild, entities.TokenSpace,
		entities.TokenLine, entities.TokenMultiLine, entities.TokenUnknown,
	}
	values := make([]string, len(types))
	for i, t := range types {
		values[i] = string(t)
	}
	return values
}

func ptr[T any](v T) *T { return &v }

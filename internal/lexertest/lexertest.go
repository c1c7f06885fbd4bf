// Package lexertest provides a configurable ports.Lexer and envelope
// assertions for tests of the boundary and its transports.
package lexertest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/domain/ports"
)

var _ ports.Lexer = (*Stub)(nil)

// Stub is a ports.Lexer whose behaviour is set per test. Unset functions
// fall back to a toy language: '#' starts a comment that runs to the end
// of the line, the tree is one Ident leaf per whitespace-separated word,
// and the keywords are "if", "else" and "let".
type Stub struct {
	Tree     func(src string) (entities.TokenTree, error)
	Comments func(src string) []entities.CommentSpan
	Keyword  func(word string) entities.Classification
}

func (s *Stub) CreateTokenTree(src string) (entities.TokenTree, error) {
	if s.Tree != nil {
		return s.Tree(src)
	}
	return WordTree(src), nil
}

func (s *Stub) FindCommentSpans(src string) []entities.CommentSpan {
	if s.Comments != nil {
		return s.Comments(src)
	}
	return HashComments(src)
}

func (s *Stub) IsKeyword(word string) entities.Classification {
	if s.Keyword != nil {
		return s.Keyword(word)
	}
	switch word {
	case "if", "else", "let":
		return true
	}
	return false
}

// HashComments finds '#' comments. Each span ends before the newline.
func HashComments(src string) []entities.CommentSpan {
	var spans []entities.CommentSpan
	for i := 0; i < len(src); i++ {
		if src[i] != '#' {
			continue
		}
		end := strings.IndexByte(src[i:], '\n')
		if end < 0 {
			end = len(src)
		} else {
			end += i
		}
		spans = append(spans, entities.CommentSpan{Start: i, End: end})
		i = end
	}
	return spans
}

// WordTree builds an unenclosed group holding one Ident per word.
func WordTree(src string) entities.TokenTree {
	var trees []entities.TokenTree
	line, col := 1, 0
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		trees = append(trees, entities.NewLeaf(entities.Loc{
			Token:  entities.Token{Type: entities.TokenIdent, Text: src[start:end]},
			Source: entities.Source{Line: line, Col: col - (end - start), Start: start, End: end},
		}))
		start = -1
	}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\n':
			flush(i)
			if src[i] == '\n' {
				line++
				col = 0
				continue
			}
		default:
			if start < 0 {
				start = i
			}
		}
		col++
	}
	flush(len(src))
	return entities.NewGroup(entities.GroupUnenclosed, trees, nil)
}

// Envelope is the decoded form of a JSON response.
type Envelope struct {
	Value json.RawMessage `json:"value"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// DecodeEnvelope parses a JSON response envelope.
func DecodeEnvelope(t *testing.T, data []byte) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("response %q is not a JSON envelope: %v", data, err)
	}
	return env
}

// AssertValue asserts the envelope carries a value equal to the JSON want.
func AssertValue(t *testing.T, data []byte, want string) {
	t.Helper()
	env := DecodeEnvelope(t, data)
	if env.Error != nil {
		t.Fatalf("expected value, got error %q", env.Error.Message)
	}
	var got, exp any
	if err := json.Unmarshal(env.Value, &got); err != nil {
		t.Fatalf("value %q: %v", env.Value, err)
	}
	if err := json.Unmarshal([]byte(want), &exp); err != nil {
		t.Fatalf("want %q: %v", want, err)
	}
	gotJSON, _ := json.Marshal(got)
	expJSON, _ := json.Marshal(exp)
	if string(gotJSON) != string(expJSON) {
		t.Errorf("value mismatch:\n got: %s\nwant: %s", gotJSON, expJSON)
	}
}

// AssertError asserts the envelope carries an error with exactly message.
func AssertError(t *testing.T, data []byte, message string) {
	t.Helper()
	env := DecodeEnvelope(t, data)
	if env.Error == nil {
		t.Fatalf("expected error %q, got value %s", message, env.Value)
	}
	if env.Error.Message != message {
		t.Errorf("error message = %q, want %q", env.Error.Message, message)
	}
}

package motoko

import (
	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/domain/ports"
)

var _ ports.Lexer = (*Lexer)(nil)

// Lexer is the Motoko implementation of ports.Lexer.
type Lexer struct{}

// New returns a Lexer.
func New() *Lexer {
	return &Lexer{}
}

// CreateTokenTree lexes src into a tree rooted at an Unenclosed group.
// Failures are *LexError values.
func (l *Lexer) CreateTokenTree(src string) (entities.TokenTree, error) {
	cur, err := newCursor(src)
	if err != nil {
		return entities.TokenTree{}, &LexError{Reason: err.Error()}
	}
	return buildTree(&scanner{cur: cur})
}

// FindCommentSpans never fails. Sources too large to address yield no spans.
func (l *Lexer) FindCommentSpans(src string) []entities.CommentSpan {
	cur, err := newCursor(src)
	if err != nil {
		return nil
	}
	return findComments(&scanner{cur: cur, lenient: true})
}

// IsKeyword reports whether word is a reserved Motoko keyword.
func (l *Lexer) IsKeyword(word string) entities.Classification {
	return entities.Classification(isKeyword(word))
}

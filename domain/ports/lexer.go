package ports

import "github.com/motoko-tools/ttlex/domain/entities"

// Lexer is the tokenizer behind the boundary. Implementations must be pure
// and reentrant: the boundary calls them without any locking.
type Lexer interface {
	// CreateTokenTree builds the token tree of text or reports why it cannot.
	CreateTokenTree(text string) (entities.TokenTree, error)
	// FindCommentSpans returns the comment ranges of text in ascending start order.
	FindCommentSpans(text string) []entities.CommentSpan
	// IsKeyword classifies ident. It is total over all strings.
	IsKeyword(ident string) entities.Classification
}

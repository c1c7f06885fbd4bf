// Package ports defines the interfaces the boundary consumes. The lexer is an
// external collaborator; codecs turn structural values into bytes.
package ports

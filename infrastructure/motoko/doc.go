// Package motoko implements the Motoko token-tree lexer behind the boundary.
//
// The lexer splits source text into tokens (whitespace and comments
// included, so the tree reproduces the input exactly) and nests them into
// groups by matching brackets and block comments. It is pure: every call
// allocates its own scanner, so a single Lexer may be shared freely.
package motoko

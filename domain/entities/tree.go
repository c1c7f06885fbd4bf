package entities

import (
	"fmt"

	"github.com/motoko-tools/ttlex/wireformat"
)

// TreeKind tags a TokenTree on the wire ("token_tree_type").
type TreeKind string

const (
	TreeGroup TreeKind = "Group"
	TreeToken TreeKind = "Token"
)

// TokenTree is either a leaf token or a group of subtrees, optionally
// enclosed by an open/close token pair.
type TokenTree struct {
	Kind TreeKind

	// Group fields.
	Trees []TokenTree
	Group GroupType
	Pair  *[2]Loc

	// Token field.
	Leaf Loc
}

// NewGroup builds a group node. pair may be nil for unenclosed groups.
func NewGroup(group GroupType, trees []TokenTree, pair *[2]Loc) TokenTree {
	return TokenTree{Kind: TreeGroup, Group: group, Trees: trees, Pair: pair}
}

// NewLeaf builds a token node.
func NewLeaf(loc Loc) TokenTree {
	return TokenTree{Kind: TreeToken, Leaf: loc}
}

// Span returns the byte range covered by the tree. Empty unenclosed
// groups report (0, 0).
func (t TokenTree) Span() (start, end int) {
	if t.Kind == TreeToken {
		return t.Leaf.Source.Start, t.Leaf.Source.End
	}
	if t.Pair != nil {
		return t.Pair[0].Source.Start, t.Pair[1].Source.End
	}
	if len(t.Trees) == 0 {
		return 0, 0
	}
	start, _ = t.Trees[0].Span()
	_, end = t.Trees[len(t.Trees)-1].Span()
	return start, end
}

// Walk visits every leaf token in source order.
func (t TokenTree) Walk(fn func(Loc)) {
	if t.Kind == TreeToken {
		fn(t.Leaf)
		return
	}
	if t.Pair != nil {
		fn(t.Pair[0])
	}
	for _, sub := range t.Trees {
		sub.Walk(fn)
	}
	if t.Pair != nil {
		fn(t.Pair[1])
	}
}

// MarshalValue encodes the tree in the adjacently tagged form consumed by
// the JavaScript printer.
func (t TokenTree) MarshalValue() (wireformat.Value, error) {
	var data wireformat.Value
	switch t.Kind {
	case TreeToken:
		leaf, err := t.Leaf.MarshalValue()
		if err != nil {
			return wireformat.Value{}, err
		}
		data = leaf
	case TreeGroup:
		trees, err := wireformat.MarshalSeq(t.Trees)
		if err != nil {
			return wireformat.Value{}, err
		}
		pair := wireformat.Null()
		if t.Pair != nil {
			open, err := t.Pair[0].MarshalValue()
			if err != nil {
				return wireformat.Value{}, err
			}
			closing, err := t.Pair[1].MarshalValue()
			if err != nil {
				return wireformat.Value{}, err
			}
			pair = wireformat.Seq(open, closing)
		}
		data = wireformat.Seq(trees, wireformat.String(string(t.Group)), pair)
	default:
		return wireformat.Value{}, fmt.Errorf("unknown token tree kind %q", t.Kind)
	}
	return wireformat.Object(
		wireformat.F("token_tree_type", wireformat.String(string(t.Kind))),
		wireformat.F("data", data),
	), nil
}

package motoko

import (
	"github.com/motoko-tools/ttlex/domain/entities"
)

// frame is one open group on the builder stack.
type frame struct {
	group entities.GroupType
	open  entities.Loc
	trees []entities.TokenTree
}

// buildTree nests the scanner's tokens into groups. The root frame is
// the Unenclosed group and has no open token.
func buildTree(s *scanner) (entities.TokenTree, error) {
	stack := []*frame{{group: entities.GroupUnenclosed}}

	for {
		loc, ok, err := s.next()
		if err != nil {
			return entities.TokenTree{}, err
		}
		if !ok {
			break
		}
		top := stack[len(stack)-1]

		switch loc.Token.Type {
		case entities.TokenOpen:
			stack = append(stack, &frame{group: loc.Token.Group, open: loc})
		case entities.TokenClose:
			if len(stack) == 1 {
				return entities.TokenTree{}, errorAtLoc(loc, "unmatched closing %q", loc.Token.Text)
			}
			if top.group != loc.Token.Group {
				return entities.TokenTree{}, errorAtLoc(loc, "closing %q does not match opening %q at %d:%d",
					loc.Token.Text, top.open.Token.Text, top.open.Source.Line, top.open.Source.Col)
			}
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			pair := [2]entities.Loc{top.open, loc}
			parent.trees = append(parent.trees, entities.NewGroup(top.group, top.trees, &pair))
		default:
			top.trees = append(top.trees, entities.NewLeaf(loc))
		}
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]
		if top.group == entities.GroupBlockComment {
			return entities.TokenTree{}, errorAtLoc(top.open, "unterminated block comment")
		}
		return entities.TokenTree{}, errorAtLoc(top.open, "unclosed %q", top.open.Token.Text)
	}

	root := stack[0]
	return entities.NewGroup(entities.GroupUnenclosed, root.trees, nil), nil
}

func errorAtLoc(loc entities.Loc, format string, args ...any) *LexError {
	return errorAt(mark{
		off:  uint32(loc.Source.Start), //nolint:gosec // offsets are bounded by the cursor limit
		line: loc.Source.Line,
		col:  loc.Source.Col,
	}, format, args...)
}

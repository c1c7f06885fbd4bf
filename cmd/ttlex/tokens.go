package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/wireformat"
)

var (
	groupColor = color.New(color.FgCyan, color.Bold)
	posColor   = color.New(color.Faint)
	errColor   = color.New(color.FgRed, color.Bold)
)

func newTokensCmd(a *app) *cobra.Command {
	var trivia bool
	cmd := &cobra.Command{
		Use:   "tokens FILE...",
		Short: "Print the token tree of each file",
		Long:  `Tokens builds the token tree of each file. Use - to read standard input.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			results, err := s.runFiles(ctx, boundary.OpParseTokenTree, args)
			if err != nil {
				return err
			}
			return s.write(cmd.OutOrStdout(), results, func(w io.Writer, r result) error {
				return printTree(w, r, trivia)
			})
		},
	}
	cmd.Flags().BoolVar(&trivia, "trivia", false, "include spaces and line breaks in text output")
	return cmd
}

func printTree(w io.Writer, r result, trivia bool) error {
	if _, err := fmt.Fprintf(w, "%s\n", r.name); err != nil {
		return err
	}
	if r.err != nil {
		_, err := fmt.Fprintf(w, "  %s\n", errColor.Sprint(r.err.Message))
		return err
	}
	tp := &treePrinter{w: w, trivia: trivia}
	tp.tree(r.value, 1)
	return tp.err
}

// treePrinter renders the decoded tree, one token per line.
type treePrinter struct {
	w      io.Writer
	trivia bool
	err    error
}

func (p *treePrinter) printf(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	line := strings.Repeat("  ", depth) + fmt.Sprintf(format, args...)
	_, p.err = fmt.Fprintln(p.w, line)
}

func (p *treePrinter) tree(v wireformat.Value, depth int) {
	kind, _ := v.Get("token_tree_type")
	data, _ := v.Get("data")
	if kind.AsString() != "Group" {
		p.loc(data, depth)
		return
	}

	trees, group, pair := data.Index(0), data.Index(1).AsString(), data.Index(2)
	if pair.IsNull() {
		for _, sub := range trees.Items() {
			p.tree(sub, depth)
		}
		return
	}
	p.printf(depth, "%s %s", groupColor.Sprint(group), position(pair.Index(0)))
	for _, sub := range trees.Items() {
		p.tree(sub, depth+1)
	}
}

func (p *treePrinter) loc(loc wireformat.Value, depth int) {
	tok := loc.Index(0)
	typ, _ := tok.Get("token_type")
	data, _ := tok.Get("data")
	if !p.trivia && (entities.Token{Type: entities.TokenType(typ.AsString())}).IsWhitespace() {
		return
	}

	text, detail := data.AsString(), ""
	if data.Kind() == wireformat.KindSeq {
		text, detail = data.Index(0).AsString(), " "+data.Index(1).AsString()
	}
	p.printf(depth, "%s %s%s %s", position(loc), typ.AsString(), detail, strconv.Quote(text))
}

func position(loc wireformat.Value) string {
	src := loc.Index(1)
	line, _ := src.Get("line")
	col, _ := src.Get("col")
	return posColor.Sprintf("%d:%d", line.AsInt(), col.AsInt())
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/motoko-tools/ttlex/application/boundary"
)

// snippetWidth bounds the comment text shown in text output.
const snippetWidth = 48

func newCommentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comments FILE...",
		Short: "Print the comment spans of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			results, err := s.runFiles(ctx, boundary.OpFindComments, args)
			if err != nil {
				return err
			}
			if s.codec != nil {
				return s.write(cmd.OutOrStdout(), results, nil)
			}
			if err := writeCommentTable(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			return failures(results)
		},
	}
}

type commentRow struct {
	name, span, text string
}

// writeCommentTable prints one aligned row per comment.
func writeCommentTable(w io.Writer, results []result) error {
	var rows []commentRow
	nameWidth, spanWidth := 0, 0
	for _, r := range results {
		if r.err != nil {
			rows = append(rows, commentRow{name: r.name, span: "-", text: errColor.Sprint(r.err.Message)})
			nameWidth = max(nameWidth, runewidth.StringWidth(r.name))
			spanWidth = max(spanWidth, 1)
			continue
		}
		for _, pair := range r.value.Items() {
			start, end := int(pair.Index(0).AsInt()), int(pair.Index(1).AsInt())
			row := commentRow{
				name: r.name,
				span: fmt.Sprintf("%d-%d", start, end),
				text: snippet(r.src, start, end),
			}
			nameWidth = max(nameWidth, runewidth.StringWidth(row.name))
			spanWidth = max(spanWidth, len(row.span))
			rows = append(rows, row)
		}
	}

	for _, row := range rows {
		_, err := fmt.Fprintf(w, "%s  %s  %s\n",
			runewidth.FillRight(row.name, nameWidth),
			posColor.Sprint(runewidth.FillLeft(row.span, spanWidth)),
			row.text)
		if err != nil {
			return err
		}
	}
	return nil
}

// snippet returns the first line of src[start:end], truncated for display.
func snippet(src string, start, end int) string {
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	text := src[start:end]
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i] + " ..."
	}
	return runewidth.Truncate(text, snippetWidth, "...")
}

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/motoko-tools/ttlex/application/boundary"
)

var (
	keywordColor = color.New(color.FgGreen, color.Bold)
	identColor   = color.New(color.Faint)
)

func newKeywordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keyword WORD...",
		Short: "Classify each word as keyword or identifier",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			lx, err := s.lexer(ctx)
			if err != nil {
				return err
			}
			defer lx.Close(ctx)

			results := make([]result, 0, len(args))
			width := 0
			for _, word := range args {
				r, err := s.call(ctx, lx, boundary.OpIsKeyword, word, word)
				if err != nil {
					return err
				}
				results = append(results, r)
				width = max(width, runewidth.StringWidth(word))
			}

			return s.write(cmd.OutOrStdout(), results, func(w io.Writer, r result) error {
				label := identColor.Sprint("identifier")
				if r.value.AsBool() {
					label = keywordColor.Sprint("keyword")
				}
				_, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(r.name, width), label)
				return err
			})
		},
	}
}

package main

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/domain/errors"
	"github.com/motoko-tools/ttlex/host"
	"github.com/motoko-tools/ttlex/wireformat"
)

// result is the outcome of one operation on one input. err is set when the
// boundary answered with an error; anything else aborts the run.
type result struct {
	name  string
	src   string
	value wireformat.Value
	err   *errors.BoundaryError
}

// runFiles applies op to every path with a bounded pool of workers and
// returns the results in input order.
func (s *session) runFiles(ctx context.Context, op boundary.Operation, paths []string) ([]result, error) {
	results := make([]result, len(paths))
	g, gctx := errgroup.WithContext(ctx)

	next := make(chan int)
	g.Go(func() error {
		defer close(next)
		for i := range paths {
			select {
			case next <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range s.jobs(len(paths)) {
		g.Go(func() error {
			lx, err := s.lexer(gctx)
			if err != nil {
				return err
			}
			defer lx.Close(ctx)

			for i := range next {
				src, err := s.source(paths[i])
				if err != nil {
					return err
				}
				r, err := s.call(gctx, lx, op, paths[i], src)
				if err != nil {
					return err
				}
				results[i] = r
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *session) call(ctx context.Context, lx host.Lexer, op boundary.Operation, name, src string) (result, error) {
	v, err := lx.Invoke(ctx, op, src)
	r := result{name: name, src: src, value: v}
	if err != nil {
		var be *errors.BoundaryError
		if !stdErrors.As(err, &be) {
			return result{}, fmt.Errorf("%s: %w", name, err)
		}
		r.err = be
		s.app.logger.Debug("input rejected", "input", name, "operation", string(op), "error", be.Message)
	}
	if err := s.check(op, v, err); err != nil {
		return result{}, fmt.Errorf("%s: %w", name, err)
	}
	return r, nil
}

// write prints results with the configured codec, or with text for the
// text format, and reports how many were errors.
func (s *session) write(w io.Writer, results []result, text func(io.Writer, result) error) error {
	for _, r := range results {
		var err error
		if s.codec == nil {
			err = text(w, r)
		} else {
			err = s.encode(w, r)
		}
		if err != nil {
			return err
		}
	}
	return failures(results)
}

// failures reports how many results were boundary errors.
func failures(results []result) error {
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

// encode writes one {"input": ..., "value"|"error": ...} record. JSON
// records are newline-delimited; binary codecs are concatenated.
func (s *session) encode(w io.Writer, r result) error {
	body := wireformat.F("value", r.value)
	if r.err != nil {
		detail, err := r.err.ToErrorDetail().MarshalValue()
		if err != nil {
			return err
		}
		body = wireformat.F("error", detail)
	}
	data, err := s.codec.Encode(wireformat.Object(wireformat.F("input", wireformat.String(r.name)), body))
	if err != nil {
		return fmt.Errorf("%s: %w", r.name, err)
	}
	if s.codec.Name() == "json" {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

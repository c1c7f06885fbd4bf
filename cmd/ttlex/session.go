package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/tetratelabs/wazero"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/application/preprocess"
	"github.com/motoko-tools/ttlex/application/schema"
	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/domain/errors"
	"github.com/motoko-tools/ttlex/domain/ports"
	"github.com/motoko-tools/ttlex/host"
	"github.com/motoko-tools/ttlex/hostfuncs"
	"github.com/motoko-tools/ttlex/infrastructure/codec"
	"github.com/motoko-tools/ttlex/wireformat"
)

// session owns the lexer backend for one command run.
type session struct {
	app       *app
	codec     ports.Codec
	pre       *preprocess.Preprocessor
	validator *schema.Validator

	native   *host.Native
	exec     *host.Executor
	compiled wazero.CompiledModule
}

func (a *app) open(ctx context.Context) (*session, error) {
	s := &session{app: a}

	if a.cfg.Format != "text" {
		c, err := codec.ByName(a.cfg.Format)
		if err != nil {
			return nil, err
		}
		s.codec = c
	}
	if a.cfg.Preprocess.Enabled {
		s.pre = preprocess.New(a.cfg.Preprocess.Options()...)
	}
	if a.cfg.Validate {
		v, err := schema.NewValidator()
		if err != nil {
			return nil, err
		}
		s.validator = v
	}

	if a.cfg.Wasm == "" {
		s.native = host.NewNative(boundary.WithLogger(a.logger))
		return s, nil
	}

	wasm, err := os.ReadFile(a.cfg.Wasm)
	if err != nil {
		return nil, fmt.Errorf("failed to read guest: %w", err)
	}
	exec, err := host.NewExecutor(ctx,
		host.WithLogger(a.logger),
		host.WithMaxInputSize(a.cfg.MaxInputSize),
	)
	if err != nil {
		return nil, err
	}
	compiled, err := exec.Compile(ctx, wasm)
	if err != nil {
		_ = exec.Close(ctx)
		return nil, err
	}
	s.exec, s.compiled = exec, compiled
	return s, nil
}

func (s *session) Close(ctx context.Context) error {
	if s.exec != nil {
		return s.exec.Close(ctx)
	}
	return nil
}

// jobs is the worker count for n inputs.
func (s *session) jobs(n int) int {
	j := s.app.cfg.Jobs
	if j <= 0 {
		j = runtime.NumCPU()
	}
	return max(1, min(j, n))
}

// lexer returns a backend for one worker. The native lexer is shared; each
// guest instance serves a single goroutine.
func (s *session) lexer(ctx context.Context) (host.Lexer, error) {
	if s.native != nil {
		return s.native, nil
	}
	return s.exec.Instantiate(ctx, s.compiled)
}

// source reads a file, or stdin for "-", and applies preprocessing.
func (s *session) source(path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	data, err := hostfuncs.ReadAllLimited(r, s.app.cfg.MaxInputSize)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	src := string(data)
	if s.pre != nil {
		if src, err = s.pre.Apply(src); err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
	}
	return src, nil
}

// check validates a result against the response schema when enabled.
func (s *session) check(op boundary.Operation, v wireformat.Value, callErr error) error {
	if s.validator == nil {
		return nil
	}
	resp := entities.Success(v)
	if callErr != nil {
		resp = entities.Failure(errors.ToErrorDetail(callErr))
	}
	env, err := resp.MarshalValue()
	if err != nil {
		return err
	}
	data, err := env.MarshalJSON()
	if err != nil {
		return err
	}
	return s.validator.ValidateResponse(op, data)
}

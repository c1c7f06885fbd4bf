package host

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/motoko-tools/ttlex/domain/ports"
	"github.com/motoko-tools/ttlex/hostfuncs"
	"github.com/motoko-tools/ttlex/infrastructure/codec"
	ttlexwazero "github.com/motoko-tools/ttlex/infrastructure/wazero"
)

// Executor manages the runtime that guest instances live in.
type Executor struct {
	runtime  wazero.Runtime
	registry *hostfuncs.HandlerRegistry
	codec    ports.Codec
	maxInput int
	logger   *slog.Logger
}

// NewExecutor creates a runtime with WASI and the ttlex_host module.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		codec:    codec.JSON{},
		maxInput: hostfuncs.DefaultMaxRequestSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		reg, err := hostfuncs.NewRegistry(
			hostfuncs.WithMiddleware(hostfuncs.PanicRecoveryMiddleware()),
			hostfuncs.WithBundle(hostfuncs.GuestBundle()),
			hostfuncs.WithLogger(e.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		e.registry = reg
	}

	rt := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}
	if err := ttlexwazero.RegisterWithRuntime(ctx, rt, e.registry, ttlexwazero.WithAdapterLogger(e.logger)); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}
	e.runtime = rt
	return e, nil
}

// Close releases the runtime and every instance loaded from it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Compile validates and compiles a guest binary once, for several instances.
func (e *Executor) Compile(ctx context.Context, wasm []byte) (wazero.CompiledModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}
	return compiled, nil
}

// Instantiate creates a new guest instance and runs its _initialize
// export when present.
func (e *Executor) Instantiate(ctx context.Context, compiled wazero.CompiledModule) (*Instance, error) {
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions().
		WithStderr(os.Stderr).
		WithStdout(os.Stderr)

	mod, err := e.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	return &Instance{module: mod, codec: e.codec, maxInput: e.maxInput}, nil
}

// Load compiles and instantiates wasm.
func (e *Executor) Load(ctx context.Context, wasm []byte) (*Instance, error) {
	compiled, err := e.Compile(ctx, wasm)
	if err != nil {
		return nil, err
	}
	return e.Instantiate(ctx, compiled)
}

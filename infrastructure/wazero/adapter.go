package wazero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/motoko-tools/ttlex/hostfuncs"
)

// AdapterConfig holds configuration for RegisterWithRuntime.
type AdapterConfig struct {
	// ModuleName is the host module name (default: hostfuncs.ModuleName).
	ModuleName string

	// MaxRequestSize limits a payload read from guest memory.
	MaxRequestSize uint32

	// OneWay names functions that take a packed payload and return
	// nothing, like log_message.
	OneWay map[string]bool

	Logger *slog.Logger
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name.
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithMaxRequestSize sets the maximum payload size read from the guest.
func WithMaxRequestSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		c.MaxRequestSize = size
	}
}

// WithOneWay marks functions as having no result.
func WithOneWay(names ...string) AdapterOption {
	return func(c *AdapterConfig) {
		for _, n := range names {
			c.OneWay[n] = true
		}
	}
}

// WithAdapterLogger sets the logger for adapter failures.
func WithAdapterLogger(l *slog.Logger) AdapterOption {
	return func(c *AdapterConfig) {
		if l != nil {
			c.Logger = l
		}
	}
}

func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		ModuleName:     hostfuncs.ModuleName,
		MaxRequestSize: hostfuncs.DefaultMaxRequestSize,
		OneWay:         map[string]bool{hostfuncs.FuncLogMessage: true},
		Logger:         slog.Default(),
	}
}

// RegisterWithRuntime instantiates a host module exporting every handler
// of registry. Request/response functions have the signature (i64) -> i64;
// one-way functions (i64) -> ().
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, registry *hostfuncs.HandlerRegistry, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)
	for _, name := range registry.Names() {
		results := []api.ValueType{api.ValueTypeI64}
		if cfg.OneWay[name] {
			results = nil
		}
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				handleRegistryCall(ctx, mod, stack, registry, name, &cfg)
			}), []api.ValueType{api.ValueTypeI64}, results).
			Export(name)
	}

	if _, err := builder.Instantiate(ctx); err != nil {
		return fmt.Errorf("instantiate host module %s: %w", cfg.ModuleName, err)
	}
	return nil
}

func handleRegistryCall(ctx context.Context, mod api.Module, stack []uint64, registry *hostfuncs.HandlerRegistry, name string, cfg *AdapterConfig) {
	oneWay := cfg.OneWay[name]
	reply := func(data []byte) {
		if oneWay {
			return
		}
		stack[0] = writeResponse(ctx, mod, data, cfg.Logger)
	}

	ptr, length := UnpackPtrLen(stack[0])
	if length > cfg.MaxRequestSize {
		msg := fmt.Sprintf("request size %d exceeds maximum %d bytes", length, cfg.MaxRequestSize)
		cfg.Logger.ErrorContext(ctx, "wazero: "+msg, "function", name)
		reply(hostfuncs.NewValidationError(msg).ToJSON())
		return
	}

	payload, ok := mod.Memory().Read(ptr, length)
	if !ok {
		cfg.Logger.ErrorContext(ctx, "wazero: request outside guest memory", "function", name, "ptr", ptr, "len", length)
		reply(hostfuncs.NewValidationError("request outside guest memory").ToJSON())
		return
	}
	// Read aliases guest memory; the handler may outlive the next allocation.
	payload = append([]byte(nil), payload...)

	resp, err := registry.Invoke(ctx, name, payload)
	if err != nil {
		cfg.Logger.ErrorContext(ctx, "wazero: handler failed", "function", name, "error", err)
		reply(hostfuncs.NewPanicError(err).ToJSON())
		return
	}
	reply(resp)
}

// writeResponse copies data into guest memory obtained from allocate and
// returns it packed, or 0 when that is impossible.
func writeResponse(ctx context.Context, mod api.Module, data []byte, logger *slog.Logger) uint64 {
	if len(data) == 0 {
		return 0
	}
	ptr, err := writeGuest(ctx, mod, data)
	if err != nil {
		logger.ErrorContext(ctx, "wazero: cannot write response", "error", err)
		return 0
	}
	return PackPtrLen(ptr, uint32(len(data))) //nolint:gosec // G115: bounded by the guest arena
}

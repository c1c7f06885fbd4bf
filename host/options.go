package host

import (
	"log/slog"

	"github.com/motoko-tools/ttlex/domain/ports"
	"github.com/motoko-tools/ttlex/hostfuncs"
)

// Option configures an Executor.
type Option func(*Executor)

// WithHostFunctions replaces the default registry. It must provide every
// function the guest imports.
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithCodec sets the codec guest responses are decoded with. It must match
// the codec the guest was built with; the default is JSON.
func WithCodec(c ports.Codec) Option {
	return func(e *Executor) {
		if c != nil {
			e.codec = c
		}
	}
}

// WithMaxInputSize rejects source texts larger than n bytes before they
// reach the guest.
func WithMaxInputSize(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxInput = n
		}
	}
}

// WithLogger sets the logger that receives guest log records.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

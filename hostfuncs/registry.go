package hostfuncs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// ModuleName is the import module the guest declares host functions in.
const ModuleName = "ttlex_host"

// HandlerRegistry is an immutable set of named host functions. Lookups
// need no locking.
type HandlerRegistry struct {
	handlers map[string]ByteHandler
	names    []string // sorted for consistent iteration
	logger   *slog.Logger
}

// RegistryOption configures a HandlerRegistry under construction.
type RegistryOption func(*registryBuilder)

type registryBuilder struct {
	handlers   map[string]ByteHandler
	middleware []Middleware
	logger     *slog.Logger
	errs       []error
}

// NewRegistry builds a registry. Registering a name twice is an error.
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(GuestBundle()),
//	)
func NewRegistry(opts ...RegistryOption) (*HandlerRegistry, error) {
	b := &registryBuilder{handlers: make(map[string]ByteHandler)}
	for _, opt := range opts {
		opt(b)
	}
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(b.handlers))
	wrapped := make(map[string]ByteHandler, len(b.handlers))
	for name, handler := range b.handlers {
		names = append(names, name)
		for i := len(b.middleware) - 1; i >= 0; i-- {
			handler = b.middleware[i](handler)
		}
		wrapped[name] = handler
	}
	sort.Strings(names)

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HandlerRegistry{handlers: wrapped, names: names, logger: logger}, nil
}

// Invoke dispatches a call by name. Unknown names yield a NOT_FOUND
// ErrorResponse rather than an error.
func (r *HandlerRegistry) Invoke(ctx context.Context, name string, payload []byte) ([]byte, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return NewNotFoundError(name).ToJSON(), nil
	}
	return handler(NewHostContext(ctx, name, r.logger), payload)
}

// Has reports whether name is registered.
func (r *HandlerRegistry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *HandlerRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (b *registryBuilder) add(name string, handler ByteHandler) {
	switch {
	case name == "":
		b.errs = append(b.errs, errors.New("handler name cannot be empty"))
	case handler == nil:
		b.errs = append(b.errs, fmt.Errorf("handler %q is nil", name))
	default:
		if _, exists := b.handlers[name]; exists {
			b.errs = append(b.errs, fmt.Errorf("duplicate handler name: %q", name))
			return
		}
		b.handlers[name] = handler
	}
}

// WithByteHandler registers a raw ByteHandler.
func WithByteHandler(name string, handler ByteHandler) RegistryOption {
	return func(b *registryBuilder) { b.add(name, handler) }
}

// WithHandler registers a typed host function with JSON handling.
func WithHandler[Req any, Resp any](name string, fn HostFunc[Req, Resp]) RegistryOption {
	return func(b *registryBuilder) { b.add(name, NewJSONHandler(fn)) }
}

// WithMiddleware appends middleware.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) { b.middleware = append(b.middleware, mw...) }
}

// WithLogger sets the logger handed to handlers through HostContext.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(b *registryBuilder) { b.logger = logger }
}

// Bundle is a named set of related host functions.
type Bundle map[string]ByteHandler

// WithBundle registers every handler of bundle.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		names := make([]string, 0, len(bundle))
		for name := range bundle {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.add(name, bundle[name])
		}
	}
}

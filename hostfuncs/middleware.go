package hostfuncs

import (
	"context"
	"time"
)

// Middleware wraps a ByteHandler. Middleware registered first runs
// outermost.
type Middleware func(next ByteHandler) ByteHandler

// PanicRecoveryMiddleware converts a panic in a host function into an
// ErrorResponse so it never unwinds into the WASM runtime.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					LoggerFrom(ctx).Error("hostfuncs: panic recovered", "function", functionName(ctx), "panic", r)
					resp, err = NewPanicError(r).ToJSON(), nil
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware logs each invocation at debug level.
func LoggingMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			logger := LoggerFrom(ctx)
			start := time.Now()
			resp, err := next(ctx, payload)
			attrs := []any{"function", functionName(ctx), "payload", len(payload), "elapsed", time.Since(start)}
			if err != nil {
				logger.Debug("hostfuncs: call failed", append(attrs, "error", err)...)
			} else {
				logger.Debug("hostfuncs: call completed", attrs...)
			}
			return resp, err
		}
	}
}

func functionName(ctx context.Context) string {
	if hc, ok := ctx.(HostContext); ok {
		return hc.FunctionName()
	}
	return "unknown"
}

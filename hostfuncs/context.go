package hostfuncs

import (
	"context"
	"log/slog"
)

// HostContext is the context a ByteHandler runs in. It names the invoked
// function and carries the host's logger.
type HostContext interface {
	context.Context
	FunctionName() string
	Logger() *slog.Logger
}

type hostContext struct {
	context.Context
	funcName string
	logger   *slog.Logger
}

func (c *hostContext) FunctionName() string { return c.funcName }

func (c *hostContext) Logger() *slog.Logger { return c.logger }

// NewHostContext wraps ctx. A nil logger means slog.Default().
func NewHostContext(ctx context.Context, funcName string, logger *slog.Logger) HostContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &hostContext{Context: ctx, funcName: funcName, logger: logger}
}

// LoggerFrom returns the HostContext logger, or slog.Default().
func LoggerFrom(ctx context.Context) *slog.Logger {
	if hc, ok := ctx.(HostContext); ok {
		return hc.Logger()
	}
	return slog.Default()
}

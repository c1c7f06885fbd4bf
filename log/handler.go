// Package log routes guest slog records to the host: through the
// ttlex_host.log_message import on WASI, to the JavaScript console on js,
// and to a writer (stderr by default) in native builds.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"
)

// GuestHandler implements slog.Handler by serializing each record into a
// Message and handing it to the platform emitter.
type GuestHandler struct {
	opts   handlerConfig
	attrs  []slog.Attr
	groups []string
}

// HandlerOption configures the GuestHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Leveler
	addSource bool
	// out receives JSON lines in native builds.
	out io.Writer
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
		out:   os.Stderr,
	}
}

// WithLevel sets the minimum level. Records below it are dropped in the
// guest and never cross the boundary.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file:line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithWriter sets the destination for native builds.
func WithWriter(w io.Writer) HandlerOption {
	return func(c *handlerConfig) {
		if w != nil {
			c.out = w
		}
	}
}

// NewHandler creates a GuestHandler.
func NewHandler(opts ...HandlerOption) *GuestHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GuestHandler{opts: cfg}
}

// Install makes a GuestHandler the slog default.
func Install(opts ...HandlerOption) *slog.Logger {
	logger := slog.New(NewHandler(opts...))
	slog.SetDefault(logger)
	return logger
}

func (h *GuestHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

func (h *GuestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := h.clone()
	for _, a := range attrs {
		nh.attrs = append(nh.attrs, h.qualify(a))
	}
	return nh
}

func (h *GuestHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := h.clone()
	nh.groups = append(nh.groups, name)
	return nh
}

func (h *GuestHandler) Handle(_ context.Context, record slog.Record) error {
	return h.emit(h.message(record))
}

// message builds the wire form of record, including handler attributes.
func (h *GuestHandler) message(record slog.Record) Message {
	msg := Message{
		Level:     record.Level.String(),
		Message:   record.Message,
		Timestamp: record.Time,
	}
	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		msg.Source = frame.File + ":" + strconv.Itoa(frame.Line)
	}
	for _, a := range h.attrs {
		msg.Attrs = appendAttr(msg.Attrs, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		msg.Attrs = appendAttr(msg.Attrs, h.qualify(a))
		return true
	})
	return msg
}

func (h *GuestHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	a.Key = strings.Join(h.groups, ".") + "." + a.Key
	return a
}

func (h *GuestHandler) clone() *GuestHandler {
	return &GuestHandler{
		opts:   h.opts,
		attrs:  slices.Clip(h.attrs),
		groups: slices.Clip(h.groups),
	}
}

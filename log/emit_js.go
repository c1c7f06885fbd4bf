//go:build js && wasm

package log

import (
	"encoding/json"
	"log/slog"
	"syscall/js"
)

// emit writes to the console method matching the level, passing the
// attributes as a second argument.
func (h *GuestHandler) emit(msg Message) error {
	method := "log"
	switch ParseLevel(msg.Level) {
	case slog.LevelDebug:
		method = "debug"
	case slog.LevelWarn:
		method = "warn"
	case slog.LevelError:
		method = "error"
	}

	attrs := "{}"
	if len(msg.Attrs) > 0 {
		if data, err := json.Marshal(msg.Attrs); err == nil {
			attrs = string(data)
		}
	}
	js.Global().Get("console").Call(method, msg.Message, attrs)
	return nil
}

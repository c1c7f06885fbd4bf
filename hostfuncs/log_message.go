package hostfuncs

import (
	"context"
	"encoding/json"
	"log/slog"

	guestlog "github.com/motoko-tools/ttlex/log"
)

// FuncLogMessage is the import name of the guest logging function.
const FuncLogMessage = "log_message"

// GuestBundle holds every function a ttlex guest imports.
func GuestBundle() Bundle {
	return Bundle{FuncLogMessage: LogMessage}
}

// LogMessage re-emits a guest log record through the host logger, under a
// "guest" group and at the guest's level. It returns no response.
func LogMessage(ctx context.Context, payload []byte) ([]byte, error) {
	var msg guestlog.Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return NewValidationError("log_message: " + err.Error()).ToJSON(), nil
	}

	attrs := make([]any, 0, len(msg.Attrs)+1)
	for _, a := range msg.Attrs {
		attrs = append(attrs, a.Slog())
	}
	if msg.Source != "" {
		attrs = append(attrs, slog.String("source", msg.Source))
	}

	logger := LoggerFrom(ctx)
	level := guestlog.ParseLevel(msg.Level)
	if !logger.Enabled(ctx, level) {
		return nil, nil
	}
	logger.WithGroup("guest").Log(ctx, level, msg.Message, attrs...)
	return nil, nil
}

//go:build wasip1

package log

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/motoko-tools/ttlex/internal/abi"
)

// The host registers this in the ttlex_host module.
//
//go:wasmimport ttlex_host log_message
//nolint:revive // intentional snake_case to match WASM import convention
func host_log_message(messagePacked uint64)

// emit passes the JSON message to the host. The guest frees the buffer
// once the host has returned.
func (h *GuestHandler) emit(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ttlex: failed to marshal log message for host: %v, original: %s\n", err, msg.Message)
		return nil
	}
	packed := abi.PtrFromBytes(data)
	host_log_message(packed)
	abi.DeallocatePacked(packed)
	return nil
}

//go:build !wasip1 && !js

package log

import (
	"encoding/json"
	"fmt"
)

// emit writes the message as one JSON line.
func (h *GuestHandler) emit(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("log: marshal message: %w", err)
	}
	_, err = h.opts.out.Write(append(data, '\n'))
	return err
}

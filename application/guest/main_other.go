//go:build !wasip1 && !(js && wasm)

package guest

import (
	"fmt"
	"os"
)

// Main reports that the guest only runs inside a WebAssembly host.
func Main() {
	fmt.Fprintln(os.Stderr, "ttlex-wasm: build with GOOS=wasip1 or GOOS=js GOARCH=wasm")
	os.Exit(2)
}

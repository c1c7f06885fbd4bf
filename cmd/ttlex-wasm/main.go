// Command ttlex-wasm is the WebAssembly guest.
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o ttlex.wasm ./cmd/ttlex-wasm
//	GOOS=js GOARCH=wasm go build -o ttlex.js.wasm ./cmd/ttlex-wasm
package main

import "github.com/motoko-tools/ttlex/application/guest"

func main() {
	guest.Main()
}

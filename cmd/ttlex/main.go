// Command ttlex runs the Motoko token-tree lexer over files.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ttlex:", err)
		os.Exit(1)
	}
}

// Command fluxctl builds a small sample dataflow graph and drives it
// through the engine's pull evaluator, compiled runtime, or an HTTP
// metrics endpoint, depending on the invoked subcommand.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

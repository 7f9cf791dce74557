// Command jsengine is a CLI front end over pkg/jsengine: lex, parse, and run
// scripts, and inspect the engine's intermediate representations.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-jsengine/cmd/jsengine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

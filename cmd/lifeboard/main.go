// Lifeboard is a CLI tool that refreshes a personal status dashboard
// from loosely-structured external sources.
package main

import (
	"fmt"
	"os"

	"github.com/quietloop/lifeboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

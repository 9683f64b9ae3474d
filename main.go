package main

import (
	"fmt"
	"os"

	"github.com/gurisko/tak/internal/cli"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "tak: %v\n", err)
		os.Exit(1)
	}
}

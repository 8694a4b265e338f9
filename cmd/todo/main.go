package main

import (
	"os"

	"github.com/Makepad-fr/todo/internal/cli"
)

func main() {
	// Hand the args to the CLI runner; it owns flags, output and exit codes.
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Command advent scaffolds and drives an Advent of Code workspace.
package main

import (
	"os"

	"github.com/NielsdaWheelz/advent/internal/cli"
	"github.com/NielsdaWheelz/advent/internal/errors"
)

func main() {
	err := cli.Run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}

// Package main is the entry point for the themesnap CLI.
package main

import (
	"os"

	"github.com/thoreinstein/themesnap/cmd/themesnap/commands"
	"github.com/thoreinstein/themesnap/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}

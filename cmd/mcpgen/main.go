// Package main is the entry point for the mcpgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/mcpgen/cmd/mcpgen/commands"
	"github.com/thoreinstein/mcpgen/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	exitErr := errors.Classify(err)
	if !exitErr.Silent() {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), exitErr.Err)
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", color.HiBlackString(exitErr.Suggestion))
		}
	}
	os.Exit(exitErr.Code)
}

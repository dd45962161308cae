// Package main is the entry point for the micoverlay CLI/TUI.
package main

import (
	"os"

	"github.com/micoverlay/micoverlay/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
